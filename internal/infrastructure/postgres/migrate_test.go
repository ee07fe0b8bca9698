package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrateURL_CambiaEsquema(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/blog?sslmode=disable", migrateURL("postgres://u:p@db:5432/blog?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/blog", migrateURL("postgresql://u@db/blog"))
	assert.Equal(t, "pgx5://u@db/blog", migrateURL("pgx5://u@db/blog"))
}

func TestMigrationsFS_ContieneInit(t *testing.T) {
	up, err := migrationsFS.ReadFile("migrations/000001_init.up.sql")
	assert.NoError(t, err)
	assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS comercios")
	assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS usuarios")
}
