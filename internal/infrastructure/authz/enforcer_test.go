package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eva-blog/blog-api/internal/domain/entity"
	"github.com/eva-blog/blog-api/internal/infrastructure/authz"
)

func newEnforcer(t *testing.T) *authz.Enforcer {
	t.Helper()
	e, err := authz.NewEnforcer(nil)
	require.NoError(t, err)
	return e
}

func TestProtected_RutasDeAdministracion(t *testing.T) {
	e := newEnforcer(t)

	assert.True(t, e.Protected("GET", "/api/comercios/page/0"))
	assert.True(t, e.Protected("POST", "/api/comercios/crear"))
	assert.True(t, e.Protected("PUT", "/api/comercios/12"))
	assert.True(t, e.Protected("POST", "/api/comercios/uploadOneFoto/2"))
	assert.True(t, e.Protected("DELETE", "/api/comercio/12"))
	assert.True(t, e.Protected("POST", "/api/usuarios/editarfotoPortada"))
}

func TestProtected_RutasPublicas(t *testing.T) {
	e := newEnforcer(t)

	assert.False(t, e.Protected("GET", "/api/comercios"))
	assert.False(t, e.Protected("GET", "/api/comercios/12"))
	assert.False(t, e.Protected("POST", "/api/comercios/12/likes"))
	assert.False(t, e.Protected("PUT", "/api/usuarios/2"))
	assert.False(t, e.Protected("PUT", "/api/usuarios/password"))
	assert.False(t, e.Protected("GET", "/api/descargas/img/foto.jpg"))
}

func TestAllowed_SoloAdmin(t *testing.T) {
	e := newEnforcer(t)

	ok, err := e.Allowed(entity.RolAdmin, "DELETE", "/api/comercio/3")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.Allowed(entity.RolUsuario, "DELETE", "/api/comercio/3")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = e.Allowed(entity.RolAdmin, "GET", "/api/comercio/3")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewEnforcer_TablaPropia(t *testing.T) {
	e, err := authz.NewEnforcer([]authz.Permission{{Method: "GET", Path: "/api/x/:id", Role: "editor"}})
	require.NoError(t, err)

	assert.True(t, e.Protected("GET", "/api/x/1"))
	assert.False(t, e.Protected("POST", "/api/comercios/crear"))
	ok, err := e.Allowed("editor", "GET", "/api/x/1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestProtected_MayusculasYBarraFinal(t *testing.T) {
	e := newEnforcer(t)

	assert.True(t, e.Protected("DELETE", "/api/comercio/1/"))
	assert.True(t, e.Protected("DELETE", "/API/Comercio/2"))
	assert.True(t, e.Protected("POST", "/api/comercios/crear//"))
	assert.True(t, e.Protected("POST", "/api/comercios/uploadonefoto/1"))
	assert.True(t, e.Protected("POST", "/api/usuarios/EditarFotoPortada/"))

	ok, err := e.Allowed(entity.RolAdmin, "DELETE", "/API/comercio/2/")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = e.Allowed(entity.RolUsuario, "POST", "/api/Comercios/crear/")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/api/comercio/1", authz.NormalizePath("/API/Comercio/1/"))
	assert.Equal(t, "/", authz.NormalizePath("/"))
	assert.Equal(t, "/api", authz.NormalizePath("/api///"))
}
