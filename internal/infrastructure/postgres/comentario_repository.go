package postgres

import (
	"context"
	"fmt"

	"github.com/eva-blog/blog-api/internal/domain/entity"
	"github.com/eva-blog/blog-api/internal/domain/repository"
)

var _ repository.ComentarioRepository = (*ComentarioRepo)(nil)

// ComentarioRepo lectura de comentarios sobre PostgreSQL.
type ComentarioRepo struct {
	q Querier
}

// NewComentarioRepository construye el adaptador de lectura de comentarios.
func NewComentarioRepository(q Querier) *ComentarioRepo {
	return &ComentarioRepo{q: q}
}

// FindByComercio lista los comentarios del comercio, del más antiguo al más nuevo.
func (r *ComentarioRepo) FindByComercio(ctx context.Context, comercioID int64) ([]entity.Comentario, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, comercio_id, autor, texto, fecha
		FROM comentarios WHERE comercio_id = $1 ORDER BY fecha, id`, comercioID)
	if err != nil {
		return nil, fmt.Errorf("list comentarios: %w", err)
	}
	defer rows.Close()
	list := []entity.Comentario{}
	for rows.Next() {
		var c entity.Comentario
		if err := rows.Scan(&c.ID, &c.ComercioID, &c.Autor, &c.Texto, &c.Fecha); err != nil {
			return nil, fmt.Errorf("scan comentario: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
