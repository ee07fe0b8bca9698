package repository

import (
	"context"

	"github.com/eva-blog/blog-api/internal/domain/entity"
)

// ComentarioRepository puerto de lectura de comentarios por comercio.
type ComentarioRepository interface {
	FindByComercio(ctx context.Context, comercioID int64) ([]entity.Comentario, error)
}
