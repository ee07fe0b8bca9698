package repository

import (
	"context"

	"github.com/eva-blog/blog-api/internal/domain/entity"
)

// UsuarioRepository define el puerto de persistencia para Usuario (DIP).
type UsuarioRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Usuario, error)
	FindByEmail(ctx context.Context, email string) (*entity.Usuario, error)
	// Save inserta si ID es 0 o actualiza. Password vacío conserva el hash almacenado.
	Save(ctx context.Context, u *entity.Usuario) (*entity.Usuario, error)
}
