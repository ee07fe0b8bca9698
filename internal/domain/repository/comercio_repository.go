package repository

import (
	"context"

	"github.com/eva-blog/blog-api/internal/domain/entity"
)

// ComercioRepository define el puerto de persistencia para Comercio (DIP).
type ComercioRepository interface {
	FindAll(ctx context.Context) ([]*entity.Comercio, error)
	// FindPage devuelve la página (base 0) de tamaño size y el total de filas.
	FindPage(ctx context.Context, page, size int) ([]*entity.Comercio, int64, error)
	FindByActividad(ctx context.Context, actividad string) ([]*entity.Comercio, error)
	FindByMes(ctx context.Context, mes int) ([]*entity.Comercio, error)
	FindOneByMes(ctx context.Context, mes int) ([]*entity.Comercio, error)
	FindLatest(ctx context.Context) ([]*entity.Comercio, error)
	Meses(ctx context.Context) ([]int, error)
	TopByLikes(ctx context.Context, limit int) ([]*entity.Comercio, error)
	TopByVisitas(ctx context.Context, limit int) ([]*entity.Comercio, error)
	Actividades(ctx context.Context) ([]string, error)
	FindByID(ctx context.Context, id int64) (*entity.Comercio, error)
	// Save inserta si ID es 0 (y asigna el ID generado) o actualiza en otro caso.
	Save(ctx context.Context, c *entity.Comercio) (*entity.Comercio, error)
	// Delete devuelve domain.ErrNotFound envuelto si no existe la fila.
	Delete(ctx context.Context, id int64) error
}
