package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/eva-blog/blog-api/internal/domain"
	"github.com/eva-blog/blog-api/internal/domain/entity"
	"github.com/eva-blog/blog-api/internal/domain/repository"
)

var _ repository.ComercioRepository = (*ComercioRepo)(nil)

const comercioColumns = `id, nombre, likes, visitas, fecha, mes, actividad, img, img1, img2`

// ComercioRepo implementación del puerto ComercioRepository sobre PostgreSQL (usable con pool o tx).
type ComercioRepo struct {
	q Querier
}

// NewComercioRepository construye el adaptador de persistencia para comercios. Pasar pool o tx (Querier).
func NewComercioRepository(q Querier) *ComercioRepo {
	return &ComercioRepo{q: q}
}

// FindAll lista todos los comercios por id.
func (r *ComercioRepo) FindAll(ctx context.Context) ([]*entity.Comercio, error) {
	return r.list(ctx, "list comercios",
		`SELECT `+comercioColumns+` FROM comercios ORDER BY id`)
}

// FindPage devuelve la página page (base 0) ordenada por id y el total de comercios.
func (r *ComercioRepo) FindPage(ctx context.Context, page, size int) ([]*entity.Comercio, int64, error) {
	var total int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM comercios`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count comercios: %w", err)
	}
	list, err := r.list(ctx, "page comercios",
		`SELECT `+comercioColumns+` FROM comercios ORDER BY id LIMIT $1 OFFSET $2`,
		size, page*size)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// FindByActividad filtra por actividad exacta.
func (r *ComercioRepo) FindByActividad(ctx context.Context, actividad string) ([]*entity.Comercio, error) {
	return r.list(ctx, "list comercios by actividad",
		`SELECT `+comercioColumns+` FROM comercios WHERE actividad = $1 ORDER BY id`, actividad)
}

// FindByMes filtra por mes de alta.
func (r *ComercioRepo) FindByMes(ctx context.Context, mes int) ([]*entity.Comercio, error) {
	return r.list(ctx, "list comercios by mes",
		`SELECT `+comercioColumns+` FROM comercios WHERE mes = $1 ORDER BY id`, mes)
}

// FindOneByMes devuelve como mucho un comercio del mes (el de menor id).
func (r *ComercioRepo) FindOneByMes(ctx context.Context, mes int) ([]*entity.Comercio, error) {
	return r.list(ctx, "find comercio by mes",
		`SELECT `+comercioColumns+` FROM comercios WHERE mes = $1 ORDER BY id LIMIT 1`, mes)
}

// FindLatest devuelve el comercio con la fecha más reciente; a igual fecha, el último creado.
func (r *ComercioRepo) FindLatest(ctx context.Context) ([]*entity.Comercio, error) {
	return r.list(ctx, "find latest comercio",
		`SELECT `+comercioColumns+` FROM comercios ORDER BY fecha DESC, id DESC LIMIT 1`)
}

// Meses lista los meses distintos en orden ascendente.
func (r *ComercioRepo) Meses(ctx context.Context) ([]int, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT mes FROM comercios ORDER BY mes`)
	if err != nil {
		return nil, fmt.Errorf("list meses: %w", err)
	}
	meses, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("scan meses: %w", err)
	}
	return meses, nil
}

// TopByLikes devuelve los limit comercios con más likes.
func (r *ComercioRepo) TopByLikes(ctx context.Context, limit int) ([]*entity.Comercio, error) {
	return r.list(ctx, "top comercios by likes",
		`SELECT `+comercioColumns+` FROM comercios ORDER BY likes DESC, id LIMIT $1`, limit)
}

// TopByVisitas devuelve los limit comercios con más visitas.
func (r *ComercioRepo) TopByVisitas(ctx context.Context, limit int) ([]*entity.Comercio, error) {
	return r.list(ctx, "top comercios by visitas",
		`SELECT `+comercioColumns+` FROM comercios ORDER BY visitas DESC, id LIMIT $1`, limit)
}

// Actividades lista las actividades distintas en orden alfabético.
func (r *ComercioRepo) Actividades(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT actividad FROM comercios ORDER BY actividad`)
	if err != nil {
		return nil, fmt.Errorf("list actividades: %w", err)
	}
	acts, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan actividades: %w", err)
	}
	return acts, nil
}

// FindByID obtiene un comercio por ID. Devuelve (nil, nil) si no existe.
func (r *ComercioRepo) FindByID(ctx context.Context, id int64) (*entity.Comercio, error) {
	row := r.q.QueryRow(ctx, `SELECT `+comercioColumns+` FROM comercios WHERE id = $1`, id)
	c, err := scanComercio(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get comercio: %w", err)
	}
	return c, nil
}

// Save inserta si ID es 0 o actualiza. Un ID que no existe se inserta con un id nuevo.
func (r *ComercioRepo) Save(ctx context.Context, c *entity.Comercio) (*entity.Comercio, error) {
	var fecha *time.Time
	if !c.Fecha.IsZero() {
		fecha = &c.Fecha
	}
	if c.ID != 0 {
		row := r.q.QueryRow(ctx, `
			UPDATE comercios SET nombre = $2, likes = $3, visitas = $4, fecha = COALESCE($5, fecha),
				mes = $6, actividad = $7, img = $8, img1 = $9, img2 = $10
			WHERE id = $1
			RETURNING `+comercioColumns,
			c.ID, c.Nombre, c.Likes, c.Visitas, fecha, c.Mes, c.Actividad, c.Img, c.Img1, c.Img2,
		)
		saved, err := scanComercio(row)
		if err == nil {
			saved.Comentarios = c.Comentarios
			return saved, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("update comercio: %w", err)
		}
	}
	row := r.q.QueryRow(ctx, `
		INSERT INTO comercios (nombre, likes, visitas, fecha, mes, actividad, img, img1, img2)
		VALUES ($1, $2, $3, COALESCE($4, CURRENT_DATE), $5, $6, $7, $8, $9)
		RETURNING `+comercioColumns,
		c.Nombre, c.Likes, c.Visitas, fecha, c.Mes, c.Actividad, c.Img, c.Img1, c.Img2,
	)
	saved, err := scanComercio(row)
	if err != nil {
		return nil, fmt.Errorf("insert comercio: %w", err)
	}
	return saved, nil
}

// Delete elimina el comercio y, en cascada, sus comentarios.
func (r *ComercioRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM comercios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comercio: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete comercio %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *ComercioRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Comercio, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	list := []*entity.Comercio{}
	for rows.Next() {
		c, err := scanComercio(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comercio: %w", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

func scanComercio(row pgx.Row) (*entity.Comercio, error) {
	var c entity.Comercio
	err := row.Scan(&c.ID, &c.Nombre, &c.Likes, &c.Visitas, &c.Fecha, &c.Mes, &c.Actividad, &c.Img, &c.Img1, &c.Img2)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
