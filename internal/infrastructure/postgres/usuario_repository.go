package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/eva-blog/blog-api/internal/domain/entity"
	"github.com/eva-blog/blog-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

const usuarioColumns = `id, nombre, apellido, email, bio, descripcion, password, img, foto_portada, rol`

// ErrEmailDuplicado el email ya pertenece a otro usuario.
var ErrEmailDuplicado = errors.New("el email ya está registrado")

// UsuarioRepo implementación del puerto UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador de persistencia para usuarios.
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

// FindByID obtiene un usuario por ID. Devuelve (nil, nil) si no existe.
func (r *UsuarioRepo) FindByID(ctx context.Context, id int64) (*entity.Usuario, error) {
	u, err := scanUsuario(r.q.QueryRow(ctx, `SELECT `+usuarioColumns+` FROM usuarios WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return u, nil
}

// FindByEmail obtiene un usuario por email (para login).
func (r *UsuarioRepo) FindByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	u, err := scanUsuario(r.q.QueryRow(ctx, `SELECT `+usuarioColumns+` FROM usuarios WHERE email = $1 LIMIT 1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario by email: %w", err)
	}
	return u, nil
}

// Save inserta si ID es 0 (o no existe) o actualiza. Password y Rol vacíos conservan lo almacenado.
func (r *UsuarioRepo) Save(ctx context.Context, u *entity.Usuario) (*entity.Usuario, error) {
	if u.ID != 0 {
		saved, err := scanUsuario(r.q.QueryRow(ctx, `
			UPDATE usuarios SET nombre = $2, apellido = $3, email = $4, bio = $5, descripcion = $6,
				password = COALESCE($7, password), img = $8, foto_portada = $9, rol = COALESCE($10, rol)
			WHERE id = $1
			RETURNING `+usuarioColumns,
			u.ID, u.Nombre, u.Apellido, u.Email, u.Bio, u.Descripcion,
			nullIfEmpty(u.Password), u.Img, u.FotoPortada, nullIfEmpty(u.Rol),
		))
		if err == nil {
			return saved, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, wrapUsuarioErr("update usuario", err)
		}
	}
	saved, err := scanUsuario(r.q.QueryRow(ctx, `
		INSERT INTO usuarios (nombre, apellido, email, bio, descripcion, password, img, foto_portada, rol)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, ''), $7, $8, COALESCE($9, 'usuario'))
		RETURNING `+usuarioColumns,
		u.Nombre, u.Apellido, u.Email, u.Bio, u.Descripcion,
		nullIfEmpty(u.Password), u.Img, u.FotoPortada, nullIfEmpty(u.Rol),
	))
	if err != nil {
		return nil, wrapUsuarioErr("insert usuario", err)
	}
	return saved, nil
}

func wrapUsuarioErr(op string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%s: %w: %w", op, ErrEmailDuplicado, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	err := row.Scan(&u.ID, &u.Nombre, &u.Apellido, &u.Email, &u.Bio, &u.Descripcion,
		&u.Password, &u.Img, &u.FotoPortada, &u.Rol)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
