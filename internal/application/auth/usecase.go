package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/eva-blog/blog-api/internal/application/dto"
	"github.com/eva-blog/blog-api/internal/domain"
	"github.com/eva-blog/blog-api/internal/domain/entity"
	"github.com/eva-blog/blog-api/internal/domain/repository"
	"github.com/eva-blog/blog-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase caso de uso de login de administradores.
type AuthUseCase struct {
	usuarios repository.UsuarioRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(usuarios repository.UsuarioRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{usuarios: usuarios, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email inexistente y password incorrecto devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := uc.usuarios.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if u == nil || u.Password == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	role := u.Rol
	if role == "" {
		role = entity.RolUsuario
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		Usuario: *toUsuarioResponse(u),
	}, nil
}

func toUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		ID:          u.ID,
		Nombre:      u.Nombre,
		Apellido:    u.Apellido,
		Email:       u.Email,
		Bio:         u.Bio,
		Descripcion: u.Descripcion,
		Img:         u.Img,
		FotoPortada: u.FotoPortada,
		Rol:         u.Rol,
	}
}
