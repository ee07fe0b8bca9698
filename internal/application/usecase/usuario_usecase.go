package usecase

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/eva-blog/blog-api/internal/application/dto"
	"github.com/eva-blog/blog-api/internal/application/ports"
	"github.com/eva-blog/blog-api/internal/domain"
	"github.com/eva-blog/blog-api/internal/domain/entity"
	"github.com/eva-blog/blog-api/internal/domain/repository"
	"github.com/eva-blog/blog-api/pkg/logger"
	"github.com/eva-blog/blog-api/pkg/validation"
)

// UsuarioPhotoResult resultado de una subida de imagen de usuario.
type UsuarioPhotoResult struct {
	Usuario *dto.UsuarioResponse
	Mensaje string
}

// UsuarioUseCase casos de uso del perfil de administrador.
type UsuarioUseCase struct {
	repo           repository.UsuarioRepository
	photos         *photoLifecycle
	passwordUserID int64
}

// NewUsuarioUseCase construye el caso de uso. passwordUserID es el usuario que modifica
// UpdatePassword.
func NewUsuarioUseCase(
	repo repository.UsuarioRepository,
	store ports.PhotoStore,
	metrics ports.Metrics,
	log *logger.Logger,
	passwordUserID int64,
) *UsuarioUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &UsuarioUseCase{
		repo:           repo,
		photos:         &photoLifecycle{store: store, label: "admin", metrics: metrics, log: log},
		passwordUserID: passwordUserID,
	}
}

// GetByID obtiene un usuario por ID.
func (uc *UsuarioUseCase) GetByID(ctx context.Context, id int64) (*dto.UsuarioResponse, error) {
	u, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.NewPersistenceFault("Error al realizar la consulta en la base de datos", err)
	}
	if u == nil {
		return nil, domain.NewNotFoundFault(fmt.Sprintf("el usuario con ID : %d no existe en la base de datos", id))
	}
	return toUsuarioResponse(u), nil
}

// Update comprueba que el usuario id exista y guarda el cuerpo recibido tal cual,
// con su propio id. MergeUsuario se aplica sobre el registro cargado pero ese registro
// no es el que se persiste.
func (uc *UsuarioUseCase) Update(ctx context.Context, id int64, in dto.UsuarioRequest) (*dto.UsuarioResponse, error) {
	if errs := validation.Struct(&in); errs != nil {
		return nil, domain.NewValidationFault("errors", errs)
	}
	actual, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.NewPersistenceFault("Error al actualizar el cliente en la base de datos", err)
	}
	if actual == nil {
		return nil, domain.NewNotFoundFault(fmt.Sprintf("Error: no se pudo editar, el usuario ID: %d no existe en la base de datos!", id))
	}
	entrante := fromUsuarioRequest(in)
	entity.MergeUsuario(actual, entrante)

	saved, err := uc.repo.Save(ctx, entrante)
	if err != nil {
		return nil, domain.NewPersistenceFault("Error al actualizar el cliente en la base de datos", err)
	}
	return toUsuarioResponse(saved), nil
}

// UpdatePassword hashea password con bcrypt y lo guarda en el usuario configurado.
func (uc *UsuarioUseCase) UpdatePassword(ctx context.Context, password string) (*dto.UsuarioResponse, error) {
	if errs := validation.Struct(&dto.PasswordRequest{Password: password}); errs != nil {
		return nil, domain.NewValidationFault("errors", errs)
	}
	u, err := uc.repo.FindByID(ctx, uc.passwordUserID)
	if err != nil {
		return nil, domain.NewPersistenceFault("Error al actualizar la contraseña en la base de datos", err)
	}
	if u == nil {
		return nil, domain.NewNotFoundFault("Error: no se pudo editar")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewPersistenceFault("Error al actualizar la contraseña en la base de datos", err)
	}
	u.Password = string(hash)
	saved, err := uc.repo.Save(ctx, u)
	if err != nil {
		return nil, domain.NewPersistenceFault("Error al actualizar la contraseña en la base de datos", err)
	}
	return toUsuarioResponse(saved), nil
}

// UploadPhoto reemplaza la foto de perfil (img). Devuelve nil sin error si el archivo está vacío.
func (uc *UsuarioUseCase) UploadPhoto(ctx context.Context, id int64, file *dto.FileUpload) (*UsuarioPhotoResult, error) {
	return uc.replace(ctx, id, file,
		func(u *entity.Usuario) string { return u.Img },
		func(u *entity.Usuario, name string) { u.Img = name })
}

// UploadCoverPhoto reemplaza la foto de portada. Devuelve nil sin error si el archivo está vacío.
func (uc *UsuarioUseCase) UploadCoverPhoto(ctx context.Context, id int64, file *dto.FileUpload) (*UsuarioPhotoResult, error) {
	return uc.replace(ctx, id, file,
		func(u *entity.Usuario) string { return u.FotoPortada },
		func(u *entity.Usuario, name string) { u.FotoPortada = name })
}

func (uc *UsuarioUseCase) replace(
	ctx context.Context,
	id int64,
	file *dto.FileUpload,
	get func(*entity.Usuario) string,
	set func(*entity.Usuario, string),
) (*UsuarioPhotoResult, error) {
	if file.IsEmpty() {
		return nil, nil
	}
	u, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.NewPersistenceFault("Error al realizar la consulta en la base de datos", err)
	}
	if u == nil {
		return nil, domain.NewNotFoundFault(fmt.Sprintf("el usuario con ID : %d no existe en la base de datos", id))
	}
	name, err := uc.photos.stage(ctx, file)
	if err != nil {
		return nil, domain.NewStorageFault("Error al subir la imagen "+name, err)
	}
	old := get(u)
	set(u, name)
	// el hash ya está guardado; vacío lo conserva
	u.Password = ""
	saved, err := uc.repo.Save(ctx, u)
	if err != nil {
		return nil, domain.NewPersistenceFault("Error al actualizar el usuario en la base de datos", err)
	}
	uc.photos.discard(ctx, old)
	return &UsuarioPhotoResult{
		Usuario: toUsuarioResponse(saved),
		Mensaje: "Has subido correctamente la imágen: " + name,
	}, nil
}

// OpenPhoto abre una imagen del directorio de administración (perfil o portada).
func (uc *UsuarioUseCase) OpenPhoto(ctx context.Context, name string) (*dto.PhotoFile, error) {
	return uc.photos.open(ctx, name)
}

func fromUsuarioRequest(in dto.UsuarioRequest) *entity.Usuario {
	return &entity.Usuario{
		ID:          in.ID,
		Nombre:      in.Nombre,
		Apellido:    in.Apellido,
		Email:       in.Email,
		Bio:         in.Bio,
		Descripcion: in.Descripcion,
		Img:         in.Img,
		FotoPortada: in.FotoPortada,
	}
}

func toUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	if u == nil {
		return nil
	}
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
