package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/eva-blog/blog-api/internal/application/dto"
	"github.com/eva-blog/blog-api/internal/application/ports"
	"github.com/eva-blog/blog-api/internal/domain"
	"github.com/eva-blog/blog-api/internal/domain/entity"
	"github.com/eva-blog/blog-api/internal/domain/repository"
	"github.com/eva-blog/blog-api/pkg/logger"
	"github.com/eva-blog/blog-api/pkg/validation"
)

const (
	// ComercioPageSize tamaño fijo de página del listado de administración.
	ComercioPageSize = 5
	// TopLimit cantidad de comercios en los rankings de likes y visitas.
	TopLimit = 3
)

// ComercioPhotoResult resultado de una subida de imágenes de comercio.
type ComercioPhotoResult struct {
	Comercio *dto.ComercioResponse
	Mensaje  string
}

// ComercioUseCase casos de uso de comercios: lecturas, contadores, CRUD e imágenes.
type ComercioUseCase struct {
	repo        repository.ComercioRepository
	comentarios repository.ComentarioRepository
	photos      *photoLifecycle
	metrics     ports.Metrics
	now         func() time.Time
}

// NewComercioUseCase construye el caso de uso.
func NewComercioUseCase(
	repo repository.ComercioRepository,
	comentarios repository.ComentarioRepository,
	store ports.PhotoStore,
	metrics ports.Metrics,
	log *logger.Logger,
) *ComercioUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &ComercioUseCase{
		repo:        repo,
		comentarios: comentarios,
		photos:      &photoLifecycle{store: store, label: "comercios", metrics: metrics, log: log},
		metrics:     metrics,
		now:         time.Now,
	}
}

// ListAll devuelve todos los comercios con sus comentarios.
func (uc *ComercioUseCase) ListAll(ctx context.Context) ([]dto.ComercioResponse, error) {
	list, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ComercioResponse, 0, len(list))
	for _, c := range list {
		if c.Comentarios, err = uc.comentarios.FindByComercio(ctx, c.ID); err != nil {
			return nil, err
		}
		out = append(out, *toComercioResponse(c))
	}
	return out, nil
}

// ListPage devuelve la página page (base 0) de ComercioPageSize elementos. Una página
// negativa o cuyo desplazamiento no cabe en int devuelve ErrInvalidInput.
func (uc *ComercioUseCase) ListPage(ctx context.Context, page int) (*dto.ComercioPage, error) {
	// page*ComercioPageSize es el OFFSET: no puede desbordar int
	if page < 0 || page > math.MaxInt/ComercioPageSize {
		return nil, fmt.Errorf("página %d: %w", page, domain.ErrInvalidInput)
	}
	list, total, err := uc.repo.FindPage(ctx, page, ComercioPageSize)
	if err != nil {
		return nil, err
	}
	totalPages := int((total + ComercioPageSize - 1) / ComercioPageSize)
	return &dto.ComercioPage{
		Content:          toComercioResponses(list),
		TotalElements:    total,
		TotalPages:       totalPages,
		Number:           page,
		Size:             ComercioPageSize,
		NumberOfElements: len(list),
		First:            page == 0,
		Last:             page >= totalPages-1,
		Empty:            len(list) == 0,
	}, nil
}

// SearchByActividad filtra por actividad exacta.
func (uc *ComercioUseCase) SearchByActividad(ctx context.Context, actividad string) ([]dto.ComercioResponse, error) {
	list, err := uc.repo.FindByActividad(ctx, actividad)
	return toComercioResponses(list), err
}

// SearchByMes filtra por mes de alta.
func (uc *ComercioUseCase) SearchByMes(ctx context.Context, mes int) ([]dto.ComercioResponse, error) {
	list, err := uc.repo.FindByMes(ctx, mes)
	return toComercioResponses(list), err
}

// FindOneByMes devuelve como mucho un comercio del mes.
func (uc *ComercioUseCase) FindOneByMes(ctx context.Context, mes int) ([]dto.ComercioResponse, error) {
	list, err := uc.repo.FindOneByMes(ctx, mes)
	return toComercioResponses(list), err
}

// FindLatest devuelve el comercio con la fecha de alta más reciente.
func (uc *ComercioUseCase) FindLatest(ctx context.Context) ([]dto.ComercioResponse, error) {
	list, err := uc.repo.FindLatest(ctx)
	return toComercioResponses(list), err
}

// Meses lista los meses distintos con comercios.
func (uc *ComercioUseCase) Meses(ctx context.Context) ([]int, error) {
	meses, err := uc.repo.Meses(ctx)
	if meses == nil {
		meses = []int{}
	}
	return meses, err
}

// TopLikes ranking por likes.
func (uc *ComercioUseCase) TopLikes(ctx context.Context) ([]dto.ComercioResponse, error) {
	list, err := uc.repo.TopByLikes(ctx, TopLimit)
	return toComercioResponses(list), err
}

// TopVisitas ranking por visitas.
func (uc *ComercioUseCase) TopVisitas(ctx context.Context) ([]dto.ComercioResponse, error) {
	list, err := uc.repo.TopByVisitas(ctx, TopLimit)
	return toComercioResponses(list), err
}

// Actividades lista las actividades distintas.
func (uc *ComercioUseCase) Actividades(ctx context.Context) ([]string, error) {
	acts, err := uc.repo.Actividades(ctx)
	if acts == nil {
		acts = []string{}
	}
	return acts, err
}

// GetByID obtiene un comercio con sus comentarios.
func (uc *ComercioUseCase) GetByID(ctx context.Context, id int64) (*dto.ComercioResponse, error) {
	c, err := uc.repo.FindByID(ctx, id)
	if err == nil && c != nil {
		c.Comentarios, err = uc.comentarios.FindByComercio(ctx, c.ID)
	}
	if err != nil {
		return nil, domain.NewPersistenceFault("Error al realizar la consulta en la base de datos", err)
	}
	if c == nil {
		return nil, domain.NewNotFoundFault(fmt.Sprintf("el comercio con ID : %d no existe en la base de datos", id))
	}
	return toComercioResponse(c), nil
}

// AddLike suma un like. Lectura y escritura no son atómicas: dos peticiones simultáneas
// pueden perder un incremento.
func (uc *ComercioUseCase) AddLike(ctx context.Context, id int64) (*dto.ComercioResponse, error) {
	c, err := uc.increment(ctx, id, "likes", func(c *entity.Comercio) { c.Likes++ })
	if err != nil {
		return nil, err
	}
	uc.metrics.LikeAdded()
	return c, nil
}

// AddVisita suma una visita. Misma carrera que AddLike.
func (uc *ComercioUseCase) AddVisita(ctx context.Context, id int64) (*dto.ComercioResponse, error) {
	c, err := uc.increment(ctx, id, "visitas", func(c *entity.Comercio) { c.Visitas++ })
	if err != nil {
		return nil, err
	}
	uc.metrics.VisitaAdded()
	return c, nil
}

func (uc *ComercioUseCase) increment(ctx context.Context, id int64, counter string, inc func(*entity.Comercio)) (*dto.ComercioResponse, error) {
	msg := "Error al realizar el update de " + counter + " en la base de datos"
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.NewPersistenceFault(msg, err)
	}
	if c == nil {
		return nil, domain.NewNotFoundFault(fmt.Sprintf("el comercio con ID : %d no existe en la base de datos", id))
	}
	inc(c)
	saved, err := uc.repo.Save(ctx, c)
	if err != nil {
		return nil, domain.NewPersistenceFault(msg, err)
	}
	return toComercioResponse(saved), nil
}

// Create valida y persiste un comercio nuevo. Fecha por defecto hoy; Mes por defecto el de Fecha.
func (uc *ComercioUseCase) Create(ctx context.Context, in dto.ComercioRequest) (*dto.ComercioResponse, error) {
	if errs := validation.Struct(&in); errs != nil {
		return nil, domain.NewValidationFault("error", errs)
	}
	c := fromComercioRequest(in)
	c.ID = 0
	if c.Fecha.IsZero() {
		c.Fecha = uc.now()
	}
	if c.Mes == 0 {
		c.Mes = int(c.Fecha.Month())
	}
	saved, err := uc.repo.Save(ctx, c)
	if err != nil {
		return nil, domain.NewPersistenceFault("Error al realizar el insert en la base de datos", err)
	}
	return toComercioResponse(saved), nil
}

// Update aplica MergeComercio (id, nombre, likes) sobre el comercio almacenado y lo guarda.
// El id del cuerpo se copia tal cual: un cuerpo sin id inserta un comercio nuevo.
func (uc *ComercioUseCase) Update(ctx context.Context, id int64, in dto.ComercioRequest) (*dto.ComercioResponse, error) {
	if errs := validation.Struct(&in); errs != nil {
		return nil, domain.NewValidationFault("errors", errs)
	}
	actual, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.NewPersistenceFault("Error al actualizar el comercio en la base de datos", err)
	}
	if actual == nil {
		return nil, domain.NewNotFoundFault(fmt.Sprintf("Error: no se pudo editar, el comercio ID: %d no existe en la base de datos!", id))
	}
	saved, err := uc.repo.Save(ctx, entity.MergeComercio(actual, fromComercioRequest(in)))
	if err != nil {
		return nil, domain.NewPersistenceFault("Error al actualizar el comercio en la base de datos", err)
	}
	return toComercioResponse(saved), nil
}

// Delete elimina el comercio. Sus imágenes quedan en el almacenamiento.
func (uc *ComercioUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return domain.NewPersistenceFault("Error al eliminar el comercio de la base de datos", err)
	}
	return nil
}

// UploadPhotos reemplaza las tres imágenes. Solo exige que files[0] y files[1] tengan
// contenido; files[2] se guarda aunque venga vacío. Devuelve nil sin error si no se cumple
// la condición. Si falla la escritura de un archivo, los ya escritos no se deshacen.
func (uc *ComercioUseCase) UploadPhotos(ctx context.Context, id int64, files [entity.ComercioPhotoSlots]*dto.FileUpload) (*ComercioPhotoResult, error) {
	if files[0].IsEmpty() || files[1].IsEmpty() {
		return nil, nil
	}
	c, err := uc.findForUpload(ctx, id)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, f := range files {
		if f == nil {
			f = &dto.FileUpload{Content: strings.NewReader("")}
		}
		name, err := uc.photos.stage(ctx, f)
		names = append(names, name)
		if err != nil {
			return nil, domain.NewStorageFault("Error al subir las imágenes del comercio "+strings.Join(names, ", "), err)
		}
	}

	previous := []string{c.Img, c.Img1, c.Img2}
	for i, name := range names {
		c.SetPhoto(i+1, name)
	}
	saved, err := uc.repo.Save(ctx, c)
	if err != nil {
		return nil, domain.NewPersistenceFault("Error al actualizar el comercio en la base de datos", err)
	}
	for _, old := range previous {
		uc.photos.discard(ctx, old)
	}
	return &ComercioPhotoResult{
		Comercio: toComercioResponse(saved),
		Mensaje:  "Has subido correctamente las imágenes: " + strings.Join(names, ", "),
	}, nil
}

// UploadOnePhoto reemplaza la imagen de la posición slot: 1 img, 2 img1, 3 img2.
// Devuelve nil sin error si el archivo está vacío.
func (uc *ComercioUseCase) UploadOnePhoto(ctx context.Context, id int64, slot int, file *dto.FileUpload) (*ComercioPhotoResult, error) {
	if slot < 1 || slot > entity.ComercioPhotoSlots {
		return nil, domain.NewValidationFault("errors", []string{
			validation.FieldMessage("imgUpdated", "oneof", "1 2 3"),
		})
	}
	if file.IsEmpty() {
		return nil, nil
	}
	c, err := uc.findForUpload(ctx, id)
	if err != nil {
		return nil, err
	}
	name, err := uc.photos.stage(ctx, file)
	if err != nil {
		return nil, domain.NewStorageFault("Error al subir las imágenes del comercio "+name, err)
	}
	old := c.Photo(slot)
	c.SetPhoto(slot, name)
	saved, err := uc.repo.Save(ctx, c)
	if err != nil {
		return nil, domain.NewPersistenceFault("Error al actualizar el comercio en la base de datos", err)
	}
	uc.photos.discard(ctx, old)
	return &ComercioPhotoResult{
		Comercio: toComercioResponse(saved),
		Mensaje:  fmt.Sprintf("Has subido correctamente las imágenes: %s a la imagen %d", name, slot),
	}, nil
}

// OpenPhoto abre una imagen del directorio de comercios.
func (uc *ComercioUseCase) OpenPhoto(ctx context.Context, name string) (*dto.PhotoFile, error) {
	return uc.photos.open(ctx, name)
}

func (uc *ComercioUseCase) findForUpload(ctx context.Context, id int64) (*entity.Comercio, error) {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.NewPersistenceFault("Error al realizar la consulta en la base de datos", err)
	}
	if c == nil {
		return nil, domain.NewNotFoundFault(fmt.Sprintf("el comercio con ID : %d no existe en la base de datos", id))
	}
	return c, nil
}

func fromComercioRequest(in dto.ComercioRequest) *entity.Comercio {
	c := &entity.Comercio{
		ID:        in.ID,
		Nombre:    in.Nombre,
		Likes:     in.Likes,
		Visitas:   in.Visitas,
		Mes:       in.Mes,
		Actividad: in.Actividad,
	}
	if in.Fecha != "" {
		// el formato ya lo garantiza la validación
		c.Fecha, _ = time.Parse(dto.DateLayout, in.Fecha)
	}
	return c
}

func toComercioResponses(list []*entity.Comercio) []dto.ComercioResponse {
	out := make([]dto.ComercioResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toComercioResponse(c))
	}
	return out
}

func toComercioResponse(c *entity.Comercio) *dto.ComercioResponse {
	if c == nil {
		return nil
	}
	out := &dto.ComercioResponse{
		ID:        c.ID,
		Nombre:    c.Nombre,
		Likes:     c.Likes,
		Visitas:   c.Visitas,
		Mes:       c.Mes,
		Actividad: c.Actividad,
		Img:       c.Img,
		Img1:      c.Img1,
		Img2:      c.Img2,
	}
	if !c.Fecha.IsZero() {
		out.Fecha = c.Fecha.Format(dto.DateLayout)
	}
	if c.Comentarios != nil {
		out.Comentarios = make([]dto.ComentarioResponse, 0, len(c.Comentarios))
		for _, cm := range c.Comentarios {
			r := dto.ComentarioResponse{ID: cm.ID, Autor: cm.Autor, Texto: cm.Texto}
			if !cm.Fecha.IsZero() {
				r.Fecha = cm.Fecha.Format(dto.DateLayout)
			}
			out.Comentarios = append(out.Comentarios, r)
		}
	}
	return out
}
