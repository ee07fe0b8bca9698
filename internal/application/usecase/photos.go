package usecase

import (
	"context"
	"path"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/eva-blog/blog-api/internal/application/dto"
	"github.com/eva-blog/blog-api/internal/application/ports"
	"github.com/eva-blog/blog-api/internal/domain"
	"github.com/eva-blog/blog-api/pkg/logger"
)

// photoLifecycle reemplaza imágenes en dos fases: stage escribe el archivo nuevo con un
// nombre aleatorio; una vez guardada la entidad con la nueva referencia, discard borra el
// anterior si existe. La escritura no es transaccional con el guardado en la base de datos.
type photoLifecycle struct {
	store   ports.PhotoStore
	label   string // etiqueta del directorio para métricas
	metrics ports.Metrics
	log     *logger.Logger
}

// stage escribe up y devuelve el nombre generado.
func (p *photoLifecycle) stage(ctx context.Context, up *dto.FileUpload) (string, error) {
	name := PhotoName(up.Filename)
	p.log.Info().Str("archivo", p.store.Location(name)).Msg("guardando imagen")
	if err := p.store.Save(ctx, name, up.Content); err != nil {
		return name, err
	}
	p.metrics.PhotoStored(p.label)
	return name, nil
}

// discard borra name si no está vacío y existe. Los errores solo se registran.
func (p *photoLifecycle) discard(ctx context.Context, name string) {
	if name == "" || !p.store.Exists(ctx, name) {
		return
	}
	if err := p.store.Delete(ctx, name); err != nil {
		p.log.Warn().Err(err).Str("archivo", p.store.Location(name)).Msg("no se pudo borrar la imagen anterior")
		return
	}
	p.metrics.PhotoDiscarded(p.label)
}

// open abre name para servirlo. El error no lleva sobre JSON: lo resuelve el manejador de errores de fiber.
func (p *photoLifecycle) open(ctx context.Context, name string) (*dto.PhotoFile, error) {
	name = path.Base(name)
	p.log.Info().Str("archivo", p.store.Location(name)).Msg("sirviendo imagen")
	rc, size, err := p.store.Open(ctx, name)
	if err != nil {
		return nil, &domain.PhotoError{Name: name, Err: err}
	}
	return &dto.PhotoFile{Name: name, Size: size, Content: rc}, nil
}

// PhotoName genera "<uuid>_<nombre original>" quitando rutas, espacios y acentos del original.
func PhotoName(original string) string {
	base := path.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" {
		base = ""
	}
	base = strings.ReplaceAll(base, " ", "")
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if clean, _, err := transform.String(t, base); err == nil {
		base = clean
	}
	return uuid.New().String() + "_" + base
}
