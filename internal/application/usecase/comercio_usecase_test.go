package usecase_test

import (
	"context"
	"io"
	"math"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eva-blog/blog-api/internal/application/dto"
	"github.com/eva-blog/blog-api/internal/application/usecase"
	"github.com/eva-blog/blog-api/internal/domain"
	"github.com/eva-blog/blog-api/internal/domain/entity"
	"github.com/eva-blog/blog-api/internal/infrastructure/storage"
	"github.com/eva-blog/blog-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type comercioFixture struct {
	uc    *usecase.ComercioUseCase
	repo  *memComercios
	store *storage.LocalStore
	dir   string
}

func newComercioFixture(t *testing.T, cs ...entity.Comercio) comercioFixture {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir)
	require.NoError(t, err)
	repo := newMemComercios(cs...)
	comentarios := &memComentarios{byComercio: map[int64][]entity.Comentario{
		1: {{ID: 10, ComercioID: 1, Autor: "ana", Texto: "muy bueno", Fecha: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)}},
	}}
	uc := usecase.NewComercioUseCase(repo, comentarios, store, nil, logger.Nop())
	return comercioFixture{uc: uc, repo: repo, store: store, dir: dir}
}

func panaderia() entity.Comercio {
	return entity.Comercio{
		ID: 1, Nombre: "Panadería Sol", Likes: 4, Visitas: 20, Mes: 3, Actividad: "panaderia",
		Fecha: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func upload(name, content string) *dto.FileUpload {
	return &dto.FileUpload{Filename: name, Size: int64(len(content)), Content: strings.NewReader(content)}
}

func requireFault(t *testing.T, err error, kind domain.FaultKind) *domain.Fault {
	t.Helper()
	require.Error(t, err)
	f, ok := domain.AsFault(err)
	require.True(t, ok, "se esperaba *domain.Fault, se obtuvo %T", err)
	require.Equal(t, kind, f.Kind)
	return f
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(dir+"/"+name, []byte(content), 0o644))
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByID_ConComentarios(t *testing.T) {
	f := newComercioFixture(t, panaderia())

	out, err := f.uc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Panadería Sol", out.Nombre)
	assert.Equal(t, "2024-03-01", out.Fecha)
	require.Len(t, out.Comentarios, 1)
	assert.Equal(t, "muy bueno", out.Comentarios[0].Texto)
}

func TestGetByID_InexistenteDevuelve404ConID(t *testing.T) {
	f := newComercioFixture(t)

	_, err := f.uc.GetByID(context.Background(), 42)
	fault := requireFault(t, err, domain.FaultNotFound)
	assert.Contains(t, fault.Message, "42")
}

func TestGetByID_ErrorDeBaseDeDatos(t *testing.T) {
	f := newComercioFixture(t, panaderia())
	f.repo.fail = errDB

	_, err := f.uc.GetByID(context.Background(), 1)
	fault := requireFault(t, err, domain.FaultPersistence)
	assert.Equal(t, "Error al realizar la consulta en la base de datos", fault.Message)
	assert.Contains(t, fault.Detail(), "conexión rechazada")
}

func TestListPage_Metadatos(t *testing.T) {
	var cs []entity.Comercio
	for i := int64(1); i <= 7; i++ {
		cs = append(cs, entity.Comercio{ID: i, Nombre: "c", Actividad: "a"})
	}
	f := newComercioFixture(t, cs...)

	page, err := f.uc.ListPage(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, page.Content, 2)
	assert.Equal(t, int64(7), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, usecase.ComercioPageSize, page.Size)
	assert.False(t, page.First)
	assert.True(t, page.Last)

	page, err = f.uc.ListPage(context.Background(), 9)
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.True(t, page.Empty)
}

func TestListPage_NegativaEsEntradaInvalida(t *testing.T) {
	f := newComercioFixture(t)
	_, err := f.uc.ListPage(context.Background(), -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListPage_DesplazamientoDesbordaEsEntradaInvalida(t *testing.T) {
	f := newComercioFixture(t, panaderia())
	ctx := context.Background()

	_, err := f.uc.ListPage(ctx, math.MaxInt)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.ListPage(ctx, math.MaxInt/usecase.ComercioPageSize+1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	page, err := f.uc.ListPage(ctx, math.MaxInt/usecase.ComercioPageSize)
	require.NoError(t, err)
	assert.True(t, page.Empty)
}

func TestTopLikes_TresPrimeros(t *testing.T) {
	f := newComercioFixture(t,
		entity.Comercio{ID: 1, Likes: 1}, entity.Comercio{ID: 2, Likes: 9},
		entity.Comercio{ID: 3, Likes: 5}, entity.Comercio{ID: 4, Likes: 7},
	)
	out, err := f.uc.TopLikes(context.Background())
	require.NoError(t, err)
	require.Len(t, out, usecase.TopLimit)
	assert.Equal(t, []int64{2, 4, 3}, []int64{out[0].ID, out[1].ID, out[2].ID})
}

func TestListados_VaciosSonListasVacias(t *testing.T) {
	f := newComercioFixture(t)
	ctx := context.Background()

	meses, err := f.uc.Meses(ctx)
	require.NoError(t, err)
	assert.NotNil(t, meses)
	assert.Empty(t, meses)

	acts, err := f.uc.Actividades(ctx)
	require.NoError(t, err)
	assert.NotNil(t, acts)

	out, err := f.uc.SearchByActividad(ctx, "nada")
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

// ──────────────────────────────────────────────────────────────────────────────
// Contadores
// ──────────────────────────────────────────────────────────────────────────────

func TestAddLike_SumaUno(t *testing.T) {
	f := newComercioFixture(t, panaderia())

	out, err := f.uc.AddLike(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), out.Likes)
	assert.Equal(t, int64(5), f.repo.rows[1].Likes)
}

func TestAddVisita_SumaUno(t *testing.T) {
	f := newComercioFixture(t, panaderia())

	out, err := f.uc.AddVisita(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(21), out.Visitas)
}

func TestAddLike_Inexistente404(t *testing.T) {
	f := newComercioFixture(t)
	_, err := f.uc.AddLike(context.Background(), 8)
	requireFault(t, err, domain.FaultNotFound)
}

func TestAddVisita_ErrorDeBaseDeDatos(t *testing.T) {
	f := newComercioFixture(t, panaderia())
	f.repo.fail = errDB

	_, err := f.uc.AddVisita(context.Background(), 1)
	fault := requireFault(t, err, domain.FaultPersistence)
	assert.Equal(t, "Error al realizar el update de visitas en la base de datos", fault.Message)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta, edición y baja
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_CampoObligatorioVacio(t *testing.T) {
	f := newComercioFixture(t)

	_, err := f.uc.Create(context.Background(), dto.ComercioRequest{Actividad: "bar"})
	fault := requireFault(t, err, domain.FaultValidation)
	assert.Equal(t, "error", fault.ErrorsKey)
	require.Len(t, fault.Errors, 1)
	assert.Contains(t, fault.Errors[0], "'nombre'")
}

func TestCreate_FechaYMesPorDefecto(t *testing.T) {
	f := newComercioFixture(t)

	out, err := f.uc.Create(context.Background(), dto.ComercioRequest{ID: 99, Nombre: "Bar Luna", Actividad: "bar"})
	require.NoError(t, err)
	assert.NotEqual(t, int64(99), out.ID)
	today := time.Now()
	assert.Equal(t, today.Format(dto.DateLayout), out.Fecha)
	assert.Equal(t, int(today.Month()), out.Mes)
}

func TestCreate_RespetaFechaYMes(t *testing.T) {
	f := newComercioFixture(t)

	out, err := f.uc.Create(context.Background(), dto.ComercioRequest{Nombre: "Bar", Actividad: "bar", Fecha: "2023-11-05"})
	require.NoError(t, err)
	assert.Equal(t, "2023-11-05", out.Fecha)
	assert.Equal(t, 11, out.Mes)
}

func TestUpdate_SoloIDNombreYLikes(t *testing.T) {
	f := newComercioFixture(t, panaderia())

	out, err := f.uc.Update(context.Background(), 1, dto.ComercioRequest{
		ID: 1, Nombre: "Panadería Luna", Likes: 100, Visitas: 0, Actividad: "otra", Mes: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, "Panadería Luna", out.Nombre)
	assert.Equal(t, int64(100), out.Likes)
	assert.Equal(t, int64(20), out.Visitas)
	assert.Equal(t, "panaderia", out.Actividad)
	assert.Equal(t, 3, out.Mes)
}

func TestUpdate_Inexistente(t *testing.T) {
	f := newComercioFixture(t)
	_, err := f.uc.Update(context.Background(), 5, dto.ComercioRequest{Nombre: "x", Actividad: "y"})
	fault := requireFault(t, err, domain.FaultNotFound)
	assert.Contains(t, fault.Message, "ID: 5")
}

func TestUpdate_ValidacionUsaClaveErrors(t *testing.T) {
	f := newComercioFixture(t, panaderia())
	_, err := f.uc.Update(context.Background(), 1, dto.ComercioRequest{Nombre: "x"})
	fault := requireFault(t, err, domain.FaultValidation)
	assert.Equal(t, "errors", fault.ErrorsKey)
}

func TestDelete_DosVeces(t *testing.T) {
	f := newComercioFixture(t, panaderia())
	ctx := context.Background()

	require.NoError(t, f.uc.Delete(ctx, 1))
	err := f.uc.Delete(ctx, 1)
	fault := requireFault(t, err, domain.FaultPersistence)
	assert.Equal(t, "Error al eliminar el comercio de la base de datos", fault.Message)
}

func TestDelete_NoBorraImagenes(t *testing.T) {
	c := panaderia()
	c.Img = "vieja.jpg"
	f := newComercioFixture(t, c)
	writeFile(t, f.dir, "vieja.jpg", "x")

	require.NoError(t, f.uc.Delete(context.Background(), 1))
	assert.True(t, f.store.Exists(context.Background(), "vieja.jpg"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Imágenes
// ──────────────────────────────────────────────────────────────────────────────

func TestUploadPhotos_ReemplazaLasTres(t *testing.T) {
	c := panaderia()
	c.Img, c.Img1, c.Img2 = "a.jpg", "b.jpg", "falta.jpg"
	f := newComercioFixture(t, c)
	writeFile(t, f.dir, "a.jpg", "a")
	writeFile(t, f.dir, "b.jpg", "b")
	ctx := context.Background()

	res, err := f.uc.UploadPhotos(ctx, 1, [3]*dto.FileUpload{
		upload("uno.jpg", "1"), upload("dos.jpg", "2"), upload("tres.jpg", "3"),
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.True(t, strings.HasSuffix(res.Comercio.Img, "_uno.jpg"))
	assert.True(t, strings.HasSuffix(res.Comercio.Img1, "_dos.jpg"))
	assert.True(t, strings.HasSuffix(res.Comercio.Img2, "_tres.jpg"))
	assert.Contains(t, res.Mensaje, res.Comercio.Img)

	for _, name := range []string{res.Comercio.Img, res.Comercio.Img1, res.Comercio.Img2} {
		assert.True(t, f.store.Exists(ctx, name))
	}
	assert.False(t, f.store.Exists(ctx, "a.jpg"))
	assert.False(t, f.store.Exists(ctx, "b.jpg"))
}

func TestUploadPhotos_TerceroVacioSeGuarda(t *testing.T) {
	f := newComercioFixture(t, panaderia())

	res, err := f.uc.UploadPhotos(context.Background(), 1, [3]*dto.FileUpload{
		upload("uno.jpg", "1"), upload("dos.jpg", "2"), upload("tres.jpg", ""),
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, f.store.Exists(context.Background(), res.Comercio.Img2))
}

func TestUploadPhotos_PrimeroOSegundoVacioNoCambiaNada(t *testing.T) {
	c := panaderia()
	c.Img = "a.jpg"
	f := newComercioFixture(t, c)
	writeFile(t, f.dir, "a.jpg", "a")

	for _, files := range [][3]*dto.FileUpload{
		{upload("uno.jpg", ""), upload("dos.jpg", "2"), upload("tres.jpg", "3")},
		{upload("uno.jpg", "1"), upload("dos.jpg", ""), upload("tres.jpg", "3")},
	} {
		res, err := f.uc.UploadPhotos(context.Background(), 1, files)
		require.NoError(t, err)
		assert.Nil(t, res)
	}

	entries, err := os.ReadDir(f.dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "a.jpg", f.repo.rows[1].Img)
}

func TestUploadPhotos_ComercioInexistente(t *testing.T) {
	f := newComercioFixture(t)
	_, err := f.uc.UploadPhotos(context.Background(), 3, [3]*dto.FileUpload{
		upload("uno.jpg", "1"), upload("dos.jpg", "2"), upload("tres.jpg", "3"),
	})
	requireFault(t, err, domain.FaultNotFound)
}

func TestUploadOnePhoto_Posiciones(t *testing.T) {
	f := newComercioFixture(t, panaderia())
	ctx := context.Background()

	for slot, get := range map[int]func(*dto.ComercioResponse) string{
		1: func(c *dto.ComercioResponse) string { return c.Img },
		2: func(c *dto.ComercioResponse) string { return c.Img1 },
		3: func(c *dto.ComercioResponse) string { return c.Img2 },
	} {
		res, err := f.uc.UploadOnePhoto(ctx, 1, slot, upload("foto.png", "png"))
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(get(res.Comercio), "_foto.png"), "slot %d", slot)
	}
}

func TestUploadOnePhoto_PosicionInvalida(t *testing.T) {
	f := newComercioFixture(t, panaderia())
	_, err := f.uc.UploadOnePhoto(context.Background(), 1, 4, upload("foto.png", "png"))
	fault := requireFault(t, err, domain.FaultValidation)
	assert.Contains(t, fault.Errors[0], "imgUpdated")
}

func TestUploadOnePhoto_VacioNoHaceNada(t *testing.T) {
	f := newComercioFixture(t, panaderia())
	res, err := f.uc.UploadOnePhoto(context.Background(), 1, 1, upload("foto.png", ""))
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestOpenPhoto_MismosBytes(t *testing.T) {
	f := newComercioFixture(t, panaderia())
	ctx := context.Background()

	res, err := f.uc.UploadOnePhoto(ctx, 1, 1, upload("foto.png", "contenido-png"))
	require.NoError(t, err)

	photo, err := f.uc.OpenPhoto(ctx, res.Comercio.Img)
	require.NoError(t, err)
	defer photo.Content.Close()
	data, err := io.ReadAll(photo.Content)
	require.NoError(t, err)
	assert.Equal(t, "contenido-png", string(data))
	assert.Equal(t, res.Comercio.Img, photo.Name)
}

func TestOpenPhoto_Inexistente(t *testing.T) {
	f := newComercioFixture(t)
	_, err := f.uc.OpenPhoto(context.Background(), "nada.jpg")
	require.Error(t, err)
	_, isFault := domain.AsFault(err)
	assert.False(t, isFault)

	var pe *domain.PhotoError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "no se pudo cargar la imagen nada.jpg", pe.Error())
	assert.NotContains(t, err.Error(), f.dir)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPhotoName_LimpiaNombreOriginal(t *testing.T) {
	name := usecase.PhotoName(`C:\fotos\Mi Café.jpg`)
	parts := strings.SplitN(name, "_", 2)
	require.Len(t, parts, 2)
	assert.Len(t, parts[0], 36)
	assert.Equal(t, "MiCafe.jpg", parts[1])

	assert.NotEqual(t, usecase.PhotoName("a.jpg"), usecase.PhotoName("a.jpg"))
	assert.True(t, strings.HasSuffix(usecase.PhotoName("../../etc/passwd"), "_passwd"))
}

func TestUploadPhotos_FalloDeEscrituraNoDeshaceNiGuarda(t *testing.T) {
	c := panaderia()
	c.Img, c.Img1, c.Img2 = "a.jpg", "b.jpg", "c.jpg"
	f := newComercioFixture(t, c)
	for _, name := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		writeFile(t, f.dir, name, name)
	}
	store := &failingStore{PhotoStore: f.store, failOn: 2}
	uc := usecase.NewComercioUseCase(f.repo, &memComentarios{}, store, nil, logger.Nop())

	_, err := uc.UploadPhotos(context.Background(), 1, [3]*dto.FileUpload{
		upload("uno.jpg", "1"), upload("dos.jpg", "2"), upload("tres.jpg", "3"),
	})
	fault := requireFault(t, err, domain.FaultStorage)
	assert.True(t, strings.HasPrefix(fault.Message, "Error al subir las imágenes del comercio "))
	assert.Contains(t, fault.Detail(), "disco lleno")

	// la primera imagen queda escrita; las anteriores siguen ahí
	entries, err := os.ReadDir(f.dir)
	require.NoError(t, err)
	var nuevas []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), "_uno.jpg") {
			nuevas = append(nuevas, e.Name())
		}
	}
	assert.Len(t, nuevas, 1)
	assert.Len(t, entries, 4)

	guardado := f.repo.rows[1]
	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, []string{guardado.Img, guardado.Img1, guardado.Img2})
}

func TestUploadOnePhoto_FalloDeEscritura(t *testing.T) {
	c := panaderia()
	c.Img1 = "b.jpg"
	f := newComercioFixture(t, c)
	writeFile(t, f.dir, "b.jpg", "b")
	store := &failingStore{PhotoStore: f.store, failOn: 1}
	uc := usecase.NewComercioUseCase(f.repo, &memComentarios{}, store, nil, logger.Nop())

	_, err := uc.UploadOnePhoto(context.Background(), 1, 2, upload("foto.png", "png"))
	fault := requireFault(t, err, domain.FaultStorage)
	assert.NotEmpty(t, fault.Detail())
	assert.Equal(t, "b.jpg", f.repo.rows[1].Img1)
	assert.True(t, f.store.Exists(context.Background(), "b.jpg"))
}
