package http

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/eva-blog/blog-api/internal/application/dto"
	"github.com/eva-blog/blog-api/internal/application/usecase"
	"github.com/eva-blog/blog-api/internal/domain"
	"github.com/eva-blog/blog-api/internal/domain/entity"
)

// ComercioHandler maneja las peticiones HTTP para Comercio.
type ComercioHandler struct {
	uc *usecase.ComercioUseCase
}

// NewComercioHandler construye el handler.
func NewComercioHandler(uc *usecase.ComercioUseCase) *ComercioHandler {
	return &ComercioHandler{uc: uc}
}

// List godoc
// @Summary      Listar comercios con sus comentarios
// @Tags         comercios
// @Produce      json
// @Success      200  {array}  dto.ComercioResponse
// @Router       /api/comercios [get]
func (h *ComercioHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Page godoc
// @Summary      Página de comercios (5 por página)
// @Tags         comercios
// @Security     Bearer
// @Produce      json
// @Param        page  path  int  true  "Número de página (desde 0)"
// @Success      200   {object}  dto.ComercioPage
// @Failure      400   {string}  string
// @Router       /api/comercios/page/{page} [get]
func (h *ComercioHandler) Page(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Params("page"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "el parámetro 'page' debe ser numérico")
	}
	out, err := h.uc.ListPage(c.Context(), page)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return fiber.NewError(fiber.StatusBadRequest, "número de página fuera de rango")
		}
		return err
	}
	return c.JSON(out)
}

// SearchByActividad godoc
// @Summary      Buscar comercios por actividad
// @Tags         comercios
// @Produce      json
// @Param        actividad  path  string  true  "Actividad"
// @Success      200  {array}  dto.ComercioResponse
// @Router       /api/comercios/{actividad}/busqueda [get]
func (h *ComercioHandler) SearchByActividad(c *fiber.Ctx) error {
	actividad, err := url.PathUnescape(c.Params("actividad"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "actividad mal codificada")
	}
	out, err := h.uc.SearchByActividad(c.Context(), actividad)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// SearchByMes godoc
// @Summary      Buscar comercios por mes de alta
// @Tags         comercios
// @Produce      json
// @Param        mes  path  int  true  "Mes (1-12)"
// @Success      200  {array}  dto.ComercioResponse
// @Router       /api/comercios/{mes}/mes [get]
func (h *ComercioHandler) SearchByMes(c *fiber.Ctx) error {
	mes, err := c.ParamsInt("mes")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "el parámetro 'mes' debe ser numérico")
	}
	out, err := h.uc.SearchByMes(c.Context(), mes)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// FindOneByMes godoc
// @Summary      Un comercio del mes
// @Tags         comercios
// @Produce      json
// @Param        mes  path  int  true  "Mes (1-12)"
// @Success      200  {array}  dto.ComercioResponse
// @Router       /api/comercios/{mes}/comercio [get]
func (h *ComercioHandler) FindOneByMes(c *fiber.Ctx) error {
	mes, err := c.ParamsInt("mes")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "el parámetro 'mes' debe ser numérico")
	}
	out, err := h.uc.FindOneByMes(c.Context(), mes)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Latest godoc
// @Summary      Comercio más reciente
// @Tags         comercios
// @Produce      json
// @Success      200  {array}  dto.ComercioResponse
// @Router       /api/comercios/date/comercio [get]
func (h *ComercioHandler) Latest(c *fiber.Ctx) error {
	out, err := h.uc.FindLatest(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Meses godoc
// @Summary      Meses con comercios
// @Tags         comercios
// @Produce      json
// @Success      200  {array}  int
// @Router       /api/comercios/meses [get]
func (h *ComercioHandler) Meses(c *fiber.Ctx) error {
	out, err := h.uc.Meses(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// TopLikes godoc
// @Summary      Comercios con más likes
// @Tags         comercios
// @Produce      json
// @Success      200  {array}  dto.ComercioResponse
// @Router       /api/comercios/maxLikes [get]
func (h *ComercioHandler) TopLikes(c *fiber.Ctx) error {
	out, err := h.uc.TopLikes(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// TopVisitas godoc
// @Summary      Comercios con más visitas
// @Tags         comercios
// @Produce      json
// @Success      200  {array}  dto.ComercioResponse
// @Router       /api/comercios/maxVisitas [get]
func (h *ComercioHandler) TopVisitas(c *fiber.Ctx) error {
	out, err := h.uc.TopVisitas(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Actividades godoc
// @Summary      Actividades distintas
// @Tags         comercios
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/comercios/allActividad [get]
func (h *ComercioHandler) Actividades(c *fiber.Ctx) error {
	out, err := h.uc.Actividades(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener comercio por ID
// @Tags         comercios
// @Produce      json
// @Param        id   path  int  true  "ID del comercio"
// @Success      200  {object}  dto.ComercioResponse
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/comercios/{id} [get]
func (h *ComercioHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return replyFault(c, err)
	}
	return c.JSON(out)
}

// AddLike godoc
// @Summary      Sumar un like
// @Tags         comercios
// @Produce      json
// @Param        id   path  int  true  "ID del comercio"
// @Success      200  {object}  dto.ComercioResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/comercios/{id}/likes [post]
func (h *ComercioHandler) AddLike(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.AddLike(c.Context(), id)
	if err != nil {
		return replyFault(c, err)
	}
	return c.JSON(out)
}

// AddVisita godoc
// @Summary      Sumar una visita
// @Tags         comercios
// @Produce      json
// @Param        id   path  int  true  "ID del comercio"
// @Success      200  {object}  dto.ComercioResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/comercios/{id}/visitas [post]
func (h *ComercioHandler) AddVisita(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.AddVisita(c.Context(), id)
	if err != nil {
		return replyFault(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear comercio
// @Tags         comercios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ComercioRequest  true  "Datos del comercio"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  map[string][]string
// @Failure      500   {object}  map[string]string
// @Router       /api/comercios/crear [post]
func (h *ComercioHandler) Create(c *fiber.Ctx) error {
	var in dto.ComercioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": []string{"cuerpo inválido: " + err.Error()}})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return replyFault(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"mensaje":  "El comercio ha sido creado con éxito!",
		"comercio": out,
	})
}

// Update godoc
// @Summary      Editar comercio (id, nombre y likes)
// @Tags         comercios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del comercio"
// @Param        body  body  dto.ComercioRequest  true  "Datos del comercio"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  map[string][]string
// @Failure      404   {object}  map[string]string
// @Router       /api/comercios/{id} [put]
func (h *ComercioHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.ComercioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": []string{"cuerpo inválido: " + err.Error()}})
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return replyFault(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"mensaje": "El comercio ha sido actualizado con éxito!",
		"cliente": out,
	})
}

// Upload godoc
// @Summary      Subir las tres imágenes de un comercio
// @Tags         comercios
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        archivo   formData  file  true  "Imagen principal"
// @Param        archivo1  formData  file  true  "Segunda imagen"
// @Param        archivo2  formData  file  true  "Tercera imagen"
// @Param        id        formData  int   true  "ID del comercio"
// @Success      201  {object}  map[string]interface{}
// @Router       /api/comercios/upload [post]
func (h *ComercioHandler) Upload(c *fiber.Ctx) error {
	var files [entity.ComercioPhotoSlots]*dto.FileUpload
	for i, field := range []string{"archivo", "archivo1", "archivo2"} {
		up, done, err := formFile(c, field)
		if err != nil {
			return err
		}
		defer done()
		files[i] = up
	}
	id, err := formID(c)
	if err != nil {
		return err
	}
	res, err := h.uc.UploadPhotos(c.Context(), id, files)
	if err != nil {
		return replyFault(c, err)
	}
	if res == nil {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"comercio": res.Comercio,
		"mensaje":  res.Mensaje,
	})
}

// UploadOne godoc
// @Summary      Reemplazar una imagen de un comercio
// @Tags         comercios
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        imgUpdated  path      int   true  "Posición 1, 2 o 3"
// @Param        archivo     formData  file  true  "Imagen"
// @Param        id          formData  int   true  "ID del comercio"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string][]string
// @Router       /api/comercios/uploadOneFoto/{imgUpdated} [post]
func (h *ComercioHandler) UploadOne(c *fiber.Ctx) error {
	slot, err := c.ParamsInt("imgUpdated")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "el parámetro 'imgUpdated' debe ser numérico")
	}
	up, done, err := formFile(c, "archivo")
	if err != nil {
		return err
	}
	defer done()
	id, err := formID(c)
	if err != nil {
		return err
	}
	res, err := h.uc.UploadOnePhoto(c.Context(), id, slot, up)
	if err != nil {
		return replyFault(c, err)
	}
	if res == nil {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"comercio": res.Comercio,
		"mensaje":  res.Mensaje,
	})
}

// Photo godoc
// @Summary      Descargar imagen de comercio
// @Tags         comercios
// @Produce      octet-stream
// @Param        nombreFoto  path  string  true  "Nombre del archivo"
// @Success      200  {file}  file
// @Router       /api/descargas/img/{nombreFoto} [get]
func (h *ComercioHandler) Photo(c *fiber.Ctx) error {
	photo, err := h.uc.OpenPhoto(c.Context(), c.Params("nombreFoto"))
	if err != nil {
		return err
	}
	return sendPhoto(c, photo)
}

// Delete godoc
// @Summary      Eliminar comercio
// @Tags         comercios
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del comercio"
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/comercio/{id} [delete]
func (h *ComercioHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return replyFault(c, err)
	}
	return c.JSON(fiber.Map{"mensaje": "El comercio ha sido  eliminado con éxito!"})
}
