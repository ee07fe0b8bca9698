package http

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/eva-blog/blog-api/internal/application/dto"
	"github.com/eva-blog/blog-api/internal/application/usecase"
)

// UsuarioHandler maneja las peticiones HTTP del perfil de administrador.
type UsuarioHandler struct {
	uc *usecase.UsuarioUseCase
}

// NewUsuarioHandler construye el handler.
func NewUsuarioHandler(uc *usecase.UsuarioUseCase) *UsuarioHandler {
	return &UsuarioHandler{uc: uc}
}

// GetByID godoc
// @Summary      Obtener usuario por ID
// @Tags         usuarios
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.UsuarioResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/usuarios/{id} [get]
func (h *UsuarioHandler) GetByID(c *fiber.Ctx) error {
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

// Update godoc
// @Summary      Editar perfil de usuario
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del usuario"
// @Param        body  body  dto.UsuarioRequest  true  "Perfil"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  map[string][]string
// @Failure      404   {object}  map[string]string
// @Router       /api/usuarios/{id} [put]
func (h *UsuarioHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.UsuarioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": []string{"cuerpo inválido: " + err.Error()}})
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return replyFault(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"mensaje": "El usuario admin ha sido actualizado con éxito!",
		"usuario": out,
	})
}

// UpdatePassword godoc
// @Summary      Cambiar la contraseña del administrador
// @Tags         usuarios
// @Accept       plain
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PasswordRequest  true  "Texto plano o {\"password\": \"...\"}"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  map[string][]string
// @Failure      404   {object}  map[string]string
// @Router       /api/usuarios/password [put]
func (h *UsuarioHandler) UpdatePassword(c *fiber.Ctx) error {
	out, err := h.uc.UpdatePassword(c.Context(), passwordFromBody(c.Body()))
	if err != nil {
		return replyFault(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"mensaje": "El usuario admin ha sido actualizado con éxito!",
		"usuario": out,
	})
}

// passwordFromBody acepta {"password": "..."} o el password como texto plano. Un cuerpo
// JSON válido se toma siempre como objeto, aunque el password venga vacío.
func passwordFromBody(body []byte) string {
	var in dto.PasswordRequest
	if err := json.Unmarshal(body, &in); err == nil {
		return in.Password
	}
	return strings.TrimSpace(string(body))
}

// UploadPhoto godoc
// @Summary      Subir foto de perfil
// @Tags         usuarios
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        archivo  formData  file  true  "Imagen"
// @Param        id       formData  int   true  "ID del usuario"
// @Success      201  {object}  map[string]interface{}
// @Router       /api/usuarios/foto [post]
func (h *UsuarioHandler) UploadPhoto(c *fiber.Ctx) error {
	return h.upload(c, h.uc.UploadPhoto)
}

// UploadCoverPhoto godoc
// @Summary      Subir foto de portada
// @Tags         usuarios
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        archivo  formData  file  true  "Imagen"
// @Param        id       formData  int   true  "ID del usuario"
// @Success      201  {object}  map[string]interface{}
// @Router       /api/usuarios/editarfotoPortada [post]
func (h *UsuarioHandler) UploadCoverPhoto(c *fiber.Ctx) error {
	return h.upload(c, h.uc.UploadCoverPhoto)
}

type usuarioUpload func(ctx context.Context, id int64, file *dto.FileUpload) (*usecase.UsuarioPhotoResult, error)

func (h *UsuarioHandler) upload(c *fiber.Ctx, fn usuarioUpload) error {
	up, done, err := formFile(c, "archivo")
	if err != nil {
		return err
	}
	defer done()
	id, err := formID(c)
	if err != nil {
		return err
	}
	res, err := fn(c.Context(), id, up)
	if err != nil {
		return replyFault(c, err)
	}
	if res == nil {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"usuario": res.Usuario,
		"mensaje": res.Mensaje,
	})
}

// Photo godoc
// @Summary      Descargar foto de perfil
// @Tags         usuarios
// @Produce      octet-stream
// @Param        nombreFoto  path  string  true  "Nombre del archivo"
// @Success      200  {file}  file
// @Router       /api/descargasAdmin/img/{nombreFoto} [get]
func (h *UsuarioHandler) Photo(c *fiber.Ctx) error {
	return h.send(c, c.Params("nombreFoto"))
}

// CoverPhoto godoc
// @Summary      Descargar foto de portada
// @Tags         usuarios
// @Produce      octet-stream
// @Param        fotoPortada  path  string  true  "Nombre del archivo"
// @Success      200  {file}  file
// @Router       /api/fotoPortada/img/{fotoPortada} [get]
func (h *UsuarioHandler) CoverPhoto(c *fiber.Ctx) error {
	return h.send(c, c.Params("fotoPortada"))
}

func (h *UsuarioHandler) send(c *fiber.Ctx, name string) error {
	photo, err := h.uc.OpenPhoto(c.Context(), name)
	if err != nil {
		return err
	}
	return sendPhoto(c, photo)
}
