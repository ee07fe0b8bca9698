package http

import (
	"fmt"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/eva-blog/blog-api/internal/application/dto"
)

// formFile abre el archivo del campo multipart field. El campo es obligatorio: si falta
// devuelve un error 400. La función devuelta cierra el archivo.
func formFile(c *fiber.Ctx, field string) (*dto.FileUpload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("falta el archivo '%s'", field))
	}
	return openUpload(fh)
}

func openUpload(fh *multipart.FileHeader) (*dto.FileUpload, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("abrir %s: %w", fh.Filename, err)
	}
	return &dto.FileUpload{Filename: fh.Filename, Size: fh.Size, Content: f}, func() { _ = f.Close() }, nil
}

// formID lee el campo de formulario "id".
func formID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.FormValue("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "el campo 'id' debe ser numérico")
	}
	return id, nil
}

// paramID lee el parámetro de ruta name como entero.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("el parámetro '%s' debe ser numérico", name))
	}
	return id, nil
}

// sendPhoto envía la imagen como descarga (Content-Disposition: attachment).
func sendPhoto(c *fiber.Ctx, photo *dto.PhotoFile) error {
	c.Attachment(photo.Name)
	return c.SendStream(photo.Content, int(photo.Size))
}
