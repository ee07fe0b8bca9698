package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/eva-blog/blog-api/internal/domain"
	"github.com/eva-blog/blog-api/pkg/logger"
)

// replyFault escribe el sobre {mensaje, error|errors} de un *domain.Fault.
// Cualquier otro error se devuelve a fiber y lo resuelve ErrorHandler.
func replyFault(c *fiber.Ctx, err error) error {
	f, ok := domain.AsFault(err)
	if !ok {
		return err
	}
	switch f.Kind {
	case domain.FaultValidation:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{f.ErrorsKey: f.Errors})
	case domain.FaultNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"mensaje": f.Message})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"mensaje": f.Message,
			"error":   f.Detail(),
		})
	}
}

// ErrorHandler responde en texto plano los errores que no llevan sobre JSON
// (listados, descarga de imágenes, parámetros inválidos). Solo los *fiber.Error y
// *domain.PhotoError publican su texto; el detalle completo va al log.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := utils.StatusMessage(code)
		var fe *fiber.Error
		var pe *domain.PhotoError
		switch {
		case errors.As(err, &fe):
			code, msg = fe.Code, fe.Message
		case errors.As(err, &pe):
			msg = pe.Error()
		}
		if code >= fiber.StatusInternalServerError {
			ev := log.Error().Err(err)
			if cause := errors.Unwrap(err); cause != nil {
				ev = ev.AnErr("causa", cause)
			}
			ev.Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(code).SendString(msg)
	}
}
