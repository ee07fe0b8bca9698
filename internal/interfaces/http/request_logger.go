package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/eva-blog/blog-api/pkg/logger"
)

// RequestLogger registra método, ruta, estado y duración de cada petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Int64("user_id", GetUserID(c)).
			Msg("request")
		return err
	}
}
