package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/eva-blog/blog-api/internal/application/dto"
	"github.com/eva-blog/blog-api/internal/infrastructure/authz"
	"github.com/eva-blog/blog-api/pkg/jwt"
	"github.com/eva-blog/blog-api/pkg/logger"
)

// Locals keys para UserID y Role en Fiber.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// Authorize consulta la tabla de permisos para cada petición. Las rutas que no figuran
// pasan sin token; las protegidas exigen un Bearer Token cuyo rol tenga permiso.
func Authorize(enforcer *authz.Enforcer, jwtSecret string, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := authz.NormalizePath(c.Path())
		if !enforcer.Protected(c.Method(), path) {
			return c.Next()
		}
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}

		allowed, err := enforcer.Allowed(role, c.Method(), path)
		if err != nil {
			log.Error().Err(err).Str("path", c.Path()).Msg("error evaluando permisos")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudieron evaluar los permisos"})
		}
		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no tienes permisos para esta operación"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (0 en rutas públicas).
func GetUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalUserID).(int64)
	return id
}

// GetRole devuelve el rol del contexto ("" en rutas públicas).
func GetRole(c *fiber.Ctx) string {
	role, _ := c.Locals(LocalRole).(string)
	return role
}
