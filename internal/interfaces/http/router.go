package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/eva-blog/blog-api/internal/application/auth"
	"github.com/eva-blog/blog-api/internal/application/usecase"
	"github.com/eva-blog/blog-api/internal/infrastructure/authz"
	"github.com/eva-blog/blog-api/internal/infrastructure/metrics"
	"github.com/eva-blog/blog-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ComercioUC *usecase.ComercioUseCase
	UsuarioUC  *usecase.UsuarioUseCase
	AuthUC     *auth.AuthUseCase
	Enforcer   *authz.Enforcer
	Metrics    *metrics.Metrics // opcional
	JWTSecret  string
	Logger     *logger.Logger
}

// Router registra las rutas de la API. Las rutas fijas se registran antes que las
// de parámetro que comparten prefijo (/comercios/meses antes que /comercios/:id).
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api", Authorize(deps.Enforcer, deps.JWTSecret, deps.Logger))

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Comercios
	ch := NewComercioHandler(deps.ComercioUC)
	api.Get("/comercios", ch.List)
	api.Get("/comercios/meses", ch.Meses)
	api.Get("/comercios/maxLikes", ch.TopLikes)
	api.Get("/comercios/maxVisitas", ch.TopVisitas)
	api.Get("/comercios/allActividad", ch.Actividades)
	api.Get("/comercios/date/comercio", ch.Latest)
	api.Get("/comercios/page/:page", ch.Page)
	api.Get("/comercios/:actividad/busqueda", ch.SearchByActividad)
	api.Get("/comercios/:mes/mes", ch.SearchByMes)
	api.Get("/comercios/:mes/comercio", ch.FindOneByMes)
	api.Get("/comercios/:id", ch.GetByID)
	api.Post("/comercios/crear", ch.Create)
	api.Post("/comercios/upload", ch.Upload)
	api.Post("/comercios/uploadOneFoto/:imgUpdated", ch.UploadOne)
	api.Post("/comercios/:id/likes", ch.AddLike)
	api.Post("/comercios/:id/visitas", ch.AddVisita)
	api.Put("/comercios/:id", ch.Update)
	api.Delete("/comercio/:id", ch.Delete)
	api.Get("/descargas/img/:nombreFoto", ch.Photo)

	// Usuarios
	uh := NewUsuarioHandler(deps.UsuarioUC)
	api.Get("/usuarios/:id", uh.GetByID)
	api.Put("/usuarios/password", uh.UpdatePassword)
	api.Put("/usuarios/:id", uh.Update)
	api.Post("/usuarios/foto", uh.UploadPhoto)
	api.Post("/usuarios/editarfotoPortada", uh.UploadCoverPhoto)
	api.Get("/descargasAdmin/img/:nombreFoto", uh.Photo)
	api.Get("/fotoPortada/img/:fotoPortada", uh.CoverPhoto)
}
