package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/eva-blog/blog-api/internal/application/auth"
	"github.com/eva-blog/blog-api/internal/application/ports"
	"github.com/eva-blog/blog-api/internal/application/usecase"
	"github.com/eva-blog/blog-api/internal/infrastructure/authz"
	"github.com/eva-blog/blog-api/internal/infrastructure/metrics"
	"github.com/eva-blog/blog-api/internal/infrastructure/postgres"
	"github.com/eva-blog/blog-api/internal/infrastructure/storage"
	httpRouter "github.com/eva-blog/blog-api/internal/interfaces/http"
	"github.com/eva-blog/blog-api/pkg/config"
	"github.com/eva-blog/blog-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: las rutas de administración responderán 401")
	}

	ctx := context.Background()
	if cfg.DB.Migrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), log.Named("migrate")); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	comerciosStore, adminStore, err := photoStores(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de imágenes")
	}

	comercioRepo := postgres.NewComercioRepository(pool)
	comentarioRepo := postgres.NewComentarioRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)

	m := metrics.New()
	comercioUC := usecase.NewComercioUseCase(comercioRepo, comentarioRepo, comerciosStore, m, log.Named("comercios"))
	usuarioUC := usecase.NewUsuarioUseCase(usuarioRepo, adminStore, m, log.Named("usuarios"), cfg.Usuario.PasswordUserID)
	authUC := auth.NewAuthUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	enforcer, err := authz.NewEnforcer(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("tabla de permisos")
	}

	app := fiber.New(fiber.Config{
		AppName:       cfg.App.Name,
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   time.Second * 10,
		WriteTimeout:  time.Second * 30,
		IdleTimeout:   time.Second * 60,
		BodyLimit:     cfg.HTTP.BodyLimitMB * 1024 * 1024,
		ErrorHandler:  httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.HTTP.CORSOrigins}))
	app.Use(m.Middleware())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Blog API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ComercioUC: comercioUC,
		UsuarioUC:  usuarioUC,
		AuthUC:     authUC,
		Enforcer:   enforcer,
		Metrics:    m,
		JWTSecret:  cfg.JWT.Secret,
		Logger:     log.Named("authz"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// photoStores crea los stores de imágenes de comercios y de administración según STORAGE_DRIVER.
func photoStores(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (ports.PhotoStore, ports.PhotoStore, error) {
	if cfg.Driver == "s3" {
		client, err := storage.NewS3Client(ctx, cfg.S3, log.Named("s3"))
		if err != nil {
			return nil, nil, err
		}
		return client.Store(cfg.ComerciosDir), client.Store(cfg.AdminDir), nil
	}
	comercios, err := storage.NewLocalStore(cfg.ComerciosDir)
	if err != nil {
		return nil, nil, err
	}
	admin, err := storage.NewLocalStore(cfg.AdminDir)
	if err != nil {
		return nil, nil, err
	}
	return comercios, admin, nil
}
