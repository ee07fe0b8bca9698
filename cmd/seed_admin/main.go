// seed_admin crea o actualiza el usuario administrador con un password hasheado con bcrypt.
//
// Uso: go run ./cmd/seed_admin -email admin@blog.local -password secreto -nombre Eva
// Si el email ya existe, actualiza su password y le asigna rol admin. Búsqueda y guardado
// van en la misma transacción.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/eva-blog/blog-api/internal/domain/entity"
	"github.com/eva-blog/blog-api/internal/domain/repository"
	"github.com/eva-blog/blog-api/internal/infrastructure/postgres"
	"github.com/eva-blog/blog-api/pkg/config"
	"github.com/eva-blog/blog-api/pkg/logger"
)

func main() {
	email := flag.String("email", "", "email del administrador")
	password := flag.String("password", "", "password en texto plano")
	nombre := flag.String("nombre", "Admin", "nombre del administrador")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "uso: seed_admin -email <email> -password <password> [-nombre <nombre>]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if cfg.DB.Migrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash de password")
	}

	var saved *entity.Usuario
	err = postgres.NewTxRunner(pool).RunUsuarios(ctx, func(usuarios repository.UsuarioRepository) error {
		u, err := usuarios.FindByEmail(ctx, *email)
		if err != nil {
			return fmt.Errorf("buscar usuario: %w", err)
		}
		if u == nil {
			u = &entity.Usuario{Nombre: *nombre, Email: *email}
		}
		u.Password = string(hash)
		u.Rol = entity.RolAdmin
		saved, err = usuarios.Save(ctx, u)
		return err
	})
	if err != nil {
		log.Fatal().Err(err).Msg("guardar usuario")
	}
	log.Info().Int64("id", saved.ID).Str("email", saved.Email).Msg("administrador listo")
}
