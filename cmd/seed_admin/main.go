// seed_admin crea un usuario administrador. Es la única vía para asignar el rol admin
// sin un token de administrador previo.
//
// Uso: go run ./cmd/seed_admin --email admin@tienda.com --password <clave> [--nombre Administrador]
// La contraseña también puede venir en ADMIN_PASSWORD.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-api/pkg/config"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

func main() {
	nombre := pflag.String("nombre", "Administrador", "nombre del administrador")
	email := pflag.String("email", "", "email del administrador (obligatorio)")
	password := pflag.String("password", os.Getenv("ADMIN_PASSWORD"), "contraseña (o ADMIN_PASSWORD)")
	pflag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "email y password son obligatorios")
		pflag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed_admin"})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	user, err := authUC.RegisterTrusted(ctx, dto.RegisterRequest{
		Nombre:   *nombre,
		Email:    *email,
		Password: *password,
		Rol:      entity.RoleAdmin,
	})
	if errors.Is(err, domain.ErrEmailAlreadyExists) {
		log.Warn().Str("email", *email).Msg("el usuario ya existe, no se modifica")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("crear administrador")
	}
	log.Info().Int64("id", user.ID).Str("email", user.Email).Msg("administrador creado")
}
