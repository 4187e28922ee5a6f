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
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/tienda-api/docs"
	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/checkout"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	infracache "github.com/jhoicas/tienda-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/tienda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/tienda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/tienda-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-api/pkg/config"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("addr", cfg.HTTP.Addr()).
		Msg("iniciando aplicación")
	log.Debug().
		Bool("db_force_ipv4", cfg.DB.ForceIPv4).
		Int("db_max_conns", cfg.DB.MaxConns).
		Str("tickets_dir", cfg.Storage.TicketsDir).
		Str("uploads_dir", cfg.Storage.UploadsDir).
		Dur("catalog_cache_ttl", cfg.Cache.CatalogTTL).
		Int("login_rate_limit", cfg.HTTP.LoginRateLimit).
		Msg("configuración cargada")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ticketFiles, err := storage.NewTicketStore(cfg.Storage.TicketsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de tickets")
	}
	images, err := storage.NewImageStore(cfg.Storage.UploadsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de imágenes")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	ticketRepo := postgres.NewTicketRepository(pool)
	favoriteRepo := postgres.NewFavoriteRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Caché del catálogo: un TTL de 0 la desactiva.
	var catalogCache usecase.CatalogCache
	if cc := infracache.NewCatalogCache(cfg.Cache.CatalogTTL); cc != nil {
		catalogCache = cc
	}

	urls := checkout.URLBuilder{BaseURL: cfg.HTTP.PublicBaseURL}
	ticketPDF := infrapdf.NewMarotoTicketGenerator(cfg.App.Name)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.CORSOrigin,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type, Authorization",
		AllowCredentials: cfg.HTTP.CORSOrigin != "*",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Tienda API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Static("/uploads", cfg.Storage.UploadsDir)

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         usecase.NewUserUseCase(userRepo),
		ProductUC:      usecase.NewProductUseCase(productRepo, images, catalogCache),
		CartUC:         usecase.NewCartUseCase(cartRepo, productRepo),
		FavoriteUC:     usecase.NewFavoriteUseCase(favoriteRepo, productRepo),
		PurchaseUC:     usecase.NewPurchaseUseCase(purchaseRepo, ticketRepo),
		CheckoutUC:     checkout.NewCheckoutUseCase(txRunner, ticketPDF, ticketFiles, urls),
		TicketUC:       checkout.NewTicketUseCase(ticketRepo, ticketFiles, urls),
		LoginRateLimit: cfg.HTTP.LoginRateLimit,
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
