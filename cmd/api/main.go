package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/cn2-g7/usuarios-api/internal/application/usecase"
	"github.com/cn2-g7/usuarios-api/internal/infrastructure/events"
	"github.com/cn2-g7/usuarios-api/internal/infrastructure/postgres"
	apigraphql "github.com/cn2-g7/usuarios-api/internal/interfaces/graphql"
	httpRouter "github.com/cn2-g7/usuarios-api/internal/interfaces/http"
	"github.com/cn2-g7/usuarios-api/pkg/config"
	"github.com/cn2-g7/usuarios-api/pkg/logger"
	"github.com/cn2-g7/usuarios-api/pkg/password"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	usuarioRepo := postgres.NewUsuarioRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	publisher := events.NewPublisher(cfg.Events, log)
	passwords := password.New(cfg.Password.BcryptCost)

	usuarioUC := usecase.NewUsuarioUseCase(usuarioRepo, txRunner, passwords, publisher, cfg.Events.PublishReads)

	resolver := apigraphql.NewResolver(usuarioUC)
	schema, err := apigraphql.NewSchema(resolver)
	if err != nil {
		log.Fatal().Err(err).Msg("construir esquema GraphQL")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Usuarios API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		UsuarioUC: usuarioUC,
		Schema:    schema,
		Log:       log,
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
