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

	"github.com/tangopuntohogar-collab/Retail/internal/application/tablero"
	infrapdf "github.com/tangopuntohogar-collab/Retail/internal/infrastructure/pdf"
	"github.com/tangopuntohogar-collab/Retail/internal/infrastructure/postgres"
	httpRouter "github.com/tangopuntohogar-collab/Retail/internal/interfaces/http"
	"github.com/tangopuntohogar-collab/Retail/pkg/config"
	"github.com/tangopuntohogar-collab/Retail/pkg/logger"
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

	ventasRepo := postgres.NewVentasRepository(pool, cfg.Dashboard.LimiteEscaneo)
	reportePDF := infrapdf.NewReporteVentas()

	dashboardUC := tablero.NewDashboardUseCase(ventasRepo, log.Zerolog())
	grillaUC := tablero.NewGrillaUseCase(ventasRepo)
	opcionesUC := tablero.NewOpcionesUseCase(ventasRepo, log.Zerolog())
	exportacionUC := tablero.NewExportacionUseCase(ventasRepo, reportePDF)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // las exportaciones pueden tardar
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.LoggingMiddleware(log.Zerolog()))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Retail Dashboard API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		DashboardUC:   dashboardUC,
		GrillaUC:      grillaUC,
		OpcionesUC:    opcionesUC,
		ExportacionUC: exportacionUC,
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
