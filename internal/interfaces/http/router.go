// Package http expone la API del tablero de ventas sobre Fiber.
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tangopuntohogar-collab/Retail/internal/application/tablero"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DashboardUC   *tablero.DashboardUseCase
	GrillaUC      *tablero.GrillaUseCase
	OpcionesUC    *tablero.OpcionesUseCase
	ExportacionUC *tablero.ExportacionUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Tablero
	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/metricas", dashboardHandler.Metricas)

	// Grilla de detalle + exportaciones
	ventas := api.Group("/ventas")
	ventasHandler := NewVentasHandler(deps.GrillaUC, deps.ExportacionUC)
	ventas.Get("/", ventasHandler.Listar)
	ventas.Get("/export.csv", ventasHandler.ExportarCSV)
	ventas.Get("/export.pdf", ventasHandler.ExportarPDF)

	// Opciones de filtros
	filtros := api.Group("/filtros")
	opcionesHandler := NewOpcionesHandler(deps.OpcionesUC)
	filtros.Get("/opciones", opcionesHandler.Opciones)
}
