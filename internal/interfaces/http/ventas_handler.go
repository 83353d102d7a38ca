package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/tangopuntohogar-collab/Retail/internal/application/tablero"
)

// VentasHandler maneja la grilla de detalle y sus exportaciones.
type VentasHandler struct {
	grilla      *tablero.GrillaUseCase
	exportacion *tablero.ExportacionUseCase
}

// NewVentasHandler construye el handler.
func NewVentasHandler(grilla *tablero.GrillaUseCase, exportacion *tablero.ExportacionUseCase) *VentasHandler {
	return &VentasHandler{grilla: grilla, exportacion: exportacion}
}

// Listar devuelve una página de la grilla de ventas.
// GET /api/ventas?fecha_desde=...&fecha_hasta=...&pagina=0
//
// Acepta todos los filtros del tablero como query params (multiselecciones
// separadas por coma). Respuesta: GrillaDTO con las filas, el total exacto y
// la aritmética de paginación resuelta.
func (h *VentasHandler) Listar(c *fiber.Ctx) error {
	filtros, pagina, err := filtrosDeQuery(c)
	if err != nil {
		return respuestaFiltrosInvalidos(c, err)
	}

	grilla, err := h.grilla.Listar(c.Context(), filtros, pagina)
	if err != nil {
		return respuestaError(c, err)
	}

	return c.JSON(grilla)
}

// ExportarCSV descarga la página filtrada como planilla.
// GET /api/ventas/export.csv
func (h *VentasHandler) ExportarCSV(c *fiber.Ctx) error {
	filtros, pagina, err := filtrosDeQuery(c)
	if err != nil {
		return respuestaFiltrosInvalidos(c, err)
	}

	contenido, nombre, err := h.exportacion.CSV(c.Context(), filtros, pagina)
	if err != nil {
		return respuestaError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", nombre))
	return c.Send(contenido)
}

// ExportarPDF descarga el reporte imprimible de la página filtrada.
// GET /api/ventas/export.pdf
func (h *VentasHandler) ExportarPDF(c *fiber.Ctx) error {
	filtros, pagina, err := filtrosDeQuery(c)
	if err != nil {
		return respuestaFiltrosInvalidos(c, err)
	}

	contenido, nombre, err := h.exportacion.PDF(c.Context(), filtros, pagina)
	if err != nil {
		return respuestaError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", nombre))
	return c.Send(contenido)
}
