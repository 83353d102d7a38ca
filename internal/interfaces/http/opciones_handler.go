package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tangopuntohogar-collab/Retail/internal/application/tablero"
)

// OpcionesHandler expone las listas de opciones de los paneles de filtros.
type OpcionesHandler struct {
	uc *tablero.OpcionesUseCase
}

// NewOpcionesHandler construye el handler.
func NewOpcionesHandler(uc *tablero.OpcionesUseCase) *OpcionesHandler {
	return &OpcionesHandler{uc: uc}
}

// Opciones devuelve los valores disponibles de todas las dimensiones para el
// rango de fechas pedido.
// GET /api/filtros/opciones?fecha_desde=...&fecha_hasta=...
//
// Solo el rango de fechas restringe las opciones; el resto de los filtros
// activos no aplica. El resultado se cachea por rango.
func (h *OpcionesHandler) Opciones(c *fiber.Ctx) error {
	filtros, _, err := filtrosDeQuery(c)
	if err != nil {
		return respuestaFiltrosInvalidos(c, err)
	}

	opciones, err := h.uc.Cargar(c.Context(), filtros.Rango())
	if err != nil {
		return respuestaError(c, err)
	}

	return c.JSON(opciones)
}
