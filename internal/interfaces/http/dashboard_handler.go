package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tangopuntohogar-collab/Retail/internal/application/dto"
	"github.com/tangopuntohogar-collab/Retail/internal/application/tablero"
	"github.com/tangopuntohogar-collab/Retail/internal/domain"
	"github.com/tangopuntohogar-collab/Retail/internal/domain/ventas"
)

// DashboardHandler maneja los endpoints del tablero de ventas.
type DashboardHandler struct {
	uc *tablero.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *tablero.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Metricas devuelve el tablero completo para los filtros activos.
// GET /api/dashboard/metricas
//
// Acepta los mismos filtros que la grilla más `categoria`, que restringe el
// mix detallado de medios de pago a una categoría de negocio. El período
// anterior (un mes calendario atrás) se consulta en paralelo y viaja ya
// fusionado en las barras.
func (h *DashboardHandler) Metricas(c *fiber.Ctx) error {
	filtros, _, err := filtrosDeQuery(c)
	if err != nil {
		return respuestaFiltrosInvalidos(c, err)
	}

	salida, err := h.uc.Obtener(c.Context(), filtros, c.Query("categoria"))
	if err != nil {
		return respuestaError(c, err)
	}

	return c.JSON(salida)
}

// filtrosDeQuery parsea y valida los filtros comunes de la query string.
// Sin fechas en la query se asume el mes en curso.
func filtrosDeQuery(c *fiber.Ctx) (ventas.Filtros, int, error) {
	var req dto.FiltrosRequest
	if err := c.QueryParser(&req); err != nil {
		return ventas.Filtros{}, 0, err
	}
	filtros, err := req.AFiltros()
	if err != nil {
		return ventas.Filtros{}, 0, err
	}
	if filtros.FechaDesde == "" && filtros.FechaHasta == "" {
		rango := ventas.FiltrosPorDefecto(time.Now()).Rango()
		filtros.FechaDesde = rango.FechaDesde
		filtros.FechaHasta = rango.FechaHasta
	}
	return filtros, req.Pagina, nil
}

func respuestaFiltrosInvalidos(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "BAD_REQUEST", Message: err.Error(),
	})
}

// respuestaError mapea errores de los casos de uso a status HTTP: entrada
// inválida → 400, fallo de la consulta remota → 502, resto → 500.
func respuestaError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return respuestaFiltrosInvalidos(c, err)
	case errors.Is(err, domain.ErrConsultaFallo):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "REMOTE_ERROR", Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
}
