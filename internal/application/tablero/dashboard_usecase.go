package tablero

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tangopuntohogar-collab/Retail/internal/application/dto"
	"github.com/tangopuntohogar-collab/Retail/internal/domain/repository"
	"github.com/tangopuntohogar-collab/Retail/internal/domain/ventas"
)

// DashboardUseCase arma la respuesta completa del tablero: pide las métricas
// del período actual y del anterior en paralelo y las reestructura para los
// gráficos.
type DashboardUseCase struct {
	repo   repository.VentasRepository
	logger zerolog.Logger
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.VentasRepository, logger zerolog.Logger) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, logger: logger}
}

// Obtener consulta ambos períodos y devuelve el tablero armado.
//
// El período anterior es best-effort: si el rango actual está incompleto no se
// consulta (no existe un "mes anterior" de un rango abierto) y si la consulta
// falla se degrada a métricas en cero con un warning. Un fallo del período
// actual sí se propaga: sin él no hay tablero.
//
// categoriaDetalle restringe el mix detallado a una categoría de negocio;
// vacía muestra todos los medios.
func (uc *DashboardUseCase) Obtener(ctx context.Context, f ventas.Filtros, categoriaDetalle string) (*dto.DashboardDTO, error) {
	type resultado struct {
		metricas *ventas.Metricas
		err      error
	}

	actualCh := make(chan resultado, 1)
	anteriorCh := make(chan resultado, 1)

	go func() {
		m, err := uc.repo.Metricas(ctx, f)
		actualCh <- resultado{m, err}
	}()

	prev, hayAnterior := f.PeriodoAnterior()
	if hayAnterior {
		go func() {
			m, err := uc.repo.Metricas(ctx, prev)
			anteriorCh <- resultado{m, err}
		}()
	} else {
		anteriorCh <- resultado{}
	}

	resActual := <-actualCh
	resAnterior := <-anteriorCh

	if resActual.err != nil {
		return nil, fmt.Errorf("tablero: métricas del período actual: %w", resActual.err)
	}
	actual := *resActual.metricas

	anterior := ventas.MetricasVacias()
	switch {
	case resAnterior.err != nil:
		uc.logger.Warn().Err(resAnterior.err).
			Str("fecha_desde", prev.FechaDesde).
			Str("fecha_hasta", prev.FechaHasta).
			Msg("Métricas del período anterior no disponibles, se compara contra cero")
	case resAnterior.metricas != nil:
		anterior = *resAnterior.metricas
	}

	barras, maxBarras := BarrasPorSucursal(actual.Apilado, anterior.Apilado)

	salida := &dto.DashboardDTO{
		KPIs:          ArmarKPIs(actual.KPIs),
		Barras:        barras,
		MaxBarras:     maxBarras,
		MixAgrupado:   MixAgrupado(actual.Apilado),
		MixDetallado:  MixDetallado(actual.Apilado, categoriaDetalle),
		TopArticulos:  ArmarTopArticulos(actual.TopArticulos),
		Dispersion:    PuntosDispersion(actual.PuntosRubro),
		PeriodoActual: armarPeriodo(f.Rango()),
	}
	if hayAnterior {
		salida.PeriodoAnterior = armarPeriodo(prev.Rango())
	}
	return salida, nil
}

func armarPeriodo(r ventas.Rango) dto.PeriodoDTO {
	return dto.PeriodoDTO{
		Etiqueta:   etiquetaMes(r.FechaDesde),
		FechaDesde: r.FechaDesde,
		FechaHasta: r.FechaHasta,
	}
}
