package repository

import (
	"context"

	"github.com/tangopuntohogar-collab/Retail/internal/domain/ventas"
)

// VentasRepository puerto de solo lectura contra la vista consolidada de
// ventas y sus funciones de agregación. Las implementaciones traducen los
// Filtros a la consulta remota; las dimensiones vacías se pasan como "sin
// restricción" (NULL/ausente), nunca como conjunto vacío.
type VentasRepository interface {
	// BuscarPagina devuelve la página pedida (base cero) de filas ordenadas
	// por fecha descendente, junto con el total exacto de coincidencias.
	// Un fallo remoto se propaga envuelto; no se reintenta.
	BuscarPagina(ctx context.Context, f ventas.Filtros, pagina int) (ventas.Pagina, error)

	// Metricas emite una única llamada de agregación con el mismo juego de
	// filtros y devuelve las métricas ya agregadas del servidor.
	Metricas(ctx context.Context, f ventas.Filtros) (*ventas.Metricas, error)

	// OpcionesDimension lista los valores distintos de una dimensión con
	// actividad en el rango. Solo aplica el rango de fechas: las demás
	// dimensiones no restringen las opciones. Si la función primaria falla
	// o devuelve vacío, la implementación cae a un escaneo directo de la
	// vista con deduplicación local.
	OpcionesDimension(ctx context.Context, dim ventas.Dimension, rango ventas.Rango) ([]string, error)

	// CuotasDisponibles valores distintos de cant_cuotas en el rango,
	// ordenados numéricamente.
	CuotasDisponibles(ctx context.Context, rango ventas.Rango) ([]int, error)
}
