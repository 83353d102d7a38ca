package tablero

import (
	"github.com/shopspring/decimal"

	"github.com/tangopuntohogar-collab/Retail/internal/domain/ventas"
)

// DatosReporte todo lo que el generador de PDF necesita para armar el reporte
// de la página actual: el rango consultado, un resumen legible de los filtros
// activos, las filas y los totales del pie.
type DatosReporte struct {
	Rango          ventas.Rango
	ResumenFiltros string
	Filas          []ventas.Venta
	TotalFilas     int // total de coincidencias, no solo la página
	TotalFacturado decimal.Decimal
	MargenTotal    decimal.Decimal
}

// GeneradorReportePDF puerto de salida hacia el motor de PDF.
type GeneradorReportePDF interface {
	Generar(datos DatosReporte) ([]byte, error)
}
