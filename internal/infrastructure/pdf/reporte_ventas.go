// Package pdf implementa la generación del reporte imprimible de ventas
// usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de Ventas  │  Período consultado           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FILTROS: resumen de las dimensiones activas                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Comprobante | Artículo | Medio | Cant | $   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: filas / total facturado / margen                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/tangopuntohogar-collab/Retail/internal/application/tablero"
	"github.com/tangopuntohogar-collab/Retail/internal/domain/ventas"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimario = &props.Color{Red: 15, Green: 23, Blue: 42}
	colorGris     = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generador ─────────────────────────────────────────────────────────────────

// ReporteVentas implementa tablero.GeneradorReportePDF usando Maroto v2.
type ReporteVentas struct{}

// NewReporteVentas construye el generador.
func NewReporteVentas() *ReporteVentas { return &ReporteVentas{} }

var _ tablero.GeneradorReportePDF = (*ReporteVentas)(nil)

// Generar genera el PDF del reporte y devuelve sus bytes.
func (g *ReporteVentas) Generar(datos tablero.DatosReporte) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Reporte de Ventas", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(encabezadoReporte(datos.Rango))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimario, Thickness: 0.5}))
	m.AddRows(filtrosActivos(datos.ResumenFiltros))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimario, Thickness: 0.3}))

	m.AddRows(encabezadoTabla())
	for _, r := range filasTabla(datos.Filas) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimario, Thickness: 0.3}))
	m.AddRows(totalesReporte(datos))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// encabezadoReporte: título (izq) y período consultado (der).
func encabezadoReporte(rango ventas.Rango) core.Row {
	periodo := "Todas las fechas"
	if rango.Completo() {
		periodo = fmt.Sprintf("%s al %s", fechaCorta(rango.FechaDesde), fechaCorta(rango.FechaHasta))
	}
	return row.New(14).Add(
		col.New(7).Add(
			text.New("REPORTE DE VENTAS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimario, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Período", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimario, Top: 1,
			}),
			text.New(periodo, props.Text{
				Size: 9, Align: align.Right, Top: 7, Color: colorGris,
			}),
		),
	)
}

// filtrosActivos: resumen de las dimensiones filtradas.
func filtrosActivos(resumen string) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("FILTROS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimario, Top: 1,
			}),
			text.New(resumen, props.Text{Size: 7.5, Top: 6, Color: colorGris}),
		),
	)
}

// encabezadoTabla: cabecera de la tabla de filas.
func encabezadoTabla() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: a,
			Color: colorPrimario, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 1, align.Left),
		h("Comprobante", 2, align.Left),
		h("Artículo", 3, align.Left),
		h("Cliente", 2, align.Left),
		h("Medio de Pago", 2, align.Left),
		h("Cant.", 1, align.Right),
		h("Total c/IVA", 1, align.Right),
	)
}

// filasTabla: una fila por línea de venta de la página.
func filasTabla(filas []ventas.Venta) []core.Row {
	salida := make([]core.Row, 0, len(filas))
	for _, v := range filas {
		salida = append(salida, row.New(6).Add(
			col.New(1).Add(text.New(
				v.Fecha.Format("02/01/06"),
				props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				v.NComp,
				props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				v.Descripcio,
				props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				v.RazonSocial,
				props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				v.MedioPago(),
				props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				v.Cantidad.StringFixed(0),
				props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				formatearMonto(v.ImporteReal()),
				props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return salida
}

// totalesReporte: bloque de totales del pie.
func totalesReporte(datos tablero.DatosReporte) core.Row {
	etiqueta := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Right: 2,
		})
	}
	valor := func(s string) core.Component {
		return text.New(s, props.Text{Size: 8, Align: align.Right, Right: 1})
	}

	filasPagina := fmt.Sprintf("%d de %d coincidencias", len(datos.Filas), datos.TotalFilas)
	return row.New(20).Add(
		col.New(4).Add(
			text.New(filasPagina, props.Text{Size: 7.5, Color: colorGris, Top: 2}),
		),
		col.New(4).Add(
			etiqueta("Total facturado:"),
			etiqueta("Margen:"),
		),
		col.New(4).Add(
			valor("$ "+formatearMonto(datos.TotalFacturado)),
			valor("$ "+formatearMonto(datos.MargenTotal)),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func fechaCorta(fecha string) string {
	partes := strings.Split(fecha, "-")
	if len(partes) != 3 {
		return fecha
	}
	return partes[2] + "/" + partes[1] + "/" + partes[0]
}

// formatearMonto formato regional: puntos de miles y coma decimal.
// Ej: 1234567.5 → "1.234.567,50"
func formatearMonto(d decimal.Decimal) string {
	s := d.StringFixed(2)
	negativo := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	entero, dec, _ := strings.Cut(s, ".")
	var b strings.Builder
	if negativo {
		b.WriteByte('-')
	}
	for i, c := range entero {
		resto := len(entero) - i
		if i > 0 && resto%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	b.WriteByte(',')
	b.WriteString(dec)
	return b.String()
}
