// Package tablero contiene los casos de uso del tablero de ventas: métricas
// comparadas, grilla paginada, opciones de filtro y exportaciones.
//
// Las funciones de este archivo son transformaciones puras sobre las métricas
// agregadas del servidor; no hacen I/O y dependen solo de sus entradas.
package tablero

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tangopuntohogar-collab/Retail/internal/application/dto"
	"github.com/tangopuntohogar-collab/Retail/internal/domain/ventas"
)

// CategoriaNegocio agrupación gruesa de medios de pago, con color y posición
// de apilado fijos.
type CategoriaNegocio struct {
	Clave    string
	Etiqueta string
	Color    string
}

// Categorias las cuatro categorías de negocio en orden fijo de apilado
// (base → tope). El orden y los colores son parte del contrato visual.
var Categorias = []CategoriaNegocio{
	{Clave: "CONTADO EFECTIVO", Etiqueta: "Contado Efectivo", Color: "#10b981"},
	{Clave: "TARJETA", Etiqueta: "Tarjeta", Color: "#3b82f6"},
	{Clave: "CRÉDITO FINANCIERA", Etiqueta: "Crédito Financiera", Color: "#f59e0b"},
	{Clave: "CUENTA CORRIENTE", Etiqueta: "Cuenta Corriente", Color: "#8b5cf6"},
}

const (
	// maxMediosDetalle medios individuales visibles antes de colapsar en "OTROS".
	maxMediosDetalle = 11

	colorOtros        = "#64748b"
	colorSinCategoria = "#94a3b8"
)

var cien = decimal.NewFromInt(100)

// ── Barras apiladas por sucursal ──────────────────────────────────────────────

type acumSucursal struct {
	total    decimal.Decimal
	montos   map[string]decimal.Decimal        // por categoría de negocio
	desglose map[string][]dto.DesgloseMedioDTO // por categoría de negocio
}

func acumularPorSucursal(puntos []ventas.PuntoApilado) map[string]*acumSucursal {
	porSucursal := make(map[string]*acumSucursal)
	for _, p := range puntos {
		a, ok := porSucursal[p.NroSucursal]
		if !ok {
			a = &acumSucursal{
				total:    decimal.Zero,
				montos:   make(map[string]decimal.Decimal),
				desglose: make(map[string][]dto.DesgloseMedioDTO),
			}
			porSucursal[p.NroSucursal] = a
		}
		a.total = a.total.Add(p.Monto)
		a.montos[p.CategoriaNegocio] = a.montos[p.CategoriaNegocio].Add(p.Monto)
		a.desglose[p.CategoriaNegocio] = append(a.desglose[p.CategoriaNegocio],
			dto.DesgloseMedioDTO{Medio: p.MedioPago, Monto: p.Monto})
	}
	return porSucursal
}

func barraDePeriodo(a *acumSucursal) dto.PeriodoBarraDTO {
	segmentos := make([]dto.SegmentoDTO, 0, len(Categorias))
	total := decimal.Zero
	for _, cat := range Categorias {
		seg := dto.SegmentoDTO{
			Clave:    cat.Clave,
			Etiqueta: cat.Etiqueta,
			Color:    cat.Color,
			Monto:    decimal.Zero,
		}
		if a != nil {
			seg.Monto = a.montos[cat.Clave]
			seg.Desglose = a.desglose[cat.Clave]
		}
		segmentos = append(segmentos, seg)
	}
	if a != nil {
		total = a.total
	}
	return dto.PeriodoBarraDTO{Total: total, Segmentos: segmentos}
}

// BarrasPorSucursal fusiona las series apiladas del período actual y el
// anterior en un par de barras por sucursal. Las sucursales presentes en un
// solo período aparecen igual, con el otro lado en cero. El orden es por
// total actual descendente y el máximo compartido (piso 1) escala ambas
// alturas proporcionalmente.
func BarrasPorSucursal(actual, anterior []ventas.PuntoApilado) ([]dto.BarraSucursalDTO, decimal.Decimal) {
	porActual := acumularPorSucursal(actual)
	porAnterior := acumularPorSucursal(anterior)

	sucursales := make([]string, 0, len(porActual)+len(porAnterior))
	vistas := make(map[string]struct{})
	for _, mapa := range []map[string]*acumSucursal{porActual, porAnterior} {
		for suc := range mapa {
			if _, ok := vistas[suc]; !ok {
				vistas[suc] = struct{}{}
				sucursales = append(sucursales, suc)
			}
		}
	}

	barras := make([]dto.BarraSucursalDTO, 0, len(sucursales))
	maxTotal := decimal.NewFromInt(1)
	for _, suc := range sucursales {
		b := dto.BarraSucursalDTO{
			NroSucursal: suc,
			Nombre:      fmt.Sprintf("Suc. %s", suc),
			Actual:      barraDePeriodo(porActual[suc]),
			Anterior:    barraDePeriodo(porAnterior[suc]),
		}
		if b.Actual.Total.GreaterThan(maxTotal) {
			maxTotal = b.Actual.Total
		}
		if b.Anterior.Total.GreaterThan(maxTotal) {
			maxTotal = b.Anterior.Total
		}
		barras = append(barras, b)
	}

	sort.SliceStable(barras, func(i, j int) bool {
		if !barras[i].Actual.Total.Equal(barras[j].Actual.Total) {
			return barras[i].Actual.Total.GreaterThan(barras[j].Actual.Total)
		}
		return barras[i].NroSucursal < barras[j].NroSucursal
	})
	return barras, maxTotal
}

// ── Mix de pagos ──────────────────────────────────────────────────────────────

// MixAgrupado suma los montos por categoría de negocio a través de todas las
// sucursales. El total general tiene piso 1 para evitar división por cero y
// las categorías sin monto se omiten de la salida.
func MixAgrupado(puntos []ventas.PuntoApilado) []dto.MixPagoDTO {
	totales := make(map[string]decimal.Decimal)
	granTotal := decimal.Zero
	for _, p := range puntos {
		totales[p.CategoriaNegocio] = totales[p.CategoriaNegocio].Add(p.Monto)
		granTotal = granTotal.Add(p.Monto)
	}
	if granTotal.IsZero() {
		granTotal = decimal.NewFromInt(1)
	}

	mix := make([]dto.MixPagoDTO, 0, len(Categorias))
	for _, cat := range Categorias {
		monto := totales[cat.Clave]
		if monto.IsZero() {
			continue
		}
		mix = append(mix, dto.MixPagoDTO{
			Clave:    cat.Clave,
			Etiqueta: cat.Etiqueta,
			Color:    cat.Color,
			Monto:    monto,
			Pct:      porcentaje(monto, granTotal),
		})
	}
	return mix
}

// MixDetallado suma por medio de pago individual, opcionalmente restringido a
// una categoría de negocio. Orden descendente por monto; con más de 11 medios
// se conservan los 11 primeros y el resto colapsa en una entrada sintética
// "OTROS" al final.
func MixDetallado(puntos []ventas.PuntoApilado, categoriaSeleccionada string) []dto.MixPagoDTO {
	type acumMedio struct {
		monto     decimal.Decimal
		categoria string
	}
	porMedio := make(map[string]*acumMedio)
	orden := make([]string, 0)
	for _, p := range puntos {
		if categoriaSeleccionada != "" && p.CategoriaNegocio != categoriaSeleccionada {
			continue
		}
		a, ok := porMedio[p.MedioPago]
		if !ok {
			a = &acumMedio{categoria: p.CategoriaNegocio}
			porMedio[p.MedioPago] = a
			orden = append(orden, p.MedioPago)
		}
		a.monto = a.monto.Add(p.Monto)
	}

	medios := make([]dto.MixPagoDTO, 0, len(porMedio))
	granTotal := decimal.Zero
	for _, medio := range orden {
		a := porMedio[medio]
		medios = append(medios, dto.MixPagoDTO{
			Clave:    medio,
			Etiqueta: medio,
			Color:    colorDeCategoria(a.categoria),
			Monto:    a.monto,
		})
		granTotal = granTotal.Add(a.monto)
	}
	if granTotal.IsZero() {
		granTotal = decimal.NewFromInt(1)
	}

	sort.SliceStable(medios, func(i, j int) bool {
		if !medios[i].Monto.Equal(medios[j].Monto) {
			return medios[i].Monto.GreaterThan(medios[j].Monto)
		}
		return medios[i].Etiqueta < medios[j].Etiqueta
	})

	if len(medios) > maxMediosDetalle {
		resto := decimal.Zero
		for _, m := range medios[maxMediosDetalle:] {
			resto = resto.Add(m.Monto)
		}
		medios = append(medios[:maxMediosDetalle], dto.MixPagoDTO{
			Clave:    "OTROS",
			Etiqueta: "OTROS",
			Color:    colorOtros,
			Monto:    resto,
		})
	}

	for i := range medios {
		medios[i].Pct = porcentaje(medios[i].Monto, granTotal)
	}
	return medios
}

// ── Dispersión por rubro ──────────────────────────────────────────────────────

// PuntosDispersion normaliza los puntos (margen promedio, cantidad) de cada
// rubro a posiciones porcentuales dentro del área del gráfico. El rango de
// margen se ancla en el mínimo observado (los márgenes pueden ser negativos)
// y ambos rangos tienen piso 1 para evitar división por cero.
func PuntosDispersion(puntos []ventas.PuntoRubro) []dto.PuntoDispersionDTO {
	if len(puntos) == 0 {
		return []dto.PuntoDispersionDTO{}
	}

	maxCant := 1.0
	minMargen := puntos[0].MargenProm.InexactFloat64()
	maxMargen := minMargen
	for _, p := range puntos {
		if c := p.CantidadTotal.InexactFloat64(); c > maxCant {
			maxCant = c
		}
		m := p.MargenProm.InexactFloat64()
		if m < minMargen {
			minMargen = m
		}
		if m > maxMargen {
			maxMargen = m
		}
	}
	rango := maxMargen - minMargen
	if rango < 1 {
		rango = 1
	}

	salida := make([]dto.PuntoDispersionDTO, 0, len(puntos))
	for _, p := range puntos {
		cant := p.CantidadTotal.InexactFloat64()
		margen := p.MargenProm.InexactFloat64()
		tam := cant/maxCant*20 + 8
		if tam > 22 {
			tam = 22
		}
		salida = append(salida, dto.PuntoDispersionDTO{
			Rubro:         p.Rubro,
			MargenProm:    p.MargenProm,
			CantidadTotal: p.CantidadTotal,
			PosX:          cant/maxCant*88 + 5,
			PosY:          (margen-minMargen)/rango*80 + 10,
			Tam:           tam,
		})
	}
	return salida
}

// ── KPIs y ranking ────────────────────────────────────────────────────────────

// ArmarKPIs convierte los totales del período a DTO, con ticket promedio.
func ArmarKPIs(k ventas.KPIs) dto.KPIsDTO {
	return dto.KPIsDTO{
		TotalFacturado:   k.TotalFacturado.Round(2),
		MargenTotal:      k.MargenTotal.Round(2),
		Rentabilidad:     k.Rentabilidad.Round(2),
		CantComprobantes: k.CantComprobantes,
		TicketPromedio:   k.TicketPromedio().Round(2),
	}
}

// ArmarTopArticulos numera el ranking tal como viene del servidor.
func ArmarTopArticulos(articulos []ventas.TopArticulo) []dto.TopArticuloDTO {
	salida := make([]dto.TopArticuloDTO, 0, len(articulos))
	for i, a := range articulos {
		salida = append(salida, dto.TopArticuloDTO{
			Puesto:     i + 1,
			CodArticu:  a.CodArticu,
			Descripcio: a.Descripcio,
			Total:      a.Total,
			Cantidad:   a.Cantidad,
			Margen:     a.Margen,
		})
	}
	return salida
}

// porcentaje round(monto / total * 100) como entero, redondeo independiente.
func porcentaje(monto, total decimal.Decimal) int {
	return int(monto.Div(total).Mul(cien).Round(0).IntPart())
}

func colorDeCategoria(clave string) string {
	for _, cat := range Categorias {
		if cat.Clave == clave {
			return cat.Color
		}
	}
	return colorSinCategoria
}

// etiquetaMes etiqueta legible del mes de una fecha YYYY-MM-DD, ej: "Marzo 2024".
func etiquetaMes(fecha string) string {
	t, err := time.Parse(ventas.FormatoFecha, fecha)
	if err != nil {
		return ""
	}
	meses := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", meses[t.Month()-1], t.Year())
}
