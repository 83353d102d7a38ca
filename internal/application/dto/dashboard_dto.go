package dto

import "github.com/shopspring/decimal"

// ── KPIs ──────────────────────────────────────────────────────────────────────

// KPIsDTO totales del período para las tarjetas superiores del tablero.
type KPIsDTO struct {
	TotalFacturado   decimal.Decimal `json:"total_facturado"`   // suma imp_prop_c_iva
	MargenTotal      decimal.Decimal `json:"margen_total"`      // suma margen_contribucion
	Rentabilidad     decimal.Decimal `json:"rentabilidad"`      // margen / venta total * 100
	CantComprobantes int64           `json:"cant_comprobantes"`
	TicketPromedio   decimal.Decimal `json:"ticket_promedio"` // facturado / comprobantes
}

// ── Barras apiladas por sucursal ──────────────────────────────────────────────

// DesgloseMedioDTO un (medio de pago, monto) dentro de un segmento, para el tooltip.
type DesgloseMedioDTO struct {
	Medio string          `json:"medio"`
	Monto decimal.Decimal `json:"monto"`
}

// SegmentoDTO un tramo de la barra apilada: una categoría de negocio con su
// monto y el desglose por medio individual.
type SegmentoDTO struct {
	Clave    string             `json:"clave"`
	Etiqueta string             `json:"etiqueta"`
	Color    string             `json:"color"`
	Monto    decimal.Decimal    `json:"monto"`
	Desglose []DesgloseMedioDTO `json:"desglose"`
}

// PeriodoBarraDTO la barra de un período (actual o anterior) de una sucursal.
type PeriodoBarraDTO struct {
	Total     decimal.Decimal `json:"total"`
	Segmentos []SegmentoDTO   `json:"segmentos"` // orden fijo de apilado
}

// BarraSucursalDTO par de barras (anterior/actual) de una sucursal. Las
// sucursales presentes en un solo período igual aparecen, con el otro lado
// en cero.
type BarraSucursalDTO struct {
	NroSucursal string          `json:"nro_sucursal"`
	Nombre      string          `json:"nombre"` // "Suc. N"
	Actual      PeriodoBarraDTO `json:"actual"`
	Anterior    PeriodoBarraDTO `json:"anterior"`
}

// ── Mix de pagos ──────────────────────────────────────────────────────────────

// MixPagoDTO una porción del mix: categoría agrupada o medio individual.
type MixPagoDTO struct {
	Clave    string          `json:"clave"`
	Etiqueta string          `json:"etiqueta"`
	Color    string          `json:"color"`
	Monto    decimal.Decimal `json:"monto"`
	Pct      int             `json:"pct"` // redondeo independiente por porción
}

// ── Dispersión por rubro ──────────────────────────────────────────────────────

// PuntoDispersionDTO posición normalizada de un rubro en el gráfico de
// dispersión margen % vs cantidad.
type PuntoDispersionDTO struct {
	Rubro         string          `json:"rubro"`
	MargenProm    decimal.Decimal `json:"avg_margen"`
	CantidadTotal decimal.Decimal `json:"total_cantidad"`
	PosX          float64         `json:"pos_x"` // % horizontal dentro del área
	PosY          float64         `json:"pos_y"` // % vertical dentro del área
	Tam           float64         `json:"tam"`   // diámetro del punto en px
}

// ── Top artículos ─────────────────────────────────────────────────────────────

// TopArticuloDTO una posición del ranking de artículos.
type TopArticuloDTO struct {
	Puesto     int             `json:"puesto"`
	CodArticu  string          `json:"cod_articu"`
	Descripcio string          `json:"descripcio"`
	Total      decimal.Decimal `json:"total"`
	Cantidad   decimal.Decimal `json:"cant"`
	Margen     decimal.Decimal `json:"margen"`
}

// ── Respuesta completa ────────────────────────────────────────────────────────

// PeriodoDTO etiqueta y rango de un período comparado.
type PeriodoDTO struct {
	Etiqueta   string `json:"etiqueta"` // ej: "Marzo 2024"
	FechaDesde string `json:"fecha_desde"`
	FechaHasta string `json:"fecha_hasta"`
}

// DashboardDTO respuesta de GET /api/dashboard/metricas: KPIs + las cuatro
// vistas del tablero, con el período anterior ya fusionado en las barras.
type DashboardDTO struct {
	KPIs            KPIsDTO              `json:"kpis"`
	Barras          []BarraSucursalDTO   `json:"barras"`
	MaxBarras       decimal.Decimal      `json:"max_barras"` // máximo compartido entre períodos (piso 1)
	MixAgrupado     []MixPagoDTO         `json:"mix_agrupado"`
	MixDetallado    []MixPagoDTO         `json:"mix_detallado"`
	TopArticulos    []TopArticuloDTO     `json:"top_articulos"`
	Dispersion      []PuntoDispersionDTO `json:"dispersion"`
	PeriodoActual   PeriodoDTO           `json:"periodo_actual"`
	PeriodoAnterior PeriodoDTO           `json:"periodo_anterior"`
}

// OpcionesFiltrosDTO listas de valores por dimensión para los paneles de
// filtros, recalculadas al cambiar el rango de fechas.
type OpcionesFiltrosDTO struct {
	Sucursales  []string `json:"sucursales"`
	Rubros      []string `json:"rubros"`
	MediosPago  []string `json:"medios_pago"`
	Clientes    []string `json:"clientes"`
	Familias    []string `json:"familias"`
	Categorias  []string `json:"categorias"`
	Tipos       []string `json:"tipos"`
	Generos     []string `json:"generos"`
	Proveedores []string `json:"proveedores"`
	Cuotas      []int    `json:"cuotas"`
}
