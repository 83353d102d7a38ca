package ventas

import "github.com/shopspring/decimal"

// KPIs totales agregados del período, calculados por la función
// get_dashboard_metrics del lado del servidor.
type KPIs struct {
	TotalFacturado   decimal.Decimal `json:"total_facturado"`  // suma de imp_prop_c_iva
	MargenTotal      decimal.Decimal `json:"margen_total"`     // suma de margen_contribucion
	Rentabilidad     decimal.Decimal `json:"rentabilidad"`     // margen / venta total * 100
	CantComprobantes int64           `json:"cant_comprobantes"`
}

// PuntoApilado una tupla (sucursal, categoría de negocio, medio de pago, monto)
// de la serie plana con la que se arman las barras apiladas y los mix de pago.
type PuntoApilado struct {
	NroSucursal      string          `json:"nro_sucursal"`
	CategoriaNegocio string          `json:"categoria_negocio"`
	MedioPago        string          `json:"medio_pago"`
	Monto            decimal.Decimal `json:"monto"`
}

// TopArticulo una posición del ranking de artículos por venta total.
type TopArticulo struct {
	CodArticu  string          `json:"cod_articu"`
	Descripcio string          `json:"descripcio"`
	Total      decimal.Decimal `json:"total"`
	Cantidad   decimal.Decimal `json:"cant"`
	Margen     decimal.Decimal `json:"margen"` // rentabilidad % del artículo
}

// PuntoRubro margen promedio y volumen de un rubro, para el gráfico de dispersión.
type PuntoRubro struct {
	Rubro         string          `json:"rubro"`
	MargenProm    decimal.Decimal `json:"avg_margen"`
	CantidadTotal decimal.Decimal `json:"total_cantidad"`
}

// Metricas respuesta agregada completa del servidor para un juego de filtros.
// El cliente solo la reestructura para los gráficos; la agregación (SUM,
// GROUP BY, top-N) ya viene resuelta.
type Metricas struct {
	KPIs         KPIs           `json:"kpis"`
	Apilado      []PuntoApilado `json:"stacked_data"`
	TopArticulos []TopArticulo  `json:"top_articles"`
	PuntosRubro  []PuntoRubro   `json:"rubro_points"`
}

// MetricasVacias métricas en cero: se usan cuando el período anterior no
// existe (fechas sin definir) o como degradación ante un fallo no crítico.
func MetricasVacias() Metricas {
	return Metricas{
		KPIs: KPIs{
			TotalFacturado: decimal.Zero,
			MargenTotal:    decimal.Zero,
			Rentabilidad:   decimal.Zero,
		},
	}
}

// TicketPromedio facturado dividido por cantidad de comprobantes; cero si no hay.
func (k KPIs) TicketPromedio() decimal.Decimal {
	if k.CantComprobantes <= 0 {
		return decimal.Zero
	}
	return k.TotalFacturado.Div(decimal.NewFromInt(k.CantComprobantes))
}
