package dto

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tangopuntohogar-collab/Retail/internal/domain"
	"github.com/tangopuntohogar-collab/Retail/internal/domain/ventas"
)

// ── Query parameters ──────────────────────────────────────────────────────────

// FiltrosRequest parámetros de consulta del tablero y la grilla. Las
// multiselecciones viajan separadas por coma; vacío = sin restricción.
type FiltrosRequest struct {
	FechaDesde  string `query:"fecha_desde"` // YYYY-MM-DD
	FechaHasta  string `query:"fecha_hasta"` // YYYY-MM-DD
	Sucursales  string `query:"sucursales"`
	Rubros      string `query:"rubros"`
	Modalidades string `query:"modalidades"`
	Cuentas     string `query:"medios_pago"`
	Clientes    string `query:"clientes"`
	Familias    string `query:"familias"`
	Categorias  string `query:"categorias"`
	Tipos       string `query:"tipos"`
	Generos     string `query:"generos"`
	Proveedores string `query:"proveedores"`
	Cuotas      string `query:"cuotas"` // enteros separados por coma
	Busqueda    string `query:"busqueda"`
	Comprobante string `query:"comprobante"`
	Pagina      int    `query:"pagina"` // base cero, solo para la grilla
}

// AFiltros valida y convierte la request al filtro de dominio.
func (r FiltrosRequest) AFiltros() (ventas.Filtros, error) {
	if err := validarFecha(r.FechaDesde); err != nil {
		return ventas.Filtros{}, fmt.Errorf("fecha_desde: %w", err)
	}
	if err := validarFecha(r.FechaHasta); err != nil {
		return ventas.Filtros{}, fmt.Errorf("fecha_hasta: %w", err)
	}
	cuotas, err := separarEnteros(r.Cuotas)
	if err != nil {
		return ventas.Filtros{}, fmt.Errorf("cuotas: %w", err)
	}
	return ventas.Filtros{
		FechaDesde:  r.FechaDesde,
		FechaHasta:  r.FechaHasta,
		Sucursales:  separar(r.Sucursales),
		Rubros:      separar(r.Rubros),
		Modalidades: separar(r.Modalidades),
		Cuentas:     separar(r.Cuentas),
		Clientes:    separar(r.Clientes),
		Familias:    separar(r.Familias),
		Categorias:  separar(r.Categorias),
		Tipos:       separar(r.Tipos),
		Generos:     separar(r.Generos),
		Proveedores: separar(r.Proveedores),
		Cuotas:      cuotas,
		Busqueda:    strings.TrimSpace(r.Busqueda),
		Comprobante: strings.TrimSpace(r.Comprobante),
	}, nil
}

func validarFecha(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(ventas.FormatoFecha, s); err != nil {
		return fmt.Errorf("%w: se espera YYYY-MM-DD: %q", domain.ErrInvalidInput, s)
	}
	return nil
}

func separar(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	partes := strings.Split(s, ",")
	valores := make([]string, 0, len(partes))
	for _, p := range partes {
		if v := strings.TrimSpace(p); v != "" {
			valores = append(valores, v)
		}
	}
	return valores
}

func separarEnteros(s string) ([]int, error) {
	var valores []int
	for _, p := range separar(s) {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: valor no numérico %q", domain.ErrInvalidInput, p)
		}
		valores = append(valores, n)
	}
	return valores, nil
}

// ── Filas de la grilla ────────────────────────────────────────────────────────

// VentaDTO una fila de la grilla de detalle, con los nombres de la vista.
type VentaDTO struct {
	NroSucursal   string           `json:"nro_sucursal"`
	TComp         string           `json:"t_comp"`
	NComp         string           `json:"n_comp"`
	Fecha         string           `json:"fecha"` // RFC 3339
	CodArticu     string           `json:"cod_articu"`
	Descripcio    string           `json:"descripcio"`
	DescAdic      *string          `json:"desc_adic"`
	CodClient     string           `json:"cod_client"`
	RazonSocial   string           `json:"razon_social"`
	CodCondVenta  string           `json:"cod_cond_venta"`
	DescCondVenta string           `json:"desc_cond_venta"`
	DescCuenta    string           `json:"desc_cuenta"`
	MedioPago     string           `json:"medio_pago"` // unificado según cod_cond_venta
	Cantidad      decimal.Decimal  `json:"cantidad"`
	ImporteCIVA   decimal.Decimal  `json:"importe_c_iva"`
	ImpPropCIVA   *decimal.Decimal `json:"imp_prop_c_iva"`
	PrecioNeto    *decimal.Decimal `json:"precio_neto"`
	PrUltCpaCIVA  *decimal.Decimal `json:"pr_ult_cpa_c_iva"`
	Costo         *decimal.Decimal `json:"costo"`
	MargenContrib decimal.Decimal  `json:"margen_contribucion"`
	Rubro         string           `json:"rubro"`
	CantCuotas    *int             `json:"cant_cuotas"`
	ModalidaVenta string           `json:"modalida_venta"`
	PorcRentab    decimal.Decimal  `json:"porcentaje_rentabilidad"`
	Familia       *string          `json:"familia"`
	Categoria     *string          `json:"categoria"`
	Tipo          *string          `json:"tipo"`
	Genero        *string          `json:"genero"`
	Proveedor     *string          `json:"proveedor"`
}

// VentaADTO convierte la entidad a DTO de respuesta.
func VentaADTO(v ventas.Venta) VentaDTO {
	return VentaDTO{
		NroSucursal:   v.NroSucursal,
		TComp:         v.TComp,
		NComp:         v.NComp,
		Fecha:         v.Fecha.Format(time.RFC3339),
		CodArticu:     v.CodArticu,
		Descripcio:    v.Descripcio,
		DescAdic:      v.DescAdic,
		CodClient:     v.CodClient,
		RazonSocial:   v.RazonSocial,
		CodCondVenta:  v.CodCondVenta,
		DescCondVenta: v.DescCondVenta,
		DescCuenta:    v.DescCuenta,
		MedioPago:     v.MedioPago(),
		Cantidad:      v.Cantidad,
		ImporteCIVA:   v.ImporteCIVA,
		ImpPropCIVA:   v.ImpPropCIVA,
		PrecioNeto:    v.PrecioNeto,
		PrUltCpaCIVA:  v.PrUltCpaCIVA,
		Costo:         v.Costo,
		MargenContrib: v.MargenContrib,
		Rubro:         v.Rubro,
		CantCuotas:    v.CantCuotas,
		ModalidaVenta: v.ModalidaVenta,
		PorcRentab:    v.PorcRentab,
		Familia:       v.Familia,
		Categoria:     v.Categoria,
		Tipo:          v.Tipo,
		Genero:        v.Genero,
		Proveedor:     v.Proveedor,
	}
}

// GrillaDTO respuesta de GET /api/ventas: página de filas + metadatos.
type GrillaDTO struct {
	Filas        []VentaDTO `json:"filas"`
	Total        int        `json:"total"`
	Pagina       int        `json:"pagina"` // base cero
	TotalPaginas int        `json:"total_paginas"`
	TamPagina    int        `json:"tam_pagina"`
	Desde        int        `json:"desde"` // primera fila mostrada (base uno; 0 si no hay)
	Hasta        int        `json:"hasta"` // última fila mostrada
}
