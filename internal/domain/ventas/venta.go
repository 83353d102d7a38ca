package ventas

import (
	"time"

	"github.com/shopspring/decimal"
)

// CondContado código de condición de venta que indica pago de contado:
// el medio de pago real vive en desc_cuenta (banco/caja). Para cualquier
// otro código el medio es desc_cond_venta (Cuenta Corriente, Crédito por
// Financiera, etc.). Las dos columnas nunca se fusionan como unión libre.
const CondContado = "1"

// Venta una línea de comprobante tal como la devuelve la vista
// v_ventas_consolidadas. Solo lectura: nunca se modifica localmente.
// La vista ya aplica DISTINCT ON → conserva solo el pago de mayor importe
// por comprobante.
type Venta struct {
	NroSucursal   string
	TComp         string // tipo de comprobante
	NComp         string // número de comprobante
	Fecha         time.Time
	CodArticu     string
	Descripcio    string
	DescAdic      *string
	CodClient     string
	RazonSocial   string
	CodCondVenta  string
	DescCondVenta string
	DescCuenta    string
	Cantidad      decimal.Decimal
	ImporteCIVA   decimal.Decimal
	ImpPropCIVA   *decimal.Decimal // monto proporcional: fuente de verdad de facturación
	PrecioNeto    *decimal.Decimal
	PrUltCpaCIVA  *decimal.Decimal // último precio de compra c/IVA
	Costo         *decimal.Decimal // costo unitario
	MargenContrib decimal.Decimal
	Rubro         string
	CantCuotas    *int
	ModalidaVenta string // 'Cuenta Corriente' | 'Contado/Tarjeta'
	PorcRentab    decimal.Decimal
	Familia       *string
	Categoria     *string
	Tipo          *string
	Genero        *string
	Proveedor     *string
}

// ImporteReal importe facturado de la línea: imp_prop_c_iva cuando el pago
// fue prorrateado, si no importe_c_iva.
func (v Venta) ImporteReal() decimal.Decimal {
	if v.ImpPropCIVA != nil {
		return *v.ImpPropCIVA
	}
	return v.ImporteCIVA
}

// MedioPago medio de pago efectivo de la línea según la condición de venta.
func (v Venta) MedioPago() string {
	return MedioPagoEfectivo(v.CodCondVenta, v.DescCuenta, v.DescCondVenta)
}

// MedioPagoEfectivo regla de unificación de medios de pago: con condición
// de contado ("1") el medio es la descripción de cuenta; con cualquier otra
// condición, la descripción de la condición de venta.
func MedioPagoEfectivo(codCond, descCuenta, descCondVenta string) string {
	if codCond == CondContado {
		return descCuenta
	}
	return descCondVenta
}

// CostoTotal costo de la línea (costo unitario × cantidad); nil si no hay costo.
func (v Venta) CostoTotal() *decimal.Decimal {
	if v.Costo == nil {
		return nil
	}
	total := v.Costo.Mul(v.Cantidad)
	return &total
}

// PrecioUnitario importe con IVA dividido por la cantidad; cero si cantidad es cero.
func (v Venta) PrecioUnitario() decimal.Decimal {
	if v.Cantidad.IsZero() {
		return decimal.Zero
	}
	return v.ImporteCIVA.Div(v.Cantidad)
}
