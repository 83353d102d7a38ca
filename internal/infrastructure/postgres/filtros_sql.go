package postgres

import (
	"fmt"
	"strings"

	"github.com/tangopuntohogar-collab/Retail/internal/domain/ventas"
)

// vistaVentas vista consolidada del lado del servidor. Ya aplica DISTINCT ON
// por comprobante (conserva solo el pago de mayor importe).
const vistaVentas = "v_ventas_consolidadas"

// condicionesFiltros traduce los Filtros a la cláusula WHERE parametrizada
// sobre la vista consolidada. Orden de aplicación:
//
//  1. rango de fechas (gte/lte sobre el timestamp, si está definido)
//  2. igualdad-en-conjunto (AND entre dimensiones) por cada multiselección no vacía
//  3. medio de pago: OR entre desc_cuenta y desc_cond_venta, porque el medio
//     real está repartido en dos columnas según cod_cond_venta
//  4. substring sobre n_comp
//  5. búsqueda libre: OR entre descripcio y cod_articu
//
// Dimensiones vacías no generan predicado alguno (sin restricción).
// Devuelve la cláusula (sin el prefijo WHERE) y sus parámetros posicionales.
func condicionesFiltros(f ventas.Filtros) (string, []any) {
	var conds []string
	var params []any

	agregar := func(formato string, valor any) {
		params = append(params, valor)
		conds = append(conds, fmt.Sprintf(formato, len(params)))
	}

	if f.FechaDesde != "" {
		agregar("fecha >= $%d::timestamp", f.FechaDesde+" 00:00:00")
	}
	if f.FechaHasta != "" {
		agregar("fecha <= $%d::timestamp", f.FechaHasta+" 23:59:59")
	}

	if len(f.Sucursales) > 0 {
		agregar("nro_sucursal = ANY($%d)", f.Sucursales)
	}
	if len(f.Rubros) > 0 {
		agregar("rubro = ANY($%d)", f.Rubros)
	}
	if len(f.Modalidades) > 0 {
		agregar("modalida_venta = ANY($%d)", f.Modalidades)
	}
	if len(f.Clientes) > 0 {
		agregar("razon_social = ANY($%d)", f.Clientes)
	}
	if len(f.Familias) > 0 {
		agregar("familia = ANY($%d)", f.Familias)
	}
	if len(f.Categorias) > 0 {
		agregar("categoria = ANY($%d)", f.Categorias)
	}
	if len(f.Tipos) > 0 {
		agregar("tipo = ANY($%d)", f.Tipos)
	}
	if len(f.Generos) > 0 {
		agregar("genero = ANY($%d)", f.Generos)
	}
	if len(f.Proveedores) > 0 {
		agregar("proveedor = ANY($%d)", f.Proveedores)
	}
	if len(f.Cuotas) > 0 {
		agregar("cant_cuotas = ANY($%d)", f.Cuotas)
	}

	// El valor elegido puede vivir en cualquiera de las dos columnas de
	// descripción; se busca en ambas con el mismo parámetro.
	if len(f.Cuentas) > 0 {
		params = append(params, f.Cuentas)
		n := len(params)
		conds = append(conds, fmt.Sprintf("(desc_cuenta = ANY($%d) OR desc_cond_venta = ANY($%d))", n, n))
	}

	if termino := strings.TrimSpace(f.Comprobante); termino != "" {
		agregar("n_comp ILIKE $%d", "%"+termino+"%")
	}

	if termino := strings.TrimSpace(f.Busqueda); termino != "" {
		params = append(params, "%"+termino+"%")
		n := len(params)
		conds = append(conds, fmt.Sprintf("(descripcio ILIKE $%d OR cod_articu ILIKE $%d)", n, n))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return strings.Join(conds, " AND "), params
}

// consultaPagina arma el SELECT paginado (orden fecha descendente) y el COUNT
// exacto con el mismo WHERE, al estilo select + count por separado.
func consultaPagina(f ventas.Filtros, pagina int) (sel string, cuenta string, params []any) {
	const columnas = `nro_sucursal, t_comp, n_comp, fecha, cod_articu, descripcio, desc_adic,
	cod_client, razon_social, cod_cond_venta, desc_cond_venta, desc_cuenta,
	cantidad, importe_c_iva, imp_prop_c_iva, precio_neto, pr_ult_cpa_c_iva, costo,
	margen_contribucion, rubro, cant_cuotas, modalida_venta, porcentaje_rentabilidad,
	familia, categoria, tipo, genero, proveedor`

	where, params := condicionesFiltros(f)
	clausula := ""
	if where != "" {
		clausula = " WHERE " + where
	}

	sel = fmt.Sprintf(
		"SELECT %s FROM %s%s ORDER BY fecha DESC LIMIT %d OFFSET %d",
		columnas, vistaVentas, clausula, ventas.TamPagina, pagina*ventas.TamPagina,
	)
	cuenta = fmt.Sprintf("SELECT COUNT(*) FROM %s%s", vistaVentas, clausula)
	return sel, cuenta, params
}
