package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tangopuntohogar-collab/Retail/internal/domain"
	"github.com/tangopuntohogar-collab/Retail/internal/domain/repository"
	"github.com/tangopuntohogar-collab/Retail/internal/domain/ventas"
)

var _ repository.VentasRepository = (*VentasRepo)(nil)

// limiteEscaneoDefault tope de filas para los escaneos de fallback de opciones.
const limiteEscaneoDefault = 5000

// defDimension mapea una dimensión a su función remota de valores distintos
// y a la columna de la vista usada por el escaneo de fallback. Tabla estática:
// una dimensión fuera del mapa falla al consultar, nunca construye nombres
// de función en tiempo de ejecución.
type defDimension struct {
	funcion  string // función SQL (ex RPC de Supabase)
	columna  string // columna del resultado de la función
	fallback string // columna de la vista para el escaneo directo
}

var dimensiones = map[ventas.Dimension]defDimension{
	ventas.DimSucursal:  {"get_distinct_sucursales", "nro_sucursal", "nro_sucursal"},
	ventas.DimRubro:     {"get_distinct_rubros", "rubro", "rubro"},
	ventas.DimCliente:   {"get_top_clientes", "razon_social", "razon_social"},
	ventas.DimFamilia:   {"get_distinct_familias", "familia", "familia"},
	ventas.DimCategoria: {"get_distinct_categorias", "categoria", "categoria"},
	ventas.DimTipo:      {"get_distinct_tipos", "tipo", "tipo"},
	ventas.DimGenero:    {"get_distinct_generos", "genero", "genero"},
	ventas.DimProveedor: {"get_distinct_proveedores", "proveedor", "proveedor"},
	// medio_pago no tiene columna única: el fallback aplica la regla de
	// unificación sobre cod_cond_venta/desc_cuenta/desc_cond_venta.
	ventas.DimMedioPago: {"get_distinct_medios_pago", "medio_pago", ""},
}

// VentasRepo adaptador de solo lectura sobre la vista consolidada y las
// funciones de agregación del servidor.
type VentasRepo struct {
	pool          *pgxpool.Pool
	colacion      *collate.Collator
	limiteEscaneo int
}

// NewVentasRepository construye el adaptador. limiteEscaneo acota los escaneos
// de fallback de opciones; cero o negativo usa el default.
func NewVentasRepository(pool *pgxpool.Pool, limiteEscaneo int) *VentasRepo {
	if limiteEscaneo <= 0 {
		limiteEscaneo = limiteEscaneoDefault
	}
	return &VentasRepo{
		pool:          pool,
		colacion:      collate.New(language.Spanish, collate.IgnoreCase),
		limiteEscaneo: limiteEscaneo,
	}
}

// BuscarPagina devuelve la página pedida más el total exacto de coincidencias.
func (r *VentasRepo) BuscarPagina(ctx context.Context, f ventas.Filtros, pagina int) (ventas.Pagina, error) {
	if pagina < 0 {
		pagina = 0
	}
	sel, cuenta, params := consultaPagina(f, pagina)

	rows, err := r.pool.Query(ctx, sel, params...)
	if err != nil {
		return ventas.Pagina{}, fmt.Errorf("ventas.BuscarPagina: %w: %w", domain.ErrConsultaFallo, err)
	}
	defer rows.Close()

	filas := make([]ventas.Venta, 0, ventas.TamPagina)
	for rows.Next() {
		var v ventas.Venta
		if err := rows.Scan(
			&v.NroSucursal, &v.TComp, &v.NComp, &v.Fecha, &v.CodArticu, &v.Descripcio, &v.DescAdic,
			&v.CodClient, &v.RazonSocial, &v.CodCondVenta, &v.DescCondVenta, &v.DescCuenta,
			&v.Cantidad, &v.ImporteCIVA, &v.ImpPropCIVA, &v.PrecioNeto, &v.PrUltCpaCIVA, &v.Costo,
			&v.MargenContrib, &v.Rubro, &v.CantCuotas, &v.ModalidaVenta, &v.PorcRentab,
			&v.Familia, &v.Categoria, &v.Tipo, &v.Genero, &v.Proveedor,
		); err != nil {
			return ventas.Pagina{}, fmt.Errorf("ventas.BuscarPagina scan: %w", err)
		}
		filas = append(filas, v)
	}
	if err := rows.Err(); err != nil {
		return ventas.Pagina{}, fmt.Errorf("ventas.BuscarPagina rows: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, cuenta, params...).Scan(&total); err != nil {
		return ventas.Pagina{}, fmt.Errorf("ventas.BuscarPagina count: %w: %w", domain.ErrConsultaFallo, err)
	}
	return ventas.Pagina{Filas: filas, Total: total}, nil
}

// Metricas emite la llamada única de agregación con el juego de filtros
// completo. La función devuelve un jsonb con kpis, serie apilada, top de
// artículos y puntos por rubro; acá solo se decodifica.
func (r *VentasRepo) Metricas(ctx context.Context, f ventas.Filtros) (*ventas.Metricas, error) {
	const consulta = `
	SELECT get_dashboard_metrics(
	    p_fecha_desde  => $1,
	    p_fecha_hasta  => $2,
	    p_sucursales   => $3,
	    p_rubros       => $4,
	    p_modalidades  => $5,
	    p_medios_pago  => $6,
	    p_clientes     => $7,
	    p_familias     => $8,
	    p_categorias   => $9,
	    p_tipos        => $10,
	    p_generos      => $11,
	    p_proveedores  => $12,
	    p_cuotas       => $13,
	    p_busqueda     => $14,
	    p_comprobante  => $15
	)`

	var payload []byte
	err := r.pool.QueryRow(ctx, consulta,
		textoONulo(f.FechaDesde),
		textoONulo(f.FechaHasta),
		listaONula(f.Sucursales),
		listaONula(f.Rubros),
		listaONula(f.Modalidades),
		listaONula(f.Cuentas),
		listaONula(f.Clientes),
		listaONula(f.Familias),
		listaONula(f.Categorias),
		listaONula(f.Tipos),
		listaONula(f.Generos),
		listaONula(f.Proveedores),
		cuotasONulas(f.Cuotas),
		textoONulo(f.Busqueda),
		textoONulo(f.Comprobante),
	).Scan(&payload)
	if err != nil {
		return nil, fmt.Errorf("ventas.Metricas: %w: %w", domain.ErrConsultaFallo, err)
	}
	if len(payload) == 0 {
		m := ventas.MetricasVacias()
		return &m, nil
	}

	var m ventas.Metricas
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, fmt.Errorf("ventas.Metricas decode: %w", err)
	}
	return &m, nil
}

// OpcionesDimension valores distintos de una dimensión con actividad en el
// rango. Primero la función remota; si falla o devuelve vacío, escaneo
// directo de la vista con deduplicación local.
func (r *VentasRepo) OpcionesDimension(ctx context.Context, dim ventas.Dimension, rango ventas.Rango) ([]string, error) {
	def, ok := dimensiones[dim]
	if !ok {
		return nil, fmt.Errorf("ventas.OpcionesDimension: dimensión desconocida %q", dim)
	}

	valores, errRPC := r.opcionesPorFuncion(ctx, def, rango)
	if errRPC == nil && len(valores) > 0 {
		r.colacion.SortStrings(valores)
		return valores, nil
	}

	// Resultado vacío no es error: activa el escaneo de emergencia.
	if dim == ventas.DimMedioPago {
		valores, err := r.mediosPagoPorEscaneo(ctx, rango)
		if err != nil {
			if errRPC != nil {
				return nil, fmt.Errorf("ventas.OpcionesDimension %s: %w: %w (fallback: %v)", dim, domain.ErrConsultaFallo, errRPC, err)
			}
			return nil, fmt.Errorf("ventas.OpcionesDimension %s fallback: %w: %w", dim, domain.ErrConsultaFallo, err)
		}
		r.colacion.SortStrings(valores)
		return valores, nil
	}

	valores, err := r.opcionesPorEscaneo(ctx, def.fallback, rango)
	if err != nil {
		if errRPC != nil {
			return nil, fmt.Errorf("ventas.OpcionesDimension %s: %w: %w (fallback: %v)", dim, domain.ErrConsultaFallo, errRPC, err)
		}
		return nil, fmt.Errorf("ventas.OpcionesDimension %s fallback: %w: %w", dim, domain.ErrConsultaFallo, err)
	}
	r.colacion.SortStrings(valores)
	return valores, nil
}

// opcionesPorFuncion invoca la función remota de la dimensión. Los nombres
// salen de la tabla estática, nunca de entrada del usuario.
func (r *VentasRepo) opcionesPorFuncion(ctx context.Context, def defDimension, rango ventas.Rango) ([]string, error) {
	consulta := fmt.Sprintf(
		"SELECT %s FROM %s(p_fecha_desde => $1, p_fecha_hasta => $2)",
		def.columna, def.funcion,
	)
	rows, err := r.pool.Query(ctx, consulta, textoONulo(rango.FechaDesde), textoONulo(rango.FechaHasta))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var valores []string
	for rows.Next() {
		var v *string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		if v != nil && *v != "" {
			valores = append(valores, *v)
		}
	}
	return valores, rows.Err()
}

// opcionesPorEscaneo fallback: lee la columna cruda de la vista dentro del
// rango y deduplica del lado del cliente.
func (r *VentasRepo) opcionesPorEscaneo(ctx context.Context, columna string, rango ventas.Rango) ([]string, error) {
	where, params := condicionesRango(rango)
	consulta := fmt.Sprintf("SELECT %s FROM %s%s LIMIT %d", columna, vistaVentas, where, r.limiteEscaneo)

	rows, err := r.pool.Query(ctx, consulta, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vistos := make(map[string]struct{})
	var valores []string
	for rows.Next() {
		var v *string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		if v == nil || *v == "" {
			continue
		}
		if _, ok := vistos[*v]; ok {
			continue
		}
		vistos[*v] = struct{}{}
		valores = append(valores, *v)
	}
	return valores, rows.Err()
}

// mediosPagoPorEscaneo fallback del medio de pago: lee las tres columnas y
// aplica la regla de unificación (cond "1" → desc_cuenta, resto → desc_cond_venta).
func (r *VentasRepo) mediosPagoPorEscaneo(ctx context.Context, rango ventas.Rango) ([]string, error) {
	where, params := condicionesRango(rango)
	consulta := fmt.Sprintf(
		"SELECT cod_cond_venta, desc_cuenta, desc_cond_venta FROM %s%s LIMIT %d",
		vistaVentas, where, r.limiteEscaneo,
	)

	rows, err := r.pool.Query(ctx, consulta, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vistos := make(map[string]struct{})
	var medios []string
	for rows.Next() {
		var cond, cuenta, condVenta string
		if err := rows.Scan(&cond, &cuenta, &condVenta); err != nil {
			return nil, err
		}
		medio := ventas.MedioPagoEfectivo(cond, cuenta, condVenta)
		if medio == "" {
			continue
		}
		if _, ok := vistos[medio]; ok {
			continue
		}
		vistos[medio] = struct{}{}
		medios = append(medios, medio)
	}
	return medios, rows.Err()
}

// CuotasDisponibles valores distintos de cant_cuotas en el rango, orden numérico.
func (r *VentasRepo) CuotasDisponibles(ctx context.Context, rango ventas.Rango) ([]int, error) {
	cuotas, errRPC := r.cuotasPorFuncion(ctx, rango)
	if errRPC == nil && len(cuotas) > 0 {
		sort.Ints(cuotas)
		return cuotas, nil
	}

	cuotas, err := r.cuotasPorEscaneo(ctx, rango)
	if err != nil {
		if errRPC != nil {
			return nil, fmt.Errorf("ventas.CuotasDisponibles: %w: %w (fallback: %v)", domain.ErrConsultaFallo, errRPC, err)
		}
		return nil, fmt.Errorf("ventas.CuotasDisponibles fallback: %w: %w", domain.ErrConsultaFallo, err)
	}
	sort.Ints(cuotas)
	return cuotas, nil
}

func (r *VentasRepo) cuotasPorFuncion(ctx context.Context, rango ventas.Rango) ([]int, error) {
	const consulta = "SELECT cant_cuotas FROM get_distinct_cuotas(p_fecha_desde => $1, p_fecha_hasta => $2)"
	rows, err := r.pool.Query(ctx, consulta, textoONulo(rango.FechaDesde), textoONulo(rango.FechaHasta))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cuotas []int
	for rows.Next() {
		var c *int
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		if c != nil {
			cuotas = append(cuotas, *c)
		}
	}
	return cuotas, rows.Err()
}

func (r *VentasRepo) cuotasPorEscaneo(ctx context.Context, rango ventas.Rango) ([]int, error) {
	where, params := condicionesRango(rango)
	consulta := fmt.Sprintf("SELECT cant_cuotas FROM %s%s LIMIT %d", vistaVentas, where, r.limiteEscaneo)

	rows, err := r.pool.Query(ctx, consulta, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vistos := make(map[int]struct{})
	var cuotas []int
	for rows.Next() {
		var c *int
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		if c == nil {
			continue
		}
		if _, ok := vistos[*c]; ok {
			continue
		}
		vistos[*c] = struct{}{}
		cuotas = append(cuotas, *c)
	}
	return cuotas, rows.Err()
}

// condicionesRango WHERE de solo rango de fechas para los escaneos de fallback
// (las demás dimensiones no restringen las listas de opciones).
func condicionesRango(rango ventas.Rango) (string, []any) {
	f := ventas.Filtros{FechaDesde: rango.FechaDesde, FechaHasta: rango.FechaHasta}
	where, params := condicionesFiltros(f)
	if where == "" {
		return "", nil
	}
	return " WHERE " + where, params
}

// textoONulo pasa cadena vacía como NULL: ausencia de filtro, nunca "no matchea".
func textoONulo(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func listaONula(valores []string) any {
	if len(valores) == 0 {
		return nil
	}
	return valores
}

func cuotasONulas(valores []int) any {
	if len(valores) == 0 {
		return nil
	}
	return valores
}
