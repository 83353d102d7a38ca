package ventas

// TamPagina filas por página de la grilla de detalle.
const TamPagina = 500

// Dimension identifica una dimensión de filtro con lista de opciones propia.
// El conjunto es cerrado: una dimensión desconocida falla al construir el
// adaptador, no en tiempo de consulta.
type Dimension string

const (
	DimSucursal  Dimension = "sucursal"
	DimRubro     Dimension = "rubro"
	DimMedioPago Dimension = "medio_pago"
	DimCliente   Dimension = "cliente"
	DimFamilia   Dimension = "familia"
	DimCategoria Dimension = "categoria"
	DimTipo      Dimension = "tipo"
	DimGenero    Dimension = "genero"
	DimProveedor Dimension = "proveedor"
)

// Dimensiones todas las dimensiones con lista de opciones de texto,
// en el orden en que las presenta el panel de filtros. Las cuotas
// (valores enteros) se consultan aparte.
var Dimensiones = []Dimension{
	DimSucursal, DimRubro, DimMedioPago, DimCliente,
	DimFamilia, DimCategoria, DimTipo, DimGenero, DimProveedor,
}

// Pagina resultado de una consulta paginada sobre la vista consolidada.
type Pagina struct {
	Filas []Venta
	Total int // total exacto de filas que matchean los filtros
}

// TotalPaginas páginas necesarias para total filas: máx(1, ceil(total/tam)).
func TotalPaginas(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + TamPagina - 1) / TamPagina
}
