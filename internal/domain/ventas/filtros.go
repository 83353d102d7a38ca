// Package ventas contiene el modelo de dominio del tablero de ventas:
// filtros, filas de la vista consolidada y métricas agregadas.
package ventas

import (
	"time"
)

// FormatoFecha formato de las fechas de filtro (columna date de Postgres).
const FormatoFecha = "2006-01-02"

// Rango par de fechas calendario inclusivas. Cadena vacía = sin límite.
type Rango struct {
	FechaDesde string // YYYY-MM-DD
	FechaHasta string // YYYY-MM-DD
}

// Completo indica si ambos extremos del rango están definidos.
func (r Rango) Completo() bool {
	return r.FechaDesde != "" && r.FechaHasta != ""
}

// Filtros selección activa de todas las dimensiones del tablero.
// Invariante: colección o cadena vacía significa "sin restricción en esa
// dimensión", nunca "no coincide con nada". Los filtros se reemplazan
// completos en cada edición, no se mutan parcialmente.
type Filtros struct {
	FechaDesde string // YYYY-MM-DD, inclusive
	FechaHasta string // YYYY-MM-DD, inclusive

	Sucursales  []string // nro_sucursal
	Rubros      []string
	Modalidades []string // modalida_venta
	Cuentas     []string // medio de pago: busca en desc_cuenta Y desc_cond_venta
	Clientes    []string // razon_social
	Familias    []string
	Categorias  []string
	Tipos       []string
	Generos     []string
	Proveedores []string
	Cuotas      []int // cant_cuotas seleccionadas

	Busqueda    string // texto libre: ILIKE sobre descripcio O cod_articu
	Comprobante string // substring sobre n_comp
}

// FiltrosPorDefecto devuelve los filtros iniciales: mes en curso (día 1 a hoy),
// el resto de dimensiones sin restricción.
func FiltrosPorDefecto(ahora time.Time) Filtros {
	primero := time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, ahora.Location())
	return Filtros{
		FechaDesde: primero.Format(FormatoFecha),
		FechaHasta: ahora.Format(FormatoFecha),
	}
}

// Rango devuelve el rango de fechas del filtro.
func (f Filtros) Rango() Rango {
	return Rango{FechaDesde: f.FechaDesde, FechaHasta: f.FechaHasta}
}

// SinRestricciones indica si ningún predicado aplica (todas las dimensiones
// vacías y sin fechas).
func (f Filtros) SinRestricciones() bool {
	return f.FechaDesde == "" && f.FechaHasta == "" &&
		len(f.Sucursales) == 0 && len(f.Rubros) == 0 && len(f.Modalidades) == 0 &&
		len(f.Cuentas) == 0 && len(f.Clientes) == 0 && len(f.Familias) == 0 &&
		len(f.Categorias) == 0 && len(f.Tipos) == 0 && len(f.Generos) == 0 &&
		len(f.Proveedores) == 0 && len(f.Cuotas) == 0 &&
		f.Busqueda == "" && f.Comprobante == ""
}

// PeriodoAnterior devuelve los mismos filtros con ambas fechas corridas
// exactamente un mes calendario hacia atrás (no un offset fijo de días).
// Si algún extremo no está definido, ok es false: el período anterior no
// existe y el tablero muestra métricas en cero sin consultar.
func (f Filtros) PeriodoAnterior() (Filtros, bool) {
	if !f.Rango().Completo() {
		return Filtros{}, false
	}
	desde, err1 := time.Parse(FormatoFecha, f.FechaDesde)
	hasta, err2 := time.Parse(FormatoFecha, f.FechaHasta)
	if err1 != nil || err2 != nil {
		return Filtros{}, false
	}
	prev := f
	prev.FechaDesde = restarMes(desde).Format(FormatoFecha)
	prev.FechaHasta = restarMes(hasta).Format(FormatoFecha)
	return prev, true
}

// restarMes retrocede un mes calendario ajustando al último día del mes
// destino cuando el día no existe (31/03 → 29/02 en bisiesto, 28 si no).
func restarMes(t time.Time) time.Time {
	primeroPrevio := time.Date(t.Year(), t.Month()-1, 1, 0, 0, 0, 0, t.Location())
	ultimoDia := primeroPrevio.AddDate(0, 1, -1).Day()
	dia := t.Day()
	if dia > ultimoDia {
		dia = ultimoDia
	}
	return time.Date(primeroPrevio.Year(), primeroPrevio.Month(), dia, 0, 0, 0, 0, t.Location())
}
