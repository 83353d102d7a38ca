package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tangopuntohogar-collab/Retail/internal/domain/ventas"
)

func TestCondicionesFiltros_SinRestricciones(t *testing.T) {
	// Ninguna dimensión activa → ningún predicado, solo orden y límite.
	where, params := condicionesFiltros(ventas.Filtros{})
	assert.Empty(t, where)
	assert.Empty(t, params)

	sel, cuenta, params := consultaPagina(ventas.Filtros{}, 0)
	assert.NotContains(t, sel, "WHERE")
	assert.NotContains(t, cuenta, "WHERE")
	assert.Contains(t, sel, "ORDER BY fecha DESC")
	assert.Contains(t, sel, "LIMIT 500 OFFSET 0")
	assert.Empty(t, params)
}

func TestCondicionesFiltros_RangoDeFechasInclusivo(t *testing.T) {
	f := ventas.Filtros{FechaDesde: "2024-03-01", FechaHasta: "2024-03-31"}

	where, params := condicionesFiltros(f)
	assert.Equal(t, "fecha >= $1::timestamp AND fecha <= $2::timestamp", where)
	require.Len(t, params, 2)
	assert.Equal(t, "2024-03-01 00:00:00", params[0])
	assert.Equal(t, "2024-03-31 23:59:59", params[1])
}

func TestCondicionesFiltros_DimensionesCombinanConAND(t *testing.T) {
	f := ventas.Filtros{
		Sucursales: []string{"1", "4"},
		Rubros:     []string{"CALZADO"},
		Cuotas:     []int{3, 6},
	}

	where, params := condicionesFiltros(f)
	assert.Equal(t, "nro_sucursal = ANY($1) AND rubro = ANY($2) AND cant_cuotas = ANY($3)", where)
	require.Len(t, params, 3)
	assert.Equal(t, []string{"1", "4"}, params[0])
	assert.Equal(t, []int{3, 6}, params[2])
}

func TestCondicionesFiltros_MedioDePagoBuscaEnAmbasColumnas(t *testing.T) {
	// El medio real vive en desc_cuenta o en desc_cond_venta según la
	// condición de venta: el predicado es un OR con el mismo parámetro.
	f := ventas.Filtros{Cuentas: []string{"VISA", "CUENTA CORRIENTE"}}

	where, params := condicionesFiltros(f)
	assert.Equal(t, "(desc_cuenta = ANY($1) OR desc_cond_venta = ANY($1))", where)
	require.Len(t, params, 1)
}

func TestCondicionesFiltros_BusquedaLibre(t *testing.T) {
	f := ventas.Filtros{Busqueda: "  zapatilla  ", Comprobante: " 0001 "}

	where, params := condicionesFiltros(f)
	assert.Equal(t,
		"n_comp ILIKE $1 AND (descripcio ILIKE $2 OR cod_articu ILIKE $2)",
		where,
	)
	require.Len(t, params, 2)
	assert.Equal(t, "%0001%", params[0])
	assert.Equal(t, "%zapatilla%", params[1])
}

func TestCondicionesFiltros_OrdenDeAplicacion(t *testing.T) {
	f := ventas.Filtros{
		FechaDesde: "2024-01-01",
		Sucursales: []string{"2"},
		Cuentas:    []string{"VISA"},
		Busqueda:   "remera",
	}

	where, _ := condicionesFiltros(f)
	// fecha → dimensiones → medio de pago → búsqueda libre
	assert.Equal(t,
		"fecha >= $1::timestamp AND nro_sucursal = ANY($2) AND (desc_cuenta = ANY($3) OR desc_cond_venta = ANY($3)) AND (descripcio ILIKE $4 OR cod_articu ILIKE $4)",
		where,
	)
}

func TestConsultaPagina_Offset(t *testing.T) {
	sel, _, _ := consultaPagina(ventas.Filtros{}, 2)
	// Página 2 (base cero) con tamaño 500 → filas [1000, 1499].
	assert.Contains(t, sel, "LIMIT 500 OFFSET 1000")
}
