package tablero_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tangopuntohogar-collab/Retail/internal/application/tablero"
	"github.com/tangopuntohogar-collab/Retail/internal/domain/ventas"
)

func punto(suc, cat, medio string, monto int64) ventas.PuntoApilado {
	return ventas.PuntoApilado{
		NroSucursal:      suc,
		CategoriaNegocio: cat,
		MedioPago:        medio,
		Monto:            decimal.NewFromInt(monto),
	}
}

func TestMixAgrupado_PorcentajesYCategoriasVacias(t *testing.T) {
	puntos := []ventas.PuntoApilado{
		punto("01", "CONTADO EFECTIVO", "EFECTIVO", 600),
		punto("02", "CONTADO EFECTIVO", "EFECTIVO", 150),
		punto("01", "TARJETA", "VISA", 250),
	}

	mix := tablero.MixAgrupado(puntos)

	// Crédito Financiera y Cuenta Corriente no tienen monto: se omiten.
	require.Len(t, mix, 2)
	assert.Equal(t, "CONTADO EFECTIVO", mix[0].Clave)
	assert.True(t, mix[0].Monto.Equal(decimal.NewFromInt(750)))
	assert.Equal(t, 75, mix[0].Pct)
	assert.Equal(t, "TARJETA", mix[1].Clave)
	assert.Equal(t, 25, mix[1].Pct)
	assert.Equal(t, "#10b981", mix[0].Color)
}

func TestMixAgrupado_SinDatos(t *testing.T) {
	mix := tablero.MixAgrupado(nil)
	assert.Empty(t, mix)
}

func TestMixDetallado_OrdenDescendente(t *testing.T) {
	puntos := []ventas.PuntoApilado{
		punto("01", "TARJETA", "VISA", 100),
		punto("01", "TARJETA", "MASTERCARD", 300),
		punto("02", "TARJETA", "VISA", 150),
	}

	mix := tablero.MixDetallado(puntos, "")

	require.Len(t, mix, 2)
	assert.Equal(t, "MASTERCARD", mix[0].Etiqueta)
	assert.Equal(t, "VISA", mix[1].Etiqueta)
	assert.True(t, mix[1].Monto.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, "#3b82f6", mix[0].Color)
}

func TestMixDetallado_ColapsaEnOtros(t *testing.T) {
	puntos := make([]ventas.PuntoApilado, 0, 14)
	for i := 0; i < 14; i++ {
		medio := fmt.Sprintf("MEDIO %02d", i)
		puntos = append(puntos, punto("01", "TARJETA", medio, int64(100-i)))
	}

	mix := tablero.MixDetallado(puntos, "")

	require.Len(t, mix, 12)
	ultimo := mix[len(mix)-1]
	assert.Equal(t, "OTROS", ultimo.Etiqueta)
	assert.Equal(t, "#64748b", ultimo.Color)
	// Los tres medios colapsados: 89 + 88 + 87.
	assert.True(t, ultimo.Monto.Equal(decimal.NewFromInt(264)))
	for _, m := range mix[:11] {
		assert.NotEqual(t, "OTROS", m.Etiqueta)
	}
}

func TestMixDetallado_FiltraPorCategoria(t *testing.T) {
	puntos := []ventas.PuntoApilado{
		punto("01", "TARJETA", "VISA", 300),
		punto("01", "CONTADO EFECTIVO", "EFECTIVO", 700),
	}

	mix := tablero.MixDetallado(puntos, "TARJETA")

	require.Len(t, mix, 1)
	assert.Equal(t, "VISA", mix[0].Etiqueta)
	// Restringido a la categoría, el 100% es sobre su propio total.
	assert.Equal(t, 100, mix[0].Pct)
}

func TestBarrasPorSucursal_UnionDePeriodos(t *testing.T) {
	actual := []ventas.PuntoApilado{
		punto("01", "TARJETA", "VISA", 500),
		punto("02", "CONTADO EFECTIVO", "EFECTIVO", 900),
	}
	anterior := []ventas.PuntoApilado{
		punto("03", "CUENTA CORRIENTE", "CTA CTE", 400),
	}

	barras, maxTotal := tablero.BarrasPorSucursal(actual, anterior)

	require.Len(t, barras, 3)
	// Orden por total actual descendente; la sucursal solo-anterior queda última.
	assert.Equal(t, "02", barras[0].NroSucursal)
	assert.Equal(t, "01", barras[1].NroSucursal)
	assert.Equal(t, "03", barras[2].NroSucursal)

	// El lado faltante queda en cero, con los cuatro segmentos presentes.
	assert.True(t, barras[2].Actual.Total.IsZero())
	require.Len(t, barras[2].Actual.Segmentos, 4)
	assert.True(t, barras[2].Anterior.Total.Equal(decimal.NewFromInt(400)))

	// El máximo compartido considera ambos períodos.
	assert.True(t, maxTotal.Equal(decimal.NewFromInt(900)))
}

func TestBarrasPorSucursal_MaximoConPisoUno(t *testing.T) {
	barras, maxTotal := tablero.BarrasPorSucursal(nil, nil)
	assert.Empty(t, barras)
	assert.True(t, maxTotal.Equal(decimal.NewFromInt(1)))
}

func TestBarrasPorSucursal_DesglosePorSegmento(t *testing.T) {
	actual := []ventas.PuntoApilado{
		punto("01", "TARJETA", "VISA", 300),
		punto("01", "TARJETA", "MASTERCARD", 200),
	}

	barras, _ := tablero.BarrasPorSucursal(actual, nil)

	require.Len(t, barras, 1)
	var tarjeta *int
	for i, seg := range barras[0].Actual.Segmentos {
		if seg.Clave == "TARJETA" {
			idx := i
			tarjeta = &idx
		}
	}
	require.NotNil(t, tarjeta)
	seg := barras[0].Actual.Segmentos[*tarjeta]
	assert.True(t, seg.Monto.Equal(decimal.NewFromInt(500)))
	require.Len(t, seg.Desglose, 2)
}

func TestPuntosDispersion_ExtremosDeMargen(t *testing.T) {
	puntos := []ventas.PuntoRubro{
		{Rubro: "BAJO", MargenProm: decimal.NewFromInt(-10), CantidadTotal: decimal.NewFromInt(50)},
		{Rubro: "ALTO", MargenProm: decimal.NewFromInt(40), CantidadTotal: decimal.NewFromInt(100)},
	}

	salida := tablero.PuntosDispersion(puntos)

	require.Len(t, salida, 2)
	// El margen mínimo observado ancla el piso vertical.
	assert.InDelta(t, 10.0, salida[0].PosY, 0.001)
	assert.InDelta(t, 90.0, salida[1].PosY, 0.001)
	// La mayor cantidad llega al borde derecho del área.
	assert.InDelta(t, 93.0, salida[1].PosX, 0.001)
	assert.InDelta(t, 49.0, salida[0].PosX, 0.001)
}

func TestPuntosDispersion_TamAcotado(t *testing.T) {
	puntos := []ventas.PuntoRubro{
		{Rubro: "CHICO", MargenProm: decimal.NewFromInt(5), CantidadTotal: decimal.Zero},
		{Rubro: "GRANDE", MargenProm: decimal.NewFromInt(5), CantidadTotal: decimal.NewFromInt(1000)},
	}

	salida := tablero.PuntosDispersion(puntos)

	require.Len(t, salida, 2)
	assert.InDelta(t, 8.0, salida[0].Tam, 0.001)
	assert.InDelta(t, 22.0, salida[1].Tam, 0.001)
}

func TestPuntosDispersion_SinPuntos(t *testing.T) {
	assert.Empty(t, tablero.PuntosDispersion(nil))
}

func TestArmarKPIs_TicketPromedio(t *testing.T) {
	k := ventas.KPIs{
		TotalFacturado:   decimal.NewFromInt(1000),
		MargenTotal:      decimal.NewFromInt(250),
		Rentabilidad:     decimal.NewFromInt(25),
		CantComprobantes: 4,
	}

	dto := tablero.ArmarKPIs(k)

	assert.True(t, dto.TicketPromedio.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, int64(4), dto.CantComprobantes)
}

func TestArmarTopArticulos_Numeracion(t *testing.T) {
	articulos := []ventas.TopArticulo{
		{CodArticu: "A1", Descripcio: "Heladera", Total: decimal.NewFromInt(900)},
		{CodArticu: "A2", Descripcio: "Lavarropas", Total: decimal.NewFromInt(500)},
	}

	top := tablero.ArmarTopArticulos(articulos)

	require.Len(t, top, 2)
	assert.Equal(t, 1, top[0].Puesto)
	assert.Equal(t, 2, top[1].Puesto)
	assert.Equal(t, "A2", top[1].CodArticu)
}
