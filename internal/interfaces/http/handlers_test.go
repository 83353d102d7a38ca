package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tangopuntohogar-collab/Retail/internal/application/tablero"
	"github.com/tangopuntohogar-collab/Retail/internal/domain"
	"github.com/tangopuntohogar-collab/Retail/internal/domain/ventas"
	httpapi "github.com/tangopuntohogar-collab/Retail/internal/interfaces/http"
)

// repoFalso repositorio en memoria para los tests de la API.
type repoFalso struct {
	pagina   ventas.Pagina
	metricas ventas.Metricas
	opciones map[ventas.Dimension][]string
	cuotas   []int
	fallo    error // si está seteado, toda consulta falla con este error
}

func (r *repoFalso) BuscarPagina(_ context.Context, _ ventas.Filtros, _ int) (ventas.Pagina, error) {
	if r.fallo != nil {
		return ventas.Pagina{}, r.fallo
	}
	return r.pagina, nil
}

func (r *repoFalso) Metricas(_ context.Context, _ ventas.Filtros) (*ventas.Metricas, error) {
	if r.fallo != nil {
		return nil, r.fallo
	}
	m := r.metricas
	return &m, nil
}

func (r *repoFalso) OpcionesDimension(_ context.Context, dim ventas.Dimension, _ ventas.Rango) ([]string, error) {
	return r.opciones[dim], nil
}

func (r *repoFalso) CuotasDisponibles(_ context.Context, _ ventas.Rango) ([]int, error) {
	return r.cuotas, nil
}

// pdfFalso evita depender del motor real de PDF en los tests de la API.
type pdfFalso struct{}

func (pdfFalso) Generar(_ tablero.DatosReporte) ([]byte, error) {
	return []byte("%PDF-1.4 falso"), nil
}

func appDePrueba(repo *repoFalso) *fiber.App {
	app := fiber.New()
	httpapi.Router(app, httpapi.RouterDeps{
		DashboardUC:   tablero.NewDashboardUseCase(repo, zerolog.Nop()),
		GrillaUC:      tablero.NewGrillaUseCase(repo),
		OpcionesUC:    tablero.NewOpcionesUseCase(repo, zerolog.Nop()),
		ExportacionUC: tablero.NewExportacionUseCase(repo, pdfFalso{}),
	})
	return app
}

func filaDePrueba() ventas.Venta {
	return ventas.Venta{
		NroSucursal:   "01",
		TComp:         "FC",
		NComp:         "A-0001-00000001",
		Fecha:         time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		CodArticu:     "ART-1",
		Descripcio:    "Heladera",
		CodCondVenta:  "1",
		DescCuenta:    "EFECTIVO",
		DescCondVenta: "Contado",
		Cantidad:      decimal.NewFromInt(1),
		ImporteCIVA:   decimal.NewFromInt(1000),
		Rubro:         "ELECTRO",
	}
}

func TestListarVentas_DevuelveGrilla(t *testing.T) {
	repo := &repoFalso{pagina: ventas.Pagina{Filas: []ventas.Venta{filaDePrueba()}, Total: 1}}
	app := appDePrueba(repo)

	req := httptest.NewRequest("GET", "/api/ventas/?fecha_desde=2024-03-01&fecha_hasta=2024-03-31&pagina=0", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var grilla map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&grilla))
	assert.EqualValues(t, 1, grilla["total"])
	assert.EqualValues(t, 1, grilla["total_paginas"])
	assert.EqualValues(t, 500, grilla["tam_pagina"])

	filas, ok := grilla["filas"].([]any)
	require.True(t, ok)
	require.Len(t, filas, 1)
	fila := filas[0].(map[string]any)
	assert.Equal(t, "EFECTIVO", fila["medio_pago"], "medio unificado por condición de contado")
}

func TestListarVentas_FechaInvalidaDevuelve400(t *testing.T) {
	app := appDePrueba(&repoFalso{})

	req := httptest.NewRequest("GET", "/api/ventas/?fecha_desde=15-03-2024", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var cuerpo map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cuerpo))
	assert.Equal(t, "BAD_REQUEST", cuerpo["code"])
}

func TestDashboardMetricas_DevuelveTablero(t *testing.T) {
	m := ventas.MetricasVacias()
	m.KPIs.TotalFacturado = decimal.NewFromInt(5000)
	m.KPIs.CantComprobantes = 10
	m.Apilado = []ventas.PuntoApilado{{
		NroSucursal: "01", CategoriaNegocio: "TARJETA", MedioPago: "VISA",
		Monto: decimal.NewFromInt(5000),
	}}
	repo := &repoFalso{metricas: m}
	app := appDePrueba(repo)

	req := httptest.NewRequest("GET", "/api/dashboard/metricas?fecha_desde=2024-03-01&fecha_hasta=2024-03-31", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var tab map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tab))
	kpis := tab["kpis"].(map[string]any)
	assert.Equal(t, "5000", kpis["total_facturado"])
	assert.Equal(t, "500", kpis["ticket_promedio"])

	periodo := tab["periodo_actual"].(map[string]any)
	assert.Equal(t, "Marzo 2024", periodo["etiqueta"])
}

func TestDashboardMetricas_FalloRemotoDevuelve502(t *testing.T) {
	repo := &repoFalso{fallo: fmt.Errorf("ventas.Metricas: %w: timeout", domain.ErrConsultaFallo)}
	app := appDePrueba(repo)

	req := httptest.NewRequest("GET", "/api/dashboard/metricas?fecha_desde=2024-03-01&fecha_hasta=2024-03-31", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	var cuerpo map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cuerpo))
	assert.Equal(t, "REMOTE_ERROR", cuerpo["code"])
}

func TestExportarCSV_DescargaConBOM(t *testing.T) {
	repo := &repoFalso{pagina: ventas.Pagina{Filas: []ventas.Venta{filaDePrueba()}, Total: 1}}
	app := appDePrueba(repo)

	req := httptest.NewRequest("GET", "/api/ventas/export.csv?fecha_desde=2024-03-01&fecha_hasta=2024-03-31", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "ventas_")

	cuerpo, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(cuerpo), "\xEF\xBB\xBF"))
	assert.Contains(t, string(cuerpo), `"Heladera"`)
}

func TestExportarPDF_Descarga(t *testing.T) {
	repo := &repoFalso{pagina: ventas.Pagina{Filas: []ventas.Venta{filaDePrueba()}, Total: 1}}
	app := appDePrueba(repo)

	req := httptest.NewRequest("GET", "/api/ventas/export.pdf", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

func TestOpciones_DevuelveTodasLasListas(t *testing.T) {
	repo := &repoFalso{
		opciones: map[ventas.Dimension][]string{
			ventas.DimSucursal:  {"01", "02"},
			ventas.DimMedioPago: {"EFECTIVO", "VISA"},
		},
		cuotas: []int{1, 3},
	}
	app := appDePrueba(repo)

	req := httptest.NewRequest("GET", "/api/filtros/opciones?fecha_desde=2024-03-01&fecha_hasta=2024-03-31", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var opciones map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&opciones))
	assert.Len(t, opciones["sucursales"], 2)
	assert.Len(t, opciones["cuotas"], 2)
	// Las dimensiones sin datos igual viajan como lista vacía, no null.
	assert.NotNil(t, opciones["rubros"])
}
