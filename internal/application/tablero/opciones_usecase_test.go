package tablero_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tangopuntohogar-collab/Retail/internal/application/tablero"
	"github.com/tangopuntohogar-collab/Retail/internal/domain/ventas"
)

// repoStub implementación de conveniencia del repositorio para los tests.
type repoStub struct {
	mu       sync.Mutex
	llamadas map[ventas.Rango]int

	buscarFn   func(ctx context.Context, f ventas.Filtros, pagina int) (ventas.Pagina, error)
	metricasFn func(ctx context.Context, f ventas.Filtros) (*ventas.Metricas, error)
	opcionesFn func(ctx context.Context, dim ventas.Dimension, rango ventas.Rango) ([]string, error)
	cuotasFn   func(ctx context.Context, rango ventas.Rango) ([]int, error)
}

func (r *repoStub) BuscarPagina(ctx context.Context, f ventas.Filtros, pagina int) (ventas.Pagina, error) {
	if r.buscarFn != nil {
		return r.buscarFn(ctx, f, pagina)
	}
	return ventas.Pagina{}, nil
}

func (r *repoStub) Metricas(ctx context.Context, f ventas.Filtros) (*ventas.Metricas, error) {
	if r.metricasFn != nil {
		return r.metricasFn(ctx, f)
	}
	m := ventas.MetricasVacias()
	return &m, nil
}

func (r *repoStub) OpcionesDimension(ctx context.Context, dim ventas.Dimension, rango ventas.Rango) ([]string, error) {
	r.mu.Lock()
	if r.llamadas == nil {
		r.llamadas = make(map[ventas.Rango]int)
	}
	r.llamadas[rango]++
	r.mu.Unlock()
	if r.opcionesFn != nil {
		return r.opcionesFn(ctx, dim, rango)
	}
	return []string{}, nil
}

func (r *repoStub) CuotasDisponibles(ctx context.Context, rango ventas.Rango) ([]int, error) {
	if r.cuotasFn != nil {
		return r.cuotasFn(ctx, rango)
	}
	return []int{}, nil
}

func (r *repoStub) llamadasPara(rango ventas.Rango) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.llamadas[rango]
}

func rangoDe(desde, hasta string) ventas.Rango {
	return ventas.Rango{FechaDesde: desde, FechaHasta: hasta}
}

func TestOpciones_CargaTodasLasDimensiones(t *testing.T) {
	stub := &repoStub{
		opcionesFn: func(_ context.Context, dim ventas.Dimension, _ ventas.Rango) ([]string, error) {
			return []string{string(dim) + "-1", string(dim) + "-2"}, nil
		},
		cuotasFn: func(_ context.Context, _ ventas.Rango) ([]int, error) {
			return []int{1, 3, 6}, nil
		},
	}
	uc := tablero.NewOpcionesUseCase(stub, zerolog.Nop())

	opciones, err := uc.Cargar(context.Background(), rangoDe("2024-03-01", "2024-03-31"))

	require.NoError(t, err)
	assert.Equal(t, []string{"sucursal-1", "sucursal-2"}, opciones.Sucursales)
	assert.Equal(t, []string{"rubro-1", "rubro-2"}, opciones.Rubros)
	assert.Equal(t, []string{"medio_pago-1", "medio_pago-2"}, opciones.MediosPago)
	assert.Equal(t, []string{"proveedor-1", "proveedor-2"}, opciones.Proveedores)
	assert.Equal(t, []int{1, 3, 6}, opciones.Cuotas)
}

func TestOpciones_DimensionCaidaNoTumbaElResto(t *testing.T) {
	stub := &repoStub{
		opcionesFn: func(_ context.Context, dim ventas.Dimension, _ ventas.Rango) ([]string, error) {
			if dim == ventas.DimRubro {
				return nil, errors.New("timeout remoto")
			}
			return []string{"valor"}, nil
		},
	}
	uc := tablero.NewOpcionesUseCase(stub, zerolog.Nop())

	opciones, err := uc.Cargar(context.Background(), rangoDe("2024-03-01", "2024-03-31"))

	require.NoError(t, err)
	assert.Empty(t, opciones.Rubros)
	assert.NotNil(t, opciones.Rubros)
	assert.Equal(t, []string{"valor"}, opciones.Sucursales)
}

func TestOpciones_CacheaPorRango(t *testing.T) {
	rango := rangoDe("2024-03-01", "2024-03-31")
	stub := &repoStub{}
	uc := tablero.NewOpcionesUseCase(stub, zerolog.Nop())

	_, err := uc.Cargar(context.Background(), rango)
	require.NoError(t, err)
	primera := stub.llamadasPara(rango)

	_, err = uc.Cargar(context.Background(), rango)
	require.NoError(t, err)

	assert.Equal(t, primera, stub.llamadasPara(rango), "la segunda carga debe salir del cache")
}

func TestOpciones_InvalidarFuerzaRecarga(t *testing.T) {
	rango := rangoDe("2024-03-01", "2024-03-31")
	stub := &repoStub{}
	uc := tablero.NewOpcionesUseCase(stub, zerolog.Nop())

	_, err := uc.Cargar(context.Background(), rango)
	require.NoError(t, err)
	primera := stub.llamadasPara(rango)

	uc.Invalidar()
	_, err = uc.Cargar(context.Background(), rango)
	require.NoError(t, err)

	assert.Greater(t, stub.llamadasPara(rango), primera)
}

func TestOpciones_CargaViejaNoPisaSnapshotNuevo(t *testing.T) {
	rangoViejo := rangoDe("2024-02-01", "2024-02-29")
	rangoNuevo := rangoDe("2024-03-01", "2024-03-31")

	bloqueo := make(chan struct{})
	var enVuelo sync.Once
	viejoEnVuelo := make(chan struct{})

	stub := &repoStub{
		opcionesFn: func(_ context.Context, dim ventas.Dimension, rango ventas.Rango) ([]string, error) {
			if rango == rangoViejo {
				enVuelo.Do(func() { close(viejoEnVuelo) })
				<-bloqueo
				return []string{"viejo"}, nil
			}
			return []string{"nuevo"}, nil
		},
	}
	uc := tablero.NewOpcionesUseCase(stub, zerolog.Nop())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		opciones, err := uc.Cargar(context.Background(), rangoViejo)
		// El llamador tardío igual recibe el resultado de SU rango.
		assert.NoError(t, err)
		assert.Equal(t, []string{"viejo"}, opciones.Sucursales)
	}()

	select {
	case <-viejoEnVuelo:
	case <-time.After(2 * time.Second):
		t.Fatal("la carga del rango viejo nunca arrancó")
	}

	// El rango nuevo resuelve mientras el viejo sigue en vuelo.
	opciones, err := uc.Cargar(context.Background(), rangoNuevo)
	require.NoError(t, err)
	require.Equal(t, []string{"nuevo"}, opciones.Sucursales)
	llamadasNuevo := stub.llamadasPara(rangoNuevo)

	close(bloqueo)
	wg.Wait()

	// El snapshot vigente sigue siendo el del rango nuevo: pedirlo de vuelta
	// sale del cache sin tocar el repositorio.
	opciones, err = uc.Cargar(context.Background(), rangoNuevo)
	require.NoError(t, err)
	assert.Equal(t, []string{"nuevo"}, opciones.Sucursales)
	assert.Equal(t, llamadasNuevo, stub.llamadasPara(rangoNuevo))
}
