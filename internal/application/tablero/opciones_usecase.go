package tablero

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tangopuntohogar-collab/Retail/internal/application/dto"
	"github.com/tangopuntohogar-collab/Retail/internal/domain/repository"
	"github.com/tangopuntohogar-collab/Retail/internal/domain/ventas"
)

// OpcionesUseCase carga las listas de opciones de todas las dimensiones para
// un rango de fechas. Las diez consultas salen en paralelo y fallan de forma
// independiente: una dimensión caída llega como lista vacía, nunca tumba al
// resto.
//
// El resultado se cachea por rango con un guardián de generación: cada cambio
// de rango pedido invalida las cargas anteriores aún en vuelo, de modo que un
// rango viejo que resuelve tarde jamás pisa el snapshot de uno más nuevo. Las
// cargas concurrentes del mismo rango se deduplican con singleflight.
type OpcionesUseCase struct {
	repo   repository.VentasRepository
	logger zerolog.Logger

	grupo singleflight.Group

	mu          sync.Mutex
	generacion  uint64
	rangoPedido ventas.Rango
	rangoCache  ventas.Rango
	snapshot    *dto.OpcionesFiltrosDTO
}

// NewOpcionesUseCase construye el caso de uso.
func NewOpcionesUseCase(repo repository.VentasRepository, logger zerolog.Logger) *OpcionesUseCase {
	return &OpcionesUseCase{repo: repo, logger: logger}
}

// Cargar devuelve las opciones del rango, del cache si el rango no cambió.
func (uc *OpcionesUseCase) Cargar(ctx context.Context, rango ventas.Rango) (*dto.OpcionesFiltrosDTO, error) {
	uc.mu.Lock()
	if uc.snapshot != nil && uc.rangoCache == rango {
		snap := *uc.snapshot
		uc.mu.Unlock()
		return &snap, nil
	}
	if uc.rangoPedido != rango {
		uc.generacion++
		uc.rangoPedido = rango
	}
	gen := uc.generacion
	uc.mu.Unlock()

	clave := rango.FechaDesde + "|" + rango.FechaHasta
	res, err, _ := uc.grupo.Do(clave, func() (interface{}, error) {
		return uc.cargarTodas(ctx, rango), nil
	})
	if err != nil {
		return nil, err
	}
	opciones := res.(*dto.OpcionesFiltrosDTO)

	uc.mu.Lock()
	if gen == uc.generacion {
		uc.snapshot = opciones
		uc.rangoCache = rango
	}
	uc.mu.Unlock()

	salida := *opciones
	return &salida, nil
}

// Invalidar descarta el snapshot vigente; la próxima carga va al origen.
func (uc *OpcionesUseCase) Invalidar() {
	uc.mu.Lock()
	uc.generacion++
	uc.snapshot = nil
	uc.rangoPedido = ventas.Rango{}
	uc.mu.Unlock()
}

func (uc *OpcionesUseCase) cargarTodas(ctx context.Context, rango ventas.Rango) *dto.OpcionesFiltrosDTO {
	var (
		out dto.OpcionesFiltrosDTO
		mu  sync.Mutex
		wg  sync.WaitGroup
	)

	destinos := map[ventas.Dimension]*[]string{
		ventas.DimSucursal:  &out.Sucursales,
		ventas.DimRubro:     &out.Rubros,
		ventas.DimMedioPago: &out.MediosPago,
		ventas.DimCliente:   &out.Clientes,
		ventas.DimFamilia:   &out.Familias,
		ventas.DimCategoria: &out.Categorias,
		ventas.DimTipo:      &out.Tipos,
		ventas.DimGenero:    &out.Generos,
		ventas.DimProveedor: &out.Proveedores,
	}
	for dim, destino := range destinos {
		wg.Add(1)
		go func(dim ventas.Dimension, destino *[]string) {
			defer wg.Done()
			valores, err := uc.repo.OpcionesDimension(ctx, dim, rango)
			if err != nil {
				uc.logger.Warn().Err(err).Str("dimension", string(dim)).
					Msg("No se pudieron cargar las opciones de la dimensión")
				valores = nil
			}
			if valores == nil {
				valores = []string{}
			}
			mu.Lock()
			*destino = valores
			mu.Unlock()
		}(dim, destino)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		cuotas, err := uc.repo.CuotasDisponibles(ctx, rango)
		if err != nil {
			uc.logger.Warn().Err(err).Msg("No se pudieron cargar las cuotas disponibles")
			cuotas = nil
		}
		if cuotas == nil {
			cuotas = []int{}
		}
		mu.Lock()
		out.Cuotas = cuotas
		mu.Unlock()
	}()

	wg.Wait()
	return &out
}
