package tablero

import (
	"context"
	"fmt"

	"github.com/tangopuntohogar-collab/Retail/internal/application/dto"
	"github.com/tangopuntohogar-collab/Retail/internal/domain/repository"
	"github.com/tangopuntohogar-collab/Retail/internal/domain/ventas"
)

// GrillaUseCase pagina el detalle de ventas de la vista consolidada.
type GrillaUseCase struct {
	repo repository.VentasRepository
}

// NewGrillaUseCase construye el caso de uso.
func NewGrillaUseCase(repo repository.VentasRepository) *GrillaUseCase {
	return &GrillaUseCase{repo: repo}
}

// Listar devuelve la página pedida (base cero, negativa se lleva a cero) con
// la aritmética de paginación resuelta: total de páginas y el rango de filas
// visibles en base uno.
func (uc *GrillaUseCase) Listar(ctx context.Context, f ventas.Filtros, pagina int) (*dto.GrillaDTO, error) {
	if pagina < 0 {
		pagina = 0
	}

	p, err := uc.repo.BuscarPagina(ctx, f, pagina)
	if err != nil {
		return nil, fmt.Errorf("tablero: página %d: %w", pagina, err)
	}

	filas := make([]dto.VentaDTO, 0, len(p.Filas))
	for _, v := range p.Filas {
		filas = append(filas, dto.VentaADTO(v))
	}

	desde, hasta := 0, 0
	if len(filas) > 0 {
		desde = pagina*ventas.TamPagina + 1
		hasta = pagina*ventas.TamPagina + len(filas)
	}

	return &dto.GrillaDTO{
		Filas:        filas,
		Total:        p.Total,
		Pagina:       pagina,
		TotalPaginas: ventas.TotalPaginas(p.Total),
		TamPagina:    ventas.TamPagina,
		Desde:        desde,
		Hasta:        hasta,
	}, nil
}
