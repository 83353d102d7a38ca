package tablero

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tangopuntohogar-collab/Retail/internal/domain/repository"
	"github.com/tangopuntohogar-collab/Retail/internal/domain/ventas"
)

// ExportacionUseCase exporta la página filtrada actual como CSV o PDF.
type ExportacionUseCase struct {
	repo  repository.VentasRepository
	pdf   GeneradorReportePDF
	ahora func() time.Time
}

// NewExportacionUseCase construye el caso de uso.
func NewExportacionUseCase(repo repository.VentasRepository, pdf GeneradorReportePDF) *ExportacionUseCase {
	return &ExportacionUseCase{repo: repo, pdf: pdf, ahora: time.Now}
}

// CSV genera el archivo de la página pedida y su nombre de descarga.
func (uc *ExportacionUseCase) CSV(ctx context.Context, f ventas.Filtros, pagina int) ([]byte, string, error) {
	p, err := uc.buscar(ctx, f, pagina)
	if err != nil {
		return nil, "", err
	}
	return GenerarCSV(p.Filas), NombreArchivoCSV(uc.ahora()), nil
}

// PDF genera el reporte de la página pedida y su nombre de descarga.
func (uc *ExportacionUseCase) PDF(ctx context.Context, f ventas.Filtros, pagina int) ([]byte, string, error) {
	p, err := uc.buscar(ctx, f, pagina)
	if err != nil {
		return nil, "", err
	}

	totalFacturado := decimal.Zero
	margenTotal := decimal.Zero
	for _, v := range p.Filas {
		totalFacturado = totalFacturado.Add(v.ImporteReal())
		margenTotal = margenTotal.Add(v.MargenContrib)
	}

	contenido, err := uc.pdf.Generar(DatosReporte{
		Rango:          f.Rango(),
		ResumenFiltros: resumenFiltros(f),
		Filas:          p.Filas,
		TotalFilas:     p.Total,
		TotalFacturado: totalFacturado,
		MargenTotal:    margenTotal,
	})
	if err != nil {
		return nil, "", fmt.Errorf("tablero: reporte PDF: %w", err)
	}
	nombre := fmt.Sprintf("ventas_%s.pdf", uc.ahora().Format(ventas.FormatoFecha))
	return contenido, nombre, nil
}

func (uc *ExportacionUseCase) buscar(ctx context.Context, f ventas.Filtros, pagina int) (ventas.Pagina, error) {
	if pagina < 0 {
		pagina = 0
	}
	p, err := uc.repo.BuscarPagina(ctx, f, pagina)
	if err != nil {
		return ventas.Pagina{}, fmt.Errorf("tablero: exportación de página %d: %w", pagina, err)
	}
	return p, nil
}

// resumenFiltros línea legible con las dimensiones activas, para el
// encabezado del reporte. Sin filtros devuelve "Todos los registros".
func resumenFiltros(f ventas.Filtros) string {
	var partes []string
	agregar := func(nombre string, valores []string) {
		if len(valores) > 0 {
			partes = append(partes, fmt.Sprintf("%s: %s", nombre, strings.Join(valores, ", ")))
		}
	}
	agregar("Sucursales", f.Sucursales)
	agregar("Rubros", f.Rubros)
	agregar("Modalidades", f.Modalidades)
	agregar("Medios de pago", f.Cuentas)
	agregar("Clientes", f.Clientes)
	agregar("Familias", f.Familias)
	agregar("Categorías", f.Categorias)
	agregar("Tipos", f.Tipos)
	agregar("Géneros", f.Generos)
	agregar("Proveedores", f.Proveedores)
	if len(f.Cuotas) > 0 {
		cuotas := make([]string, 0, len(f.Cuotas))
		for _, c := range f.Cuotas {
			cuotas = append(cuotas, fmt.Sprintf("%d", c))
		}
		partes = append(partes, fmt.Sprintf("Cuotas: %s", strings.Join(cuotas, ", ")))
	}
	if f.Busqueda != "" {
		partes = append(partes, fmt.Sprintf("Búsqueda: %q", f.Busqueda))
	}
	if f.Comprobante != "" {
		partes = append(partes, fmt.Sprintf("Comprobante: %q", f.Comprobante))
	}
	if len(partes) == 0 {
		return "Todos los registros"
	}
	return strings.Join(partes, " · ")
}
