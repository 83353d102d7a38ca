package tablero

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tangopuntohogar-collab/Retail/internal/domain/ventas"
)

// bomUTF8 hace que Excel abra el archivo con las tildes correctas.
var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// encabezadosCSV las 19 columnas fijas de la exportación, en orden.
var encabezadosCSV = []string{
	"Suc.", "Tipo", "Comprobante", "Fecha",
	"Cód. Art.", "Descripción", "Info Adicional",
	"Cód. Cliente", "Cliente", "Rubro",
	"Medio de Pago", "Cuotas",
	"Cantidad",
	"Precio Neto", "Precio Unit.",
	"Total c/IVA",
	"Costo Unit.", "Costo Total",
	"Rentab. %",
}

// GenerarCSV serializa las filas al formato de planilla regional: separador
// punto y coma, fin de línea CRLF, BOM UTF-8, coma decimal y todos los campos
// entre comillas dobles (las comillas internas se duplican).
func GenerarCSV(filas []ventas.Venta) []byte {
	var buf bytes.Buffer
	buf.Write(bomUTF8)
	escribirLineaCSV(&buf, encabezadosCSV)

	for _, v := range filas {
		buf.WriteString("\r\n")
		escribirLineaCSV(&buf, camposCSV(v))
	}
	return buf.Bytes()
}

// NombreArchivoCSV nombre de descarga estampado con la fecha actual.
func NombreArchivoCSV(ahora time.Time) string {
	return fmt.Sprintf("ventas_%s.csv", ahora.Format(ventas.FormatoFecha))
}

func camposCSV(v ventas.Venta) []string {
	cuotas := ""
	if v.CantCuotas != nil {
		cuotas = strconv.Itoa(*v.CantCuotas)
	}
	return []string{
		v.NroSucursal,
		v.TComp,
		v.NComp,
		v.Fecha.Format("02/01/06"),
		v.CodArticu,
		v.Descripcio,
		textoDePuntero(v.DescAdic),
		v.CodClient,
		v.RazonSocial,
		v.Rubro,
		v.MedioPago(),
		cuotas,
		v.Cantidad.StringFixed(0),
		numeroCSVPtr(v.PrecioNeto),
		numeroCSV(v.PrecioUnitario()),
		numeroCSV(v.ImporteCIVA),
		numeroCSVPtr(v.Costo),
		numeroCSVPtr(v.CostoTotal()),
		numeroCSV(v.PorcRentab),
	}
}

func escribirLineaCSV(buf *bytes.Buffer, campos []string) {
	for i, campo := range campos {
		if i > 0 {
			buf.WriteByte(';')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(campo, `"`, `""`))
		buf.WriteByte('"')
	}
}

// numeroCSV dos decimales con coma como separador decimal.
func numeroCSV(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}

func numeroCSVPtr(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return numeroCSV(*d)
}

func textoDePuntero(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
