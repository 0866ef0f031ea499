package export

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/domain/report"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del ensamblador de worksheet y del paquete XLSX completo. El XML
// generado se verifica estructuralmente con etree, no comparando strings.
// ──────────────────────────────────────────────────────────────────────────────

// Biyección base-26: A..Z, AA..AZ, …, ZZ sin duplicados y ordenado por
// longitud; debe coincidir con la convención de Excel o el archivo abre con
// aviso de reparación.
func TestColLetter_Biyeccion(t *testing.T) {
	assert.Equal(t, "A", colLetter(0))
	assert.Equal(t, "Z", colLetter(25))
	assert.Equal(t, "AA", colLetter(26))
	assert.Equal(t, "AB", colLetter(27))
	assert.Equal(t, "AZ", colLetter(51))
	assert.Equal(t, "BA", colLetter(52))
	assert.Equal(t, "ZZ", colLetter(701))

	seen := make(map[string]struct{}, 702)
	prev := ""
	for i := 0; i <= 701; i++ {
		s := colLetter(i)
		_, dup := seen[s]
		require.False(t, dup, "colLetter(%d)=%q duplicada", i, s)
		seen[s] = struct{}{}
		if len(prev) == len(s) {
			require.Less(t, prev, s, "dentro de la misma longitud el orden es lexicográfico")
		} else if prev != "" {
			require.Less(t, len(prev), len(s), "las longitudes solo crecen")
		}
		prev = s
	}
}

// Solo resumen, sin secciones → 6 entradas y worksheet
// con únicamente el bloque de resumen.
func TestGenerateXLSX_SoloResumen(t *testing.T) {
	g := NewDocumentGenerator()
	data := &report.Data{
		Summary: []report.Entry{
			{Label: "Total Sales", Value: decimal.NewFromFloat(1234.5)},
			{Label: "Orders", Value: 37},
			{Label: "Store", Value: "Tienda Central"},
		},
	}
	xlsx, err := g.GenerateXLSX(data, "Ventas")
	require.NoError(t, err)

	parts := readArchive(t, xlsx)
	require.Len(t, parts, 6, "el paquete XLSX siempre tiene 6 partes")
	for _, name := range []string{
		"[Content_Types].xml", "_rels/.rels", "xl/workbook.xml",
		"xl/worksheets/sheet1.xml", "xl/styles.xml", "xl/_rels/workbook.xml.rels",
	} {
		require.Contains(t, parts, name)
	}

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(parts["xl/worksheets/sheet1.xml"]))
	rows := doc.FindElements("//sheetData/row")
	require.Len(t, rows, 4, "título Summary + 3 entradas de resumen, nada más")

	title := rows[0].FindElement("c/is/t")
	require.NotNil(t, title)
	assert.Equal(t, "Summary", title.Text())

	// Entrada numérica decimal → celda <v> tipada
	v := rows[1].FindElement(`c[@r='B2']/v`)
	require.NotNil(t, v, "los valores numéricos van como <v>")
	assert.Equal(t, "1234.5", v.Text())

	// Entrada string → inline string
	c := rows[3].FindElement(`c[@r='B4']`)
	require.NotNil(t, c)
	assert.Equal(t, "inlineStr", c.SelectAttrValue("t", ""))
	assert.Equal(t, "Tienda Central", c.FindElement("is/t").Text())
}

func TestGenerateXLSX_SeccionConCabeceraYRegistros(t *testing.T) {
	g := NewDocumentGenerator()
	sec := report.NewSection("Top Products", []string{"product", "unitsSold"})
	sec.AddRecord(report.Record{"product": "Cafe & Leche", "unitsSold": 12})
	sec.AddRecord(report.Record{"product": "Pan <integral>", "unitsSold": 9})
	data := &report.Data{Sections: []report.Section{sec}}

	xlsx, err := g.GenerateXLSX(data, "Reporte")
	require.NoError(t, err)
	parts := readArchive(t, xlsx)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(parts["xl/worksheets/sheet1.xml"]),
		"el worksheet debe ser XML bien formado aun con &, < y > en los datos")

	rows := doc.FindElements("//sheetData/row")
	// Summary (título solo) + fila en blanco + título sección + cabecera + 2 registros
	require.Len(t, rows, 5)
	assert.Equal(t, "3", rows[1].SelectAttrValue("r", ""), "tras la fila en blanco el índice sigue en 3")

	header := rows[2].FindElements("c/is/t")
	require.Len(t, header, 2)
	assert.Equal(t, "Product", header[0].Text())
	assert.Equal(t, "Units Sold", header[1].Text(), "clave camelCase humanizada")

	// Los caracteres reservados sobreviven el escape round-trip
	assert.Equal(t, "Cafe & Leche", rows[3].FindElement("c/is/t").Text())
	assert.Equal(t, "Pan <integral>", rows[4].FindElement("c/is/t").Text())
	assert.Equal(t, "12", rows[3].FindElement(`c[@r='B5']/v`).Text())
}

func TestGenerateXLSX_NombreDeHojaEscapado(t *testing.T) {
	g := NewDocumentGenerator()
	xlsx, err := g.GenerateXLSX(&report.Data{}, `Ventas "Q1" <2026>`)
	require.NoError(t, err)
	parts := readArchive(t, xlsx)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(parts["xl/workbook.xml"]))
	sheet := doc.FindElement("//sheets/sheet")
	require.NotNil(t, sheet)
	assert.Equal(t, `Ventas "Q1" <2026>`, sheet.SelectAttrValue("name", ""))
}

func TestGenerateXLSX_Determinista(t *testing.T) {
	g := NewDocumentGenerator()
	data := &report.Data{Summary: []report.Entry{{Label: "Total", Value: 10}}}
	a, err := g.GenerateXLSX(data, "R")
	require.NoError(t, err)
	b, err := g.GenerateXLSX(data, "R")
	require.NoError(t, err)
	assert.Equal(t, a, b, "sin timestamps embebidos: mismos datos, mismos bytes")
}

func TestGenerateXLSX_RechazaValorNoSoportado(t *testing.T) {
	g := NewDocumentGenerator()
	data := &report.Data{Summary: []report.Entry{{Label: "Raro", Value: []int{1, 2}}}}
	_, err := g.GenerateXLSX(data, "R")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Raro")
}

// readArchive extrae todas las entradas con archive/zip (extractor
// independiente del escritor propio).
func readArchive(t *testing.T, archive []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err, "el XLSX debe abrir sin reparación")
	out := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		out[f.Name] = data
	}
	return out
}
