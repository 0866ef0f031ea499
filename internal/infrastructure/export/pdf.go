// Package export implementa el codec de exportación de reportes a PDF 1.4 y
// XLSX (Office Open XML) construyendo los binarios a mano, sin librerías de
// PDF ni de archivo:
//
//   - PDF: motor de layout con cursor de página → grafo de objetos indirectos
//     (catálogo, árbol de páginas, fuentes, content streams) → tabla xref con
//     offsets exactos y trailer.
//   - XLSX: ensamblado del worksheet XML fila a fila → contenedor ZIP sin
//     compresión (método stored) con CRC-32 propio, cabeceras locales y
//     directorio central.
//
// Ambas rutas son funciones puras de su entrada: mismo reporte, mismos bytes.
// Todo el estado (cursor, contadores de objetos, offsets) vive en la
// invocación, así que el codec es seguro ante llamadas concurrentes.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jhoicas/pos-api/internal/domain/report"
)

// DocumentGenerator implementa report.DocumentExporter. No tiene estado:
// cada Generate* arma su propio generador interno.
type DocumentGenerator struct{}

// NewDocumentGenerator construye el codec.
func NewDocumentGenerator() *DocumentGenerator { return &DocumentGenerator{} }

// GeneratePDF serializa el reporte como PDF 1.4 (Letter, Helvetica WinAnsi).
// Un reporte vacío produce igualmente una página con solo el encabezado.
func (g *DocumentGenerator) GeneratePDF(title string, data *report.Data, businessName string, period report.DateRange) ([]byte, error) {
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("export: pdf: %w", err)
	}

	l := newLayout()
	l.addText(title, 16, true)
	l.addText(businessName, 11, false)
	l.addText(fmt.Sprintf("Periodo: %s - %s",
		period.Start.Format("2006-01-02"), period.End.Format("2006-01-02")), 9, false)
	l.addVerticalSpace(10)

	if len(data.Summary) > 0 {
		l.addText("Summary", 12, true)
		l.addVerticalSpace(4)
		for _, e := range data.Summary {
			l.addTableRow([]string{e.Label, formatValue(e.Value)}, false)
		}
	}

	for _, sec := range data.Sections {
		l.addVerticalSpace(12)
		l.addText(sec.Name, 12, true)
		l.addVerticalSpace(4)
		if len(sec.Records) == 0 {
			continue
		}
		header := make([]string, len(sec.Columns))
		for i, c := range sec.Columns {
			header[i] = humanizeKey(c)
		}
		l.addTableRow(header, true)
		for _, rec := range sec.Records {
			cells := make([]string, len(sec.Columns))
			for i, c := range sec.Columns {
				cells[i] = formatValue(rec[c])
			}
			l.addTableRow(cells, false)
		}
	}

	return renderPDF(l.pages), nil
}

// ── Serialización ─────────────────────────────────────────────────────────────

// Numeración determinista de objetos (fase 1): Catalog=1, Pages=2, F1=3,
// F2=4, luego un objeto Page por página en orden y después un content stream
// por página en el mismo orden. Los números se asignan aquí, no durante el
// layout, porque la cantidad de páginas solo se conoce al terminarlo.
func renderPDF(pages []*page) []byte {
	const (
		objCatalog  = 1
		objPages    = 2
		objFontReg  = 3
		objFontBold = 4
		firstPageID = 5
	)
	pageCount := len(pages)
	objCount := 4 + 2*pageCount

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	// Comentario binario: marca el archivo como no-ASCII para transferencias
	buf.Write([]byte{'%', 0xE2, 0xE3, 0xCF, 0xD3, '\n'})

	// Fase 2: cuerpo. El offset de cada "N 0 obj" se captura en el momento de
	// emitirlo; nunca se calcula hacia adelante.
	offsets := make([]int, objCount+1)
	writeObj := func(id int, body string) {
		offsets[id] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", id, body)
	}
	writeStreamObj := func(id int, stream []byte) {
		offsets[id] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n<< /Length %d >>\nstream\n", id, len(stream))
		buf.Write(stream)
		buf.WriteString("\nendstream\nendobj\n")
	}

	writeObj(objCatalog, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, pageCount)
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", firstPageID+i)
	}
	writeObj(objPages, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>",
		strings.Join(kids, " "), pageCount))

	writeObj(objFontReg, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")
	writeObj(objFontBold, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold /Encoding /WinAnsiEncoding >>")

	for i := range pages {
		contentID := firstPageID + pageCount + i
		writeObj(firstPageID+i, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %s %s] /Resources << /Font << /F1 3 0 R /F2 4 0 R >> >> /Contents %d 0 R >>",
			num(pageWidth), num(pageHeight), contentID))
	}
	for i, p := range pages {
		// /Length debe ser exactamente el largo en bytes del stream unido;
		// cualquier desfase vuelve el PDF ilegible en lectores estrictos.
		writeStreamObj(firstPageID+pageCount+i, []byte(strings.Join(p.ops, "\n")))
	}

	// Fase 3: xref + trailer. Entradas de 20 bytes de ancho fijo; la primera
	// es la cabeza de la free-list.
	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", objCount+1)
	buf.WriteString("0000000000 65535 f \n")
	for id := 1; id <= objCount; id++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[id])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		objCount+1, xrefOffset)

	return buf.Bytes()
}
