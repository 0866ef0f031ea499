package export

import (
	"fmt"

	"github.com/jhoicas/pos-api/internal/domain/report"
)

const xmlProlog = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Partes fijas del paquete OOXML. El orden de declaración es también el
// orden físico de escritura en el ZIP (6 entradas, siempre las mismas).
const (
	partContentTypes = xmlProlog +
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>` +
		`<Override PartName="/xl/worksheets/sheet1.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"/>` +
		`<Override PartName="/xl/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"/>` +
		`</Types>`

	partRootRels = xmlProlog +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/>` +
		`</Relationships>`

	partWorkbookRels = xmlProlog +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"/>` +
		`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
		`</Relationships>`

	// Dos formatos de celda: 0 normal, 1 negrita (títulos y cabeceras).
	partStyles = xmlProlog +
		`<styleSheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">` +
		`<fonts count="2"><font><sz val="11"/><name val="Calibri"/></font>` +
		`<font><b/><sz val="11"/><name val="Calibri"/></font></fonts>` +
		`<fills count="1"><fill><patternFill patternType="none"/></fill></fills>` +
		`<borders count="1"><border/></borders>` +
		`<cellXfs count="2"><xf fontId="0"/><xf fontId="1" applyFont="1"/></cellXfs>` +
		`</styleSheet>`
)

func partWorkbook(sheetName string) string {
	return xmlProlog +
		`<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" ` +
		`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">` +
		`<sheets><sheet name="` + escapeXML(sheetName) + `" sheetId="1" r:id="rId1"/></sheets>` +
		`</workbook>`
}

// GenerateXLSX serializa el reporte como libro de una sola hoja. El archivo
// resultante es un ZIP de exactamente 6 entradas almacenadas sin comprimir.
func (g *DocumentGenerator) GenerateXLSX(data *report.Data, sheetName string) ([]byte, error) {
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("export: xlsx: %w", err)
	}
	if sheetName == "" {
		sheetName = "Reporte"
	}

	ws := newWorksheetBuilder()

	ws.addRow([]cellValue{textCell("Summary")}, true)
	for _, e := range data.Summary {
		ws.addRow([]cellValue{textCell(e.Label), toCell(e.Value)}, false)
	}

	for _, sec := range data.Sections {
		ws.skipRow()
		ws.addRow([]cellValue{textCell(sec.Name)}, true)
		if len(sec.Records) == 0 {
			continue
		}
		header := make([]cellValue, len(sec.Columns))
		for i, c := range sec.Columns {
			header[i] = textCell(humanizeKey(c))
		}
		ws.addRow(header, true)
		for _, rec := range sec.Records {
			cells := make([]cellValue, len(sec.Columns))
			for i, c := range sec.Columns {
				cells[i] = toCell(rec[c])
			}
			ws.addRow(cells, false)
		}
	}

	zw := newZipWriter()
	zw.add("[Content_Types].xml", []byte(partContentTypes))
	zw.add("_rels/.rels", []byte(partRootRels))
	zw.add("xl/workbook.xml", []byte(partWorkbook(sheetName)))
	zw.add("xl/worksheets/sheet1.xml", []byte(ws.xml()))
	zw.add("xl/styles.xml", []byte(partStyles))
	zw.add("xl/_rels/workbook.xml.rels", []byte(partWorkbookRels))
	return zw.finish(), nil
}
