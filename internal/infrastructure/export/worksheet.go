package export

import (
	"fmt"
	"strings"
)

// Ensamblado del worksheet XML (SpreadsheetML). A diferencia del PDF, no hay
// paginación: la hoja es una secuencia plana de <row>. Los valores numéricos
// se emiten tipados como <v>; todo lo demás va como string inline
// (t="inlineStr") para no necesitar tabla de strings compartidos.

// colLetter nombre de columna Excel en base-26 biyectiva, 0-based:
// 0→A, 25→Z, 26→AA, 27→AB…
func colLetter(i int) string {
	if i < 0 {
		return ""
	}
	return colLetter(i/26-1) + string(rune('A'+i%26))
}

// worksheetBuilder acumula filas con índice 1-based.
type worksheetBuilder struct {
	rows    []string
	nextRow int
}

func newWorksheetBuilder() *worksheetBuilder {
	return &worksheetBuilder{nextRow: 1}
}

// addRow emite una <row> con una celda por valor. styled marca la fila con el
// estilo 1 del styles.xml (negrita, para títulos y cabeceras).
func (b *worksheetBuilder) addRow(values []cellValue, styled bool) {
	r := b.nextRow
	b.nextRow++

	var row strings.Builder
	fmt.Fprintf(&row, `<row r="%d">`, r)
	for i, v := range values {
		ref := colLetter(i) + fmt.Sprint(r)
		style := ""
		if styled {
			style = ` s="1"`
		}
		if v.numeric {
			fmt.Fprintf(&row, `<c r="%s"%s><v>%s</v></c>`, ref, style, v.text)
		} else {
			fmt.Fprintf(&row, `<c r="%s"%s t="inlineStr"><is><t>%s</t></is></c>`,
				ref, style, escapeXML(v.text))
		}
	}
	row.WriteString("</row>")
	b.rows = append(b.rows, row.String())
}

func (b *worksheetBuilder) skipRow() { b.nextRow++ }

// xml envuelve las filas acumuladas en el documento worksheet completo.
func (b *worksheetBuilder) xml() string {
	var doc strings.Builder
	doc.WriteString(xmlProlog)
	doc.WriteString(`<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>`)
	for _, r := range b.rows {
		doc.WriteString(r)
	}
	doc.WriteString("</sheetData></worksheet>")
	return doc.String()
}

// cellValue una celda ya resuelta: texto crudo + si va tipada como numérica.
type cellValue struct {
	text    string
	numeric bool
}

func toCell(v any) cellValue {
	if n, ok := numericValue(v); ok {
		return cellValue{text: n, numeric: true}
	}
	return cellValue{text: formatValue(v)}
}

func textCell(s string) cellValue { return cellValue{text: s} }
