package export

import (
	"fmt"
	"strings"
)

// Geometría fija de página: US Letter en puntos, con margen uniforme.
// El área útil vertical es pageHeight − 2·pageMargin = 692pt.
const (
	pageWidth  = 612.0
	pageHeight = 792.0
	pageMargin = 50.0

	tableRowHeight   = 18.0 // alto fijo de fila de tabla
	tableRowRequired = 20.0 // espacio mínimo para abrir una fila nueva
	cellMaxChars     = 25   // política fija de overflow: truncar, sin wrapping
)

// page una página PDF en construcción: cursor vertical descendente y lista
// append-only de operadores de contenido. Se sella al abrir la siguiente
// página (sellar es irreversible: nadie conserva el puntero anterior).
type page struct {
	y   float64
	ops []string
}

// layout mapea llamadas de dibujo a coordenadas absolutas de página y decide
// los saltos de página. Aritmética pura: ninguna operación puede fallar.
type layout struct {
	pages []*page
}

// newLayout abre la primera página; el serializador nunca emite cero páginas.
func newLayout() *layout {
	l := &layout{}
	l.newPage()
	return l
}

func (l *layout) newPage() {
	l.pages = append(l.pages, &page{y: pageHeight - pageMargin})
}

func (l *layout) current() *page {
	return l.pages[len(l.pages)-1]
}

// ensureSpace abre página nueva si el espacio restante hasta el margen no
// alcanza para needed puntos. Garantiza que ninguna línea ni fila se parta
// entre dos páginas.
func (l *layout) ensureSpace(needed float64) {
	if l.current().y-pageMargin < needed {
		l.newPage()
	}
}

// addText dibuja una línea de texto en el margen izquierdo y baja el cursor
// fontSize+5 puntos.
func (l *layout) addText(text string, fontSize float64, bold bool) {
	l.ensureSpace(fontSize + 5)
	p := l.current()
	font := "/F1"
	if bold {
		font = "/F2"
	}
	p.ops = append(p.ops, fmt.Sprintf("BT %s %s Tf %s %s Td (%s) Tj ET",
		font, num(fontSize), num(pageMargin), num(p.y),
		escapePDFText(sanitizeText(text))))
	p.y -= fontSize + 5
}

// addVerticalSpace baja el cursor; si quedara bajo el margen, el espacio se
// convierte en salto de página (la siguiente llamada dibuja arriba).
func (l *layout) addVerticalSpace(points float64) {
	p := l.current()
	p.y -= points
	if p.y < pageMargin {
		l.newPage()
	}
}

// addTableRow dibuja una fila de 18pt con columnas de ancho uniforme.
// Cabecera: rectángulo relleno y texto blanco. Datos: borde gris de 0.5pt y
// texto negro. El texto de cada celda se trunca a 25 caracteres.
func (l *layout) addTableRow(cells []string, isHeader bool) {
	if len(cells) == 0 {
		return
	}
	l.ensureSpace(tableRowRequired)
	p := l.current()

	colWidth := (pageWidth - 2*pageMargin) / float64(len(cells))
	top := p.y
	bottom := top - tableRowHeight

	if isHeader {
		// Fondo azul oscuro de la fila completa
		p.ops = append(p.ops, fmt.Sprintf("0.17 0.24 0.39 rg %s %s %s %s re f",
			num(pageMargin), num(bottom), num(pageWidth-2*pageMargin), num(tableRowHeight)))
	}

	var text strings.Builder
	for i, cell := range cells {
		x := pageMargin + float64(i)*colWidth
		if !isHeader {
			p.ops = append(p.ops, fmt.Sprintf("0.5 w 0.6 0.6 0.6 RG %s %s %s %s re S",
				num(x), num(bottom), num(colWidth), num(tableRowHeight)))
		}
		color := "0 0 0 rg"
		font := "/F1"
		if isHeader {
			color = "1 1 1 rg"
			font = "/F2"
		}
		content := escapePDFText(truncate(sanitizeText(cell), cellMaxChars))
		text.Reset()
		fmt.Fprintf(&text, "BT %s %s %s Tf %s %s Td (%s) Tj ET",
			color, font, num(9.0), num(x+3), num(bottom+5), content)
		p.ops = append(p.ops, text.String())
	}

	p.y -= tableRowHeight
}

// num formatea coordenadas con dos decimales fijos para que los streams sean
// byte-a-byte reproducibles.
func num(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
