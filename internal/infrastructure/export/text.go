package export

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/pos-api/internal/domain/report"
)

// stripAccents descompone (NFD) y elimina las marcas diacríticas, de modo que
// "Café Montaña" sobreviva como "Cafe Montana" en vez de perder letras.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// sanitizeText deja solo ASCII imprimible (0x20–0x7E). Las fuentes declaradas
// son Helvetica WinAnsi sin embebido, así que lo que no se pueda transliterar
// se descarta en lugar de codificarse.
func sanitizeText(s string) string {
	if t, _, err := transform.String(stripAccents, s); err == nil {
		s = t
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 0x20 && r <= 0x7E {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}

// escapePDFText escapa los delimitadores de string literal PDF.
func escapePDFText(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}

// escapeXML escapa los cinco caracteres reservados de XML.
func escapeXML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}

// truncate corta s a max caracteres (política fija de overflow de celdas:
// sin wrapping).
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// humanizeKey convierte una clave de columna en etiqueta legible insertando
// espacios antes de mayúsculas: "unitsSold" → "Units Sold".
func humanizeKey(k string) string {
	var b strings.Builder
	b.Grow(len(k) + 4)
	for i, r := range k {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// formatValue representación textual de un escalar del reporte (para PDF y
// para celdas inline de XLSX).
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case report.Percent:
		return strconv.FormatFloat(float64(x), 'f', -1, 64) + "%"
	case decimal.Decimal:
		return x.StringFixed(2)
	case time.Time:
		return x.Format("2006-01-02")
	}
	return ""
}

// numericValue devuelve la representación numérica cruda para celdas <v> de
// XLSX. Los porcentajes y fechas no cuentan como numéricos: van como string
// inline para conservar el sufijo/formato.
func numericValue(v any) (string, bool) {
	switch x := v.(type) {
	case int:
		return strconv.Itoa(x), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case decimal.Decimal:
		return x.String(), true
	}
	return "", false
}
