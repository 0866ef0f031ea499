package export

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-api/internal/domain/report"
)

func TestSanitizeText_TransliteraAcentos(t *testing.T) {
	assert.Equal(t, "Cafe Montana", sanitizeText("Café Montaña"))
	assert.Equal(t, "Jugo de limon", sanitizeText("Jugo de limón"))
}

func TestSanitizeText_DescartaNoASCII(t *testing.T) {
	// Lo que no se pueda transliterar se elimina, no se codifica
	assert.Equal(t, "Sushi ", sanitizeText("Sushi 寿司"))
	assert.Equal(t, "precio: 100", sanitizeText("precio: €100"))
	assert.Equal(t, "sincontrol", sanitizeText("sin\tcontrol"), "los caracteres de control se descartan")
}

func TestEscapePDFText(t *testing.T) {
	assert.Equal(t, `combo \(grande\)`, escapePDFText("combo (grande)"))
	assert.Equal(t, `a\\b`, escapePDFText(`a\b`))
}

func TestEscapeXML(t *testing.T) {
	assert.Equal(t, "&lt;a&gt; &amp; &quot;b&quot; &apos;c&apos;", escapeXML(`<a> & "b" 'c'`))
}

func TestHumanizeKey(t *testing.T) {
	assert.Equal(t, "Units Sold", humanizeKey("unitsSold"))
	assert.Equal(t, "Product", humanizeKey("product"))
	assert.Equal(t, "Total C O G S", humanizeKey("totalCOGS"))
	assert.Equal(t, "", humanizeKey(""))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "texto", formatValue("texto"))
	assert.Equal(t, "42", formatValue(42))
	assert.Equal(t, "3.5", formatValue(3.5))
	assert.Equal(t, "12.3%", formatValue(report.Percent(12.3)))
	assert.Equal(t, "99.90", formatValue(decimal.NewFromFloat(99.9)), "decimal con dos decimales fijos")
	assert.Equal(t, "2026-01-15", formatValue(time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", formatValue(nil))
}

func TestNumericValue(t *testing.T) {
	v, ok := numericValue(decimal.NewFromFloat(1234.5))
	assert.True(t, ok)
	assert.Equal(t, "1234.5", v)

	_, ok = numericValue(report.Percent(10))
	assert.False(t, ok, "los porcentajes van como string inline para conservar el sufijo")
	_, ok = numericValue("123")
	assert.False(t, ok)
	_, ok = numericValue(time.Now())
	assert.False(t, ok, "las fechas van como string inline")
}
