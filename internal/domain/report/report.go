// Package report define el modelo de datos de los reportes exportables
// (PDF / XLSX). Es el contrato entre la capa de analítica, que calcula los
// agregados, y el codec de exportación, que los serializa a binario.
//
// El paquete no conoce órdenes, pagos ni productos: solo un resumen
// (pares etiqueta→valor) y cero o más secciones tabulares con registros
// uniformes.
package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Percent marca un valor numérico que debe renderizarse con sufijo "%".
type Percent float64

// DateRange período que cubre el reporte (inclusive en ambos extremos).
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Entry un par etiqueta→valor del bloque de resumen. El orden de los entries
// es el orden de inserción del caso de uso que armó el reporte.
type Entry struct {
	Label string
	Value any
}

// Record un registro de una sección tabular: columna→valor.
// Las claves válidas son exactamente las Columns de la sección.
type Record map[string]any

// Section una tabla con nombre. Columns fija el orden de las columnas
// (las claves del primer registro definen la cabecera); cada Record debe
// exponer exactamente ese conjunto de claves.
type Section struct {
	Name    string
	Columns []string
	Records []Record
}

// Data es la entrada de ambos serializadores. Inmutable una vez entregada
// al codec; el caso de uso la construye completa antes de exportar.
type Data struct {
	Summary  []Entry
	Sections []Section
}

// NewSection construye una sección derivando Columns del primer registro
// en el orden dado por keys. Conveniencia para los casos de uso.
func NewSection(name string, keys []string) Section {
	return Section{Name: name, Columns: keys}
}

// AddRecord agrega un registro a la sección.
func (s *Section) AddRecord(rec Record) {
	s.Records = append(s.Records, rec)
}

// ── Validación ────────────────────────────────────────────────────────────────

// Validate verifica el contrato del codec: valores escalares soportados y
// registros uniformes por sección. Un reporte inválido es una violación de
// contrato del caller; el codec falla rápido en vez de emitir un documento
// corrupto.
func (d *Data) Validate() error {
	for _, e := range d.Summary {
		if !supportedValue(e.Value) {
			return fmt.Errorf("report: valor de resumen %q de tipo no soportado %T", e.Label, e.Value)
		}
	}
	for _, sec := range d.Sections {
		if len(sec.Columns) == 0 && len(sec.Records) > 0 {
			return fmt.Errorf("report: sección %q sin columnas declaradas", sec.Name)
		}
		cols := make(map[string]struct{}, len(sec.Columns))
		for _, c := range sec.Columns {
			cols[c] = struct{}{}
		}
		for i, rec := range sec.Records {
			if len(rec) != len(sec.Columns) {
				return fmt.Errorf("report: sección %q registro %d tiene %d claves, se esperaban %d",
					sec.Name, i, len(rec), len(sec.Columns))
			}
			for k, v := range rec {
				if _, ok := cols[k]; !ok {
					return fmt.Errorf("report: sección %q registro %d con clave desconocida %q", sec.Name, i, k)
				}
				if !supportedValue(v) {
					return fmt.Errorf("report: sección %q registro %d clave %q de tipo no soportado %T",
						sec.Name, i, k, v)
				}
			}
		}
	}
	return nil
}

// supportedValue: números, strings, porcentajes y fechas. nil se admite y se
// renderiza vacío.
func supportedValue(v any) bool {
	switch v.(type) {
	case nil, string, int, int32, int64, float32, float64, Percent, decimal.Decimal, time.Time:
		return true
	}
	return false
}
