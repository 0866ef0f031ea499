package report

import "github.com/jhoicas/pos-api/internal/domain/report"

// DocumentExporter serializa un reporte armado a un formato binario de
// descarga. La implementación vive en infrastructure/export.
type DocumentExporter interface {
	GeneratePDF(title string, data *report.Data, businessName string, period report.DateRange) ([]byte, error)
	GenerateXLSX(data *report.Data, sheetName string) ([]byte, error)
}
