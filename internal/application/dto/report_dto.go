package dto

// ExportReportRequest parámetros de exportación de un reporte.
// Fechas en formato 2006-01-02; el rango es inclusivo.
type ExportReportRequest struct {
	Type   string `query:"type" validate:"required,oneof=sales inventory customers"`
	Format string `query:"format" validate:"required,oneof=pdf xlsx"`
	From   string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To     string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}
