// Package report arma los reportes exportables del punto de venta y los
// entrega serializados en PDF o XLSX listos para descarga.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/report"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// Tipos de reporte soportados.
const (
	TypeSales     = "sales"
	TypeInventory = "inventory"
	TypeCustomers = "customers"
)

// MIME types de los formatos de exportación.
const (
	MIMEPDF  = "application/pdf"
	MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Cuántas filas entran en las secciones "top" de los reportes.
const topLimit = 20

// ExportResult documento serializado listo para responder al cliente.
type ExportResult struct {
	Content  []byte
	Filename string
	MIME     string
}

// ReportUseCase arma y exporta reportes.
type ReportUseCase struct {
	reportRepo  repository.ReportRepository
	companyRepo repository.CompanyRepository
	exporter    DocumentExporter
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(reportRepo repository.ReportRepository, companyRepo repository.CompanyRepository, exporter DocumentExporter) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo, companyRepo: companyRepo, exporter: exporter}
}

// Export arma el reporte pedido y lo serializa al formato pedido.
// Sin fechas, el período por defecto son los últimos 30 días.
func (uc *ReportUseCase) Export(ctx context.Context, companyID string, in dto.ExportReportRequest) (*ExportResult, error) {
	period, err := parsePeriod(in.From, in.To)
	if err != nil {
		return nil, err
	}

	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	var (
		title string
		data  *report.Data
	)
	switch in.Type {
	case TypeSales:
		title = "Reporte de Ventas"
		data, err = uc.buildSales(ctx, companyID, period)
	case TypeInventory:
		title = "Reporte de Inventario"
		data, err = uc.buildInventory(ctx, companyID)
	case TypeCustomers:
		title = "Reporte de Clientes"
		data, err = uc.buildCustomers(ctx, companyID, period)
	default:
		return nil, domain.ErrInvalidInput
	}
	if err != nil {
		return nil, err
	}

	stamp := fmt.Sprintf("%s-%s", period.Start.Format("20060102"), period.End.Format("20060102"))
	switch in.Format {
	case "pdf":
		content, err := uc.exporter.GeneratePDF(title, data, company.Name, period)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			Content:  content,
			Filename: fmt.Sprintf("reporte-%s-%s.pdf", in.Type, stamp),
			MIME:     MIMEPDF,
		}, nil
	case "xlsx":
		content, err := uc.exporter.GenerateXLSX(data, title)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			Content:  content,
			Filename: fmt.Sprintf("reporte-%s-%s.xlsx", in.Type, stamp),
			MIME:     MIMEXLSX,
		}, nil
	default:
		return nil, domain.ErrInvalidInput
	}
}

// buildSales: resumen de totales y margen, top de productos y ventas por día.
func (uc *ReportUseCase) buildSales(ctx context.Context, companyID string, period report.DateRange) (*report.Data, error) {
	summary, err := uc.reportRepo.GetSalesSummary(ctx, companyID, period.Start, period.End)
	if err != nil {
		return nil, err
	}
	topProducts, err := uc.reportRepo.GetTopProducts(ctx, companyID, period.Start, period.End, topLimit)
	if err != nil {
		return nil, err
	}
	byDay, err := uc.reportRepo.GetSalesByDay(ctx, companyID, period.Start, period.End)
	if err != nil {
		return nil, err
	}

	data := &report.Data{
		Summary: []report.Entry{
			{Label: "Ventas Registradas", Value: summary.SaleCount},
			{Label: "Unidades Vendidas", Value: summary.UnitsSold},
			{Label: "Total Neto", Value: summary.NetTotal},
			{Label: "Total Impuestos", Value: summary.TaxTotal},
			{Label: "Total General", Value: summary.GrandTotal},
			{Label: "Ticket Promedio", Value: summary.AverageSale},
			{Label: "Costo de Ventas", Value: summary.TotalCOGS},
			{Label: "Margen Bruto", Value: summary.GrossMargin},
			{Label: "Margen", Value: report.Percent(summary.MarginPct)},
		},
	}

	products := report.NewSection("Top Productos", []string{"sku", "product", "unitsSold", "revenue", "grossProfit"})
	for _, p := range topProducts {
		products.AddRecord(report.Record{
			"sku":         p.SKU,
			"product":     p.ProductName,
			"unitsSold":   p.UnitsSold,
			"revenue":     p.Revenue,
			"grossProfit": p.GrossProfit,
		})
	}
	data.Sections = append(data.Sections, products)

	daily := report.NewSection("Ventas por Dia", []string{"day", "saleCount", "grandTotal"})
	for _, d := range byDay {
		daily.AddRecord(report.Record{
			"day":        d.Day,
			"saleCount":  d.SaleCount,
			"grandTotal": d.GrandTotal,
		})
	}
	data.Sections = append(data.Sections, daily)

	return data, nil
}

// buildInventory: posición de inventario valorizada al costo, SKU por SKU.
func (uc *ReportUseCase) buildInventory(ctx context.Context, companyID string) (*report.Data, error) {
	rows, err := uc.reportRepo.GetInventoryStatus(ctx, companyID)
	if err != nil {
		return nil, err
	}

	section := report.NewSection("Inventario", []string{"sku", "product", "stock", "reorderPoint", "stockValue", "lowStock"})
	lowCount := 0
	for _, row := range rows {
		lowStock := "No"
		if row.LowStock {
			lowStock = "Si"
			lowCount++
		}
		section.AddRecord(report.Record{
			"sku":          row.SKU,
			"product":      row.ProductName,
			"stock":        row.Stock,
			"reorderPoint": row.ReorderPoint,
			"stockValue":   row.StockValue,
			"lowStock":     lowStock,
		})
	}

	data := &report.Data{
		Summary: []report.Entry{
			{Label: "Referencias", Value: len(rows)},
			{Label: "Stock Bajo", Value: lowCount},
		},
		Sections: []report.Section{section},
	}
	return data, nil
}

// buildCustomers: top de clientes por gasto en el período.
func (uc *ReportUseCase) buildCustomers(ctx context.Context, companyID string, period report.DateRange) (*report.Data, error) {
	rows, err := uc.reportRepo.GetTopCustomers(ctx, companyID, period.Start, period.End, topLimit)
	if err != nil {
		return nil, err
	}

	section := report.NewSection("Top Clientes", []string{"customer", "saleCount", "totalSpent", "loyaltyPoints"})
	for _, row := range rows {
		section.AddRecord(report.Record{
			"customer":      row.CustomerName,
			"saleCount":     row.SaleCount,
			"totalSpent":    row.TotalSpent,
			"loyaltyPoints": row.LoyaltyPoints,
		})
	}

	data := &report.Data{
		Summary: []report.Entry{
			{Label: "Clientes con Compras", Value: len(rows)},
		},
		Sections: []report.Section{section},
	}
	return data, nil
}

// parsePeriod interpreta fechas 2006-01-02; el fin del rango se extiende al
// último instante del día para que BETWEEN lo incluya completo.
func parsePeriod(from, to string) (report.DateRange, error) {
	end := time.Now()
	if to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return report.DateRange{}, domain.ErrInvalidInput
		}
		end = t
	}
	end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, end.Location())

	start := end.AddDate(0, 0, -30)
	if from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return report.DateRange{}, domain.ErrInvalidInput
		}
		start = t
	}
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())

	if end.Before(start) {
		return report.DateRange{}, domain.ErrInvalidInput
	}
	return report.DateRange{Start: start, End: end}, nil
}
