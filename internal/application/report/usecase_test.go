package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	domreport "github.com/jhoicas/pos-api/internal/domain/report"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// ── Fakes ────────────────────────────────────────────────────────────────

type fakeReportRepo struct {
	summary   *repository.SalesSummaryResult
	products  []repository.ProductSalesResult
	daily     []repository.DailySalesResult
	inventory []repository.InventoryStatusResult
	customers []repository.CustomerSalesResult
}

func (f *fakeReportRepo) GetSalesSummary(_ context.Context, _ string, _, _ time.Time) (*repository.SalesSummaryResult, error) {
	return f.summary, nil
}

func (f *fakeReportRepo) GetTopProducts(_ context.Context, _ string, _, _ time.Time, _ int) ([]repository.ProductSalesResult, error) {
	return f.products, nil
}

func (f *fakeReportRepo) GetSalesByDay(_ context.Context, _ string, _, _ time.Time) ([]repository.DailySalesResult, error) {
	return f.daily, nil
}

func (f *fakeReportRepo) GetInventoryStatus(_ context.Context, _ string) ([]repository.InventoryStatusResult, error) {
	return f.inventory, nil
}

func (f *fakeReportRepo) GetTopCustomers(_ context.Context, _ string, _, _ time.Time, _ int) ([]repository.CustomerSalesResult, error) {
	return f.customers, nil
}

type fakeCompanyRepo struct {
	company *entity.Company
}

func (f *fakeCompanyRepo) Create(*entity.Company) error { return nil }
func (f *fakeCompanyRepo) GetByID(string) (*entity.Company, error) {
	return f.company, nil
}
func (f *fakeCompanyRepo) GetByTaxID(string) (*entity.Company, error) { return nil, nil }
func (f *fakeCompanyRepo) Update(*entity.Company) error               { return nil }
func (f *fakeCompanyRepo) List(int, int) ([]*entity.Company, error)   { return nil, nil }

// fakeExporter captura lo que el caso de uso armó sin serializar de verdad.
type fakeExporter struct {
	lastTitle    string
	lastBusiness string
	lastSheet    string
	lastData     *domreport.Data
	lastPeriod   domreport.DateRange
}

func (f *fakeExporter) GeneratePDF(title string, data *domreport.Data, businessName string, period domreport.DateRange) ([]byte, error) {
	f.lastTitle = title
	f.lastData = data
	f.lastBusiness = businessName
	f.lastPeriod = period
	return []byte("%PDF-1.4"), nil
}

func (f *fakeExporter) GenerateXLSX(data *domreport.Data, sheetName string) ([]byte, error) {
	f.lastSheet = sheetName
	f.lastData = data
	return []byte("PK"), nil
}

// ── Tests ────────────────────────────────────────────────────────────────

func newSalesFixture() *fakeReportRepo {
	return &fakeReportRepo{
		summary: &repository.SalesSummaryResult{
			SaleCount:   12,
			UnitsSold:   decimal.NewFromInt(40),
			NetTotal:    decimal.NewFromInt(1000),
			TaxTotal:    decimal.NewFromInt(190),
			GrandTotal:  decimal.NewFromInt(1190),
			AverageSale: decimal.RequireFromString("99.17"),
			TotalCOGS:   decimal.NewFromInt(600),
			GrossMargin: decimal.NewFromInt(400),
			MarginPct:   40,
		},
		products: []repository.ProductSalesResult{
			{SKU: "CAFE-001", ProductName: "Cafe Molido 500g", UnitsSold: decimal.NewFromInt(25), Revenue: decimal.NewFromInt(625), GrossProfit: decimal.NewFromInt(250)},
		},
		daily: []repository.DailySalesResult{
			{Day: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), SaleCount: 4, GrandTotal: decimal.NewFromInt(400)},
		},
	}
}

func TestExport_VentasPDF(t *testing.T) {
	exporter := &fakeExporter{}
	uc := NewReportUseCase(newSalesFixture(), &fakeCompanyRepo{company: &entity.Company{ID: "c1", Name: "Tienda Don Pedro"}}, exporter)

	res, err := uc.Export(context.Background(), "c1", dto.ExportReportRequest{
		Type: TypeSales, Format: "pdf", From: "2026-01-01", To: "2026-01-31",
	})
	require.NoError(t, err, "la exportación debe completar sin error")
	require.NotNil(t, res)

	assert.Equal(t, MIMEPDF, res.MIME)
	assert.Equal(t, "reporte-sales-20260101-20260131.pdf", res.Filename)
	assert.Equal(t, "Reporte de Ventas", exporter.lastTitle)
	assert.Equal(t, "Tienda Don Pedro", exporter.lastBusiness, "el nombre del negocio encabeza el PDF")

	require.NotNil(t, exporter.lastData)
	require.Len(t, exporter.lastData.Summary, 9, "el resumen de ventas tiene 9 indicadores")
	assert.Equal(t, "Ventas Registradas", exporter.lastData.Summary[0].Label)
	assert.Equal(t, domreport.Percent(40), exporter.lastData.Summary[8].Value, "el margen se marca como porcentaje")

	require.Len(t, exporter.lastData.Sections, 2)
	assert.Equal(t, "Top Productos", exporter.lastData.Sections[0].Name)
	assert.Equal(t, []string{"sku", "product", "unitsSold", "revenue", "grossProfit"}, exporter.lastData.Sections[0].Columns)
	assert.Equal(t, "Ventas por Dia", exporter.lastData.Sections[1].Name)

	// El período llega inclusivo: el 31 cubre hasta fin de día.
	assert.Equal(t, 1, exporter.lastPeriod.Start.Day())
	assert.Equal(t, 23, exporter.lastPeriod.End.Hour())
}

func TestExport_InventarioXLSX(t *testing.T) {
	repo := &fakeReportRepo{
		inventory: []repository.InventoryStatusResult{
			{SKU: "CAFE-001", ProductName: "Cafe Molido 500g", Stock: decimal.NewFromInt(3), ReorderPoint: decimal.NewFromInt(10), StockValue: decimal.NewFromInt(45), LowStock: true},
			{SKU: "PAN-002", ProductName: "Pan Integral", Stock: decimal.NewFromInt(80), ReorderPoint: decimal.NewFromInt(20), StockValue: decimal.NewFromInt(160), LowStock: false},
		},
	}
	exporter := &fakeExporter{}
	uc := NewReportUseCase(repo, &fakeCompanyRepo{company: &entity.Company{ID: "c1", Name: "Tienda"}}, exporter)

	res, err := uc.Export(context.Background(), "c1", dto.ExportReportRequest{Type: TypeInventory, Format: "xlsx"})
	require.NoError(t, err)

	assert.Equal(t, MIMEXLSX, res.MIME)
	assert.Equal(t, "Reporte de Inventario", exporter.lastSheet)

	require.Len(t, exporter.lastData.Sections, 1)
	section := exporter.lastData.Sections[0]
	require.Len(t, section.Records, 2)
	assert.Equal(t, "Si", section.Records[0]["lowStock"], "stock bajo el punto de reorden se marca Si")
	assert.Equal(t, "No", section.Records[1]["lowStock"])

	assert.Equal(t, 2, exporter.lastData.Summary[0].Value, "Referencias cuenta los SKU")
	assert.Equal(t, 1, exporter.lastData.Summary[1].Value, "Stock Bajo cuenta los marcados")
}

func TestExport_ClientesIncluyePuntos(t *testing.T) {
	repo := &fakeReportRepo{
		customers: []repository.CustomerSalesResult{
			{CustomerName: "Maria Lopez", SaleCount: 5, TotalSpent: decimal.NewFromInt(500), LoyaltyPoints: 500},
		},
	}
	exporter := &fakeExporter{}
	uc := NewReportUseCase(repo, &fakeCompanyRepo{company: &entity.Company{ID: "c1", Name: "Tienda"}}, exporter)

	_, err := uc.Export(context.Background(), "c1", dto.ExportReportRequest{Type: TypeCustomers, Format: "pdf"})
	require.NoError(t, err)

	section := exporter.lastData.Sections[0]
	assert.Equal(t, []string{"customer", "saleCount", "totalSpent", "loyaltyPoints"}, section.Columns)
	assert.Equal(t, int64(500), section.Records[0]["loyaltyPoints"])
}

func TestExport_ValidaTipoYFormato(t *testing.T) {
	exporter := &fakeExporter{}
	uc := NewReportUseCase(&fakeReportRepo{}, &fakeCompanyRepo{company: &entity.Company{ID: "c1"}}, exporter)

	_, err := uc.Export(context.Background(), "c1", dto.ExportReportRequest{Type: "margen", Format: "pdf"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido se rechaza")

	_, err = uc.Export(context.Background(), "c1", dto.ExportReportRequest{Type: TypeInventory, Format: "csv"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "formato desconocido se rechaza")

	_, err = uc.Export(context.Background(), "c1", dto.ExportReportRequest{Type: TypeSales, Format: "pdf", From: "2026-02-01", To: "2026-01-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "rango invertido se rechaza")
}

func TestExport_EmpresaInexistente(t *testing.T) {
	uc := NewReportUseCase(&fakeReportRepo{}, &fakeCompanyRepo{}, &fakeExporter{})

	_, err := uc.Export(context.Background(), "desconocida", dto.ExportReportRequest{Type: TypeSales, Format: "pdf"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
