package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummaryResult agregados globales de ventas del período.
type SalesSummaryResult struct {
	SaleCount    int
	UnitsSold    decimal.Decimal
	NetTotal     decimal.Decimal
	TaxTotal     decimal.Decimal
	GrandTotal   decimal.Decimal
	AverageSale  decimal.Decimal // GrandTotal / SaleCount (cero si no hay ventas)
	TotalCOGS    decimal.Decimal // qty * products.cost
	GrossMargin  decimal.Decimal // NetTotal - TotalCOGS
	MarginPct    float64         // GrossMargin / NetTotal * 100
}

// ProductSalesResult ventas acumuladas por producto en el período.
type ProductSalesResult struct {
	SKU         string
	ProductName string
	UnitsSold   decimal.Decimal
	Revenue     decimal.Decimal
	GrossProfit decimal.Decimal
}

// DailySalesResult ventas acumuladas por día calendario.
type DailySalesResult struct {
	Day        time.Time
	SaleCount  int
	GrandTotal decimal.Decimal
}

// InventoryStatusResult posición de inventario de un SKU.
type InventoryStatusResult struct {
	SKU          string
	ProductName  string
	Stock        decimal.Decimal
	ReorderPoint decimal.Decimal
	StockValue   decimal.Decimal // stock * cost
	LowStock     bool
}

// CustomerSalesResult compras acumuladas por cliente en el período.
type CustomerSalesResult struct {
	CustomerName  string
	SaleCount     int
	TotalSpent    decimal.Decimal
	LoyaltyPoints int64
}

// ReportRepository define las consultas de agregación que alimentan los
// reportes exportables. Las implementaciones son read-only; las ventas
// anuladas quedan excluidas de todos los agregados.
type ReportRepository interface {
	GetSalesSummary(ctx context.Context, companyID string, start, end time.Time) (*SalesSummaryResult, error)
	GetTopProducts(ctx context.Context, companyID string, start, end time.Time, limit int) ([]ProductSalesResult, error)
	GetSalesByDay(ctx context.Context, companyID string, start, end time.Time) ([]DailySalesResult, error)
	GetInventoryStatus(ctx context.Context, companyID string) ([]InventoryStatusResult, error)
	GetTopCustomers(ctx context.Context, companyID string, start, end time.Time, limit int) ([]CustomerSalesResult, error)
}
