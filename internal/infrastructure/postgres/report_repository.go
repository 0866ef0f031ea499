package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura que alimentan los reportes
// exportables. Todas excluyen las ventas anuladas.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// GetSalesSummary agrega las ventas completadas del período.
// Margen bruto: net_total - COGS, con COGS = qty × products.cost.
func (r *ReportRepo) GetSalesSummary(
	ctx context.Context,
	companyID string,
	start, end time.Time,
) (*repository.SalesSummaryResult, error) {
	// Los totales de cabecera se suman una vez por venta; unidades y COGS
	// salen de las líneas en una segunda consulta para no duplicarlos.
	const headerQuery = `
	SELECT
	    COUNT(*)                       AS sale_count,
	    COALESCE(SUM(net_total), 0)    AS net_total,
	    COALESCE(SUM(tax_total), 0)    AS tax_total,
	    COALESCE(SUM(grand_total), 0)  AS grand_total
	FROM sales
	WHERE company_id = $1
	  AND date BETWEEN $2 AND $3
	  AND status = 'COMPLETED'`

	const lineQuery = `
	SELECT
	    COALESCE(SUM(d.quantity), 0)          AS units_sold,
	    COALESCE(SUM(d.quantity * p.cost), 0) AS total_cogs
	FROM sales s
	JOIN sale_items d ON d.sale_id = s.id
	JOIN products   p ON p.id      = d.product_id
	WHERE s.company_id = $1
	  AND s.date BETWEEN $2 AND $3
	  AND s.status = 'COMPLETED'`

	var out repository.SalesSummaryResult
	err := r.pool.QueryRow(ctx, headerQuery, companyID, start, end).Scan(
		&out.SaleCount, &out.NetTotal, &out.TaxTotal, &out.GrandTotal,
	)
	if err != nil {
		return nil, fmt.Errorf("reports.GetSalesSummary: %w", err)
	}
	err = r.pool.QueryRow(ctx, lineQuery, companyID, start, end).Scan(
		&out.UnitsSold, &out.TotalCOGS,
	)
	if err != nil {
		return nil, fmt.Errorf("reports.GetSalesSummary: %w", err)
	}

	if out.SaleCount > 0 {
		out.AverageSale = out.GrandTotal.Div(decimal.NewFromInt(int64(out.SaleCount))).Round(2)
	}
	out.GrossMargin = out.NetTotal.Sub(out.TotalCOGS)
	if !out.NetTotal.IsZero() {
		pct, _ := out.GrossMargin.Div(out.NetTotal).Mul(decimal.NewFromInt(100)).Round(2).Float64()
		out.MarginPct = pct
	}
	return &out, nil
}

// GetTopProducts agrupa unidades, ingresos y utilidad bruta por SKU,
// ordenados por ingresos descendentes.
func (r *ReportRepo) GetTopProducts(
	ctx context.Context,
	companyID string,
	start, end time.Time,
	limit int,
) ([]repository.ProductSalesResult, error) {
	const query = `
	SELECT
	    p.sku                                      AS sku,
	    d.product_name                             AS product_name,
	    SUM(d.quantity)                            AS units_sold,
	    SUM(d.subtotal)                            AS revenue,
	    SUM(d.subtotal - d.quantity * p.cost)      AS gross_profit
	FROM sales s
	JOIN sale_items d ON d.sale_id = s.id
	JOIN products   p ON p.id      = d.product_id
	WHERE s.company_id = $1
	  AND s.date BETWEEN $2 AND $3
	  AND s.status = 'COMPLETED'
	GROUP BY p.sku, d.product_name
	ORDER BY revenue DESC
	LIMIT $4`

	rows, err := r.pool.Query(ctx, query, companyID, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.GetTopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductSalesResult
	for rows.Next() {
		var row repository.ProductSalesResult
		if err := rows.Scan(&row.SKU, &row.ProductName, &row.UnitsSold, &row.Revenue, &row.GrossProfit); err != nil {
			return nil, fmt.Errorf("reports.GetTopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetSalesByDay agrupa ventas por día calendario, ascendente.
func (r *ReportRepo) GetSalesByDay(
	ctx context.Context,
	companyID string,
	start, end time.Time,
) ([]repository.DailySalesResult, error) {
	const query = `
	SELECT
	    date_trunc('day', s.date)::date AS day,
	    COUNT(*)                        AS sale_count,
	    SUM(s.grand_total)              AS grand_total
	FROM sales s
	WHERE s.company_id = $1
	  AND s.date BETWEEN $2 AND $3
	  AND s.status = 'COMPLETED'
	GROUP BY day
	ORDER BY day`

	rows, err := r.pool.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("reports.GetSalesByDay: %w", err)
	}
	defer rows.Close()

	var results []repository.DailySalesResult
	for rows.Next() {
		var row repository.DailySalesResult
		if err := rows.Scan(&row.Day, &row.SaleCount, &row.GrandTotal); err != nil {
			return nil, fmt.Errorf("reports.GetSalesByDay scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetInventoryStatus retorna la posición de inventario de todos los SKU
// activos de la empresa, valorizada al costo.
func (r *ReportRepo) GetInventoryStatus(
	ctx context.Context,
	companyID string,
) ([]repository.InventoryStatusResult, error) {
	const query = `
	SELECT
	    sku,
	    name,
	    stock,
	    reorder_point,
	    stock * cost           AS stock_value,
	    stock <= reorder_point AS low_stock
	FROM products
	WHERE company_id = $1
	ORDER BY name`

	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("reports.GetInventoryStatus: %w", err)
	}
	defer rows.Close()

	var results []repository.InventoryStatusResult
	for rows.Next() {
		var row repository.InventoryStatusResult
		if err := rows.Scan(&row.SKU, &row.ProductName, &row.Stock, &row.ReorderPoint, &row.StockValue, &row.LowStock); err != nil {
			return nil, fmt.Errorf("reports.GetInventoryStatus scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetTopCustomers agrupa compras por cliente, ordenadas por gasto total.
// Las ventas de mostrador sin cliente no participan.
func (r *ReportRepo) GetTopCustomers(
	ctx context.Context,
	companyID string,
	start, end time.Time,
	limit int,
) ([]repository.CustomerSalesResult, error) {
	const query = `
	SELECT
	    c.name             AS customer_name,
	    COUNT(s.id)        AS sale_count,
	    SUM(s.grand_total) AS total_spent,
	    c.loyalty_points   AS loyalty_points
	FROM sales s
	JOIN customers c ON c.id = s.customer_id
	WHERE s.company_id = $1
	  AND s.date BETWEEN $2 AND $3
	  AND s.status = 'COMPLETED'
	GROUP BY c.id, c.name, c.loyalty_points
	ORDER BY total_spent DESC
	LIMIT $4`

	rows, err := r.pool.Query(ctx, query, companyID, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.GetTopCustomers: %w", err)
	}
	defer rows.Close()

	var results []repository.CustomerSalesResult
	for rows.Next() {
		var row repository.CustomerSalesResult
		if err := rows.Scan(&row.CustomerName, &row.SaleCount, &row.TotalSpent, &row.LoyaltyPoints); err != nil {
			return nil, fmt.Errorf("reports.GetTopCustomers scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
