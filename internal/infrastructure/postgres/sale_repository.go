package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, company_id, customer_id, user_id, number, date,
	payment_method, status, net_total, tax_total, grand_total, created_at, updated_at`

const saleItemColumns = `id, sale_id, product_id, product_name, quantity, unit_price, tax_rate, subtotal`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera y todas sus líneas. El llamador es
// responsable de envolver en una transacción (ver TxRunner).
func (r *SaleRepo) Create(sale *entity.Sale, items []*entity.SaleItem) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.CompanyID, sale.CustomerID, sale.UserID, sale.Number, sale.Date,
		sale.PaymentMethod, sale.Status, sale.NetTotal, sale.TaxTotal, sale.GrandTotal,
		sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}

	itemQuery := `
		INSERT INTO sale_items (` + saleItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, it := range items {
		_, err := r.q.Exec(context.Background(), itemQuery,
			it.ID, it.SaleID, it.ProductID, it.ProductName,
			it.Quantity, it.UnitPrice, it.TaxRate, it.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale item %s: %w", it.ProductID, err)
		}
	}
	return nil
}

// GetByID obtiene la cabecera de una venta.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `
		SELECT id, company_id, COALESCE(customer_id::text, ''), user_id, number, date,
			payment_method, status, net_total, tax_total, grand_total, created_at, updated_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.CompanyID, &s.CustomerID, &s.UserID, &s.Number, &s.Date,
		&s.PaymentMethod, &s.Status, &s.NetTotal, &s.TaxTotal, &s.GrandTotal,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// GetItemsBySaleID retorna las líneas de la venta en orden de inserción.
func (r *SaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	query := `SELECT ` + saleItemColumns + ` FROM sale_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	var out []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		err := rows.Scan(
			&it.ID, &it.SaleID, &it.ProductID, &it.ProductName,
			&it.Quantity, &it.UnitPrice, &it.TaxRate, &it.Subtotal,
		)
		if err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

// ListByCompany lista ventas de la empresa, más recientes primero.
func (r *SaleRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT id, company_id, COALESCE(customer_id::text, ''), user_id, number, date,
			payment_method, status, net_total, tax_total, grand_total, created_at, updated_at
		FROM sales WHERE company_id = $1
		ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var out []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		err := rows.Scan(
			&s.ID, &s.CompanyID, &s.CustomerID, &s.UserID, &s.Number, &s.Date,
			&s.PaymentMethod, &s.Status, &s.NetTotal, &s.TaxTotal, &s.GrandTotal,
			&s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// NextNumber avanza el consecutivo de la empresa y retorna el número
// formateado. UPSERT atómico: seguro frente a cajas concurrentes.
func (r *SaleRepo) NextNumber(companyID string) (string, error) {
	query := `
		INSERT INTO sale_counters (company_id, last_number)
		VALUES ($1, 1)
		ON CONFLICT (company_id) DO UPDATE SET last_number = sale_counters.last_number + 1
		RETURNING last_number`
	var n int64
	if err := r.q.QueryRow(context.Background(), query, companyID).Scan(&n); err != nil {
		return "", fmt.Errorf("next sale number: %w", err)
	}
	return fmt.Sprintf("POS-%06d", n), nil
}

// Void anula la venta. La anulación es terminal y no repone stock.
func (r *SaleRepo) Void(id string) error {
	query := `
		UPDATE sales SET status = $2, updated_at = now()
		WHERE id = $1 AND status = $3`
	cmd, err := r.q.Exec(context.Background(), query, id, entity.SaleStatusVoided, entity.SaleStatusCompleted)
	if err != nil {
		return fmt.Errorf("void sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
