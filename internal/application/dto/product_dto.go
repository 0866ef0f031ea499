package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU          string          `json:"sku" validate:"required,min=1,max=100"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	Stock        decimal.Decimal `json:"stock"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
}

// UpdateProductRequest entrada para actualizar un producto. Stock no se
// toca por aquí: se descuenta al vender o se ajusta vía AdjustStock.
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	Cost         *decimal.Decimal `json:"cost"`
	TaxRate      *decimal.Decimal `json:"tax_rate"`
	ReorderPoint *decimal.Decimal `json:"reorder_point"`
}

// AdjustStockRequest entrada para un ajuste manual de inventario.
type AdjustStockRequest struct {
	Delta decimal.Decimal `json:"delta" validate:"required"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	CompanyID    string          `json:"company_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	Stock        decimal.Decimal `json:"stock"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
