package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest una línea del carrito al registrar la venta.
type SaleItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
}

// CreateSaleRequest entrada para registrar una venta de mostrador.
// CustomerID es opcional; sin cliente no se acumulan puntos.
type CreateSaleRequest struct {
	CustomerID    string            `json:"customer_id" validate:"omitempty,uuid"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=cash card transfer"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SaleItemResponse una línea de la venta.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse salida de una venta con sus líneas.
type SaleResponse struct {
	ID            string             `json:"id"`
	CompanyID     string             `json:"company_id"`
	CustomerID    string             `json:"customer_id,omitempty"`
	UserID        string             `json:"user_id"`
	Number        string             `json:"number"`
	Date          time.Time          `json:"date"`
	PaymentMethod string             `json:"payment_method"`
	Status        string             `json:"status"`
	NetTotal      decimal.Decimal    `json:"net_total"`
	TaxTotal      decimal.Decimal    `json:"tax_total"`
	GrandTotal    decimal.Decimal    `json:"grand_total"`
	Items         []SaleItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// SaleListResponse lista paginada de ventas (solo cabeceras).
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
