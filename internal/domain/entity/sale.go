package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusCompleted = "COMPLETED"
	SaleStatusVoided    = "VOIDED" // anulada; excluida de todos los reportes
)

// Medios de pago aceptados en caja.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
)

// Sale representa la cabecera de una venta de mostrador.
type Sale struct {
	ID            string
	CompanyID     string
	CustomerID    string // vacío = venta de mostrador sin cliente registrado
	UserID        string // cajero que registró la venta
	Number        string // consecutivo por empresa, ej. "POS-000123"
	Date          time.Time
	PaymentMethod string // cash, card, transfer
	Status        string
	NetTotal      decimal.Decimal
	TaxTotal      decimal.Decimal
	GrandTotal    decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SaleItem una línea de la venta. ProductName se congela al momento de
// vender para que los reportes históricos no cambien si se renombra el SKU.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	Subtotal    decimal.Decimal // Quantity * UnitPrice, sin impuestos
}
