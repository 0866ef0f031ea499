package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU vendible. Stock se descuenta al
// registrar ventas; Cost alimenta el cálculo de margen en los reportes.
type Product struct {
	ID           string
	CompanyID    string
	SKU          string // código único por empresa
	Name         string
	Description  string
	Price        decimal.Decimal // precio de venta
	Cost         decimal.Decimal // costo unitario
	TaxRate      decimal.Decimal // IVA: 0, 5 o 19 (%)
	Stock        decimal.Decimal
	ReorderPoint decimal.Decimal // umbral de stock bajo para el reporte de inventario
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
