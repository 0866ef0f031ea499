package entity

import "time"

// Customer representa un cliente del punto de venta. LoyaltyPoints acumula
// un punto por cada unidad monetaria completa de compra.
type Customer struct {
	ID            string
	CompanyID     string
	Name          string
	TaxID         string // NIT o Cédula
	Email         string
	Phone         string
	LoyaltyPoints int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
