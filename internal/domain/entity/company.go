package entity

import "time"

// Company representa el negocio/tenant del sistema (multi-tenant). Su nombre
// encabeza los reportes exportados.
type Company struct {
	ID        string
	Name      string
	TaxID     string // NIT o identificación fiscal del negocio
	Address   string
	Phone     string
	Email     string
	Currency  string // código ISO 4217, ej. "COP"
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
