package dto

import "time"

// CreateCompanyRequest entrada para registrar un negocio.
type CreateCompanyRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	TaxID    string `json:"tax_id" validate:"required,min=5,max=20"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email" validate:"omitempty,email"`
	Currency string `json:"currency" validate:"omitempty,len=3"`
}

// UpdateCompanyRequest entrada para actualizar datos del negocio.
type UpdateCompanyRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Currency *string `json:"currency" validate:"omitempty,len=3"`
	Status   *string `json:"status" validate:"omitempty,oneof=active suspended inactive"`
}

// CompanyResponse salida de un negocio.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompanyListResponse lista paginada de negocios.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
