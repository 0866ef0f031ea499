package repository

import "github.com/jhoicas/pos-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByCompanyAndTaxID(companyID, taxID string) (*entity.Customer, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	// AddLoyaltyPoints acumula puntos de fidelidad de forma atómica.
	AddLoyaltyPoints(customerID string, points int64) error
}
