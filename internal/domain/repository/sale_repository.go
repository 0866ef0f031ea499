package repository

import "github.com/jhoicas/pos-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	Create(sale *entity.Sale, items []*entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Sale, error)
	// NextNumber devuelve el siguiente consecutivo de venta de la empresa.
	NextNumber(companyID string) (string, error)
	// Void marca la venta como anulada; los reportes la excluyen.
	Void(id string) error
}
