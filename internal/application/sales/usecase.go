// Package sales registra ventas de mostrador: descuento de stock, totales
// con impuestos y acumulación de puntos de fidelidad, todo en una
// transacción.
package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// SaleUseCase casos de uso de ventas.
type SaleUseCase struct {
	saleRepo repository.SaleRepository
	txRunner TxRunner
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(saleRepo repository.SaleRepository, txRunner TxRunner) *SaleUseCase {
	return &SaleUseCase{saleRepo: saleRepo, txRunner: txRunner}
}

// Create registra una venta: congela nombre y precio de cada producto,
// descuenta stock, asigna el consecutivo y acumula un punto de fidelidad
// por cada unidad monetaria completa. Todo o nada.
func (uc *SaleUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.SaleResponse
	err := uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
	) error {
		now := time.Now()
		saleID := uuid.New().String()

		netTotal := decimal.Zero
		taxTotal := decimal.Zero
		items := make([]*entity.SaleItem, 0, len(in.Items))
		for _, line := range in.Items {
			if !line.Quantity.IsPositive() {
				return domain.ErrInvalidInput
			}
			product, err := productRepo.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil || product.CompanyID != companyID {
				return domain.ErrNotFound
			}
			if err := productRepo.AdjustStock(product.ID, line.Quantity.Neg()); err != nil {
				return err
			}
			subtotal := line.Quantity.Mul(product.Price).Round(2)
			netTotal = netTotal.Add(subtotal)
			taxTotal = taxTotal.Add(subtotal.Mul(product.TaxRate).Div(hundred).Round(2))
			items = append(items, &entity.SaleItem{
				ID:          uuid.New().String(),
				SaleID:      saleID,
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				UnitPrice:   product.Price,
				TaxRate:     product.TaxRate,
				Subtotal:    subtotal,
			})
		}
		grandTotal := netTotal.Add(taxTotal)

		number, err := saleRepo.NextNumber(companyID)
		if err != nil {
			return err
		}
		sale := &entity.Sale{
			ID:            saleID,
			CompanyID:     companyID,
			CustomerID:    in.CustomerID,
			UserID:        userID,
			Number:        number,
			Date:          now,
			PaymentMethod: in.PaymentMethod,
			Status:        entity.SaleStatusCompleted,
			NetTotal:      netTotal,
			TaxTotal:      taxTotal,
			GrandTotal:    grandTotal,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := saleRepo.Create(sale, items); err != nil {
			return err
		}

		if in.CustomerID != "" {
			customer, err := customerRepo.GetByID(in.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil || customer.CompanyID != companyID {
				return domain.ErrNotFound
			}
			if points := grandTotal.IntPart(); points > 0 {
				if err := customerRepo.AddLoyaltyPoints(customer.ID, points); err != nil {
					return err
				}
			}
		}

		out = toSaleResponse(sale, items)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID obtiene una venta con sus líneas.
func (uc *SaleUseCase) GetByID(id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}
	items, err := uc.saleRepo.GetItemsBySaleID(id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, items), nil
}

// List lista ventas de la empresa (solo cabeceras).
func (uc *SaleUseCase) List(companyID string, limit, offset int) (*dto.SaleListResponse, error) {
	list, err := uc.saleRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s, nil))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Void anula una venta completada. No repone stock ni retira puntos.
func (uc *SaleUseCase) Void(id, companyID string) error {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if sale == nil || sale.CompanyID != companyID {
		return domain.ErrNotFound
	}
	if sale.Status != entity.SaleStatusCompleted {
		return domain.ErrConflict
	}
	return uc.saleRepo.Void(id)
}

func toSaleResponse(s *entity.Sale, items []*entity.SaleItem) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            s.ID,
		CompanyID:     s.CompanyID,
		CustomerID:    s.CustomerID,
		UserID:        s.UserID,
		Number:        s.Number,
		Date:          s.Date,
		PaymentMethod: s.PaymentMethod,
		Status:        s.Status,
		NetTotal:      s.NetTotal,
		TaxTotal:      s.TaxTotal,
		GrandTotal:    s.GrandTotal,
		CreatedAt:     s.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			Subtotal:    it.Subtotal,
		})
	}
	return resp
}
