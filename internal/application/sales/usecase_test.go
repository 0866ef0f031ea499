package sales

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// ── Fakes en memoria ─────────────────────────────────────────────────────

type fakeSaleRepo struct {
	sales   []*entity.Sale
	items   []*entity.SaleItem
	counter int64
}

func (f *fakeSaleRepo) Create(sale *entity.Sale, items []*entity.SaleItem) error {
	f.sales = append(f.sales, sale)
	f.items = append(f.items, items...)
	return nil
}

func (f *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	for _, s := range f.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for _, it := range f.items {
		if it.SaleID == saleID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeSaleRepo) ListByCompany(string, int, int) ([]*entity.Sale, error) {
	return f.sales, nil
}

func (f *fakeSaleRepo) NextNumber(string) (string, error) {
	f.counter++
	return "POS-000001", nil
}

func (f *fakeSaleRepo) Void(id string) error {
	for _, s := range f.sales {
		if s.ID == id {
			s.Status = entity.SaleStatusVoided
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) Create(*entity.Product) error { return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return f.products[id], nil
}
func (f *fakeProductRepo) GetByCompanyAndSKU(string, string) (*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) Update(*entity.Product) error { return nil }
func (f *fakeProductRepo) AdjustStock(productID string, delta decimal.Decimal) error {
	p, ok := f.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	next := p.Stock.Add(delta)
	if next.IsNegative() {
		return domain.ErrInsufficientStock
	}
	p.Stock = next
	return nil
}
func (f *fakeProductRepo) ListByCompany(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) Delete(string) error { return nil }

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (f *fakeCustomerRepo) Create(*entity.Customer) error { return nil }
func (f *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return f.customers[id], nil
}
func (f *fakeCustomerRepo) GetByCompanyAndTaxID(string, string) (*entity.Customer, error) {
	return nil, nil
}
func (f *fakeCustomerRepo) ListByCompany(string, int, int) ([]*entity.Customer, error) {
	return nil, nil
}
func (f *fakeCustomerRepo) Update(*entity.Customer) error { return nil }
func (f *fakeCustomerRepo) AddLoyaltyPoints(customerID string, points int64) error {
	c, ok := f.customers[customerID]
	if !ok {
		return domain.ErrNotFound
	}
	c.LoyaltyPoints += points
	return nil
}

// fakeTxRunner ejecuta el callback con los fakes; si falla, descarta los
// cambios clonando el estado previo de productos.
type fakeTxRunner struct {
	saleRepo     *fakeSaleRepo
	productRepo  *fakeProductRepo
	customerRepo *fakeCustomerRepo
	rolledBack   bool
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	repository.SaleRepository,
	repository.ProductRepository,
	repository.CustomerRepository,
) error) error {
	snapshot := make(map[string]entity.Product, len(f.productRepo.products))
	for id, p := range f.productRepo.products {
		snapshot[id] = *p
	}
	if err := fn(f.saleRepo, f.productRepo, f.customerRepo); err != nil {
		for id := range f.productRepo.products {
			prev := snapshot[id]
			f.productRepo.products[id] = &prev
		}
		f.rolledBack = true
		return err
	}
	return nil
}

func newFixture() (*SaleUseCase, *fakeTxRunner) {
	runner := &fakeTxRunner{
		saleRepo: &fakeSaleRepo{},
		productRepo: &fakeProductRepo{products: map[string]*entity.Product{
			"p1": {
				ID: "p1", CompanyID: "c1", SKU: "CAFE-001", Name: "Cafe Molido 500g",
				Price: decimal.NewFromInt(25), Cost: decimal.NewFromInt(15),
				TaxRate: decimal.NewFromInt(19), Stock: decimal.NewFromInt(10),
			},
			"p2": {
				ID: "p2", CompanyID: "c1", SKU: "PAN-002", Name: "Pan Integral",
				Price: decimal.NewFromInt(2), Cost: decimal.NewFromInt(1),
				TaxRate: decimal.Zero, Stock: decimal.NewFromInt(50),
			},
		}},
		customerRepo: &fakeCustomerRepo{customers: map[string]*entity.Customer{
			"cust1": {ID: "cust1", CompanyID: "c1", Name: "Maria Lopez"},
		}},
	}
	return NewSaleUseCase(runner.saleRepo, runner), runner
}

// ── Tests ────────────────────────────────────────────────────────────────

func TestCreate_TotalesYStock(t *testing.T) {
	uc, runner := newFixture()

	res, err := uc.Create(context.Background(), "c1", "u1", dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: decimal.NewFromInt(2)},
			{ProductID: "p2", Quantity: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err, "la venta debe registrarse")
	require.NotNil(t, res)

	// 2×25 + 5×2 = 60 neto; IVA solo sobre el café: 50×19% = 9.50
	assert.True(t, res.NetTotal.Equal(decimal.NewFromInt(60)), "neto esperado 60, fue %s", res.NetTotal)
	assert.True(t, res.TaxTotal.Equal(decimal.RequireFromString("9.5")), "IVA esperado 9.50, fue %s", res.TaxTotal)
	assert.True(t, res.GrandTotal.Equal(decimal.RequireFromString("69.5")))
	assert.Equal(t, "POS-000001", res.Number)
	assert.Equal(t, entity.SaleStatusCompleted, res.Status)

	require.Len(t, res.Items, 2)
	assert.Equal(t, "Cafe Molido 500g", res.Items[0].ProductName, "el nombre queda congelado en la línea")

	assert.True(t, runner.productRepo.products["p1"].Stock.Equal(decimal.NewFromInt(8)), "stock de café descontado")
	assert.True(t, runner.productRepo.products["p2"].Stock.Equal(decimal.NewFromInt(45)), "stock de pan descontado")
}

func TestCreate_AcumulaPuntosDeFidelidad(t *testing.T) {
	uc, runner := newFixture()

	res, err := uc.Create(context.Background(), "c1", "u1", dto.CreateSaleRequest{
		CustomerID:    "cust1",
		PaymentMethod: entity.PaymentCard,
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(2)}},
	})
	require.NoError(t, err)

	// Total 2×25×1.19 = 59.50 → 59 puntos (un punto por unidad completa).
	assert.True(t, res.GrandTotal.Equal(decimal.RequireFromString("59.5")))
	assert.Equal(t, int64(59), runner.customerRepo.customers["cust1"].LoyaltyPoints)
}

func TestCreate_StockInsuficienteRevierteTodo(t *testing.T) {
	uc, runner := newFixture()

	_, err := uc.Create(context.Background(), "c1", "u1", dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items: []dto.SaleItemRequest{
			{ProductID: "p2", Quantity: decimal.NewFromInt(5)},
			{ProductID: "p1", Quantity: decimal.NewFromInt(11)}, // solo hay 10
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, runner.rolledBack, "la transacción debe revertirse")
	assert.Empty(t, runner.saleRepo.sales, "no queda venta registrada")
	assert.True(t, runner.productRepo.products["p2"].Stock.Equal(decimal.NewFromInt(50)), "el stock del pan vuelve a 50")
}

func TestCreate_RechazaCantidadNoPositiva(t *testing.T) {
	uc, _ := newFixture()

	_, err := uc.Create(context.Background(), "c1", "u1", dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: decimal.Zero}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), "c1", "u1", dto.CreateSaleRequest{PaymentMethod: entity.PaymentCash})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "venta sin líneas se rechaza")
}

func TestCreate_ProductoDeOtraEmpresa(t *testing.T) {
	uc, _ := newFixture()

	_, err := uc.Create(context.Background(), "c2", "u1", dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "un producto ajeno no se vende")
}

func TestVoid_SoloVentasCompletadas(t *testing.T) {
	uc, runner := newFixture()

	res, err := uc.Create(context.Background(), "c1", "u1", dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	require.NoError(t, uc.Void(res.ID, "c1"))
	assert.Equal(t, entity.SaleStatusVoided, runner.saleRepo.sales[0].Status)

	// Anular dos veces es conflicto; anular desde otra empresa, not found.
	assert.ErrorIs(t, uc.Void(res.ID, "c1"), domain.ErrConflict)
	assert.ErrorIs(t, uc.Void(res.ID, "c2"), domain.ErrNotFound)
}
