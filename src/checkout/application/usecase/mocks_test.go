package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pos/src/checkout/domain/entity"
	"pos/src/checkout/domain/port"
)

// mockSaleRepository registra cada llamada y permite inyectar fallos por operación
type mockSaleRepository struct {
	receiptNumber    string
	nextReceiptErr   error
	createSaleErr    error
	createItemsErr   error
	nextReceiptCalls int
	createdSale      *entity.Sale
	createdItems     []entity.SaleItem
	itemsSaleID      uuid.UUID
}

func (m *mockSaleRepository) NextReceiptNumber(ctx context.Context) (string, error) {
	m.nextReceiptCalls++
	if m.nextReceiptErr != nil {
		return "", m.nextReceiptErr
	}
	return m.receiptNumber, nil
}

func (m *mockSaleRepository) CreateSale(ctx context.Context, sale *entity.Sale) error {
	if m.createSaleErr != nil {
		return m.createSaleErr
	}
	m.createdSale = sale
	return nil
}

func (m *mockSaleRepository) CreateSaleItems(ctx context.Context, saleID uuid.UUID, items []entity.SaleItem) error {
	if m.createItemsErr != nil {
		return m.createItemsErr
	}
	m.itemsSaleID = saleID
	m.createdItems = items
	return nil
}

func (m *mockSaleRepository) FindByID(ctx context.Context, saleID uuid.UUID) (*entity.Sale, error) {
	if m.createdSale != nil && m.createdSale.ID == saleID {
		return m.createdSale, nil
	}
	return nil, entity.ErrSaleNotFound
}

func (m *mockSaleRepository) List(ctx context.Context) ([]*entity.Sale, error) {
	if m.createdSale == nil {
		return nil, nil
	}
	return []*entity.Sale{m.createdSale}, nil
}

type stockCall struct {
	productID uuid.UUID
	delta     int
	reason    string
}

// mockStockService registra ajustes y movimientos; los fallos se inyectan globales
type mockStockService struct {
	adjustErr   error
	movementErr error
	adjustments []stockCall
	movements   []stockCall
}

func (m *mockStockService) AdjustStock(ctx context.Context, productID uuid.UUID, delta int) error {
	if m.adjustErr != nil {
		return m.adjustErr
	}
	m.adjustments = append(m.adjustments, stockCall{productID: productID, delta: delta})
	return nil
}

func (m *mockStockService) RecordMovement(ctx context.Context, productID uuid.UUID, delta int, reason string) error {
	if m.movementErr != nil {
		return m.movementErr
	}
	m.movements = append(m.movements, stockCall{productID: productID, delta: delta, reason: reason})
	return nil
}

type obligationCall struct {
	customerID uuid.UUID
	saleID     uuid.UUID
	amount     decimal.Decimal
}

type accrualCall struct {
	customerID uuid.UUID
	amount     decimal.Decimal
}

type mockCustomerService struct {
	obligationErr error
	accrualErr    error
	obligations   []obligationCall
	accruals      []accrualCall
}

func (m *mockCustomerService) CreateDeferredObligation(ctx context.Context, customerID, saleID uuid.UUID, amount decimal.Decimal) error {
	if m.obligationErr != nil {
		return m.obligationErr
	}
	m.obligations = append(m.obligations, obligationCall{customerID: customerID, saleID: saleID, amount: amount})
	return nil
}

func (m *mockCustomerService) AccrueLoyalty(ctx context.Context, customerID uuid.UUID, amount decimal.Decimal) error {
	if m.accrualErr != nil {
		return m.accrualErr
	}
	m.accruals = append(m.accruals, accrualCall{customerID: customerID, amount: amount})
	return nil
}

// mockViewNotifier registra las vistas invalidadas
type mockViewNotifier struct {
	invalidated []port.View
}

func (m *mockViewNotifier) Invalidate(views ...port.View) {
	m.invalidated = append(m.invalidated, views...)
}

