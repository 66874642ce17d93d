package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartEntity "pos/src/cart/domain/entity"
	"pos/src/checkout/domain/entity"
	"pos/src/checkout/domain/port"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fixture struct {
	saleRepo    *mockSaleRepository
	stockSvc    *mockStockService
	customerSvc *mockCustomerService
	notifier    *mockViewNotifier
	uc          *CheckoutUseCase
}

func newFixture() *fixture {
	f := &fixture{
		saleRepo:    &mockSaleRepository{receiptNumber: "REC-000042"},
		stockSvc:    &mockStockService{},
		customerSvc: &mockCustomerService{},
		notifier:    &mockViewNotifier{},
	}
	f.uc = NewCheckoutUseCase(f.saleRepo, f.stockSvc, f.customerSvc, f.notifier)
	return f
}

// Carrito estándar: 1 línea {unit 100, qty 2, 10% desc}, impuesto 17% → total 210.6
func standardCart(t *testing.T) (*cartEntity.Cart, cartEntity.Product) {
	t.Helper()
	cart := cartEntity.NewCart(dec("17"))
	product := cartEntity.Product{
		ID:        uuid.New(),
		SKU:       "SKU-100",
		Name:      "Arroz 1kg",
		UnitPrice: dec("100"),
	}
	cart.AddLine(product, 2)
	_, err := cart.SetLineDiscount(product.ID, dec("10"), cartEntity.DiscountPercent)
	require.NoError(t, err)
	return cart, product
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	f := newFixture()
	cart := cartEntity.NewCart(dec("17"))

	result, err := f.uc.Execute(context.Background(), cart, "cashier-1")

	assert.ErrorIs(t, err, entity.ErrEmptyCart)
	assert.Nil(t, result)
	assert.Zero(t, f.saleRepo.nextReceiptCalls)
}

func TestCheckoutRejectsNilCart(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), nil, "cashier-1")

	assert.ErrorIs(t, err, entity.ErrEmptyCart)
}

func TestCheckoutRejectsDeferredWithoutCustomer(t *testing.T) {
	f := newFixture()
	cart, _ := standardCart(t)
	require.NoError(t, cart.SetPaymentMethod(cartEntity.PaymentDeferred))

	result, err := f.uc.Execute(context.Background(), cart, "cashier-1")

	assert.ErrorIs(t, err, entity.ErrCustomerRequired)
	assert.Nil(t, result)
	assert.Zero(t, f.saleRepo.nextReceiptCalls)
}

func TestCheckoutRejectsMissingCashier(t *testing.T) {
	f := newFixture()
	cart, _ := standardCart(t)

	_, err := f.uc.Execute(context.Background(), cart, "")

	assert.ErrorIs(t, err, entity.ErrCashierRequired)
	assert.Nil(t, f.saleRepo.createdSale)
}

func TestCheckoutCashHappyPath(t *testing.T) {
	f := newFixture()
	cart, product := standardCart(t)
	customerID := uuid.New()
	cart.SetCustomer(&customerID)

	result, err := f.uc.Execute(context.Background(), cart, "cashier-1")

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Degraded())
	assert.Empty(t, result.SoftFailures)

	sale := result.Sale
	require.NotNil(t, sale)
	assert.Equal(t, "REC-000042", sale.ReceiptNumber)
	assert.True(t, strings.HasPrefix(sale.InvoiceNumber, "INV-"))
	assert.Equal(t, entity.PaymentStatusSettled, sale.PaymentStatus)
	assert.True(t, dec("200").Equal(sale.Subtotal))
	assert.True(t, dec("20").Equal(sale.DiscountAmount))
	assert.True(t, dec("30.6").Equal(sale.TaxAmount))
	assert.True(t, dec("210.6").Equal(sale.TotalAmount))

	// Header e items persistidos, en llamadas separadas
	require.NotNil(t, f.saleRepo.createdSale)
	assert.Equal(t, sale.ID, f.saleRepo.itemsSaleID)
	require.Len(t, f.saleRepo.createdItems, 1)
	assert.Equal(t, 2, f.saleRepo.createdItems[0].Quantity)
	assert.True(t, dec("180").Equal(f.saleRepo.createdItems[0].LineTotal))

	// Un ajuste de stock y un movimiento por línea
	require.Len(t, f.stockSvc.adjustments, 1)
	assert.Equal(t, product.ID, f.stockSvc.adjustments[0].productID)
	assert.Equal(t, -2, f.stockSvc.adjustments[0].delta)
	require.Len(t, f.stockSvc.movements, 1)
	assert.Equal(t, sale.InvoiceNumber, f.stockSvc.movements[0].reason)

	// Cash: acumula puntos, no crea obligación
	assert.Empty(t, f.customerSvc.obligations)
	require.Len(t, f.customerSvc.accruals, 1)
	assert.Equal(t, customerID, f.customerSvc.accruals[0].customerID)
	assert.True(t, dec("210.6").Equal(f.customerSvc.accruals[0].amount))

	assert.ElementsMatch(t, []port.View{
		port.ViewSales, port.ViewStock, port.ViewCustomers, port.ViewSummaries,
	}, f.notifier.invalidated)
}

func TestCheckoutCashWithoutCustomerSkipsLoyalty(t *testing.T) {
	f := newFixture()
	cart, _ := standardCart(t)

	result, err := f.uc.Execute(context.Background(), cart, "cashier-1")

	require.NoError(t, err)
	assert.Empty(t, result.SoftFailures)
	assert.Empty(t, f.customerSvc.accruals)
	assert.Empty(t, f.customerSvc.obligations)
}

func TestCheckoutDeferredCreatesObligation(t *testing.T) {
	f := newFixture()
	cart, _ := standardCart(t)
	customerID := uuid.New()
	cart.SetCustomer(&customerID)
	require.NoError(t, cart.SetPaymentMethod(cartEntity.PaymentDeferred))

	result, err := f.uc.Execute(context.Background(), cart, "cashier-1")

	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, result.Sale.PaymentStatus)

	require.Len(t, f.customerSvc.obligations, 1)
	assert.Equal(t, customerID, f.customerSvc.obligations[0].customerID)
	assert.Equal(t, result.Sale.ID, f.customerSvc.obligations[0].saleID)
	assert.True(t, dec("210.6").Equal(f.customerSvc.obligations[0].amount))

	// Deferred no acumula puntos
	assert.Empty(t, f.customerSvc.accruals)
}

func TestCheckoutSucceedsWhenStockFails(t *testing.T) {
	f := newFixture()
	f.stockSvc.adjustErr = errors.New("stock service unavailable")
	f.stockSvc.movementErr = errors.New("stock service unavailable")
	cart, _ := standardCart(t)
	customerID := uuid.New()
	cart.SetCustomer(&customerID)

	result, err := f.uc.Execute(context.Background(), cart, "cashier-1")

	require.NoError(t, err)
	require.NotNil(t, result.Sale)
	assert.True(t, result.Degraded())

	// Un soft-fail por ajuste y otro por movimiento de la línea
	require.Len(t, result.SoftFailures, 2)
	assert.Equal(t, "stock_adjust:SKU-100", result.SoftFailures[0].Step)
	assert.Equal(t, "stock_movement:SKU-100", result.SoftFailures[1].Step)

	// Los pasos posteriores igual corren
	assert.Len(t, f.customerSvc.accruals, 1)
	assert.NotEmpty(t, f.notifier.invalidated)
}

func TestCheckoutSucceedsWhenLoyaltyFails(t *testing.T) {
	f := newFixture()
	f.customerSvc.accrualErr = errors.New("customer service timeout")
	cart, _ := standardCart(t)
	customerID := uuid.New()
	cart.SetCustomer(&customerID)

	result, err := f.uc.Execute(context.Background(), cart, "cashier-1")

	require.NoError(t, err)
	require.Len(t, result.SoftFailures, 1)
	assert.Equal(t, "loyalty_accrual", result.SoftFailures[0].Step)
	assert.ErrorContains(t, result.SoftFailures[0].Err, "customer service timeout")
}

func TestCheckoutAbortsWhenReceiptNumberFails(t *testing.T) {
	f := newFixture()
	f.saleRepo.nextReceiptErr = errors.New("sequence unavailable")
	cart, _ := standardCart(t)

	result, err := f.uc.Execute(context.Background(), cart, "cashier-1")

	require.Error(t, err)
	assert.ErrorContains(t, err, "generate_identifiers")
	assert.Nil(t, result)

	// Nada se escribió ni se ejecutó después del aborto
	assert.Nil(t, f.saleRepo.createdSale)
	assert.Empty(t, f.saleRepo.createdItems)
	assert.Empty(t, f.stockSvc.adjustments)
	assert.Empty(t, f.notifier.invalidated)
}

func TestCheckoutAbortsWhenHeaderFails(t *testing.T) {
	f := newFixture()
	f.saleRepo.createSaleErr = errors.New("connection refused")
	cart, _ := standardCart(t)

	result, err := f.uc.Execute(context.Background(), cart, "cashier-1")

	require.Error(t, err)
	assert.ErrorContains(t, err, "create_sale_header")
	assert.Nil(t, result)
	assert.Empty(t, f.saleRepo.createdItems)
	assert.Empty(t, f.stockSvc.adjustments)
}

func TestCheckoutAbortsWhenItemsFail(t *testing.T) {
	f := newFixture()
	f.saleRepo.createItemsErr = errors.New("deadlock detected")
	cart, _ := standardCart(t)

	result, err := f.uc.Execute(context.Background(), cart, "cashier-1")

	require.Error(t, err)
	assert.ErrorContains(t, err, "create_sale_items")
	assert.Nil(t, result)

	// El header ya quedó persistido: no hay rollback compensatorio
	assert.NotNil(t, f.saleRepo.createdSale)
	assert.Empty(t, f.stockSvc.adjustments)
	assert.Empty(t, f.stockSvc.movements)
	assert.Empty(t, f.notifier.invalidated)
}

func TestCheckoutPerLineStepsFollowCartOrder(t *testing.T) {
	f := newFixture()
	cart := cartEntity.NewCart(dec("0"))
	p1 := cartEntity.Product{ID: uuid.New(), SKU: "SKU-A", Name: "A", UnitPrice: dec("10")}
	p2 := cartEntity.Product{ID: uuid.New(), SKU: "SKU-B", Name: "B", UnitPrice: dec("20")}
	cart.AddLine(p1, 1)
	cart.AddLine(p2, 3)

	_, err := f.uc.Execute(context.Background(), cart, "cashier-1")

	require.NoError(t, err)
	require.Len(t, f.stockSvc.adjustments, 2)
	assert.Equal(t, p1.ID, f.stockSvc.adjustments[0].productID)
	assert.Equal(t, -1, f.stockSvc.adjustments[0].delta)
	assert.Equal(t, p2.ID, f.stockSvc.adjustments[1].productID)
	assert.Equal(t, -3, f.stockSvc.adjustments[1].delta)
}
