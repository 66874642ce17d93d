package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func testProduct(sku, price string) Product {
	return Product{
		ID:        uuid.New(),
		SKU:       sku,
		Name:      "Producto " + sku,
		UnitPrice: dec(price),
	}
}

func TestAddLineMergesSameProduct(t *testing.T) {
	cart := NewCart(dec("0"))
	p := testProduct("SKU-1", "100")

	cart.AddLine(p, 2)
	totals := cart.AddLine(p, 3)

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assertDecimal(t, "500", totals.Subtotal)
}

func TestAddLineKeepsExistingDiscountOnMerge(t *testing.T) {
	cart := NewCart(dec("0"))
	p := testProduct("SKU-1", "100")

	cart.AddLine(p, 1)
	_, err := cart.SetLineDiscount(p.ID, dec("50"), DiscountPercent)
	require.NoError(t, err)

	cart.AddLine(p, 1)

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assertDecimal(t, "50", lines[0].Discount.Value)
	assertDecimal(t, "100", cart.Totals().WorkingSubtotal) // 200 gross - 50%
}

func TestAddLineDefaultsQuantityToOne(t *testing.T) {
	cart := NewCart(dec("0"))
	p := testProduct("SKU-1", "100")

	cart.AddLine(p, 0)
	cart.AddLine(testProduct("SKU-2", "50"), -3)

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestRemoveLineAbsentIsNoop(t *testing.T) {
	cart := NewCart(dec("0"))
	cart.AddLine(testProduct("SKU-1", "100"), 1)

	totals := cart.RemoveLine(uuid.New())

	assert.Len(t, cart.Lines(), 1)
	assertDecimal(t, "100", totals.Subtotal)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	cart := NewCart(dec("0"))
	p := testProduct("SKU-1", "100")
	cart.AddLine(p, 2)

	totals := cart.SetQuantity(p.ID, 0)

	assert.True(t, cart.IsEmpty())
	assertDecimal(t, "0", totals.Total)
}

func TestSetLineDiscountUnknownProduct(t *testing.T) {
	cart := NewCart(dec("0"))

	_, err := cart.SetLineDiscount(uuid.New(), dec("10"), DiscountPercent)

	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestDiscountValidationRejectsOutOfRange(t *testing.T) {
	cart := NewCart(dec("0"))
	p := testProduct("SKU-1", "100")
	cart.AddLine(p, 1)

	_, err := cart.SetLineDiscount(p.ID, dec("-5"), DiscountPercent)
	assert.ErrorIs(t, err, ErrNegativeDiscount)

	_, err = cart.SetLineDiscount(p.ID, dec("101"), DiscountPercent)
	assert.ErrorIs(t, err, ErrDiscountOver100Percent)

	_, err = cart.SetOrderDiscount(dec("10"), DiscountMode("half-off"))
	assert.ErrorIs(t, err, ErrInvalidDiscountMode)

	// Rejections leave the state untouched
	assertDecimal(t, "100", cart.Totals().WorkingSubtotal)

	// Fixed discounts above 100 are fine, only percentages are capped
	_, err = cart.SetLineDiscount(p.ID, dec("150"), DiscountFixed)
	assert.NoError(t, err)
}

// Receipt breakdown for: 1 line {unit 100, qty 2, 10% line discount}, 17% tax.
func TestRecomputeBreakdown(t *testing.T) {
	cart := NewCart(dec("17"))
	p := testProduct("SKU-1", "100")

	cart.AddLine(p, 2)
	totals, err := cart.SetLineDiscount(p.ID, dec("10"), DiscountPercent)
	require.NoError(t, err)

	assertDecimal(t, "200", totals.Subtotal)
	assertDecimal(t, "20", totals.LineDiscounts)
	assertDecimal(t, "180", totals.WorkingSubtotal)
	assertDecimal(t, "0", totals.OrderDiscount)
	assertDecimal(t, "180", totals.DiscountedSubtotal)
	assertDecimal(t, "30.6", totals.Tax)
	assertDecimal(t, "210.6", totals.Total)

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assertDecimal(t, "200", lines[0].Gross())
	assertDecimal(t, "20", lines[0].DiscountAmount())
	assertDecimal(t, "180", lines[0].Net())
}

func TestOrderDiscountAppliesAfterLineDiscounts(t *testing.T) {
	cart := NewCart(dec("10"))
	p := testProduct("SKU-1", "100")
	cart.AddLine(p, 1)

	_, err := cart.SetLineDiscount(p.ID, dec("20"), DiscountPercent) // 100 -> 80
	require.NoError(t, err)
	totals, err := cart.SetOrderDiscount(dec("25"), DiscountPercent) // 80 -> 60
	require.NoError(t, err)

	assertDecimal(t, "100", totals.Subtotal) // reported subtotal stays gross
	assertDecimal(t, "20", totals.OrderDiscount)
	assertDecimal(t, "60", totals.DiscountedSubtotal)
	assertDecimal(t, "6", totals.Tax)
	assertDecimal(t, "66", totals.Total)
}

func TestSubtotalGrossOrdering(t *testing.T) {
	cart := NewCart(dec("17"))
	cart.AddLine(testProduct("SKU-1", "100"), 3)
	cart.AddLine(testProduct("SKU-2", "40"), 1)
	_, err := cart.SetOrderDiscount(dec("100"), DiscountPercent)
	require.NoError(t, err)

	totals := cart.Totals()
	assert.True(t, totals.Subtotal.GreaterThanOrEqual(totals.DiscountedSubtotal))
	assert.True(t, totals.DiscountedSubtotal.GreaterThanOrEqual(decimal.Zero))
	assert.True(t, totals.Total.GreaterThanOrEqual(decimal.Zero))
}

func TestTotalNeverNegative(t *testing.T) {
	cart := NewCart(dec("17"))
	p := testProduct("SKU-1", "10")
	cart.AddLine(p, 1)

	// Fixed line discount larger than the cart itself
	totals, err := cart.SetLineDiscount(p.ID, dec("9999"), DiscountFixed)
	require.NoError(t, err)

	assert.True(t, totals.WorkingSubtotal.IsNegative()) // net is not floored per line
	assertDecimal(t, "0", totals.Total)                 // but the total is
}

func TestRecomputeIsIdempotent(t *testing.T) {
	cart := NewCart(dec("17"))
	p := testProduct("SKU-1", "33.33")
	cart.AddLine(p, 3)
	_, err := cart.SetLineDiscount(p.ID, dec("7"), DiscountPercent)
	require.NoError(t, err)

	first := cart.Totals()
	// Re-applying the same state must not drift the derived totals
	second, err := cart.SetTaxRate(cart.TaxRate())
	require.NoError(t, err)

	assert.True(t, first.Total.Equal(second.Total))
	assert.True(t, first.Tax.Equal(second.Tax))
	assert.True(t, first.Subtotal.Equal(second.Subtotal))
}

func TestRemoveAllLinesZeroesTotals(t *testing.T) {
	cart := NewCart(dec("17"))
	p1 := testProduct("SKU-1", "100")
	p2 := testProduct("SKU-2", "50")
	cart.AddLine(p1, 2)
	cart.AddLine(p2, 1)

	cart.RemoveLine(p1.ID)
	totals := cart.RemoveLine(p2.ID)

	assertDecimal(t, "0", totals.Subtotal)
	assertDecimal(t, "0", totals.Tax)
	assertDecimal(t, "0", totals.Total)
}

func TestClearRestoresInitialState(t *testing.T) {
	taxRate := dec("17")
	cart := NewCart(taxRate)
	fresh := NewCart(taxRate)

	customerID := uuid.New()
	p := testProduct("SKU-1", "100")
	cart.AddLine(p, 4)
	_, err := cart.SetLineDiscount(p.ID, dec("10"), DiscountPercent)
	require.NoError(t, err)
	_, err = cart.SetOrderDiscount(dec("5"), DiscountFixed)
	require.NoError(t, err)
	_, err = cart.SetTaxRate(dec("21"))
	require.NoError(t, err)
	cart.SetCustomer(&customerID)
	require.NoError(t, cart.SetPaymentMethod(PaymentDeferred))

	cart.Clear()

	assert.True(t, cart.IsEmpty())
	assert.Nil(t, cart.CustomerID())
	assert.Equal(t, PaymentCash, cart.PaymentMethod())
	assert.True(t, cart.TaxRate().Equal(fresh.TaxRate()))
	assert.Equal(t, ZeroDiscount(), cart.OrderDiscount())
	assert.True(t, cart.Totals().Total.Equal(fresh.Totals().Total))
	assert.True(t, cart.Totals().Subtotal.Equal(fresh.Totals().Subtotal))
}

func TestSetPaymentMethodRejectsUnknown(t *testing.T) {
	cart := NewCart(dec("0"))

	err := cart.SetPaymentMethod(PaymentMethod("barter"))

	assert.ErrorIs(t, err, ErrUnknownPaymentMethod)
	assert.Equal(t, PaymentCash, cart.PaymentMethod())
}
