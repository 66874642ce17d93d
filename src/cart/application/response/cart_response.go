package response

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pos/src/cart/domain/entity"
)

// CartResponse es el estado completo del carrito con sus totales derivados
type CartResponse struct {
	CartID        string             `json:"cart_id"`
	Lines         []CartLineResponse `json:"lines"`
	CustomerID    *uuid.UUID         `json:"customer_id,omitempty"`
	PaymentMethod string             `json:"payment_method"`
	TaxRate       decimal.Decimal    `json:"tax_rate"`
	Totals        TotalsResponse     `json:"totals"`
}

// CartLineResponse es una línea del carrito con sus montos derivados
type CartLineResponse struct {
	ProductID      uuid.UUID       `json:"product_id"`
	SKU            string          `json:"sku"`
	ProductName    string          `json:"product_name"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Quantity       int             `json:"quantity"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
	DiscountMode   string          `json:"discount_mode"`
	Gross          decimal.Decimal `json:"gross"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	LineTotal      decimal.Decimal `json:"line_total"`
}

// TotalsResponse son los totales derivados del carrito
// subtotal es la suma BRUTA (lo que se imprime en el recibo)
type TotalsResponse struct {
	Subtotal           decimal.Decimal `json:"subtotal"`
	LineDiscounts      decimal.Decimal `json:"line_discounts"`
	OrderDiscount      decimal.Decimal `json:"order_discount"`
	DiscountedSubtotal decimal.Decimal `json:"discounted_subtotal"`
	Tax                decimal.Decimal `json:"tax"`
	Total              decimal.Decimal `json:"total"`
}

// FromCart mapea el carrito al DTO de respuesta
func FromCart(cartID string, cart *entity.Cart) *CartResponse {
	lines := cart.Lines()
	lineResps := make([]CartLineResponse, 0, len(lines))
	for _, l := range lines {
		lineResps = append(lineResps, CartLineResponse{
			ProductID:      l.Product.ID,
			SKU:            l.Product.SKU,
			ProductName:    l.Product.Name,
			UnitPrice:      l.Product.UnitPrice,
			Quantity:       l.Quantity,
			DiscountValue:  l.Discount.Value,
			DiscountMode:   string(l.Discount.Mode),
			Gross:          l.Gross(),
			DiscountAmount: l.DiscountAmount(),
			LineTotal:      l.Net(),
		})
	}

	return &CartResponse{
		CartID:        cartID,
		Lines:         lineResps,
		CustomerID:    cart.CustomerID(),
		PaymentMethod: string(cart.PaymentMethod()),
		TaxRate:       cart.TaxRate(),
		Totals:        FromTotals(cart.Totals()),
	}
}

// FromTotals mapea los totales derivados al DTO de respuesta
func FromTotals(t entity.Totals) TotalsResponse {
	return TotalsResponse{
		Subtotal:           t.Subtotal,
		LineDiscounts:      t.LineDiscounts,
		OrderDiscount:      t.OrderDiscount,
		DiscountedSubtotal: t.DiscountedSubtotal,
		Tax:                t.Tax,
		Total:              t.Total,
	}
}
