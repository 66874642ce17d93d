package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartEntity "pos/src/cart/domain/entity"
)

// PaymentStatus es el estado de cobro de la venta
type PaymentStatus string

const (
	PaymentStatusSettled PaymentStatus = "settled" // cash / card: cobrada al crear
	PaymentStatusPending PaymentStatus = "pending" // deferred: queda como obligación
)

// Sale representa una venta confirmada (Aggregate Root)
// Inmutable desde este subsistema una vez creada; transiciones de estado
// posteriores (impresa, devuelta) pertenecen a otros subsistemas.
type Sale struct {
	ID             uuid.UUID                `json:"id"`
	InvoiceNumber  string                   `json:"invoice_number"`
	ReceiptNumber  string                   `json:"receipt_number"`
	CustomerID     *uuid.UUID               `json:"customer_id"` // NULL = consumidor final
	Subtotal       decimal.Decimal          `json:"subtotal"`    // suma bruta, sin descuentos
	DiscountAmount decimal.Decimal          `json:"discount_amount"`
	TaxAmount      decimal.Decimal          `json:"tax_amount"`
	TotalAmount    decimal.Decimal          `json:"total_amount"`
	PaymentMethod  cartEntity.PaymentMethod `json:"payment_method"`
	PaymentStatus  PaymentStatus            `json:"payment_status"`
	CashierID      string                   `json:"cashier_id"`
	CreatedAt      time.Time                `json:"created_at"`
	Items          []SaleItem               `json:"items"`
}

// NewSale materializa una venta a partir del carrito finalizado
// Los totales vienen del motor de precios tal cual — acá no se recalculan,
// solo se congelan junto con las líneas
func NewSale(invoiceNumber, receiptNumber, cashierID string, cart *cartEntity.Cart) (*Sale, error) {
	if invoiceNumber == "" {
		return nil, ErrInvoiceNumberRequired
	}
	if receiptNumber == "" {
		return nil, ErrReceiptNumberRequired
	}
	if cashierID == "" {
		return nil, ErrCashierRequired
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if cart.PaymentMethod().IsDeferred() && cart.CustomerID() == nil {
		return nil, ErrCustomerRequired
	}

	saleID := uuid.New()
	totals := cart.Totals()

	// Estado de pago por defecto según método: cash/card cobradas, deferred pendiente
	status := PaymentStatusSettled
	if cart.PaymentMethod().IsDeferred() {
		status = PaymentStatusPending
	}

	lines := cart.Lines()
	items := make([]SaleItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, SaleItem{
			ID:             uuid.New(),
			SaleID:         saleID,
			ProductID:      l.Product.ID,
			SKU:            l.Product.SKU,
			ProductName:    l.Product.Name,
			Quantity:       l.Quantity,
			UnitPrice:      l.Product.UnitPrice,
			DiscountAmount: l.DiscountAmount(),
			LineTotal:      l.Net(),
		})
	}

	return &Sale{
		ID:             saleID,
		InvoiceNumber:  invoiceNumber,
		ReceiptNumber:  receiptNumber,
		CustomerID:     cart.CustomerID(),
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountTotal,
		TaxAmount:      totals.Tax,
		TotalAmount:    totals.Total,
		PaymentMethod:  cart.PaymentMethod(),
		PaymentStatus:  status,
		CashierID:      cashierID,
		CreatedAt:      time.Now(),
		Items:          items,
	}, nil
}

// TotalItems retorna el número de líneas de la venta
func (s *Sale) TotalItems() int {
	return len(s.Items)
}
