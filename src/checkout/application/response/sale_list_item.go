package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleListItem es el resumen de una venta para el listado
type SaleListItem struct {
	SaleID         uuid.UUID       `json:"sale_id"`
	InvoiceNumber  string          `json:"invoice_number"`
	ReceiptNumber  string          `json:"receipt_number"`
	CustomerID     *uuid.UUID      `json:"customer_id,omitempty"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	PaymentMethod  string          `json:"payment_method"`
	PaymentStatus  string          `json:"payment_status"`
	TotalItems     int             `json:"total_items"`
	CreatedAt      time.Time       `json:"created_at"`
}
