package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutResponse es el DTO de la venta confirmada, listo para imprimir
// soft_failures lista los efectos laterales degradados: la venta sigue
// siendo exitosa aunque esa lista no esté vacía
type CheckoutResponse struct {
	SaleID         uuid.UUID            `json:"sale_id"`
	InvoiceNumber  string               `json:"invoice_number"`
	ReceiptNumber  string               `json:"receipt_number"`
	CustomerID     *uuid.UUID           `json:"customer_id,omitempty"`
	Items          []SaleItemResponse   `json:"items"`
	TotalItems     int                  `json:"total_items"`
	Subtotal       decimal.Decimal      `json:"subtotal"`
	DiscountAmount decimal.Decimal      `json:"discount_amount"`
	TaxAmount      decimal.Decimal      `json:"tax_amount"`
	TotalAmount    decimal.Decimal      `json:"total_amount"`
	PaymentMethod  string               `json:"payment_method"`
	PaymentStatus  string               `json:"payment_status"`
	CashierID      string               `json:"cashier_id"`
	CreatedAt      time.Time            `json:"created_at"`
	SoftFailures   []StepFailureMessage `json:"soft_failures,omitempty"`
}

// SaleItemResponse es una línea de la venta en el DTO de respuesta
type SaleItemResponse struct {
	ItemID         uuid.UUID       `json:"item_id"`
	ProductID      uuid.UUID       `json:"product_id"`
	SKU            string          `json:"sku"`
	ProductName    string          `json:"product_name"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	LineTotal      decimal.Decimal `json:"line_total"`
}

// StepFailureMessage describe un paso soft-fail que falló durante el commit
type StepFailureMessage struct {
	Step  string `json:"step"`
	Error string `json:"error"`
}
