package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddLineRequest agrega (o acumula) un producto al carrito
type AddLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// SetQuantityRequest fija la cantidad de una línea
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// DiscountRequest fija un descuento (de línea o de orden)
type DiscountRequest struct {
	Value decimal.Decimal `json:"value"`
	Mode  string          `json:"mode" binding:"required"`
}

// TaxRateRequest fija la tasa de impuesto del carrito
type TaxRateRequest struct {
	Rate decimal.Decimal `json:"rate"`
}

// CustomerRequest asigna (o quita, con null) el cliente de la venta
type CustomerRequest struct {
	CustomerID *uuid.UUID `json:"customer_id"`
}

// PaymentMethodRequest asigna el método de pago
type PaymentMethodRequest struct {
	Method string `json:"method" binding:"required"`
}
