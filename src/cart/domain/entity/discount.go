package entity

import "github.com/shopspring/decimal"

// DiscountMode define cómo se interpreta el valor de un descuento
type DiscountMode string

const (
	DiscountPercent DiscountMode = "percent" // porcentaje sobre la base
	DiscountFixed   DiscountMode = "fixed"   // monto fijo
)

var oneHundred = decimal.NewFromInt(100)

// Discount representa un descuento (de línea o de orden) con su modo
type Discount struct {
	Value decimal.Decimal `json:"value"`
	Mode  DiscountMode    `json:"mode"`
}

// ZeroDiscount retorna el descuento por defecto (0%)
func ZeroDiscount() Discount {
	return Discount{Value: decimal.Zero, Mode: DiscountPercent}
}

// NewDiscount crea un descuento validado
// Política: valores fuera de rango se RECHAZAN, no se ajustan
func NewDiscount(value decimal.Decimal, mode DiscountMode) (Discount, error) {
	if mode != DiscountPercent && mode != DiscountFixed {
		return Discount{}, ErrInvalidDiscountMode
	}
	if value.IsNegative() {
		return Discount{}, ErrNegativeDiscount
	}
	if mode == DiscountPercent && value.GreaterThan(oneHundred) {
		return Discount{}, ErrDiscountOver100Percent
	}
	return Discount{Value: value, Mode: mode}, nil
}

// AmountOver calcula el monto descontado sobre una base
func (d Discount) AmountOver(base decimal.Decimal) decimal.Decimal {
	if d.Mode == DiscountPercent {
		return base.Mul(d.Value).Div(oneHundred)
	}
	return d.Value
}
