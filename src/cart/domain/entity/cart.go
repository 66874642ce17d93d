package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine es una línea del carrito: un producto, su cantidad y su descuento propio
type CartLine struct {
	Product  Product  `json:"product"`
	Quantity int      `json:"quantity"`
	Discount Discount `json:"discount"`
}

// Gross retorna precio unitario × cantidad, sin descuentos
func (l CartLine) Gross() decimal.Decimal {
	return l.Product.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// DiscountAmount retorna el monto descontado de la línea según su modo
func (l CartLine) DiscountAmount() decimal.Decimal {
	return l.Discount.AmountOver(l.Gross())
}

// Net retorna el total de línea después del descuento de línea
// No se ajusta a cero: un descuento fijo mayor al bruto produce neto negativo,
// el total de la orden es el que se ajusta al final
func (l CartLine) Net() decimal.Decimal {
	return l.Gross().Sub(l.DiscountAmount())
}

// Totals son los montos derivados del carrito
// Subtotal es la suma BRUTA (sin descuentos) — es lo que se imprime en el recibo;
// WorkingSubtotal y DiscountedSubtotal son intermedios del cálculo
type Totals struct {
	Subtotal           decimal.Decimal `json:"subtotal"`
	LineDiscounts      decimal.Decimal `json:"line_discounts"`
	WorkingSubtotal    decimal.Decimal `json:"working_subtotal"`
	OrderDiscount      decimal.Decimal `json:"order_discount"`
	DiscountedSubtotal decimal.Decimal `json:"discounted_subtotal"`
	DiscountTotal      decimal.Decimal `json:"discount_total"`
	Tax                decimal.Decimal `json:"tax"`
	Total              decimal.Decimal `json:"total"`
}

// Cart es el estado de una venta en curso (Aggregate Root)
// Una instancia por sesión de caja, inyectada explícitamente — NO es estado global.
// Invariante: los totales derivados siempre son función pura de las líneas y los
// campos de orden; cada mutación recalcula y retorna los totales nuevos.
// Sin concurrencia: una sesión de caja es un único hilo de control.
type Cart struct {
	lines          []CartLine // ordenadas por inserción, una línea por producto
	customerID     *uuid.UUID
	orderDiscount  Discount
	taxRate        decimal.Decimal
	paymentMethod  PaymentMethod
	totals         Totals
	defaultTaxRate decimal.Decimal
}

// NewCart crea un carrito vacío con la tasa de impuesto configurada
func NewCart(taxRate decimal.Decimal) *Cart {
	c := &Cart{defaultTaxRate: taxRate}
	c.reset()
	return c
}

func (c *Cart) reset() {
	c.lines = nil
	c.customerID = nil
	c.orderDiscount = ZeroDiscount()
	c.taxRate = c.defaultTaxRate
	c.paymentMethod = PaymentCash
	c.recompute()
}

// AddLine agrega un producto al carrito
// Si ya existe una línea para el producto, suma la cantidad y conserva el
// descuento que la línea ya tenía; si no, inserta con descuento 0%.
// Cantidades no positivas se tratan como 1 — nunca falla.
func (c *Cart) AddLine(product Product, quantity int) Totals {
	if quantity < 1 {
		quantity = 1
	}
	if i := c.lineIndex(product.ID); i >= 0 {
		c.lines[i].Quantity += quantity
	} else {
		c.lines = append(c.lines, CartLine{
			Product:  product,
			Quantity: quantity,
			Discount: ZeroDiscount(),
		})
	}
	c.recompute()
	return c.totals
}

// RemoveLine elimina la línea del producto; si no existe, no hace nada
func (c *Cart) RemoveLine(productID uuid.UUID) Totals {
	if i := c.lineIndex(productID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		c.recompute()
	}
	return c.totals
}

// SetQuantity fija la cantidad de la línea; cantidad <= 0 equivale a eliminarla
func (c *Cart) SetQuantity(productID uuid.UUID, quantity int) Totals {
	if quantity <= 0 {
		return c.RemoveLine(productID)
	}
	if i := c.lineIndex(productID); i >= 0 {
		c.lines[i].Quantity = quantity
		c.recompute()
	}
	return c.totals
}

// SetLineDiscount sobreescribe el descuento de una línea
func (c *Cart) SetLineDiscount(productID uuid.UUID, value decimal.Decimal, mode DiscountMode) (Totals, error) {
	i := c.lineIndex(productID)
	if i < 0 {
		return c.totals, ErrLineNotFound
	}
	d, err := NewDiscount(value, mode)
	if err != nil {
		return c.totals, err
	}
	c.lines[i].Discount = d
	c.recompute()
	return c.totals, nil
}

// SetOrderDiscount sobreescribe el descuento a nivel de orden
func (c *Cart) SetOrderDiscount(value decimal.Decimal, mode DiscountMode) (Totals, error) {
	d, err := NewDiscount(value, mode)
	if err != nil {
		return c.totals, err
	}
	c.orderDiscount = d
	c.recompute()
	return c.totals, nil
}

// SetTaxRate sobreescribe la tasa de impuesto (porcentaje)
func (c *Cart) SetTaxRate(rate decimal.Decimal) (Totals, error) {
	if rate.IsNegative() {
		return c.totals, ErrNegativeTaxRate
	}
	c.taxRate = rate
	c.recompute()
	return c.totals, nil
}

// SetCustomer asigna (o quita, con nil) el cliente de la venta
// No afecta los totales
func (c *Cart) SetCustomer(customerID *uuid.UUID) {
	c.customerID = customerID
}

// SetPaymentMethod asigna el método de pago
// No afecta los totales, pero sí qué efectos laterales dispara el checkout
func (c *Cart) SetPaymentMethod(method PaymentMethod) error {
	if !method.Valid() {
		return ErrUnknownPaymentMethod
	}
	c.paymentMethod = method
	return nil
}

// Clear vuelve el carrito a su estado inicial vacío
func (c *Cart) Clear() Totals {
	c.reset()
	return c.totals
}

// recompute deriva los totales a partir de las líneas y los campos de orden
// Determinista: se ejecuta en cada mutación
func (c *Cart) recompute() {
	subtotal := decimal.Zero
	lineDiscounts := decimal.Zero
	working := decimal.Zero

	for _, l := range c.lines {
		subtotal = subtotal.Add(l.Gross())
		lineDiscounts = lineDiscounts.Add(l.DiscountAmount())
		working = working.Add(l.Net())
	}

	orderDiscount := c.orderDiscount.AmountOver(working)
	discounted := working.Sub(orderDiscount)
	tax := discounted.Mul(c.taxRate).Div(oneHundred)

	// El total nunca es negativo, sin importar la magnitud de los descuentos
	total := discounted.Add(tax)
	if total.IsNegative() {
		total = decimal.Zero
	}

	c.totals = Totals{
		Subtotal:           subtotal,
		LineDiscounts:      lineDiscounts,
		WorkingSubtotal:    working,
		OrderDiscount:      orderDiscount,
		DiscountedSubtotal: discounted,
		DiscountTotal:      lineDiscounts.Add(orderDiscount),
		Tax:                tax,
		Total:              total,
	}
}

func (c *Cart) lineIndex(productID uuid.UUID) int {
	for i, l := range c.lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}

// Lines retorna una copia de las líneas en orden de inserción
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Totals retorna los totales derivados vigentes
func (c *Cart) Totals() Totals {
	return c.totals
}

// IsEmpty indica si el carrito no tiene líneas
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// CustomerID retorna el cliente seleccionado (nil = consumidor final)
func (c *Cart) CustomerID() *uuid.UUID {
	return c.customerID
}

// PaymentMethod retorna el método de pago seleccionado
func (c *Cart) PaymentMethod() PaymentMethod {
	return c.paymentMethod
}

// TaxRate retorna la tasa de impuesto vigente
func (c *Cart) TaxRate() decimal.Decimal {
	return c.taxRate
}

// OrderDiscount retorna el descuento a nivel de orden vigente
func (c *Cart) OrderDiscount() Discount {
	return c.orderDiscount
}
