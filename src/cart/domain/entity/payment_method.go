package entity

// PaymentMethod es el método de pago seleccionado para el carrito
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentDeferred PaymentMethod = "deferred" // fiado / cuenta corriente del cliente
)

// Valid indica si el método de pago es uno de los soportados
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentDeferred:
		return true
	}
	return false
}

// IsDeferred indica si el pago queda como obligación pendiente del cliente
func (m PaymentMethod) IsDeferred() bool {
	return m == PaymentDeferred
}
