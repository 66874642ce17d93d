package entity

import "errors"

var (
	ErrInvalidDiscountMode    = errors.New("discount mode must be 'percent' or 'fixed'")
	ErrNegativeDiscount       = errors.New("discount value must be greater than or equal to 0")
	ErrDiscountOver100Percent = errors.New("percent discount must be less than or equal to 100")
	ErrNegativeTaxRate        = errors.New("tax_rate must be greater than or equal to 0")
	ErrUnknownPaymentMethod   = errors.New("payment_method must be 'cash', 'card' or 'deferred'")
	ErrLineNotFound           = errors.New("cart line not found for product")
)
