package entity

import "errors"

var (
	ErrEmptyCart             = errors.New("cart must have at least one line")
	ErrCustomerRequired      = errors.New("a customer is required for deferred payment")
	ErrInvoiceNumberRequired = errors.New("invoice_number is required")
	ErrReceiptNumberRequired = errors.New("receipt_number is required")
	ErrCashierRequired       = errors.New("cashier_id is required")
	ErrSaleNotFound          = errors.New("sale not found")
)
