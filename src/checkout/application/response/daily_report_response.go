package response

import "github.com/shopspring/decimal"

// DailyReportResponse es el reporte agregado de ventas de un día
type DailyReportResponse struct {
	Date           string                   `json:"date"`
	SalesCount     int                      `json:"sales_count"`
	GrossTotal     decimal.Decimal          `json:"gross_total"`
	TotalDiscounts decimal.Decimal          `json:"total_discounts"`
	TotalTax       decimal.Decimal          `json:"total_tax"`
	NetTotal       decimal.Decimal          `json:"net_total"`
	FirstSale      *string                  `json:"first_sale,omitempty"`
	LastSale       *string                  `json:"last_sale,omitempty"`
	ByMethod       []PaymentMethodBreakdown `json:"by_payment_method"`
}

// PaymentMethodBreakdown agrega las ventas del día por método de pago
type PaymentMethodBreakdown struct {
	PaymentMethod string          `json:"payment_method"`
	SalesCount    int             `json:"sales_count"`
	NetTotal      decimal.Decimal `json:"net_total"`
}
