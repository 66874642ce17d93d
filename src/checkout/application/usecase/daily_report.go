package usecase

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"pos/src/checkout/application/response"
)

// DailyReportUseCase caso de uso para el reporte diario de ventas
// Alimenta la vista "summaries" que el checkout invalida tras cada commit
type DailyReportUseCase struct {
	db *sql.DB
}

// NewDailyReportUseCase crea una nueva instancia del caso de uso
func NewDailyReportUseCase(db *sql.DB) *DailyReportUseCase {
	return &DailyReportUseCase{db: db}
}

// Execute genera el reporte para una fecha específica
// Dos queries separadas combinadas en memoria
func (uc *DailyReportUseCase) Execute(ctx context.Context, date string) (*response.DailyReportResponse, error) {
	// Validar formato de fecha (YYYY-MM-DD)
	parsedDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid date format, expected YYYY-MM-DD: %w", err)
	}

	// Rango [from, to) — no usar DATE(created_at), así la query aprovecha el índice
	from := parsedDate
	to := parsedDate.AddDate(0, 0, 1)

	// Agregaciones globales del día
	queryTotals := `
		SELECT
			COUNT(*) as sales_count,
			COALESCE(SUM(subtotal), 0) as gross_total,
			COALESCE(SUM(discount_amount), 0) as total_discounts,
			COALESCE(SUM(tax_amount), 0) as total_tax,
			COALESCE(SUM(total_amount), 0) as net_total,
			MIN(created_at) as first_sale,
			MAX(created_at) as last_sale
		FROM sales
		WHERE created_at >= $1 AND created_at < $2
	`

	var salesCount int
	var grossTotal, totalDiscounts, totalTax, netTotal decimal.Decimal
	var firstSale, lastSale sql.NullTime

	err = uc.db.QueryRowContext(ctx, queryTotals, from, to).Scan(
		&salesCount,
		&grossTotal,
		&totalDiscounts,
		&totalTax,
		&netTotal,
		&firstSale,
		&lastSale,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying daily totals: %w", err)
	}

	// Desglose por método de pago
	queryByMethod := `
		SELECT payment_method, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM sales
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY payment_method
		ORDER BY payment_method
	`

	rows, err := uc.db.QueryContext(ctx, queryByMethod, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying payment method breakdown: %w", err)
	}
	defer rows.Close()

	var byMethod []response.PaymentMethodBreakdown
	for rows.Next() {
		var b response.PaymentMethodBreakdown
		if err := rows.Scan(&b.PaymentMethod, &b.SalesCount, &b.NetTotal); err != nil {
			return nil, fmt.Errorf("error scanning payment method breakdown: %w", err)
		}
		byMethod = append(byMethod, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment method breakdown: %w", err)
	}

	resp := &response.DailyReportResponse{
		Date:           date,
		SalesCount:     salesCount,
		GrossTotal:     grossTotal,
		TotalDiscounts: totalDiscounts,
		TotalTax:       totalTax,
		NetTotal:       netTotal,
		ByMethod:       byMethod,
	}
	if firstSale.Valid {
		s := firstSale.Time.Format(time.RFC3339)
		resp.FirstSale = &s
	}
	if lastSale.Valid {
		s := lastSale.Time.Format(time.RFC3339)
		resp.LastSale = &s
	}

	return resp, nil
}
