package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"pos/src/checkout/domain/entity"
	"pos/src/checkout/domain/port"
)

// SalePostgresRepository implementa SaleRepository usando PostgreSQL
// Header e items se insertan en llamadas separadas A PROPÓSITO: el
// orquestador trata cada inserción como un paso con su propia política de
// fallo, y un fallo en los items deja el header huérfano (estado documentado,
// no reparado acá)
type SalePostgresRepository struct {
	db *sql.DB
}

// NewSalePostgresRepository crea una nueva instancia del repositorio
func NewSalePostgresRepository(db *sql.DB) port.SaleRepository {
	return &SalePostgresRepository{db: db}
}

// NextReceiptNumber obtiene el siguiente número de recibo de la secuencia
// La unicidad canónica la garantiza la base de datos
func (r *SalePostgresRepository) NextReceiptNumber(ctx context.Context) (string, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT nextval('receipt_number_seq')`).Scan(&n)
	if err != nil {
		return "", fmt.Errorf("error fetching next receipt number: %w", err)
	}
	return fmt.Sprintf("REC-%06d", n), nil
}

// CreateSale persiste SOLO el header de la venta
func (r *SalePostgresRepository) CreateSale(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (
			id, invoice_number, receipt_number, customer_id,
			subtotal, discount_amount, tax_amount, total_amount,
			payment_method, payment_status, cashier_id, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
	`

	_, err := r.db.ExecContext(ctx, query,
		sale.ID,
		sale.InvoiceNumber,
		sale.ReceiptNumber,
		sale.CustomerID, // NULL permitido
		sale.Subtotal,
		sale.DiscountAmount,
		sale.TaxAmount,
		sale.TotalAmount,
		sale.PaymentMethod,
		sale.PaymentStatus,
		sale.CashierID,
		sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error creating sale: %w", err)
	}

	return nil
}

// CreateSaleItems persiste las líneas de una venta ya creada
func (r *SalePostgresRepository) CreateSaleItems(ctx context.Context, saleID uuid.UUID, items []entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (
			id, sale_id, product_id, sku, product_name,
			quantity, unit_price, discount_amount, line_total, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, NOW()
		)
	`

	for _, item := range items {
		_, err := r.db.ExecContext(ctx, query,
			item.ID,
			saleID,
			item.ProductID,
			item.SKU,
			item.ProductName,
			item.Quantity,
			item.UnitPrice,
			item.DiscountAmount,
			item.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("error creating sale_item for SKU %s: %w", item.SKU, err)
		}
	}

	return nil
}

// FindByID retorna la venta con sus items
func (r *SalePostgresRepository) FindByID(ctx context.Context, saleID uuid.UUID) (*entity.Sale, error) {
	query := `
		SELECT
			id, invoice_number, receipt_number, customer_id,
			subtotal, discount_amount, tax_amount, total_amount,
			payment_method, payment_status, cashier_id, created_at
		FROM sales
		WHERE id = $1
	`

	sale := &entity.Sale{}
	err := r.db.QueryRowContext(ctx, query, saleID).Scan(
		&sale.ID,
		&sale.InvoiceNumber,
		&sale.ReceiptNumber,
		&sale.CustomerID,
		&sale.Subtotal,
		&sale.DiscountAmount,
		&sale.TaxAmount,
		&sale.TotalAmount,
		&sale.PaymentMethod,
		&sale.PaymentStatus,
		&sale.CashierID,
		&sale.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrSaleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying sale: %w", err)
	}

	items, err := r.loadItems(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	sale.Items = items

	return sale, nil
}

// List retorna las ventas más recientes CON sus items
func (r *SalePostgresRepository) List(ctx context.Context) ([]*entity.Sale, error) {
	query := `
		SELECT
			id, invoice_number, receipt_number, customer_id,
			subtotal, discount_amount, tax_amount, total_amount,
			payment_method, payment_status, cashier_id, created_at
		FROM sales
		ORDER BY created_at DESC
		LIMIT 200
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying sales: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	for rows.Next() {
		sale := &entity.Sale{}
		err := rows.Scan(
			&sale.ID,
			&sale.InvoiceNumber,
			&sale.ReceiptNumber,
			&sale.CustomerID,
			&sale.Subtotal,
			&sale.DiscountAmount,
			&sale.TaxAmount,
			&sale.TotalAmount,
			&sale.PaymentMethod,
			&sale.PaymentStatus,
			&sale.CashierID,
			&sale.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning sale: %w", err)
		}
		sales = append(sales, sale)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales: %w", err)
	}

	// Cargar items por venta (N+1, suficiente para el listado de caja)
	for _, sale := range sales {
		items, err := r.loadItems(ctx, sale.ID)
		if err != nil {
			return nil, err
		}
		sale.Items = items
	}

	return sales, nil
}

func (r *SalePostgresRepository) loadItems(ctx context.Context, saleID uuid.UUID) ([]entity.SaleItem, error) {
	query := `
		SELECT
			id, sale_id, product_id, sku, product_name,
			quantity, unit_price, discount_amount, line_total
		FROM sale_items
		WHERE sale_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("error querying sale_items: %w", err)
	}
	defer rows.Close()

	var items []entity.SaleItem
	for rows.Next() {
		item := entity.SaleItem{}
		err := rows.Scan(
			&item.ID,
			&item.SaleID,
			&item.ProductID,
			&item.SKU,
			&item.ProductName,
			&item.Quantity,
			&item.UnitPrice,
			&item.DiscountAmount,
			&item.LineTotal,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning sale_item: %w", err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale_items: %w", err)
	}

	return items, nil
}
