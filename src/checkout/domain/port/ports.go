package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pos/src/checkout/domain/entity"
)

// SaleRepository define el contrato para persistir y consultar ventas
// El header y los items se insertan por separado: el orquestador necesita
// distinguir el fallo de cada paso (ver tabla de políticas del checkout)
type SaleRepository interface {
	// NextReceiptNumber obtiene el siguiente número de recibo canónico del store
	NextReceiptNumber(ctx context.Context) (string, error)

	// CreateSale persiste SOLO el header de la venta
	CreateSale(ctx context.Context, sale *entity.Sale) error

	// CreateSaleItems persiste las líneas de una venta ya creada
	CreateSaleItems(ctx context.Context, saleID uuid.UUID, items []entity.SaleItem) error

	// FindByID retorna la venta con sus items
	FindByID(ctx context.Context, saleID uuid.UUID) (*entity.Sale, error)

	// List retorna las ventas más recientes con sus items
	List(ctx context.Context) ([]*entity.Sale, error)
}

// StockService es el colaborador externo que ajusta inventario
// La semántica interna (costo promedio ponderado, atomicidad del ajuste)
// es del colaborador, no de este subsistema
type StockService interface {
	// AdjustStock aplica un delta a la existencia del producto (negativo = venta)
	AdjustStock(ctx context.Context, productID uuid.UUID, delta int) error

	// RecordMovement agrega una entrada al libro de movimientos de stock
	RecordMovement(ctx context.Context, productID uuid.UUID, delta int, reason string) error
}

// CustomerService es el colaborador externo de clientes: fiado y fidelización
type CustomerService interface {
	// CreateDeferredObligation registra la deuda del cliente por el total de la venta
	CreateDeferredObligation(ctx context.Context, customerID, saleID uuid.UUID, amount decimal.Decimal) error

	// AccrueLoyalty acredita puntos proporcionales al total de la venta
	AccrueLoyalty(ctx context.Context, customerID uuid.UUID, amount decimal.Decimal) error
}

// View identifica una vista derivada que puede quedar obsoleta tras un commit
type View string

const (
	ViewSales     View = "sales"
	ViewStock     View = "stock"
	ViewCustomers View = "customers"
	ViewSummaries View = "summaries"
)

// ViewNotifier señala a los lectores downstream que esas vistas deben refrescarse
// Sin payload: el contrato es solo el nombre de la vista
type ViewNotifier interface {
	Invalidate(views ...View)
}
