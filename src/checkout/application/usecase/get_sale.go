package usecase

import (
	"context"

	"github.com/google/uuid"

	"pos/src/checkout/application/response"
	"pos/src/checkout/domain/entity"
	"pos/src/checkout/domain/port"
)

// GetSaleUseCase caso de uso para consultar una venta con sus items
type GetSaleUseCase struct {
	saleRepo port.SaleRepository
}

// NewGetSaleUseCase crea una nueva instancia
func NewGetSaleUseCase(saleRepo port.SaleRepository) *GetSaleUseCase {
	return &GetSaleUseCase{saleRepo: saleRepo}
}

// Execute retorna la venta identificada por saleID
func (uc *GetSaleUseCase) Execute(ctx context.Context, saleID uuid.UUID) (*response.CheckoutResponse, error) {
	sale, err := uc.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, entity.ErrSaleNotFound
	}
	return ToSaleResponse(sale, nil), nil
}

// ToSaleResponse mapea la entidad Sale al DTO de respuesta
func ToSaleResponse(sale *entity.Sale, softFailures []StepFailure) *response.CheckoutResponse {
	items := make([]response.SaleItemResponse, 0, len(sale.Items))
	for _, it := range sale.Items {
		items = append(items, response.SaleItemResponse{
			ItemID:         it.ID,
			ProductID:      it.ProductID,
			SKU:            it.SKU,
			ProductName:    it.ProductName,
			Quantity:       it.Quantity,
			UnitPrice:      it.UnitPrice,
			DiscountAmount: it.DiscountAmount,
			LineTotal:      it.LineTotal,
		})
	}

	var failures []response.StepFailureMessage
	for _, f := range softFailures {
		failures = append(failures, response.StepFailureMessage{
			Step:  f.Step,
			Error: f.Err.Error(),
		})
	}

	return &response.CheckoutResponse{
		SaleID:         sale.ID,
		InvoiceNumber:  sale.InvoiceNumber,
		ReceiptNumber:  sale.ReceiptNumber,
		CustomerID:     sale.CustomerID,
		Items:          items,
		TotalItems:     sale.TotalItems(),
		Subtotal:       sale.Subtotal,
		DiscountAmount: sale.DiscountAmount,
		TaxAmount:      sale.TaxAmount,
		TotalAmount:    sale.TotalAmount,
		PaymentMethod:  string(sale.PaymentMethod),
		PaymentStatus:  string(sale.PaymentStatus),
		CashierID:      sale.CashierID,
		CreatedAt:      sale.CreatedAt,
		SoftFailures:   failures,
	}
}
