package usecase

import (
	"context"

	"pos/src/checkout/application/response"
	"pos/src/checkout/domain/entity"
	"pos/src/checkout/domain/port"
)

// ListSalesUseCase caso de uso para listar ventas confirmadas
type ListSalesUseCase struct {
	saleRepo port.SaleRepository
}

// NewListSalesUseCase crea una nueva instancia
func NewListSalesUseCase(saleRepo port.SaleRepository) *ListSalesUseCase {
	return &ListSalesUseCase{saleRepo: saleRepo}
}

// Execute lista las ventas más recientes
func (uc *ListSalesUseCase) Execute(ctx context.Context) ([]*response.SaleListItem, error) {
	sales, err := uc.saleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toListItems(sales), nil
}

func toListItems(sales []*entity.Sale) []*response.SaleListItem {
	items := make([]*response.SaleListItem, 0, len(sales))
	for _, s := range sales {
		items = append(items, &response.SaleListItem{
			SaleID:         s.ID,
			InvoiceNumber:  s.InvoiceNumber,
			ReceiptNumber:  s.ReceiptNumber,
			CustomerID:     s.CustomerID,
			Subtotal:       s.Subtotal,
			DiscountAmount: s.DiscountAmount,
			TaxAmount:      s.TaxAmount,
			TotalAmount:    s.TotalAmount,
			PaymentMethod:  string(s.PaymentMethod),
			PaymentStatus:  string(s.PaymentStatus),
			TotalItems:     s.TotalItems(),
			CreatedAt:      s.CreatedAt,
		})
	}
	return items
}
