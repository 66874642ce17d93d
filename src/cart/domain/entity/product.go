package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product es la referencia de catálogo que entra al carrito
// El precio unitario queda congelado en la línea al momento de agregarlo
type Product struct {
	ID        uuid.UUID       `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}
