package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pos/src/cart/domain/entity"
)

// Store mantiene los carritos activos, uno por sesión de caja
// El lock protege solo el mapa: cada carrito pertenece en exclusiva a su
// sesión y no recibe mutaciones concurrentes
type Store struct {
	carts          map[string]*entity.Cart
	defaultTaxRate decimal.Decimal
	mu             sync.RWMutex
}

// NewStore crea un almacén de sesiones con la tasa de impuesto por defecto
func NewStore(defaultTaxRate decimal.Decimal) *Store {
	return &Store{
		carts:          make(map[string]*entity.Cart),
		defaultTaxRate: defaultTaxRate,
	}
}

// Create abre una sesión nueva con un carrito vacío
func (s *Store) Create() (string, *entity.Cart) {
	id := uuid.New().String()
	cart := entity.NewCart(s.defaultTaxRate)

	s.mu.Lock()
	s.carts[id] = cart
	s.mu.Unlock()

	return id, cart
}

// Get retorna el carrito de la sesión, si existe
func (s *Store) Get(id string) (*entity.Cart, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[id]
	return cart, ok
}

// Delete cierra la sesión y descarta el carrito
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.carts, id)
	s.mu.Unlock()
}
