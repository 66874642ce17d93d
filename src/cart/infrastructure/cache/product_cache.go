package cache

import (
	"database/sql"
	"log"
	"sync"

	"github.com/google/uuid"

	"pos/src/cart/domain/entity"
)

// ProductCache cache en memoria del catálogo de productos
// El controlador de carrito resuelve productos acá: la línea del carrito
// congela el precio unitario vigente al momento de agregarla
type ProductCache struct {
	products map[uuid.UUID]entity.Product
	mu       sync.RWMutex
}

// NewProductCache crea un nuevo cache de productos
func NewProductCache() *ProductCache {
	return &ProductCache{
		products: make(map[uuid.UUID]entity.Product),
	}
}

// LoadFromDB carga el catálogo activo desde la base de datos
func (c *ProductCache) LoadFromDB(db *sql.DB) error {
	log.Println("🔄 Loading product catalog into cache...")

	query := `
		SELECT id, sku, name, unit_price
		FROM products
		WHERE is_active = true
	`

	rows, err := db.Query(query)
	if err != nil {
		log.Printf("⚠️  Warning: Could not load products: %v", err)
		return err
	}
	defer rows.Close()

	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for rows.Next() {
		var p entity.Product
		err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.UnitPrice)
		if err != nil {
			log.Printf("⚠️  Error scanning product: %v", err)
			continue
		}
		c.products[p.ID] = p
		count++
	}

	log.Printf("✅ Loaded %d products into cache", count)
	return rows.Err()
}

// Get obtiene un producto por ID
func (c *ProductCache) Get(id uuid.UUID) (entity.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.products[id]
	return p, ok
}

// Put inserta o actualiza un producto en el cache
// Útil para tests y para refrescos puntuales del catálogo
func (c *ProductCache) Put(p entity.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[p.ID] = p
}
