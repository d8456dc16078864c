// Package pos implementa la composición de ventas (carrito) y su confirmación.
package pos

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
)

// Cart acumula líneas de venta mientras el cajero compone una venta.
// Estados: vacío -> componiendo -> (confirmando) -> vacío si la confirmación
// tiene éxito, o de vuelta a componiendo (contenido intacto) si falla.
//
// El carrito pertenece en exclusiva a la vista que lo creó; el mutex solo
// protege contra el doble-submit del mismo carrito.
type Cart struct {
	mu         sync.Mutex
	id         string
	items      []entity.SaleItem
	confirming bool // a lo sumo una confirmación en vuelo (latch, no cola)
}

// NewCart crea un carrito vacío con id opaco.
func NewCart() *Cart {
	return &Cart{id: uuid.New().String()}
}

// ID devuelve el identificador del carrito.
func (c *Cart) ID() string { return c.id }

// Add agrega un producto: inserta una línea nueva con cantidad 1 o incrementa
// en 1 la línea existente (emparejada por id de producto).
func (c *Cart) Add(p *entity.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ProductID == p.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, entity.SaleItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Category:  p.Category,
		Quantity:  1,
	})
}

// Decrement resta 1 a la línea del producto; al llegar a cero la línea se
// elimina (nunca se conserva en cero). Devuelve false si no existe la línea.
func (c *Cart) Decrement(productID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity--
			if c.items[i].Quantity <= 0 {
				c.items = append(c.items[:i], c.items[i+1:]...)
			}
			return true
		}
	}
	return false
}

// Clear descarta todas las líneas y vuelve al estado vacío.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Items devuelve una copia de las líneas actuales.
func (c *Cart) Items() []entity.SaleItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]entity.SaleItem, len(c.items))
	copy(out, c.items)
	return out
}

// Empty indica si el carrito no tiene líneas.
func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}

// Total devuelve la suma de precio × cantidad sobre las líneas.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// ItemCount devuelve la cantidad total de unidades en el carrito.
func (c *Cart) ItemCount() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// beginConfirm toma el latch de confirmación. Devuelve false si ya hay una
// confirmación en vuelo para este carrito.
func (c *Cart) beginConfirm() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.confirming {
		return false
	}
	c.confirming = true
	return true
}

// endConfirm libera el latch.
func (c *Cart) endConfirm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.confirming = false
}

// CartManager registra los carritos abiertos, uno por sesión de venta.
type CartManager struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

// NewCartManager construye el registro.
func NewCartManager() *CartManager {
	return &CartManager{carts: make(map[string]*Cart)}
}

// Create abre un carrito nuevo y lo registra.
func (m *CartManager) Create() *Cart {
	cart := NewCart()
	m.mu.Lock()
	m.carts[cart.id] = cart
	m.mu.Unlock()
	return cart
}

// Get devuelve el carrito por id, o nil si no existe.
func (m *CartManager) Get(id string) *Cart {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.carts[id]
}

// Drop elimina un carrito del registro (descarte explícito).
func (m *CartManager) Drop(id string) {
	m.mu.Lock()
	delete(m.carts, id)
	m.mu.Unlock()
}
