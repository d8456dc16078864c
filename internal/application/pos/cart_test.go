package pos_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-pos-api/internal/application/pos"
	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
)

func product(id, name string, price int64) *entity.Product {
	return &entity.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.NewFromInt(price),
		Category: entity.CategoryBebida,
	}
}

func TestCart_AgregarInsertaYLuegoIncrementa(t *testing.T) {
	cart := pos.NewCart()
	gaseosa := product("p1", "Gaseosa", 2500)

	cart.Add(gaseosa)
	cart.Add(gaseosa)
	cart.Add(product("p2", "Agua", 1500))

	items := cart.Items()
	require.Len(t, items, 2, "mismo producto se empareja por id, no crea línea nueva")
	assert.Equal(t, int64(2), items[0].Quantity)
	assert.Equal(t, int64(1), items[1].Quantity)
	assert.Equal(t, int64(3), cart.ItemCount())
}

func TestCart_TotalEsSumaDeSubtotales(t *testing.T) {
	cart := pos.NewCart()
	cart.Add(product("p1", "Gaseosa", 2500))
	cart.Add(product("p1", "Gaseosa", 2500))
	cart.Add(product("p2", "Empanada", 2000))

	assert.True(t, cart.Total().Equal(decimal.NewFromInt(7000)), "2×2500 + 1×2000")
}

func TestCart_DecrementarEliminaLineaEnCero(t *testing.T) {
	cart := pos.NewCart()
	cart.Add(product("p1", "Gaseosa", 2500))
	cart.Add(product("p1", "Gaseosa", 2500))

	require.True(t, cart.Decrement("p1"))
	assert.Equal(t, int64(1), cart.Items()[0].Quantity)

	require.True(t, cart.Decrement("p1"))
	assert.Empty(t, cart.Items(), "la línea en cero no se conserva")
	assert.True(t, cart.Empty())
}

func TestCart_DecrementarLineaInexistente(t *testing.T) {
	cart := pos.NewCart()
	assert.False(t, cart.Decrement("no-existe"))
}

func TestCart_ClearVaciaElCarrito(t *testing.T) {
	cart := pos.NewCart()
	cart.Add(product("p1", "Gaseosa", 2500))
	cart.Clear()

	assert.True(t, cart.Empty())
	assert.True(t, cart.Total().IsZero())
}

func TestCart_ItemsDevuelveCopia(t *testing.T) {
	cart := pos.NewCart()
	cart.Add(product("p1", "Gaseosa", 2500))

	items := cart.Items()
	items[0].Quantity = 99

	assert.Equal(t, int64(1), cart.Items()[0].Quantity,
		"mutar la copia no afecta el carrito")
}

func TestCartManager_CicloDeVida(t *testing.T) {
	m := pos.NewCartManager()

	cart := m.Create()
	require.NotNil(t, cart)
	assert.Same(t, cart, m.Get(cart.ID()))

	m.Drop(cart.ID())
	assert.Nil(t, m.Get(cart.ID()), "un carrito descartado deja de resolverse")
}
