package inventory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-pos-api/internal/application/dto"
	"github.com/jhoicas/tienda-pos-api/internal/application/inventory"
	"github.com/jhoicas/tienda-pos-api/internal/domain"
	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
	"github.com/jhoicas/tienda-pos-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store *memory.Store
	uc    *inventory.PurchaseUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	uc := inventory.NewPurchaseUseCase(
		store.PurchaseTx(), store.Purchases(), store.Products(), memory.NewFeedHub(),
	)
	return &fixture{store: store, uc: uc}
}

func (f *fixture) addProduct(t *testing.T, name string, stock int64) string {
	t.Helper()
	p := &entity.Product{
		ID:       uuid.New().String(),
		Name:     name,
		Price:    decimal.NewFromInt(2500),
		Category: entity.CategoryBebida,
		Stock:    stock,
	}
	require.NoError(t, f.store.Products().Create(context.Background(), p))
	return p.ID
}

func (f *fixture) stockOf(t *testing.T, id string) int64 {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_IncrementaStockYDerivaTotal(t *testing.T) {
	f := newFixture(t)
	id := f.addProduct(t, "Gaseosa", 5)

	out, err := f.uc.Register(context.Background(), dto.RegisterPurchaseRequest{
		ProductID: id,
		Date:      "2026-08-15",
		Quantity:  12,
		UnitCost:  decimal.NewFromInt(1800),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(17), f.stockOf(t, id), "el stock sube en la cantidad comprada")
	assert.True(t, out.TotalCost.Equal(decimal.NewFromInt(21600)), "total = cantidad × costo unitario")
	assert.Equal(t, "Gaseosa", out.Name, "la entrada guarda el snapshot del nombre")
	assert.False(t, out.Timestamp.IsZero(), "el store asigna el timestamp al crear")
}

func TestRegister_RechazaCantidadNoPositiva(t *testing.T) {
	f := newFixture(t)
	id := f.addProduct(t, "Agua", 3)

	_, err := f.uc.Register(context.Background(), dto.RegisterPurchaseRequest{
		ProductID: id,
		Quantity:  0,
		UnitCost:  decimal.NewFromInt(1000),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(3), f.stockOf(t, id), "el rechazo ocurre antes de cualquier escritura")
}

func TestRegister_RechazaCostoNoPositivo(t *testing.T) {
	f := newFixture(t)
	id := f.addProduct(t, "Agua", 3)

	_, err := f.uc.Register(context.Background(), dto.RegisterPurchaseRequest{
		ProductID: id,
		Quantity:  5,
		UnitCost:  decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := f.uc.ListRecent(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list.Items, "no queda ninguna entrada en el libro")
}

func TestRegister_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Register(context.Background(), dto.RegisterPurchaseRequest{
		ProductID: uuid.New().String(),
		Quantity:  1,
		UnitCost:  decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update: reconciliación de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_MismoProductoAplicaDelta(t *testing.T) {
	f := newFixture(t)
	id := f.addProduct(t, "Café", 0)

	out, err := f.uc.Register(context.Background(), dto.RegisterPurchaseRequest{
		ProductID: id, Quantity: 10, UnitCost: decimal.NewFromInt(800),
	})
	require.NoError(t, err)
	require.Equal(t, int64(10), f.stockOf(t, id))

	// 10 → 4: delta -6
	updated, err := f.uc.Update(context.Background(), out.ID, dto.UpdatePurchaseRequest{
		ProductID: id, Quantity: 4, UnitCost: decimal.NewFromInt(800),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4), f.stockOf(t, id), "el stock refleja nuevaCantidad - viejaCantidad")
	assert.True(t, updated.TotalCost.Equal(decimal.NewFromInt(3200)))
}

func TestUpdate_DeltaCeroNoTocaStock(t *testing.T) {
	f := newFixture(t)
	id := f.addProduct(t, "Té", 0)

	out, err := f.uc.Register(context.Background(), dto.RegisterPurchaseRequest{
		ProductID: id, Quantity: 7, UnitCost: decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	// misma cantidad, solo cambia el costo
	_, err = f.uc.Update(context.Background(), out.ID, dto.UpdatePurchaseRequest{
		ProductID: id, Quantity: 7, UnitCost: decimal.NewFromInt(650),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), f.stockOf(t, id), "delta cero es un no-op sobre el stock")
}

func TestUpdate_ReapuntarProductoBalanceaAmbosStocks(t *testing.T) {
	f := newFixture(t)
	oldID := f.addProduct(t, "Empanada", 0)
	newID := f.addProduct(t, "Dedito", 0)

	out, err := f.uc.Register(context.Background(), dto.RegisterPurchaseRequest{
		ProductID: oldID, Quantity: 8, UnitCost: decimal.NewFromInt(1200),
	})
	require.NoError(t, err)
	require.Equal(t, int64(8), f.stockOf(t, oldID))

	updated, err := f.uc.Update(context.Background(), out.ID, dto.UpdatePurchaseRequest{
		ProductID: newID, Quantity: 5, UnitCost: decimal.NewFromInt(1200),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), f.stockOf(t, oldID), "el producto anterior revierte -viejaCantidad")
	assert.Equal(t, int64(5), f.stockOf(t, newID), "el nuevo producto recibe +nuevaCantidad")
	assert.Equal(t, "Dedito", updated.Name, "el snapshot del nombre se actualiza al re-apuntar")
}

func TestUpdate_CompraInexistente(t *testing.T) {
	f := newFixture(t)
	id := f.addProduct(t, "Pan", 0)

	_, err := f.uc.Update(context.Background(), uuid.New().String(), dto.UpdatePurchaseRequest{
		ProductID: id, Quantity: 1, UnitCost: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListRecent_MasRecientePrimeroYLimitado(t *testing.T) {
	f := newFixture(t)
	id := f.addProduct(t, "Yupi", 0)

	for i := 0; i < 12; i++ {
		_, err := f.uc.Register(context.Background(), dto.RegisterPurchaseRequest{
			ProductID: id, Quantity: 1, UnitCost: decimal.NewFromInt(100),
		})
		require.NoError(t, err)
	}

	list, err := f.uc.ListRecent(context.Background())
	require.NoError(t, err)
	assert.Len(t, list.Items, 10, "el listado se limita a las últimas diez compras")
	for i := 1; i < len(list.Items); i++ {
		assert.False(t, list.Items[i-1].Timestamp.Before(list.Items[i].Timestamp),
			"el orden es descendente por timestamp")
	}
}
