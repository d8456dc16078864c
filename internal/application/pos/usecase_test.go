package pos_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-pos-api/internal/application/pos"
	"github.com/jhoicas/tienda-pos-api/internal/domain"
	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
	"github.com/jhoicas/tienda-pos-api/internal/domain/repository"
	"github.com/jhoicas/tienda-pos-api/internal/infrastructure/memory"
)

const testConfirmTimeout = 10 * time.Second

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type confirmFixture struct {
	store *memory.Store
	uc    *pos.ConfirmSaleUseCase
}

func newConfirmFixture(t *testing.T) *confirmFixture {
	t.Helper()
	store := memory.NewStore()
	uc := pos.NewConfirmSaleUseCase(
		store.SaleTx(), store.Products(), memory.NewFeedHub(), testConfirmTimeout,
	)
	return &confirmFixture{store: store, uc: uc}
}

func (f *confirmFixture) addProduct(t *testing.T, name string, price, stock int64) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:       uuid.New().String(),
		Name:     name,
		Price:    decimal.NewFromInt(price),
		Category: entity.CategoryBebida,
		Stock:    stock,
	}
	require.NoError(t, f.store.Products().Create(context.Background(), p))
	return p
}

func (f *confirmFixture) stockOf(t *testing.T, id string) int64 {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

// ──────────────────────────────────────────────────────────────────────────────
// Confirm
// ──────────────────────────────────────────────────────────────────────────────

func TestConfirm_PersisteVentaDescuentaStockYVaciaCarrito(t *testing.T) {
	f := newConfirmFixture(t)
	gaseosa := f.addProduct(t, "Gaseosa", 2500, 10)
	empanada := f.addProduct(t, "Empanada", 2000, 4)

	cart := pos.NewCart()
	require.NoError(t, f.uc.AddProduct(context.Background(), cart, gaseosa.ID))
	require.NoError(t, f.uc.AddProduct(context.Background(), cart, gaseosa.ID))
	require.NoError(t, f.uc.AddProduct(context.Background(), cart, empanada.ID))

	out, err := f.uc.Confirm(context.Background(), cart)
	require.NoError(t, err)

	assert.True(t, out.Total.Equal(decimal.NewFromInt(7000)), "total = 2×2500 + 1×2000")
	assert.False(t, out.Timestamp.IsZero())
	assert.Equal(t, int64(8), f.stockOf(t, gaseosa.ID), "stock descontado por línea")
	assert.Equal(t, int64(3), f.stockOf(t, empanada.ID))
	assert.True(t, cart.Empty(), "el carrito queda vacío tras el éxito")

	persisted, err := f.store.Sales().GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	require.NotNil(t, persisted, "la venta quedó en el libro")
	assert.Len(t, persisted.Items, 2)
}

func TestConfirm_CarritoVacio(t *testing.T) {
	f := newConfirmFixture(t)
	cart := pos.NewCart()

	_, err := f.uc.Confirm(context.Background(), cart)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

// Si la escritura falla a mitad de camino, nada queda persistido y el carrito
// conserva sus líneas para reintentar.
func TestConfirm_FalloConservaCarritoYNoPersisteNada(t *testing.T) {
	f := newConfirmFixture(t)
	gaseosa := f.addProduct(t, "Gaseosa", 2500, 10)

	cart := pos.NewCart()
	require.NoError(t, f.uc.AddProduct(context.Background(), cart, gaseosa.ID))
	// línea de un producto que ya no existe en el catálogo
	cart.Add(&entity.Product{
		ID:       uuid.New().String(),
		Name:     "Fantasma",
		Price:    decimal.NewFromInt(1000),
		Category: entity.CategoryMecato,
	})

	_, err := f.uc.Confirm(context.Background(), cart)
	require.Error(t, err)

	assert.Len(t, cart.Items(), 2, "el carrito conserva su contenido tras el fallo")
	assert.Equal(t, int64(10), f.stockOf(t, gaseosa.ID), "el descuento parcial se revierte")

	sales, err := f.store.Sales().ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, sales, "la venta no quedó en el libro")
}

// ──────────────────────────────────────────────────────────────────────────────
// Latch de doble-submit
// ──────────────────────────────────────────────────────────────────────────────

// blockingTxRunner bloquea la transacción hasta que el test la libere,
// dejando la primera confirmación "en vuelo".
type blockingTxRunner struct {
	started chan struct{}
	release chan struct{}
}

func (r *blockingTxRunner) Run(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
) error) error {
	close(r.started)
	<-r.release
	return nil
}

func TestConfirm_SegundoSubmitConcurrenteRecibeConflicto(t *testing.T) {
	f := newConfirmFixture(t)
	gaseosa := f.addProduct(t, "Gaseosa", 2500, 10)

	runner := &blockingTxRunner{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	uc := pos.NewConfirmSaleUseCase(runner, f.store.Products(), memory.NewFeedHub(), testConfirmTimeout)

	cart := pos.NewCart()
	require.NoError(t, uc.AddProduct(context.Background(), cart, gaseosa.ID))

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = uc.Confirm(context.Background(), cart)
	}()

	<-runner.started // la primera confirmación está dentro de la transacción
	_, secondErr := uc.Confirm(context.Background(), cart)
	assert.ErrorIs(t, secondErr, domain.ErrConfirmInFlight,
		"el doble-submit del mismo carrito se rechaza con conflicto")

	close(runner.release)
	wg.Wait()
	require.NoError(t, firstErr, "la primera confirmación termina normalmente")
}
