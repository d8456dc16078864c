package sales_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-pos-api/internal/application/dto"
	"github.com/jhoicas/tienda-pos-api/internal/application/sales"
	"github.com/jhoicas/tienda-pos-api/internal/domain"
	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
	"github.com/jhoicas/tienda-pos-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newFixture(t *testing.T) (*memory.Store, *sales.SaleUseCase) {
	t.Helper()
	store := memory.NewStore()
	return store, sales.NewSaleUseCase(store.Sales(), memory.NewFeedHub())
}

func seedSale(t *testing.T, store *memory.Store, items ...entity.SaleItem) *entity.SaleRecord {
	t.Helper()
	sale := &entity.SaleRecord{ID: uuid.New().String(), Items: items}
	sale.ComputeTotal()
	require.NoError(t, store.Sales().Create(context.Background(), sale))
	return sale
}

func line(category string, price, qty int64) entity.SaleItem {
	return entity.SaleItem{
		ProductID: uuid.New().String(),
		Name:      category,
		Price:     decimal.NewFromInt(price),
		Category:  category,
		Quantity:  qty,
	}
}

func toDTO(items []entity.SaleItem) []dto.SaleItemDTO {
	out := make([]dto.SaleItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.SaleItemDTO{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Category:  it.Category,
			Quantity:  it.Quantity,
		})
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_RecalculaTotalEnServidor(t *testing.T) {
	store, uc := newFixture(t)
	sale := seedSale(t, store, line("Bebida", 2500, 2))

	edited := toDTO(sale.Items)
	edited[0].Quantity = 3

	out, err := uc.Update(context.Background(), sale.ID, dto.UpdateSaleRequest{Items: edited})
	require.NoError(t, err)

	assert.True(t, out.Total.Equal(decimal.NewFromInt(7500)),
		"el total se recalcula siempre con las líneas nuevas")
}

func TestUpdate_LineasEnCeroSeEliminan(t *testing.T) {
	store, uc := newFixture(t)
	sale := seedSale(t, store, line("Bebida", 2500, 2), line("Sal", 2000, 1))

	edited := toDTO(sale.Items)
	edited[1].Quantity = 0

	out, err := uc.Update(context.Background(), sale.ID, dto.UpdateSaleRequest{Items: edited})
	require.NoError(t, err)

	require.Len(t, out.Items, 1, "la línea en cero no se conserva")
	assert.Equal(t, "Bebida", out.Items[0].Category)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(5000)))
}

func TestUpdate_RechazaEdicionQueVaciaLaVenta(t *testing.T) {
	store, uc := newFixture(t)
	sale := seedSale(t, store, line("Bebida", 2500, 1))

	edited := toDTO(sale.Items)
	edited[0].Quantity = 0

	_, err := uc.Update(context.Background(), sale.ID, dto.UpdateSaleRequest{Items: edited})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "una venta no puede quedar sin líneas")

	// la venta original sigue intacta
	got, err := uc.GetByID(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
}

func TestUpdate_ConservaTimestampOriginal(t *testing.T) {
	store, uc := newFixture(t)
	sale := seedSale(t, store, line("Bebida", 2500, 1))

	out, err := uc.Update(context.Background(), sale.ID, dto.UpdateSaleRequest{
		Items: toDTO(sale.Items),
	})
	require.NoError(t, err)
	assert.Equal(t, sale.Timestamp, out.Timestamp,
		"editar la venta no cambia su momento de registro")
}

func TestUpdate_VentaInexistente(t *testing.T) {
	_, uc := newFixture(t)
	_, err := uc.Update(context.Background(), uuid.New().String(), dto.UpdateSaleRequest{
		Items: []dto.SaleItemDTO{{ProductID: "x", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete / listado
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_EliminaDelLibro(t *testing.T) {
	store, uc := newFixture(t)
	sale := seedSale(t, store, line("Bebida", 2500, 1))

	require.NoError(t, uc.Delete(context.Background(), sale.ID))

	_, err := uc.GetByID(context.Background(), sale.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = uc.Delete(context.Background(), sale.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "borrar dos veces reporta no encontrada")
}

func TestListRecent_MasRecientePrimero(t *testing.T) {
	store, uc := newFixture(t)
	for i := 0; i < 3; i++ {
		seedSale(t, store, line("Bebida", 1000, 1))
	}

	out, err := uc.ListRecent(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Items, 3)
	for i := 1; i < len(out.Items); i++ {
		assert.False(t, out.Items[i-1].Timestamp.Before(out.Items[i].Timestamp))
	}
}
