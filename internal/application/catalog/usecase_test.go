package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-pos-api/internal/application/catalog"
	"github.com/jhoicas/tienda-pos-api/internal/application/dto"
	"github.com/jhoicas/tienda-pos-api/internal/domain"
	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
	"github.com/jhoicas/tienda-pos-api/internal/infrastructure/memory"
)

func newUC(t *testing.T) *catalog.ProductUseCase {
	t.Helper()
	store := memory.NewStore()
	return catalog.NewProductUseCase(store.Products(), memory.NewFeedHub())
}

func strPtr(s string) *string { return &s }

func TestCreate_DerivaIconoYArrancaSinStock(t *testing.T) {
	uc := newUC(t)

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:     "Gaseosa",
		Price:    decimal.NewFromInt(2500),
		Category: entity.CategoryBebida,
	})
	require.NoError(t, err)

	assert.Equal(t, "CupSoda", out.Icon, "el icono se deriva de la categoría")
	assert.Zero(t, out.Stock, "el stock inicial siempre es cero; entra por compras")
	assert.NotEmpty(t, out.ID)
}

func TestCreate_IconoPorCategoria(t *testing.T) {
	uc := newUC(t)

	cases := []struct {
		category string
		icon     string
	}{
		{entity.CategoryBebida, "CupSoda"},
		{entity.CategoryDulces, "IceCream"},
		{entity.CategoryMecato, "Utensils"},
		{entity.CategorySal, "Utensils"},
		{entity.CategoryUtiles, "Utensils"},
	}
	for _, tc := range cases {
		out, err := uc.Create(context.Background(), dto.CreateProductRequest{
			Name:     "X " + tc.category,
			Price:    decimal.NewFromInt(1000),
			Category: tc.category,
		})
		require.NoError(t, err, tc.category)
		assert.Equal(t, tc.icon, out.Icon, tc.category)
	}
}

func TestCreate_RechazaCategoriaDesconocida(t *testing.T) {
	uc := newUC(t)

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:     "Cerveza",
		Price:    decimal.NewFromInt(4000),
		Category: "Licores",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory,
		"el conjunto de categorías es cerrado")
}

func TestUpdate_CambioDeCategoriaRederivaIcono(t *testing.T) {
	uc := newUC(t)

	created, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:     "Chocolate Jet",
		Price:    decimal.NewFromInt(1500),
		Category: entity.CategoryMecato,
	})
	require.NoError(t, err)
	require.Equal(t, "Utensils", created.Icon)

	out, err := uc.Update(context.Background(), created.ID, dto.UpdateProductRequest{
		Category: strPtr(entity.CategoryDulces),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.CategoryDulces, out.Category)
	assert.Equal(t, "IceCream", out.Icon, "cambiar la categoría re-deriva el icono")
	assert.Equal(t, "Chocolate Jet", out.Name, "los campos no enviados se conservan")
}

func TestUpdate_ProductoInexistente(t *testing.T) {
	uc := newUC(t)
	_, err := uc.Update(context.Background(), "no-existe", dto.UpdateProductRequest{
		Name: strPtr("Otro"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_SacaDelCatalogo(t *testing.T) {
	uc := newUC(t)

	created, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:     "Menta",
		Price:    decimal.NewFromInt(200),
		Category: entity.CategoryDulces,
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), created.ID))

	_, err = uc.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}
