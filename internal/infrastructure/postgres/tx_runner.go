package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/tienda-pos-api/internal/application/inventory"
	"github.com/jhoicas/tienda-pos-api/internal/application/pos"
	"github.com/jhoicas/tienda-pos-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner = (*PurchaseTxRunner)(nil)
	_ pos.TxRunner       = (*SaleTxRunner)(nil)
)

// PurchaseTxRunner corre registro/edición de compras y los ajustes de stock
// asociados dentro de una sola transacción.
type PurchaseTxRunner struct {
	pool *pgxpool.Pool
}

// NewPurchaseTxRunner construye el runner sobre el pool compartido.
func NewPurchaseTxRunner(pool *pgxpool.Pool) *PurchaseTxRunner {
	return &PurchaseTxRunner{pool: pool}
}

// Run abre la transacción, pasa repositorios atados a ella y confirma solo
// si fn retorna nil. Cualquier error revierte todo.
func (r *PurchaseTxRunner) Run(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(NewPurchaseRepository(tx), NewProductRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// SaleTxRunner corre la confirmación de una venta (registro + descuento de
// stock por línea) dentro de una sola transacción.
type SaleTxRunner struct {
	pool *pgxpool.Pool
}

// NewSaleTxRunner construye el runner sobre el pool compartido.
func NewSaleTxRunner(pool *pgxpool.Pool) *SaleTxRunner {
	return &SaleTxRunner{pool: pool}
}

func (r *SaleTxRunner) Run(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(NewSaleRepository(tx), NewProductRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
