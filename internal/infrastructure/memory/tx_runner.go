package memory

import (
	"context"

	"github.com/jhoicas/tienda-pos-api/internal/application/inventory"
	"github.com/jhoicas/tienda-pos-api/internal/application/pos"
	"github.com/jhoicas/tienda-pos-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.PurchaseRepository = (*PurchaseRepo)(nil)
	_ repository.SaleRepository     = (*SaleRepo)(nil)
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ inventory.TxRunner            = (*PurchaseTxRunner)(nil)
	_ pos.TxRunner                  = (*SaleTxRunner)(nil)
)

// journal acumula la operación inversa de cada escritura hecha dentro de
// una transacción. Si fn falla se aplican en orden inverso, revirtiendo
// solo las claves que la transacción tocó; las escrituras concurrentes
// ajenas a la transacción no se ven afectadas.
type journal struct {
	undos []func()
}

func (j *journal) record(undo func()) {
	j.undos = append(j.undos, undo)
}

// revert requiere s.mu tomado por el llamador.
func (j *journal) revert() {
	for i := len(j.undos) - 1; i >= 0; i-- {
		j.undos[i]()
	}
}

func (s *Store) runTx(fn func(j *journal) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	j := &journal{}
	if err := fn(j); err != nil {
		s.mu.Lock()
		j.revert()
		s.mu.Unlock()
		return err
	}
	return nil
}

// PurchaseTxRunner serializa las transacciones de compras bajo txMu y
// revierte las escrituras de la transacción cuando fn falla.
type PurchaseTxRunner struct{ s *Store }

// PurchaseTx devuelve el runner de transacciones de compras.
func (s *Store) PurchaseTx() *PurchaseTxRunner { return &PurchaseTxRunner{s: s} }

func (r *PurchaseTxRunner) Run(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.s.runTx(func(j *journal) error {
		return fn(&PurchaseRepo{s: r.s, j: j}, &ProductRepo{s: r.s, j: j})
	})
}

// SaleTxRunner serializa las transacciones de ventas bajo txMu y revierte
// las escrituras de la transacción cuando fn falla.
type SaleTxRunner struct{ s *Store }

// SaleTx devuelve el runner de transacciones de ventas.
func (s *Store) SaleTx() *SaleTxRunner { return &SaleTxRunner{s: s} }

func (r *SaleTxRunner) Run(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.s.runTx(func(j *journal) error {
		return fn(&SaleRepo{s: r.s, j: j}, &ProductRepo{s: r.s, j: j})
	})
}
