// Package inventory contiene el libro de compras y la reconciliación de stock.
//
// La reconciliación mantiene una identidad contable: la suma de todos los
// ajustes de stock aplicados para un producto, en orden de envío, es igual a
// la suma de cantidades de las entradas de compra vigentes para ese producto,
// sin importar cuántas veces se haya editado cada entrada.
package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-pos-api/internal/application/dto"
	"github.com/jhoicas/tienda-pos-api/internal/application/ports"
	"github.com/jhoicas/tienda-pos-api/internal/domain"
	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
	"github.com/jhoicas/tienda-pos-api/internal/domain/repository"
)

const recentPurchasesLimit = 10

// PurchaseUseCase registra y edita compras de insumos, ajustando el stock
// del producto afectado dentro de la misma transacción.
type PurchaseUseCase struct {
	txRunner     TxRunner
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	feed         ports.ChangeFeed
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	txRunner TxRunner,
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	feed ports.ChangeFeed,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:     txRunner,
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		feed:         feed,
	}
}

// Register registra una compra nueva: persiste la entrada con TotalCost
// derivado e incrementa el stock del producto en Quantity.
// Cantidad o costo no positivos se rechazan antes de cualquier escritura.
func (uc *PurchaseUseCase) Register(ctx context.Context, in dto.RegisterPurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.ProductID == "" || in.Quantity <= 0 || !in.UnitCost.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	date := in.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	entry := &entity.PurchaseEntry{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Name:      product.Name, // snapshot desnormalizado
		Date:      date,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
	}
	entry.ComputeTotal()

	err = uc.txRunner.Run(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := purchaseRepo.Create(ctx, entry); err != nil {
			return err
		}
		return productRepo.IncrementStock(ctx, entry.ProductID, entry.Quantity)
	})
	if err != nil {
		return nil, err
	}

	uc.feed.Publish(ctx, ports.CollectionPurchases)
	uc.feed.Publish(ctx, ports.CollectionProducts)
	return toPurchaseResponse(entry), nil
}

// Update edita una compra existente y reconcilia el stock:
//
//   - mismo producto: aplica el delta con signo (nuevaCantidad - viejaCantidad);
//     delta cero no escribe stock (no-op idempotente);
//   - producto re-apuntado: revierte -viejaCantidad en el producto anterior y
//     aplica +nuevaCantidad en el nuevo, dentro de la misma transacción.
func (uc *PurchaseUseCase) Update(ctx context.Context, id string, in dto.UpdatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.ProductID == "" || in.Quantity <= 0 || !in.UnitCost.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	old, err := uc.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if old == nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	entry := &entity.PurchaseEntry{
		ID:        old.ID,
		ProductID: in.ProductID,
		Name:      product.Name,
		Date:      in.Date,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		Timestamp: old.Timestamp,
	}
	if entry.Date == "" {
		entry.Date = old.Date
	}
	entry.ComputeTotal()

	err = uc.txRunner.Run(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := purchaseRepo.Update(ctx, entry); err != nil {
			return err
		}
		if old.ProductID == entry.ProductID {
			delta := entry.Quantity - old.Quantity
			if delta == 0 {
				return nil
			}
			return productRepo.IncrementStock(ctx, entry.ProductID, delta)
		}
		// Producto re-apuntado: dos ajustes balanceados (-vieja, +nueva).
		if old.ProductID != "" {
			if err := productRepo.IncrementStock(ctx, old.ProductID, -old.Quantity); err != nil {
				return err
			}
		}
		return productRepo.IncrementStock(ctx, entry.ProductID, entry.Quantity)
	})
	if err != nil {
		return nil, err
	}

	uc.feed.Publish(ctx, ports.CollectionPurchases)
	uc.feed.Publish(ctx, ports.CollectionProducts)
	return toPurchaseResponse(entry), nil
}

// ListRecent devuelve las últimas compras, más reciente primero.
func (uc *PurchaseUseCase) ListRecent(ctx context.Context) (*dto.PurchaseListResponse, error) {
	list, err := uc.purchaseRepo.ListRecent(ctx, recentPurchasesLimit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toPurchaseResponse(e))
	}
	return &dto.PurchaseListResponse{Items: items}, nil
}

func toPurchaseResponse(e *entity.PurchaseEntry) *dto.PurchaseResponse {
	if e == nil {
		return nil
	}
	return &dto.PurchaseResponse{
		ID:        e.ID,
		ProductID: e.ProductID,
		Name:      e.Name,
		Date:      e.Date,
		Quantity:  e.Quantity,
		UnitCost:  e.UnitCost,
		TotalCost: e.TotalCost,
		Timestamp: e.Timestamp,
	}
}
