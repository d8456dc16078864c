// Package sales contiene la gestión de ventas ya confirmadas (listado,
// edición de líneas y eliminación).
package sales

import (
	"context"

	"github.com/jhoicas/tienda-pos-api/internal/application/dto"
	"github.com/jhoicas/tienda-pos-api/internal/application/ports"
	"github.com/jhoicas/tienda-pos-api/internal/application/pos"
	"github.com/jhoicas/tienda-pos-api/internal/domain"
	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
	"github.com/jhoicas/tienda-pos-api/internal/domain/repository"
)

const recentSalesLimit = 100

// SaleUseCase casos de uso sobre el libro de ventas.
// Editar o eliminar una venta no reajusta stock: solo cambia el registro.
// Cualquier corrección de inventario se hace por el módulo de compras.
type SaleUseCase struct {
	repo repository.SaleRepository
	feed ports.ChangeFeed
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(repo repository.SaleRepository, feed ports.ChangeFeed) *SaleUseCase {
	return &SaleUseCase{repo: repo, feed: feed}
}

// ListRecent devuelve las últimas ventas, más reciente primero.
func (uc *SaleUseCase) ListRecent(ctx context.Context) (*dto.SaleListResponse, error) {
	list, err := uc.repo.ListRecent(ctx, recentSalesLimit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *pos.ToSaleResponse(s))
	}
	return &dto.SaleListResponse{Items: items}, nil
}

// GetByID obtiene una venta por ID.
func (uc *SaleUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return pos.ToSaleResponse(sale), nil
}

// Update reemplaza las líneas de una venta. Las líneas con cantidad cero o
// negativa se eliminan (nunca se conservan en cero) y el total se recalcula
// en el servidor. Una edición que deja la venta sin líneas se rechaza.
func (uc *SaleUseCase) Update(ctx context.Context, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	sale, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}

	items := make([]entity.SaleItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			continue
		}
		items = append(items, entity.SaleItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Category:  it.Category,
			Quantity:  it.Quantity,
		})
	}
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	sale.Items = items
	sale.ComputeTotal()
	if err := uc.repo.Update(ctx, sale); err != nil {
		return nil, err
	}
	uc.feed.Publish(ctx, ports.CollectionSales)
	return pos.ToSaleResponse(sale), nil
}

// Delete elimina una venta del libro.
func (uc *SaleUseCase) Delete(ctx context.Context, id string) error {
	sale, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.feed.Publish(ctx, ports.CollectionSales)
	return nil
}
