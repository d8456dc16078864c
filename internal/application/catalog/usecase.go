// Package catalog contiene los casos de uso CRUD del catálogo de productos.
package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-pos-api/internal/application/dto"
	"github.com/jhoicas/tienda-pos-api/internal/application/ports"
	"github.com/jhoicas/tienda-pos-api/internal/domain"
	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
	"github.com/jhoicas/tienda-pos-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos.
// Stock no se edita por aquí: lo mantiene la reconciliación de compras y ventas.
type ProductUseCase struct {
	repo repository.ProductRepository
	feed ports.ChangeFeed
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, feed ports.ChangeFeed) *ProductUseCase {
	return &ProductUseCase{repo: repo, feed: feed}
}

// Create crea un nuevo producto. El ícono se deriva de la categoría; Stock inicia en 0.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	category, err := entity.ParseCategory(in.Category)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Price:     in.Price,
		Category:  category,
		Icon:      entity.IconForCategory(category),
		Stock:     0,
		ImageURL:  strings.TrimSpace(in.ImageURL),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.feed.Publish(ctx, ports.CollectionProducts)
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza nombre, precio, categoría o imagen de un producto.
// Al cambiar la categoría se re-deriva el ícono, igual que al crear.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Category != nil {
		category, err := entity.ParseCategory(*in.Category)
		if err != nil {
			return nil, err
		}
		product.Category = category
		product.Icon = entity.IconForCategory(category)
	}
	if in.ImageURL != nil {
		product.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.feed.Publish(ctx, ports.CollectionProducts)
	return toProductResponse(product), nil
}

// List devuelve el catálogo completo (la tienda maneja decenas de productos).
func (uc *ProductUseCase) List(ctx context.Context) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items}, nil
}

// Delete elimina un producto del catálogo.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.feed.Publish(ctx, ports.CollectionProducts)
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Category:  p.Category,
		Icon:      p.Icon,
		Stock:     p.Stock,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
