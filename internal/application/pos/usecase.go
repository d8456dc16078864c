package pos

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

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de ventas y productos atados a esa tx. La venta y los
// descuentos de stock por línea se confirman o revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ConfirmSaleUseCase persiste la venta compuesta en un carrito y descuenta
// el stock de cada línea. La escritura completa corre contra un timeout fijo;
// si vence, la operación se reporta como fallida y el carrito queda intacto.
type ConfirmSaleUseCase struct {
	txRunner       TxRunner
	productRepo    repository.ProductRepository
	feed           ports.ChangeFeed
	confirmTimeout time.Duration
}

// NewConfirmSaleUseCase construye el caso de uso.
func NewConfirmSaleUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	feed ports.ChangeFeed,
	confirmTimeout time.Duration,
) *ConfirmSaleUseCase {
	return &ConfirmSaleUseCase{
		txRunner:       txRunner,
		productRepo:    productRepo,
		feed:           feed,
		confirmTimeout: confirmTimeout,
	}
}

// AddProduct busca el producto y lo agrega al carrito.
func (uc *ConfirmSaleUseCase) AddProduct(ctx context.Context, cart *Cart, productID string) error {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	cart.Add(product)
	return nil
}

// Confirm persiste la venta y descuenta stock por línea.
//
// El latch del carrito garantiza a lo sumo una confirmación en vuelo; un
// segundo submit concurrente recibe ErrConfirmInFlight. En éxito el carrito
// se vacía; en fallo (incluido timeout) conserva su contenido para reintento.
func (uc *ConfirmSaleUseCase) Confirm(ctx context.Context, cart *Cart) (*dto.SaleResponse, error) {
	if !cart.beginConfirm() {
		return nil, domain.ErrConfirmInFlight
	}
	defer cart.endConfirm()

	items := cart.Items()
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	sale := &entity.SaleRecord{
		ID:    uuid.New().String(),
		Items: items,
	}
	sale.ComputeTotal()

	ctx, cancel := context.WithTimeout(ctx, uc.confirmTimeout)
	defer cancel()

	err := uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		for _, it := range sale.Items {
			if err := productRepo.IncrementStock(ctx, it.ProductID, -it.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// El carrito queda en composición con su contenido intacto.
		return nil, err
	}

	cart.Clear()
	uc.feed.Publish(ctx, ports.CollectionSales)
	uc.feed.Publish(ctx, ports.CollectionProducts)
	return ToSaleResponse(sale), nil
}

// ToCartResponse arma el DTO del estado actual del carrito.
func ToCartResponse(cart *Cart) *dto.CartResponse {
	items := cart.Items()
	dtoItems := make([]dto.SaleItemDTO, 0, len(items))
	for _, it := range items {
		dtoItems = append(dtoItems, dto.SaleItemDTO{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Category:  it.Category,
			Quantity:  it.Quantity,
		})
	}
	return &dto.CartResponse{
		ID:        cart.ID(),
		Items:     dtoItems,
		Total:     cart.Total(),
		ItemCount: cart.ItemCount(),
	}
}

// ToSaleResponse arma el DTO de una venta persistida.
func ToSaleResponse(s *entity.SaleRecord) *dto.SaleResponse {
	items := make([]dto.SaleItemDTO, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemDTO{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Category:  it.Category,
			Quantity:  it.Quantity,
		})
	}
	return &dto.SaleResponse{
		ID:        s.ID,
		Items:     items,
		Total:     s.Total,
		Timestamp: s.Timestamp,
	}
}
