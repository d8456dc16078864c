package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-pos-api/internal/application/dto"
	"github.com/jhoicas/tienda-pos-api/internal/application/pos"
	"github.com/jhoicas/tienda-pos-api/internal/domain"
)

// POSHandler maneja los carritos del punto de venta y la confirmación
// de ventas (protegido).
type POSHandler struct {
	carts *pos.CartManager
	uc    *pos.ConfirmSaleUseCase
}

// NewPOSHandler construye el handler.
func NewPOSHandler(carts *pos.CartManager, uc *pos.ConfirmSaleUseCase) *POSHandler {
	return &POSHandler{carts: carts, uc: uc}
}

// CreateCart godoc
// @Summary      Abrir un carrito nuevo
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.CartResponse
// @Router       /api/pos/carts [post]
func (h *POSHandler) CreateCart(c *fiber.Ctx) error {
	cart := h.carts.Create()
	return c.Status(fiber.StatusCreated).JSON(pos.ToCartResponse(cart))
}

// GetCart godoc
// @Summary      Estado actual del carrito
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del carrito"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pos/carts/{id} [get]
func (h *POSHandler) GetCart(c *fiber.Ctx) error {
	cart := h.carts.Get(c.Params("id"))
	if cart == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "CART_NOT_FOUND", Message: "carrito no encontrado"})
	}
	return c.JSON(pos.ToCartResponse(cart))
}

// AddItem godoc
// @Summary      Agregar un producto al carrito
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del carrito"
// @Param        body  body  dto.CartItemRequest  true  "product_id"
// @Success      200   {object}  dto.CartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pos/carts/{id}/items [post]
func (h *POSHandler) AddItem(c *fiber.Ctx) error {
	cart := h.carts.Get(c.Params("id"))
	if cart == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "CART_NOT_FOUND", Message: "carrito no encontrado"})
	}
	var in dto.CartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	if err := h.uc.AddProduct(c.UserContext(), cart, in.ProductID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: "el producto no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(pos.ToCartResponse(cart))
}

// RemoveItem godoc
// @Summary      Restar una unidad de una línea del carrito
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Param        id         path  string  true  "ID del carrito"
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pos/carts/{id}/items/{productId} [delete]
func (h *POSHandler) RemoveItem(c *fiber.Ctx) error {
	cart := h.carts.Get(c.Params("id"))
	if cart == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "CART_NOT_FOUND", Message: "carrito no encontrado"})
	}
	if !cart.Decrement(c.Params("productId")) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ITEM_NOT_FOUND", Message: "el producto no está en el carrito"})
	}
	return c.JSON(pos.ToCartResponse(cart))
}

// DropCart godoc
// @Summary      Descartar el carrito
// @Tags         pos
// @Security     Bearer
// @Param        id  path  string  true  "ID del carrito"
// @Success      204
// @Router       /api/pos/carts/{id} [delete]
func (h *POSHandler) DropCart(c *fiber.Ctx) error {
	h.carts.Drop(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

// Confirm godoc
// @Summary      Confirmar la venta del carrito
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del carrito"
// @Success      201  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/pos/carts/{id}/confirm [post]
func (h *POSHandler) Confirm(c *fiber.Ctx) error {
	cart := h.carts.Get(c.Params("id"))
	if cart == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "CART_NOT_FOUND", Message: "carrito no encontrado"})
	}
	out, err := h.uc.Confirm(c.UserContext(), cart)
	if err != nil {
		if errors.Is(err, domain.ErrConfirmInFlight) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFIRM_IN_FLIGHT", Message: "ya hay una confirmación en curso para este carrito"})
		}
		if errors.Is(err, domain.ErrEmptyCart) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "EMPTY_CART", Message: "el carrito está vacío"})
		}
		// El carrito conserva su contenido; el cajero puede reintentar.
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "CONFIRM_FAILED", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
