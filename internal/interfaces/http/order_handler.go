package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/orders"
	"github.com/jhoicas/pos-backoffice/internal/domain"
)

// idempotencyScope agrupa las llaves de idempotencia del checkout.
const idempotencyScope = "orders:create"

// OrderHandler maneja las peticiones HTTP del motor de órdenes (protegido).
type OrderHandler struct {
	uc   *orders.OrderUseCase
	idem orders.IdempotencyStore // nil si Redis está deshabilitado
}

// NewOrderHandler construye el handler. idem puede ser nil.
func NewOrderHandler(uc *orders.OrderUseCase, idem orders.IdempotencyStore) *OrderHandler {
	return &OrderHandler{uc: uc, idem: idem}
}

// Create crea una orden y descuenta stock de forma atómica.
// Acepta un header opcional Idempotency-Key para reintentos seguros.
// POST /api/orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	shopID := GetShopID(c)
	userID := GetUserID(c)
	if shopID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	idemKey := c.Get("Idempotency-Key")
	if idemKey != "" && h.idem != nil {
		// Si la llave ya tiene una orden asociada, devolverla sin crear otra.
		if orderID, ok, err := h.idem.Recall(c.Context(), idempotencyScope, shopID+":"+idemKey); err == nil && ok {
			existing, gerr := h.uc.GetOrder(c.Context(), shopID, orderID)
			if gerr == nil {
				return c.Status(fiber.StatusOK).JSON(existing)
			}
		}
		locked, err := h.idem.TryLock(c.Context(), idempotencyScope, shopID+":"+idemKey)
		if err == nil && !locked {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_REQUEST", Message: "una petición con esta llave ya está en curso"})
		}
	}

	order, err := h.uc.CreateOrder(c.Context(), shopID, userID, in)
	if err != nil {
		return orderError(c, err)
	}
	if idemKey != "" && h.idem != nil {
		// Best effort: si Redis falla aquí la orden ya existe igual.
		_ = h.idem.Remember(c.Context(), idempotencyScope, shopID+":"+idemKey, order.ID)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// GetByID obtiene una orden con sus líneas.
// GET /api/orders/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	shopID := GetShopID(c)
	if shopID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	order, err := h.uc.GetOrder(c.Context(), shopID, id)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(order)
}

// List lista las ventas de la tienda con paginación y filtro de fechas.
// El rol staff solo ve la ventana del día actual.
// GET /api/orders
func (h *OrderHandler) List(c *fiber.Ctx) error {
	shopID := GetShopID(c)
	role := GetRole(c)
	if shopID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ListOrdersRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
	}
	page, err := h.uc.ListOrders(c.Context(), shopID, role, in)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(page)
}

// Cancel cancela una orden completada y repone el stock descontado.
// POST /api/orders/:id/cancel
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	shopID := GetShopID(c)
	if shopID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	if _, err := h.uc.CancelOrder(c.Context(), shopID, id); err != nil {
		return orderError(c, err)
	}
	return c.JSON(fiber.Map{"id": id, "status": "Cancelled"})
}

// orderError traduce los errores centinela del motor a códigos HTTP.
func orderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrOrderCancelled):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_CANCELLED", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
