package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
	"github.com/jhoicas/pos-backoffice/pkg/metrics"
)

// OrderUseCase implementa el motor de órdenes: creación transaccional con
// decremento de stock, cancelación compensatoria y consulta de ventas.
type OrderUseCase struct {
	txRunner    TxRunner
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	met         *metrics.OrderMetrics
}

// NewOrderUseCase construye el caso de uso. orderRepo y productRepo van
// atados al pool (solo lecturas); las escrituras pasan por txRunner.
// met puede ser nil (tests).
func NewOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	met *metrics.OrderMetrics,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:    txRunner,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		met:         met,
	}
}

// CreateOrder es la única ruta que crea órdenes de forma durable.
// Dentro de una transacción: por cada línea bloquea la fila del producto
// (SELECT FOR UPDATE), valida stock suficiente, descuenta y congela el
// precio unitario; luego persiste cabecera y líneas. Cualquier error hace
// rollback completo: nunca queda un decremento parcial ni una orden a medias.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, shopID, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	started := time.Now()

	// Validación de entrada, antes de tocar la BD
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la orden no tiene líneas", domain.ErrInvalidInput)
	}
	if in.Discount.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: descuento negativo", domain.ErrInvalidInput)
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: línea con producto o cantidad inválida", domain.ErrInvalidInput)
		}
	}

	now := time.Now().UTC()
	order := &entity.Order{
		ID:        uuid.New().String(),
		ShopID:    shopID,
		UserID:    userID,
		OrderDate: now,
		Discount:  in.Discount,
		Status:    entity.OrderStatusCompleted,
		CreatedAt: now,
		UpdatedAt: now,
	}
	var items []*entity.OrderItem

	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
	) error {
		total := decimal.Zero
		items = items[:0] // por si el runner reintenta
		for _, line := range in.Items {
			// Bloquea la fila: dos checkouts concurrentes sobre el mismo
			// producto se serializan aquí y no pueden pasar ambos la
			// validación de suficiencia.
			product, err := productRepo.GetForUpdate(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, line.ProductID)
			}
			if product.ShopID != shopID {
				return domain.ErrForbidden
			}
			if product.Quantity < line.Quantity {
				if uc.met != nil {
					uc.met.InsufficientStock.Inc()
				}
				return fmt.Errorf("%w para %s", domain.ErrInsufficientStock, product.Name)
			}
			if err := productRepo.UpdateQuantity(product.ID, product.Quantity-line.Quantity); err != nil {
				return err
			}
			// Snapshot congelado: cantidad y precio quedan copiados en la
			// línea; ediciones posteriores del catálogo no tocan la orden.
			subTotal := product.Price.Mul(decimal.NewFromInt(line.Quantity))
			items = append(items, &entity.OrderItem{
				ID:        uuid.New().String(),
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
				SubTotal:  subTotal,
			})
			total = total.Add(subTotal)
		}

		// El descuento se valida contra el total ya resuelto; no se recorta.
		if in.Discount.GreaterThan(total) {
			return fmt.Errorf("%w: el descuento supera el total de la orden", domain.ErrInvalidInput)
		}
		order.TotalAmount = total
		order.FinalAmount = total.Sub(in.Discount)

		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for _, item := range items {
			if err := orderRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.met != nil {
		uc.met.OrdersCreated.Inc()
		uc.met.CreateLatencyMS.Observe(float64(time.Since(started).Milliseconds()))
	}
	log.Info().
		Str("order_id", order.ID).
		Str("shop_id", shopID).
		Int("lines", len(items)).
		Str("final_amount", order.FinalAmount.String()).
		Msg("orden creada")

	return toOrderResponse(order, items), nil
}

// GetOrder obtiene una orden por ID con sus líneas.
func (uc *OrderUseCase) GetOrder(ctx context.Context, shopID, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: orden %s", domain.ErrNotFound, id)
	}
	if order.ShopID != shopID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.orderRepo.GetItemsByOrderID(id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, items), nil
}

func toOrderResponse(order *entity.Order, items []*entity.OrderItem) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:          order.ID,
		ShopID:      order.ShopID,
		UserID:      order.UserID,
		OrderDate:   order.OrderDate,
		TotalAmount: order.TotalAmount,
		Discount:    order.Discount,
		FinalAmount: order.FinalAmount,
		Status:      order.Status,
		Items:       make([]dto.OrderItemResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			SubTotal:  item.SubTotal,
		})
	}
	return resp
}
