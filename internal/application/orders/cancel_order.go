package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// CancelOrder revierte una orden confirmada: repone a cada producto la
// cantidad exacta congelada en su línea (nunca un recálculo sobre el estado
// actual) y marca la orden como Cancelled, todo en una sola transacción.
// Cancelar una orden ya cancelada se rechaza, no se acepta en silencio.
func (uc *OrderUseCase) CancelOrder(ctx context.Context, shopID, orderID string) (bool, error) {
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
	) error {
		order, err := orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: orden %s", domain.ErrNotFound, orderID)
		}
		if order.ShopID != shopID {
			return domain.ErrForbidden
		}
		if !order.CanCancel() {
			return fmt.Errorf("%w: %s", domain.ErrOrderCancelled, orderID)
		}

		items, err := orderRepo.GetItemsByOrderID(orderID)
		if err != nil {
			return err
		}
		for _, item := range items {
			product, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				// La línea referencia un producto que ya no existe: la
				// compensación no puede reponer stock de forma consistente.
				return fmt.Errorf("cancelar orden %s: producto %s no existe", orderID, item.ProductID)
			}
			if err := productRepo.UpdateQuantity(product.ID, product.Quantity+item.Quantity); err != nil {
				return err
			}
		}
		return orderRepo.UpdateStatus(orderID, entity.OrderStatusCancelled, time.Now().UTC())
	})
	if err != nil {
		return false, err
	}

	if uc.met != nil {
		uc.met.OrdersCancelled.Inc()
	}
	log.Info().
		Str("order_id", orderID).
		Str("shop_id", shopID).
		Msg("orden cancelada, stock repuesto")
	return true, nil
}
