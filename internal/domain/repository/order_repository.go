package repository

import (
	"time"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order y sus líneas.
// Las órdenes nunca se borran ni se editan: solo se crean y, a lo sumo,
// transicionan una vez a Cancelled.
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateItem(item *entity.OrderItem) error
	GetByID(id string) (*entity.Order, error)
	GetItemsByOrderID(orderID string) ([]*entity.OrderItem, error)
	// UpdateStatus aplica la transición de estado (Completed -> Cancelled).
	UpdateStatus(orderID, status string, updatedAt time.Time) error
	// ListByShop devuelve órdenes de la tienda en [from, to), más recientes primero.
	ListByShop(shopID string, from, to time.Time, limit, offset int) ([]*entity.Order, error)
	CountByShop(shopID string, from, to time.Time) (int, error)
}
