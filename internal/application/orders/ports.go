package orders

import (
	"context"

	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la única unidad de atomicidad del motor
// de órdenes: creación y cancelación viven cada una en una transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// IdempotencyStore protege el checkout contra reintentos duplicados
// (doble clic, reintento de red). TryLock reserva la llave; Remember asocia
// la llave con el ID de la orden creada; Recall la recupera.
type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}
