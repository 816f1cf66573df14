package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/pos-backoffice/internal/application/orders"
)

var _ orders.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore protege el checkout contra reintentos duplicados usando
// Redis: SetNX reserva la llave y un mapa aparte guarda el ID de la orden
// creada para poder responder lo mismo al reintento.
type IdempotencyStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewIdempotencyStore construye el store con el cliente y TTL de las llaves.
func NewIdempotencyStore(rdb *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb, ttl: ttl}
}

// TryLock reserva la llave; false si otro request ya la tomó.
func (s *IdempotencyStore) TryLock(ctx context.Context, scope, key string) (bool, error) {
	return s.rdb.SetNX(ctx, "idemp:"+scope+":"+key, "1", s.ttl).Result()
}

// Remember asocia la llave con el valor (ID de la orden creada).
func (s *IdempotencyStore) Remember(ctx context.Context, scope, key, value string) error {
	return s.rdb.Set(ctx, "idemp:map:"+scope+":"+key, value, s.ttl).Err()
}

// Recall recupera el valor asociado a la llave; false si no existe.
func (s *IdempotencyStore) Recall(ctx context.Context, scope, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, "idemp:map:"+scope+":"+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	return val, true, err
}
