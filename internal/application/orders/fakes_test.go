package orders_test

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// fakeStore simula la base de datos en memoria para los tests del motor de
// órdenes. El fakeTxRunner toma un snapshot antes de ejecutar el callback y
// lo restaura si falla, emulando el rollback de una transacción real: así
// los tests de atomicidad observan exactamente lo que vería un lector tras
// un intento fallido.
type fakeStore struct {
	products map[string]*entity.Product
	orders   map[string]*entity.Order
	items    map[string][]*entity.OrderItem // por orderID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: map[string]*entity.Product{},
		orders:   map[string]*entity.Order{},
		items:    map[string][]*entity.OrderItem{},
	}
}

func (s *fakeStore) snapshot() *fakeStore {
	cp := newFakeStore()
	for id, p := range s.products {
		c := *p
		cp.products[id] = &c
	}
	for id, o := range s.orders {
		c := *o
		cp.orders[id] = &c
	}
	for id, list := range s.items {
		for _, it := range list {
			c := *it
			cp.items[id] = append(cp.items[id], &c)
		}
	}
	return cp
}

func (s *fakeStore) restore(from *fakeStore) {
	s.products = from.products
	s.orders = from.orders
	s.items = from.items
}

// ── Repositorios fake ─────────────────────────────────────────────────────────

type fakeProductRepo struct{ store *fakeStore }

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(p *entity.Product) error {
	c := *p
	r.store.products[p.ID] = &c
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *fakeProductRepo) GetByShopAndSKU(shopID, sku string) (*entity.Product, error) {
	for _, p := range r.store.products {
		if p.ShopID == shopID && p.SKU == sku {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	c := *p
	r.store.products[p.ID] = &c
	return nil
}

func (r *fakeProductRepo) UpdateQuantity(productID string, quantity int64) error {
	if p, ok := r.store.products[productID]; ok {
		p.Quantity = quantity
	}
	return nil
}

func (r *fakeProductRepo) ListByShop(shopID, search string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.store.products {
		if p.ShopID == shopID {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.store.products, id)
	return nil
}

type fakeOrderRepo struct{ store *fakeStore }

var _ repository.OrderRepository = (*fakeOrderRepo)(nil)

func (r *fakeOrderRepo) Create(o *entity.Order) error {
	c := *o
	r.store.orders[o.ID] = &c
	return nil
}

func (r *fakeOrderRepo) CreateItem(item *entity.OrderItem) error {
	c := *item
	r.store.items[item.OrderID] = append(r.store.items[item.OrderID], &c)
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	c := *o
	return &c, nil
}

func (r *fakeOrderRepo) GetItemsByOrderID(orderID string) ([]*entity.OrderItem, error) {
	var out []*entity.OrderItem
	for _, it := range r.store.items[orderID] {
		c := *it
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(orderID, status string, updatedAt time.Time) error {
	if o, ok := r.store.orders[orderID]; ok {
		o.Status = status
		o.UpdatedAt = updatedAt
	}
	return nil
}

func (r *fakeOrderRepo) ListByShop(shopID string, from, to time.Time, limit, offset int) ([]*entity.Order, error) {
	matched := r.match(shopID, from, to)
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].OrderDate.After(matched[j].OrderDate)
	})
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *fakeOrderRepo) CountByShop(shopID string, from, to time.Time) (int, error) {
	return len(r.match(shopID, from, to)), nil
}

func (r *fakeOrderRepo) match(shopID string, from, to time.Time) []*entity.Order {
	var out []*entity.Order
	for _, o := range r.store.orders {
		// Intervalo semiabierto: from inclusivo, to exclusivo
		if o.ShopID == shopID && !o.OrderDate.Before(from) && o.OrderDate.Before(to) {
			c := *o
			out = append(out, &c)
		}
	}
	return out
}

// ── TxRunner fake con semántica de rollback ───────────────────────────────────

type fakeTxRunner struct{ store *fakeStore }

func (t *fakeTxRunner) Run(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
) error) error {
	snap := t.store.snapshot()
	err := fn(&fakeOrderRepo{store: t.store}, &fakeProductRepo{store: t.store})
	if err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}
