package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/application/orders"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
	apphttp "github.com/jhoicas/pos-backoffice/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (mismo contrato que los repos reales; el runner emula
// rollback restaurando un snapshot)
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products map[string]*entity.Product
	orders   map[string]*entity.Order
	items    map[string][]*entity.OrderItem
}

func newMemStore() *memStore {
	return &memStore{
		products: map[string]*entity.Product{},
		orders:   map[string]*entity.Order{},
		items:    map[string][]*entity.OrderItem{},
	}
}

func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
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

type memProductRepo struct{ store *memStore }

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (r *memProductRepo) Create(p *entity.Product) error {
	c := *p
	r.store.products[p.ID] = &c
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *memProductRepo) GetByShopAndSKU(shopID, sku string) (*entity.Product, error) {
	for _, p := range r.store.products {
		if p.ShopID == shopID && p.SKU == sku {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *memProductRepo) Update(p *entity.Product) error {
	c := *p
	r.store.products[p.ID] = &c
	return nil
}

func (r *memProductRepo) UpdateQuantity(productID string, quantity int64) error {
	if p, ok := r.store.products[productID]; ok {
		p.Quantity = quantity
	}
	return nil
}

func (r *memProductRepo) ListByShop(shopID, search string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.store.products {
		if p.ShopID == shopID {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memProductRepo) Delete(id string) error {
	delete(r.store.products, id)
	return nil
}

type memOrderRepo struct{ store *memStore }

var _ repository.OrderRepository = (*memOrderRepo)(nil)

func (r *memOrderRepo) Create(o *entity.Order) error {
	c := *o
	r.store.orders[o.ID] = &c
	return nil
}

func (r *memOrderRepo) CreateItem(item *entity.OrderItem) error {
	c := *item
	r.store.items[item.OrderID] = append(r.store.items[item.OrderID], &c)
	return nil
}

func (r *memOrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	c := *o
	return &c, nil
}

func (r *memOrderRepo) GetItemsByOrderID(orderID string) ([]*entity.OrderItem, error) {
	var out []*entity.OrderItem
	for _, it := range r.store.items[orderID] {
		c := *it
		out = append(out, &c)
	}
	return out, nil
}

func (r *memOrderRepo) UpdateStatus(orderID, status string, updatedAt time.Time) error {
	if o, ok := r.store.orders[orderID]; ok {
		o.Status = status
		o.UpdatedAt = updatedAt
	}
	return nil
}

func (r *memOrderRepo) ListByShop(shopID string, from, to time.Time, limit, offset int) ([]*entity.Order, error) {
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

func (r *memOrderRepo) CountByShop(shopID string, from, to time.Time) (int, error) {
	return len(r.match(shopID, from, to)), nil
}

func (r *memOrderRepo) match(shopID string, from, to time.Time) []*entity.Order {
	var out []*entity.Order
	for _, o := range r.store.orders {
		if o.ShopID == shopID && !o.OrderDate.Before(from) && o.OrderDate.Before(to) {
			c := *o
			out = append(out, &c)
		}
	}
	return out
}

type memTxRunner struct{ store *memStore }

func (t *memTxRunner) Run(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
) error) error {
	snap := t.store.snapshot()
	if err := fn(&memOrderRepo{store: t.store}, &memProductRepo{store: t.store}); err != nil {
		t.store.products = snap.products
		t.store.orders = snap.orders
		t.store.items = snap.items
		return err
	}
	return nil
}

// memIdemStore almacena llaves de idempotencia en memoria.
type memIdemStore struct {
	locks  map[string]bool
	values map[string]string
}

var _ orders.IdempotencyStore = (*memIdemStore)(nil)

func newMemIdemStore() *memIdemStore {
	return &memIdemStore{locks: map[string]bool{}, values: map[string]string{}}
}

func (s *memIdemStore) TryLock(ctx context.Context, scope, key string) (bool, error) {
	k := scope + ":" + key
	if s.locks[k] {
		return false, nil
	}
	s.locks[k] = true
	return true, nil
}

func (s *memIdemStore) Remember(ctx context.Context, scope, key, value string) error {
	s.values[scope+":"+key] = value
	return nil
}

func (s *memIdemStore) Recall(ctx context.Context, scope, key string) (string, bool, error) {
	v, ok := s.values[scope+":"+key]
	return v, ok, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Arranque del app de test
// ──────────────────────────────────────────────────────────────────────────────

type orderTestEnv struct {
	app   *fiber.App
	store *memStore
	idem  *memIdemStore
}

func newOrderTestEnv(t *testing.T) *orderTestEnv {
	t.Helper()
	store := newMemStore()
	idem := newMemIdemStore()
	uc := orders.NewOrderUseCase(
		&memTxRunner{store: store},
		&memOrderRepo{store: store},
		&memProductRepo{store: store},
		nil,
	)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		OrderUC:   uc,
		IdemStore: idem,
		JWTSecret: testJWTSecret,
	})
	return &orderTestEnv{app: app, store: store, idem: idem}
}

func (e *orderTestEnv) seedProduct(id, name string, price string, qty int64) {
	e.store.products[id] = &entity.Product{
		ID:       id,
		ShopID:   testShopID,
		SKU:      "SKU-" + id,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Quantity: qty,
	}
}

func (e *orderTestEnv) do(t *testing.T, method, path, role string, body interface{}, headers map[string]string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeOrder(t *testing.T, resp *http.Response) dto.OrderResponse {
	t.Helper()
	defer resp.Body.Close()
	var out dto.OrderResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del handler de órdenes
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderHandler_Create_DescuentaStockYDevuelve201(t *testing.T) {
	env := newOrderTestEnv(t)
	env.seedProduct("p1", "Café Molido", "10.00", 5)

	resp := env.do(t, http.MethodPost, "/api/orders/", "staff", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "p1", Quantity: 3}},
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	order := decodeOrder(t, resp)
	assert.Equal(t, "30", order.TotalAmount.String())
	assert.Equal(t, "30", order.FinalAmount.String())
	assert.Equal(t, entity.OrderStatusCompleted, order.Status)
	assert.Equal(t, int64(2), env.store.products["p1"].Quantity,
		"el stock debe quedar descontado tras el checkout")
}

func TestOrderHandler_Create_SinToken_Retorna401(t *testing.T) {
	env := newOrderTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/orders/", "", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "p1", Quantity: 1}},
	}, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOrderHandler_Create_StockInsuficiente_Retorna409(t *testing.T) {
	env := newOrderTestEnv(t)
	env.seedProduct("p1", "Café Molido", "10.00", 2)

	resp := env.do(t, http.MethodPost, "/api/orders/", "staff", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "p1", Quantity: 3}},
	}, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Equal(t, int64(2), env.store.products["p1"].Quantity,
		"un checkout fallido no debe tocar el stock")
}

func TestOrderHandler_Create_ProductoInexistente_Retorna404(t *testing.T) {
	env := newOrderTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/orders/", "staff", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "no-existe", Quantity: 1}},
	}, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOrderHandler_Create_SinLineas_Retorna400(t *testing.T) {
	env := newOrderTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/orders/", "staff", dto.CreateOrderRequest{}, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// La misma Idempotency-Key repetida devuelve la orden original sin crear otra
// ni volver a descontar stock.
func TestOrderHandler_Create_IdempotencyKey_NoDuplicaOrden(t *testing.T) {
	env := newOrderTestEnv(t)
	env.seedProduct("p1", "Café Molido", "10.00", 5)
	headers := map[string]string{"Idempotency-Key": "checkout-abc"}
	body := dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{ProductID: "p1", Quantity: 2}}}

	first := env.do(t, http.MethodPost, "/api/orders/", "staff", body, headers)
	require.Equal(t, http.StatusCreated, first.StatusCode)
	created := decodeOrder(t, first)

	second := env.do(t, http.MethodPost, "/api/orders/", "staff", body, headers)
	require.Equal(t, http.StatusOK, second.StatusCode, "el reintento debe devolver la orden existente")
	replayed := decodeOrder(t, second)

	assert.Equal(t, created.ID, replayed.ID)
	assert.Len(t, env.store.orders, 1, "solo debe existir una orden")
	assert.Equal(t, int64(3), env.store.products["p1"].Quantity,
		"el stock se descuenta una sola vez")
}

func TestOrderHandler_Cancel_ReponeStock(t *testing.T) {
	env := newOrderTestEnv(t)
	env.seedProduct("p1", "Café Molido", "10.00", 5)

	created := decodeOrder(t, env.do(t, http.MethodPost, "/api/orders/", "manager", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "p1", Quantity: 4}},
	}, nil))
	require.Equal(t, int64(1), env.store.products["p1"].Quantity)

	resp := env.do(t, http.MethodPost, "/api/orders/"+created.ID+"/cancel", "manager", nil, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(5), env.store.products["p1"].Quantity,
		"la cancelación debe reponer exactamente lo descontado")
	assert.Equal(t, entity.OrderStatusCancelled, env.store.orders[created.ID].Status)
}

// staff no tiene Orders.Update: la cancelación está vedada desde el router.
func TestOrderHandler_Cancel_StaffBloqueado_Retorna403(t *testing.T) {
	env := newOrderTestEnv(t)
	env.seedProduct("p1", "Café Molido", "10.00", 5)
	created := decodeOrder(t, env.do(t, http.MethodPost, "/api/orders/", "staff", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "p1", Quantity: 1}},
	}, nil))

	resp := env.do(t, http.MethodPost, "/api/orders/"+created.ID+"/cancel", "staff", nil, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, entity.OrderStatusCompleted, env.store.orders[created.ID].Status,
		"la orden no debe cambiar de estado")
}

func TestOrderHandler_Cancel_YaCancelada_Retorna409(t *testing.T) {
	env := newOrderTestEnv(t)
	env.seedProduct("p1", "Café Molido", "10.00", 5)
	created := decodeOrder(t, env.do(t, http.MethodPost, "/api/orders/", "admin", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "p1", Quantity: 2}},
	}, nil))

	first := env.do(t, http.MethodPost, "/api/orders/"+created.ID+"/cancel", "admin", nil, nil)
	first.Body.Close()
	require.Equal(t, http.StatusOK, first.StatusCode)

	second := env.do(t, http.MethodPost, "/api/orders/"+created.ID+"/cancel", "admin", nil, nil)
	defer second.Body.Close()
	assert.Equal(t, http.StatusConflict, second.StatusCode)
	assert.Equal(t, int64(5), env.store.products["p1"].Quantity,
		"la segunda cancelación no debe volver a reponer stock")
}

func TestOrderHandler_GetByID_NoEncontrada_Retorna404(t *testing.T) {
	env := newOrderTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/orders/no-existe", "admin", nil, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOrderHandler_List_PaginaVentas(t *testing.T) {
	env := newOrderTestEnv(t)
	env.seedProduct("p1", "Café Molido", "10.00", 100)
	for i := 0; i < 3; i++ {
		resp := env.do(t, http.MethodPost, "/api/orders/", "admin", dto.CreateOrderRequest{
			Items: []dto.OrderItemRequest{{ProductID: "p1", Quantity: 1}},
		}, nil)
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := env.do(t, http.MethodGet, "/api/orders/?page=1&page_size=2", "admin", nil, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page dto.OrderPageResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 2)
}

func TestOrderHandler_List_FechaMalformada_Retorna400(t *testing.T) {
	env := newOrderTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/orders/?start_date=ayer&end_date=hoy", "admin", nil, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
