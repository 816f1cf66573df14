package orders_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
)

func TestCancelOrder_ReponeStockYMarcaCancelada(t *testing.T) {
	// Crear (5 → 2) y cancelar: el stock vuelve exactamente a 5
	store := newFakeStore()
	seedProduct(store, "p1", "Café Molido", 5, "10.00")
	uc := newTestUseCase(store)

	resp, err := uc.CreateOrder(context.Background(), testShopID, testUserID, dto.CreateOrderRequest{
		Items:    []dto.OrderItemRequest{{ProductID: "p1", Quantity: 3}},
		Discount: decimal.RequireFromString("5.00"),
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), store.products["p1"].Quantity)

	ok, err := uc.CancelOrder(context.Background(), testShopID, resp.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(5), store.products["p1"].Quantity, "la cancelación repone la cantidad exacta")
	assert.Equal(t, entity.OrderStatusCancelled, store.orders[resp.ID].Status)
}

func TestCancelOrder_SegundaCancelacionRechazada(t *testing.T) {
	// Idempotencia defensiva: cancelar dos veces repone el stock una sola vez
	store := newFakeStore()
	seedProduct(store, "p1", "Café Molido", 5, "10.00")
	uc := newTestUseCase(store)

	resp, err := uc.CreateOrder(context.Background(), testShopID, testUserID, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "p1", Quantity: 3}},
	})
	require.NoError(t, err)

	_, err = uc.CancelOrder(context.Background(), testShopID, resp.ID)
	require.NoError(t, err)
	require.Equal(t, int64(5), store.products["p1"].Quantity)

	_, err = uc.CancelOrder(context.Background(), testShopID, resp.ID)
	require.ErrorIs(t, err, domain.ErrOrderCancelled)
	assert.Equal(t, int64(5), store.products["p1"].Quantity, "el stock no debe reponerse dos veces")
}

func TestCancelOrder_OrdenInexistente(t *testing.T) {
	store := newFakeStore()
	uc := newTestUseCase(store)

	_, err := uc.CancelOrder(context.Background(), testShopID, "no-existe")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "no-existe")
}

func TestCancelOrder_OrdenDeOtraTiendaDenegada(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, "p1", "Café Molido", 5, "10.00")
	uc := newTestUseCase(store)

	resp, err := uc.CreateOrder(context.Background(), testShopID, testUserID, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = uc.CancelOrder(context.Background(), "otra-tienda", resp.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, entity.OrderStatusCompleted, store.orders[resp.ID].Status)
	assert.Equal(t, int64(4), store.products["p1"].Quantity, "sin reposición")
}

func TestCancelOrder_ProductoBorradoAbortalaCompensacion(t *testing.T) {
	// Si una línea referencia un producto que ya no existe, la compensación
	// completa se revierte: ni reposición parcial ni cambio de estado.
	store := newFakeStore()
	seedProduct(store, "p1", "Café Molido", 5, "10.00")
	seedProduct(store, "p2", "Azúcar", 5, "4.00")
	uc := newTestUseCase(store)

	resp, err := uc.CreateOrder(context.Background(), testShopID, testUserID, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 2},
		},
	})
	require.NoError(t, err)
	delete(store.products, "p2")

	_, err = uc.CancelOrder(context.Background(), testShopID, resp.ID)
	require.Error(t, err)
	assert.Equal(t, int64(3), store.products["p1"].Quantity, "la reposición de p1 debe revertirse")
	assert.Equal(t, entity.OrderStatusCompleted, store.orders[resp.ID].Status)
}

func TestCrearYCancelar_RoundTripMultilinea(t *testing.T) {
	// Ida y vuelta: todo producto involucrado regresa a su cantidad previa
	store := newFakeStore()
	seedProduct(store, "p1", "Café Molido", 7, "10.00")
	seedProduct(store, "p2", "Azúcar", 4, "4.00")
	seedProduct(store, "p3", "Filtros", 9, "2.50")
	uc := newTestUseCase(store)

	resp, err := uc.CreateOrder(context.Background(), testShopID, testUserID, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{
			{ProductID: "p1", Quantity: 3},
			{ProductID: "p2", Quantity: 4},
		},
	})
	require.NoError(t, err)
	require.Equal(t, int64(4), store.products["p1"].Quantity)
	require.Equal(t, int64(0), store.products["p2"].Quantity)

	_, err = uc.CancelOrder(context.Background(), testShopID, resp.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(7), store.products["p1"].Quantity)
	assert.Equal(t, int64(4), store.products["p2"].Quantity)
	assert.Equal(t, int64(9), store.products["p3"].Quantity, "productos ajenos a la orden no se tocan")
}
