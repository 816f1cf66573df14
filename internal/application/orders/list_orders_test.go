package orders_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/sales"
)

func seedOrder(store *fakeStore, id string, date time.Time) {
	store.orders[id] = &entity.Order{
		ID:          id,
		ShopID:      testShopID,
		OrderDate:   date,
		TotalAmount: decimal.New(100, 0),
		FinalAmount: decimal.New(100, 0),
		Status:      entity.OrderStatusCompleted,
	}
}

func TestListOrders_StaffForzadoAlDiaActual(t *testing.T) {
	// Una orden de hoy y una de 2020; staff pide desde 2020 y aun así
	// solo ve la de hoy (el rango solicitado se ignora, no se rechaza).
	store := newFakeStore()
	today := sales.TodayWindow(time.Now()).Start.Add(10 * time.Hour)
	seedOrder(store, "hoy", today)
	seedOrder(store, "vieja", time.Date(2020, 3, 1, 12, 0, 0, 0, time.UTC))
	uc := newTestUseCase(store)

	resp, err := uc.ListOrders(context.Background(), testShopID, entity.RoleStaff, dto.ListOrdersRequest{
		StartDate: "2020-01-01",
		EndDate:   "2030-01-01",
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "hoy", resp.Items[0].ID)
	assert.Equal(t, 1, resp.Total)
}

func TestListOrders_AdminConRangoExplicito(t *testing.T) {
	store := newFakeStore()
	seedOrder(store, "enero", time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC))
	seedOrder(store, "febrero", time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC))
	uc := newTestUseCase(store)

	resp, err := uc.ListOrders(context.Background(), testShopID, entity.RoleAdmin, dto.ListOrdersRequest{
		StartDate: "2024-01-01",
		EndDate:   "2024-02-01",
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "enero", resp.Items[0].ID)
}

func TestListOrders_RangoSemiabierto(t *testing.T) {
	// end_date exclusivo: una orden exactamente a la medianoche del fin
	// queda fuera; una a la medianoche del inicio queda dentro.
	store := newFakeStore()
	seedOrder(store, "al-inicio", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	seedOrder(store, "al-fin", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	uc := newTestUseCase(store)

	resp, err := uc.ListOrders(context.Background(), testShopID, entity.RoleAdmin, dto.ListOrdersRequest{
		StartDate: "2024-01-01",
		EndDate:   "2024-02-01",
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "al-inicio", resp.Items[0].ID)
}

func TestListOrders_MasRecientesPrimeroYPaginado(t *testing.T) {
	store := newFakeStore()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedOrder(store, fmt.Sprintf("o%d", i), base.Add(time.Duration(i)*time.Hour))
	}
	uc := newTestUseCase(store)

	page1, err := uc.ListOrders(context.Background(), testShopID, entity.RoleAdmin, dto.ListOrdersRequest{
		Page: 1, PageSize: 2,
		StartDate: "2024-05-01", EndDate: "2024-05-02",
	})
	require.NoError(t, err)
	require.Len(t, page1.Items, 2)
	assert.Equal(t, "o4", page1.Items[0].ID, "más reciente primero")
	assert.Equal(t, "o3", page1.Items[1].ID)
	assert.Equal(t, 5, page1.Total)
	assert.Equal(t, 3, page1.TotalPages)

	page3, err := uc.ListOrders(context.Background(), testShopID, entity.RoleAdmin, dto.ListOrdersRequest{
		Page: 3, PageSize: 2,
		StartDate: "2024-05-01", EndDate: "2024-05-02",
	})
	require.NoError(t, err)
	require.Len(t, page3.Items, 1)
	assert.Equal(t, "o0", page3.Items[0].ID)
}

func TestListOrders_PaginacionInvalidaSeNormaliza(t *testing.T) {
	store := newFakeStore()
	uc := newTestUseCase(store)

	resp, err := uc.ListOrders(context.Background(), testShopID, entity.RoleAdmin, dto.ListOrdersRequest{
		Page: -3, PageSize: 9999,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, sales.MaxPageSize, resp.PageSize)
}

func TestListOrders_FechaMalformadaEsValidacion(t *testing.T) {
	store := newFakeStore()
	uc := newTestUseCase(store)

	_, err := uc.ListOrders(context.Background(), testShopID, entity.RoleAdmin, dto.ListOrdersRequest{
		StartDate: "hace-un-rato",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
