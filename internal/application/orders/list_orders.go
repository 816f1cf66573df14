package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/sales"
)

// ListOrders devuelve una página de ventas de la tienda, más recientes
// primero, acotada al intervalo semiabierto [start, end). El rango efectivo
// lo resuelve sales.EffectiveRange: el rol staff queda forzado a la ventana
// del día actual sin importar las fechas solicitadas. Solo lectura.
func (uc *OrderUseCase) ListOrders(ctx context.Context, shopID, role string, in dto.ListOrdersRequest) (*dto.OrderPageResponse, error) {
	requested, err := parseRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	window := sales.EffectiveRange(requested, role, time.Now())
	page, pageSize := sales.ClampPage(in.Page, in.PageSize)

	total, err := uc.orderRepo.CountByShop(shopID, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	offset := (page - 1) * pageSize
	list, err := uc.orderRepo.ListByShop(shopID, window.Start, window.End, pageSize, offset)
	if err != nil {
		return nil, err
	}

	resp := &dto.OrderPageResponse{
		Items:      make([]dto.OrderSummary, 0, len(list)),
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: sales.TotalPages(total, pageSize),
	}
	for _, o := range list {
		resp.Items = append(resp.Items, dto.OrderSummary{
			ID:          o.ID,
			OrderDate:   o.OrderDate,
			TotalAmount: o.TotalAmount,
			Discount:    o.Discount,
			FinalAmount: o.FinalAmount,
			Status:      o.Status,
		})
	}
	return resp, nil
}

// parseRange interpreta start/end como RFC 3339 o YYYY-MM-DD (en UTC).
// Devuelve nil si no se indicó ninguno de los dos.
func parseRange(start, end string) (*sales.DateRange, error) {
	if start == "" && end == "" {
		return nil, nil
	}
	var r sales.DateRange
	var err error
	if start != "" {
		if r.Start, err = parseDate(start); err != nil {
			return nil, fmt.Errorf("%w: start_date %q", domain.ErrInvalidInput, start)
		}
	}
	if end != "" {
		if r.End, err = parseDate(end); err != nil {
			return nil, fmt.Errorf("%w: end_date %q", domain.ErrInvalidInput, end)
		}
	}
	return &r, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
