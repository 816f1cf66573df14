package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/orders.
// Discount es un monto fijo, >= 0 y <= al total de la orden.
type CreateOrderRequest struct {
	Items    []OrderItemRequest `json:"items"`
	Discount decimal.Decimal    `json:"discount"`
}

// OrderItemRequest línea del carrito (producto y cantidad solicitada).
type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// OrderResponse orden completa con sus líneas.
type OrderResponse struct {
	ID          string              `json:"id"`
	ShopID      string              `json:"shop_id"`
	UserID      string              `json:"user_id,omitempty"`
	OrderDate   time.Time           `json:"order_date"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	Discount    decimal.Decimal     `json:"discount"`
	FinalAmount decimal.Decimal     `json:"final_amount"`
	Status      string              `json:"status"`
	Items       []OrderItemResponse `json:"items"`
}

// OrderItemResponse línea de la orden con los snapshots congelados.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	SubTotal  decimal.Decimal `json:"sub_total"`
}

// ListOrdersRequest parámetros de consulta para GET /api/orders.
// StartDate/EndDate forman el intervalo semiabierto [start, end); si faltan
// se aplica la ventana del día actual en UTC. El rol staff siempre recibe
// la ventana del día, ignorando las fechas solicitadas.
type ListOrdersRequest struct {
	Page      int    `query:"page"`
	PageSize  int    `query:"page_size"`
	StartDate string `query:"start_date"` // RFC 3339 o YYYY-MM-DD
	EndDate   string `query:"end_date"`
}

// OrderSummary resumen de orden para el listado de ventas (solo lectura).
type OrderSummary struct {
	ID          string          `json:"id"`
	OrderDate   time.Time       `json:"order_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Discount    decimal.Decimal `json:"discount"`
	FinalAmount decimal.Decimal `json:"final_amount"`
	Status      string          `json:"status"`
}

// OrderPageResponse página del listado de ventas.
type OrderPageResponse struct {
	Items      []OrderSummary `json:"items"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
}
