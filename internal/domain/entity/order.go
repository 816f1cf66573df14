package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden. No existe estado Pending: la orden se persiste
// completamente formada o no se persiste. La única transición legal es
// Completed -> Cancelled, realizada por la compensación.
const (
	OrderStatusCompleted = "Completed"
	OrderStatusCancelled = "Cancelled"
)

// Order representa la cabecera de una venta. Inmutable tras su creación
// salvo el cambio de estado a Cancelled.
type Order struct {
	ID          string
	ShopID      string
	UserID      string    // usuario que registró la venta
	OrderDate   time.Time // fecha de creación en UTC, inmutable
	TotalAmount decimal.Decimal // suma de subtotales de las líneas
	Discount    decimal.Decimal // descuento fijo, >= 0 y <= TotalAmount
	FinalAmount decimal.Decimal // TotalAmount - Discount
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CanCancel indica si la orden admite la transición Completed -> Cancelled.
func (o *Order) CanCancel() bool {
	return o.Status == OrderStatusCompleted
}

// OrderItem representa una línea de venta. Quantity y UnitPrice son copias
// congeladas al momento de crear la orden: cambios posteriores de precio o
// stock en el catálogo no alteran los totales históricos.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int64 // > 0, fijo desde la creación
	UnitPrice decimal.Decimal // snapshot del precio del producto
	SubTotal  decimal.Decimal // Quantity * UnitPrice
}
