package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto vendible del catálogo de una tienda.
// Quantity es el stock disponible (unidades enteras, nunca negativo).
// Solo lo mutan el checkout (decremento), la cancelación (reposición)
// y las ediciones manuales del catálogo.
type Product struct {
	ID          string
	ShopID      string
	CategoryID  string
	SKU         string // código único por tienda
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta unitario
	Quantity    int64           // stock disponible, >= 0
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
