package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service representa un servicio del catálogo (corte, reparación, etc.).
// A diferencia de Product no tiene stock: se vende sin control de inventario.
type Service struct {
	ID          string
	ShopID      string
	CategoryID  string
	Name        string
	Description string
	Price       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
