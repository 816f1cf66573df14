package entity

import "time"

// Category agrupa productos y servicios del catálogo de una tienda.
type Category struct {
	ID          string
	ShopID      string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
