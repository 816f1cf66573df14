package entity

import "time"

// Shop representa una tienda/punto de venta (tenant).
type Shop struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
