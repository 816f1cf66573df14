package repository

import "github.com/jhoicas/pos-backoffice/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByShopAndSKU(shopID, sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	ListByShop(shopID, search string, limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE). Usar solo
	// dentro de una transacción: es lo que impide que dos checkouts
	// concurrentes pasen ambos la validación de stock.
	GetForUpdate(id string) (*entity.Product, error)
	// UpdateQuantity fija el stock del producto. Los únicos llamadores son el
	// checkout (decremento), la cancelación (reposición) y el catálogo.
	UpdateQuantity(productID string, quantity int64) error
}
