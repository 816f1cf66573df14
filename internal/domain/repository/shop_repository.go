package repository

import "github.com/jhoicas/pos-backoffice/internal/domain/entity"

// ShopRepository define el puerto de persistencia para Shop.
type ShopRepository interface {
	Create(shop *entity.Shop) error
	GetByID(id string) (*entity.Shop, error)
	List(limit, offset int) ([]*entity.Shop, error)
}
