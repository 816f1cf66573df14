package repository

import "github.com/jhoicas/pos-backoffice/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	ListByShop(shopID string, limit, offset int) ([]*entity.User, error)
}
