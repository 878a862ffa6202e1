package repository

import "github.com/jhoicas/detailing-stock-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	UpdatePassword(userID, passwordHash string) error
	Count() (int64, error)
}
