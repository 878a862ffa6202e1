package repository

import (
	"time"

	"github.com/jhoicas/detailing-stock-api/internal/domain/entity"
)

// MovementFilter filtros del listado de movimientos. From/To nil = sin límite.
type MovementFilter struct {
	ProductID string
	Type      string
	From      *time.Time
	To        *time.Time
}

// MovementListItem movimiento con nombre y SKU del producto resueltos (JOIN).
type MovementListItem struct {
	Movement    entity.Movement
	ProductName string
	ProductSKU  string
}

// MovementRepository define el puerto de persistencia para el libro de movimientos.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	GetWithProduct(id string) (*MovementListItem, error)
	Update(movement *entity.Movement) error
	Delete(id string) error
	List(filter MovementFilter) ([]*MovementListItem, error)
	// ListEntriesByVendor historial de compras a un vendedor (solo entradas).
	ListEntriesByVendor(vendorID string) ([]*MovementListItem, error)
}
