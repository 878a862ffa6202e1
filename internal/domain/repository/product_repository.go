package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/detailing-stock-api/internal/domain/entity"
)

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	Search     string // substring sobre name/sku/description, sin distinguir mayúsculas ni acentos
	SupplierID string
	LowStock   bool // quantity <= min_stock
	ActiveOnly bool
}

// ProductListItem producto con el nombre del proveedor de catálogo resuelto (JOIN).
type ProductListItem struct {
	Product      entity.Product
	SupplierName *string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate solo tiene sentido dentro de una transacción (fila bloqueada).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	GetWithSupplier(id string) (*ProductListItem, error)
	Update(product *entity.Product) error
	UpdateStock(productID string, quantity decimal.Decimal) error
	UpdateStockAndCost(productID string, quantity, costPrice decimal.Decimal) error
	SetActive(id string, active bool) error
	List(filter ProductFilter) ([]*ProductListItem, error)
	Delete(id string) error
}
