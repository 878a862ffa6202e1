package repository

import "github.com/jhoicas/detailing-stock-api/internal/domain/entity"

// VendorRepository define el puerto de persistencia para Vendor.
type VendorRepository interface {
	Create(vendor *entity.Vendor) error
	GetByID(id string) (*entity.Vendor, error)
	Update(vendor *entity.Vendor) error
	List(search string) ([]*entity.Vendor, error)
	Delete(id string) error
}
