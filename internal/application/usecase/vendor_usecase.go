package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/detailing-stock-api/internal/application/dto"
	"github.com/jhoicas/detailing-stock-api/internal/domain"
	"github.com/jhoicas/detailing-stock-api/internal/domain/entity"
	"github.com/jhoicas/detailing-stock-api/internal/domain/repository"
)

// VendorUseCase CRUD de vendedores (a quién se le compró cada entrada) más el
// historial de compras asociadas a un vendedor.
type VendorUseCase struct {
	repo         repository.VendorRepository
	movementRepo repository.MovementRepository
}

// NewVendorUseCase construye el caso de uso.
func NewVendorUseCase(repo repository.VendorRepository, movementRepo repository.MovementRepository) *VendorUseCase {
	return &VendorUseCase{repo: repo, movementRepo: movementRepo}
}

// Create crea un vendedor. Solo el nombre es obligatorio.
func (uc *VendorUseCase) Create(in dto.VendorRequest) (*dto.VendorResponse, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	vendor := &entity.Vendor{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(*in.Name),
		CreatedAt: time.Now(),
	}
	if in.Phone != nil {
		vendor.Phone = *in.Phone
	}
	if err := uc.repo.Create(vendor); err != nil {
		return nil, err
	}
	return toVendorResponse(vendor), nil
}

// GetByID obtiene un vendedor por ID.
func (uc *VendorUseCase) GetByID(id string) (*dto.VendorResponse, error) {
	vendor, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, domain.ErrNotFound
	}
	return toVendorResponse(vendor), nil
}

// Update edita un vendedor. Campos nil quedan como están.
func (uc *VendorUseCase) Update(id string, in dto.VendorRequest) (*dto.VendorResponse, error) {
	vendor, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		vendor.Name = name
	}
	if in.Phone != nil {
		vendor.Phone = *in.Phone
	}
	if err := uc.repo.Update(vendor); err != nil {
		return nil, err
	}
	return toVendorResponse(vendor), nil
}

// List lista vendedores, opcionalmente filtrados por nombre.
func (uc *VendorUseCase) List(search string) ([]dto.VendorResponse, error) {
	list, err := uc.repo.List(strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	items := make([]dto.VendorResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *toVendorResponse(v))
	}
	return items, nil
}

// Purchases lista las entradas compradas a un vendedor, más recientes primero.
func (uc *VendorUseCase) Purchases(vendorID string) ([]dto.MovementResponse, error) {
	vendor, err := uc.repo.GetByID(vendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, domain.ErrNotFound
	}
	entries, err := uc.movementRepo.ListEntriesByVendor(vendorID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, *ToMovementResponse(e))
	}
	return items, nil
}

// Delete elimina un vendedor. Sus entradas quedan sin vendedor (SET NULL).
func (uc *VendorUseCase) Delete(id string) error {
	vendor, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if vendor == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toVendorResponse(v *entity.Vendor) *dto.VendorResponse {
	if v == nil {
		return nil
	}
	return &dto.VendorResponse{
		ID:        v.ID,
		Name:      v.Name,
		Phone:     v.Phone,
		CreatedAt: v.CreatedAt,
	}
}

// ToMovementResponse mapea un movimiento (con producto resuelto) al DTO de la API.
func ToMovementResponse(it *repository.MovementListItem) *dto.MovementResponse {
	if it == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:          it.Movement.ID,
		ProductID:   it.Movement.ProductID,
		ProductName: it.ProductName,
		ProductSKU:  it.ProductSKU,
		Type:        it.Movement.Type,
		Quantity:    it.Movement.Quantity,
		UnitCost:    it.Movement.UnitCost,
		Notes:       it.Movement.Notes,
		VendorID:    it.Movement.VendorID,
		CreatedAt:   it.Movement.CreatedAt,
	}
}
