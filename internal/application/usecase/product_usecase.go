package usecase

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/detailing-stock-api/internal/application/dto"
	"github.com/jhoicas/detailing-stock-api/internal/domain"
	"github.com/jhoicas/detailing-stock-api/internal/domain/entity"
	"github.com/jhoicas/detailing-stock-api/internal/domain/repository"
)

// ProductUseCase casos de uso de catálogo para productos. Quantity y CostPrice
// no se editan aquí: solo el motor de movimientos las modifica.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto con SKU generado, stock 0 y costo inicial opcional.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	unitType := in.UnitType
	if unitType == "" {
		unitType = entity.UnitTypeUnit
	}
	if unitType != entity.UnitTypeUnit && unitType != entity.UnitTypeWeight {
		return nil, domain.ErrInvalidInput
	}
	costPrice := decimal.Zero
	if in.CostPrice != nil {
		if in.CostPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		costPrice = *in.CostPrice
	}
	minStock := decimal.Zero
	if in.MinStock != nil {
		if in.MinStock.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		minStock = *in.MinStock
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         generateSKU(),
		Name:        name,
		Description: in.Description,
		UnitType:    unitType,
		Quantity:    decimal.Zero,
		CostPrice:   costPrice,
		MinStock:    minStock,
		SupplierID:  in.SupplierID,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return ToProductResponse(product, nil), nil
}

// GetByID obtiene un producto con el nombre de su proveedor de catálogo.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	item, err := uc.repo.GetWithSupplier(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return ToProductResponse(&item.Product, item.SupplierName), nil
}

// Update edita los campos de catálogo. Quantity nunca se toca aquí; CostPrice
// solo como corrección manual explícita (el promedio lo lleva el motor).
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.UnitType != nil {
		if *in.UnitType != entity.UnitTypeUnit && *in.UnitType != entity.UnitTypeWeight {
			return nil, domain.ErrInvalidInput
		}
		product.UnitType = *in.UnitType
	}
	if in.CostPrice != nil {
		if in.CostPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.CostPrice = *in.CostPrice
	}
	if in.MinStock != nil {
		if in.MinStock.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.MinStock = *in.MinStock
	}
	if in.SupplierID != nil {
		if *in.SupplierID == "" {
			product.SupplierID = nil
		} else {
			product.SupplierID = in.SupplierID
		}
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return ToProductResponse(product, nil), nil
}

// ToggleActive invierte el estado activo/inactivo del producto.
func (uc *ProductUseCase) ToggleActive(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repo.SetActive(id, !product.IsActive); err != nil {
		return nil, err
	}
	product.IsActive = !product.IsActive
	return ToProductResponse(product, nil), nil
}

// List lista productos con filtros de búsqueda, proveedor, stock bajo y estado.
func (uc *ProductUseCase) List(q dto.ListProductsQuery) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(repository.ProductFilter{
		Search:     strings.TrimSpace(q.Search),
		SupplierID: q.SupplierID,
		LowStock:   q.LowStock,
		ActiveOnly: q.ActiveOnly,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *ToProductResponse(&it.Product, it.SupplierName))
	}
	return items, nil
}

// Delete elimina un producto. Sus movimientos caen en cascada (FK).
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// generateSKU genera un código EST-<timestamp base36>-<sufijo aleatorio>.
// El timestamp en ms garantiza orden y el sufijo evita colisiones en ráfaga.
func generateSKU() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:4])
	return "EST-" + ts + "-" + suffix
}

// ToProductResponse mapea la entidad al DTO de la API.
func ToProductResponse(p *entity.Product, supplierName *string) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		UnitType:     p.UnitType,
		Quantity:     p.Quantity,
		CostPrice:    p.CostPrice,
		MinStock:     p.MinStock,
		SupplierID:   p.SupplierID,
		SupplierName: supplierName,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
