package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto. El SKU se genera en el servidor.
type CreateProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	UnitType    string           `json:"unit_type"` // unit | weight
	CostPrice   *decimal.Decimal `json:"cost_price"`
	MinStock    *decimal.Decimal `json:"min_stock"`
	SupplierID  *string          `json:"supplier_id"`
}

// UpdateProductRequest edición de catálogo. Campos nil = sin cambio.
// Quantity no se edita aquí: solo el motor de movimientos la modifica.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	UnitType    *string          `json:"unit_type"`
	CostPrice   *decimal.Decimal `json:"cost_price"`
	MinStock    *decimal.Decimal `json:"min_stock"`
	SupplierID  *string          `json:"supplier_id"`
}

// ProductResponse representación de producto en la API.
type ProductResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	UnitType     string          `json:"unit_type"`
	Quantity     decimal.Decimal `json:"quantity"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	MinStock     decimal.Decimal `json:"min_stock"`
	SupplierID   *string         `json:"supplier_id"`
	SupplierName *string         `json:"supplier_name,omitempty"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ListProductsQuery filtros del listado de productos.
type ListProductsQuery struct {
	Search     string `query:"search"`
	SupplierID string `query:"supplier_id"`
	LowStock   bool   `query:"low_stock"`
	ActiveOnly bool   `query:"active_only"`
}
