package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de unidad de un producto.
const (
	UnitTypeUnit   = "unit"   // se cuenta por unidades
	UnitTypeWeight = "weight" // se cuenta por peso (kg)
)

// Product representa un producto del inventario (insumos de estética automotriz).
// Quantity y CostPrice son una proyección mutable derivada del historial de
// movimientos: solo el motor de inventario debe modificarlas.
// CostPrice es costo promedio ponderado, recalculado en cada entrada.
type Product struct {
	ID          string
	SKU         string // código único generado, inmutable
	Name        string
	Description string
	UnitType    string          // unit | weight
	Quantity    decimal.Decimal // nunca negativo
	CostPrice   decimal.Decimal // promedio ponderado, 2 decimales
	MinStock    decimal.Decimal
	SupplierID  *string // referencia débil al proveedor de catálogo
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UnitLabel devuelve la etiqueta de unidad para mostrar cantidades ("kg" o "un").
func (p *Product) UnitLabel() string {
	if p.UnitType == UnitTypeWeight {
		return "kg"
	}
	return "un"
}
