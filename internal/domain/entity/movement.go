package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeEntry = "entry" // entrada (compra)
	MovementTypeExit  = "exit"  // salida (consumo); incluye salida con retorno
	MovementTypeLoss  = "loss"  // pérdida o daño
)

// ValidMovementType indica si el tipo es uno de los soportados.
func ValidMovementType(t string) bool {
	return t == MovementTypeEntry || t == MovementTypeExit || t == MovementTypeLoss
}

// Movement es un hecho del libro de movimientos: un evento que afecta el stock
// de un producto. Quantity siempre es positiva; el signo lo da el tipo.
// Un movimiento es inmutable salvo por la edición explícita de
// quantity/unit_cost/notes, que el motor compensa contra el stock actual.
type Movement struct {
	ID        string
	ProductID string // referencia fuerte; se elimina en cascada con el producto
	Type      string // entry | exit | loss
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal // snapshot: costo de entrada o costo promedio vigente en salidas
	Notes     string
	VendorID  *string // referencia débil al vendedor real de la compra (solo entradas)
	CreatedAt time.Time
}

// StockEffect devuelve el delta de stock con signo que este movimiento aplica:
// +Quantity para entradas, -Quantity para salidas y pérdidas.
func (m *Movement) StockEffect() decimal.Decimal {
	if m.Type == MovementTypeEntry {
		return m.Quantity
	}
	return m.Quantity.Neg()
}

// EffectOf calcula el efecto de stock para un tipo y una cantidad dados,
// sin necesidad de construir el movimiento.
func EffectOf(movementType string, quantity decimal.Decimal) decimal.Decimal {
	if movementType == MovementTypeEntry {
		return quantity
	}
	return quantity.Neg()
}
