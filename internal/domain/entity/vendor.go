package entity

import "time"

// Vendor es el vendedor real de una compra: la empresa o persona a la que se
// le compró una entrada concreta. Se asocia al movimiento, no al producto.
type Vendor struct {
	ID        string
	Name      string
	Phone     string
	CreatedAt time.Time
}
