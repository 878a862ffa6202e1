package entity

import "time"

// Supplier es el proveedor de catálogo: dónde se suele comprar un producto.
// Es independiente de Vendor (quién vendió una entrada concreta).
type Supplier struct {
	ID        string
	Name      string
	Contact   string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
}
