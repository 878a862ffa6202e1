package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryRequest registra una entrada (compra). UnitCost nil = usar el costo
// promedio vigente del producto. VendorID opcional: vendedor real de la compra.
type EntryRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unit_cost"`
	VendorID  *string          `json:"vendor_id"`
	Notes     string           `json:"notes"`
}

// ExitRequest registra una salida o una pérdida.
type ExitRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Notes     string          `json:"notes"`
}

// ExitReturnRequest salida con retorno: sale una cantidad, retorna parte y el
// consumo (salida - retorno) es lo que se descuenta del stock.
type ExitReturnRequest struct {
	ProductID      string          `json:"product_id"`
	QuantityOut    decimal.Decimal `json:"quantity_out"`
	QuantityReturn decimal.Decimal `json:"quantity_return"`
	Notes          string          `json:"notes"`
}

// EditMovementRequest edición de un movimiento. Campos nil = sin cambio.
type EditMovementRequest struct {
	Quantity *decimal.Decimal `json:"quantity"`
	UnitCost *decimal.Decimal `json:"unit_cost"`
	Notes    *string          `json:"notes"`
}

// MovementResponse representación de un movimiento en la API.
type MovementResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	ProductSKU  string          `json:"product_sku,omitempty"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Notes       string          `json:"notes"`
	VendorID    *string         `json:"vendor_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// EntryResponse resultado de registrar una entrada.
type EntryResponse struct {
	Message        string          `json:"message"`
	Product        ProductResponse `json:"product"`
	PreviousCost   decimal.Decimal `json:"previousCost"`
	NewAverageCost decimal.Decimal `json:"newAverageCost"`
}

// StockMutationResponse resultado de una salida o pérdida.
type StockMutationResponse struct {
	Message string          `json:"message"`
	Product ProductResponse `json:"product"`
}

// ExitReturnResponse resultado de una salida con retorno.
type ExitReturnResponse struct {
	Message  string          `json:"message"`
	Product  ProductResponse `json:"product"`
	Consumed decimal.Decimal `json:"consumed"`
}

// EditMovementResponse resultado de editar un movimiento: el delta aplicado al
// stock y el stock resultante.
type EditMovementResponse struct {
	Message         string           `json:"message"`
	Movement        MovementResponse `json:"movement"`
	InventoryChange decimal.Decimal  `json:"inventoryChange"`
	NewInventory    decimal.Decimal  `json:"newInventory"`
}

// DeleteMovementResponse resultado de eliminar un movimiento (reversión).
type DeleteMovementResponse struct {
	Message         string          `json:"message"`
	InventoryChange decimal.Decimal `json:"inventoryChange"`
	NewInventory    decimal.Decimal `json:"newInventory"`
}

// ListMovementsQuery filtros del listado de movimientos. Period tiene
// prioridad sobre el rango explícito: daily, weekly, biweekly, monthly.
type ListMovementsQuery struct {
	ProductID string `query:"product_id"`
	Type      string `query:"type"`
	Period    string `query:"period"`
	StartDate string `query:"start_date"` // RFC 3339 o YYYY-MM-DD
	EndDate   string `query:"end_date"`
}
