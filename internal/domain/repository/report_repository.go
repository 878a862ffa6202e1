package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/detailing-stock-api/internal/domain/entity"
)

// InventoryReportRow producto con sus acumulados históricos por tipo de movimiento.
type InventoryReportRow struct {
	Product      entity.Product
	SupplierName *string
	TotalEntries decimal.Decimal
	TotalExits   decimal.Decimal
	TotalLosses  decimal.Decimal
}

// MonthExpenses valor movido (quantity * unit_cost) agrupado por mes y tipo.
type MonthExpenses struct {
	Month        string // YYYY-MM
	TotalEntries decimal.Decimal
	TotalExits   decimal.Decimal
	TotalLosses  decimal.Decimal
}

// DayCounts número de movimientos por tipo en un día.
type DayCounts struct {
	Entries int64
	Exits   int64
	Losses  int64
}

// ReportRepository consultas de solo lectura para dashboard, reportes y export.
type ReportRepository interface {
	CountProducts(ctx context.Context) (int64, error)
	// StockValue suma quantity * cost_price de todos los productos.
	StockValue(ctx context.Context) (decimal.Decimal, error)
	LowStock(ctx context.Context, limit int) ([]*entity.Product, error)
	RecentMovements(ctx context.Context, limit int) ([]*MovementListItem, error)
	CountsByDay(ctx context.Context, day time.Time) (DayCounts, error)
	// EntrySpendByMonth suma quantity * unit_cost de las entradas del mes de la fecha dada.
	EntrySpendByMonth(ctx context.Context, month time.Time) (decimal.Decimal, error)
	MonthlyExpenses(ctx context.Context, months int) ([]MonthExpenses, error)
	InventoryRows(ctx context.Context) ([]*InventoryReportRow, error)
}
