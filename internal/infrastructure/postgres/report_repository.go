package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/detailing-stock-api/internal/domain/entity"
	"github.com/jhoicas/detailing-stock-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para dashboard, reportes y export.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de consultas de reporte.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// CountProducts número total de productos.
func (r *ReportRepo) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// StockValue suma quantity * cost_price de todos los productos.
func (r *ReportRepo) StockValue(ctx context.Context) (decimal.Decimal, error) {
	var v decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(quantity * cost_price), 0) FROM products`).Scan(&v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("stock value: %w", err)
	}
	return v, nil
}

// LowStock productos activos con quantity <= min_stock, los más críticos primero.
func (r *ReportRepo) LowStock(ctx context.Context, limit int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active AND quantity <= min_stock
		ORDER BY quantity - min_stock
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.SKU, &p.Name, &p.Description, &p.UnitType, &p.Quantity,
			&p.CostPrice, &p.MinStock, &p.SupplierID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// RecentMovements últimos movimientos con producto resuelto.
func (r *ReportRepo) RecentMovements(ctx context.Context, limit int) ([]*repository.MovementListItem, error) {
	query := `
		SELECT m.id, m.product_id, m.type, m.quantity, m.unit_cost, m.notes, m.vendor_id, m.created_at,
		       p.name, p.sku
		FROM movements m
		JOIN products p ON p.id = m.product_id
		ORDER BY m.created_at DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent movements: %w", err)
	}
	defer rows.Close()
	return scanMovementItems(rows)
}

// CountsByDay número de movimientos por tipo en el día dado (hora local del proceso).
func (r *ReportRepo) CountsByDay(ctx context.Context, day time.Time) (repository.DayCounts, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)
	query := `
		SELECT
			count(*) FILTER (WHERE type = 'entry'),
			count(*) FILTER (WHERE type = 'exit'),
			count(*) FILTER (WHERE type = 'loss')
		FROM movements
		WHERE created_at >= $1 AND created_at < $2`
	var c repository.DayCounts
	if err := r.q.QueryRow(ctx, query, start, end).Scan(&c.Entries, &c.Exits, &c.Losses); err != nil {
		return repository.DayCounts{}, fmt.Errorf("counts by day: %w", err)
	}
	return c, nil
}

// EntrySpendByMonth suma quantity * unit_cost de las entradas del mes de la fecha dada.
func (r *ReportRepo) EntrySpendByMonth(ctx context.Context, month time.Time) (decimal.Decimal, error) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	end := start.AddDate(0, 1, 0)
	query := `
		SELECT COALESCE(SUM(quantity * unit_cost), 0)
		FROM movements
		WHERE type = 'entry' AND created_at >= $1 AND created_at < $2`
	var v decimal.Decimal
	if err := r.q.QueryRow(ctx, query, start, end).Scan(&v); err != nil {
		return decimal.Zero, fmt.Errorf("entry spend by month: %w", err)
	}
	return v, nil
}

// MonthlyExpenses valor movido por mes y tipo en los últimos n meses,
// ascendente por mes.
func (r *ReportRepo) MonthlyExpenses(ctx context.Context, months int) ([]repository.MonthExpenses, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(months - 1), 0)
	query := `
		SELECT to_char(created_at, 'YYYY-MM') AS month,
		       COALESCE(SUM(quantity * unit_cost) FILTER (WHERE type = 'entry'), 0),
		       COALESCE(SUM(quantity * unit_cost) FILTER (WHERE type = 'exit'), 0),
		       COALESCE(SUM(quantity * unit_cost) FILTER (WHERE type = 'loss'), 0)
		FROM movements
		WHERE created_at >= $1
		GROUP BY month
		ORDER BY month`
	rows, err := r.q.Query(ctx, query, start)
	if err != nil {
		return nil, fmt.Errorf("monthly expenses: %w", err)
	}
	defer rows.Close()

	var list []repository.MonthExpenses
	for rows.Next() {
		var m repository.MonthExpenses
		if err := rows.Scan(&m.Month, &m.TotalEntries, &m.TotalExits, &m.TotalLosses); err != nil {
			return nil, fmt.Errorf("scan month expenses: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// InventoryRows cada producto con su proveedor y los acumulados históricos
// por tipo de movimiento.
func (r *ReportRepo) InventoryRows(ctx context.Context) ([]*repository.InventoryReportRow, error) {
	query := `
		SELECT p.id, p.sku, p.name, p.description, p.unit_type, p.quantity, p.cost_price,
		       p.min_stock, p.supplier_id, p.is_active, p.created_at, p.updated_at, s.name,
		       COALESCE(SUM(m.quantity) FILTER (WHERE m.type = 'entry'), 0),
		       COALESCE(SUM(m.quantity) FILTER (WHERE m.type = 'exit'), 0),
		       COALESCE(SUM(m.quantity) FILTER (WHERE m.type = 'loss'), 0)
		FROM products p
		LEFT JOIN suppliers s ON s.id = p.supplier_id
		LEFT JOIN movements m ON m.product_id = p.id
		GROUP BY p.id, s.name
		ORDER BY p.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("inventory rows: %w", err)
	}
	defer rows.Close()

	var list []*repository.InventoryReportRow
	for rows.Next() {
		var row repository.InventoryReportRow
		if err := rows.Scan(
			&row.Product.ID, &row.Product.SKU, &row.Product.Name, &row.Product.Description,
			&row.Product.UnitType, &row.Product.Quantity, &row.Product.CostPrice, &row.Product.MinStock,
			&row.Product.SupplierID, &row.Product.IsActive, &row.Product.CreatedAt, &row.Product.UpdatedAt,
			&row.SupplierName, &row.TotalEntries, &row.TotalExits, &row.TotalLosses,
		); err != nil {
			return nil, fmt.Errorf("scan inventory row: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}
