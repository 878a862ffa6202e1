package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/detailing-stock-api/internal/domain/entity"
	"github.com/jhoicas/detailing-stock-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL
// (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de persistencia para movimientos.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento del libro. Genera el ID si viene vacío.
func (r *MovementRepo) Create(m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, product_id, type, quantity, unit_cost, notes, vendor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductID, m.Type, m.Quantity, m.UnitCost, m.Notes, m.VendorID, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `
		SELECT id, product_id, type, quantity, unit_cost, notes, vendor_id, created_at
		FROM movements WHERE id = $1`
	var m entity.Movement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.UnitCost, &m.Notes, &m.VendorID, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// GetWithProduct obtiene un movimiento con nombre y SKU del producto (JOIN).
func (r *MovementRepo) GetWithProduct(id string) (*repository.MovementListItem, error) {
	query := `
		SELECT m.id, m.product_id, m.type, m.quantity, m.unit_cost, m.notes, m.vendor_id, m.created_at,
		       p.name, p.sku
		FROM movements m
		JOIN products p ON p.id = m.product_id
		WHERE m.id = $1`
	var it repository.MovementListItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&it.Movement.ID, &it.Movement.ProductID, &it.Movement.Type, &it.Movement.Quantity,
		&it.Movement.UnitCost, &it.Movement.Notes, &it.Movement.VendorID, &it.Movement.CreatedAt,
		&it.ProductName, &it.ProductSKU,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement with product: %w", err)
	}
	return &it, nil
}

// Update actualiza quantity, unit_cost y notes de un movimiento.
func (r *MovementRepo) Update(m *entity.Movement) error {
	query := `
		UPDATE movements SET quantity = $2, unit_cost = $3, notes = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, m.ID, m.Quantity, m.UnitCost, m.Notes)
	if err != nil {
		return fmt.Errorf("update movement: %w", err)
	}
	return nil
}

// Delete elimina un movimiento por ID.
func (r *MovementRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	return nil
}

// List lista movimientos con filtros de producto, tipo y rango de fechas,
// más recientes primero.
func (r *MovementRepo) List(filter repository.MovementFilter) ([]*repository.MovementListItem, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT m.id, m.product_id, m.type, m.quantity, m.unit_cost, m.notes, m.vendor_id, m.created_at,
		       p.name, p.sku
		FROM movements m
		JOIN products p ON p.id = m.product_id
		WHERE 1=1`)
	var args []any
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		sb.WriteString(fmt.Sprintf(" AND m.product_id = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		sb.WriteString(fmt.Sprintf(" AND m.type = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		sb.WriteString(fmt.Sprintf(" AND m.created_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		sb.WriteString(fmt.Sprintf(" AND m.created_at <= $%d", len(args)))
	}
	sb.WriteString(" ORDER BY m.created_at DESC")

	rows, err := r.q.Query(context.Background(), sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return scanMovementItems(rows)
}

// ListEntriesByVendor lista las entradas compradas a un vendedor, más recientes primero.
func (r *MovementRepo) ListEntriesByVendor(vendorID string) ([]*repository.MovementListItem, error) {
	query := `
		SELECT m.id, m.product_id, m.type, m.quantity, m.unit_cost, m.notes, m.vendor_id, m.created_at,
		       p.name, p.sku
		FROM movements m
		JOIN products p ON p.id = m.product_id
		WHERE m.type = $1 AND m.vendor_id = $2
		ORDER BY m.created_at DESC`
	rows, err := r.q.Query(context.Background(), query, entity.MovementTypeEntry, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list entries by vendor: %w", err)
	}
	defer rows.Close()
	return scanMovementItems(rows)
}

func scanMovementItems(rows pgx.Rows) ([]*repository.MovementListItem, error) {
	var list []*repository.MovementListItem
	for rows.Next() {
		var it repository.MovementListItem
		if err := rows.Scan(
			&it.Movement.ID, &it.Movement.ProductID, &it.Movement.Type, &it.Movement.Quantity,
			&it.Movement.UnitCost, &it.Movement.Notes, &it.Movement.VendorID, &it.Movement.CreatedAt,
			&it.ProductName, &it.ProductSKU,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
