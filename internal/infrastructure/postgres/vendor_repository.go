package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/detailing-stock-api/internal/domain"
	"github.com/jhoicas/detailing-stock-api/internal/domain/entity"
	"github.com/jhoicas/detailing-stock-api/internal/domain/repository"
)

var _ repository.VendorRepository = (*VendorRepo)(nil)

// VendorRepo implementación del puerto VendorRepository sobre PostgreSQL.
type VendorRepo struct {
	q Querier
}

// NewVendorRepository construye el adaptador de persistencia para vendedores.
func NewVendorRepository(q Querier) *VendorRepo {
	return &VendorRepo{q: q}
}

// Create persiste un vendedor.
func (r *VendorRepo) Create(v *entity.Vendor) error {
	query := `INSERT INTO vendors (id, name, phone, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, v.ID, v.Name, v.Phone, v.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vendor: %w", err)
	}
	return nil
}

// GetByID obtiene un vendedor por ID.
func (r *VendorRepo) GetByID(id string) (*entity.Vendor, error) {
	query := `SELECT id, name, phone, created_at FROM vendors WHERE id = $1`
	var v entity.Vendor
	err := r.q.QueryRow(context.Background(), query, id).Scan(&v.ID, &v.Name, &v.Phone, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return &v, nil
}

// Update actualiza un vendedor.
func (r *VendorRepo) Update(v *entity.Vendor) error {
	query := `UPDATE vendors SET name = $2, phone = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, v.ID, v.Name, v.Phone)
	if err != nil {
		return fmt.Errorf("update vendor: %w", err)
	}
	return nil
}

// List lista vendedores ordenados por nombre; search filtra por nombre o
// teléfono sin distinguir mayúsculas ni acentos.
func (r *VendorRepo) List(search string) ([]*entity.Vendor, error) {
	query := `SELECT id, name, phone, created_at FROM vendors`
	var args []any
	if search != "" {
		args = append(args, "%"+normalizeSearch(search)+"%")
		query += fmt.Sprintf(" WHERE (%s LIKE $1 OR %s LIKE $1)", searchable("name"), searchable("phone"))
	}
	query += " ORDER BY name"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()

	var list []*entity.Vendor
	for rows.Next() {
		var v entity.Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.Phone, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// Delete elimina un vendedor. Sus entradas quedan con vendor_id NULL (FK SET NULL).
func (r *VendorRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vendor: %w", err)
	}
	return nil
}
