package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/detailing-stock-api/internal/domain"
	"github.com/jhoicas/detailing-stock-api/internal/domain/entity"
	"github.com/jhoicas/detailing-stock-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, name, description, unit_type, quantity, cost_price, min_stock, supplier_id, is_active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
// Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Name, product.Description, product.UnitType,
		product.Quantity, product.CostPrice, product.MinStock, product.SupplierID,
		product.IsActive, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate obtiene un producto bloqueando su fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción: serializa las mutaciones
// concurrentes sobre el mismo producto.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(query, id string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.UnitType, &p.Quantity,
		&p.CostPrice, &p.MinStock, &p.SupplierID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetWithSupplier obtiene un producto con el nombre del proveedor resuelto (JOIN).
func (r *ProductRepo) GetWithSupplier(id string) (*repository.ProductListItem, error) {
	query := `
		SELECT p.id, p.sku, p.name, p.description, p.unit_type, p.quantity, p.cost_price,
		       p.min_stock, p.supplier_id, p.is_active, p.created_at, p.updated_at, s.name
		FROM products p
		LEFT JOIN suppliers s ON s.id = p.supplier_id
		WHERE p.id = $1`
	var it repository.ProductListItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&it.Product.ID, &it.Product.SKU, &it.Product.Name, &it.Product.Description,
		&it.Product.UnitType, &it.Product.Quantity, &it.Product.CostPrice, &it.Product.MinStock,
		&it.Product.SupplierID, &it.Product.IsActive, &it.Product.CreatedAt, &it.Product.UpdatedAt,
		&it.SupplierName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product with supplier: %w", err)
	}
	return &it, nil
}

// Update actualiza los campos de catálogo de un producto. Quantity se maneja
// solo vía UpdateStock/UpdateStockAndCost.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, unit_type = $4, cost_price = $5,
		    min_stock = $6, supplier_id = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.UnitType,
		product.CostPrice, product.MinStock, product.SupplierID, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock actualiza solo el stock (usado por el motor de movimientos).
func (r *ProductRepo) UpdateStock(productID string, quantity decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET quantity = $2, updated_at = now() WHERE id = $1`,
		productID, quantity,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// UpdateStockAndCost actualiza stock y costo promedio en una sola escritura
// (usado por el motor al registrar entradas).
func (r *ProductRepo) UpdateStockAndCost(productID string, quantity, costPrice decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET quantity = $2, cost_price = $3, updated_at = now() WHERE id = $1`,
		productID, quantity, costPrice,
	)
	if err != nil {
		return fmt.Errorf("update product stock and cost: %w", err)
	}
	return nil
}

// SetActive activa o desactiva un producto.
func (r *ProductRepo) SetActive(id string, active bool) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET is_active = $2, updated_at = now() WHERE id = $1`,
		id, active,
	)
	if err != nil {
		return fmt.Errorf("set product active: %w", err)
	}
	return nil
}

// List lista productos con filtros: búsqueda sin acentos sobre name/sku/description,
// proveedor, stock bajo y solo activos. Ordena por nombre.
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*repository.ProductListItem, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT p.id, p.sku, p.name, p.description, p.unit_type, p.quantity, p.cost_price,
		       p.min_stock, p.supplier_id, p.is_active, p.created_at, p.updated_at, s.name
		FROM products p
		LEFT JOIN suppliers s ON s.id = p.supplier_id
		WHERE 1=1`)
	var args []any
	if filter.Search != "" {
		term := "%" + normalizeSearch(filter.Search) + "%"
		args = append(args, term)
		n := fmt.Sprintf("$%d", len(args))
		sb.WriteString(fmt.Sprintf(" AND (%s LIKE %s OR %s LIKE %s OR %s LIKE %s)",
			searchable("p.name"), n, searchable("p.sku"), n, searchable("p.description"), n))
	}
	if filter.SupplierID != "" {
		args = append(args, filter.SupplierID)
		sb.WriteString(fmt.Sprintf(" AND p.supplier_id = $%d", len(args)))
	}
	if filter.LowStock {
		sb.WriteString(" AND p.quantity <= p.min_stock")
	}
	if filter.ActiveOnly {
		sb.WriteString(" AND p.is_active")
	}
	sb.WriteString(" ORDER BY p.name")

	rows, err := r.q.Query(context.Background(), sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*repository.ProductListItem
	for rows.Next() {
		var it repository.ProductListItem
		if err := rows.Scan(
			&it.Product.ID, &it.Product.SKU, &it.Product.Name, &it.Product.Description,
			&it.Product.UnitType, &it.Product.Quantity, &it.Product.CostPrice, &it.Product.MinStock,
			&it.Product.SupplierID, &it.Product.IsActive, &it.Product.CreatedAt, &it.Product.UpdatedAt,
			&it.SupplierName,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Delete elimina un producto. Sus movimientos caen en cascada (FK).
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
