package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// schema DDL idempotente: tablas, FKs e índices.
//
// Referencias: supplier_id y vendor_id son débiles (SET NULL al borrar);
// movements.product_id es fuerte (CASCADE: borrar el producto borra su libro).
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	username      TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS suppliers (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	contact    TEXT NOT NULL DEFAULT '',
	phone      TEXT NOT NULL DEFAULT '',
	email      TEXT NOT NULL DEFAULT '',
	address    TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS vendors (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	phone      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS products (
	id          UUID PRIMARY KEY,
	sku         TEXT UNIQUE NOT NULL,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	unit_type   TEXT NOT NULL DEFAULT 'unit' CHECK (unit_type IN ('unit', 'weight')),
	quantity    NUMERIC(14,3) NOT NULL DEFAULT 0 CHECK (quantity >= 0),
	cost_price  NUMERIC(14,2) NOT NULL DEFAULT 0 CHECK (cost_price >= 0),
	min_stock   NUMERIC(14,3) NOT NULL DEFAULT 0,
	supplier_id UUID REFERENCES suppliers(id) ON DELETE SET NULL,
	is_active   BOOLEAN NOT NULL DEFAULT true,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS movements (
	id         UUID PRIMARY KEY,
	product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	type       TEXT NOT NULL CHECK (type IN ('entry', 'exit', 'loss')),
	quantity   NUMERIC(14,3) NOT NULL CHECK (quantity > 0),
	unit_cost  NUMERIC(14,2) NOT NULL DEFAULT 0 CHECK (unit_cost >= 0),
	notes      TEXT NOT NULL DEFAULT '',
	vendor_id  UUID REFERENCES vendors(id) ON DELETE SET NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_products_sku ON products(sku);
CREATE INDEX IF NOT EXISTS idx_products_supplier ON products(supplier_id);
CREATE INDEX IF NOT EXISTS idx_movements_product ON movements(product_id);
CREATE INDEX IF NOT EXISTS idx_movements_type ON movements(type);
CREATE INDEX IF NOT EXISTS idx_movements_date ON movements(created_at);
CREATE INDEX IF NOT EXISTS idx_movements_vendor ON movements(vendor_id);
`

const (
	seedAdminUsername = "admin"
	seedAdminPassword = "admin123"
)

// InitSchema crea las tablas si no existen y siembra el usuario admin cuando
// la tabla de usuarios está vacía.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("crear schema: %w", err)
	}
	return seedAdmin(ctx, pool)
}

func seedAdmin(ctx context.Context, pool *pgxpool.Pool) error {
	users := NewUserRepository(pool)
	n, err := users.Count()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin: %w", err)
	}
	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, username, password_hash, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (username) DO NOTHING`,
		uuid.New().String(), seedAdminUsername, string(hash), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}
