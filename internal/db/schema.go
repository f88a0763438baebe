package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		brand TEXT NOT NULL,
		color TEXT NOT NULL,
		time_recorded_utc TEXT NOT NULL,
		time_recorded_gmt_minus_6 TEXT NOT NULL,
		last_modified_time TEXT NOT NULL,
		creation_date TEXT NOT NULL,
		max_promo_price REAL NOT NULL,
		min_promo_price REAL NOT NULL,
		max_list_price REAL NOT NULL,
		min_list_price REAL NOT NULL,
		discount_percentage REAL NOT NULL,
		promo_price REAL NOT NULL,
		sale_price REAL NOT NULL,
		list_price REAL NOT NULL,
		sort_price REAL NOT NULL,
		last_modified_by_whom TEXT NOT NULL,
		rating_average REAL NOT NULL,
		rating_count INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS promotions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		products_id INTEGER NOT NULL,
		months INTEGER NOT NULL,
		promo_type TEXT NOT NULL,
		promo_desc TEXT NOT NULL,
		min_purchase_amount INTEGER NOT NULL,
		min_purchase_unit INTEGER NOT NULL,
		discount_unit INTEGER NOT NULL,
		discount_amount REAL NOT NULL,
		promo_code INTEGER NOT NULL,
		item_price REAL NOT NULL,
		monthly_price REAL NOT NULL,
		final_price REAL NOT NULL,
		final_price_distance REAL NOT NULL,
		different_price BOOLEAN NOT NULL,
		FOREIGN KEY(products_id) REFERENCES products(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_product_id ON products (product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_promotions_products_id ON promotions (products_id)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL,
		title TEXT NOT NULL,
		brand TEXT NOT NULL,
		color TEXT NOT NULL,
		time_recorded_utc TEXT NOT NULL,
		time_recorded_gmt_minus_6 TEXT NOT NULL,
		last_modified_time TEXT NOT NULL,
		creation_date TEXT NOT NULL,
		max_promo_price DOUBLE PRECISION NOT NULL,
		min_promo_price DOUBLE PRECISION NOT NULL,
		max_list_price DOUBLE PRECISION NOT NULL,
		min_list_price DOUBLE PRECISION NOT NULL,
		discount_percentage DOUBLE PRECISION NOT NULL,
		promo_price DOUBLE PRECISION NOT NULL,
		sale_price DOUBLE PRECISION NOT NULL,
		list_price DOUBLE PRECISION NOT NULL,
		sort_price DOUBLE PRECISION NOT NULL,
		last_modified_by_whom TEXT NOT NULL,
		rating_average DOUBLE PRECISION NOT NULL,
		rating_count BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS promotions (
		id BIGSERIAL PRIMARY KEY,
		products_id BIGINT NOT NULL REFERENCES products(id),
		months BIGINT NOT NULL,
		promo_type TEXT NOT NULL,
		promo_desc TEXT NOT NULL,
		min_purchase_amount BIGINT NOT NULL,
		min_purchase_unit BIGINT NOT NULL,
		discount_unit BIGINT NOT NULL,
		discount_amount DOUBLE PRECISION NOT NULL,
		promo_code BIGINT NOT NULL,
		item_price DOUBLE PRECISION NOT NULL,
		monthly_price DOUBLE PRECISION NOT NULL,
		final_price DOUBLE PRECISION NOT NULL,
		final_price_distance DOUBLE PRECISION NOT NULL,
		different_price BOOLEAN NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_product_id ON products (product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_promotions_products_id ON promotions (products_id)`,
}

func schemaFor(d Dialect) []string {
	if d == Postgres {
		return postgresSchema
	}
	return sqliteSchema
}

// EnsureSchema creates the products and promotions tables and their indexes.
func EnsureSchema(ctx context.Context, conn *sql.DB, d Dialect) error {
	for _, stmt := range schemaFor(d) {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// EnsureSchemaPool is EnsureSchema for a pgx pool.
func EnsureSchemaPool(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range postgresSchema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
