package postgres

import (
	"context"
	"fmt"
)

// schemaStatements DDL idempotente del catálogo y de usuarios.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		image_url   TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id                TEXT PRIMARY KEY,
		sku               TEXT NOT NULL UNIQUE,
		category_id       TEXT NOT NULL REFERENCES categories(id),
		recommendation_id INTEGER NOT NULL DEFAULT 0,
		title             TEXT NOT NULL,
		price             NUMERIC(12,2) NOT NULL,
		sale_price        NUMERIC(12,2) NOT NULL,
		product_art_url   TEXT NOT NULL DEFAULT '',
		description       TEXT NOT NULL DEFAULT '',
		product_details   JSONB,
		inventory         INTEGER NOT NULL DEFAULT 0,
		lead_time         INTEGER NOT NULL DEFAULT 0,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id)`,
	`CREATE TABLE IF NOT EXISTS users (
		id                   TEXT PRIMARY KEY,
		user_name            TEXT NOT NULL,
		normalized_user_name TEXT NOT NULL UNIQUE,
		email                TEXT NOT NULL DEFAULT '',
		normalized_email     TEXT NOT NULL DEFAULT '',
		password_hash        TEXT NOT NULL,
		security_stamp       TEXT NOT NULL,
		name                 TEXT NOT NULL DEFAULT '',
		created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// EnsureSchema crea las tablas si no existen. Seguro de ejecutar en cada arranque.
func EnsureSchema(ctx context.Context, q Querier) error {
	for i, stmt := range schemaStatements {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
