// Package main provides a CLI tool for preparing the database schema and
// seeding it with an admin account and demo catalog data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"tillpoint/internal/config"
	appctx "tillpoint/internal/core/context"
	"tillpoint/internal/core/id"
	"tillpoint/internal/core/types"
	"tillpoint/internal/infrastructure/storage/postgres"
	"tillpoint/pkg/logger"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id            UUID PRIMARY KEY,
		name          TEXT NOT NULL,
		category      TEXT NOT NULL,
		cost_price    NUMERIC(14,2) NOT NULL CHECK (cost_price >= 0),
		current_stock BIGINT NOT NULL CHECK (current_stock >= 0),
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category)`,
	`CREATE TABLE IF NOT EXISTS bills (
		id             UUID PRIMARY KEY,
		bill_number    TEXT NOT NULL,
		status         TEXT NOT NULL DEFAULT 'pending',
		payment_method TEXT NOT NULL,
		total_cost     NUMERIC(14,2) NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_bills_number ON bills (bill_number)`,
	`CREATE INDEX IF NOT EXISTS idx_bills_created_at ON bills (created_at)`,
	`CREATE TABLE IF NOT EXISTS bill_items (
		bill_id    UUID NOT NULL REFERENCES bills (id) ON DELETE CASCADE,
		line_no    INT NOT NULL,
		product_id UUID NOT NULL,
		quantity   BIGINT NOT NULL CHECK (quantity >= 1),
		cost       NUMERIC(14,2) NOT NULL,
		PRIMARY KEY (bill_id, line_no)
	)`,
	`CREATE TABLE IF NOT EXISTS daily_income (
		date         DATE PRIMARY KEY,
		total_income NUMERIC(14,2) NOT NULL DEFAULT 0,
		bill_count   BIGINT NOT NULL DEFAULT 0,
		cash_total   NUMERIC(14,2) NOT NULL DEFAULT 0,
		card_total   NUMERIC(14,2) NOT NULL DEFAULT 0,
		upi_total    NUMERIC(14,2) NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'staff',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (email)`,
	`CREATE TABLE IF NOT EXISTS audit_log (
		id                 UUID PRIMARY KEY,
		entity_type        TEXT NOT NULL,
		entity_id          UUID NOT NULL,
		action             TEXT NOT NULL,
		user_id            TEXT NOT NULL DEFAULT '',
		user_email         TEXT NOT NULL DEFAULT '',
		changes            JSONB,
		changes_compressed BYTEA,
		compression_algo   TEXT NOT NULL DEFAULT 'none',
		created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_entity ON audit_log (entity_type, entity_id)`,
}

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("failed to load config", "error", err)
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.PGDSN))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("connected to database")

	if err := ensureSchema(ctx, pool); err != nil {
		log.Fatalw("failed to ensure schema", "error", err)
	}
	log.Info("schema ensured")

	if err := seedAdminUser(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoProducts(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo products", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func ensureSchema(ctx context.Context, pool *postgres.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	return nil
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@tillpoint.local"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	var existingID id.ID
	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, adminEmail).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check admin user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)`,
		id.New(), "Administrator", adminEmail, string(hash), appctx.RoleAdmin,
	)
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created", "email", adminEmail)
	return nil
}

func seedDemoProducts(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	demo := []struct {
		name     string
		category string
		price    types.Money
		stock    int64
	}{
		{"Rice 1kg", "Grains", types.MustMoney("2.50"), 200},
		{"Wheat Flour 1kg", "Grains", types.MustMoney("1.80"), 150},
		{"Milk 1L", "Dairy", types.MustMoney("1.20"), 80},
		{"Butter 250g", "Dairy", types.MustMoney("3.40"), 40},
		{"Green Tea 100g", "Beverages", types.MustMoney("4.10"), 60},
		{"Coffee 250g", "Beverages", types.MustMoney("6.90"), 30},
	}

	for _, p := range demo {
		tag, err := pool.Exec(ctx, `
			INSERT INTO products (id, name, category, cost_price, current_stock)
			SELECT $1, $2, $3, $4, $5
			WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $2)`,
			id.New(), p.name, p.category, p.price, p.stock,
		)
		if err != nil {
			return fmt.Errorf("insert demo product %q: %w", p.name, err)
		}
		if tag.RowsAffected() > 0 {
			log.Infow("demo product created", "name", p.name)
		}
	}
	return nil
}
