package database

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrator handles database schema migrations. Migrations live in code so
// the binary is self-contained; each one runs at most once, tracked in the
// schema_migrations table.
type Migrator struct {
	pool *pgxpool.Pool
}

func NewMigrator(pool *pgxpool.Pool) *Migrator {
	return &Migrator{pool: pool}
}

type migration struct {
	name string
	sql  string
}

var migrations = []migration{
	{
		name: "001_create_users",
		sql: `
			CREATE TABLE IF NOT EXISTS users (
				id SERIAL PRIMARY KEY,
				name TEXT NOT NULL,
				username TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				role TEXT NOT NULL,
				is_active BOOLEAN NOT NULL DEFAULT TRUE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
	},
	{
		name: "002_create_price_records",
		sql: `
			CREATE TABLE IF NOT EXISTS price_records (
				id SERIAL PRIMARY KEY,
				origin TEXT NOT NULL,
				destination TEXT NOT NULL,
				truck_type TEXT NOT NULL,
				subcontractor TEXT NOT NULL,
				base_price NUMERIC NOT NULL DEFAULT 0 CHECK (base_price >= 0),
				selling_base_price NUMERIC NOT NULL DEFAULT 0 CHECK (selling_base_price >= 0),
				drop_off_fee NUMERIC NOT NULL DEFAULT 0,
				payment_type TEXT NOT NULL DEFAULT '',
				credit_days INTEGER NOT NULL DEFAULT 0
			)`,
	},
	{
		name: "003_create_jobs",
		sql: `
			CREATE TABLE IF NOT EXISTS jobs (
				id TEXT PRIMARY KEY,
				origin TEXT NOT NULL,
				destination TEXT NOT NULL,
				truck_type TEXT NOT NULL,
				requester_id INTEGER NOT NULL,
				requester_name TEXT NOT NULL,
				subcontractor TEXT NOT NULL DEFAULT '',
				driver_name TEXT NOT NULL DEFAULT '',
				driver_phone TEXT NOT NULL DEFAULT '',
				license_plate TEXT NOT NULL DEFAULT '',
				cost NUMERIC NOT NULL DEFAULT 0,
				selling_price NUMERIC NOT NULL DEFAULT 0,
				extra_charge NUMERIC NOT NULL DEFAULT 0,
				extra_charges JSONB NOT NULL DEFAULT '[]',
				status TEXT NOT NULL,
				accounting_status TEXT NOT NULL DEFAULT '',
				accounting_remark TEXT NOT NULL DEFAULT '',
				is_base_cost_locked BOOLEAN NOT NULL DEFAULT FALSE,
				drops JSONB NOT NULL DEFAULT '[]',
				billing_doc_number TEXT NOT NULL DEFAULT '',
				billing_date TIMESTAMPTZ,
				payment_date TIMESTAMPTZ,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
	},
	{
		name: "004_create_audit_logs",
		sql: `
			CREATE TABLE IF NOT EXISTS audit_logs (
				id UUID PRIMARY KEY,
				job_id TEXT NOT NULL,
				user_id TEXT NOT NULL,
				user_name TEXT NOT NULL,
				user_role TEXT NOT NULL,
				ts TIMESTAMPTZ NOT NULL,
				field TEXT NOT NULL,
				old_value TEXT NOT NULL DEFAULT '',
				new_value TEXT NOT NULL DEFAULT '',
				reason TEXT NOT NULL DEFAULT '',
				seq BIGSERIAL
			)`,
	},
	{
		name: "005_index_jobs_status",
		sql:  `CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status)`,
	},
	{
		name: "006_index_audit_logs_job",
		sql:  `CREATE INDEX IF NOT EXISTS idx_audit_logs_job ON audit_logs(job_id)`,
	},
	{
		// One-off data fix carried over from the legacy dataset: a handful
		// of early users were imported with a blank or mixed-case role.
		// Kept as an idempotent migration instead of load-time patching.
		name: "007_fix_legacy_user_roles",
		sql: `
			UPDATE users SET role = LOWER(TRIM(role)) WHERE role <> LOWER(TRIM(role));
			UPDATE users SET role = 'booking' WHERE role = '' OR role = 'booking_officer'`,
	},
}

// RunMigrations executes all pending migrations in order.
func (m *Migrator) RunMigrations(ctx context.Context) error {
	log.Println("[Migrator] Starting database migrations...")

	if err := m.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := m.getAppliedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, mig := range migrations {
		if applied[mig.name] {
			continue
		}
		if _, err := m.pool.Exec(ctx, mig.sql); err != nil {
			return fmt.Errorf("migration %s failed: %w", mig.name, err)
		}
		if _, err := m.pool.Exec(ctx,
			`INSERT INTO schema_migrations(name) VALUES ($1)`, mig.name); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", mig.name, err)
		}
		log.Printf("[Migrator] Applied %s", mig.name)
	}

	log.Println("[Migrator] Migrations complete")
	return nil
}

func (m *Migrator) createMigrationsTable(ctx context.Context) error {
	_, err := m.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

func (m *Migrator) getAppliedMigrations(ctx context.Context) (map[string]bool, error) {
	rows, err := m.pool.Query(ctx, `SELECT name FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		applied[name] = true
	}
	return applied, rows.Err()
}
