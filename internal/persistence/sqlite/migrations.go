package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// migration is a single versioned schema change applied exactly once.
type migration struct {
	Version     string
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     "001",
		Description: "reference data tables",
		SQL: `
CREATE TABLE IF NOT EXISTS countries (
    id   TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS first_level_divisions (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    country_id TEXT NOT NULL REFERENCES countries(id)
);

CREATE INDEX IF NOT EXISTS idx_divisions_country ON first_level_divisions(country_id);
`,
	},
	{
		Version:     "002",
		Description: "users and contacts",
		SQL: `
CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at    TEXT NOT NULL,
    updated_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS contacts (
    id    TEXT PRIMARY KEY,
    name  TEXT NOT NULL,
    email TEXT NOT NULL
);
`,
	},
	{
		Version:     "003",
		Description: "customers",
		SQL: `
CREATE TABLE IF NOT EXISTS customers (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    address     TEXT NOT NULL,
    postal_code TEXT NOT NULL,
    phone       TEXT NOT NULL,
    division_id TEXT NOT NULL REFERENCES first_level_divisions(id),
    created_at  TEXT NOT NULL,
    updated_at  TEXT NOT NULL
);
`,
	},
	{
		Version:     "004",
		Description: "appointments",
		SQL: `
CREATE TABLE IF NOT EXISTS appointments (
    id          TEXT PRIMARY KEY,
    title       TEXT NOT NULL,
    description TEXT NOT NULL,
    location    TEXT NOT NULL,
    type        TEXT NOT NULL,
    start_time  TEXT NOT NULL,
    end_time    TEXT NOT NULL,
    customer_id TEXT NOT NULL REFERENCES customers(id),
    user_id     TEXT NOT NULL REFERENCES users(id),
    contact_id  TEXT NOT NULL REFERENCES contacts(id),
    created_at  TEXT NOT NULL,
    updated_at  TEXT NOT NULL,
    CHECK (end_time >= start_time)
);

CREATE INDEX IF NOT EXISTS idx_appointments_customer ON appointments(customer_id);
CREATE INDEX IF NOT EXISTS idx_appointments_contact  ON appointments(contact_id);
CREATE INDEX IF NOT EXISTS idx_appointments_start    ON appointments(start_time);
`,
	},
}

// Migrate applies every pending migration in version order, recording applied
// versions in schema_migrations. Each migration runs in its own transaction.
func (cp *ConnectionPool) Migrate(ctx context.Context) error {
	if err := cp.initVersionTable(ctx); err != nil {
		return err
	}

	applied, err := cp.appliedVersions(ctx)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if _, ok := applied[m.Version]; ok {
			continue
		}
		if err := cp.applyMigration(ctx, m); err != nil {
			return fmt.Errorf("migration %s (%s) failed: %w", m.Version, m.Description, err)
		}
	}
	return nil
}

func (cp *ConnectionPool) initVersionTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version     TEXT PRIMARY KEY,
    description TEXT NOT NULL,
    applied_at  TEXT NOT NULL
)`
	if _, err := cp.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to initialise schema_migrations: %w", err)
	}
	return nil
}

func (cp *ConnectionPool) appliedVersions(ctx context.Context) (map[string]struct{}, error) {
	rows, err := cp.db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]struct{})
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = struct{}{}
	}
	return applied, rows.Err()
}

func (cp *ConnectionPool) applyMigration(ctx context.Context, m migration) error {
	return cp.WithTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec(m.SQL); err != nil {
			return err
		}
		_, err := tx.Exec(
			"INSERT INTO schema_migrations (version, description, applied_at) VALUES (?, ?, ?)",
			m.Version, m.Description, time.Now().UTC().Format(time.RFC3339),
		)
		return err
	})
}
