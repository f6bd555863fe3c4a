package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/client-scheduler/internal/persistence/sqlite"
)

// SQLiteHarness provides repository access backed by a temporary migrated
// SQLite database for integration-style persistence tests.
type SQLiteHarness struct {
	Pool         *sqlite.ConnectionPool
	Appointments *sqlite.AppointmentRepository
	Customers    *sqlite.CustomerRepository
	Contacts     *sqlite.ContactRepository
	Users        *sqlite.UserRepository
	References   *sqlite.ReferenceRepository
}

// NewSQLiteHarness constructs a harness over a temporary database file that
// is migrated automatically and closed via tb.Cleanup.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "scheduler.db")
	pool, err := sqlite.NewConnectionPool("file:" + path)
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}
	tb.Cleanup(func() { _ = pool.Close() })

	if err := pool.Migrate(context.Background()); err != nil {
		tb.Fatalf("failed to migrate storage: %v", err)
	}

	return &SQLiteHarness{
		Pool:         pool,
		Appointments: sqlite.NewAppointmentRepository(pool),
		Customers:    sqlite.NewCustomerRepository(pool),
		Contacts:     sqlite.NewContactRepository(pool),
		Users:        sqlite.NewUserRepository(pool),
		References:   sqlite.NewReferenceRepository(pool),
	}
}

// SeedReferenceData inserts one country, one division, one contact, and one
// user so appointment and customer rows can satisfy their foreign keys. The
// inserted ids are country-1, division-1, contact-1, and user-1.
func (h *SQLiteHarness) SeedReferenceData(tb testing.TB) {
	tb.Helper()
	ctx := context.Background()

	statements := []struct {
		query string
		args  []any
	}{
		{"INSERT INTO countries (id, name) VALUES (?, ?)", []any{"country-1", "United States"}},
		{"INSERT INTO first_level_divisions (id, name, country_id) VALUES (?, ?, ?)",
			[]any{"division-1", "New York", "country-1"}},
		{"INSERT INTO contacts (id, name, email) VALUES (?, ?, ?)",
			[]any{"contact-1", "Anika Costa", "acosta@example.com"}},
	}
	for _, stmt := range statements {
		if _, err := h.Pool.DB().ExecContext(ctx, stmt.query, stmt.args...); err != nil {
			tb.Fatalf("failed to seed row: %v", err)
		}
	}

	if _, err := h.Users.InsertUser(ctx, UserFixture("user-1", "admin", "hash")); err != nil {
		tb.Fatalf("failed to seed user: %v", err)
	}
}
