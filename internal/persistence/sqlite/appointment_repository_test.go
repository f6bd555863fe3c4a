package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/client-scheduler/internal/persistence"
)

func openTestPool(t *testing.T) *ConnectionPool {
	t.Helper()

	pool, err := NewConnectionPool(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := pool.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	if err := pool.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return pool
}

func seedBaseRows(t *testing.T, pool *ConnectionPool) {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2024, time.January, 2, 12, 0, 0, 0, time.UTC)

	statements := []struct {
		query string
		args  []any
	}{
		{"INSERT INTO countries (id, name) VALUES (?, ?)", []any{"country-1", "United States"}},
		{"INSERT INTO first_level_divisions (id, name, country_id) VALUES (?, ?, ?)", []any{"division-1", "New York", "country-1"}},
		{"INSERT INTO users (id, username, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
			[]any{"user-1", "admin", "hash", formatTime(now), formatTime(now)}},
		{"INSERT INTO contacts (id, name, email) VALUES (?, ?, ?)", []any{"contact-1", "Anika Costa", "acosta@example.com"}},
	}
	for _, stmt := range statements {
		if _, err := pool.db.ExecContext(ctx, stmt.query, stmt.args...); err != nil {
			t.Fatalf("failed to seed row: %v", err)
		}
	}

	customers := NewCustomerRepository(pool)
	if _, err := customers.InsertCustomer(ctx, persistence.Customer{
		ID:         "customer-1",
		Name:       "Daddy Warbucks",
		Address:    "1919 Boardwalk",
		PostalCode: "01291",
		Phone:      "869-908-1875",
		DivisionID: "division-1",
		CreatedAt:  now,
		UpdatedAt:  now,
	}); err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}
}

func testAppointment(id string, start, end time.Time) persistence.Appointment {
	return persistence.Appointment{
		ID:          id,
		Title:       "Planning",
		Description: "Quarterly planning session",
		Location:    "Phoenix",
		Type:        "Planning Session",
		Start:       start,
		End:         end,
		CustomerID:  "customer-1",
		UserID:      "user-1",
		ContactID:   "contact-1",
		CreatedAt:   start,
		UpdatedAt:   start,
	}
}

func TestAppointmentRepository_InsertAndGetRoundTrip(t *testing.T) {
	t.Parallel()

	pool := openTestPool(t)
	seedBaseRows(t, pool)
	repo := NewAppointmentRepository(pool)
	ctx := context.Background()

	start := time.Date(2024, time.March, 4, 14, 0, 0, 0, time.UTC)
	affected, err := repo.InsertAppointment(ctx, testAppointment("appt-1", start, start.Add(time.Hour)))
	if err != nil {
		t.Fatalf("InsertAppointment failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("rows affected = %d, want 1", affected)
	}

	stored, err := repo.GetAppointment(ctx, "appt-1")
	if err != nil {
		t.Fatalf("GetAppointment failed: %v", err)
	}
	if !stored.Start.Equal(start) {
		t.Fatalf("stored start = %v, want %v", stored.Start, start)
	}
	if stored.CustomerID != "customer-1" || stored.Type != "Planning Session" {
		t.Fatalf("unexpected stored appointment: %+v", stored)
	}
}

func TestAppointmentRepository_GetMissingReturnsNotFound(t *testing.T) {
	t.Parallel()

	pool := openTestPool(t)
	repo := NewAppointmentRepository(pool)

	_, err := repo.GetAppointment(context.Background(), "missing")
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestAppointmentRepository_InsertRejectsUnknownCustomer(t *testing.T) {
	t.Parallel()

	pool := openTestPool(t)
	seedBaseRows(t, pool)
	repo := NewAppointmentRepository(pool)

	start := time.Date(2024, time.March, 4, 14, 0, 0, 0, time.UTC)
	appointment := testAppointment("appt-1", start, start.Add(time.Hour))
	appointment.CustomerID = "missing-customer"

	_, err := repo.InsertAppointment(context.Background(), appointment)
	if !errors.Is(err, persistence.ErrForeignKeyViolation) {
		t.Fatalf("error = %v, want ErrForeignKeyViolation", err)
	}
}

func TestAppointmentRepository_WindowQueryIsInclusive(t *testing.T) {
	t.Parallel()

	pool := openTestPool(t)
	seedBaseRows(t, pool)
	repo := NewAppointmentRepository(pool)
	ctx := context.Background()

	windowStart := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
	windowEnd := windowStart.Add(15 * time.Minute)

	inserts := []struct {
		id    string
		start time.Time
	}{
		{"appt-at-start", windowStart},
		{"appt-inside", windowStart.Add(5 * time.Minute)},
		{"appt-at-end", windowEnd},
		{"appt-after", windowEnd.Add(time.Minute)},
	}
	for _, in := range inserts {
		if _, err := repo.InsertAppointment(ctx, testAppointment(in.id, in.start, in.start.Add(time.Hour))); err != nil {
			t.Fatalf("failed to insert %s: %v", in.id, err)
		}
	}

	matches, err := repo.ListAppointmentsInWindow(ctx, windowStart, windowEnd)
	if err != nil {
		t.Fatalf("ListAppointmentsInWindow failed: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("window matches = %d, want 3", len(matches))
	}
	if matches[0].ID != "appt-at-start" {
		t.Fatalf("first match = %s, want appt-at-start", matches[0].ID)
	}
}

func TestAppointmentRepository_MonthReports(t *testing.T) {
	t.Parallel()

	pool := openTestPool(t)
	seedBaseRows(t, pool)
	repo := NewAppointmentRepository(pool)
	ctx := context.Background()

	march := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
	april := time.Date(2024, time.April, 4, 9, 0, 0, 0, time.UTC)

	first := testAppointment("appt-1", march, march.Add(time.Hour))
	second := testAppointment("appt-2", march.Add(48*time.Hour), march.Add(49*time.Hour))
	second.Type = "De-Briefing"
	third := testAppointment("appt-3", april, april.Add(time.Hour))

	for _, appointment := range []persistence.Appointment{first, second, third} {
		if _, err := repo.InsertAppointment(ctx, appointment); err != nil {
			t.Fatalf("failed to insert %s: %v", appointment.ID, err)
		}
	}

	types, err := repo.ListAppointmentTypesByMonth(ctx, time.March)
	if err != nil {
		t.Fatalf("ListAppointmentTypesByMonth failed: %v", err)
	}
	if len(types) != 2 {
		t.Fatalf("march types = %v, want 2 entries", types)
	}

	count, err := repo.CountAppointmentsByMonthAndType(ctx, time.March, "Planning Session")
	if err != nil {
		t.Fatalf("CountAppointmentsByMonthAndType failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("march planning sessions = %d, want 1", count)
	}
}

func TestCustomerRepository_DeleteReportsRowsAffected(t *testing.T) {
	t.Parallel()

	pool := openTestPool(t)
	seedBaseRows(t, pool)
	repo := NewCustomerRepository(pool)
	ctx := context.Background()

	affected, err := repo.DeleteCustomer(ctx, "customer-1")
	if err != nil {
		t.Fatalf("DeleteCustomer failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("rows affected = %d, want 1", affected)
	}

	affected, err = repo.DeleteCustomer(ctx, "customer-1")
	if err != nil {
		t.Fatalf("repeat DeleteCustomer failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("repeat rows affected = %d, want 0", affected)
	}
}

func TestCustomerRepository_DeleteBlockedByAppointments(t *testing.T) {
	t.Parallel()

	pool := openTestPool(t)
	seedBaseRows(t, pool)
	appointments := NewAppointmentRepository(pool)
	customers := NewCustomerRepository(pool)
	ctx := context.Background()

	start := time.Date(2024, time.March, 4, 14, 0, 0, 0, time.UTC)
	if _, err := appointments.InsertAppointment(ctx, testAppointment("appt-1", start, start.Add(time.Hour))); err != nil {
		t.Fatalf("failed to insert appointment: %v", err)
	}

	_, err := customers.DeleteCustomer(ctx, "customer-1")
	if !errors.Is(err, persistence.ErrForeignKeyViolation) {
		t.Fatalf("error = %v, want ErrForeignKeyViolation", err)
	}
}
