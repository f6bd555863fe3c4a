package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/example/client-scheduler/internal/persistence"
)

// AppointmentRepository implements persistence.AppointmentRepository on SQLite.
type AppointmentRepository struct {
	pool *ConnectionPool
}

// NewAppointmentRepository creates a SQLite-backed appointment repository.
func NewAppointmentRepository(pool *ConnectionPool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

const appointmentColumns = "id, title, description, location, type, start_time, end_time, customer_id, user_id, contact_id, created_at, updated_at"

// GetAppointment retrieves a single appointment by id.
func (r *AppointmentRepository) GetAppointment(ctx context.Context, id string) (persistence.Appointment, error) {
	if id == "" {
		return persistence.Appointment{}, persistence.ErrNotFound
	}

	row := r.pool.db.QueryRowContext(ctx,
		"SELECT "+appointmentColumns+" FROM appointments WHERE id = ?", id)
	appointment, err := scanAppointment(row)
	if err != nil {
		return persistence.Appointment{}, mapError(err)
	}
	return appointment, nil
}

// ListAppointments returns every appointment ordered by start time.
func (r *AppointmentRepository) ListAppointments(ctx context.Context) ([]persistence.Appointment, error) {
	return r.listWhere(ctx, "", nil)
}

// ListAppointmentsByCustomer returns the appointments belonging to customerID.
func (r *AppointmentRepository) ListAppointmentsByCustomer(ctx context.Context, customerID string) ([]persistence.Appointment, error) {
	return r.listWhere(ctx, "WHERE customer_id = ?", []any{customerID})
}

// ListAppointmentsByContact returns the appointments assigned to contactID.
func (r *AppointmentRepository) ListAppointmentsByContact(ctx context.Context, contactID string) ([]persistence.Appointment, error) {
	return r.listWhere(ctx, "WHERE contact_id = ?", []any{contactID})
}

// ListAppointmentsInWindow returns appointments starting within [start, end],
// both boundaries inclusive.
func (r *AppointmentRepository) ListAppointmentsInWindow(ctx context.Context, start, end time.Time) ([]persistence.Appointment, error) {
	return r.listWhere(ctx, "WHERE start_time >= ? AND start_time <= ?",
		[]any{formatTime(start), formatTime(end)})
}

func (r *AppointmentRepository) listWhere(ctx context.Context, clause string, args []any) ([]persistence.Appointment, error) {
	query := "SELECT " + appointmentColumns + " FROM appointments " + clause + " ORDER BY start_time ASC, id ASC"

	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var appointments []persistence.Appointment
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, mapError(err)
		}
		appointments = append(appointments, appointment)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return appointments, nil
}

// InsertAppointment stores a new appointment and reports the rows affected.
func (r *AppointmentRepository) InsertAppointment(ctx context.Context, appointment persistence.Appointment) (int64, error) {
	if appointment.ID == "" {
		return 0, persistence.ErrConstraintViolation
	}

	result, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO appointments (`+appointmentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		appointment.ID,
		appointment.Title,
		appointment.Description,
		appointment.Location,
		appointment.Type,
		formatTime(appointment.Start),
		formatTime(appointment.End),
		appointment.CustomerID,
		appointment.UserID,
		appointment.ContactID,
		formatTime(appointment.CreatedAt),
		formatTime(appointment.UpdatedAt),
	)
	if err != nil {
		return 0, mapError(err)
	}
	return result.RowsAffected()
}

// UpdateAppointment rewrites an existing appointment and reports the rows
// affected; zero means the appointment did not exist.
func (r *AppointmentRepository) UpdateAppointment(ctx context.Context, appointment persistence.Appointment) (int64, error) {
	result, err := r.pool.db.ExecContext(ctx, `
		UPDATE appointments
		SET title = ?, description = ?, location = ?, type = ?, start_time = ?, end_time = ?,
		    customer_id = ?, user_id = ?, contact_id = ?, updated_at = ?
		WHERE id = ?`,
		appointment.Title,
		appointment.Description,
		appointment.Location,
		appointment.Type,
		formatTime(appointment.Start),
		formatTime(appointment.End),
		appointment.CustomerID,
		appointment.UserID,
		appointment.ContactID,
		formatTime(appointment.UpdatedAt),
		appointment.ID,
	)
	if err != nil {
		return 0, mapError(err)
	}
	return result.RowsAffected()
}

// DeleteAppointment removes an appointment by id and reports the rows affected.
func (r *AppointmentRepository) DeleteAppointment(ctx context.Context, id string) (int64, error) {
	result, err := r.pool.db.ExecContext(ctx, "DELETE FROM appointments WHERE id = ?", id)
	if err != nil {
		return 0, mapError(err)
	}
	return result.RowsAffected()
}

// ListAppointmentTypesByMonth returns the distinct appointment types starting
// in the named month of any year.
func (r *AppointmentRepository) ListAppointmentTypesByMonth(ctx context.Context, month time.Month) ([]string, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		"SELECT DISTINCT type FROM appointments WHERE strftime('%m', start_time) = ? ORDER BY type ASC",
		monthLiteral(month))
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var types []string
	for rows.Next() {
		var appointmentType string
		if err := rows.Scan(&appointmentType); err != nil {
			return nil, mapError(err)
		}
		types = append(types, appointmentType)
	}
	return types, rows.Err()
}

// CountAppointmentsByMonthAndType counts appointments of the given type
// starting in the named month of any year.
func (r *AppointmentRepository) CountAppointmentsByMonthAndType(ctx context.Context, month time.Month, appointmentType string) (int, error) {
	var total int
	err := r.pool.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM appointments WHERE strftime('%m', start_time) = ? AND type = ?",
		monthLiteral(month), appointmentType).Scan(&total)
	if err != nil {
		return 0, mapError(err)
	}
	return total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row rowScanner) (persistence.Appointment, error) {
	var (
		appointment persistence.Appointment
		start, end  string
		created     string
		updated     string
	)
	err := row.Scan(
		&appointment.ID,
		&appointment.Title,
		&appointment.Description,
		&appointment.Location,
		&appointment.Type,
		&start,
		&end,
		&appointment.CustomerID,
		&appointment.UserID,
		&appointment.ContactID,
		&created,
		&updated,
	)
	if err != nil {
		return persistence.Appointment{}, err
	}

	if appointment.Start, err = parseTime(start, "start_time"); err != nil {
		return persistence.Appointment{}, err
	}
	if appointment.End, err = parseTime(end, "end_time"); err != nil {
		return persistence.Appointment{}, err
	}
	if appointment.CreatedAt, err = parseTime(created, "created_at"); err != nil {
		return persistence.Appointment{}, err
	}
	if appointment.UpdatedAt, err = parseTime(updated, "updated_at"); err != nil {
		return persistence.Appointment{}, err
	}
	return appointment, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(value, column string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return parsed, nil
}

func monthLiteral(month time.Month) string {
	return fmt.Sprintf("%02d", int(month))
}

var _ persistence.AppointmentRepository = (*AppointmentRepository)(nil)
