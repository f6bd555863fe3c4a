package sqlite

import (
	"context"

	"github.com/example/client-scheduler/internal/persistence"
)

// CustomerRepository implements persistence.CustomerRepository on SQLite.
type CustomerRepository struct {
	pool *ConnectionPool
}

// NewCustomerRepository creates a SQLite-backed customer repository.
func NewCustomerRepository(pool *ConnectionPool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

const customerColumns = "id, name, address, postal_code, phone, division_id, created_at, updated_at"

// GetCustomer retrieves a single customer by id.
func (r *CustomerRepository) GetCustomer(ctx context.Context, id string) (persistence.Customer, error) {
	if id == "" {
		return persistence.Customer{}, persistence.ErrNotFound
	}

	row := r.pool.db.QueryRowContext(ctx,
		"SELECT "+customerColumns+" FROM customers WHERE id = ?", id)
	customer, err := scanCustomer(row)
	if err != nil {
		return persistence.Customer{}, mapError(err)
	}
	return customer, nil
}

// ListCustomers returns every customer ordered by name.
func (r *CustomerRepository) ListCustomers(ctx context.Context) ([]persistence.Customer, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		"SELECT "+customerColumns+" FROM customers ORDER BY name ASC, id ASC")
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var customers []persistence.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, mapError(err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return customers, nil
}

// InsertCustomer stores a new customer and reports the rows affected.
func (r *CustomerRepository) InsertCustomer(ctx context.Context, customer persistence.Customer) (int64, error) {
	if customer.ID == "" {
		return 0, persistence.ErrConstraintViolation
	}

	result, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO customers (`+customerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		customer.ID,
		customer.Name,
		customer.Address,
		customer.PostalCode,
		customer.Phone,
		customer.DivisionID,
		formatTime(customer.CreatedAt),
		formatTime(customer.UpdatedAt),
	)
	if err != nil {
		return 0, mapError(err)
	}
	return result.RowsAffected()
}

// UpdateCustomer rewrites an existing customer and reports the rows affected.
func (r *CustomerRepository) UpdateCustomer(ctx context.Context, customer persistence.Customer) (int64, error) {
	result, err := r.pool.db.ExecContext(ctx, `
		UPDATE customers
		SET name = ?, address = ?, postal_code = ?, phone = ?, division_id = ?, updated_at = ?
		WHERE id = ?`,
		customer.Name,
		customer.Address,
		customer.PostalCode,
		customer.Phone,
		customer.DivisionID,
		formatTime(customer.UpdatedAt),
		customer.ID,
	)
	if err != nil {
		return 0, mapError(err)
	}
	return result.RowsAffected()
}

// DeleteCustomer removes a customer by id and reports the rows affected.
// Dependent appointments are never removed here; the cascade is coordinated
// one delete at a time by the application layer.
func (r *CustomerRepository) DeleteCustomer(ctx context.Context, id string) (int64, error) {
	result, err := r.pool.db.ExecContext(ctx, "DELETE FROM customers WHERE id = ?", id)
	if err != nil {
		return 0, mapError(err)
	}
	return result.RowsAffected()
}

func scanCustomer(row rowScanner) (persistence.Customer, error) {
	var (
		customer persistence.Customer
		created  string
		updated  string
	)
	err := row.Scan(
		&customer.ID,
		&customer.Name,
		&customer.Address,
		&customer.PostalCode,
		&customer.Phone,
		&customer.DivisionID,
		&created,
		&updated,
	)
	if err != nil {
		return persistence.Customer{}, err
	}

	if customer.CreatedAt, err = parseTime(created, "created_at"); err != nil {
		return persistence.Customer{}, err
	}
	if customer.UpdatedAt, err = parseTime(updated, "updated_at"); err != nil {
		return persistence.Customer{}, err
	}
	return customer, nil
}

var _ persistence.CustomerRepository = (*CustomerRepository)(nil)
