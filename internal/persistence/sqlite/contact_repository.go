package sqlite

import (
	"context"

	"github.com/example/client-scheduler/internal/persistence"
)

// ContactRepository implements persistence.ContactRepository on SQLite.
type ContactRepository struct {
	pool *ConnectionPool
}

// NewContactRepository creates a SQLite-backed contact repository.
func NewContactRepository(pool *ConnectionPool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

// GetContact retrieves a single contact by id.
func (r *ContactRepository) GetContact(ctx context.Context, id string) (persistence.Contact, error) {
	if id == "" {
		return persistence.Contact{}, persistence.ErrNotFound
	}

	var contact persistence.Contact
	err := r.pool.db.QueryRowContext(ctx,
		"SELECT id, name, email FROM contacts WHERE id = ?", id).
		Scan(&contact.ID, &contact.Name, &contact.Email)
	if err != nil {
		return persistence.Contact{}, mapError(err)
	}
	return contact, nil
}

// ListContacts returns every contact ordered by name.
func (r *ContactRepository) ListContacts(ctx context.Context) ([]persistence.Contact, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		"SELECT id, name, email FROM contacts ORDER BY name ASC, id ASC")
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var contacts []persistence.Contact
	for rows.Next() {
		var contact persistence.Contact
		if err := rows.Scan(&contact.ID, &contact.Name, &contact.Email); err != nil {
			return nil, mapError(err)
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return contacts, nil
}

var _ persistence.ContactRepository = (*ContactRepository)(nil)
