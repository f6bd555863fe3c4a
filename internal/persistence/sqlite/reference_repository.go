package sqlite

import (
	"context"

	"github.com/example/client-scheduler/internal/persistence"
)

// ReferenceRepository implements persistence.ReferenceRepository on SQLite.
type ReferenceRepository struct {
	pool *ConnectionPool
}

// NewReferenceRepository creates a SQLite-backed reference data repository.
func NewReferenceRepository(pool *ConnectionPool) *ReferenceRepository {
	return &ReferenceRepository{pool: pool}
}

// ListCountries returns every country ordered by name.
func (r *ReferenceRepository) ListCountries(ctx context.Context) ([]persistence.Country, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		"SELECT id, name FROM countries ORDER BY name ASC")
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var countries []persistence.Country
	for rows.Next() {
		var country persistence.Country
		if err := rows.Scan(&country.ID, &country.Name); err != nil {
			return nil, mapError(err)
		}
		countries = append(countries, country)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return countries, nil
}

// ListDivisionsByCountry returns the first-level divisions of a country.
func (r *ReferenceRepository) ListDivisionsByCountry(ctx context.Context, countryID string) ([]persistence.Division, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		"SELECT id, name, country_id FROM first_level_divisions WHERE country_id = ? ORDER BY name ASC", countryID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var divisions []persistence.Division
	for rows.Next() {
		var division persistence.Division
		if err := rows.Scan(&division.ID, &division.Name, &division.CountryID); err != nil {
			return nil, mapError(err)
		}
		divisions = append(divisions, division)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return divisions, nil
}

// GetDivision retrieves a single division by id.
func (r *ReferenceRepository) GetDivision(ctx context.Context, id string) (persistence.Division, error) {
	if id == "" {
		return persistence.Division{}, persistence.ErrNotFound
	}

	var division persistence.Division
	err := r.pool.db.QueryRowContext(ctx,
		"SELECT id, name, country_id FROM first_level_divisions WHERE id = ?", id).
		Scan(&division.ID, &division.Name, &division.CountryID)
	if err != nil {
		return persistence.Division{}, mapError(err)
	}
	return division, nil
}

var _ persistence.ReferenceRepository = (*ReferenceRepository)(nil)
