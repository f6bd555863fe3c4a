package sqlite

import (
	"context"

	"github.com/example/client-scheduler/internal/persistence"
)

// UserRepository implements persistence.UserRepository on SQLite.
type UserRepository struct {
	pool *ConnectionPool
}

// NewUserRepository creates a SQLite-backed user repository.
func NewUserRepository(pool *ConnectionPool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = "id, username, password_hash, created_at, updated_at"

// GetUser retrieves a single user by id.
func (r *UserRepository) GetUser(ctx context.Context, id string) (persistence.User, error) {
	if id == "" {
		return persistence.User{}, persistence.ErrNotFound
	}
	row := r.pool.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if err != nil {
		return persistence.User{}, mapError(err)
	}
	return user, nil
}

// GetUserByUsername retrieves a single user by username.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (persistence.User, error) {
	row := r.pool.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = ?", username)
	user, err := scanUser(row)
	if err != nil {
		return persistence.User{}, mapError(err)
	}
	return user, nil
}

// ListUsers returns every user ordered by username.
func (r *UserRepository) ListUsers(ctx context.Context) ([]persistence.User, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY username ASC, id ASC")
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var users []persistence.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, mapError(err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return users, nil
}

// InsertUser stores a new user and reports the rows affected.
func (r *UserRepository) InsertUser(ctx context.Context, user persistence.User) (int64, error) {
	if user.ID == "" {
		return 0, persistence.ErrConstraintViolation
	}
	result, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?)`,
		user.ID,
		user.Username,
		user.PasswordHash,
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
	)
	if err != nil {
		return 0, mapError(err)
	}
	return result.RowsAffected()
}

func scanUser(row rowScanner) (persistence.User, error) {
	var (
		user    persistence.User
		created string
		updated string
	)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &created, &updated)
	if err != nil {
		return persistence.User{}, err
	}

	if user.CreatedAt, err = parseTime(created, "created_at"); err != nil {
		return persistence.User{}, err
	}
	if user.UpdatedAt, err = parseTime(updated, "updated_at"); err != nil {
		return persistence.User{}, err
	}
	return user, nil
}

var _ persistence.UserRepository = (*UserRepository)(nil)
