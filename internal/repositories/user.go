package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/shared"
)

// UserRepository implements [models.UserRepository] for the singleton [models.User].
type UserRepository struct {
	db DBTX
}

// NewUserRepository creates a new [UserRepository] with the given database connection
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, username, password_digest, created_at, updated_at`

// Create inserts the user. The table holds at most one row, so a second insert fails with [shared.ErrUserExists].
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO users (id, name, username, password_digest, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID(), user.Name(), user.Username(), user.PasswordDigest(), user.CreatedAt(), user.UpdatedAt())
	if shared.IsUniqueViolation(err) {
		return shared.ErrUserExists
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// Get retrieves a user by ID
func (r *UserRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	user, err := r.scan(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %d", shared.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

// First retrieves the watchlist owner, if one has been created.
func (r *UserRepository) First(ctx context.Context) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id ASC LIMIT 1`

	user, err := r.scan(r.db.QueryRowContext(ctx, query))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no user provisioned", shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

// Update modifies an existing user in the database
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now().UTC()

	query := `
		UPDATE users
		SET name = ?, username = ?, password_digest = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, user.Name(), user.Username(), user.PasswordDigest(), now, user.ID())
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if err := affected(result, fmt.Errorf("%w: user %d", shared.ErrNotFound, user.ID())); err != nil {
		return err
	}

	user.SetUpdatedAt(now)
	return nil
}

// Delete removes a user by ID. Sessions bound to the user are removed with it.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return affected(result, fmt.Errorf("%w: user %d", shared.ErrNotFound, id))
}

// Count returns the number of user rows (0 or 1).
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (r *UserRepository) scan(row *sql.Row) (*models.User, error) {
	var (
		id             int64
		name           string
		username       string
		passwordDigest string
		createdAt      time.Time
		updatedAt      time.Time
	)

	if err := row.Scan(&id, &name, &username, &passwordDigest, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	user := models.NewUser(name, username)
	user.SetID(id)
	user.SetPasswordDigest(passwordDigest)
	user.SetCreatedAt(createdAt)
	user.SetUpdatedAt(updatedAt)
	return user, nil
}
