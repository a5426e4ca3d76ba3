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

// SessionRepository implements [models.SessionRepository] along with the per-session flash queue.
type SessionRepository struct {
	db DBTX
}

// NewSessionRepository creates a new [SessionRepository] with the given database connection
func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

func nullableUserID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}

// Create inserts a new session
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO sessions (id, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		session.ID(), nullableUserID(session.UserID()), session.CreatedAt().UTC(), session.ExpiresAt().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// Get retrieves a session by ID. Expired sessions are returned as-is; callers decide what expiry means.
func (r *SessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	query := `SELECT id, user_id, created_at, expires_at FROM sessions WHERE id = ?`

	var (
		sessionID string
		userID    sql.NullInt64
		createdAt time.Time
		expiresAt time.Time
	)

	err := r.db.QueryRowContext(ctx, query, id).Scan(&sessionID, &userID, &createdAt, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: session %s", shared.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	session := &models.Session{}
	session.SetID(sessionID)
	session.SetUserID(userID.Int64)
	session.SetCreatedAt(createdAt)
	session.SetExpiresAt(expiresAt)
	return session, nil
}

// Update stores the session's user binding and expiry.
func (r *SessionRepository) Update(ctx context.Context, session *models.Session) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `UPDATE sessions SET user_id = ?, expires_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		nullableUserID(session.UserID()), session.ExpiresAt().UTC(), session.ID())
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return affected(result, fmt.Errorf("%w: session %s", shared.ErrNotFound, session.ID()))
}

// Delete removes a session and its pending flashes
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return affected(result, fmt.Errorf("%w: session %s", shared.ErrNotFound, id))
}

// DeleteExpired removes every session whose expiry is at or before now and reports how many were removed.
//
// Expiries are stored in UTC, so comparing the stored text orders them correctly.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n, nil
}

// PushFlash queues a one-time message for the session.
func (r *SessionRepository) PushFlash(ctx context.Context, sessionID, message string) error {
	query := `INSERT INTO flashes (session_id, message, created_at) VALUES (?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, query, sessionID, message, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to insert flash: %w", err)
	}
	return nil
}

// PopFlashes returns the session's queued messages oldest first and removes them.
func (r *SessionRepository) PopFlashes(ctx context.Context, sessionID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, message FROM flashes WHERE session_id = ? ORDER BY id ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query flashes: %w", err)
	}

	var (
		messages []string
		lastID   int64
	)
	for rows.Next() {
		var message string
		if err := rows.Scan(&lastID, &message); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan flash: %w", err)
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	rows.Close()

	if len(messages) == 0 {
		return nil, nil
	}

	_, err = r.db.ExecContext(ctx, `DELETE FROM flashes WHERE session_id = ? AND id <= ?`, sessionID, lastID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete flashes: %w", err)
	}
	return messages, nil
}
