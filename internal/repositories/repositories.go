// package repositories provides persistence layer implementations for all model types.
package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/watchlist/internal/models"
)

// DBTX is the subset of *sql.DB and *sql.Tx the repositories need.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)

	_ models.Store = (*Store)(nil)
)

// WithTx runs fn inside a transaction, committing when fn returns nil and rolling back otherwise.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Store vends repositories bound to one database handle or transaction.
type Store struct {
	db *sql.DB
	q  DBTX
}

// NewStore creates a [Store] over db.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, q: db}
}

func (s *Store) Users() models.UserRepository       { return NewUserRepository(s.q) }
func (s *Store) Movies() models.MovieRepository     { return NewMovieRepository(s.q) }
func (s *Store) Sessions() models.SessionRepository { return NewSessionRepository(s.q) }

// Atomic runs fn with a [Store] bound to a single transaction.
//
// Calls on a Store that is already transactional reuse its transaction.
func (s *Store) Atomic(ctx context.Context, fn func(models.Store) error) error {
	if s.db == nil {
		return fn(s)
	}
	return WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(&Store{q: tx})
	})
}

// affected returns an error wrapping notFound when a write touched no rows.
func affected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
