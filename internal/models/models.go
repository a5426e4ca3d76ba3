// package models defines the data model for the watchlist web application
package models

import (
	"context"
	"time"
)

// Model defines the base interface for all persistent models.
type Model interface {
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the CRUD operations shared by entity repositories keyed by K.
type Repository[T Model, K comparable] interface {
	Create(ctx context.Context, model T) error // Create inserts a new model and assigns its ID
	Get(ctx context.Context, id K) (T, error)  // Get retrieves a model by its ID
	Update(ctx context.Context, model T) error // Update modifies an existing model
	Delete(ctx context.Context, id K) error    // Delete removes a model by its ID
}

// UserRepository persists the single watchlist [User].
type UserRepository interface {
	Repository[*User, int64]
	First(ctx context.Context) (*User, error) // First returns the singleton user or shared.ErrNotFound
	Count(ctx context.Context) (int, error)
}

// MovieRepository persists [Movie] records.
type MovieRepository interface {
	Repository[*Movie, int64]
	List(ctx context.Context) ([]*Movie, error) // List returns all movies in id order
	Count(ctx context.Context) (int, error)
}

// SessionRepository persists [Session] records and their flash queues.
type SessionRepository interface {
	Repository[*Session, string]
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	PushFlash(ctx context.Context, sessionID, message string) error
	PopFlashes(ctx context.Context, sessionID string) ([]string, error)
}

// Store bundles the repositories and runs multi-step work atomically.
type Store interface {
	Users() UserRepository
	Movies() MovieRepository
	Sessions() SessionRepository
	Atomic(ctx context.Context, fn func(Store) error) error // Atomic runs fn in a single transaction
}
