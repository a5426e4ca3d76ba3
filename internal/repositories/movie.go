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

// MovieRepository implements [models.MovieRepository].
type MovieRepository struct {
	db DBTX
}

// NewMovieRepository creates a new [MovieRepository] with the given database connection
func NewMovieRepository(db DBTX) *MovieRepository {
	return &MovieRepository{db: db}
}

const movieColumns = `id, title, year, created_at, updated_at`

// scanner is satisfied by both [sql.Row] and [sql.Rows].
type scanner interface {
	Scan(dest ...any) error
}

// Create inserts a new movie and sets its database-assigned ID
func (r *MovieRepository) Create(ctx context.Context, movie *models.Movie) error {
	if err := movie.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO movies (title, year, created_at, updated_at) VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, movie.Title(), movie.Year(), movie.CreatedAt(), movie.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert movie: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read movie id: %w", err)
	}
	movie.SetID(id)

	return nil
}

// Get retrieves a movie by ID
func (r *MovieRepository) Get(ctx context.Context, id int64) (*models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = ?`

	movie, err := r.scan(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: movie %d", shared.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query movie: %w", err)
	}
	return movie, nil
}

// Update replaces the title and year of an existing movie
func (r *MovieRepository) Update(ctx context.Context, movie *models.Movie) error {
	if err := movie.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now().UTC()

	query := `
		UPDATE movies
		SET title = ?, year = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, movie.Title(), movie.Year(), now, movie.ID())
	if err != nil {
		return fmt.Errorf("failed to update movie: %w", err)
	}
	if err := affected(result, fmt.Errorf("%w: movie %d", shared.ErrNotFound, movie.ID())); err != nil {
		return err
	}

	movie.SetUpdatedAt(now)
	return nil
}

// Delete removes a movie by ID
func (r *MovieRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	return affected(result, fmt.Errorf("%w: movie %d", shared.ErrNotFound, id))
}

// List retrieves all movies in the order they were created
func (r *MovieRepository) List(ctx context.Context) ([]*models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	movies := []*models.Movie{}
	for rows.Next() {
		movie, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return movies, nil
}

// Count returns the number of movies.
func (r *MovieRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return count, nil
}

func (r *MovieRepository) scan(row scanner) (*models.Movie, error) {
	var (
		id        int64
		title     string
		year      string
		createdAt time.Time
		updatedAt time.Time
	)

	if err := row.Scan(&id, &title, &year, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	movie := models.NewMovie(title, year)
	movie.SetID(id)
	movie.SetCreatedAt(createdAt)
	movie.SetUpdatedAt(updatedAt)
	return movie, nil
}
