package watchlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/watchlist/internal/auth"
	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/shared"
)

// Service applies watchlist operations against a [models.Store].
//
// Mutations take the acting identity and fail with [shared.ErrNotAuthenticated]
// when it is nil. Invalid input fails with [shared.ErrInvalidInput] before anything is written.
type Service struct {
	store  models.Store
	logger *log.Logger
}

func NewService(store models.Store, logger *log.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func requireIdentity(identity *models.User) error {
	if identity == nil {
		return shared.ErrNotAuthenticated
	}
	return nil
}

// ListMovies returns every movie in creation order.
func (s *Service) ListMovies(ctx context.Context) ([]*models.Movie, error) {
	movies, err := s.store.Movies().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	return movies, nil
}

func (s *Service) GetMovie(ctx context.Context, id int64) (*models.Movie, error) {
	return s.store.Movies().Get(ctx, id)
}

func (s *Service) CreateMovie(ctx context.Context, form MovieForm, identity *models.User) (*models.Movie, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	form = form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	movie := models.NewMovie(form.Title, form.Year)
	if err := s.store.Movies().Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	s.logger.Debug("movie created", "id", movie.ID(), "title", movie.Title())
	return movie, nil
}

// EditMovie replaces the title and year of movie id. The stored record is untouched when the form is invalid.
func (s *Service) EditMovie(ctx context.Context, id int64, form MovieForm, identity *models.User) (*models.Movie, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	movie, err := s.store.Movies().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	form = form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	movie.SetTitle(form.Title)
	movie.SetYear(form.Year)
	if err := s.store.Movies().Update(ctx, movie); err != nil {
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}

	s.logger.Debug("movie updated", "id", movie.ID())
	return movie, nil
}

func (s *Service) DeleteMovie(ctx context.Context, id int64, identity *models.User) error {
	if err := requireIdentity(identity); err != nil {
		return err
	}

	if err := s.store.Movies().Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Debug("movie deleted", "id", id)
	return nil
}

// UpdateDisplayName changes the acting user's name.
func (s *Service) UpdateDisplayName(ctx context.Context, form SettingsForm, identity *models.User) error {
	if err := requireIdentity(identity); err != nil {
		return err
	}

	form = form.Normalize()
	if err := form.Validate(); err != nil {
		return err
	}

	identity.SetName(form.Name)
	if err := s.store.Users().Update(ctx, identity); err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}

// Owner returns the watchlist's user, or nil before one has been created.
func (s *Service) Owner(ctx context.Context) (*models.User, error) {
	user, err := s.store.Users().First(ctx)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load owner: %w", err)
	}
	return user, nil
}

// ProvisionAdmin sets the login credentials of the watchlist user, creating the user when none exists.
//
// The returned bool reports whether a user was created.
func (s *Service) ProvisionAdmin(ctx context.Context, username, password string) (*models.User, bool, error) {
	creds := Credentials{Username: username, Password: password}.Normalize()
	if err := creds.Validate(); err != nil {
		return nil, false, err
	}

	digest, err := auth.HashPassword(creds.Password)
	if err != nil {
		return nil, false, err
	}

	var (
		user    *models.User
		created bool
	)

	err = s.store.Atomic(ctx, func(tx models.Store) error {
		existing, err := tx.Users().First(ctx)
		switch {
		case errors.Is(err, shared.ErrNotFound):
			user = models.NewUser(AdminDisplayName, creds.Username)
			user.SetPasswordDigest(digest)
			created = true
			return tx.Users().Create(ctx, user)
		case err != nil:
			return err
		}

		existing.SetUsername(creds.Username)
		existing.SetPasswordDigest(digest)
		user = existing
		return tx.Users().Update(ctx, existing)
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to provision admin: %w", err)
	}

	s.logger.Info("admin provisioned", "username", user.Username(), "created", created)
	return user, created, nil
}

// SeedSampleData creates the sample owner when no user exists and appends the sample movies.
//
// Running it again adds the movies again.
func (s *Service) SeedSampleData(ctx context.Context) error {
	err := s.store.Atomic(ctx, func(tx models.Store) error {
		count, err := tx.Users().Count(ctx)
		if err != nil {
			return err
		}
		if count == 0 {
			if err := tx.Users().Create(ctx, models.NewUser(SampleOwnerName, "")); err != nil {
				return err
			}
		}

		for _, m := range sampleMovies {
			if err := tx.Movies().Create(ctx, models.NewMovie(m.Title, m.Year)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to seed sample data: %w", err)
	}

	s.logger.Info("seeded sample data", "movies", len(sampleMovies))
	return nil
}
