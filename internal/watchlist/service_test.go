package watchlist

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desertthunder/watchlist/internal/auth"
	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/repositories"
	"github.com/desertthunder/watchlist/internal/shared"
	tu "github.com/desertthunder/watchlist/internal/testing"
)

func newService(t *testing.T) (*Service, *tu.MemoryStore, *models.User) {
	t.Helper()

	store := tu.NewMemoryStore()
	owner := models.NewUser("Grey Li", "greyli")
	require.NoError(t, store.Users().Create(context.Background(), owner))

	return NewService(store, shared.NewLogger(io.Discard)), store, owner
}

func TestCreateMovie(t *testing.T) {
	ctx := context.Background()

	t.Run("Authenticated", func(t *testing.T) {
		svc, store, owner := newService(t)

		movie, err := svc.CreateMovie(ctx, MovieForm{Title: "Arrival", Year: "2016"}, owner)
		require.NoError(t, err)
		assert.NotZero(t, movie.ID())
		assert.Equal(t, "Arrival", movie.Title())
		assert.Equal(t, "2016", movie.Year())

		count, err := store.Movies().Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("Trims Input", func(t *testing.T) {
		svc, _, owner := newService(t)

		movie, err := svc.CreateMovie(ctx, MovieForm{Title: "  Arrival ", Year: " 2016"}, owner)
		require.NoError(t, err)
		assert.Equal(t, "Arrival", movie.Title())
		assert.Equal(t, "2016", movie.Year())
	})

	t.Run("Anonymous", func(t *testing.T) {
		svc, store, _ := newService(t)

		_, err := svc.CreateMovie(ctx, MovieForm{Title: "Arrival", Year: "2016"}, nil)
		assert.ErrorIs(t, err, shared.ErrNotAuthenticated)

		count, err := store.Movies().Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("Invalid Input", func(t *testing.T) {
		tests := []struct {
			name string
			form MovieForm
		}{
			{name: "empty title", form: MovieForm{Title: "", Year: "2016"}},
			{name: "blank title", form: MovieForm{Title: "   ", Year: "2016"}},
			{name: "long title", form: MovieForm{Title: strings.Repeat("a", 61), Year: "2016"}},
			{name: "empty year", form: MovieForm{Title: "Arrival", Year: ""}},
			{name: "short year", form: MovieForm{Title: "Arrival", Year: "16"}},
			{name: "long year", form: MovieForm{Title: "Arrival", Year: "20160"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc, store, owner := newService(t)

				_, err := svc.CreateMovie(ctx, tt.form, owner)
				assert.ErrorIs(t, err, shared.ErrInvalidInput)

				count, err := store.Movies().Count(ctx)
				require.NoError(t, err)
				assert.Zero(t, count)
			})
		}
	})

	t.Run("Boundary Lengths", func(t *testing.T) {
		svc, _, owner := newService(t)

		_, err := svc.CreateMovie(ctx, MovieForm{Title: strings.Repeat("a", 60), Year: "2016"}, owner)
		assert.NoError(t, err)

		_, err = svc.CreateMovie(ctx, MovieForm{Title: strings.Repeat("映", 60), Year: "二〇一六"}, owner)
		assert.NoError(t, err, "lengths are counted in characters")
	})
}

func TestEditMovie(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*Service, *tu.MemoryStore, *models.User, *models.Movie) {
		svc, store, owner := newService(t)
		var movie *models.Movie
		for _, m := range SampleMovies()[:3] {
			created, err := svc.CreateMovie(ctx, m, owner)
			require.NoError(t, err)
			movie = created
		}
		return svc, store, owner, movie
	}

	t.Run("Updates Fields", func(t *testing.T) {
		svc, store, owner, movie := seed(t)

		edited, err := svc.EditMovie(ctx, movie.ID(), MovieForm{Title: "Arrival", Year: "2016"}, owner)
		require.NoError(t, err)
		assert.Equal(t, movie.ID(), edited.ID())

		stored, err := store.Movies().Get(ctx, movie.ID())
		require.NoError(t, err)
		assert.Equal(t, "Arrival", stored.Title())
		assert.Equal(t, "2016", stored.Year())
	})

	t.Run("Invalid Leaves Record Unchanged", func(t *testing.T) {
		svc, store, owner, movie := seed(t)
		require.Equal(t, int64(3), movie.ID())

		_, err := svc.EditMovie(ctx, 3, MovieForm{Title: "", Year: "2016"}, owner)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)

		stored, err := store.Movies().Get(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "A Perfect World", stored.Title())
		assert.Equal(t, "1993", stored.Year())
	})

	t.Run("Missing", func(t *testing.T) {
		svc, _, owner, _ := seed(t)

		_, err := svc.EditMovie(ctx, 99, MovieForm{Title: "Arrival", Year: "2016"}, owner)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("Anonymous", func(t *testing.T) {
		svc, store, _, movie := seed(t)

		_, err := svc.EditMovie(ctx, movie.ID(), MovieForm{Title: "Arrival", Year: "2016"}, nil)
		assert.ErrorIs(t, err, shared.ErrNotAuthenticated)

		stored, err := store.Movies().Get(ctx, movie.ID())
		require.NoError(t, err)
		assert.Equal(t, movie.Title(), stored.Title())
	})
}

func TestDeleteMovie(t *testing.T) {
	ctx := context.Background()
	svc, store, owner := newService(t)

	movie, err := svc.CreateMovie(ctx, MovieForm{Title: "Arrival", Year: "2016"}, owner)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteMovie(ctx, movie.ID(), nil), shared.ErrNotAuthenticated)
	_, err = store.Movies().Get(ctx, movie.ID())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMovie(ctx, movie.ID(), owner))
	_, err = svc.GetMovie(ctx, movie.ID())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteMovie(ctx, movie.ID(), owner), shared.ErrNotFound)
}

func TestListMovies(t *testing.T) {
	ctx := context.Background()
	svc, store, owner := newService(t)

	movies, err := svc.ListMovies(ctx)
	require.NoError(t, err)
	assert.Empty(t, movies)

	for _, m := range SampleMovies() {
		_, err := svc.CreateMovie(ctx, m, owner)
		require.NoError(t, err)
	}

	movies, err = svc.ListMovies(ctx)
	require.NoError(t, err)
	require.Len(t, movies, len(SampleMovies()))
	assert.Equal(t, "My Neighbor Totoro", movies[0].Title())

	store.Err = errors.New("disk gone")
	_, err = svc.ListMovies(ctx)
	assert.Error(t, err)
}

func TestUpdateDisplayName(t *testing.T) {
	ctx := context.Background()

	t.Run("Updates Owner", func(t *testing.T) {
		svc, _, owner := newService(t)

		require.NoError(t, svc.UpdateDisplayName(ctx, SettingsForm{Name: " Grey "}, owner))

		current, err := svc.Owner(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Grey", current.Name())
	})

	t.Run("Rejections", func(t *testing.T) {
		svc, _, owner := newService(t)

		assert.ErrorIs(t, svc.UpdateDisplayName(ctx, SettingsForm{Name: ""}, owner), shared.ErrInvalidInput)
		assert.ErrorIs(t, svc.UpdateDisplayName(ctx, SettingsForm{Name: strings.Repeat("n", 21)}, owner), shared.ErrInvalidInput)
		assert.ErrorIs(t, svc.UpdateDisplayName(ctx, SettingsForm{Name: "Grey"}, nil), shared.ErrNotAuthenticated)

		current, err := svc.Owner(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Grey Li", current.Name())
	})
}

func TestOwner(t *testing.T) {
	ctx := context.Background()
	svc := NewService(tu.NewMemoryStore(), shared.NewLogger(io.Discard))

	owner, err := svc.Owner(ctx)
	require.NoError(t, err)
	assert.Nil(t, owner)
}

func TestProvisionAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("Create Then Update", func(t *testing.T) {
		store := tu.NewMemoryStore()
		svc := NewService(store, shared.NewLogger(io.Discard))

		user, created, err := svc.ProvisionAdmin(ctx, "alice", "secret")
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, AdminDisplayName, user.Name())
		assert.Equal(t, "alice", user.Username())
		assert.True(t, auth.VerifyPassword("secret", user.PasswordDigest()))

		user, created, err = svc.ProvisionAdmin(ctx, "alice", "newpass")
		require.NoError(t, err)
		assert.False(t, created)
		assert.True(t, auth.VerifyPassword("newpass", user.PasswordDigest()))
		assert.False(t, auth.VerifyPassword("secret", user.PasswordDigest()))

		count, err := store.Users().Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("Keeps Seeded Name", func(t *testing.T) {
		store := tu.NewMemoryStore()
		svc := NewService(store, shared.NewLogger(io.Discard))
		require.NoError(t, svc.SeedSampleData(ctx))

		user, created, err := svc.ProvisionAdmin(ctx, "wuhan", "dog")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, SampleOwnerName, user.Name())
		assert.Equal(t, "wuhan", user.Username())
	})

	t.Run("Invalid Credentials", func(t *testing.T) {
		svc := NewService(tu.NewMemoryStore(), shared.NewLogger(io.Discard))

		_, _, err := svc.ProvisionAdmin(ctx, "", "secret")
		assert.ErrorIs(t, err, shared.ErrInvalidInput)

		_, _, err = svc.ProvisionAdmin(ctx, strings.Repeat("u", 21), "secret")
		assert.ErrorIs(t, err, shared.ErrInvalidInput)

		_, _, err = svc.ProvisionAdmin(ctx, "alice", "")
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestSeedSampleData(t *testing.T) {
	ctx := context.Background()

	t.Run("Memory Store", func(t *testing.T) {
		store := tu.NewMemoryStore()
		svc := NewService(store, shared.NewLogger(io.Discard))

		require.NoError(t, svc.SeedSampleData(ctx))
		require.NoError(t, svc.SeedSampleData(ctx))

		users, err := store.Users().Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, users)

		movies, err := store.Movies().Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2*len(SampleMovies()), movies)
	})

	t.Run("SQLite Store", func(t *testing.T) {
		store := repositories.NewStore(tu.NewTestDB(t))
		svc := NewService(store, shared.NewLogger(io.Discard))

		require.NoError(t, svc.SeedSampleData(ctx))

		owner, err := svc.Owner(ctx)
		require.NoError(t, err)
		require.NotNil(t, owner)
		assert.Equal(t, SampleOwnerName, owner.Name())

		movies, err := svc.ListMovies(ctx)
		require.NoError(t, err)
		require.Len(t, movies, 10)
		assert.Equal(t, "The Pork of Music", movies[9].Title())
	})

	t.Run("Failure Rolls Back", func(t *testing.T) {
		store := tu.NewMemoryStore()
		svc := NewService(store, shared.NewLogger(io.Discard))
		store.Err = errors.New("disk gone")

		assert.Error(t, svc.SeedSampleData(ctx))

		store.Err = nil
		count, err := store.Movies().Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestForms(t *testing.T) {
	t.Run("Credentials Keep Password Whitespace", func(t *testing.T) {
		c := Credentials{Username: " alice ", Password: " pw "}.Normalize()
		assert.Equal(t, "alice", c.Username)
		assert.Equal(t, " pw ", c.Password)
		assert.NoError(t, c.Validate())
	})

	t.Run("Settings", func(t *testing.T) {
		assert.NoError(t, SettingsForm{Name: strings.Repeat("n", 20)}.Validate())
		assert.ErrorIs(t, SettingsForm{Name: strings.Repeat("n", 21)}.Validate(), shared.ErrInvalidInput)
	})
}
