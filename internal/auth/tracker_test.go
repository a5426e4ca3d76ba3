package auth

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/shared"
	tu "github.com/desertthunder/watchlist/internal/testing"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTracker(t *testing.T, withUser bool) (*Tracker, *tu.MemoryStore, *clock) {
	t.Helper()

	store := tu.NewMemoryStore()
	if withUser {
		user := models.NewUser("Admin", "greyli")
		digest, err := HashPassword("dog")
		require.NoError(t, err)
		user.SetPasswordDigest(digest)
		require.NoError(t, store.Users().Create(context.Background(), user))
	}

	c := &clock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	tracker := NewTracker(TrackerOpts{Store: store, Secret: "dev", TTL: time.Hour, Now: c.now})
	return tracker, store, c
}

func TestTrackerSessions(t *testing.T) {
	ctx := context.Background()

	t.Run("Start Is Anonymous", func(t *testing.T) {
		tracker, _, c := newTracker(t, true)

		session, err := tracker.Start(ctx)
		require.NoError(t, err)
		assert.False(t, session.Authenticated())
		assert.Equal(t, c.now().Add(time.Hour), session.ExpiresAt())

		user, err := tracker.CurrentIdentity(ctx, session)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("Token Loads Session", func(t *testing.T) {
		tracker, _, _ := newTracker(t, true)

		session, err := tracker.Start(ctx)
		require.NoError(t, err)
		token, err := tracker.Token(session)
		require.NoError(t, err)

		loaded, err := tracker.Load(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, session.ID(), loaded.ID())
	})

	t.Run("Expired Session Rejected", func(t *testing.T) {
		tracker, store, c := newTracker(t, true)

		session, err := tracker.Start(ctx)
		require.NoError(t, err)
		token, err := tracker.Token(session)
		require.NoError(t, err)

		c.advance(2 * time.Hour)
		_, err = tracker.Load(ctx, token)
		assert.ErrorIs(t, err, shared.ErrNoSession)

		_, err = store.Sessions().Get(ctx, session.ID())
		require.NoError(t, err, "token expiry alone leaves the row for Sweep")

		removed, err := tracker.Sweep(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), removed)
	})

	t.Run("Unknown Session Rejected", func(t *testing.T) {
		tracker, store, _ := newTracker(t, true)

		session, err := tracker.Start(ctx)
		require.NoError(t, err)
		token, err := tracker.Token(session)
		require.NoError(t, err)
		require.NoError(t, store.Sessions().Delete(ctx, session.ID()))

		_, err = tracker.Load(ctx, token)
		assert.ErrorIs(t, err, shared.ErrNoSession)
	})

	t.Run("Row Expired Before Token", func(t *testing.T) {
		tracker, store, _ := newTracker(t, true)

		session, err := tracker.Start(ctx)
		require.NoError(t, err)
		token, err := tracker.Token(session)
		require.NoError(t, err)

		session.SetExpiresAt(session.CreatedAt())
		require.NoError(t, store.Sessions().Update(ctx, session))

		_, err = tracker.Load(ctx, token)
		assert.ErrorIs(t, err, shared.ErrNoSession)

		_, err = store.Sessions().Get(ctx, session.ID())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestTrackerLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		tracker, _, _ := newTracker(t, true)
		previous, err := tracker.Start(ctx)
		require.NoError(t, err)

		session, user, err := tracker.Login(ctx, previous, "greyli", "dog")
		require.NoError(t, err)
		assert.Equal(t, "greyli", user.Username())
		assert.True(t, session.Authenticated())
		assert.NotEqual(t, previous.ID(), session.ID())

		token, err := tracker.Token(session)
		require.NoError(t, err)
		loaded, err := tracker.Load(ctx, token)
		require.NoError(t, err)

		identity, err := tracker.RequireLogin(ctx, loaded)
		require.NoError(t, err)
		assert.Equal(t, user.ID(), identity.ID())
	})

	t.Run("Previous Token Stays Anonymous", func(t *testing.T) {
		tracker, store, _ := newTracker(t, true)
		previous, err := tracker.Start(ctx)
		require.NoError(t, err)
		require.NoError(t, tracker.Flash(ctx, previous, "Please log in to access this page."))
		planted, err := tracker.Token(previous)
		require.NoError(t, err)

		_, _, err = tracker.Login(ctx, previous, "greyli", "dog")
		require.NoError(t, err)

		_, err = tracker.Load(ctx, planted)
		assert.ErrorIs(t, err, shared.ErrNoSession)

		_, err = store.Sessions().Get(ctx, previous.ID())
		assert.ErrorIs(t, err, shared.ErrNotFound)

		messages, err := store.Sessions().PopFlashes(ctx, previous.ID())
		require.NoError(t, err)
		assert.Empty(t, messages)
	})

	t.Run("Without Previous Session", func(t *testing.T) {
		tracker, _, _ := newTracker(t, true)

		session, _, err := tracker.Login(ctx, nil, "greyli", "dog")
		require.NoError(t, err)
		assert.True(t, session.Authenticated())
	})

	t.Run("Rejections", func(t *testing.T) {
		tests := []struct {
			name     string
			withUser bool
			username string
			password string
		}{
			{name: "wrong password", withUser: true, username: "greyli", password: "cat"},
			{name: "wrong username", withUser: true, username: "grey", password: "dog"},
			{name: "empty password", withUser: true, username: "greyli", password: ""},
			{name: "no user", withUser: false, username: "greyli", password: "dog"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				tracker, store, _ := newTracker(t, tt.withUser)
				previous, err := tracker.Start(ctx)
				require.NoError(t, err)

				session, user, err := tracker.Login(ctx, previous, tt.username, tt.password)
				assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
				assert.Nil(t, session)
				assert.Nil(t, user)

				stored, err := store.Sessions().Get(ctx, previous.ID())
				require.NoError(t, err, "a failed login keeps the anonymous session")
				assert.False(t, stored.Authenticated())

				_, err = tracker.RequireLogin(ctx, previous)
				assert.ErrorIs(t, err, shared.ErrNotAuthenticated)
			})
		}
	})

	t.Run("Seeded User Without Credentials", func(t *testing.T) {
		tracker, store, _ := newTracker(t, false)
		require.NoError(t, store.Users().Create(ctx, models.NewUser("Wu Han", "")))

		_, _, err := tracker.Login(ctx, nil, "", "")
		assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
	})

	t.Run("Store Failure", func(t *testing.T) {
		tracker, store, _ := newTracker(t, true)
		store.Err = errors.New("disk full")

		_, _, err := tracker.Login(ctx, nil, "greyli", "dog")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, shared.ErrInvalidCredentials)
	})

	t.Run("Logout", func(t *testing.T) {
		tracker, store, _ := newTracker(t, true)
		session, _, err := tracker.Login(ctx, nil, "greyli", "dog")
		require.NoError(t, err)
		token, err := tracker.Token(session)
		require.NoError(t, err)

		require.NoError(t, tracker.Logout(ctx, session))

		_, err = store.Sessions().Get(ctx, session.ID())
		assert.ErrorIs(t, err, shared.ErrNotFound)
		_, err = tracker.Load(ctx, token)
		assert.ErrorIs(t, err, shared.ErrNoSession)

		require.NoError(t, tracker.Logout(ctx, session), "logging out twice is a no-op")
		require.NoError(t, tracker.Logout(ctx, nil))
	})

	t.Run("Deleted User Resolves To Nil", func(t *testing.T) {
		tracker, _, _ := newTracker(t, true)
		session := models.NewSession(time.Hour)
		session.SetUserID(42)

		user, err := tracker.CurrentIdentity(ctx, session)
		require.NoError(t, err)
		assert.Nil(t, user)

		user, err = tracker.CurrentIdentity(ctx, nil)
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestTrackerSweepEvery(t *testing.T) {
	tracker, store, c := newTracker(t, true)

	session, err := tracker.Start(context.Background())
	require.NoError(t, err)
	c.advance(2 * time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		tracker.SweepEvery(ctx, 5*time.Millisecond, shared.NewLogger(io.Discard))
		close(done)
	}()

	assert.Eventually(t, func() bool {
		_, err := store.Sessions().Get(context.Background(), session.ID())
		return errors.Is(err, shared.ErrNotFound)
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancellation")
	}
}

func TestTrackerFlashes(t *testing.T) {
	ctx := context.Background()
	tracker, _, _ := newTracker(t, true)

	session, err := tracker.Start(ctx)
	require.NoError(t, err)

	require.NoError(t, tracker.Flash(ctx, session, "Item created."))
	require.NoError(t, tracker.Flash(ctx, session, "Bye."))

	messages, err := tracker.Flashes(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, []string{"Item created.", "Bye."}, messages)

	messages, err = tracker.Flashes(ctx, session)
	require.NoError(t, err)
	assert.Empty(t, messages)

	assert.ErrorIs(t, tracker.Flash(ctx, nil, "lost"), shared.ErrNoSession)
}
