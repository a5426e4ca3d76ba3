package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/shared"
)

// DefaultSessionTTL is used when [TrackerOpts.TTL] is unset.
const DefaultSessionTTL = 7 * 24 * time.Hour

// Tracker issues browser sessions and swaps in an authenticated one on login.
type Tracker struct {
	store  models.Store
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type TrackerOpts struct {
	Store  models.Store
	Secret string
	TTL    time.Duration
	Now    func() time.Time // clock override for tests
}

func NewTracker(opts TrackerOpts) *Tracker {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Tracker{store: opts.Store, secret: []byte(opts.Secret), ttl: ttl, now: now}
}

// Start creates and stores a new anonymous session.
func (t *Tracker) Start(ctx context.Context) (*models.Session, error) {
	session := t.newSession()
	if err := t.store.Sessions().Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	return session, nil
}

func (t *Tracker) newSession() *models.Session {
	now := t.now().UTC()

	session := models.NewSession(t.ttl)
	session.SetCreatedAt(now)
	session.SetExpiresAt(now.Add(t.ttl))
	return session
}

// Token returns the signed cookie value for session.
func (t *Tracker) Token(session *models.Session) (string, error) {
	return SignSessionToken(session.ID(), session.CreatedAt(), session.ExpiresAt(), t.secret)
}

// Load resolves a cookie value to its stored session.
//
// Bad signatures, expired tokens and unknown or expired rows all yield [shared.ErrNoSession].
func (t *Tracker) Load(ctx context.Context, token string) (*models.Session, error) {
	now := t.now()

	id, err := ParseSessionToken(token, t.secret, now)
	if err != nil {
		return nil, err
	}

	session, err := t.store.Sessions().Get(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", shared.ErrNoSession, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if session.Expired(now) {
		if err := t.store.Sessions().Delete(ctx, id); err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("failed to drop expired session: %w", err)
		}
		return nil, fmt.Errorf("%w: %s expired", shared.ErrNoSession, id)
	}

	return session, nil
}

// Login checks username and password against the watchlist owner and
// replaces previous, which may be nil, with a new session bound to the owner.
// Tokens issued for previous stop resolving.
//
// On failure previous is left untouched and the error is [shared.ErrInvalidCredentials].
func (t *Tracker) Login(ctx context.Context, previous *models.Session, username, password string) (*models.Session, *models.User, error) {
	user, err := t.store.Users().First(ctx)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil, shared.ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.HasCredentials() || user.Username() != username || !VerifyPassword(password, user.PasswordDigest()) {
		return nil, nil, shared.ErrInvalidCredentials
	}

	session := t.newSession()
	session.SetUserID(user.ID())

	err = t.store.Atomic(ctx, func(tx models.Store) error {
		if previous != nil {
			if err := tx.Sessions().Delete(ctx, previous.ID()); err != nil && !errors.Is(err, shared.ErrNotFound) {
				return err
			}
		}
		return tx.Sessions().Create(ctx, session)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to bind session: %w", err)
	}

	return session, user, nil
}

// CurrentIdentity returns the user bound to session, or nil when there is none.
func (t *Tracker) CurrentIdentity(ctx context.Context, session *models.Session) (*models.User, error) {
	if session == nil || !session.Authenticated() {
		return nil, nil
	}

	user, err := t.store.Users().Get(ctx, session.UserID())
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve identity: %w", err)
	}
	return user, nil
}

// RequireLogin is [Tracker.CurrentIdentity] that fails with [shared.ErrNotAuthenticated] instead of returning nil.
func (t *Tracker) RequireLogin(ctx context.Context, session *models.Session) (*models.User, error) {
	user, err := t.CurrentIdentity(ctx, session)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, shared.ErrNotAuthenticated
	}
	return user, nil
}

// Logout deletes session along with its pending flashes. A nil session is a no-op.
func (t *Tracker) Logout(ctx context.Context, session *models.Session) error {
	if session == nil {
		return nil
	}

	if err := t.store.Sessions().Delete(ctx, session.ID()); err != nil && !errors.Is(err, shared.ErrNotFound) {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

func (t *Tracker) Flash(ctx context.Context, session *models.Session, message string) error {
	if session == nil {
		return shared.ErrNoSession
	}
	return t.store.Sessions().PushFlash(ctx, session.ID(), message)
}

// Flashes drains the queued messages for session, oldest first.
func (t *Tracker) Flashes(ctx context.Context, session *models.Session) ([]string, error) {
	if session == nil {
		return nil, nil
	}
	return t.store.Sessions().PopFlashes(ctx, session.ID())
}

// Sweep removes expired sessions and returns how many were dropped.
func (t *Tracker) Sweep(ctx context.Context) (int64, error) {
	n, err := t.store.Sessions().DeleteExpired(ctx, t.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep sessions: %w", err)
	}
	return n, nil
}

// SweepEvery runs [Tracker.Sweep] every interval until ctx is done.
func (t *Tracker) SweepEvery(ctx context.Context, interval time.Duration, logger *log.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := t.Sweep(ctx)
			switch {
			case err != nil && ctx.Err() == nil:
				logger.Warn("failed to remove expired sessions", "error", err)
			case n > 0:
				logger.Debug("removed expired sessions", "count", n)
			}
		}
	}
}
