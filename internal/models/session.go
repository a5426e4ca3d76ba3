package models

import (
	"fmt"
	"time"

	"github.com/desertthunder/watchlist/internal/shared"
)

// Session is a browser session. It is anonymous until bound to a user by a successful login.
type Session struct {
	id        string
	userID    int64
	createdAt time.Time
	expiresAt time.Time
}

// NewSession creates an anonymous session with a fresh id that expires after ttl.
func NewSession(ttl time.Duration) *Session {
	now := time.Now().UTC()
	return &Session{
		id:        shared.GenerateID(),
		createdAt: now,
		expiresAt: now.Add(ttl),
	}
}

func (s *Session) ID() string           { return s.id }
func (s *Session) UserID() int64        { return s.userID }
func (s *Session) CreatedAt() time.Time { return s.createdAt }
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

// UpdatedAt is always CreatedAt. A session's binding never changes in place:
// login and logout replace the row rather than modifying it.
func (s *Session) UpdatedAt() time.Time { return s.createdAt }

func (s *Session) SetID(id string)          { s.id = id }
func (s *Session) SetUserID(id int64)       { s.userID = id }
func (s *Session) SetCreatedAt(t time.Time) { s.createdAt = t }
func (s *Session) SetExpiresAt(t time.Time) { s.expiresAt = t }

// Authenticated reports whether the session is bound to a user.
func (s *Session) Authenticated() bool { return s.userID != 0 }

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool { return !now.Before(s.expiresAt) }

func (s *Session) Validate() error {
	if s.id == "" {
		return fmt.Errorf("%w: session id is empty", shared.ErrInvalidInput)
	}
	if s.expiresAt.IsZero() {
		return fmt.Errorf("%w: session has no expiry", shared.ErrInvalidInput)
	}
	return nil
}
