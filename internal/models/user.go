package models

import (
	"fmt"
	"time"

	"github.com/desertthunder/watchlist/internal/shared"
)

const (
	// SingletonUserID is the only id a [User] row may have.
	SingletonUserID int64 = 1

	MaxNameLength     = 20
	MaxUsernameLength = 20
)

// User is the account that owns the watchlist.
type User struct {
	id             int64
	name           string
	username       string
	passwordDigest string
	createdAt      time.Time
	updatedAt      time.Time
}

// NewUser creates a user with the given display name and login handle.
func NewUser(name, username string) *User {
	now := time.Now().UTC()
	return &User{
		id:        SingletonUserID,
		name:      name,
		username:  username,
		createdAt: now,
		updatedAt: now,
	}
}

func (u *User) ID() int64              { return u.id }
func (u *User) Name() string           { return u.name }
func (u *User) Username() string       { return u.username }
func (u *User) PasswordDigest() string { return u.passwordDigest }
func (u *User) CreatedAt() time.Time   { return u.createdAt }
func (u *User) UpdatedAt() time.Time   { return u.updatedAt }

func (u *User) SetID(id int64)              { u.id = id }
func (u *User) SetName(name string)         { u.name = name }
func (u *User) SetUsername(username string) { u.username = username }
func (u *User) SetPasswordDigest(d string)  { u.passwordDigest = d }
func (u *User) SetCreatedAt(t time.Time)    { u.createdAt = t }
func (u *User) SetUpdatedAt(t time.Time)    { u.updatedAt = t }
func (u *User) HasCredentials() bool        { return u.username != "" && u.passwordDigest != "" }
func (u *User) String() string              { return fmt.Sprintf("user #%d (%s)", u.id, u.username) }

// Validate checks the length limits on name and username.
//
// Both may be empty: seeded users have no login until provisioned.
func (u *User) Validate() error {
	if u.id != SingletonUserID {
		return fmt.Errorf("%w: user id must be %d", shared.ErrInvalidInput, SingletonUserID)
	}
	if shared.CharCount(u.name) > MaxNameLength {
		return fmt.Errorf("%w: name longer than %d characters", shared.ErrInvalidInput, MaxNameLength)
	}
	if shared.CharCount(u.username) > MaxUsernameLength {
		return fmt.Errorf("%w: username longer than %d characters", shared.ErrInvalidInput, MaxUsernameLength)
	}
	return nil
}
