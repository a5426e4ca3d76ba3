package models

import (
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/watchlist/internal/shared"
	"github.com/stretchr/testify/assert"
)

func TestMovieValidate(t *testing.T) {
	tt := []struct {
		name    string
		title   string
		year    string
		wantErr bool
	}{
		{name: "valid", title: "Arrival", year: "2016"},
		{name: "title at limit", title: strings.Repeat("a", 60), year: "2016"},
		{name: "multibyte title counts characters", title: strings.Repeat("龙", 60), year: "1988"},
		{name: "empty title", title: "", year: "2016", wantErr: true},
		{name: "title too long", title: strings.Repeat("a", 61), year: "2016", wantErr: true},
		{name: "empty year", title: "Arrival", year: "", wantErr: true},
		{name: "short year", title: "Arrival", year: "16", wantErr: true},
		{name: "long year", title: "Arrival", year: "20166", wantErr: true},
		{name: "year is not checked as a number", title: "Arrival", year: "abcd"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			err := NewMovie(tc.title, tc.year).Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, shared.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMovieClone(t *testing.T) {
	m := NewMovie("Leon", "1994")
	m.SetID(4)

	c := m.Clone()
	c.SetTitle("Léon: The Professional")

	assert.Equal(t, "Leon", m.Title())
	assert.Equal(t, int64(4), c.ID())
}

func TestUserValidate(t *testing.T) {
	t.Run("seeded user without login", func(t *testing.T) {
		assert.NoError(t, NewUser("Wu Han", "").Validate())
	})

	t.Run("name too long", func(t *testing.T) {
		assert.ErrorIs(t, NewUser(strings.Repeat("n", 21), "").Validate(), shared.ErrInvalidInput)
	})

	t.Run("username too long", func(t *testing.T) {
		assert.ErrorIs(t, NewUser("Admin", strings.Repeat("u", 21)).Validate(), shared.ErrInvalidInput)
	})

	t.Run("wrong id", func(t *testing.T) {
		u := NewUser("Admin", "alice")
		u.SetID(2)
		assert.ErrorIs(t, u.Validate(), shared.ErrInvalidInput)
	})

	t.Run("credentials", func(t *testing.T) {
		u := NewUser("Admin", "alice")
		assert.False(t, u.HasCredentials())
		u.SetPasswordDigest("digest")
		assert.True(t, u.HasCredentials())
	})
}

func TestSession(t *testing.T) {
	s := NewSession(time.Hour)

	assert.NoError(t, s.Validate())
	assert.False(t, s.Authenticated())
	assert.False(t, s.Expired(time.Now()))
	assert.True(t, s.Expired(time.Now().Add(2*time.Hour)))

	s.SetUserID(SingletonUserID)
	assert.True(t, s.Authenticated())

	s.SetExpiresAt(s.ExpiresAt().Add(time.Hour))
	assert.Equal(t, s.CreatedAt(), s.UpdatedAt(), "sessions are replaced, not updated")

	s.SetID("")
	assert.ErrorIs(t, s.Validate(), shared.ErrInvalidInput)
}
