package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desertthunder/watchlist/internal/shared"
)

func TestSessionToken(t *testing.T) {
	secret := []byte("dev")
	now := time.Now()

	t.Run("Round Trip", func(t *testing.T) {
		token, err := SignSessionToken("session-1", now, now.Add(time.Hour), secret)
		require.NoError(t, err)

		id, err := ParseSessionToken(token, secret, now)
		require.NoError(t, err)
		assert.Equal(t, "session-1", id)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		token, err := SignSessionToken("session-1", now, now.Add(time.Hour), secret)
		require.NoError(t, err)

		_, err = ParseSessionToken(token, []byte("other"), now)
		assert.ErrorIs(t, err, shared.ErrNoSession)
	})

	t.Run("Expired", func(t *testing.T) {
		token, err := SignSessionToken("session-1", now, now.Add(time.Hour), secret)
		require.NoError(t, err)

		_, err = ParseSessionToken(token, secret, now.Add(2*time.Hour))
		assert.ErrorIs(t, err, shared.ErrNoSession)
	})

	t.Run("Tampered", func(t *testing.T) {
		token, err := SignSessionToken("session-1", now, now.Add(time.Hour), secret)
		require.NoError(t, err)

		_, err = ParseSessionToken(token+"x", secret, now)
		assert.ErrorIs(t, err, shared.ErrNoSession)

		_, err = ParseSessionToken("not-a-token", secret, now)
		assert.ErrorIs(t, err, shared.ErrNoSession)
	})

	t.Run("Other Algorithm Rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
			ID:        "session-1",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		})
		signed, err := token.SignedString(secret)
		require.NoError(t, err)

		_, err = ParseSessionToken(signed, secret, now)
		assert.ErrorIs(t, err, shared.ErrNoSession)
	})

	t.Run("Missing Session ID", func(t *testing.T) {
		token, err := SignSessionToken("", now, now.Add(time.Hour), secret)
		require.NoError(t, err)

		_, err = ParseSessionToken(token, secret, now)
		assert.ErrorIs(t, err, shared.ErrNoSession)
	})
}
