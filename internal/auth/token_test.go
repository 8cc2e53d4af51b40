package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenGenerator_RoundTrip(t *testing.T) {
	tg := NewTokenGenerator("test-secret", time.Hour)

	token, err := tg.Generate(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := tg.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestTokenGenerator_Validate(t *testing.T) {
	tg := NewTokenGenerator("test-secret", time.Hour)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenGenerator("other-secret", time.Hour)
		token, err := other.Generate(42)
		require.NoError(t, err)

		_, err = tg.Validate(token)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewTokenGenerator("test-secret", -time.Minute)
		token, err := expired.Generate(42)
		require.NoError(t, err)

		_, err = tg.Validate(token)
		assert.Error(t, err)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := tg.Validate("not.a.token")
		assert.Error(t, err)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := tg.Validate("")
		assert.Error(t, err)
	})
}
