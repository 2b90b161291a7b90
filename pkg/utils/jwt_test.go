package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	t.Run("access token round trip", func(t *testing.T) {
		token, err := m.GenerateAccessToken(userID, "user@example.com", []string{"user", "moderator"})
		require.NoError(t, err)

		claims, err := m.ValidateAccessToken(token)
		require.NoError(t, err)

		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "user@example.com", claims.Email)
		assert.Equal(t, []string{"user", "moderator"}, claims.Roles)
	})

	t.Run("refresh token round trip", func(t *testing.T) {
		token, err := m.GenerateRefreshToken(userID)
		require.NoError(t, err)

		got, err := m.ValidateRefreshToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Hour, time.Hour)
		token, err := m.GenerateAccessToken(userID, "user@example.com", nil)
		require.NoError(t, err)

		_, err = other.ValidateAccessToken(token)
		require.Error(t, err)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		expired := NewJWTManager("test-secret", -time.Minute, -time.Minute)
		token, err := expired.GenerateAccessToken(userID, "user@example.com", nil)
		require.NoError(t, err)

		_, err = m.ValidateAccessToken(token)
		require.Error(t, err)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := m.ValidateAccessToken("not-a-token")
		require.Error(t, err)
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Fiber Router":       "fiber-router",
		"  Spaces  Galore  ": "spaces-galore",
		"Ünïcode Çhars":      "ncode-hars",
		"UPPER case":         "upper-case",
		"double--dash":       "double-dash",
	}

	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}
