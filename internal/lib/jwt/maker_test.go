package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaker_GenerateAndParse(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Hour)

	tokenStr, err := maker.GenerateToken("alice@example.com", "moderator")
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	claims, err := maker.ParseToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "moderator", claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestMaker_ParseErrors(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Hour)

	t.Run("подпись другим ключом", func(t *testing.T) {
		other := NewJWTMaker("other-secret", time.Hour)
		tokenStr, err := other.GenerateToken("alice@example.com", "user")
		require.NoError(t, err)

		_, err = maker.ParseToken(tokenStr)
		assert.Error(t, err)
	})

	t.Run("истекший токен", func(t *testing.T) {
		expired := NewJWTMaker("test-secret", -time.Minute)
		tokenStr, err := expired.GenerateToken("alice@example.com", "user")
		require.NoError(t, err)

		_, err = maker.ParseToken(tokenStr)
		assert.Error(t, err)
	})

	t.Run("мусор вместо токена", func(t *testing.T) {
		_, err := maker.ParseToken("not.a.token")
		assert.Error(t, err)
	})
}
