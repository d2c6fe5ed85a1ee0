package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	ti := NewTokenIssuer("secret", time.Hour)

	token, err := ti.GenerateToken(42, "mario")
	require.NoError(t, err)

	claims, err := ti.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "mario", claims.Username)
	assert.Equal(t, "42", claims.Subject)
}

func TestValidateTokenRejects(t *testing.T) {
	ti := NewTokenIssuer("secret", time.Hour)
	good, err := ti.GenerateToken(1, "luigi")
	require.NoError(t, err)

	other := NewTokenIssuer("different", time.Hour)
	_, err = other.ValidateToken(good)
	assert.Error(t, err, "wrong secret")

	expired := NewTokenIssuer("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.GenerateToken(1, "luigi")
	require.NoError(t, err)
	_, err = ti.ValidateToken(old)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = ti.ValidateToken("not.a.token")
	assert.Error(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ti.ValidateToken(unsigned)
	assert.Error(t, err, "alg none")
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("little-lemon")
	require.NoError(t, err)
	assert.NotEqual(t, "little-lemon", hash)
	assert.NoError(t, ComparePasswords(hash, "little-lemon"))
	assert.Error(t, ComparePasswords(hash, "big-lemon"))
}
