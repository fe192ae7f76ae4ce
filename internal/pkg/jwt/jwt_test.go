package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	token, expiresAt, err := svc.GenerateAccessToken("user-1", true)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), expiresAt, 5)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	userID, ok := decoded.Get("user_id")
	require.True(t, ok)
	assert.Equal(t, "user-1", userID)

	admin, ok := decoded.Get("is_admin")
	require.True(t, ok)
	assert.Equal(t, true, admin)
}

func TestGenerateAccessToken_Errors(t *testing.T) {
	_, _, err := NewJWTService("test-secret", "1h").GenerateAccessToken("", false)
	assert.Error(t, err)

	_, _, err = NewJWTService("test-secret", "forever").GenerateAccessToken("user-1", false)
	assert.Error(t, err)
}

func TestDecode_RejectsForeignSignature(t *testing.T) {
	token, _, err := NewJWTService("secret-a", "1h").GenerateAccessToken("user-1", false)
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", "1h").JWTAuth().Decode(token)
	assert.Error(t, err)
}
