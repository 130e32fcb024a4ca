package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initTestSecret(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, InitJWTSecret())
}

func TestGenerateAndVerifyToken(t *testing.T) {
	initTestSecret(t)

	token, err := GenerateToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestVerifyTokenMissing(t *testing.T) {
	initTestSecret(t)

	_, err := VerifyToken("")
	assert.ErrorIs(t, err, ErrTokenMissing)
}

func TestVerifyTokenMalformed(t *testing.T) {
	initTestSecret(t)

	_, err := VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerifyTokenExpired(t *testing.T) {
	initTestSecret(t)

	claims := jwt.MapClaims{
		"user_id": 42,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
	require.NoError(t, err)

	_, err = VerifyToken(expired)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyTokenWrongSignature(t *testing.T) {
	initTestSecret(t)

	claims := jwt.MapClaims{
		"user_id": 42,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = VerifyToken(forged)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyTokenMissingUserID(t *testing.T) {
	initTestSecret(t)

	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
	require.NoError(t, err)

	_, err = VerifyToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
