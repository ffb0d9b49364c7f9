package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	SetSessionSecret("test-secret")
	id := uuid.New()

	token, err := GenerateSessionToken(id, "ios", 1)
	require.NoError(t, err)

	claims, err := ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.ApplicationID)
	assert.Equal(t, "ios", claims.Platform)
	assert.Equal(t, id.String(), claims.Subject)
}

func TestSessionToken_WrongSecret(t *testing.T) {
	SetSessionSecret("first")
	token, err := GenerateSessionToken(uuid.New(), "web", 1)
	require.NoError(t, err)

	SetSessionSecret("second")
	_, err = ValidateSessionToken(token)
	assert.Error(t, err)
}

func TestSessionToken_Expired(t *testing.T) {
	SetSessionSecret("test-secret")
	token, err := GenerateSessionToken(uuid.New(), "web", -1)
	require.NoError(t, err)

	_, err = ValidateSessionToken(token)
	assert.Error(t, err)
}

func TestSessionToken_ForeignIssuer(t *testing.T) {
	SetSessionSecret("test-secret")
	claims := SessionClaims{
		ApplicationID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    "someone-else",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ValidateSessionToken(token)
	assert.EqualError(t, err, "invalid token issuer")
}
