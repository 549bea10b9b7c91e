package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticationRoundTrip(t *testing.T) {
	auth, err := NewAuthentication("test-secret")
	require.NoError(t, err)

	token, err := auth.CreateToken(&ServiceClaims{
		Service: "gateway",
		Role:    "ingest",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	require.NoError(t, err)

	claims, err := auth.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "gateway", claims.Service)
	assert.Equal(t, "ingest", claims.Role)
}

func TestAuthenticationRejectsWrongSecret(t *testing.T) {
	auth, _ := NewAuthentication("secret-a")
	other, _ := NewAuthentication("secret-b")

	token, err := auth.CreateToken(&ServiceClaims{Service: "gateway"})
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestAuthenticationRejectsExpired(t *testing.T) {
	auth, _ := NewAuthentication("test-secret")

	token, err := auth.CreateToken(&ServiceClaims{
		Service: "gateway",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	require.NoError(t, err)

	_, err = auth.Validate(token)
	assert.Error(t, err)
}

func TestAuthenticationRequiresSecret(t *testing.T) {
	_, err := NewAuthentication("")
	assert.Error(t, err)
}
