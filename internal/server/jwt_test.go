package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmartel/cv-anonymizer/internal/config"
)

func newTestJWTService(secret string) *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: secret, ExpirationHours: 1})
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestJWTService("test-secret")
	clientID := uuid.New()

	token, err := svc.GenerateToken(clientID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, clientID, claims.GetClientID())
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	token, err := newTestJWTService("secret-one").GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = newTestJWTService("secret-two").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsEmptyToken(t *testing.T) {
	_, err := newTestJWTService("secret").ValidateToken("")
	assert.ErrorContains(t, err, "token string is empty")
}

func TestJWTService_RejectsMalformedToken(t *testing.T) {
	_, err := newTestJWTService("secret").ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := newTestJWTService("secret")

	claims := &Claims{
		ClientID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			NotBefore: jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.ErrorContains(t, err, "expired")
}

func TestJWTService_RejectsWrongSigningMethod(t *testing.T) {
	svc := newTestJWTService("secret")

	// alg=none tokens must never validate.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{ClientID: uuid.New()})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.Error(t, err)
}
