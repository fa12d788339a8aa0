package auth

import (
	"testing"
	"time"

	"nexus/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Session = secret

	return cfg
}

func TestJWTService_IssueAndParse(t *testing.T) {
	tokenService, err := NewJWTService(newTestConfig("test_session_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	sessionID := uuid.New()
	userID := uuid.New()

	token, err := tokenService.Issue(sessionID, userID, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tokenService.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, sessionID, claims.SessionID)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestJWTService_MissingSecret(t *testing.T) {
	tokenService, err := NewJWTService(newTestConfig(""))

	assert.Error(t, err)
	assert.Nil(t, tokenService)
}

func TestJWTService_InvalidToken(t *testing.T) {
	tokenService, err := NewJWTService(newTestConfig("test_session_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	claims, err := tokenService.Parse("clearly-not-a-jwt-token-format")

	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	tokenService, err := NewJWTService(newTestConfig("test_session_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	token, err := tokenService.Issue(uuid.New(), uuid.New(), time.Now().Add(-time.Minute))
	require.NoError(t, err)

	claims, err := tokenService.Parse(token)

	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	assert.Nil(t, claims)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer, err := NewJWTService(newTestConfig("first_secret_key_for_signing_tokens"))
	require.NoError(t, err)
	verifier, err := NewJWTService(newTestConfig("second_secret_key_for_verifying_tokens"))
	require.NoError(t, err)

	token, err := issuer.Issue(uuid.New(), uuid.New(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := verifier.Parse(token)

	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	assert.Nil(t, claims)
}

func TestJWTService_RejectsNoneAlgorithm(t *testing.T) {
	tokenService, err := NewJWTService(newTestConfig("test_session_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sid": uuid.New().String(), "iss": sessionTokenIssuer})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims, err := tokenService.Parse(token)

	assert.Error(t, err)
	assert.Nil(t, claims)
}
