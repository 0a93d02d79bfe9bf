package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow-dev/taskflow/pkg/config"
)

const testSecret = "test-secret"

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken(userID, "alice@example.com", "alice", testSecret, 1)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "bob@example.com", "bob", testSecret, 1)
	require.NoError(t, err)

	_, err = ValidateToken(token, "another-secret")
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	claims := Claims{
		UserID:   uuid.New(),
		Email:    "carol@example.com",
		Username: "carol",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ValidateToken(signed, testSecret)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token", testSecret)
	assert.Error(t, err)
}

func newTestJWTService(expiryHours int) *JWTService {
	return NewJWTService(&config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      testSecret,
			JWTExpiryHours: expiryHours,
			JWTIssuer:      "taskflow-test",
		},
	})
}

func TestRefreshTokenInsideWindow(t *testing.T) {
	// A one-hour token is already inside the refresh window, so a
	// replacement with the same identity comes back.
	svc := newTestJWTService(1)

	userID := uuid.New()
	token, err := svc.GenerateUserToken(userID, "dave@example.com", "dave")
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(token)
	require.NoError(t, err)

	claims, err := svc.ValidateUserToken(refreshed)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "dave", claims.Username)
}

func TestRefreshTokenOutsideWindow(t *testing.T) {
	svc := newTestJWTService(48)

	token, err := svc.GenerateUserToken(uuid.New(), "erin@example.com", "erin")
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, token, refreshed)
}

func TestRefreshTokenInvalid(t *testing.T) {
	svc := newTestJWTService(1)

	_, err := svc.RefreshToken("not-a-token")
	assert.Error(t, err)
}

func TestTokenBlacklist(t *testing.T) {
	tb := GetTokenBlacklist()

	tb.AddToBlacklist("some-token", time.Now().Add(time.Hour))
	assert.True(t, tb.IsBlacklisted("some-token"))
	assert.False(t, tb.IsBlacklisted("other-token"))
}

func TestTokenBlacklistPrunesExpired(t *testing.T) {
	tb := GetTokenBlacklist()

	tb.AddToBlacklist("stale-token", time.Now().Add(-time.Minute))
	// The next write sweeps out entries that have already expired.
	tb.AddToBlacklist("live-token", time.Now().Add(time.Hour))

	assert.False(t, tb.IsBlacklisted("stale-token"))
	assert.True(t, tb.IsBlacklisted("live-token"))
}
