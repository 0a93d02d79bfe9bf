package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/taskflow-dev/taskflow/pkg/config"
)

var ErrInvalidToken = errors.New("invalid token")

// refreshWindow is how close to expiry a token must be before
// RefreshToken mints a replacement instead of returning it unchanged.
const refreshWindow = 6 * time.Hour

// Claims carries the authenticated user's identity inside the token.
type Claims struct {
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies tokens with the configured secret.
type JWTService struct {
	secretKey     []byte
	tokenDuration time.Duration
	issuer        string
}

// NewJWTService builds a JWTService from the application configuration.
func NewJWTService(cfg *config.Config) *JWTService {
	return &JWTService{
		secretKey:     []byte(cfg.Auth.JWTSecret),
		tokenDuration: time.Duration(cfg.Auth.JWTExpiryHours) * time.Hour,
		issuer:        cfg.Auth.JWTIssuer,
	}
}

// GenerateToken mints an HS256 token carrying the user's identity.
func GenerateToken(userID uuid.UUID, email, username, secret string, expiryHours int) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Email:    email,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expiryHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies a token's signature and expiry and returns
// its claims. Tokens signed with anything but HMAC are rejected.
func ValidateToken(tokenString string, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GenerateUserToken mints a token using the service configuration.
func (s *JWTService) GenerateUserToken(userID uuid.UUID, email, username string) (string, error) {
	return GenerateToken(userID, email, username, string(s.secretKey), int(s.tokenDuration.Hours()))
}

// ValidateUserToken verifies a token against the service configuration.
func (s *JWTService) ValidateUserToken(tokenString string) (*Claims, error) {
	return ValidateToken(tokenString, string(s.secretKey))
}

// TokenDuration returns the configured token lifetime.
func (s *JWTService) TokenDuration() time.Duration {
	return s.tokenDuration
}

// RefreshToken returns the token unchanged while plenty of lifetime
// remains, and a freshly minted one once it enters the refresh window.
func (s *JWTService) RefreshToken(tokenString string) (string, error) {
	claims, err := s.ValidateUserToken(tokenString)
	if err != nil {
		return "", err
	}

	if time.Until(claims.ExpiresAt.Time) > refreshWindow {
		return tokenString, nil
	}

	return s.GenerateUserToken(claims.UserID, claims.Email, claims.Username)
}
