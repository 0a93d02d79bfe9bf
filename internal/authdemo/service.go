package authdemo

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskflow-dev/taskflow/pkg/security/auth"
)

var (
	// ErrInvalidCredentials is returned for unknown emails and wrong
	// passwords alike, so login failures do not reveal which it was
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned for malformed, expired or unknown-subject tokens
	ErrInvalidToken = errors.New("invalid or expired token")
)

// DefaultTokenTTL is the access token lifetime when none is configured
const DefaultTokenTTL = 30 * time.Minute

// Service implements registration, login and token validation against
// the in-memory store.
type Service struct {
	store     *Store
	jwtSecret string
	tokenTTL  time.Duration
}

// NewService creates a new auth demo service
func NewService(store *Store, jwtSecret string, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &Service{
		store:     store,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Register creates an account after checking the password policy
func (s *Service) Register(email, password string) error {
	if err := auth.ValidatePasswordStrength(password); err != nil {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.store.Create(email, hash)
}

// Login verifies credentials and issues a signed access token
func (s *Service) Login(email, password string) (string, error) {
	hash, err := s.store.PasswordHash(email)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if !auth.VerifyPassword(hash, password) {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Authenticate validates a token and returns the email it was issued
// for. The subject must still have an account.
func (s *Service) Authenticate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	if !s.store.Exists(claims.Subject) {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
