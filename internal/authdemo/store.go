package authdemo

import (
	"errors"
	"sync"
)

var (
	// ErrEmailRegistered is returned when registering an email twice
	ErrEmailRegistered = errors.New("email already registered")
	// ErrUserNotFound is returned when an email has no account
	ErrUserNotFound = errors.New("user not found")
)

// Store is an in-memory credential store. Accounts live for the
// lifetime of the process.
type Store struct {
	mu    sync.RWMutex
	users map[string]string // email -> bcrypt hash
}

// NewStore creates an empty credential store
func NewStore() *Store {
	return &Store{users: make(map[string]string)}
}

// Create stores the password hash for a new email
func (s *Store) Create(email, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[email]; exists {
		return ErrEmailRegistered
	}
	s.users[email] = passwordHash
	return nil
}

// PasswordHash returns the stored hash for an email
func (s *Store) PasswordHash(email string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hash, exists := s.users[email]
	if !exists {
		return "", ErrUserNotFound
	}
	return hash, nil
}

// Exists reports whether an email has an account
func (s *Store) Exists(email string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.users[email]
	return exists
}

// Count returns the number of registered accounts
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
