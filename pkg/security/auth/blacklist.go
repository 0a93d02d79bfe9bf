package auth

import (
	"sync"
	"time"
)

// TokenBlacklist tracks tokens revoked before their natural expiry,
// keyed by the raw token string. Entries are pruned once they would
// have expired anyway.
type TokenBlacklist struct {
	revoked map[string]time.Time
	mu      sync.RWMutex
}

var (
	blacklist     *TokenBlacklist
	blacklistOnce sync.Once
)

// GetTokenBlacklist returns the process-wide blacklist instance.
func GetTokenBlacklist() *TokenBlacklist {
	blacklistOnce.Do(func() {
		blacklist = &TokenBlacklist{revoked: make(map[string]time.Time)}
	})
	return blacklist
}

// AddToBlacklist revokes a token until the given expiry time.
func (tb *TokenBlacklist) AddToBlacklist(tokenString string, expiryTime time.Time) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.revoked[tokenString] = expiryTime

	// Piggyback pruning on writes; revocations are rare enough that a
	// background sweeper is not worth the goroutine.
	now := time.Now()
	for token, expiry := range tb.revoked {
		if now.After(expiry) {
			delete(tb.revoked, token)
		}
	}
}

// IsBlacklisted reports whether a token has been revoked.
func (tb *TokenBlacklist) IsBlacklisted(tokenString string) bool {
	tb.mu.RLock()
	defer tb.mu.RUnlock()
	_, revoked := tb.revoked[tokenString]
	return revoked
}
