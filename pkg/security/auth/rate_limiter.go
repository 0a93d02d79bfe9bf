package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RateLimiter decides whether a request identified by key may proceed.
// Allow returns the verdict, the attempts left in the current window
// and when the window resets.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, int, time.Time, error)
	Reset(ctx context.Context, key string) error
}

// RedisRateLimiter is a fixed-window counter in Redis. The first hit
// on a key starts the window; the counter expires with it, so idle
// keys clean themselves up.
type RedisRateLimiter struct {
	client      *redis.Client
	prefix      string
	window      time.Duration
	maxAttempts int64
}

// NewRedisRateLimiter creates a new rate limiter using Redis
func NewRedisRateLimiter(client *redis.Client, window time.Duration, maxAttempts int64) *RedisRateLimiter {
	return &RedisRateLimiter{
		client:      client,
		prefix:      "taskflow:ratelimit:",
		window:      window,
		maxAttempts: maxAttempts,
	}
}

// Allow counts the attempt and reports whether it is within the limit
func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, int, time.Time, error) {
	redisKey := rl.prefix + key

	count, err := rl.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, 0, time.Time{}, fmt.Errorf("rate limiter error: %w", err)
	}

	// First hit opens the window
	if count == 1 {
		if err := rl.client.Expire(ctx, redisKey, rl.window).Err(); err != nil {
			return false, 0, time.Time{}, fmt.Errorf("rate limiter error: %w", err)
		}
	}

	ttl, err := rl.client.TTL(ctx, redisKey).Result()
	if err != nil || ttl < 0 {
		ttl = rl.window
	}
	resetTime := time.Now().Add(ttl)

	remaining := rl.maxAttempts - count
	if remaining < 0 {
		remaining = 0
	}

	return count <= rl.maxAttempts, int(remaining), resetTime, nil
}

// Reset clears the counter for a specific key
func (rl *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	return rl.client.Del(ctx, rl.prefix+key).Err()
}
