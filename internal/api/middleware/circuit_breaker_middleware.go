package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taskflow-dev/taskflow/pkg/logger"
)

type breakerState int

const (
	breakerClosed breakerState = iota
	breakerOpen
	breakerHalfOpen
)

// CircuitBreakerConfig holds the thresholds for tripping and recovery
type CircuitBreakerConfig struct {
	FailureThreshold    int           // consecutive failures before the breaker trips
	SuccessThreshold    int           // successes in half-open before the breaker closes
	Timeout             time.Duration // cool-down before an open breaker admits probes
	HalfOpenMaxRequests int           // requests admitted while half-open
}

// CircuitBreaker sheds load once a route group keeps failing. While
// open it answers 503 immediately; after the cool-down a bounded
// number of requests are let through to test recovery.
type CircuitBreaker struct {
	cfg CircuitBreakerConfig
	log *logger.Logger

	mu        sync.Mutex
	state     breakerState
	failures  int
	successes int
	admitted  int // requests let through since entering half-open
	openedAt  time.Time
}

// NewCircuitBreaker creates a new circuit breaker
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		cfg: cfg,
		log: logger.NewLogger(),
	}
}

// allow reports whether the request may proceed, moving an open
// breaker to half-open once the cool-down has elapsed.
func (cb *CircuitBreaker) allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == breakerOpen {
		if time.Since(cb.openedAt) < cb.cfg.Timeout {
			return false
		}
		cb.state = breakerHalfOpen
		cb.failures = 0
		cb.successes = 0
		cb.admitted = 0
	}

	if cb.state == breakerHalfOpen {
		if cb.admitted >= cb.cfg.HalfOpenMaxRequests {
			return false
		}
		cb.admitted++
	}

	return true
}

// record feeds the request outcome back into the breaker state
func (cb *CircuitBreaker) record(failed bool, route string) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if failed {
		cb.failures++
		if cb.state == breakerHalfOpen || cb.failures >= cb.cfg.FailureThreshold {
			if cb.state != breakerOpen {
				cb.log.Error("Circuit breaker opened",
					zap.String("route", route),
					zap.Int("failures", cb.failures))
			}
			cb.state = breakerOpen
			cb.openedAt = time.Now()
		}
		return
	}

	switch cb.state {
	case breakerHalfOpen:
		cb.successes++
		if cb.successes >= cb.cfg.SuccessThreshold {
			cb.state = breakerClosed
			cb.failures = 0
			cb.successes = 0
			cb.log.Info("Circuit breaker closed", zap.String("route", route))
		}
	case breakerClosed:
		// Only consecutive failures count towards tripping
		cb.failures = 0
	}
}

// CircuitBreakerMiddleware guards the handler chain with the breaker
func (cb *CircuitBreaker) CircuitBreakerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cb.allow() {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "service temporarily unavailable",
			})
			c.Abort()
			return
		}

		c.Next()

		cb.record(c.Writer.Status() >= http.StatusInternalServerError, c.FullPath())
	}
}
