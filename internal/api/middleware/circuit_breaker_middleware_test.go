package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newBreakerRouter(cfg CircuitBreakerConfig, handlerStatus *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cb := NewCircuitBreaker(cfg)

	router := gin.New()
	router.GET("/tasks", cb.CircuitBreakerMiddleware(), func(c *gin.Context) {
		c.Status(*handlerStatus)
	})
	return router
}

func hitBreaker(router *gin.Engine) int {
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestCircuitBreakerTripsAfterConsecutiveFailures(t *testing.T) {
	status := http.StatusInternalServerError
	router := newBreakerRouter(CircuitBreakerConfig{
		FailureThreshold:    3,
		SuccessThreshold:    1,
		Timeout:             time.Minute,
		HalfOpenMaxRequests: 1,
	}, &status)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusInternalServerError, hitBreaker(router))
	}

	// Breaker is open now; the handler is no longer reached
	status = http.StatusOK
	assert.Equal(t, http.StatusServiceUnavailable, hitBreaker(router))
}

func TestCircuitBreakerSuccessResetsFailureStreak(t *testing.T) {
	status := http.StatusInternalServerError
	router := newBreakerRouter(CircuitBreakerConfig{
		FailureThreshold:    3,
		SuccessThreshold:    1,
		Timeout:             time.Minute,
		HalfOpenMaxRequests: 1,
	}, &status)

	hitBreaker(router)
	hitBreaker(router)

	status = http.StatusOK
	assert.Equal(t, http.StatusOK, hitBreaker(router))

	// The streak restarted, so two more failures stay under the threshold
	status = http.StatusInternalServerError
	hitBreaker(router)
	hitBreaker(router)

	status = http.StatusOK
	assert.Equal(t, http.StatusOK, hitBreaker(router))
}

func TestCircuitBreakerRecoversThroughHalfOpen(t *testing.T) {
	status := http.StatusInternalServerError
	router := newBreakerRouter(CircuitBreakerConfig{
		FailureThreshold:    2,
		SuccessThreshold:    2,
		Timeout:             20 * time.Millisecond,
		HalfOpenMaxRequests: 2,
	}, &status)

	hitBreaker(router)
	hitBreaker(router)
	assert.Equal(t, http.StatusServiceUnavailable, hitBreaker(router))

	time.Sleep(30 * time.Millisecond)

	// Cool-down elapsed; probes succeed and the breaker closes again
	status = http.StatusOK
	assert.Equal(t, http.StatusOK, hitBreaker(router))
	assert.Equal(t, http.StatusOK, hitBreaker(router))
	assert.Equal(t, http.StatusOK, hitBreaker(router))
}

func TestCircuitBreakerLimitsHalfOpenProbes(t *testing.T) {
	status := http.StatusInternalServerError
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold:    1,
		SuccessThreshold:    5,
		Timeout:             10 * time.Millisecond,
		HalfOpenMaxRequests: 2,
	})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/tasks", cb.CircuitBreakerMiddleware(), func(c *gin.Context) {
		c.Status(status)
	})

	hitBreaker(router)
	time.Sleep(20 * time.Millisecond)

	// Half-open admits only the configured number of probes before the
	// success threshold is met
	status = http.StatusOK
	assert.Equal(t, http.StatusOK, hitBreaker(router))
	assert.Equal(t, http.StatusOK, hitBreaker(router))
	assert.Equal(t, http.StatusServiceUnavailable, hitBreaker(router))
}
