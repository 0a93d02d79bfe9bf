package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskflow-dev/taskflow/internal/infrastructure/cache"
	"github.com/taskflow-dev/taskflow/internal/infrastructure/persistence/postgres/connection"
	"github.com/taskflow-dev/taskflow/internal/infrastructure/persistence/postgres/migrations"
)

// HealthResponse represents the health check response structure
type HealthResponse struct {
	Status    string    `json:"status" example:"healthy"`
	Timestamp time.Time `json:"timestamp" example:"2026-08-01T02:00:00Z"`
}

// SetupHealthRoutes registers health check endpoints
func SetupHealthRoutes(router *gin.Engine, db *connection.Database, redisCache *cache.RedisClient) {
	// @Summary Health check endpoint
	// @Description Get the current health status of the API
	// @Tags health
	// @Produce json
	// @Success 200 {object} HealthResponse
	// @Router /health [get]
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC(),
		})
	})

	// @Summary Readiness check endpoint
	// @Description Verify the database connection is usable
	// @Tags health
	// @Produce json
	// @Success 200 {object} HealthResponse
	// @Failure 503 {object} HealthResponse
	// @Router /health/ready [get]
	router.GET("/health/ready", func(c *gin.Context) {
		sqlDB, err := db.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			// One reconnect attempt before reporting not ready, so a
			// bounced database does not leave the pod unready forever
			if rerr := db.Reconnect(); rerr == nil {
				c.JSON(http.StatusOK, HealthResponse{
					Status:    "ready",
					Timestamp: time.Now().UTC(),
				})
				return
			}
			c.JSON(http.StatusServiceUnavailable, HealthResponse{
				Status:    "unavailable",
				Timestamp: time.Now().UTC(),
			})
			return
		}
		c.JSON(http.StatusOK, HealthResponse{
			Status:    "ready",
			Timestamp: time.Now().UTC(),
		})
	})

	// @Summary Cache health endpoint
	// @Description Report cache connectivity, hit/miss counters and pool usage
	// @Tags health
	// @Produce json
	// @Success 200 {object} map[string]interface{}
	// @Router /health/cache [get]
	router.GET("/health/cache", func(c *gin.Context) {
		status := http.StatusOK
		if !redisCache.IsHealthy() {
			status = http.StatusServiceUnavailable
		}
		pool := redisCache.GetPoolStats()
		c.JSON(status, gin.H{
			"healthy": redisCache.IsHealthy(),
			"metrics": redisCache.GetMetrics(),
			"pool": gin.H{
				"total_conns": pool.TotalConns,
				"idle_conns":  pool.IdleConns,
				"stale_conns": pool.StaleConns,
				"hits":        pool.Hits,
				"misses":      pool.Misses,
				"timeouts":    pool.Timeouts,
			},
			"timestamp": time.Now().UTC(),
		})
	})

	// @Summary Migration history endpoint
	// @Description List applied schema migrations in version order
	// @Tags health
	// @Produce json
	// @Success 200 {object} map[string]interface{}
	// @Failure 500 {object} map[string]string
	// @Router /health/migrations [get]
	router.GET("/health/migrations", func(c *gin.Context) {
		records, err := migrations.GetMigrationHistory(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read migration history"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": records, "count": len(records)})
	})
}
