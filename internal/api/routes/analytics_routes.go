package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskflow-dev/taskflow/internal/api/handlers"
	"github.com/taskflow-dev/taskflow/internal/api/middleware"
)

// AnalyticsRoutes handles the setup of reporting routes
type AnalyticsRoutes struct {
	handler   *handlers.AnalyticsHandler
	jwtSecret string
}

// NewAnalyticsRoutes creates a new AnalyticsRoutes instance
func NewAnalyticsRoutes(handler *handlers.AnalyticsHandler, jwtSecret string) *AnalyticsRoutes {
	return &AnalyticsRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all reporting routes
func (r *AnalyticsRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	metrics := middleware.NewMetricsMiddleware()
	circuitBreaker := middleware.NewCircuitBreaker(middleware.CircuitBreakerConfig{
		FailureThreshold:    5,
		SuccessThreshold:    2,
		Timeout:             15 * time.Second,
		HalfOpenMaxRequests: 3,
	})

	analytics := router.Group("/api/analytics")
	analytics.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	analytics.Use(metrics.CollectMetrics())

	// Aggregation queries fan out across several tables; shield them
	analytics.Use(circuitBreaker.CircuitBreakerMiddleware())

	analytics.GET("/dashboard", cache.CacheResponse(), r.handler.GetDashboard)
	analytics.GET("/project/:id", cache.CacheResponse(), r.handler.GetProjectAnalytics)
	analytics.GET("/user/:id", cache.CacheResponse(), r.handler.GetUserWorkload)
	analytics.GET("/overdue-tasks", cache.CacheResponse(), r.handler.GetOverdueTasks)
	analytics.GET("/completion-trend", cache.CacheResponse(), r.handler.GetCompletionTrend)
	analytics.GET("/tasks-by-date-range", cache.CacheResponse(), r.handler.GetTasksByDateRange)
}
