package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskflow-dev/taskflow/internal/api/dto"
	"github.com/taskflow-dev/taskflow/internal/api/handlers"
	"github.com/taskflow-dev/taskflow/internal/api/middleware"
)

// TaskRoutes handles the setup of task-related routes
type TaskRoutes struct {
	handler   *handlers.TaskHandler
	jwtSecret string
}

// NewTaskRoutes creates a new TaskRoutes instance
func NewTaskRoutes(handler *handlers.TaskHandler, jwtSecret string) *TaskRoutes {
	return &TaskRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all task-related routes
func (r *TaskRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	validation := middleware.NewValidationMiddleware()
	metrics := middleware.NewMetricsMiddleware()
	circuitBreaker := middleware.NewCircuitBreaker(middleware.CircuitBreakerConfig{
		FailureThreshold:    5,
		SuccessThreshold:    2,
		Timeout:             15 * time.Second,
		HalfOpenMaxRequests: 3,
	})

	tasks := router.Group("/api/tasks")
	tasks.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	tasks.Use(metrics.CollectMetrics())

	// Apply circuit breaker to task operations to prevent cascading failures
	tasks.Use(circuitBreaker.CircuitBreakerMiddleware())

	// Read operations with caching
	tasks.GET("", cache.CacheResponse(), r.handler.ListTasks)
	tasks.GET("/:id", cache.CacheResponse(), r.handler.GetTask)
	tasks.GET("/project/:project_id", cache.CacheResponse(), r.handler.GetProjectTasks)
	tasks.GET("/assignee/:user_id", cache.CacheResponse(), r.handler.GetAssigneeTasks)
	tasks.GET("/status/:status", cache.CacheResponse(), r.handler.GetTasksByStatus)
	tasks.GET("/priority/:priority", cache.CacheResponse(), r.handler.GetTasksByPriority)
	tasks.GET("/list/overdue", cache.CacheResponse(), r.handler.GetOverdueTasks)
	tasks.GET("/list/upcoming", cache.CacheResponse(), r.handler.GetUpcomingTasks)

	// Filtered listing; filters arrive as query parameters
	tasks.POST("/filter", validation.ValidateQuery(&dto.TaskFilterRequest{}), r.handler.FilterTasks)

	// Write operations with cache invalidation and validation
	tasks.POST("", validation.ValidateRequest(&dto.CreateTaskRequest{}), cache.CacheInvalidate("tasks:*", "analytics:*"), r.handler.CreateTask)
	tasks.PUT("/:id", validation.ValidateRequest(&dto.UpdateTaskRequest{}), cache.CacheInvalidate("tasks:*", "analytics:*"), r.handler.UpdateTask)
	tasks.PATCH("/:id/complete", cache.CacheInvalidate("tasks:*", "analytics:*"), r.handler.CompleteTask)
	tasks.DELETE("/:id", cache.CacheInvalidate("tasks:*", "analytics:*"), r.handler.DeleteTask)
}
