package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/taskflow-dev/taskflow/internal/api/dto"
	"github.com/taskflow-dev/taskflow/internal/api/handlers"
	"github.com/taskflow-dev/taskflow/internal/api/middleware"
)

// AssignmentRoutes handles the setup of task assignment routes
type AssignmentRoutes struct {
	handler   *handlers.AssignmentHandler
	jwtSecret string
}

// NewAssignmentRoutes creates a new AssignmentRoutes instance
func NewAssignmentRoutes(handler *handlers.AssignmentHandler, jwtSecret string) *AssignmentRoutes {
	return &AssignmentRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all assignment-related routes
func (r *AssignmentRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	validation := middleware.NewValidationMiddleware()
	metrics := middleware.NewMetricsMiddleware()

	assignments := router.Group("/api/assignments")
	assignments.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	assignments.Use(metrics.CollectMetrics())

	// Read operations with caching
	assignments.GET("/task/:task_id", cache.CacheResponse(), r.handler.GetTaskAssignments)
	assignments.GET("/user/:user_id", cache.CacheResponse(), r.handler.GetUserAssignments)

	// Write operations with cache invalidation and validation
	assignments.POST("", validation.ValidateRequest(&dto.CreateAssignmentRequest{}), cache.CacheInvalidate("assignments:*", "tasks:*"), r.handler.CreateAssignment)
	assignments.DELETE("/task/:task_id/user/:user_id", cache.CacheInvalidate("assignments:*", "tasks:*"), r.handler.RemoveAssignment)
}
