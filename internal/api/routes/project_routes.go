package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/taskflow-dev/taskflow/internal/api/dto"
	"github.com/taskflow-dev/taskflow/internal/api/handlers"
	"github.com/taskflow-dev/taskflow/internal/api/middleware"
)

// ProjectRoutes handles the setup of project-related routes
type ProjectRoutes struct {
	handler   *handlers.ProjectHandler
	jwtSecret string
}

// NewProjectRoutes creates a new ProjectRoutes instance
func NewProjectRoutes(handler *handlers.ProjectHandler, jwtSecret string) *ProjectRoutes {
	return &ProjectRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all project-related routes
func (r *ProjectRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	validation := middleware.NewValidationMiddleware()
	metrics := middleware.NewMetricsMiddleware()

	projects := router.Group("/api/projects")
	projects.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	projects.Use(metrics.CollectMetrics())

	// Read operations with caching
	projects.GET("", cache.CacheResponse(), r.handler.ListProjects)
	projects.GET("/:id", cache.CacheResponse(), r.handler.GetProject)
	projects.GET("/:id/stats", cache.CacheResponse(), r.handler.GetProjectStats)
	projects.GET("/owner/:owner_id", cache.CacheResponse(), r.handler.GetProjectsByOwner)
	projects.GET("/list/active", cache.CacheResponse(), r.handler.ListActiveProjects)

	// Write operations with cache invalidation and validation
	projects.POST("", validation.ValidateRequest(&dto.CreateProjectRequest{}), cache.CacheInvalidate("projects:*"), r.handler.CreateProject)
	projects.PUT("/:id", validation.ValidateRequest(&dto.UpdateProjectRequest{}), cache.CacheInvalidate("projects:*"), r.handler.UpdateProject)
	projects.PATCH("/:id/deactivate", cache.CacheInvalidate("projects:*"), r.handler.DeactivateProject)
	projects.DELETE("/:id", cache.CacheInvalidate("projects:*", "tasks:*"), r.handler.DeleteProject)
}
