package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/taskflow-dev/taskflow/internal/api/dto"
	"github.com/taskflow-dev/taskflow/internal/api/handlers"
	"github.com/taskflow-dev/taskflow/internal/api/middleware"
)

// TagRoutes handles the setup of tag-related routes
type TagRoutes struct {
	handler   *handlers.TagHandler
	jwtSecret string
}

// NewTagRoutes creates a new TagRoutes instance
func NewTagRoutes(handler *handlers.TagHandler, jwtSecret string) *TagRoutes {
	return &TagRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all tag-related routes
func (r *TagRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	validation := middleware.NewValidationMiddleware()
	metrics := middleware.NewMetricsMiddleware()

	tags := router.Group("/api/tags")
	tags.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	tags.Use(metrics.CollectMetrics())

	// Read operations with caching
	tags.GET("", cache.CacheResponse(), r.handler.ListTags)
	tags.GET("/:id", cache.CacheResponse(), r.handler.GetTag)
	tags.GET("/name/:name", cache.CacheResponse(), r.handler.GetTagByName)

	// Write operations with cache invalidation and validation
	tags.POST("", validation.ValidateRequest(&dto.CreateTagRequest{}), cache.CacheInvalidate("tags:*"), r.handler.CreateTag)
	tags.PUT("/:id", validation.ValidateRequest(&dto.UpdateTagRequest{}), cache.CacheInvalidate("tags:*"), r.handler.UpdateTag)
	tags.DELETE("/:id", cache.CacheInvalidate("tags:*", "tasks:*"), r.handler.DeleteTag)

	// Attachment operations touch task detail responses as well
	tags.POST("/:id/attach/:task_id", cache.CacheInvalidate("tags:*", "tasks:*"), r.handler.AttachTag)
	tags.DELETE("/:id/detach/:task_id", cache.CacheInvalidate("tags:*", "tasks:*"), r.handler.DetachTag)
}
