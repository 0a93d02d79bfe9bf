package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/taskflow-dev/taskflow/internal/api/dto"
	"github.com/taskflow-dev/taskflow/internal/api/handlers"
	"github.com/taskflow-dev/taskflow/internal/api/middleware"
)

// CommentRoutes handles the setup of task comment routes
type CommentRoutes struct {
	handler   *handlers.CommentHandler
	jwtSecret string
}

// NewCommentRoutes creates a new CommentRoutes instance
func NewCommentRoutes(handler *handlers.CommentHandler, jwtSecret string) *CommentRoutes {
	return &CommentRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all comment-related routes
func (r *CommentRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	validation := middleware.NewValidationMiddleware()
	metrics := middleware.NewMetricsMiddleware()

	comments := router.Group("/api/comments")
	comments.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	comments.Use(metrics.CollectMetrics())

	// Read operations with caching
	comments.GET("/:id", cache.CacheResponse(), r.handler.GetComment)
	comments.GET("/task/:task_id", cache.CacheResponse(), r.handler.GetTaskComments)
	comments.GET("/user/:user_id", cache.CacheResponse(), r.handler.GetUserComments)

	// Write operations with cache invalidation and validation
	comments.POST("", validation.ValidateRequest(&dto.CreateCommentRequest{}), cache.CacheInvalidate("comments:*", "tasks:*"), r.handler.CreateComment)
	comments.PUT("/:id", validation.ValidateRequest(&dto.UpdateCommentRequest{}), cache.CacheInvalidate("comments:*", "tasks:*"), r.handler.UpdateComment)
	comments.DELETE("/:id", cache.CacheInvalidate("comments:*", "tasks:*"), r.handler.DeleteComment)
}
