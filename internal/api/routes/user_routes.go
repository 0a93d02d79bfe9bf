package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/taskflow-dev/taskflow/internal/api/dto"
	"github.com/taskflow-dev/taskflow/internal/api/handlers"
	"github.com/taskflow-dev/taskflow/internal/api/middleware"
)

// UserRoutes handles the setup of user-related routes
type UserRoutes struct {
	handler   *handlers.UserHandler
	jwtSecret string
}

// NewUserRoutes creates a new UserRoutes instance
func NewUserRoutes(handler *handlers.UserHandler, jwtSecret string) *UserRoutes {
	return &UserRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all user-related routes
func (r *UserRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	validation := middleware.NewValidationMiddleware()
	metrics := middleware.NewMetricsMiddleware()

	users := router.Group("/api/users")
	users.Use(metrics.CollectMetrics())

	// Registration and login stay reachable without a token
	public := users.Group("")
	public.POST("", validation.ValidateRequest(&dto.CreateUserRequest{}), cache.CacheInvalidate("users:*"), r.handler.CreateUser)
	public.POST("/login", validation.ValidateRequest(&dto.LoginRequest{}), r.handler.Login)

	protected := users.Group("")
	protected.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	protected.POST("/logout", r.handler.Logout)
	protected.POST("/refresh", r.handler.RefreshToken)

	// Read operations with caching
	protected.GET("", cache.CacheResponse(), r.handler.ListUsers)
	protected.GET("/:id", cache.CacheResponse(), r.handler.GetUser)
	protected.GET("/email/:email", cache.CacheResponse(), r.handler.GetUserByEmail)
	protected.GET("/list/active", cache.CacheResponse(), r.handler.ListActiveUsers)

	// Write operations with cache invalidation and validation
	protected.PUT("/:id", validation.ValidateRequest(&dto.UpdateUserRequest{}), cache.CacheInvalidate("users:*"), r.handler.UpdateUser)
	protected.PATCH("/:id/deactivate", cache.CacheInvalidate("users:*"), r.handler.DeactivateUser)
	protected.DELETE("/:id", cache.CacheInvalidate("users:*"), r.handler.DeleteUser)
}
