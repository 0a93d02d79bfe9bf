package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/taskflow-dev/taskflow/docs" // swagger docs
	"github.com/taskflow-dev/taskflow/internal/api/handlers"
	"github.com/taskflow-dev/taskflow/internal/api/middleware"
	"github.com/taskflow-dev/taskflow/internal/api/routes"
	"github.com/taskflow-dev/taskflow/internal/domain/analytics"
	"github.com/taskflow-dev/taskflow/internal/domain/assignment"
	"github.com/taskflow-dev/taskflow/internal/domain/comment"
	"github.com/taskflow-dev/taskflow/internal/domain/project"
	"github.com/taskflow-dev/taskflow/internal/domain/tag"
	"github.com/taskflow-dev/taskflow/internal/domain/task"
	"github.com/taskflow-dev/taskflow/internal/domain/user"
	"github.com/taskflow-dev/taskflow/internal/infrastructure/cache"
	"github.com/taskflow-dev/taskflow/internal/infrastructure/persistence/postgres/connection"
	"github.com/taskflow-dev/taskflow/internal/infrastructure/persistence/postgres/migrations"
	"github.com/taskflow-dev/taskflow/pkg/config"
	"github.com/taskflow-dev/taskflow/pkg/logger"
	"github.com/taskflow-dev/taskflow/pkg/security/auth"
)

// @title           TaskFlow API
// @version         1.0
// @description     A task management API with projects, tags, assignments, comments and analytics.

// @host      localhost:8000
// @BasePath

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// RequestLoggerMiddleware logs all incoming HTTP requests
func RequestLoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("Request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("") // Empty string will make it search in default locations
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	log.Info("Configuration loaded successfully")
	log.Info("Server mode: " + cfg.Server.Mode)

	// Set up Gin
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	gin.DefaultWriter = os.Stdout

	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware(log))
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: cfg.CORS.AllowedMethods,
		AllowHeaders: append(cfg.CORS.AllowedHeaders,
			"Accept-Encoding",
			"Content-Encoding",
			"Content-Type",
			"Authorization",
		),
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Encoding",
			"Content-Type",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
		},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	// Add Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Connect to database
	db, err := connection.NewDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if err := migrations.AutoMigrate(db, log.Logger); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize Redis
	redisConfig := cache.NewConfigFromEnv(cfg)
	redisClient, err := cache.NewRedisClient(redisConfig)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Initialize rate limiter with Redis client
	rateLimiter := auth.NewRedisRateLimiter(redisClient.GetClient(), 1*time.Minute, 1000)

	// Token issuance and refresh
	jwtService := auth.NewJWTService(cfg)

	// Create cache middleware instance
	cacheMiddleware := middleware.NewCacheMiddleware(redisClient, "taskflow", 5*time.Minute)

	// Initialize repositories
	userRepo := user.NewRepository(db)
	projectRepo := project.NewRepository(db)
	taskRepo := task.NewTaskRepository(db)
	tagRepo := tag.NewTagRepository(db)
	assignmentRepo := assignment.NewAssignmentRepository(db)
	commentRepo := comment.NewCommentRepository(db)
	analyticsRepo := analytics.NewAnalyticsRepository(db)

	// Initialize services
	userService := user.NewService(userRepo, log.Logger)
	projectService := project.NewService(projectRepo, userRepo, log.Logger)
	taskService := task.NewService(taskRepo, projectRepo, userRepo, log.Logger)
	tagService := tag.NewService(tagRepo, log.Logger)
	assignmentService := assignment.NewService(assignmentRepo, taskRepo, userRepo, log.Logger)
	commentService := comment.NewService(commentRepo, taskRepo, userRepo, log.Logger)
	analyticsService := analytics.NewService(analyticsRepo, projectRepo, userRepo, log.Logger)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, jwtService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService, assignmentService, commentService)
	tagHandler := handlers.NewTagHandler(tagService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	commentHandler := handlers.NewCommentHandler(commentService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	// Swagger documentation endpoint
	if cfg.Swagger.Enabled {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		log.Info("Registered swagger route at /swagger/index.html")
	}

	// Health check routes (no /api prefix as these are system endpoints)
	routes.SetupHealthRoutes(router, db, redisClient)
	log.Info("Registered health check routes at /health")

	// Apply rate limiting middleware globally
	router.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Resource routes (protected)
	routes.NewUserRoutes(userHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, cacheMiddleware)
	log.Info("Registered user routes at /api/users")

	routes.NewProjectRoutes(projectHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, cacheMiddleware)
	log.Info("Registered project routes at /api/projects")

	routes.NewTaskRoutes(taskHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, cacheMiddleware)
	log.Info("Registered task routes at /api/tasks")

	routes.NewTagRoutes(tagHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, cacheMiddleware)
	log.Info("Registered tag routes at /api/tags")

	routes.NewAssignmentRoutes(assignmentHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, cacheMiddleware)
	log.Info("Registered assignment routes at /api/assignments")

	routes.NewCommentRoutes(commentHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, cacheMiddleware)
	log.Info("Registered comment routes at /api/comments")

	routes.NewAnalyticsRoutes(analyticsHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, cacheMiddleware)
	log.Info("Registered analytics routes at /api/analytics")

	// Start server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info(fmt.Sprintf("Server starting on port %d", cfg.Server.Port))

		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited properly")
}
