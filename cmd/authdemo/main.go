package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taskflow-dev/taskflow/internal/authdemo"
	"github.com/taskflow-dev/taskflow/pkg/logger"
)

const defaultPort = 8000

func main() {
	log := logger.NewLogger()
	defer log.Sync()

	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		secret = "your-secret-key-change-this-in-prod"
		log.Warn("SECRET_KEY not set, using development default")
	}

	tokenTTL := authdemo.DefaultTokenTTL
	if raw := os.Getenv("TOKEN_EXPIRE_MINUTES"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatal("Invalid TOKEN_EXPIRE_MINUTES", zap.String("value", raw))
		}
		tokenTTL = time.Duration(minutes) * time.Minute
	}

	port := defaultPort
	if raw := os.Getenv("PORT"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatal("Invalid PORT", zap.String("value", raw))
		}
		port = p
	}

	service := authdemo.NewService(authdemo.NewStore(), secret, tokenTTL)
	handler := authdemo.NewHandler(service)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("Request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	})
	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	go func() {
		log.Info(fmt.Sprintf("Auth demo starting on port %d", port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
}
