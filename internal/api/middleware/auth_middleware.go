package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskflow-dev/taskflow/pkg/logger"
	"github.com/taskflow-dev/taskflow/pkg/security/auth"
)

var log = logger.NewLogger()

const bearerSchema = "Bearer "

// bearerToken pulls the raw token out of the Authorization header.
func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	switch {
	case header == "":
		return "", fmt.Errorf("authorization header is required")
	case !strings.HasPrefix(header, bearerSchema):
		return "", fmt.Errorf("invalid authorization header format")
	}
	return strings.TrimPrefix(header, bearerSchema), nil
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
	c.Abort()
}

// NewAuthMiddleware guards a route group behind a valid, non-revoked JWT.
// On success the claims land in the context under user_id, email and
// username; the raw token is kept under "token" so logout can revoke it.
func NewAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := bearerToken(c)
		if err != nil {
			log.Error("Rejected request without usable bearer token", zap.Error(err))
			abortUnauthorized(c, err.Error())
			return
		}

		// Revoked tokens stay signed and valid until expiry, so the
		// blacklist has to be consulted before signature verification.
		if auth.GetTokenBlacklist().IsBlacklisted(tokenString) {
			log.Warn("Rejected revoked token")
			abortUnauthorized(c, "token has been invalidated")
			return
		}

		claims, err := auth.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			log.Error("Token validation failed", zap.Error(err))
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("username", claims.Username)
		c.Set("token", tokenString)

		c.Next()
	}
}

// RateLimitMiddleware throttles clients per IP and path through the
// Redis-backed limiter.
func RateLimitMiddleware(limiter auth.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", c.ClientIP(), c.Request.URL.Path)

		allowed, remaining, resetTime, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.Error("Rate limiter error", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Header("X-RateLimit-Reset", resetTime.String())

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":    "rate limit exceeded",
				"reset_in": time.Until(resetTime).String(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserID retrieves the authenticated user's ID from the context.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}
