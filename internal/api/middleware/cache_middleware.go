package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taskflow-dev/taskflow/internal/infrastructure/cache"
)

// CacheMiddleware serves GET responses from Redis. Keys carry the
// resource segment of the path (taskflow:tasks:..., taskflow:users:...)
// so that write endpoints can drop a whole resource with one pattern.
type CacheMiddleware struct {
	cache  *cache.RedisClient
	prefix string
	ttl    time.Duration
}

func NewCacheMiddleware(cache *cache.RedisClient, prefix string, ttl time.Duration) *CacheMiddleware {
	return &CacheMiddleware{
		cache:  cache,
		prefix: prefix,
		ttl:    ttl,
	}
}

// teeWriter streams the response to the client while keeping a copy
// for the cache.
type teeWriter struct {
	gin.ResponseWriter
	copy bytes.Buffer
}

func (w *teeWriter) Write(b []byte) (int, error) {
	w.copy.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *teeWriter) WriteString(s string) (int, error) {
	w.copy.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// cacheKey derives the storage key from the request. The full path and
// query string go into the key, so every distinct listing page or
// detail view gets its own entry.
func (m *CacheMiddleware) cacheKey(c *gin.Context) string {
	key := fmt.Sprintf("%s:%s:%s", m.prefix, resourceSegment(c.Request.URL.Path), c.Request.URL.Path)
	if q := c.Request.URL.RawQuery; q != "" {
		key += "?" + q
	}
	return key
}

// resourceSegment extracts the resource name from an API path,
// e.g. /api/tasks/123 -> tasks.
func resourceSegment(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) >= 2 && parts[0] == "api" {
		return parts[1]
	}
	return "misc"
}

// CacheResponse answers GET requests from the cache when possible and
// stores fresh 200 responses for the configured TTL.
func (m *CacheMiddleware) CacheResponse() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || !m.cache.IsHealthy() {
			c.Next()
			return
		}

		key := m.cacheKey(c)

		if cached, err := m.cache.Get(c, key); err == nil {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
			c.Abort()
			return
		}

		c.Header("X-Cache", "MISS")
		writer := &teeWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		c.Writer = writer.ResponseWriter
		if writer.Status() == http.StatusOK {
			if err := m.cache.Set(c, key, writer.copy.String(), m.ttl); err != nil {
				log.Error("Failed to cache response",
					zap.String("key", key),
					zap.Error(err))
			}
		}
	}
}

// CacheInvalidate drops matching cache entries after a successful
// write. Patterns are resource globs such as "tasks:*".
func (m *CacheMiddleware) CacheInvalidate(patterns ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		for _, pattern := range patterns {
			key := fmt.Sprintf("%s:%s", m.prefix, pattern)
			if err := m.cache.ClearByPattern(c, key); err != nil {
				log.Error("Failed to invalidate cache",
					zap.String("pattern", key),
					zap.Error(err))
			}
		}
	}
}
