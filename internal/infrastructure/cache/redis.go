package cache

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/taskflow-dev/taskflow/pkg/config"
	"github.com/taskflow-dev/taskflow/pkg/logger"
)

var log = logger.NewLogger()

var (
	ErrCacheNotFound   = errors.New("cache: key not found")
	ErrCacheConnection = errors.New("cache: connection error")
	ErrInvalidConfig   = errors.New("cache: invalid configuration")
)

const healthCheckInterval = 10 * time.Second

// Config holds the configuration for the Redis client
type Config struct {
	Addr             string
	Password         string
	DB               int
	PoolSize         int
	MinIdleConns     int
	MaxRetries       int
	ConnTimeout      time.Duration
	OperationTimeout time.Duration
	UseCompression   bool
	DefaultTTL       time.Duration
	MaxKeyLength     int
	KeyPrefix        string
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		PoolSize:         100,
		MinIdleConns:     10,
		MaxRetries:       3,
		ConnTimeout:      5 * time.Second,
		OperationTimeout: 2 * time.Second,
		DefaultTTL:       30 * time.Minute,
		MaxKeyLength:     256,
		KeyPrefix:        "taskflow:",
	}
}

// NewConfigFromEnv creates a Redis config from project configuration
func NewConfigFromEnv(cfg *config.Config) *Config {
	c := DefaultConfig()
	c.Addr = fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	c.Password = cfg.Redis.Password
	c.DB = cfg.Redis.DB
	if cfg.Server.Timeout > 0 {
		c.OperationTimeout = cfg.Server.Timeout
	}
	return c
}

// lookupStats counts cache lookups, overall and per resource
type lookupStats struct {
	hits       atomic.Int64
	misses     atomic.Int64
	byResource sync.Map // map[string]*resourceStats
}

type resourceStats struct {
	hits   atomic.Int64
	misses atomic.Int64
}

func (s *lookupStats) record(hit bool, resource string) {
	value, _ := s.byResource.LoadOrStore(resource, &resourceStats{})
	rs := value.(*resourceStats)

	if hit {
		s.hits.Add(1)
		rs.hits.Add(1)
	} else {
		s.misses.Add(1)
		rs.misses.Add(1)
	}
}

// RedisClient wraps the go-redis client with key validation, optional
// gzip compression, lookup statistics and a background health probe.
type RedisClient struct {
	client    *redis.Client
	stats     *lookupStats
	config    *Config
	closeOnce sync.Once
	stop      chan struct{}
	health    int32 // 0 = healthy, 1 = unhealthy
}

// NewRedisClient creates a new Redis client with the provided configuration
func NewRedisClient(cfg *Config) (*RedisClient, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: address is required", ErrInvalidConfig)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: connecting to %s: %w", cfg.Addr, err)
	}

	r := &RedisClient{
		client: client,
		config: cfg,
		stats:  &lookupStats{},
		stop:   make(chan struct{}),
	}

	go r.healthCheckLoop()

	return r, nil
}

// healthCheckLoop probes Redis until the client is closed
func (r *RedisClient) healthCheckLoop() {
	ticker := time.NewTicker(healthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), r.config.OperationTimeout)
			if err := r.HealthCheck(ctx); err != nil {
				atomic.StoreInt32(&r.health, 1)
				log.Error("Redis health check failed", zap.Error(err))
			} else {
				atomic.StoreInt32(&r.health, 0)
			}
			cancel()
		}
	}
}

// IsHealthy returns whether Redis is currently reachable
func (r *RedisClient) IsHealthy() bool {
	return atomic.LoadInt32(&r.health) == 0
}

// HealthCheck checks if Redis is responding
func (r *RedisClient) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// withTimeout bounds the context when the caller did not
func (r *RedisClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); !ok {
		return context.WithTimeout(ctx, r.config.OperationTimeout)
	}
	return ctx, func() {}
}

// ready rejects an operation up front when Redis looks down or any
// supplied key is unusable.
func (r *RedisClient) ready(keys ...string) error {
	if !r.IsHealthy() {
		return ErrCacheConnection
	}
	for _, key := range keys {
		switch {
		case key == "":
			return fmt.Errorf("%w: empty key", ErrInvalidConfig)
		case len(key) > r.config.MaxKeyLength:
			return fmt.Errorf("%w: key too long (max %d characters)", ErrInvalidConfig, r.config.MaxKeyLength)
		}
	}
	return nil
}

func (r *RedisClient) prefixKey(key string) string {
	return r.config.KeyPrefix + key
}

// resourceOf extracts the resource segment from a cache key,
// e.g. taskflow:tasks:/api/tasks -> tasks.
func resourceOf(key string) string {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) >= 2 && parts[1] != "" {
		return parts[1]
	}
	return "other"
}

// Get retrieves a value from the cache. Hits and misses are counted
// against the key's resource segment.
func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	if err := r.ready(key); err != nil {
		return "", err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	val, err := r.client.Get(ctx, r.prefixKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.stats.record(false, resourceOf(key))
			return "", fmt.Errorf("%w: %s", ErrCacheNotFound, key)
		}
		return "", fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}

	r.stats.record(true, resourceOf(key))

	if r.config.UseCompression {
		return r.decompress(val)
	}
	return val, nil
}

// Set stores a value in the cache for the given TTL
func (r *RedisClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.ready(key); err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = r.config.DefaultTTL
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if r.config.UseCompression {
		compressed, err := r.compress(value)
		if err != nil {
			return fmt.Errorf("compression failed: %w", err)
		}
		value = compressed
	}

	return r.client.Set(ctx, r.prefixKey(key), value, ttl).Err()
}

// Delete removes values from the cache
func (r *RedisClient) Delete(ctx context.Context, keys ...string) error {
	if err := r.ready(keys...); err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = r.prefixKey(key)
	}

	return r.client.Del(ctx, prefixed...).Err()
}

// ClearByPattern removes all cache entries matching the given glob
func (r *RedisClient) ClearByPattern(ctx context.Context, pattern string) error {
	if err := r.ready(); err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var stale []string
	iter := r.client.Scan(ctx, 0, r.prefixKey(pattern), 100).Iterator()
	for iter.Next(ctx) {
		stale = append(stale, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	return r.client.Del(ctx, stale...).Err()
}

func (r *RedisClient) compress(data string) (string, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(data)); err != nil {
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *RedisClient) decompress(data string) (string, error) {
	zr, err := gzip.NewReader(strings.NewReader(data))
	if err != nil {
		return "", err
	}
	defer zr.Close()

	plain, err := io.ReadAll(zr)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// GetMetrics reports lookup counters for the cache health endpoint
func (r *RedisClient) GetMetrics() map[string]interface{} {
	hits := r.stats.hits.Load()
	misses := r.stats.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	byResource := make(map[string]interface{})
	r.stats.byResource.Range(func(key, value interface{}) bool {
		rs := value.(*resourceStats)
		byResource[key.(string)] = map[string]int64{
			"hits":   rs.hits.Load(),
			"misses": rs.misses.Load(),
		}
		return true
	})

	return map[string]interface{}{
		"hits":        hits,
		"misses":      misses,
		"hit_rate":    hitRate,
		"by_resource": byResource,
		"healthy":     r.IsHealthy(),
	}
}

// GetPoolStats exposes connection pool counters
func (r *RedisClient) GetPoolStats() *redis.PoolStats {
	return r.client.PoolStats()
}

// GetClient returns the underlying Redis client
func (r *RedisClient) GetClient() *redis.Client {
	return r.client
}

// Close stops the health probe and closes the Redis client
func (r *RedisClient) Close() error {
	var err error
	r.closeOnce.Do(func() {
		close(r.stop)
		err = r.client.Close()
	})
	return err
}
