package cache

import (
	"context"
	"sync"
	"time"

	rediscommon "github.com/blogify/blogify/common/redis"
)

// Logger interface for logging
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
}

// Cache is a string key/value cache with per-entry TTL.
// Used as a read-through cache for rendered post records; posts are
// insert-only so entries never need invalidation, only expiry.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Close() error
}

// MemoryCache is an in-process cache, used in tests and as a fallback
// when Redis is disabled
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	logger  Logger
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// NewMemoryCache creates a new in-process cache
func NewMemoryCache(logger Logger) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		logger:  logger,
	}
}

// Get retrieves a value; expired entries are treated as missing
func (c *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return "", false
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		c.Delete(context.Background(), key)
		return "", false
	}
	return entry.value, true
}

// Set stores a value with a TTL (0 means no expiry)
func (c *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
}

// Delete removes a key
func (c *MemoryCache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Close releases the cache
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}

// RedisCache backs the Cache interface with the shared Redis client.
// Cache misses and Redis failures are both reported as misses; the
// caller always falls through to the database.
type RedisCache struct {
	client *rediscommon.Client
	logger Logger
}

// NewRedisCache creates a Redis-backed cache
func NewRedisCache(client *rediscommon.Client, logger Logger) *RedisCache {
	return &RedisCache{
		client: client,
		logger: logger,
	}
}

// Get retrieves a value, treating any Redis error as a miss
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, key)
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores a value; failures are logged, not propagated
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if err := c.client.SetWithExpiry(ctx, key, value, ttl); err != nil {
		c.logger.Warn("cache set failed", "key", key, "error", err)
	}
}

// Delete removes a key; failures are logged, not propagated
func (c *RedisCache) Delete(ctx context.Context, key string) {
	if err := c.client.Delete(ctx, key); err != nil {
		c.logger.Warn("cache delete failed", "key", key, "error", err)
	}
}

// Close is a no-op; the underlying client is owned by the container
func (c *RedisCache) Close() error {
	return nil
}
