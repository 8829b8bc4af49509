// internal/common/database/redis.go
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"movie-graph-workers/internal/common/config"
	"movie-graph-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisClient wraps the Redis client
type RedisClient struct {
	Client *redis.Client
}

// NewRedis creates a new Redis client
func NewRedis(cfg config.RedisConfig) (*RedisClient, error) {
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	return &RedisClient{Client: rdb}, nil
}

// Ping tests the Redis connection
func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (c *RedisClient) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}

// GetClient returns the underlying *redis.Client
func (c *RedisClient) GetClient() *redis.Client {
	return c.Client
}

// ResultCache stores successful graph result sets keyed by intent and subject.
type ResultCache struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewResultCache(client redis.Cmdable, prefix string, ttl time.Duration) *ResultCache {
	if prefix == "" {
		prefix = "movie:graph"
	}
	return &ResultCache{client: client, prefix: prefix, ttl: ttl}
}

// Key returns "{prefix}:{intent}:{subject}". Titles are case sensitive in the graph,
// so the subject is only trimmed.
func (c *ResultCache) Key(d models.QueryDescriptor) string {
	return fmt.Sprintf("%s:%s:%s", c.prefix, d.Intent, strings.TrimSpace(d.Subject))
}

// Get returns the cached result set. found is false on a cache miss.
func (c *ResultCache) Get(ctx context.Context, d models.QueryDescriptor) (rs models.ResultSet, found bool, err error) {
	val, err := c.client.Get(ctx, c.Key(d)).Result()
	if errors.Is(err, redis.Nil) {
		return models.ResultSet{}, false, nil
	}
	if err != nil {
		return models.ResultSet{}, false, fmt.Errorf("cache get: %w", err)
	}

	if err := json.Unmarshal([]byte(val), &rs); err != nil {
		return models.ResultSet{}, false, fmt.Errorf("cache decode: %w", err)
	}
	return rs, true, nil
}

// Set stores a successful result set. Failed result sets are never cached.
func (c *ResultCache) Set(ctx context.Context, d models.QueryDescriptor, rs models.ResultSet) error {
	if rs.Failed() {
		return nil
	}

	data, err := json.Marshal(rs)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, c.Key(d), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached entry for d.
func (c *ResultCache) Invalidate(ctx context.Context, d models.QueryDescriptor) error {
	return c.client.Del(ctx, c.Key(d)).Err()
}
