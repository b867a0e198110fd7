// Package cache provides a Redis-backed cache for search responses.
// The cache is optional; a zero-config cache degrades to a no-op.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"solana-pool-search/internal/api/types"
)

// ErrDisabled indicates the cache layer is disabled via configuration.
var ErrDisabled = errors.New("redis cache disabled")

// ErrMiss indicates the key is absent.
var ErrMiss = errors.New("cache miss")

// Config represents Redis client configuration options.
type Config struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Cache wraps a Redis client for caching assembled search responses.
type Cache struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Cache from the provided configuration.
func New(cfg Config) *Cache {
	if !cfg.Enabled {
		return &Cache{cfg: cfg}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &Cache{client: client, cfg: cfg}
}

// Close releases the underlying client.
func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *Cache) key(query string) string {
	return fmt.Sprintf("search:%s", query)
}

// GetSearch retrieves a cached search response for a query.
func (c *Cache) GetSearch(ctx context.Context, query string) ([]types.SearchResult, error) {
	if c == nil || c.client == nil {
		return nil, ErrDisabled
	}

	payload, err := c.client.Get(ctx, c.key(query)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}

	var results []types.SearchResult
	if err := json.Unmarshal([]byte(payload), &results); err != nil {
		return nil, err
	}
	return results, nil
}

// SetSearch stores a search response for a query.
func (c *Cache) SetSearch(ctx context.Context, query string, results []types.SearchResult) error {
	if c == nil || c.client == nil {
		return ErrDisabled
	}

	payload, err := json.Marshal(results)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, c.key(query), payload, c.cfg.TTL).Err()
}
