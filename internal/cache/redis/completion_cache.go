package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/orator/internal/domain"
	"github.com/davidbz/orator/internal/observability"
)

// CompletionCache stores completion responses as JSON strings in Redis.
type CompletionCache struct {
	client *redis.Client
}

// NewCompletionCache creates a cache on an existing client.
func NewCompletionCache(client *redis.Client) *CompletionCache {
	return &CompletionCache{client: client}
}

// Connect opens a client from config and verifies the server is reachable.
func Connect(ctx context.Context, cfg *Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.Addr, err)
	}

	return client, nil
}

// Get returns the cached response for key or domain.ErrCacheMiss.
func (c *CompletionCache) Get(ctx context.Context, key string) (*domain.CompletionResponse, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}

	var resp domain.CompletionResponse
	if unmarshalErr := json.Unmarshal(data, &resp); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal cached response: %w", unmarshalErr)
	}

	return &resp, nil
}

// Set stores resp under key. A zero ttl keeps the entry until evicted.
func (c *CompletionCache) Set(
	ctx context.Context,
	key string,
	resp *domain.CompletionResponse,
	ttl time.Duration,
) error {
	if resp == nil {
		return errors.New("response cannot be nil")
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	if setErr := c.client.Set(ctx, key, data, ttl).Err(); setErr != nil {
		return fmt.Errorf("failed to write cache entry: %w", setErr)
	}

	observability.FromContext(ctx).Debug("cached completion",
		observability.String("cache_key", key),
		observability.Int("data_size", len(data)),
		observability.Duration("ttl", ttl))

	return nil
}
