package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ghuser/stockroom/pkg/config"
)

const dialTimeout = 2 * time.Second

// RedisClient is the connection pool behind the catalog read cache.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient dials cfg.RedisURL and fails fast when Redis does not answer.
func NewRedisClient(cfg *config.Config) (*RedisClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	return Dial(ctx, cfg.RedisURL, cfg.ServiceName)
}

// Dial parses url, applies the catalog pool settings and pings the server
// within ctx. name is reported to Redis as the client name.
func Dial(ctx context.Context, url, name string) (*RedisClient, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	tunePool(opts, name)

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &RedisClient{client: rdb}, nil
}

// tunePool sizes the pool for short hash reads. Cache misses fall back to
// Postgres, so timeouts are tight and retries few.
func tunePool(opts *redis.Options, name string) {
	opts.ClientName = name
	opts.PoolSize = 10
	opts.MinIdleConns = 2
	opts.MaxRetries = 2
	opts.DialTimeout = dialTimeout
	opts.ReadTimeout = 500 * time.Millisecond
	opts.WriteTimeout = 500 * time.Millisecond
	opts.PoolTimeout = time.Second
}

// WrapClient adopts an existing redis.Client, e.g. one started by a test container.
func WrapClient(rdb *redis.Client) *RedisClient {
	return &RedisClient{client: rdb}
}

// Ping reports whether the cache is reachable. Used by /health.
func (r *RedisClient) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close releases the pool. Safe on a zero RedisClient.
func (r *RedisClient) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("redis close: %w", err)
	}
	return nil
}

// Client returns the underlying redis.Client.
func (r *RedisClient) Client() *redis.Client {
	return r.client
}
