// Package redis provides the Redis connection used by the search index.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"simxml_zgw_backend/platform/config"
)

// Client wraps the go-redis client with a readiness check.
type Client struct {
	*redis.Client
}

// New opens a Redis client from the configured URL and pings it.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	opts, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{Client: client}, nil
}

// Ping checks the Redis connection.
func (c *Client) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}
