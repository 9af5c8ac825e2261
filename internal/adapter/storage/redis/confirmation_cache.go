package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ConfirmationCache implements ports.ConfirmationCache using Redis.
// A cache miss is never an error: callers fall through to the database,
// which holds the authoritative copy.
type ConfirmationCache struct {
	client *goredis.Client
	prefix string
}

// NewConfirmationCache creates a new Redis-backed confirmation cache.
func NewConfirmationCache(client *goredis.Client) *ConfirmationCache {
	return &ConfirmationCache{
		client: client,
		prefix: "confirm:",
	}
}

// Get retrieves a cached donation by transaction reference.
// Returns nil, nil if the reference is not cached.
func (c *ConfirmationCache) Get(ctx context.Context, txRef string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+txRef).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis confirmation get: %w", err)
	}
	return val, nil
}

// Set stores a recorded donation in the confirmation cache with TTL.
func (c *ConfirmationCache) Set(ctx context.Context, txRef string, value []byte, ttl time.Duration) error {
	err := c.client.Set(ctx, c.prefix+txRef, value, ttl).Err()
	if err != nil {
		return fmt.Errorf("redis confirmation set: %w", err)
	}
	return nil
}
