package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultDialTimeout = 5 * time.Second
	opTimeout          = 500 * time.Millisecond
)

// Config holds the connection and entry settings of the identity cache.
type Config struct {
	Addr        string
	DB          int
	IdentityTTL time.Duration
	DialTimeout time.Duration
}

// Open connects to Redis, checks the connection with a ping and returns an
// IdentityCache backed by it. Cache reads and writes sit on the request
// path, so socket timeouts are kept short.
func Open(ctx context.Context, cfg Config) (*IdentityCache, error) {
	dial := cfg.DialTimeout
	if dial <= 0 {
		dial = defaultDialTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		DB:           cfg.DB,
		DialTimeout:  dial,
		ReadTimeout:  opTimeout,
		WriteTimeout: opTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dial)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return NewIdentityCache(client, cfg.IdentityTTL), nil
}

// Ping reports whether the cache's Redis server answers. Used by the
// readiness probe.
func (c *IdentityCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *IdentityCache) Close() error {
	return c.client.Close()
}
