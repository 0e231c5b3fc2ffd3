package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisDecisionCache implements port.DecisionCache on Redis.
type RedisDecisionCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisDecisionCache connects to Redis and verifies the connection.
func NewRedisDecisionCache(ctx context.Context, addr, password string, db int, logger *slog.Logger) (*RedisDecisionCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &RedisDecisionCache{client: client, logger: logger}, nil
}

// Get returns the cached payload for key. Cache errors are treated as misses.
func (c *RedisDecisionCache) Get(ctx context.Context, key string) (string, bool) {
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache read failed", "key", key, "error", err.Error())
		}
		return "", false
	}
	return value, true
}

// Set stores the payload under key with a TTL.
func (c *RedisDecisionCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache write: %w", err)
	}
	return nil
}

// Close releases the underlying connection.
func (c *RedisDecisionCache) Close() error {
	return c.client.Close()
}
