package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tartampluch/go-panchanga/internal/config"
)

// RedisOptions is the subset of redis.Options exposed in settings.
type RedisOptions struct {
	Addr     string
	Username string
	Password string
	DB       int
}

// RedisCache shares entries between server instances.
type RedisCache struct {
	client *redis.Client
}

var _ Cache = (*RedisCache)(nil)

// NewRedisCache connects and pings the server so misconfiguration surfaces at startup.
func NewRedisCache(ctx context.Context, o RedisOptions) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        o.Addr,
		Username:    o.Username,
		Password:    o.Password,
		DB:          o.DB,
		DialTimeout: config.RedisDialTimeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %w", config.ErrCacheRead, err)
	}
	return &RedisCache{client: client}, nil
}

// Get returns the stored payload; redis.Nil is a miss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", config.ErrCacheRead, err)
	}
	return data, true, nil
}

// Set stores data; ttl <= 0 never expires.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCacheWrite, err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCacheWrite, err)
	}
	return nil
}

func (c *RedisCache) Close() error { return c.client.Close() }
