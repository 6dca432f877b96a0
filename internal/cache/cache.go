// Package cache stores small byte payloads (geocoder answers) between runs.
// Backends: a directory of JSON files for the CLI, Redis for shared server
// deployments, and a no-op cache when caching is disabled.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/tartampluch/go-panchanga/internal/config"
)

// Cache is a TTL key/value store. A miss is (nil, false, nil), never an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// New builds the backend selected in settings. password is only used by Redis.
func New(ctx context.Context, s config.CacheSettings, password string) (Cache, error) {
	slog.Debug("Opening cache",
		slog.String(config.LogKeyComponent, config.CompCache),
		slog.String(config.LogKeyBackend, s.Backend),
	)

	switch s.Backend {
	case config.CacheBackendNone:
		return NewNullCache(), nil
	case config.CacheBackendRedis:
		c, err := NewRedisCache(ctx, RedisOptions{
			Addr:     s.RedisAddr,
			Username: s.RedisUser,
			Password: password,
			DB:       s.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.CacheBackendFile, "":
		dir := s.Dir
		if dir == "" {
			var err error
			if dir, err = config.DefaultCacheDir(); err != nil {
				return nil, err
			}
		}
		c, err := NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrUnknownCache, s.Backend)
	}
}

// Key builds "prefix:sha256(parts)" so arbitrary inputs map to safe keys.
func Key(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
