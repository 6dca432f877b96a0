package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/tartampluch/go-panchanga/internal/config"
)

// FileCache keeps one JSON file per key under dir, sharded by hash prefix.
type FileCache struct {
	dir string
	now func() time.Time
}

var _ Cache = (*FileCache)(nil)

// NewFileCache creates dir (owner-only) if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

type fileEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get returns the stored payload. Corrupt or expired entries are removed and
// reported as a miss.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", config.ErrCacheRead, err)
	}

	var e fileEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !e.ExpiresAt.IsZero() && c.now().After(e.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return e.Data, true, nil
}

// Set stores data; ttl <= 0 never expires.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	e := fileEntry{Data: data}
	if ttl > 0 {
		e.ExpiresAt = c.now().Add(ttl)
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrCacheWrite, err)
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), config.DirPermUserRWX); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCacheWrite, err)
	}
	if err := os.WriteFile(path, raw, config.FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCacheWrite, err)
	}
	return nil
}

// Delete removes key; a missing entry is not an error.
func (c *FileCache) Delete(_ context.Context, key string) error {
	err := os.Remove(c.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", config.ErrCacheWrite, err)
	}
	return nil
}

func (c *FileCache) Close() error { return nil }

func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+config.CacheFileExt)
}
