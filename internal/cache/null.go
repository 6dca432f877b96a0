package cache

import (
	"context"
	"time"
)

// NullCache never stores anything.
type NullCache struct{}

var _ Cache = NullCache{}

func NewNullCache() NullCache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error { return nil }
func (NullCache) Close() error { return nil }
