package geocode

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/tartampluch/go-panchanga/internal/cache"
	"github.com/tartampluch/go-panchanga/internal/config"
	"github.com/tartampluch/go-panchanga/internal/engine"
)

// Cached memoizes a Geocoder. Cache failures degrade to a direct lookup;
// not-found answers are never stored.
type Cached struct {
	Inner engine.Geocoder
	Store cache.Cache
	TTL   time.Duration
}

var _ engine.Geocoder = (*Cached)(nil)

// NewCached wraps inner with store.
func NewCached(inner engine.Geocoder, store cache.Cache, ttl time.Duration) *Cached {
	return &Cached{Inner: inner, Store: store, TTL: ttl}
}

// placeKey folds case and surrounding space so "Repalle" and " REPALLE" share an entry.
func placeKey(place string) string {
	return cache.Key(config.CacheKeyGeocode, cases.Fold().String(strings.TrimSpace(place)))
}

// Resolve implements engine.Geocoder.
func (c *Cached) Resolve(ctx context.Context, place string) (engine.Location, error) {
	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompGeocode),
		slog.String(config.LogKeyPlace, place),
	)
	key := placeKey(place)

	if raw, hit, err := c.Store.Get(ctx, key); err != nil {
		log.WarnContext(ctx, config.MsgCacheFailed, slog.Any(config.LogKeyError, err))
	} else if hit {
		var loc engine.Location
		if err := json.Unmarshal(raw, &loc); err == nil {
			log.DebugContext(ctx, config.MsgGeocodeCached)
			return loc, nil
		}
	}

	loc, err := c.Inner.Resolve(ctx, place)
	if err != nil {
		return engine.Location{}, err
	}

	// Only the lookup itself is stored; the offset depends on the birth instant.
	loc.UTCOffset = 0
	if raw, err := json.Marshal(loc); err == nil {
		if err := c.Store.Set(ctx, key, raw, c.TTL); err != nil {
			log.WarnContext(ctx, config.MsgCacheFailed, slog.Any(config.LogKeyError, err))
		}
	}
	return loc, nil
}
