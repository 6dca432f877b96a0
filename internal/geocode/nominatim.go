// Package geocode resolves birth places to coordinates through an
// OpenStreetMap Nominatim endpoint, then to the IANA zone in force there.
// Coordinates given as "lat,lon" never touch the network.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/go-panchanga/internal/cache"
	"github.com/tartampluch/go-panchanga/internal/config"
	"github.com/tartampluch/go-panchanga/internal/engine"
)

// Nominatim implements engine.Geocoder against the Nominatim search API.
type Nominatim struct {
	BaseURL string
	Client  *http.Client

	// Zones names the zone at the resolved point. Nil leaves TZ empty and
	// lets the engine apply its default.
	Zones ZoneFinder
}

var _ engine.Geocoder = (*Nominatim)(nil)

// NewNominatim creates a client with the configured timeout.
func NewNominatim(baseURL string, timeout time.Duration) *Nominatim {
	if baseURL == "" {
		baseURL = config.DefaultGeocoderURL
	}
	if timeout <= 0 {
		timeout = config.HTTPTimeout
	}
	return &Nominatim{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Resolve implements engine.Geocoder.
func (n *Nominatim) Resolve(ctx context.Context, place string) (engine.Location, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return engine.Location{}, fmt.Errorf("%w: %s", engine.ErrInputFormat, config.ErrEmptyPlace)
	}

	if loc, ok, err := ParseCoordinates(place); ok {
		if err != nil {
			return engine.Location{}, err
		}
		loc.TZ = n.zoneAt(loc.Lat, loc.Lon)
		return loc, nil
	}

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompGeocode),
		slog.String(config.LogKeyPlace, place),
	)
	log.DebugContext(ctx, config.MsgGeocodeLookup)

	var res searchResult
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		res, err = n.search(ctx, place)
		return err
	})
	if errors.Is(err, engine.ErrCityNotFound) {
		return engine.Location{}, err
	}
	if err != nil {
		return engine.Location{}, fmt.Errorf("%w: %w", engine.ErrGeocode, err)
	}

	lat, errLat := strconv.ParseFloat(res.Lat, 64)
	lon, errLon := strconv.ParseFloat(res.Lon, 64)
	if err := errors.Join(errLat, errLon); err != nil {
		return engine.Location{}, fmt.Errorf("%w: %w", engine.ErrGeocode, err)
	}

	log.DebugContext(ctx, config.MsgGeocodeFound,
		slog.String(config.LogKeyName, res.DisplayName),
		slog.Float64(config.LogKeyLat, lat),
		slog.Float64(config.LogKeyLon, lon),
	)
	return engine.Location{Name: place, Lat: lat, Lon: lon, TZ: n.zoneAt(lat, lon)}, nil
}

func (n *Nominatim) zoneAt(lat, lon float64) string {
	if n.Zones == nil {
		return ""
	}
	return n.Zones.TimezoneAt(lat, lon)
}

// search performs one HTTP round trip. Transport errors and 5xx/429 answers
// are marked retryable.
func (n *Nominatim) search(ctx context.Context, place string) (searchResult, error) {
	u, err := url.Parse(n.BaseURL)
	if err != nil {
		return searchResult{}, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return searchResult{}, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	q := u.Query()
	q.Set(config.NominatimParamQuery, place)
	q.Set(config.NominatimParamFormat, config.NominatimFormatJSON)
	q.Set(config.NominatimParamLimit, config.NominatimLimit)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return searchResult{}, err
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)

	resp, err := n.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return searchResult{}, ctx.Err()
		}
		return searchResult{}, cache.Retryable(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= http.StatusInternalServerError, resp.StatusCode == http.StatusTooManyRequests:
		return searchResult{}, cache.Retryable(fmt.Errorf("unexpected status: %s", resp.Status))
	default:
		slog.WarnContext(ctx, config.MsgGeocodeStatus,
			slog.String(config.LogKeyComponent, config.CompGeocode),
			slog.Int(config.LogKeyStatus, resp.StatusCode),
		)
		return searchResult{}, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var results []searchResult
	if err := json.NewDecoder(io.LimitReader(resp.Body, config.MaxGeocodeResponse)).Decode(&results); err != nil {
		return searchResult{}, fmt.Errorf("%s: %w", config.ErrProtocol, err)
	}
	if len(results) == 0 {
		return searchResult{}, fmt.Errorf("%w: %q", engine.ErrCityNotFound, place)
	}
	return results[0], nil
}

// ParseCoordinates recognizes "lat,lon". ok is false when place is not a
// coordinate pair; err is set when it is one but out of range.
func ParseCoordinates(place string) (loc engine.Location, ok bool, err error) {
	latText, lonText, found := strings.Cut(place, config.CoordSeparator)
	if !found {
		return engine.Location{}, false, nil
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(latText), 64)
	lon, err2 := strconv.ParseFloat(strings.TrimSpace(lonText), 64)
	if err1 != nil || err2 != nil {
		return engine.Location{}, false, nil
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return engine.Location{}, true, fmt.Errorf("%w: %s %q", engine.ErrInputFormat, config.ErrBadCoordinates, place)
	}
	return engine.Location{
		Name: fmt.Sprintf(config.FormatCoordPlace, lat, lon),
		Lat:  lat,
		Lon:  lon,
	}, true, nil
}
