package geocode

import (
	"fmt"

	"github.com/ringsaturn/tzf"

	"github.com/tartampluch/go-panchanga/internal/config"
)

// ZoneFinder maps a point to its IANA zone. An empty name means no zone
// covers the point, and the engine falls back to its default.
type ZoneFinder interface {
	TimezoneAt(lat, lon float64) string
}

// ZoneFunc adapts a function to ZoneFinder.
type ZoneFunc func(lat, lon float64) string

// TimezoneAt implements ZoneFinder.
func (f ZoneFunc) TimezoneAt(lat, lon float64) string { return f(lat, lon) }

// TZFinder looks zones up in the embedded timezone-boundary-builder polygons.
type TZFinder struct {
	finder tzf.F
}

var _ ZoneFinder = (*TZFinder)(nil)

// NewTZFinder loads the boundary data. Loading takes a noticeable moment, so
// build one finder per process.
func NewTZFinder() (*TZFinder, error) {
	f, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrZoneData, err)
	}
	return &TZFinder{finder: f}, nil
}

// TimezoneAt implements ZoneFinder.
func (z *TZFinder) TimezoneAt(lat, lon float64) string {
	return z.finder.GetTimezoneName(lon, lat)
}
