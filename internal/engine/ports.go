package engine

import "context"

// EphemerisPort supplies raw positions. Longitudes are tropical, in degrees.
// Implementations must be safe for concurrent use.
type EphemerisPort interface {
	// Longitude returns the tropical ecliptic longitude of body at jd (UT).
	// Rahu is the lunar node; Ketu and Ascendant are never requested here.
	Longitude(ctx context.Context, jd float64, body Body) (float64, error)

	// Ayanamsa returns the sidereal offset (degrees) at jd.
	Ayanamsa(ctx context.Context, jd float64) (float64, error)

	// Ascendant returns the tropical longitude of the rising point.
	Ascendant(ctx context.Context, jd, lat, lon float64, houseSystem byte) (float64, error)
}

// SunEvents is an optional EphemerisPort extension. When the configured
// ephemeris implements it, charts carry sunrise, sunset and Rahu Kaalam.
type SunEvents interface {
	// RiseSet returns the first sunrise at or after jd and the first sunset after it.
	RiseSet(ctx context.Context, jd, lat, lon float64) (rise, set float64, err error)
}

// Location is a resolved place.
type Location struct {
	Name string  `json:"name" yaml:"name"`
	Lat  float64 `json:"lat" yaml:"lat"`
	Lon  float64 `json:"lon" yaml:"lon"` // East positive.
	TZ   string  `json:"tz,omitempty" yaml:"tz,omitempty"`

	// UTCOffset is filled by the engine once the birth instant is known.
	UTCOffset float64 `json:"utc_offset" yaml:"utc_offset"`
}

// Geocoder resolves a free-form place (city name or "lat,lon") to a Location.
// An empty result is ErrCityNotFound; transport failures are ErrGeocode.
type Geocoder interface {
	Resolve(ctx context.Context, place string) (Location, error)
}
