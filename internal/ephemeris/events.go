package ephemeris

import (
	"fmt"
	"math"

	"github.com/soniakeys/meeus/v3/globe"
	"github.com/soniakeys/meeus/v3/rise"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"

	"github.com/tartampluch/go-panchanga/internal/config"
)

const secondsPerDay = 86400.0

// riseDeltaT is zero: every position here is evaluated in UT.
const riseDeltaT = 0

// solarDay holds the rise and set of one UT day as Julian days.
type solarDay struct {
	rise, set float64
}

// solarDayAt computes sunrise and sunset for the UT day starting at day (0h UT).
func solarDayAt(day, lat, lon float64) (solarDay, error) {
	ra := make([]unit.RA, 3)
	dec := make([]unit.Angle, 3)
	for i := range ra {
		ra[i], dec[i] = solar.ApparentEquatorial(day + float64(i-1))
	}
	unwrapRA(ra)

	// Meeus measures longitude positive westward.
	p := globe.Coord{Lat: unit.AngleFromDeg(lat), Lon: unit.AngleFromDeg(-lon)}
	tRise, _, tSet, err := rise.Times(p, riseDeltaT, unit.AngleFromDeg(config.SunriseAltitude), sidereal.Apparent0UT(day), ra, dec)
	if err != nil {
		return solarDay{}, err
	}
	return solarDay{
		rise: day + float64(tRise)/secondsPerDay,
		set:  day + float64(tSet)/secondsPerDay,
	}, nil
}

// unwrapRA keeps the three right ascensions increasing across 0h so they
// interpolate smoothly around the March equinox.
func unwrapRA(ra []unit.RA) {
	for i := 1; i < len(ra); i++ {
		for ra[i] < ra[i-1] {
			ra[i] += unit.RA(2 * math.Pi)
		}
	}
}

// riseSet finds the first sunrise at or after jd and the sunset following it.
func riseSet(jd, lat, lon float64) (float64, float64, error) {
	day := math.Floor(jd-0.5) + 0.5
	riseJD := math.NaN()

	for i := 0; i < config.SunEventDays; i++ {
		d, err := solarDayAt(day+float64(i), lat, lon)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: lat %.4f: %w", ErrNoSunEvent, lat, err)
		}
		if math.IsNaN(riseJD) {
			if d.rise < jd {
				continue
			}
			riseJD = d.rise
		}
		if d.set > riseJD {
			return riseJD, d.set, nil
		}
	}
	return 0, 0, fmt.Errorf("%w: lat %.4f", ErrNoSunEvent, lat)
}
