// Package ephemeris is an analytic implementation of the engine's
// EphemerisPort. The Sun, Moon, lunar node, sidereal time, obliquity and
// sunrise come from the Meeus, "Astronomical Algorithms" routines in
// soniakeys/meeus; the planets use the JPL approximate Keplerian elements.
// Nutation and Delta T are ignored; positions are good to a few arcminutes,
// which is well inside the width of a nakshatra pada.
package ephemeris

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/tartampluch/go-panchanga/internal/config"
	"github.com/tartampluch/go-panchanga/internal/engine"
)

var (
	ErrOutOfRange     = errors.New(config.ErrJulianRange)
	ErrUnknownBody    = errors.New(config.ErrUnknownBody)
	ErrBadCoordinates = errors.New(config.ErrBadCoordinates)
	ErrNoSunEvent     = errors.New(config.ErrNoSunEvent)
)

// Analytic computes positions from closed-form series. The zero value is
// not usable; call New.
type Analytic struct {
	minJD, maxJD float64
}

var (
	_ engine.EphemerisPort = (*Analytic)(nil)
	_ engine.SunEvents     = (*Analytic)(nil)
)

// New returns an ephemeris covering 1800-2100.
func New() *Analytic {
	return &Analytic{minJD: config.MinJulianDay, maxJD: config.MaxJulianDay}
}

func (a *Analytic) check(ctx context.Context, jd float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if math.IsNaN(jd) || jd < a.minJD || jd > a.maxJD {
		return fmt.Errorf("%w: %.5f", ErrOutOfRange, jd)
	}
	return nil
}

func checkCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.Abs(lat) > 90 || math.Abs(lon) > 180 {
		return fmt.Errorf("%w: %.4f,%.4f", ErrBadCoordinates, lat, lon)
	}
	return nil
}

// Longitude returns the tropical longitude of body at jd.
func (a *Analytic) Longitude(ctx context.Context, jd float64, body engine.Body) (float64, error) {
	if err := a.check(ctx, jd); err != nil {
		return 0, err
	}

	switch body {
	case engine.Sun:
		return sunLongitude(jd), nil
	case engine.Moon:
		return moonLongitude(jd), nil
	case engine.Mercury:
		return geocentricLongitude(mercuryElements, jd), nil
	case engine.Venus:
		return geocentricLongitude(venusElements, jd), nil
	case engine.Mars:
		return geocentricLongitude(marsElements, jd), nil
	case engine.Jupiter:
		return geocentricLongitude(jupiterElements, jd), nil
	case engine.Saturn:
		return geocentricLongitude(saturnElements, jd), nil
	case engine.Rahu:
		return meanNode(jd), nil
	case engine.Ketu:
		return normalize360(meanNode(jd) + 180), nil
	default:
		// The Ascendant depends on the observer; see Ascendant.
		return 0, fmt.Errorf("%w: %s", ErrUnknownBody, body)
	}
}

// Ayanamsa returns the Lahiri ayanamsa at jd.
func (a *Analytic) Ayanamsa(ctx context.Context, jd float64) (float64, error) {
	if err := a.check(ctx, jd); err != nil {
		return 0, err
	}
	return lahiri(jd), nil
}

// Ascendant returns the tropical ascendant. The rising point does not depend
// on the house system, so houseSystem is accepted for interface compatibility.
func (a *Analytic) Ascendant(ctx context.Context, jd, lat, lon float64, _ byte) (float64, error) {
	if err := a.check(ctx, jd); err != nil {
		return 0, err
	}
	if err := checkCoordinates(lat, lon); err != nil {
		return 0, err
	}
	return ascendant(jd, lat, lon), nil
}

// RiseSet returns the first sunrise at or after jd and the following sunset.
func (a *Analytic) RiseSet(ctx context.Context, jd, lat, lon float64) (float64, float64, error) {
	if err := a.check(ctx, jd); err != nil {
		return 0, 0, err
	}
	if err := checkCoordinates(lat, lon); err != nil {
		return 0, 0, err
	}
	return riseSet(jd, lat, lon)
}
