package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tartampluch/go-panchanga/internal/config"
	"golang.org/x/sync/errgroup"
)

// Positions holds sidereal longitudes for one instant. The zero value is empty.
type Positions struct {
	values [len(bodyNames)]float64
	set    [len(bodyNames)]bool
}

// Get returns the longitude of b and whether it was resolved.
func (p Positions) Get(b Body) (float64, bool) {
	if !b.Valid() {
		return 0, false
	}
	return p.values[b], p.set[b]
}

// Must returns the longitude of b, or 0 when absent.
func (p Positions) Must(b Body) float64 {
	v, _ := p.Get(b)
	return v
}

// Bodies lists the resolved bodies in chart order.
func (p Positions) Bodies() []Body {
	var out []Body
	for _, b := range Bodies {
		if p.set[b] {
			out = append(out, b)
		}
	}
	return out
}

func (p *Positions) put(b Body, v float64) {
	p.values[b] = Normalize(v)
	p.set[b] = true
}

// NewPositions builds Positions from a map; mostly useful in tests and adapters.
// Ketu is derived from Rahu when Rahu is present.
func NewPositions(m map[Body]float64) Positions {
	var p Positions
	for b, v := range m {
		if b.Valid() && b != Ketu {
			p.put(b, v)
		}
	}
	if r, ok := p.Get(Rahu); ok {
		p.put(Ketu, r+180)
	}
	return p
}

// Resolver turns tropical ephemeris output into sidereal Positions.
type Resolver struct {
	Ephemeris   EphemerisPort
	HouseSystem byte
}

// NewResolver returns a Resolver using the Placidus house system.
func NewResolver(eph EphemerisPort) *Resolver {
	return &Resolver{Ephemeris: eph, HouseSystem: config.DefaultHouseSystem}
}

var planetary = []Body{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu}

// Resolve queries every body concurrently. The Ascendant is included only
// when loc is non-nil. Provider failures are wrapped in ErrEphemerisUnavailable.
func (r *Resolver) Resolve(ctx context.Context, jd float64, loc *Location) (Positions, error) {
	if r.Ephemeris == nil {
		return Positions{}, fmt.Errorf("%w: %s", ErrEphemerisUnavailable, config.ErrEphemerisMissing)
	}

	ayan, err := r.Ephemeris.Ayanamsa(ctx, jd)
	if err != nil {
		return Positions{}, wrapEphemeris(err)
	}

	var trop [len(bodyNames)]float64
	g, gctx := errgroup.WithContext(ctx)
	for _, b := range planetary {
		b := b
		g.Go(func() error {
			v, err := r.Ephemeris.Longitude(gctx, jd, b)
			if err != nil {
				return fmt.Errorf("%s: %w", b, err)
			}
			trop[b] = v
			return nil
		})
	}
	if loc != nil {
		g.Go(func() error {
			v, err := r.Ephemeris.Ascendant(gctx, jd, loc.Lat, loc.Lon, r.HouseSystem)
			if err != nil {
				return fmt.Errorf("%s: %w", Ascendant, err)
			}
			trop[Ascendant] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Positions{}, wrapEphemeris(err)
	}

	var p Positions
	for _, b := range planetary {
		p.put(b, trop[b]-ayan)
	}
	p.put(Ketu, p.values[Rahu]+180)
	if loc != nil {
		p.put(Ascendant, trop[Ascendant]-ayan)
	}

	slog.DebugContext(ctx, config.MsgPositions,
		config.LogKeyComponent, config.CompResolver,
		config.LogKeyJD, jd,
		config.LogKeyBodies, len(p.Bodies()),
	)
	return p, nil
}

// SunMoon returns the sidereal Sun and Moon at jd. Used by the transition drivers.
func (r *Resolver) SunMoon(ctx context.Context, jd float64) (float64, float64, error) {
	ayan, err := r.Ephemeris.Ayanamsa(ctx, jd)
	if err != nil {
		return 0, 0, wrapEphemeris(err)
	}
	sun, err := r.Ephemeris.Longitude(ctx, jd, Sun)
	if err != nil {
		return 0, 0, wrapEphemeris(err)
	}
	moon, err := r.Ephemeris.Longitude(ctx, jd, Moon)
	if err != nil {
		return 0, 0, wrapEphemeris(err)
	}
	return Normalize(sun - ayan), Normalize(moon - ayan), nil
}

func wrapEphemeris(err error) error {
	if errors.Is(err, ErrEphemerisUnavailable) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrEphemerisUnavailable, err)
}
