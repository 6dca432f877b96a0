package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tartampluch/go-panchanga/internal/config"
)

// ChartRequest is the raw caller input.
type ChartRequest struct {
	Name     string
	Date     string // YYYY-MM-DD
	Time     string // HH:MM or HH:MM:SS
	Place    string // City name or "lat,lon".
	Timezone string // IANA zone; empty uses the place's zone, then the engine default.

	// Offset, when set, is used as-is and Timezone is ignored.
	Offset *float64
}

// Engine computes BirthChartRecords. It holds no mutable state and is safe
// for concurrent use.
type Engine struct {
	resolver  *Resolver
	geocoder  Geocoder
	finders   Finders
	clock     Clock
	defaultTZ string
}

// Option customizes an Engine.
type Option func(*Engine)

// WithFinders overrides the transition strategy per element.
func WithFinders(f Finders) Option { return func(e *Engine) { e.finders = f } }

// WithClock sets the clock used to stamp records.
func WithClock(c Clock) Option { return func(e *Engine) { e.clock = c } }

// WithDefaultTimezone sets the zone used when neither request nor place has one.
func WithDefaultTimezone(tz string) Option { return func(e *Engine) { e.defaultTZ = tz } }

// WithHouseSystem sets the house system passed to the ephemeris for the Ascendant.
func WithHouseSystem(hs byte) Option { return func(e *Engine) { e.resolver.HouseSystem = hs } }

// New creates an Engine. geo may be nil when only Compute is used.
func New(eph EphemerisPort, geo Geocoder, opts ...Option) *Engine {
	e := &Engine{
		resolver:  NewResolver(eph),
		geocoder:  geo,
		finders:   DefaultFinders(),
		clock:     RealClock{},
		defaultTZ: config.DefaultTimezone,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// ComputeChart validates the request, resolves the place and its UTC offset at
// the birth instant, then computes the chart.
func (e *Engine) ComputeChart(ctx context.Context, req ChartRequest) (*BirthChartRecord, error) {
	civil, err := ParseInstant(req.Date, req.Time, 0, "")
	if err != nil {
		return nil, err
	}

	if e.geocoder == nil {
		return nil, fmt.Errorf("%w: %s", ErrGeocode, config.ErrGeocoderMissing)
	}
	loc, err := e.geocoder.Resolve(ctx, req.Place)
	if err != nil {
		return nil, err
	}

	at, err := e.instantFor(req, civil.Local, &loc)
	if err != nil {
		return nil, err
	}
	return e.Compute(ctx, req.Name, at, &loc)
}

// instantFor attaches the request's offset, or the zone's offset at the civil
// time, to the wall clock.
func (e *Engine) instantFor(req ChartRequest, civil time.Time, loc *Location) (Instant, error) {
	y, mo, d := civil.Date()
	h, mi, s := civil.Clock()

	if req.Offset != nil {
		at, err := ParseInstant(civil.Format(config.DateLayout), civil.Format(config.TimeLayoutSeconds), *req.Offset, "")
		if err != nil {
			return Instant{}, err
		}
		loc.UTCOffset = at.Offset
		return at, nil
	}

	tz := req.Timezone
	if tz == "" {
		tz = loc.TZ
	}
	if tz == "" {
		tz = e.defaultTZ
	}
	offset, abbr, err := OffsetAt(tz, civil)
	if err != nil {
		return Instant{}, err
	}
	loc.TZ = tz
	loc.UTCOffset = offset
	return NewInstant(y, mo, d, h, mi, s, offset, abbr), nil
}

// OffsetAt returns the UTC offset (hours) and zone abbreviation in force in tz
// at the given wall-clock time.
func OffsetAt(tz string, wall time.Time) (float64, string, error) {
	zone, err := time.LoadLocation(tz)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %s %q: %w", ErrInputFormat, config.ErrTimezone, tz, err)
	}
	y, mo, d := wall.Date()
	h, mi, s := wall.Clock()
	abbr, secs := time.Date(y, mo, d, h, mi, s, 0, zone).Zone()
	return float64(secs) / 3600, abbr, nil
}

// Compute runs the pipeline for a known instant. loc may be nil, in which
// case the Ascendant and the day context are omitted.
func (e *Engine) Compute(ctx context.Context, name string, at Instant, loc *Location) (*BirthChartRecord, error) {
	start := time.Now()
	log := slog.With(config.LogKeyComponent, config.CompEngine, config.LogKeyName, name)
	log.DebugContext(ctx, config.MsgChartStart)

	jd := at.JulianDay()
	pos, err := e.resolver.Resolve(ctx, jd, loc)
	if err != nil {
		return nil, err
	}
	sun, moon := pos.Must(Sun), pos.Must(Moon)

	rec := &BirthChartRecord{
		Name:        name,
		Instant:     at,
		JulianDay:   jd,
		Positions:   pos,
		Vara:        VaraOf(at.Local),
		Year:        YearName(at.Local.Year()),
		GeneratedAt: e.clock.Now(),
	}
	if loc != nil {
		rec.Location = *loc
	}
	rec.ID = RecordID(name, at, rec.Location)

	if rec.Tithi, err = e.element(ctx, KindTithi, jd, TithiIndex(sun, moon)); err != nil {
		return nil, err
	}
	if rec.Nakshatra, err = e.element(ctx, KindNakshatra, jd, IndexOf(moon, PadaCount)); err != nil {
		return nil, err
	}
	if rec.Karana, err = e.element(ctx, KindKarana, jd, KaranaIndex(sun, moon)); err != nil {
		return nil, err
	}
	if rec.Yoga, err = e.element(ctx, KindYoga, jd, YogaIndex(sun, moon)); err != nil {
		return nil, err
	}

	for _, b := range pos.Bodies() {
		p := FormatLongitude(pos.Must(b))
		p.Body = b
		rec.Placements = append(rec.Placements, p)
	}

	if ev, ok := e.resolver.Ephemeris.(SunEvents); ok && loc != nil {
		dc, err := dayContext(ctx, ev, at, *loc, rec.Vara)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.WarnContext(ctx, config.MsgNoDayContext, config.LogKeyError, err)
		}
		rec.Day = dc
	}

	log.InfoContext(ctx, config.MsgChartDone,
		config.LogKeyJD, jd,
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return rec, nil
}

// element finds the end of the element whose current index is idx.
func (e *Engine) element(ctx context.Context, kind ElementKind, jd float64, idx int) (Element, error) {
	finder, drv, count := e.plan(kind)

	el := Element{Kind: kind}
	el.Index, el.Pada, el.Name = describe(kind, idx)

	tr, err := finder.Next(ctx, jd, drv, count)
	switch {
	case errors.Is(err, ErrTransitionNotFound):
		slog.DebugContext(ctx, config.MsgOpenEnded,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyElement, kind.String(),
		)
		return el, nil
	case err != nil:
		return Element{}, err
	}

	// Queries carry whole seconds, so the end lands at least one second later.
	end := EndFromJulian(tr.JD)
	if query := TimeFromJulian(jd); !end.After(query) {
		end = query.Add(time.Second)
	}
	el.End = &end
	_, _, el.Next = describe(kind, tr.NextIndex)

	slog.DebugContext(ctx, config.MsgElement,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyElement, kind.String(),
		config.LogKeyIndex, el.Index,
		config.LogKeyEnd, end,
	)
	return el, nil
}

// plan returns the finder, driver and division count for an element.
// Nakshatra is tracked at pada level.
func (e *Engine) plan(kind ElementKind) (TransitionFinder, Driver, int) {
	sunMoon := e.resolver.SunMoon
	switch kind {
	case KindTithi:
		return e.finders.Tithi, Driver{
			Angle: func(ctx context.Context, jd float64) (float64, error) {
				s, m, err := sunMoon(ctx, jd)
				return m - s, err
			},
			Rate: config.MoonMeanMotion - config.SunMeanMotion,
		}, TithiCount
	case KindNakshatra:
		return e.finders.Nakshatra, Driver{
			Angle: func(ctx context.Context, jd float64) (float64, error) {
				_, m, err := sunMoon(ctx, jd)
				return m, err
			},
			Rate: config.MoonMeanMotion,
		}, PadaCount
	case KindYoga:
		return e.finders.Yoga, Driver{
			Angle: func(ctx context.Context, jd float64) (float64, error) {
				s, m, err := sunMoon(ctx, jd)
				return m + s, err
			},
			Rate: config.MoonMeanMotion + config.SunMeanMotion,
		}, YogaCount
	default:
		return e.finders.Karana, Driver{
			Angle: func(ctx context.Context, jd float64) (float64, error) {
				s, m, err := sunMoon(ctx, jd)
				return m - s, err
			},
			Rate: config.MoonMeanMotion - config.SunMeanMotion,
		}, KaranaCount
	}
}

// describe maps a division index to the element's table index, pada and name.
func describe(kind ElementKind, idx int) (int, int, string) {
	switch kind {
	case KindTithi:
		return idx, 0, TithiName(idx)
	case KindNakshatra:
		n, p := idx/4, idx%4+1
		return n, p, NakshatraPadaName(n, p)
	case KindYoga:
		return idx, 0, YogaName(idx)
	default:
		return idx, 0, KaranaName(idx)
	}
}
