package engine_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/tartampluch/go-panchanga/internal/config"
	"github.com/tartampluch/go-panchanga/internal/engine"
)

// -----------------------------------------------------------------------------
// Fakes & Mocks
// -----------------------------------------------------------------------------

// linearEphemeris moves the Sun and Moon at the mean rates used by the linear
// model, so both transition strategies can be checked against exact boundaries.
type linearEphemeris struct {
	epoch    float64 // JD at which sun0/moon0 hold.
	sun0     float64
	moon0    float64
	node     float64
	ayanamsa float64
}

func (e linearEphemeris) Longitude(_ context.Context, jd float64, b engine.Body) (float64, error) {
	dt := jd - e.epoch
	switch b {
	case engine.Sun:
		return e.sun0 + config.SunMeanMotion*dt + e.ayanamsa, nil
	case engine.Moon:
		return e.moon0 + config.MoonMeanMotion*dt + e.ayanamsa, nil
	case engine.Rahu:
		return e.node + e.ayanamsa, nil
	default:
		return float64(b)*33.3 + e.ayanamsa, nil
	}
}

func (e linearEphemeris) Ayanamsa(context.Context, float64) (float64, error) {
	return e.ayanamsa, nil
}

func (e linearEphemeris) Ascendant(context.Context, float64, float64, float64, byte) (float64, error) {
	return 95.5 + e.ayanamsa, nil
}

// sunEventsEphemeris adds fixed sunrise (06:00 UTC) and sunset (18:00 UTC).
type sunEventsEphemeris struct {
	linearEphemeris
}

func (sunEventsEphemeris) RiseSet(_ context.Context, jd, _, _ float64) (float64, float64, error) {
	rise := float64(int64(jd-0.5)) + 0.75 // 06:00 UTC of the UTC day holding jd
	if rise < jd {
		rise++
	}
	return rise, rise + 0.5, nil
}

// angleAt returns the driving angle of a linearEphemeris at jd.
func (e linearEphemeris) angleAt(jd float64, fn func(sun, moon float64) float64) float64 {
	dt := jd - e.epoch
	return fn(e.sun0+config.SunMeanMotion*dt, e.moon0+config.MoonMeanMotion*dt)
}

// MockEphemeris injects failures.
type MockEphemeris struct {
	mock.Mock
}

func (m *MockEphemeris) Longitude(ctx context.Context, jd float64, b engine.Body) (float64, error) {
	args := m.Called(ctx, jd, b)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockEphemeris) Ayanamsa(ctx context.Context, jd float64) (float64, error) {
	args := m.Called(ctx, jd)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockEphemeris) Ascendant(ctx context.Context, jd, lat, lon float64, hs byte) (float64, error) {
	args := m.Called(ctx, jd, lat, lon, hs)
	return args.Get(0).(float64), args.Error(1)
}

// MockGeocoder simulates place resolution.
type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Resolve(ctx context.Context, place string) (engine.Location, error) {
	args := m.Called(ctx, place)
	return args.Get(0).(engine.Location), args.Error(1)
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// birthInstant is the reference moment used across tests: 1960-10-07 01:50 IST.
func birthInstant() engine.Instant {
	return engine.NewInstant(1960, time.October, 7, 1, 50, 0, 5.5, "IST")
}

func sunMoonFake(sun, moon float64) linearEphemeris {
	return linearEphemeris{
		epoch:    birthInstant().JulianDay(),
		sun0:     sun,
		moon0:    moon,
		node:     123.25,
		ayanamsa: 24,
	}
}
