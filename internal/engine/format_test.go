package engine_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-panchanga/internal/engine"
)

func TestFormatLongitude(t *testing.T) {
	tests := []struct {
		name     string
		lon      float64
		wantDMS  string
		wantSign string
		wantAbs  float64
	}{
		{"Zero", 0, "0°00'00.00\"", "Ar", 0},
		{"MidLeo", 125.5, "5°30'00.00\"", "Le", 125.5},
		{"Seconds", 200.123456, "20°07'24.44\"", "Li", 200.1235},
		{"Wrapped", 365.25, "5°15'00.00\"", "Ar", 5.25},
		{"Negative", -30, "0°00'00.00\"", "Pi", 330},
		{"CarryIntoMinute", 10 + 59.9999/3600, "10°01'00.00\"", "Ar", 10.0167},
		{"ClampAtSignEdge", 59.999999, "29°59'59.99\"", "Ta", 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := engine.FormatLongitude(tt.lon)
			assert.Equal(t, tt.wantDMS, p.DMS)
			assert.Equal(t, tt.wantSign, p.Sign)
			assert.InDelta(t, tt.wantAbs, p.Abs, 1e-9)
		})
	}
}

func TestFormatLongitude_RoundTrip(t *testing.T) {
	for l := 0.0; l < 360; l += 0.0137 {
		p := engine.FormatLongitude(l)
		assert.InDelta(t, l, p.Reconstruct(), 0.01, "lon=%v dms=%s", l, p.DMS)
		assert.Equal(t, engine.SignIndex(l), p.SignIndex, "sign must follow floor(lon/30)")
		assert.Less(t, p.Degrees, 30)
		assert.Less(t, p.Minutes, 60)
		assert.Less(t, p.Seconds, 60.0)
	}
}

func TestFormatLongitude_AbsStaysInSign(t *testing.T) {
	tests := []struct {
		lon      float64
		wantAbs  string
		wantSign string
	}{
		{359.9999999, "359.9999", "Pi"},
		{29.9999999999, "29.9999", "Ar"},
		{89.99999, "89.9999", "Ge"},
	}
	for _, tt := range tests {
		p := engine.FormatLongitude(tt.lon)
		assert.Equal(t, tt.wantSign, p.Sign, "lon=%v", tt.lon)
		assert.Equal(t, tt.wantAbs, p.AbsText(), "lon=%v", tt.lon)
		assert.Equal(t, p.SignIndex, engine.SignIndex(p.Abs), "Abs %v must stay in %s", p.Abs, p.Sign)
		assert.Less(t, p.Abs, 360.0)
	}
}

func TestPlacement_AbsText(t *testing.T) {
	assert.Equal(t, "200.1235", engine.FormatLongitude(200.123456).AbsText())
	assert.Equal(t, "0.0000", engine.FormatLongitude(0).AbsText())
}

// -----------------------------------------------------------------------------
// End-time rendering
// -----------------------------------------------------------------------------

func TestFormatEnd(t *testing.T) {
	at := birthInstant() // 1960-10-07 01:50 IST

	sameDay := time.Date(1960, 10, 7, 4, 0, 0, 0, time.UTC) // 09:30 IST
	assert.Equal(t, "07-Oct-1960 09:30 AM IST", engine.FormatEnd(sameDay, at))

	nextDay := time.Date(1960, 10, 7, 20, 15, 0, 0, time.UTC) // 01:45 IST on the 8th
	assert.Equal(t, "08-Oct-1960 01:45 AM IST (continues to next day)", engine.FormatEnd(nextDay, at))
}

func TestFormatEnd_UnnamedZone(t *testing.T) {
	at := engine.NewInstant(2024, time.March, 1, 12, 0, 0, -3.5, "")
	end := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, "01-Mar-2024 02:30 PM UTC-03:30", engine.FormatEnd(end, at))
}

func TestZoneName(t *testing.T) {
	assert.Equal(t, "UTC+05:30", engine.ZoneName(5.5))
	assert.Equal(t, "UTC-09:30", engine.ZoneName(-9.5))
	assert.Equal(t, "UTC+00:00", engine.ZoneName(0))
	assert.Equal(t, "UTC+05:45", engine.ZoneName(5.75))
}

// -----------------------------------------------------------------------------
// Instants
// -----------------------------------------------------------------------------

func TestParseInstant(t *testing.T) {
	at, err := engine.ParseInstant("1960-10-07", "01:50", 5.5, "IST")
	require.NoError(t, err)

	assert.Equal(t, time.Date(1960, 10, 6, 20, 20, 0, 0, time.UTC), at.UTC())
	assert.InDelta(t, 2437214.347222, at.JulianDay(), 1e-6)

	withSeconds, err := engine.ParseInstant("1960-10-07", "01:50:30", 5.5, "")
	require.NoError(t, err)
	assert.Equal(t, 30, withSeconds.Local.Second())
	assert.Equal(t, "UTC+05:30", withSeconds.Zone().String())
}

func TestParseInstant_Errors(t *testing.T) {
	tests := []struct {
		name, date, clock string
		offset            float64
	}{
		{"BadDate", "07/10/1960", "01:50", 0},
		{"ImpossibleDate", "1960-02-30", "01:50", 0},
		{"BadTime", "1960-10-07", "1:50pm", 0},
		{"HourOutOfRange", "1960-10-07", "25:00", 0},
		{"OffsetTooLarge", "1960-10-07", "01:50", 15},
		{"OffsetNaN", "1960-10-07", "01:50", math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.ParseInstant(tt.date, tt.clock, tt.offset, "")
			assert.ErrorIs(t, err, engine.ErrInputFormat)
		})
	}
}

func TestJulianDay_RoundTrip(t *testing.T) {
	// Meeus example 7.a: 1957 October 4.81 = JD 2436116.31
	sputnik := time.Date(1957, 10, 4, 19, 26, 24, 0, time.UTC)
	assert.InDelta(t, 2436116.31, engine.JulianDay(sputnik), 1e-6)

	j2000 := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 2451545.0, engine.JulianDay(j2000))
	assert.Equal(t, j2000, engine.TimeFromJulian(2451545.0))

	for _, tm := range []time.Time{sputnik, j2000, time.Date(1960, 10, 6, 20, 20, 0, 0, time.UTC)} {
		assert.Equal(t, tm, engine.TimeFromJulian(engine.JulianDay(tm)))
	}
}

func TestVaraOf(t *testing.T) {
	v := engine.VaraOf(birthInstant().Local)
	assert.Equal(t, time.Friday, v.Weekday)
	assert.Equal(t, "Friday", v.Name)
	assert.Equal(t, "Shukravara", v.Vedic)
	assert.Equal(t, 4, v.RahuSegment())

	late := engine.NewInstant(1960, time.October, 7, 23, 59, 0, -10, "")
	assert.Equal(t, time.Friday, engine.VaraOf(late.Local).Weekday, "Vara follows the civil date, not UTC")
}

func TestRahuKaalam(t *testing.T) {
	rise := time.Date(2024, 1, 15, 6, 0, 0, 0, time.UTC)
	set := time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC)
	monday := engine.VaraOf(rise)

	start, end := engine.RahuKaalam(rise, set, monday)
	assert.Equal(t, time.Date(2024, 1, 15, 7, 30, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC), end)
}
