package engine

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tartampluch/go-panchanga/internal/config"
)

const (
	julianUnixEpoch = 2440587.5 // JD of 1970-01-01T00:00:00Z
	secondsPerDay   = 86400.0
	maxOffsetHours  = 14.0
)

// Instant is a civil date and time together with the UTC offset in force.
// The same fixed offset converts local to UT and UT results back to local.
type Instant struct {
	Local  time.Time // Wall clock, carried in a fixed zone of Offset.
	Offset float64   // Hours east of UTC.
}

// NewInstant builds an Instant from a wall clock and an offset in hours.
// zoneName labels the fixed zone; an empty name becomes "UTC+hh:mm".
func NewInstant(year int, month time.Month, day, hour, minute, sec int, offset float64, zoneName string) Instant {
	zone := FixedZone(offset, zoneName)
	return Instant{
		Local:  time.Date(year, month, day, hour, minute, sec, 0, zone),
		Offset: offset,
	}
}

// ParseInstant accepts "YYYY-MM-DD" and "HH:MM" or "HH:MM:SS".
func ParseInstant(date, clock string, offset float64, zoneName string) (Instant, error) {
	d, err := time.Parse(config.DateLayout, strings.TrimSpace(date))
	if err != nil {
		return Instant{}, fmt.Errorf("%w: date %q", ErrInputFormat, date)
	}

	clock = strings.TrimSpace(clock)
	c, err := time.Parse(config.TimeLayoutSeconds, clock)
	if err != nil {
		if c, err = time.Parse(config.TimeLayoutMinutes, clock); err != nil {
			return Instant{}, fmt.Errorf("%w: time %q", ErrInputFormat, clock)
		}
	}

	if math.IsNaN(offset) || math.Abs(offset) > maxOffsetHours {
		return Instant{}, fmt.Errorf("%w: offset %v", ErrInputFormat, offset)
	}

	return NewInstant(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), c.Second(), offset, zoneName), nil
}

// UTC returns the instant in UTC.
func (i Instant) UTC() time.Time {
	return i.Local.UTC()
}

// JulianDay returns the Julian Day (UT) of the instant.
func (i Instant) JulianDay() float64 {
	return JulianDay(i.UTC())
}

// Zone returns the fixed zone used to render results back to local time.
func (i Instant) Zone() *time.Location {
	return i.Local.Location()
}

// FixedZone returns a zone for offset hours named name, or "UTC+hh:mm" when name is empty.
func FixedZone(offset float64, name string) *time.Location {
	if name == "" {
		name = ZoneName(offset)
	}
	return time.FixedZone(name, int(math.Round(offset*3600)))
}

// ZoneName formats an offset as "UTC+05:30".
func ZoneName(offset float64) string {
	sign := "+"
	if offset < 0 {
		sign = "-"
	}
	total := int(math.Round(math.Abs(offset) * 60))
	return fmt.Sprintf(config.FormatUTCZone, sign, total/60, total%60)
}

// JulianDay converts t to a Julian Day number (Meeus, Astronomical Algorithms ch. 7).
func JulianDay(t time.Time) float64 {
	u := t.UTC()
	year, month, day := u.Date()
	hour := float64(u.Hour()) +
		float64(u.Minute())/60.0 +
		float64(u.Second())/3600.0 +
		float64(u.Nanosecond())/(3600.0*1e9)

	y := year
	m := int(month)
	if m <= 2 {
		y--
		m += 12
	}

	a := y / 100
	b := 2 - a + a/4

	return math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		float64(day) + float64(b) - 1524.5 +
		hour/24.0
}

// TimeFromJulian converts a Julian Day to UTC, rounded to the second.
func TimeFromJulian(jd float64) time.Time {
	sec := math.Round((jd - julianUnixEpoch) * secondsPerDay)
	return time.Unix(int64(sec), 0).UTC()
}

// EndFromJulian converts a crossing to UTC, rounded up to the second, so the
// reported end never precedes the crossing.
func EndFromJulian(jd float64) time.Time {
	sec := math.Ceil((jd - julianUnixEpoch) * secondsPerDay)
	return time.Unix(int64(sec), 0).UTC()
}
