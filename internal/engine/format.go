package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/tartampluch/go-panchanga/internal/config"
)

const (
	hundredthsPerDegree = 3600 * 100
	hundredthsPerMinute = 60 * 100
	maxWithinSign       = 30*hundredthsPerDegree - 1 // 29°59'59.99"
)

// Placement is a longitude rendered for the chart table.
type Placement struct {
	Body      Body
	Longitude float64 // Normalized sidereal longitude.
	Abs       float64 // Longitude rounded to 4 decimals.
	SignIndex int
	Sign      string // Ar..Pi
	Degrees   int    // Within sign.
	Minutes   int
	Seconds   float64 // Two decimals.
	DMS       string  // 23°04'05.67"
}

// FormatLongitude splits lon into sign and degrees/minutes/seconds within it.
// Seconds are rounded to hundredths and carried; a carry reaching 30° is
// clamped so the sign always matches floor(lon/30). Abs is clamped the same way.
func FormatLongitude(lon float64) Placement {
	l := Normalize(lon)
	sign := SignIndex(l)

	h := int64(math.Round((l - float64(sign)*30) * hundredthsPerDegree))
	if h > maxWithinSign {
		h = maxWithinSign
	}
	if h < 0 {
		h = 0
	}

	deg := int(h / hundredthsPerDegree)
	rem := h % hundredthsPerDegree
	mins := int(rem / hundredthsPerMinute)
	secs := float64(rem%hundredthsPerMinute) / 100

	// Abs gets the same clamp, so it never rounds into the next sign or to 360.
	abs := math.Round(l*config.AbsPrecision) / config.AbsPrecision
	if top := float64(sign+1)*30 - 1/config.AbsPrecision; abs > top {
		abs = top
	}

	return Placement{
		Longitude: l,
		Abs:       abs,
		SignIndex: sign,
		Sign:      signAbbrs[sign],
		Degrees:   deg,
		Minutes:   mins,
		Seconds:   secs,
		DMS:       fmt.Sprintf(config.FormatDMS, deg, mins, secs),
	}
}

// Reconstruct returns sign*30 + deg + min/60 + sec/3600.
func (p Placement) Reconstruct() float64 {
	return float64(p.SignIndex)*30 + float64(p.Degrees) + float64(p.Minutes)/60 + p.Seconds/3600
}

// AbsText renders Abs with four decimals.
func (p Placement) AbsText() string {
	return fmt.Sprintf(config.FormatAbs, p.Abs)
}

// FormatEnd renders a UTC end time in the query's fixed zone, marking ends that
// fall on a later local date than the query.
func FormatEnd(end time.Time, at Instant) string {
	local := end.In(at.Zone())
	zone, _ := local.Zone()
	s := fmt.Sprintf(config.FormatEndTime, local.Format(config.EndTimeLayout), zone)
	if laterDate(local, at.Local) {
		s = fmt.Sprintf(config.FormatNextDay, s)
	}
	return s
}

// FormatClock renders a UTC time as "03:04 PM" in the query's zone.
func FormatClock(t time.Time, at Instant) string {
	return t.In(at.Zone()).Format(config.ClockLayout)
}

func laterDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC).After(time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC))
}
