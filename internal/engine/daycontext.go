package engine

import (
	"context"
	"time"

	"github.com/tartampluch/go-panchanga/internal/config"
)

// DayContext describes the daylight of the civil birth date.
type DayContext struct {
	Sunrise   time.Time // UTC
	Sunset    time.Time // UTC
	RahuStart time.Time
	RahuEnd   time.Time
}

// RahuKaalam returns the eighth of daytime ruled by Rahu on weekday v.
func RahuKaalam(sunrise, sunset time.Time, v Vara) (time.Time, time.Time) {
	part := sunset.Sub(sunrise) / config.RahuKaalamSegment
	start := sunrise.Add(time.Duration(v.RahuSegment()-1) * part)
	return start, start.Add(part)
}

// dayContext finds sunrise and sunset starting at local midnight of the civil date.
func dayContext(ctx context.Context, ev SunEvents, at Instant, loc Location, v Vara) (*DayContext, error) {
	y, m, d := at.Local.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, at.Zone())

	rise, set, err := ev.RiseSet(ctx, JulianDay(midnight), loc.Lat, loc.Lon)
	if err != nil {
		return nil, err
	}

	dc := &DayContext{
		Sunrise: TimeFromJulian(rise),
		Sunset:  TimeFromJulian(set),
	}
	dc.RahuStart, dc.RahuEnd = RahuKaalam(dc.Sunrise, dc.Sunset, v)
	return dc, nil
}
