package render

import (
	"time"

	"github.com/tartampluch/go-panchanga/internal/config"
	"github.com/tartampluch/go-panchanga/internal/engine"
)

// ChartView is the serialized form of a record for JSON and YAML output.
type ChartView struct {
	ID        string          `json:"id" yaml:"id"`
	Name      string          `json:"name" yaml:"name"`
	Date      string          `json:"date" yaml:"date"`
	Time      string          `json:"time" yaml:"time"`
	UTCOffset float64         `json:"utc_offset" yaml:"utc_offset"`
	JulianDay float64         `json:"julian_day" yaml:"julian_day"`
	Location  engine.Location `json:"location" yaml:"location"`
	Weekday   WeekdayView     `json:"weekday" yaml:"weekday"`
	Year      string          `json:"telugu_year" yaml:"telugu_year"`

	Tithi     ElementView `json:"tithi" yaml:"tithi"`
	Nakshatra ElementView `json:"nakshatra" yaml:"nakshatra"`
	Karana    ElementView `json:"karana" yaml:"karana"`
	Yoga      ElementView `json:"yoga" yaml:"yoga"`

	Planets []PlacementView `json:"planets" yaml:"planets"`
	Day     *DayView        `json:"day,omitempty" yaml:"day,omitempty"`

	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
}

// WeekdayView names the weekday in English and Sanskrit.
type WeekdayView struct {
	Name  string `json:"name" yaml:"name"`
	Vedic string `json:"vedic" yaml:"vedic"`
}

// ElementView is one timed element; End is omitted when it continues.
type ElementView struct {
	Name    string     `json:"name" yaml:"name"`
	Index   int        `json:"index" yaml:"index"`
	Pada    int        `json:"pada,omitempty" yaml:"pada,omitempty"`
	End     *time.Time `json:"end,omitempty" yaml:"end,omitempty"`
	EndText string     `json:"end_text" yaml:"end_text"`
	Next    string     `json:"next,omitempty" yaml:"next,omitempty"`
	Message string     `json:"message" yaml:"message"`
}

// PlacementView is one row of the planet table.
type PlacementView struct {
	Body      string  `json:"body" yaml:"body"`
	Longitude string  `json:"longitude" yaml:"longitude"`
	Absolute  float64 `json:"abs_longitude" yaml:"abs_longitude"`
	Sign      string  `json:"sign" yaml:"sign"`
}

// DayView carries sunrise, sunset and Rahu Kaalam in UTC.
type DayView struct {
	Sunrise   time.Time `json:"sunrise" yaml:"sunrise"`
	Sunset    time.Time `json:"sunset" yaml:"sunset"`
	RahuStart time.Time `json:"rahu_kaalam_start" yaml:"rahu_kaalam_start"`
	RahuEnd   time.Time `json:"rahu_kaalam_end" yaml:"rahu_kaalam_end"`
}

// NewView flattens a record for serialization.
func NewView(rec *engine.BirthChartRecord) ChartView {
	f := rec.Fields()
	v := ChartView{
		ID:          rec.ID.String(),
		Name:        rec.Name,
		Date:        f[config.KeyDate],
		Time:        f[config.KeyTime],
		UTCOffset:   rec.Instant.Offset,
		JulianDay:   rec.JulianDay,
		Location:    rec.Location,
		Weekday:     WeekdayView{Name: rec.Vara.Name, Vedic: rec.Vara.Vedic},
		Year:        rec.Year,
		Tithi:       elementView(rec.Tithi, rec.Instant),
		Nakshatra:   elementView(rec.Nakshatra, rec.Instant),
		Karana:      elementView(rec.Karana, rec.Instant),
		Yoga:        elementView(rec.Yoga, rec.Instant),
		GeneratedAt: rec.GeneratedAt.UTC(),
	}
	for _, p := range rec.Placements {
		v.Planets = append(v.Planets, PlacementView{
			Body:      p.Body.String(),
			Longitude: p.DMS,
			Absolute:  p.Abs,
			Sign:      p.Sign,
		})
	}
	if rec.Day != nil {
		v.Day = &DayView{
			Sunrise:   rec.Day.Sunrise.UTC(),
			Sunset:    rec.Day.Sunset.UTC(),
			RahuStart: rec.Day.RahuStart.UTC(),
			RahuEnd:   rec.Day.RahuEnd.UTC(),
		}
	}
	return v
}

func elementView(el engine.Element, at engine.Instant) ElementView {
	return ElementView{
		Name:    el.Name,
		Index:   el.Index,
		Pada:    el.Pada,
		End:     el.End,
		EndText: el.EndText(at),
		Next:    el.Next,
		Message: el.Message(at),
	}
}
