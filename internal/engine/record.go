package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tartampluch/go-panchanga/internal/config"
)

// recordNamespace scopes the deterministic record IDs.
var recordNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte(config.ICalDomain))

// Element is one timed Panchanga element at the query instant.
type Element struct {
	Kind  ElementKind
	Index int    // Position in the element's table.
	Pada  int    // Nakshatra quarter [1,4]; zero for the other elements.
	Name  string // Display name; "Name (Pada p)" for Nakshatra.
	Next  string // Name of the element that follows; empty when open-ended.

	// End is the UTC instant the element ends, strictly after the query.
	// Nil when the element continues past the finder's horizon.
	End *time.Time
}

// Continues reports an open-ended element.
func (e Element) Continues() bool {
	return e.End == nil
}

// EndText renders the end time in the query's zone, or the open-ended marker.
func (e Element) EndText(at Instant) string {
	if e.End == nil {
		return config.FallbackContinues
	}
	return FormatEnd(*e.End, at)
}

// Message renders "X ends at T, then Y begins" or "X continues all day".
func (e Element) Message(at Instant) string {
	if e.End == nil {
		return fmt.Sprintf(config.FormatContinues, e.Name)
	}
	return fmt.Sprintf(config.FormatEndsThen, e.Name, FormatEnd(*e.End, at), e.Next)
}

// BirthChartRecord is the immutable result of one chart computation.
type BirthChartRecord struct {
	ID        uuid.UUID
	Name      string
	Instant   Instant
	JulianDay float64
	Location  Location

	Positions  Positions
	Placements []Placement // Chart order; Ascendant last when present.

	Tithi     Element
	Nakshatra Element
	Yoga      Element
	Karana    Element
	Vara      Vara
	Year      string

	Day *DayContext // Nil when the ephemeris cannot time sunrise here.

	GeneratedAt time.Time
}

// RecordID derives a stable identifier from the person and the birth moment.
func RecordID(name string, at Instant, loc Location) uuid.UUID {
	key := fmt.Sprintf(config.FormatHashInput, name, at.UTC().Format(config.DateFormatRFC3339), loc.Lat, loc.Lon)
	return uuid.NewSHA1(recordNamespace, []byte(key))
}

// Elements returns the four timed elements in display order.
func (r *BirthChartRecord) Elements() []Element {
	return []Element{r.Tithi, r.Nakshatra, r.Karana, r.Yoga}
}

// Placement returns the formatted position of b.
func (r *BirthChartRecord) Placement(b Body) (Placement, bool) {
	for _, p := range r.Placements {
		if p.Body == b {
			return p, true
		}
	}
	return Placement{}, false
}

// BySign groups bodies by sign index, in chart order within each sign.
func (r *BirthChartRecord) BySign() [SignCount][]Body {
	var out [SignCount][]Body
	for _, p := range r.Placements {
		out[p.SignIndex] = append(out[p.SignIndex], p.Body)
	}
	return out
}

// Fields flattens the record into the keys used by downstream templates.
func (r *BirthChartRecord) Fields() map[string]string {
	f := map[string]string{
		config.KeyName:      r.Name,
		config.KeyDate:      r.Instant.Local.Format(config.DateLayout),
		config.KeyTime:      r.Instant.Local.Format(config.TimeLayoutSeconds),
		config.KeyPlace:     r.Location.Name,
		config.KeyWeekday:   r.Vara.Name,
		config.KeyLat:       fmt.Sprintf(config.FormatCoord, r.Location.Lat),
		config.KeyLong:      fmt.Sprintf(config.FormatCoord, r.Location.Lon),
		config.KeyYear:      r.Year,
		config.KeyTithi:     r.Tithi.Name,
		config.KeyTithiEnd:  r.Tithi.EndText(r.Instant),
		config.KeyNakshatra: r.Nakshatra.Name,
		config.KeyNakEnd:    r.Nakshatra.EndText(r.Instant),
		config.KeyKarana:    r.Karana.Name,
		config.KeyKaranaEnd: r.Karana.EndText(r.Instant),
		config.KeyYoga:      r.Yoga.Name,
		config.KeyYogaEnd:   r.Yoga.EndText(r.Instant),
	}

	for _, p := range r.Placements {
		abbr := p.Body.Abbr()
		f[config.KeyPrefixLong+abbr] = p.DMS
		f[config.KeyPrefixAbs+abbr] = p.AbsText()
		f[config.KeyPrefixSign+abbr] = p.Sign
	}

	if r.Day != nil {
		f[config.KeySunrise] = FormatClock(r.Day.Sunrise, r.Instant)
		f[config.KeySunset] = FormatClock(r.Day.Sunset, r.Instant)
		f[config.KeyRahuKaalam] = fmt.Sprintf(config.FormatRange,
			FormatClock(r.Day.RahuStart, r.Instant),
			FormatClock(r.Day.RahuEnd, r.Instant))
	}
	return f
}
