// Package contacts turns vCard address books into chart requests: it reads a
// local or remote .vcf, extracts each contact's birth moment and place, and
// computes charts in parallel.
package contacts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/emersion/go-vcard"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tartampluch/go-panchanga/internal/config"
	"github.com/tartampluch/go-panchanga/internal/engine"
)

var (
	ErrNoBirthDate = errors.New(config.ErrNoBirthTime)
	ErrNoPlace     = errors.New(config.ErrNoPlace)
	ErrBirthDate   = errors.New(config.ErrDateParse)
)

// Profile is the birth data found on one contact card.
type Profile struct {
	Name     string
	Date     string // YYYY-MM-DD
	Time     string // HH:MM:SS; noon when the card has no time.
	TimeSet  bool
	Place    string // "lat,lon" from GEO, else the ADR locality.
	Timezone string // IANA zone from TZ, when present.

	// Offset is set when BDAY or TZ carries an explicit UTC offset.
	Offset *float64
}

// Request converts the profile into an engine request.
func (p Profile) Request() engine.ChartRequest {
	return engine.ChartRequest{
		Name:     p.Name,
		Date:     p.Date,
		Time:     p.Time,
		Place:    p.Place,
		Timezone: p.Timezone,
		Offset:   p.Offset,
	}
}

// Stats counts what Decode saw.
type Stats struct {
	Cards    int
	Profiles int
	Skipped  int
}

// Decode reads every card from r. Malformed cards and cards without a full
// birth date or a place are logged and skipped.
func Decode(ctx context.Context, r io.Reader) ([]Profile, Stats, error) {
	dec := vcard.NewDecoder(r)
	var (
		out   []Profile
		stats Stats
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.WarnContext(ctx, config.MsgSkippedCard,
				config.LogKeyComponent, config.CompContacts,
				config.LogKeyError, err)
			stats.Skipped++
			continue
		}
		stats.Cards++

		p, err := profileFrom(card)
		if err != nil {
			slog.DebugContext(ctx, config.MsgSkipContact,
				config.LogKeyComponent, config.CompContacts,
				config.LogKeyName, p.Name,
				config.LogKeyError, err)
			stats.Skipped++
			continue
		}
		if !p.TimeSet {
			slog.DebugContext(ctx, config.MsgNoBirthClock,
				config.LogKeyComponent, config.CompContacts,
				config.LogKeyName, p.Name)
		}
		out = append(out, p)
		stats.Profiles++
	}

	slog.InfoContext(ctx, config.MsgDecodeDone,
		config.LogKeyComponent, config.CompContacts,
		config.LogKeyTotal, stats.Cards,
		config.LogKeyCharts, stats.Profiles,
	)
	return out, stats, nil
}

func profileFrom(card vcard.Card) (Profile, error) {
	p := Profile{Name: cardName(card)}

	bday := card.Get(config.VCardBDAY)
	if bday == nil || bday.Value == "" {
		return p, ErrNoBirthDate
	}
	birth, err := parseBirth(bday.Value)
	if err != nil {
		return p, err
	}
	p.Date, p.Time, p.TimeSet, p.Offset = birth.date, birth.clock, birth.timeSet, birth.offset

	p.Place = cardPlace(card)
	if p.Place == "" {
		return p, ErrNoPlace
	}

	if tz := card.Get(config.VCardTZ); tz != nil && p.Offset == nil {
		p.Timezone, p.Offset = parseZone(tz.Value)
	}
	return p, nil
}

// cardName prefers FN, then the structured N, then a fallback.
func cardName(card vcard.Card) string {
	if fn := card.Get(config.VCardFN); fn != nil && strings.TrimSpace(fn.Value) != "" {
		return strings.TrimSpace(fn.Value)
	}
	if n := card.Name(); n != nil {
		full := strings.TrimSpace(strings.Join([]string{n.GivenName, n.FamilyName}, " "))
		if full != "" {
			return full
		}
	}
	return config.FallbackName
}

// cardPlace returns "lat,lon" from GEO (vCard 4 geo: URI or vCard 3
// "lat;lon"), else a locality/region/country string from ADR.
func cardPlace(card vcard.Card) string {
	if geo := card.Get(config.VCardGEO); geo != nil {
		v := strings.TrimPrefix(strings.TrimSpace(geo.Value), config.GeoURIPrefix)
		v, _, _ = strings.Cut(v, ";u=") // Drop a geo: URI uncertainty parameter.
		v = strings.Replace(v, ";", config.CoordSeparator, 1)
		if lat, lon, ok := strings.Cut(v, config.CoordSeparator); ok {
			if _, err := strconv.ParseFloat(strings.TrimSpace(lat), 64); err == nil {
				if _, err := strconv.ParseFloat(strings.TrimSpace(lon), 64); err == nil {
					return strings.TrimSpace(lat) + config.CoordSeparator + strings.TrimSpace(lon)
				}
			}
		}
	}

	if adr := card.Address(); adr != nil {
		var parts []string
		for _, s := range []string{adr.Locality, adr.Region, adr.Country} {
			if s = strings.TrimSpace(s); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, config.CoordSeparator+" ")
	}
	return ""
}

type birth struct {
	date, clock string
	timeSet     bool
	offset      *float64
}

// parseBirth accepts the vCard 3/4 BDAY forms that carry a year. Forms with
// an explicit offset (or Z) pin the UTC offset; local forms leave it to the
// place's zone. Year-less forms (--MMDD) are rejected: a chart needs a year.
func parseBirth(value string) (birth, error) {
	value = strings.TrimSpace(value)

	zoned := []string{config.DateFormatRFC3339, config.DateFormatVCardZ}
	for _, layout := range zoned {
		if t, err := time.Parse(layout, value); err == nil {
			_, secs := t.Zone()
			off := float64(secs) / 3600
			return birth{
				date:    t.Format(config.DateLayout),
				clock:   t.Format(config.TimeLayoutSeconds),
				timeSet: true,
				offset:  &off,
			}, nil
		}
	}

	local := []string{config.DateFormatISOLocal, config.DateFormatISOMinute, config.DateFormatVCardTime}
	for _, layout := range local {
		if t, err := time.Parse(layout, value); err == nil {
			return birth{
				date:    t.Format(config.DateLayout),
				clock:   t.Format(config.TimeLayoutSeconds),
				timeSet: true,
			}, nil
		}
	}

	for _, layout := range []string{config.DateLayout, config.DateFormatVCardFull} {
		if t, err := time.Parse(layout, value); err == nil {
			return birth{date: t.Format(config.DateLayout), clock: config.NoonTime}, nil
		}
	}

	return birth{}, fmt.Errorf("%w: %q", ErrBirthDate, value)
}

// parseZone reads a TZ value: an IANA name, or a "+05:30"/"-0330" offset.
func parseZone(value string) (string, *float64) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if _, err := time.LoadLocation(value); err == nil && strings.Contains(value, "/") {
		return value, nil
	}

	sign := 1.0
	switch value[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return "", nil
	}
	digits := strings.ReplaceAll(value[1:], ":", "")
	if len(digits) != 4 {
		return "", nil
	}
	h, errH := strconv.Atoi(digits[:2])
	m, errM := strconv.Atoi(digits[2:])
	if errH != nil || errM != nil || m >= 60 {
		return "", nil
	}
	off := sign * (float64(h) + float64(m)/60)
	return "", &off
}

// Slug returns an ASCII, lower-case, dash-separated form of name for file
// names and UIDs: "Śrī Rāma" becomes "sri-rama".
func Slug(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
