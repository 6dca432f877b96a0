// Package calendar exports birth charts as an iCalendar feed: one event at
// each birth moment carrying the panchanga summary, plus one event per
// element transition that follows it.
package calendar

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/emersion/go-ical"

	"github.com/tartampluch/go-panchanga/internal/config"
	"github.com/tartampluch/go-panchanga/internal/engine"
)

// Exporter renders records to ICS. The text hooks let callers inject
// localized strings; nil hooks fall back to English.
type Exporter struct {
	Clock           engine.Clock
	ReminderTrigger string // ISO8601 duration, e.g. "-PT1H"; empty disables alarms.
	CalendarName    string

	Summary     func(rec *engine.BirthChartRecord) string
	Description func(rec *engine.BirthChartRecord) string
	Transition  func(rec *engine.BirthChartRecord, el engine.Element) string
}

// Export encodes records into one VCALENDAR. An empty input yields a valid
// stub calendar rather than an error.
func (x Exporter) Export(ctx context.Context, records []*engine.BirthChartRecord) ([]byte, error) {
	clock := x.Clock
	if clock == nil {
		clock = engine.RealClock{}
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)
	name := x.CalendarName
	if name == "" {
		name = config.ICalCalName
	}
	cal.Props.SetText(config.PropXWRCalName, name)

	refresh := ical.NewProp(config.PropRefresh)
	refresh.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refresh)

	stamp := ical.NewProp(config.PropDTStamp)
	stamp.SetDateTime(clock.Now().UTC())

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, ev := range x.events(rec) {
			ev.Props.Set(stamp)
			cal.Children = append(cal.Children, ev.Component)
		}
	}

	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.InfoContext(ctx, config.MsgCalendarDone,
		slog.String(config.LogKeyComponent, config.CompCalendar),
		slog.Int(config.LogKeyCharts, len(records)),
		slog.Int(config.LogKeyEvents, len(cal.Children)),
		slog.Int(config.LogKeySizeBytes, buf.Len()),
	)
	return buf.Bytes(), nil
}

// events builds the birth event and the transition events of one record.
func (x Exporter) events(rec *engine.BirthChartRecord) []*ical.Event {
	id := rec.ID.String()

	birth := ical.NewEvent()
	birth.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, id, config.UIDSuffixBirth, config.ICalDomain))
	summary := x.summary(rec)
	birth.Props.SetText(config.PropSummary, summary)
	birth.Props.SetText(config.PropDescription, x.description(rec))
	birth.Props.SetText(config.PropCategories, config.ICalCategory)

	start := ical.NewProp(config.PropDTStart)
	start.SetDateTime(rec.Instant.UTC())
	birth.Props.Set(start)

	if rec.Location.Name != "" {
		birth.Props.SetText(config.PropLocation, rec.Location.Name)
	}
	if rec.Location.Lat != 0 || rec.Location.Lon != 0 {
		// GEO is a FLOAT pair; SetText would escape the separator.
		geo := ical.NewProp(config.PropGeo)
		geo.Value = fmt.Sprintf(config.FormatGeo, rec.Location.Lat, rec.Location.Lon)
		birth.Props.Set(geo)
	}
	if x.ReminderTrigger != "" {
		addAlarm(birth, x.ReminderTrigger, summary)
	}

	out := []*ical.Event{birth}
	for _, el := range rec.Elements() {
		if el.End == nil {
			continue
		}
		ev := ical.NewEvent()
		ev.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, id, strings.ToLower(el.Kind.String()), config.ICalDomain))
		ev.Props.SetText(config.PropSummary, x.transition(rec, el))
		ev.Props.SetText(config.PropCategories, config.ICalCategory)

		at := ical.NewProp(config.PropDTStart)
		at.SetDateTime(el.End.UTC())
		ev.Props.Set(at)
		out = append(out, ev)
	}
	return out
}

func (x Exporter) summary(rec *engine.BirthChartRecord) string {
	if x.Summary != nil {
		return x.Summary(rec)
	}
	return fmt.Sprintf(config.FormatBirthSummary, rec.Name, rec.Tithi.Name, rec.Nakshatra.Name)
}

func (x Exporter) description(rec *engine.BirthChartRecord) string {
	if x.Description != nil {
		return x.Description(rec)
	}
	lines := make([]string, 0, 4)
	for _, el := range rec.Elements() {
		lines = append(lines, el.Message(rec.Instant))
	}
	return strings.Join(lines, "\n")
}

func (x Exporter) transition(rec *engine.BirthChartRecord, el engine.Element) string {
	if x.Transition != nil {
		return x.Transition(rec, el)
	}
	return fmt.Sprintf(config.FormatTransition, el.Name, el.Next)
}

// addAlarm appends a DISPLAY alarm to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// A DURATION value; SetText would add VALUE=TEXT.
	prop := ical.NewProp(config.PropTrigger)
	prop.Value = trigger
	alarm.Props.Set(prop)

	event.Children = append(event.Children, alarm)
}
