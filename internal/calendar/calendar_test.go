package calendar_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-panchanga/internal/calendar"
	"github.com/tartampluch/go-panchanga/internal/config"
	"github.com/tartampluch/go-panchanga/internal/engine"
)

// -----------------------------------------------------------------------------
// Fixtures
// -----------------------------------------------------------------------------

var fixedNow = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func record() *engine.BirthChartRecord {
	at := engine.NewInstant(1960, time.October, 7, 1, 50, 0, 5.5, "IST")
	end := at.UTC().Add(time.Hour)
	loc := engine.Location{Name: "Repalle", Lat: 16.0191, Lon: 80.8298}
	return &engine.BirthChartRecord{
		ID:       engine.RecordID("Ravi", at, loc),
		Name:     "Ravi",
		Instant:  at,
		Location: loc,
		Tithi: engine.Element{Kind: engine.KindTithi, Name: "Dwitiya (Krishna)",
			Next: "Tritiya (Krishna)", End: &end},
		Nakshatra: engine.Element{Kind: engine.KindNakshatra, Name: "Bharani (Pada 1)"},
		Karana:    engine.Element{Kind: engine.KindKarana, Name: "Garaja", Next: "Vanija", End: &end},
		Yoga:      engine.Element{Kind: engine.KindYoga, Name: "Harshana"},
	}
}

func decode(t *testing.T, data []byte) *ical.Calendar {
	t.Helper()
	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)
	return cal
}

func text(t *testing.T, props ical.Props, name string) string {
	t.Helper()
	v, err := props.Text(name)
	require.NoError(t, err)
	return v
}

// -----------------------------------------------------------------------------
// Tests
// -----------------------------------------------------------------------------

func TestExport_Events(t *testing.T) {
	x := calendar.Exporter{Clock: engine.FixedClock(fixedNow)}
	data, err := x.Export(context.Background(), []*engine.BirthChartRecord{record()})
	require.NoError(t, err)

	cal := decode(t, data)
	assert.Equal(t, config.ICalProdid, text(t, cal.Props, config.PropProdid))
	assert.Equal(t, config.ICalCalName, text(t, cal.Props, config.PropXWRCalName))

	events := cal.Events()
	require.Len(t, events, 3, "birth plus the two elements that end")

	birth := events[0]
	assert.Equal(t, "Ravi: Dwitiya (Krishna), Bharani (Pada 1)", text(t, birth.Props, config.PropSummary))
	assert.Equal(t, "Repalle", text(t, birth.Props, config.PropLocation))
	assert.Equal(t, "16.019100;80.829800", birth.Props.Get(config.PropGeo).Value)
	assert.True(t, strings.HasSuffix(text(t, birth.Props, config.PropUID), "-birth@"+config.ICalDomain))

	start, err := birth.Props.DateTime(config.PropDTStart, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(1960, 10, 6, 20, 20, 0, 0, time.UTC), start)

	stamp, err := birth.Props.DateTime(config.PropDTStamp, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, fixedNow, stamp)

	desc := text(t, birth.Props, config.PropDescription)
	assert.Contains(t, desc, "Dwitiya (Krishna) ends at 07-Oct-1960 02:50 AM IST, then Tritiya (Krishna) begins")
	assert.Contains(t, desc, "Harshana continues all day")

	assert.Equal(t, "Dwitiya (Krishna) ends, Tritiya (Krishna) begins", text(t, events[1].Props, config.PropSummary))
	assert.Equal(t, "Garaja ends, Vanija begins", text(t, events[2].Props, config.PropSummary))
	assert.True(t, strings.HasSuffix(text(t, events[1].Props, config.PropUID), "-tithi@"+config.ICalDomain))
	assert.Empty(t, birth.Children, "no alarm without a trigger")
}

func TestExport_StableUIDs(t *testing.T) {
	x := calendar.Exporter{Clock: engine.FixedClock(fixedNow)}
	a, err := x.Export(context.Background(), []*engine.BirthChartRecord{record()})
	require.NoError(t, err)
	b, err := x.Export(context.Background(), []*engine.BirthChartRecord{record()})
	require.NoError(t, err)
	assert.Equal(t, a, b, "same input must give a byte-identical feed")
}

func TestExport_WithReminder(t *testing.T) {
	x := calendar.Exporter{Clock: engine.FixedClock(fixedNow), ReminderTrigger: "-PT1H"}
	data, err := x.Export(context.Background(), []*engine.BirthChartRecord{record()})
	require.NoError(t, err)

	ics := string(data)
	assert.Contains(t, ics, "BEGIN:VALARM")
	assert.Contains(t, ics, "TRIGGER:-PT1H")
	assert.Contains(t, ics, "ACTION:DISPLAY")
}

func TestExport_Hooks(t *testing.T) {
	x := calendar.Exporter{
		Clock:        engine.FixedClock(fixedNow),
		CalendarName: "Family",
		Summary:      func(r *engine.BirthChartRecord) string { return "S:" + r.Name },
		Description:  func(*engine.BirthChartRecord) string { return "D" },
		Transition:   func(_ *engine.BirthChartRecord, el engine.Element) string { return "T:" + el.Kind.String() },
	}
	data, err := x.Export(context.Background(), []*engine.BirthChartRecord{record()})
	require.NoError(t, err)

	cal := decode(t, data)
	assert.Equal(t, "Family", text(t, cal.Props, config.PropXWRCalName))
	events := cal.Events()
	assert.Equal(t, "S:Ravi", text(t, events[0].Props, config.PropSummary))
	assert.Equal(t, "D", text(t, events[0].Props, config.PropDescription))
	assert.Equal(t, "T:Tithi", text(t, events[1].Props, config.PropSummary))
}

func TestExport_Empty(t *testing.T) {
	data, err := calendar.Exporter{}.Export(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(data))
}

func TestExport_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := calendar.Exporter{}.Export(ctx, []*engine.BirthChartRecord{record()})
	assert.ErrorIs(t, err, context.Canceled)
}
