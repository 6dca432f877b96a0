package render_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tartampluch/go-panchanga/internal/calendar"
	"github.com/tartampluch/go-panchanga/internal/config"
	"github.com/tartampluch/go-panchanga/internal/engine"
	"github.com/tartampluch/go-panchanga/internal/render"
)

// -----------------------------------------------------------------------------
// Fixtures
// -----------------------------------------------------------------------------

func place(b engine.Body, lon float64) engine.Placement {
	p := engine.FormatLongitude(lon)
	p.Body = b
	return p
}

// sample mirrors the 1960 reference chart.
func sample() *engine.BirthChartRecord {
	at := engine.NewInstant(1960, time.October, 7, 1, 50, 0, 5.5, "IST")
	loc := engine.Location{Name: "Repalle", Lat: 15.82, Lon: 80.35, UTCOffset: 5.5}
	tithiEnd := at.UTC().Add(time.Hour)
	karanaEnd := at.UTC().Add(45 * time.Minute)

	return &engine.BirthChartRecord{
		ID:        engine.RecordID("Ravi", at, loc),
		Name:      "Ravi",
		Instant:   at,
		JulianDay: at.JulianDay(),
		Location:  loc,
		Placements: []engine.Placement{
			place(engine.Sun, 170.2663),
			place(engine.Moon, 13.8838),
			place(engine.Rahu, 140.5979),
			place(engine.Ketu, 320.5979),
			place(engine.Ascendant, 109.98),
		},
		Tithi: engine.Element{Kind: engine.KindTithi, Index: 16, Name: "Dwitiya (Krishna)",
			Next: "Tritiya (Krishna)", End: &tithiEnd},
		Nakshatra: engine.Element{Kind: engine.KindNakshatra, Index: 1, Pada: 1, Name: "Bharani (Pada 1)"},
		Karana: engine.Element{Kind: engine.KindKarana, Index: 33, Name: "Garaja",
			Next: "Vanija", End: &karanaEnd},
		Yoga: engine.Element{Kind: engine.KindYoga, Index: 13, Name: "Harshana"},
		Vara: engine.VaraOf(at.Local),
		Year: engine.YearName(1960),
		Day: &engine.DayContext{
			Sunrise:   time.Date(1960, 10, 7, 0, 30, 0, 0, time.UTC),
			Sunset:    time.Date(1960, 10, 7, 12, 30, 0, 0, time.UTC),
			RahuStart: time.Date(1960, 10, 7, 5, 0, 0, 0, time.UTC),
			RahuEnd:   time.Date(1960, 10, 7, 6, 30, 0, 0, time.UTC),
		},
		GeneratedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// -----------------------------------------------------------------------------
// Text & Chakra
// -----------------------------------------------------------------------------

func TestChakra(t *testing.T) {
	lines := strings.Split(strings.TrimSuffix(render.Chakra(sample()), "\n"), "\n")
	require.Len(t, lines, 13)
	for _, l := range lines {
		assert.Len(t, l, 49, "every line has the same width: %q", l)
	}

	assert.Equal(t, "|Pi         |Ar         |Ta         |Ge         |", lines[1])
	assert.Equal(t, "|           |Mo         |           |           |", lines[2])
	// Aquarius (Ke) on the left, Cancer (Asc) on the right, centre merged.
	assert.Equal(t, "|Aq         |                       |Cn         |", lines[4])
	assert.Equal(t, "|Ke         |                       |Asc        |", lines[5])
	assert.Equal(t, "|           |                       |Ra         |", lines[8])
	assert.Equal(t, "|           |           |           |Su         |", lines[11])
}

func TestText_English(t *testing.T) {
	rec := sample()
	var buf bytes.Buffer
	require.NoError(t, render.Text(&buf, rec, render.NewTranslator("en")))

	out := buf.String()
	for _, want := range []string{
		"Panchanga\n=========",
		"Dwitiya (Krishna)",
		"07-Oct-1960 02:50 AM IST",
		"Bharani (Pada 1)",
		"Shukravara (Friday)",
		"01:50:00 IST",
		rec.Year,
		"continues all day",
		"Rahu Kaalam",
		rec.Placements[0].DMS,
		"170.2663",
		"Rasi Chakra",
	} {
		assert.Contains(t, out, want)
	}
}

func TestText_Telugu(t *testing.T) {
	rec := sample()
	rec.Day = nil
	var buf bytes.Buffer
	require.NoError(t, render.Text(&buf, rec, render.NewTranslator("te")))

	out := buf.String()
	assert.Contains(t, out, "పంచాంగం")
	assert.Contains(t, out, "తిథి")
	assert.Contains(t, out, "రోజంతా కొనసాగుతుంది")
	assert.NotContains(t, out, "సూర్యోదయం", "no day context, no sunrise row")
}

// -----------------------------------------------------------------------------
// Renderer
// -----------------------------------------------------------------------------

func newRenderer(lang string) *render.Renderer {
	return render.New(render.NewTranslator(lang), calendar.Exporter{Clock: engine.FixedClock(time.Unix(0, 0))})
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newRenderer("en").Write(context.Background(), &buf, config.FormatJSON, sample()))

	var v render.ChartView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &v))
	assert.Equal(t, "Ravi", v.Name)
	assert.Equal(t, "1960-10-07", v.Date)
	assert.Equal(t, "01:50:00", v.Time)
	assert.Equal(t, 5.5, v.UTCOffset)
	assert.Equal(t, "Shukravara", v.Weekday.Vedic)
	assert.Equal(t, "Tritiya (Krishna)", v.Tithi.Next)
	require.NotNil(t, v.Tithi.End)
	assert.Nil(t, v.Yoga.End)
	assert.Equal(t, "Harshana continues all day", v.Yoga.Message)
	require.Len(t, v.Planets, 5)
	assert.Equal(t, "Sun", v.Planets[0].Body)
	assert.Equal(t, "Vi", v.Planets[0].Sign)
	assert.Equal(t, 170.2663, v.Planets[0].Absolute)
	require.NotNil(t, v.Day)
}

func TestWrite_YAMLList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newRenderer("en").Write(context.Background(), &buf, config.FormatYAML, sample(), sample()))

	var out []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "Ravi", out[0]["name"])
	assert.Equal(t, "Vi", out[1]["planets"].([]any)[0].(map[string]any)["sign"])
}

func TestWrite_ICS(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newRenderer("en").Write(context.Background(), &buf, config.FormatICS, sample()))

	cal, err := ical.NewDecoder(&buf).Decode()
	require.NoError(t, err)
	name, err := cal.Props.Text(config.PropXWRCalName)
	require.NoError(t, err)
	assert.Equal(t, "Panchanga of Ravi", name)

	events := cal.Events()
	require.Len(t, events, 3)
	summary, err := events[1].Props.Text(config.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "Ravi: Dwitiya (Krishna) ends, Tritiya (Krishna) begins", summary)
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newRenderer("en").Write(context.Background(), &buf, "TEXT", sample(), sample()))
	assert.Equal(t, 2, strings.Count(buf.String(), "Rasi Chakra"))
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := newRenderer("en").Write(context.Background(), &bytes.Buffer{}, "pdf", sample())
	assert.ErrorIs(t, err, render.ErrUnknownFormat)
}

// -----------------------------------------------------------------------------
// Translator
// -----------------------------------------------------------------------------

func TestTranslator(t *testing.T) {
	te := render.NewTranslator("te")
	assert.Equal(t, "te", te.Language())
	assert.ElementsMatch(t, config.SupportedLanguages, te.Languages())
	assert.Equal(t, "నక్షత్రం", te.Msg(config.TKeyLblNakshatra, nil))
	assert.Equal(t, "Ravi పంచాంగం", te.Msg(config.TKeyCalName, map[string]any{"Name": "Ravi"}))

	fallback := render.NewTranslator("fr")
	assert.Equal(t, config.DefaultLanguage, fallback.Language())
	assert.Equal(t, "Nakshatra", fallback.Msg(config.TKeyLblNakshatra, nil))

	assert.Equal(t, "no_such_key", fallback.Msg("no_such_key", nil))

	var nilTr *render.Translator
	assert.Equal(t, config.TKeyLblTithi, nilTr.Msg(config.TKeyLblTithi, nil))
}

func TestTranslator_Transition(t *testing.T) {
	rec := sample()
	tr := render.NewTranslator("en")
	assert.Equal(t, "Ravi: Harshana ends", tr.Transition(rec, rec.Yoga))
	assert.Equal(t, "Ravi: Garaja ends, Vanija begins", tr.Transition(rec, rec.Karana))
}
