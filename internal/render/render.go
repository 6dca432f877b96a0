// Package render turns chart records into the output formats of the CLI and
// the HTTP API: a localized text preview, JSON, YAML and iCalendar.
package render

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tartampluch/go-panchanga/internal/calendar"
	"github.com/tartampluch/go-panchanga/internal/config"
	"github.com/tartampluch/go-panchanga/internal/engine"
)

// ErrUnknownFormat is returned for a --format value no encoder handles.
var ErrUnknownFormat = errors.New(config.ErrUnknownFormat)

// Renderer writes records in one of the supported formats.
type Renderer struct {
	Translator *Translator
	Calendar   calendar.Exporter
}

// New builds a Renderer whose calendar text follows the translator's language.
func New(tr *Translator, cal calendar.Exporter) *Renderer {
	cal.Transition = tr.Transition
	return &Renderer{Translator: tr, Calendar: cal}
}

// Write encodes records to w. Text output separates charts with a blank line;
// JSON and YAML emit a single object for one record and a list otherwise.
func (r *Renderer) Write(ctx context.Context, w io.Writer, format string, records ...*engine.BirthChartRecord) error {
	var err error
	switch strings.ToLower(format) {
	case config.FormatText, "":
		for i, rec := range records {
			if i > 0 {
				if _, err = io.WriteString(w, "\n"); err != nil {
					break
				}
			}
			if err = Text(w, rec, r.Translator); err != nil {
				break
			}
		}
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(views(records))
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(views(records)); err == nil {
			err = enc.Close()
		}
	case config.FormatICS:
		cal := r.Calendar
		if len(records) == 1 && cal.CalendarName == "" {
			cal.CalendarName = r.Translator.Msg(config.TKeyCalName, map[string]any{"Name": records[0].Name})
		}
		var data []byte
		if data, err = cal.Export(ctx, records); err == nil {
			_, err = w.Write(data)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrEncode, err)
	}
	slog.DebugContext(ctx, config.MsgRendered,
		slog.String(config.LogKeyComponent, config.CompRender),
		slog.String(config.LogKeyFormat, format),
		slog.Int(config.LogKeyCharts, len(records)),
	)
	return nil
}

// views returns a single view for one record so single-chart output is not
// wrapped in a list.
func views(records []*engine.BirthChartRecord) any {
	if len(records) == 1 {
		return NewView(records[0])
	}
	out := make([]ChartView, 0, len(records))
	for _, rec := range records {
		out = append(out, NewView(rec))
	}
	return out
}

// Transition renders "<Name>: <Element> ends, <Next> begins" in the
// translator's language for calendar events.
func (t *Translator) Transition(rec *engine.BirthChartRecord, el engine.Element) string {
	ends := t.Msg(config.TKeyEvtEnds, map[string]any{"Name": rec.Name, "Element": el.Name})
	if el.Next == "" {
		return ends
	}
	return ends + ", " + t.Msg(config.TKeyEvtNext, map[string]any{"Next": el.Next})
}
