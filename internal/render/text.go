package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/tartampluch/go-panchanga/internal/config"
	"github.com/tartampluch/go-panchanga/internal/engine"
)

// row is one label/value line of the preview.
type row struct {
	key   string
	value string
}

// Text writes the localized preview: the panchanga table, the planet table
// and the rasi chakra.
func Text(w io.Writer, rec *engine.BirthChartRecord, tr *Translator) error {
	f := rec.Fields()
	zone, _ := rec.Instant.Local.Zone()
	endText := func(el engine.Element) string {
		if el.Continues() {
			return tr.Msg(config.TKeyContinues, nil)
		}
		return el.EndText(rec.Instant)
	}

	rows := []row{
		{config.TKeyLblName, f[config.KeyName]},
		{config.TKeyLblDate, f[config.KeyDate]},
		{config.TKeyLblTime, f[config.KeyTime] + " " + zone},
		{config.TKeyLblPlace, f[config.KeyPlace]},
		{config.TKeyLblLat, f[config.KeyLat]},
		{config.TKeyLblLong, f[config.KeyLong]},
		{config.TKeyLblWeekday, fmt.Sprintf("%s (%s)", rec.Vara.Vedic, rec.Vara.Name)},
		{config.TKeyLblYear, f[config.KeyYear]},
		{config.TKeyLblTithi, rec.Tithi.Name},
		{config.TKeyLblTithiEnd, endText(rec.Tithi)},
		{config.TKeyLblNakshatra, rec.Nakshatra.Name},
		{config.TKeyLblNakEnd, endText(rec.Nakshatra)},
		{config.TKeyLblKarana, rec.Karana.Name},
		{config.TKeyLblKaranaEnd, endText(rec.Karana)},
		{config.TKeyLblYoga, rec.Yoga.Name},
		{config.TKeyLblYogaEnd, endText(rec.Yoga)},
	}
	if rec.Day != nil {
		rows = append(rows,
			row{config.TKeyLblSunrise, f[config.KeySunrise]},
			row{config.TKeyLblSunset, f[config.KeySunset]},
			row{config.TKeyLblRahuKaalam, f[config.KeyRahuKaalam]},
		)
	}

	var sb strings.Builder
	heading(&sb, tr.Msg(config.TKeyPreviewTitle, nil))
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t: %s\n", tr.Msg(r.key, nil), r.value)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	sb.WriteString("\n")
	heading(&sb, tr.Msg(config.TKeyPlanetsTitle, nil))
	tw = tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		tr.Msg(config.TKeyColPlanet, nil),
		tr.Msg(config.TKeyColLongitude, nil),
		tr.Msg(config.TKeyColAbs, nil),
		tr.Msg(config.TKeyColSign, nil),
	)
	for _, p := range rec.Placements {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Body, p.DMS, p.AbsText(), p.Sign)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	sb.WriteString("\n")
	heading(&sb, tr.Msg(config.TKeyRasiTitle, nil))
	sb.WriteString(Chakra(rec))

	_, err := io.WriteString(w, sb.String())
	return err
}

func heading(sb *strings.Builder, title string) {
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", len([]rune(title))))
	sb.WriteString("\n")
}
