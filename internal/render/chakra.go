package render

import (
	"fmt"
	"strings"

	"github.com/tartampluch/go-panchanga/internal/engine"
)

const cellWidth = 11

// southIndian places the signs on the border of a 4x4 grid, Pisces top-left
// and proceeding clockwise. -1 marks the merged centre.
var southIndian = [4][4]int{
	{11, 0, 1, 2},
	{10, -1, -1, 3},
	{9, -1, -1, 4},
	{8, 7, 6, 5},
}

// Chakra draws the South-Indian rasi chart: each sign cell lists the
// abbreviations of the bodies it holds.
func Chakra(rec *engine.BirthChartRecord) string {
	bySign := rec.BySign()
	cells := make([]string, engine.SignCount)
	for sign, bodies := range bySign {
		names := make([]string, 0, len(bodies))
		for _, b := range bodies {
			names = append(names, b.Abbr())
		}
		cells[sign] = strings.Join(names, " ")
	}

	segment := "+" + strings.Repeat("-", cellWidth)
	full := strings.Repeat(segment, 4) + "+\n"
	inner := segment + "+" + strings.Repeat(" ", 2*cellWidth+1) + segment + "+\n"

	var sb strings.Builder
	sb.WriteString(full)
	for r, row := range southIndian {
		// Sign labels first, occupants below.
		writeRow(&sb, row, func(sign int) string { return engine.SignAbbrAt(sign) })
		writeRow(&sb, row, func(sign int) string { return cells[sign] })
		if r == 0 || r == 2 || r == 3 {
			sb.WriteString(full)
		} else {
			sb.WriteString(inner)
		}
	}
	return sb.String()
}

func writeRow(sb *strings.Builder, row [4]int, text func(sign int) string) {
	for c, sign := range row {
		if sign < 0 {
			if c == 1 {
				fmt.Fprintf(sb, "|%s", strings.Repeat(" ", 2*cellWidth+1))
			}
			continue
		}
		fmt.Fprintf(sb, "|%-*s", cellWidth, clip(text(sign)))
	}
	sb.WriteString("|\n")
}

func clip(s string) string {
	r := []rune(s)
	if len(r) > cellWidth {
		return string(r[:cellWidth])
	}
	return s
}
