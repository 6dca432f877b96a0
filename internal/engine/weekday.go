package engine

import "time"

// Vara is the weekday of the civil birth date.
type Vara struct {
	Weekday time.Weekday
	Name    string // English, e.g. "Friday".
	Vedic   string // e.g. "Shukravara".
}

// VaraOf derives the weekday from the civil date only; the clock time is ignored.
func VaraOf(local time.Time) Vara {
	wd := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC).Weekday()
	return Vara{
		Weekday: wd,
		Name:    wd.String(),
		Vedic:   varaNames[wd],
	}
}

// RahuSegment returns the 1-based eighth of daytime ruled by Rahu on this weekday.
func (v Vara) RahuSegment() int {
	return rahuSegments[v.Weekday]
}
