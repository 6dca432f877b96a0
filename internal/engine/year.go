package engine

import "github.com/tartampluch/go-panchanga/internal/config"

// YearName returns the 60-year cycle name of a Gregorian year.
func YearName(year int) string {
	return teluguYearNames[mod(year-config.TeluguYearEpoch, config.YearCycleLength)]
}
