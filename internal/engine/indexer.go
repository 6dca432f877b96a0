package engine

import (
	"fmt"
	"math"

	"github.com/tartampluch/go-panchanga/internal/config"
)

// Normalize maps any angle into [0, 360).
func Normalize(angle float64) float64 {
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}

// IndexOf returns floor(norm(angle) / (360/count)) mod count.
// The division is taken as angle*count/360 so whole-degree boundaries stay exact.
// An angle equal to Boundary(q+1, count) belongs to slot q+1, so the index
// always agrees with the boundaries the finders target.
func IndexOf(angle float64, count int) int {
	a := Normalize(angle)
	q := int(math.Floor(a * float64(count) / 360))
	if Boundary(q+1, count) <= a {
		q++
	}
	return q % count
}

// Boundary returns the start angle of slot k when the circle is cut into count arcs.
func Boundary(k, count int) float64 {
	return float64(k) * 360 / float64(count)
}

// TithiIndex returns the lunar day index [0,30) for the Moon-Sun elongation.
func TithiIndex(sun, moon float64) int {
	return IndexOf(moon-sun, TithiCount)
}

// NakshatraPada returns the lunar mansion index [0,27) and its quarter [1,4].
func NakshatraPada(moon float64) (int, int) {
	q := IndexOf(moon, PadaCount)
	return q / 4, q%4 + 1
}

// YogaIndex returns the index [0,27) for the Moon+Sun sum.
func YogaIndex(sun, moon float64) int {
	return IndexOf(moon+sun, YogaCount)
}

// KaranaIndex returns the half-tithi slot [0,60).
func KaranaIndex(sun, moon float64) int {
	return IndexOf(moon-sun, KaranaCount)
}

// TithiName returns the name for a tithi index.
func TithiName(i int) string { return tithiNames[mod(i, TithiCount)] }

// NakshatraName returns the name for a nakshatra index.
func NakshatraName(i int) string { return nakshatraNames[mod(i, NakshatraCount)] }

// NakshatraPadaName renders "Name (Pada p)".
func NakshatraPadaName(i, pada int) string {
	return fmt.Sprintf(config.FormatPada, NakshatraName(i), pada)
}

// YogaName returns the name for a yoga index.
func YogaName(i int) string { return yogaNames[mod(i, YogaCount)] }

// KaranaName maps a half-tithi slot to its name.
func KaranaName(slot int) string {
	slot = mod(slot, KaranaCount)
	switch {
	case slot == 0:
		return karanaFirst
	case slot > 56:
		return karanaLast[slot-57]
	default:
		return karanaMovable[(slot-1)%len(karanaMovable)]
	}
}

// SignIndex returns the zodiac sign [0,12) of a longitude.
func SignIndex(lon float64) int {
	return IndexOf(lon, SignCount)
}

// SignAbbr returns the two-letter sign abbreviation (Ar..Pi).
func SignAbbr(lon float64) string {
	return signAbbrs[SignIndex(lon)]
}

// SignName returns the English sign name for an index.
func SignName(i int) string { return signNames[mod(i, SignCount)] }

// SignAbbrAt returns the abbreviation for a sign index.
func SignAbbrAt(i int) string { return signAbbrs[mod(i, SignCount)] }

func mod(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
