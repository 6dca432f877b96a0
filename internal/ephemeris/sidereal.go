package ephemeris

import (
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/sidereal"
)

// Lahiri (Chitrapaksha) ayanamsa: 23°15'00.658" at the 1956 reference
// epoch (JD 2435553.5), advanced by general precession since then.
const (
	lahiriEpochJD    = 2435553.5
	lahiriEpochValue = 23.245524743
)

// precessionArcsec returns accumulated general precession (arcseconds)
// t centuries after J2000.
func precessionArcsec(t float64) float64 {
	return 5028.796195*t + 1.1054348*t*t
}

// lahiri returns the Lahiri ayanamsa in degrees.
func lahiri(jd float64) float64 {
	t := centuries(jd)
	t0 := centuries(lahiriEpochJD)
	return lahiriEpochValue + (precessionArcsec(t)-precessionArcsec(t0))/3600.0
}

// meanObliquity returns the mean obliquity of the ecliptic (degrees, Meeus 22.2).
func meanObliquity(jd float64) float64 {
	return nutation.MeanObliquity(jd).Deg()
}

// gmst returns Greenwich mean sidereal time in degrees (Meeus 12.4).
func gmst(jd float64) float64 {
	return normalize360(float64(sidereal.Mean(jd)) / secondsPerDay * 360)
}

// ascendant returns the tropical longitude of the eastern horizon's
// intersection with the ecliptic.
func ascendant(jd, lat, lon float64) float64 {
	ramc := normalize360(gmst(jd) + lon)
	eps := meanObliquity(jd)
	return normalize360(atan2D(cosD(ramc), -(sinD(ramc)*cosD(eps) + tanD(lat)*sinD(eps))))
}
