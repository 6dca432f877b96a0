package ephemeris

import (
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/solar"
)

// aberration is the constant annual aberration applied to the Sun (degrees).
const aberration = -0.00569

// sunLongitude returns the Sun's geometric longitude corrected for aberration,
// referred to the mean equinox of date (Meeus ch. 25).
func sunLongitude(jd float64) float64 {
	s, _ := solar.True(base.J2000Century(jd))
	return normalize360(s.Deg() + aberration)
}

// moonLongitude returns the Moon's geocentric longitude referred to the mean
// equinox of date (Meeus ch. 47), accurate to about 10".
func moonLongitude(jd float64) float64 {
	lambda, _, _ := moonposition.Position(jd)
	return normalize360(lambda.Deg())
}

// meanNode returns the longitude of the Moon's mean ascending node (Meeus 47.7).
func meanNode(jd float64) float64 {
	return normalize360(moonposition.Node(jd).Deg())
}
