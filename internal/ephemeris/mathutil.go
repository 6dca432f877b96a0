package ephemeris

import (
	"math"

	"github.com/soniakeys/meeus/v3/base"
)

// centuries returns Julian centuries since J2000.0.
func centuries(jd float64) float64 {
	return base.J2000Century(jd)
}

func deg2rad(d float64) float64 { return d * math.Pi / 180.0 }
func rad2deg(r float64) float64 { return r * 180.0 / math.Pi }

func sinD(deg float64) float64 { return math.Sin(deg2rad(deg)) }
func cosD(deg float64) float64 { return math.Cos(deg2rad(deg)) }
func tanD(deg float64) float64 { return math.Tan(deg2rad(deg)) }

func atan2D(y, x float64) float64 { return rad2deg(math.Atan2(y, x)) }

func normalize360(d float64) float64 {
	d = math.Mod(d, 360.0)
	if d < 0 {
		d += 360.0
	}
	return d
}

// normalize180 maps d into [-180, 180).
func normalize180(d float64) float64 {
	return normalize360(d+180) - 180
}
