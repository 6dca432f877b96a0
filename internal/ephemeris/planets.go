package ephemeris

import "math"

// generalPrecession is the precession in longitude (deg per Julian century),
// used to carry J2000 ecliptic longitudes to the equinox of date.
const generalPrecession = 1.3969713

// keplerElements are J2000 mean elements and their rates per century:
// semi-major axis (au), eccentricity, inclination, mean longitude,
// longitude of perihelion and longitude of the ascending node (degrees).
type keplerElements struct {
	a, e, i, l, peri, node             float64
	aDot, eDot, iDot, lDot, periDot, nodeDot float64
}

// Approximate elements valid 1800-2050 (Standish, JPL Solar System Dynamics).
var (
	mercuryElements = keplerElements{
		0.38709927, 0.20563593, 7.00497902, 252.25032350, 77.45779628, 48.33076593,
		0.00000037, 0.00001906, -0.00594749, 149472.67411175, 0.16047689, -0.12534081,
	}
	venusElements = keplerElements{
		0.72333566, 0.00677672, 3.39467605, 181.97909950, 131.60246718, 76.67984255,
		0.00000390, -0.00004107, -0.00078890, 58517.81538729, 0.00268329, -0.27769418,
	}
	earthMoonElements = keplerElements{
		1.00000261, 0.01671123, -0.00001531, 100.46457166, 102.93768193, 0.0,
		0.00000562, -0.00004392, -0.01294668, 35999.37244981, 0.32327364, 0.0,
	}
	marsElements = keplerElements{
		1.52371034, 0.09339410, 1.84969142, -4.55343205, -23.94362959, 49.55953891,
		0.00001847, 0.00007882, -0.00813131, 19140.30268499, 0.44441088, -0.29257343,
	}
	jupiterElements = keplerElements{
		5.20288700, 0.04838624, 1.30439695, 34.39644051, 14.72847983, 100.47390909,
		-0.00011607, -0.00013253, -0.00183714, 3034.74612775, 0.21252668, 0.20469106,
	}
	saturnElements = keplerElements{
		9.53667594, 0.05386179, 2.48599187, 49.95424423, 92.59887831, 113.66242448,
		-0.00125060, -0.00050991, 0.00193609, 1222.49362201, -0.41897216, -0.28867794,
	}
)

const (
	keplerTolerance = 1e-6 // degrees
	keplerMaxIter   = 50
)

// heliocentric returns J2000 ecliptic rectangular coordinates (au) at t centuries.
func (k keplerElements) heliocentric(t float64) (x, y, z float64) {
	a := k.a + k.aDot*t
	e := k.e + k.eDot*t
	inc := k.i + k.iDot*t
	l := k.l + k.lDot*t
	peri := k.peri + k.periDot*t
	node := k.node + k.nodeDot*t

	omega := peri - node
	m := normalize180(l - peri)

	ecc := solveKepler(m, e)

	xp := a * (cosD(ecc) - e)
	yp := a * math.Sqrt(1-e*e) * sinD(ecc)

	co, so := cosD(omega), sinD(omega)
	cn, sn := cosD(node), sinD(node)
	ci, si := cosD(inc), sinD(inc)

	x = (co*cn-so*sn*ci)*xp + (-so*cn-co*sn*ci)*yp
	y = (co*sn+so*cn*ci)*xp + (-so*sn+co*cn*ci)*yp
	z = (so*si)*xp + (co*si)*yp
	return x, y, z
}

// solveKepler returns the eccentric anomaly (degrees) for mean anomaly m (degrees).
func solveKepler(m, e float64) float64 {
	eStar := rad2deg(e)
	ecc := m + eStar*sinD(m)
	for i := 0; i < keplerMaxIter; i++ {
		dm := m - (ecc - eStar*sinD(ecc))
		de := dm / (1 - e*cosD(ecc))
		ecc += de
		if math.Abs(de) <= keplerTolerance {
			break
		}
	}
	return ecc
}

// geocentricLongitude returns the planet's longitude seen from the Earth-Moon
// barycenter, precessed to the equinox of date.
func geocentricLongitude(k keplerElements, jd float64) float64 {
	t := centuries(jd)
	px, py, _ := k.heliocentric(t)
	ex, ey, _ := earthMoonElements.heliocentric(t)
	return normalize360(atan2D(py-ey, px-ex) + generalPrecession*t)
}
