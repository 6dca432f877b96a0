package engine

// Body identifies a point whose sidereal longitude the chart needs.
type Body int

const (
	Sun Body = iota
	Moon
	Mars
	Mercury
	Jupiter
	Venus
	Saturn
	Rahu
	Ketu
	Ascendant
)

// Bodies lists every body in chart order.
var Bodies = []Body{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu, Ascendant}

var bodyNames = [...]string{"Sun", "Moon", "Mars", "Mercury", "Jupiter", "Venus", "Saturn", "Rahu", "Ketu", "Ascendant"}

var bodyAbbrs = [...]string{"Su", "Mo", "Ma", "Me", "Ju", "Ve", "Sa", "Ra", "Ke", "Asc"}

// String returns the English name of the body.
func (b Body) String() string {
	if b < 0 || int(b) >= len(bodyNames) {
		return "Body(?)"
	}
	return bodyNames[b]
}

// Abbr returns the short key used in record fields (LONG_Su, SIGN_Asc...).
func (b Body) Abbr() string {
	if b < 0 || int(b) >= len(bodyAbbrs) {
		return "?"
	}
	return bodyAbbrs[b]
}

// Valid reports whether b is one of the known bodies.
func (b Body) Valid() bool {
	return b >= Sun && b <= Ascendant
}
