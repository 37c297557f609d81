package domain

// Body identifies a tracked celestial body by its English name, matching the
// naming the chart engine uses in its own output.
type Body string

const (
	Sun     Body = "Sun"
	Moon    Body = "Moon"
	Mars    Body = "Mars"
	Mercury Body = "Mercury"
	Jupiter Body = "Jupiter"
	Venus   Body = "Venus"
	Saturn  Body = "Saturn"
	Rahu    Body = "Rahu"
	Ketu    Body = "Ketu"
)

// TrackedBodies lists the nine classical bodies in conventional order.
var TrackedBodies = []Body{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu}

// AscendantKey is the enrichment-map key for the ascendant point.
const AscendantKey = "Ascendant"

// RawChart is the engine's output triple behind named fields. The engine emits
// a positional three-element structure; the adapter decodes and validates it
// once so nothing past the boundary handles positional indices.
type RawChart struct {
	// Placements maps "chart-body" labels to sign names. Keys and values may
	// still carry the engine's annotation glyphs.
	Placements map[string]string
	// Tables holds one chart table per divisional chart, each a list of
	// newline-delimited house strings in house order.
	Tables [][]string
	// HouseIndices carries house numbering for chart orientation, passed
	// through to clients untouched.
	HouseIndices []int
}

// NakshatraInfo describes the lunar mansion occupied by a body. A value is
// always fully populated; absence is expressed by omitting the value entirely.
type NakshatraInfo struct {
	Name string `json:"name"`
	Pada int    `json:"pada"`
	Lord string `json:"lord"`
}

// AscendantPoint is the rising point as reported by the ephemeris.
type AscendantPoint struct {
	Sign      string
	Longitude float64
}

// BirthData is a validated birth moment and place.
type BirthData struct {
	Year           int
	Month          int
	Day            int
	Hour           int
	Minute         int
	Latitude       float64
	Longitude      float64
	TimezoneOffset float64
	Language       string
}
