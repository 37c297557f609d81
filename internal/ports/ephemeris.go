package ports

import (
	"context"

	"github.com/dhanmoti/vedic-chart-backend-2/internal/domain"
)

// SiderealContext exposes low-level ephemeris primitives bound to one birth
// moment and place.
type SiderealContext interface {
	// Longitude returns the sidereal longitude of a body in degrees.
	Longitude(ctx context.Context, body domain.Body) (float64, error)

	// Ascendant returns the rising point's sign and sidereal longitude.
	Ascendant(ctx context.Context) (domain.AscendantPoint, error)
}

// Ephemeris opens sidereal contexts for nakshatra enrichment queries.
type Ephemeris interface {
	Context(ctx context.Context, birth domain.BirthData) (SiderealContext, error)
}
