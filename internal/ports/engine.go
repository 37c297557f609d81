package ports

import (
	"context"

	"github.com/dhanmoti/vedic-chart-backend-2/internal/domain"
)

// ChartEngine produces the raw natal-chart output for a birth moment.
type ChartEngine interface {
	Compute(ctx context.Context, birth domain.BirthData) (domain.RawChart, error)

	// Factors returns the engine's ordered divisional-chart factor list.
	// The list is the engine's configuration contract: its order pairs
	// positionally with the chart tables Compute returns.
	Factors(ctx context.Context) ([]int, error)
}
