package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dhanmoti/vedic-chart-backend-2/internal/domain"
	"github.com/dhanmoti/vedic-chart-backend-2/internal/ports"
)

// ChartRequest is the application-level input (no HTTP types).
type ChartRequest struct {
	Birth domain.BirthData
}

// ChartResponse is the application-level output. Nakshatras always holds one
// key per tracked body plus the ascendant key; a nil value means enrichment
// for that body was unavailable.
type ChartResponse struct {
	Placements         map[string]string
	Charts             *domain.ChartSet
	HouseIndices       []int
	AscendantLord      *string
	AscendantNakshatra *domain.NakshatraInfo
	Nakshatras         map[string]*domain.NakshatraInfo
}

// HoroscopeService orchestrates chart computation, normalization and
// best-effort nakshatra enrichment.
type HoroscopeService struct {
	engine    ports.ChartEngine
	ephemeris ports.Ephemeris
	factors   []int
	logger    *slog.Logger
}

// NewHoroscopeService builds a service over the engine and ephemeris ports.
// factors is the engine's divisional-chart factor list, read once at startup.
func NewHoroscopeService(engine ports.ChartEngine, ephemeris ports.Ephemeris, factors []int, logger *slog.Logger) *HoroscopeService {
	return &HoroscopeService{
		engine:    engine,
		ephemeris: ephemeris,
		factors:   factors,
		logger:    logger,
	}
}

// Chart computes a normalized natal chart. Engine failures and malformed
// engine output propagate as errors; enrichment failures never do — they
// leave the affected entries absent and the base chart data intact.
func (s *HoroscopeService) Chart(ctx context.Context, req ChartRequest) (ChartResponse, error) {
	raw, err := s.engine.Compute(ctx, req.Birth)
	if err != nil {
		return ChartResponse{}, fmt.Errorf("compute chart: %w", err)
	}

	houseIndices := raw.HouseIndices
	if houseIndices == nil {
		houseIndices = []int{}
	}

	resp := ChartResponse{
		Placements:   domain.NormalizePlacements(raw.Placements),
		Charts:       domain.ReshapeCharts(raw.Tables, s.factors),
		HouseIndices: houseIndices,
		Nakshatras:   emptyNakshatras(),
	}

	s.enrich(ctx, req.Birth, &resp)

	return resp, nil
}

func emptyNakshatras() map[string]*domain.NakshatraInfo {
	m := make(map[string]*domain.NakshatraInfo, len(domain.TrackedBodies)+1)
	for _, body := range domain.TrackedBodies {
		m[string(body)] = nil
	}
	m[domain.AscendantKey] = nil
	return m
}

// enrich fills nakshatra data per body. Isolation is two-level: a failed
// sidereal context leaves every entry absent, a failed body leaves only that
// body absent. No failure here ever aborts the response.
func (s *HoroscopeService) enrich(ctx context.Context, birth domain.BirthData, resp *ChartResponse) {
	sc, err := s.ephemeris.Context(ctx, birth)
	if err != nil {
		s.logger.WarnContext(ctx, "sidereal context unavailable, skipping nakshatra enrichment", "error", err)
		return
	}

	for _, body := range domain.TrackedBodies {
		lon, err := s.bodyLongitude(ctx, sc, body)
		if err != nil {
			s.logger.WarnContext(ctx, "nakshatra lookup failed", "body", string(body), "error", err)
			continue
		}
		info := domain.NakshatraFromLongitude(lon)
		resp.Nakshatras[string(body)] = &info
	}

	asc, err := sc.Ascendant(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "ascendant lookup failed", "error", err)
		return
	}

	info := domain.NakshatraFromLongitude(asc.Longitude)
	resp.Nakshatras[domain.AscendantKey] = &info
	resp.AscendantNakshatra = &info

	if lord, ok := domain.SignLord(asc.Sign); ok {
		resp.AscendantLord = &lord
	} else {
		s.logger.WarnContext(ctx, "unknown ascendant sign", "sign", asc.Sign)
	}
}

// bodyLongitude queries the ephemeris, deriving Ketu from Rahu since only the
// ascending node is tabulated.
func (s *HoroscopeService) bodyLongitude(ctx context.Context, sc ports.SiderealContext, body domain.Body) (float64, error) {
	if body == domain.Ketu {
		rahu, err := sc.Longitude(ctx, domain.Rahu)
		if err != nil {
			return 0, fmt.Errorf("rahu longitude: %w", err)
		}
		return domain.KetuLongitude(rahu), nil
	}
	return sc.Longitude(ctx, body)
}
