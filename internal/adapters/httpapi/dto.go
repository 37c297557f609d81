package httpapi

import "github.com/dhanmoti/vedic-chart-backend-2/internal/domain"

// HoroscopeRequest is the JSON body for POST /v1/horoscope.
type HoroscopeRequest struct {
	DOB  string  `json:"dob"`  // YYYY-MM-DD
	Time string  `json:"time"` // HH:MM
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Tz   float64 `json:"tz"`
	Lang string  `json:"lang"`
}

// HoroscopeResponse is the JSON shape returned by POST /v1/horoscope.
type HoroscopeResponse struct {
	Placements         map[string]string                `json:"placements"`
	Charts             *domain.ChartSet                 `json:"charts"`
	HouseIndices       []int                            `json:"house_indices"`
	AscendantLord      *string                          `json:"ascendant_lord"`
	AscendantNakshatra *domain.NakshatraInfo            `json:"ascendant_nakshatra"`
	Nakshatras         map[string]*domain.NakshatraInfo `json:"nakshatras"`
	Meta               MetaResp                         `json:"meta"`
}

type MetaResp struct {
	RequestID string `json:"request_id"`
	LatencyMS int64  `json:"latency_ms"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
