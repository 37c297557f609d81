package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"

	"github.com/dhanmoti/vedic-chart-backend-2/internal/app"
	"github.com/dhanmoti/vedic-chart-backend-2/internal/domain"
)

type Handler struct {
	svc            *app.HoroscopeService
	computeTimeout time.Duration
	authToken      string
}

// NewHandler builds the API handler. computeTimeout bounds the whole chart
// computation (base chart plus enrichment) as one atomic unit; zero disables
// it. authToken, when non-empty, gates /v1 behind bearer auth.
func NewHandler(svc *app.HoroscopeService, computeTimeout time.Duration, authToken string) *Handler {
	return &Handler{svc: svc, computeTimeout: computeTimeout, authToken: authToken}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)

	v1 := e.Group("/v1")
	if h.authToken != "" {
		v1.Use(BearerAuthMiddleware(h.authToken))
	}
	v1.POST("/horoscope", h.Horoscope)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) Horoscope(c echo.Context) error {
	var req HoroscopeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
	}

	birth, err := parseBirthData(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	ctx := c.Request().Context()
	if h.computeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.computeTimeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := h.svc.Chart(ctx, app.ChartRequest{Birth: birth})
	if err != nil {
		return mapError(c, err)
	}

	requestID, _ := c.Get("request_id").(string)

	return c.JSON(http.StatusOK, toResponse(resp, requestID, time.Since(start).Milliseconds()))
}

func toResponse(r app.ChartResponse, requestID string, latencyMS int64) HoroscopeResponse {
	return HoroscopeResponse{
		Placements:         r.Placements,
		Charts:             r.Charts,
		HouseIndices:       r.HouseIndices,
		AscendantLord:      r.AscendantLord,
		AscendantNakshatra: r.AscendantNakshatra,
		Nakshatras:         r.Nakshatras,
		Meta: MetaResp{
			RequestID: requestID,
			LatencyMS: latencyMS,
		},
	}
}

// parseBirthData validates the request body into domain birth data. Every
// failure wraps ErrInvalidBirthData with a client-readable message.
func parseBirthData(req HoroscopeRequest) (domain.BirthData, error) {
	dob, err := time.Parse("2006-01-02", req.DOB)
	if err != nil {
		return domain.BirthData{}, fmt.Errorf("%w: dob must be YYYY-MM-DD", domain.ErrInvalidBirthData)
	}
	tm, err := time.Parse("15:04", req.Time)
	if err != nil {
		return domain.BirthData{}, fmt.Errorf("%w: time must be HH:MM", domain.ErrInvalidBirthData)
	}
	if req.Lat < -90 || req.Lat > 90 {
		return domain.BirthData{}, fmt.Errorf("%w: lat must be between -90 and 90", domain.ErrInvalidBirthData)
	}
	if req.Lng < -180 || req.Lng > 180 {
		return domain.BirthData{}, fmt.Errorf("%w: lng must be between -180 and 180", domain.ErrInvalidBirthData)
	}
	if req.Tz < -14 || req.Tz > 14 {
		return domain.BirthData{}, fmt.Errorf("%w: tz must be between -14 and 14", domain.ErrInvalidBirthData)
	}

	lang := req.Lang
	if lang == "" {
		lang = "en"
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return domain.BirthData{}, fmt.Errorf("%w: lang must be a valid BCP 47 tag", domain.ErrInvalidBirthData)
	}

	return domain.BirthData{
		Year:           dob.Year(),
		Month:          int(dob.Month()),
		Day:            dob.Day(),
		Hour:           tm.Hour(),
		Minute:         tm.Minute(),
		Latitude:       req.Lat,
		Longitude:      req.Lng,
		TimezoneOffset: req.Tz,
		Language:       tag.String(),
	}, nil
}

func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case errors.Is(err, domain.ErrInvalidBirthData):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	// Deadline first: an engine call cut off by the compute timeout also
	// carries ErrEngineUnavailable from the transport wrap.
	case errors.Is(err, context.DeadlineExceeded):
		slog.Error("chart computation timed out", "request_id", requestID, "error", err)
		return c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: "chart computation timed out"})
	case errors.Is(err, domain.ErrMalformedChart):
		slog.Error("malformed chart output", "request_id", requestID, "error", err)
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to generate chart"})
	case errors.Is(err, domain.ErrEngineUnavailable):
		slog.Error("chart engine failure", "request_id", requestID, "error", err)
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "chart engine failure"})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
