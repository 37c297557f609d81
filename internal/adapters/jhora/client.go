package jhora

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/dhanmoti/vedic-chart-backend-2/internal/domain"
	"github.com/dhanmoti/vedic-chart-backend-2/internal/ports"
)

// Client talks to the jhora compute sidecar, which wraps the Python jhora
// library and the Swiss Ephemeris behind a small HTTP surface. It implements
// both the chart engine and the ephemeris ports.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *slog.Logger
}

var (
	_ ports.ChartEngine = (*Client)(nil)
	_ ports.Ephemeris   = (*Client)(nil)
)

func NewClient(httpClient *http.Client, baseURL, token string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		logger:     logger,
	}
}

// birthRequest mirrors the sidecar's birth-data payload.
type birthRequest struct {
	DOB      string  `json:"dob"`
	Time     string  `json:"time"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Tz       float64 `json:"tz"`
	Language string  `json:"language"`
}

func birthPayload(b domain.BirthData) birthRequest {
	return birthRequest{
		DOB:      fmt.Sprintf("%04d-%02d-%02d", b.Year, b.Month, b.Day),
		Time:     fmt.Sprintf("%02d:%02d", b.Hour, b.Minute),
		Lat:      b.Latitude,
		Lng:      b.Longitude,
		Tz:       b.TimezoneOffset,
		Language: b.Language,
	}
}

// Compute requests the full chart and decodes the sidecar's positional
// triple (placements, chart tables, house indices) into a RawChart.
func (c *Client) Compute(ctx context.Context, birth domain.BirthData) (domain.RawChart, error) {
	var body json.RawMessage
	if err := c.post(ctx, "/v1/chart", birthPayload(birth), &body); err != nil {
		return domain.RawChart{}, err
	}
	var triple []json.RawMessage
	if err := json.Unmarshal(body, &triple); err != nil {
		return domain.RawChart{}, fmt.Errorf("%w: expected a 3-element array: %v", domain.ErrMalformedChart, err)
	}
	raw, err := decodeTriple(triple)
	if err != nil {
		return domain.RawChart{}, err
	}
	c.logger.DebugContext(ctx, "chart computed", "placements", len(raw.Placements), "tables", len(raw.Tables))
	return raw, nil
}

// decodeTriple validates the positional contract at the boundary so nothing
// downstream handles raw indices.
func decodeTriple(triple []json.RawMessage) (domain.RawChart, error) {
	if len(triple) != 3 {
		return domain.RawChart{}, fmt.Errorf("%w: expected 3 elements, got %d", domain.ErrMalformedChart, len(triple))
	}
	var raw domain.RawChart
	if err := json.Unmarshal(triple[0], &raw.Placements); err != nil {
		return domain.RawChart{}, fmt.Errorf("%w: placements: %v", domain.ErrMalformedChart, err)
	}
	if err := json.Unmarshal(triple[1], &raw.Tables); err != nil {
		return domain.RawChart{}, fmt.Errorf("%w: chart tables: %v", domain.ErrMalformedChart, err)
	}
	if err := json.Unmarshal(triple[2], &raw.HouseIndices); err != nil {
		return domain.RawChart{}, fmt.Errorf("%w: house indices: %v", domain.ErrMalformedChart, err)
	}
	return raw, nil
}

// Factors reads the sidecar's ordered divisional-chart factor list.
func (c *Client) Factors(ctx context.Context) ([]int, error) {
	var out struct {
		Factors []int `json:"factors"`
	}
	if err := c.get(ctx, "/v1/factors", &out); err != nil {
		return nil, err
	}
	if len(out.Factors) == 0 {
		return nil, fmt.Errorf("engine returned empty factor list")
	}
	return out.Factors, nil
}

// Context opens a sidereal context on the sidecar and returns a handle for
// per-body queries.
func (c *Client) Context(ctx context.Context, birth domain.BirthData) (ports.SiderealContext, error) {
	var out struct {
		ContextID string `json:"context_id"`
	}
	if err := c.post(ctx, "/v1/context", birthPayload(birth), &out); err != nil {
		return nil, err
	}
	if out.ContextID == "" {
		return nil, fmt.Errorf("engine returned empty context id")
	}
	return &siderealContext{client: c, id: out.ContextID}, nil
}

type siderealContext struct {
	client *Client
	id     string
}

func (s *siderealContext) Longitude(ctx context.Context, body domain.Body) (float64, error) {
	var out struct {
		Longitude float64 `json:"longitude"`
	}
	path := "/v1/context/" + url.PathEscape(s.id) + "/longitude?body=" + url.QueryEscape(string(body))
	if err := s.client.get(ctx, path, &out); err != nil {
		return 0, err
	}
	return out.Longitude, nil
}

func (s *siderealContext) Ascendant(ctx context.Context) (domain.AscendantPoint, error) {
	var out struct {
		Sign      string  `json:"sign"`
		Longitude float64 `json:"longitude"`
	}
	if err := s.client.get(ctx, "/v1/context/"+url.PathEscape(s.id)+"/ascendant", &out); err != nil {
		return domain.AscendantPoint{}, err
	}
	return domain.AscendantPoint{Sign: out.Sign, Longitude: out.Longitude}, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrEngineUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %w", domain.ErrEngineUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d: %s", domain.ErrEngineUnavailable, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
