package jhora

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhanmoti/vedic-chart-backend-2/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testBirth() domain.BirthData {
	return domain.BirthData{
		Year: 1990, Month: 1, Day: 15,
		Hour: 6, Minute: 30,
		Latitude: 13.0827, Longitude: 80.2707, TimezoneOffset: 5.5,
		Language: "en",
	}
}

func TestCompute_Success(t *testing.T) {
	tables := make([]string, 12)
	for i := range tables {
		tables[i] = "Sun☉\nMoon"
	}

	var gotPath, gotAuth string
	var gotBody birthRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		triple := []any{
			map[string]string{"Raasi-Sun☉": "Capricorn\n"},
			[][]string{tables},
			[]int{9, 10, 11},
		}
		assert.NoError(t, json.NewEncoder(w).Encode(triple))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "secret", testLogger())

	raw, err := client.Compute(context.Background(), testBirth())
	require.NoError(t, err)

	assert.Equal(t, "/v1/chart", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "1990-01-15", gotBody.DOB)
	assert.Equal(t, "06:30", gotBody.Time)
	assert.Equal(t, 5.5, gotBody.Tz)

	assert.Equal(t, "Capricorn\n", raw.Placements["Raasi-Sun☉"])
	require.Len(t, raw.Tables, 1)
	assert.Len(t, raw.Tables[0], 12)
	assert.Equal(t, []int{9, 10, 11}, raw.HouseIndices)
}

func TestCompute_WrongArityIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"a":"b"},[]]`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "", testLogger())

	_, err := client.Compute(context.Background(), testBirth())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedChart)
}

func TestCompute_NonArrayBodyIsMalformed(t *testing.T) {
	// A top-level object instead of the positional triple is the same
	// contract violation as a wrong-arity array.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"placements":{},"tables":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "", testLogger())

	_, err := client.Compute(context.Background(), testBirth())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedChart)
}

func TestCompute_WrongSlotShapeIsMalformed(t *testing.T) {
	// Chart tables slot holds a dict instead of a list of tables.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"a":"b"},{"not":"a list"},[1,2]]`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "", testLogger())

	_, err := client.Compute(context.Background(), testBirth())
	assert.ErrorIs(t, err, domain.ErrMalformedChart)
}

func TestCompute_Non200IsEngineUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "ephemeris not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "", testLogger())

	_, err := client.Compute(context.Background(), testBirth())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEngineUnavailable)
	assert.Contains(t, err.Error(), "ephemeris not loaded")
}

func TestFactors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/factors", r.URL.Path)
		_, _ = w.Write([]byte(`{"factors":[1,2,3,9,10]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "", testLogger())

	factors, err := client.Factors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 9, 10}, factors)
}

func TestFactors_EmptyListIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"factors":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "", testLogger())

	_, err := client.Factors(context.Background())
	assert.Error(t, err)
}

func TestSiderealContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/context":
			_, _ = w.Write([]byte(`{"context_id":"ctx-42"}`))
		case r.URL.Path == "/v1/context/ctx-42/longitude":
			assert.Equal(t, "Moon", r.URL.Query().Get("body"))
			_, _ = w.Write([]byte(`{"longitude":93.25}`))
		case r.URL.Path == "/v1/context/ctx-42/ascendant":
			_, _ = w.Write([]byte(`{"sign":"Capricorn","longitude":275.5}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "", testLogger())

	sc, err := client.Context(context.Background(), testBirth())
	require.NoError(t, err)

	lon, err := sc.Longitude(context.Background(), domain.Moon)
	require.NoError(t, err)
	assert.Equal(t, 93.25, lon)

	asc, err := sc.Ascendant(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.AscendantPoint{Sign: "Capricorn", Longitude: 275.5}, asc)
}

func TestContext_EmptyIDIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "", testLogger())

	_, err := client.Context(context.Background(), testBirth())
	assert.Error(t, err)
}
