package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/boatrace-predictor/internal/config"
	"github.com/yourusername/boatrace-predictor/internal/health"
	"github.com/yourusername/boatrace-predictor/internal/logger"
	"github.com/yourusername/boatrace-predictor/internal/models"
	"github.com/yourusername/boatrace-predictor/internal/venue"
)

type stubPredictor struct {
	calls     atomic.Int32
	lastQuery models.RaceQuery
}

func (p *stubPredictor) Predict(_ context.Context, q models.RaceQuery) (*models.RacePrediction, error) {
	p.calls.Add(1)
	p.lastQuery = q
	return &models.RacePrediction{
		ID:         uuid.New(),
		Date:       q.Date,
		VenueCode:  q.VenueCode,
		VenueName:  "桐生",
		RaceNumber: q.RaceNumber,
		DataSource: models.DataSourceSample,
	}, nil
}

type stubVenues struct {
	venues   []models.Venue
	listErr  error
	resetErr error
	resets   int
}

func (v *stubVenues) List(context.Context) ([]models.Venue, error) {
	return v.venues, v.listErr
}

func (v *stubVenues) Reset(context.Context, string) (int, error) {
	if v.resetErr != nil {
		return 0, v.resetErr
	}
	v.resets++
	return len(v.venues), nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("PORT", "")
	cfg, err := config.LoadWithDefaults("")
	require.NoError(t, err)
	return cfg
}

func newTestServer(t *testing.T) (*Server, *stubPredictor, *stubVenues) {
	t.Helper()
	predictor := &stubPredictor{}
	venues := &stubVenues{venues: venue.Seed()}
	hs := health.NewServer(health.Config{ServiceName: "boatrace-api", Version: "1.1"})
	hs.SetReady(true)

	s := NewServer(Deps{
		Config:    testConfig(t),
		Predictor: predictor,
		Venues:    venues,
		Health:    hs,
		Logger:    logger.Discard(),
	})
	return s, predictor, venues
}

func do(t *testing.T, s *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHome(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "1.1", body["version"])
	assert.NotEmpty(t, body["endpoints"])
}

func TestRace_Success(t *testing.T) {
	s, predictor, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/race/20250115/1/7")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	raceData, ok := body["race_data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "01", raceData["venue_code"])
	assert.Equal(t, "sample", raceData["data_source"])

	assert.Equal(t, int32(1), predictor.calls.Load())
	assert.Equal(t, models.RaceQuery{Date: "20250115", VenueCode: "01", RaceNumber: 7}, predictor.lastQuery)
}

func TestRace_ValidationRejectedBeforePrediction(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantField string
	}{
		{name: "dashed date", path: "/api/race/2025-01-01/01/1", wantField: "date"},
		{name: "short date", path: "/api/race/2025011/01/1", wantField: "date"},
		{name: "three digit venue", path: "/api/race/20250115/123/1", wantField: "venue_code"},
		{name: "alpha venue", path: "/api/race/20250115/ab/1", wantField: "venue_code"},
		{name: "race zero", path: "/api/race/20250115/01/0", wantField: "race_number"},
		{name: "race thirteen", path: "/api/race/20250115/01/13", wantField: "race_number"},
		{name: "race not a number", path: "/api/race/20250115/01/x", wantField: "race_number"},
		{name: "signed race", path: "/api/race/20250115/01/+5", wantField: "race_number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, predictor, _ := newTestServer(t)

			rec := do(t, s, http.MethodGet, tt.path)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			body := decode(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantField, body["field"])
			assert.NotEmpty(t, body["error"])
			assert.Equal(t, int32(0), predictor.calls.Load())
		})
	}
}

func TestVenues(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/venues")
	require.Equal(t, http.StatusOK, rec.Code)

	var body venuesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Venues, 24)
	assert.Equal(t, "桐生", body.Venues[0].Name)
}

func TestVenues_Error(t *testing.T) {
	s, _, venues := newTestServer(t)
	venues.listErr = errors.New("no such table: venues")

	rec := do(t, s, http.MethodGet, "/api/venues")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, false, decode(t, rec)["success"])
}

func TestResetDB(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPost} {
		t.Run(method, func(t *testing.T) {
			s, _, venues := newTestServer(t)

			rec := do(t, s, method, "/api/reset-db")
			require.Equal(t, http.StatusOK, rec.Code)

			body := decode(t, rec)
			assert.Equal(t, true, body["success"])
			assert.Equal(t, float64(24), body["venues"])
			assert.Equal(t, 1, venues.resets)
		})
	}
}

func TestResetDB_Error(t *testing.T) {
	s, _, venues := newTestServer(t)
	venues.resetErr = errors.New("database is locked")

	rec := do(t, s, http.MethodPost, "/api/reset-db")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "database is locked", decode(t, rec)["error"])
}

func TestHealthAndReadyMounted(t *testing.T) {
	s, _, _ := newTestServer(t)

	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health").Code)
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/ready").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, decode(t, rec)["success"])

	rec = do(t, s, http.MethodDelete, "/api/venues")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORS(t *testing.T) {
	s, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/venues", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_RestrictedOrigins(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.AllowedOrigins = []string{"https://boatrace.example"}
	s := NewServer(Deps{
		Config:    cfg,
		Predictor: &stubPredictor{},
		Venues:    &stubVenues{},
		Logger:    logger.Discard(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
