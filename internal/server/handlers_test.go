package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stressjournal/internal/backend"
	"stressjournal/internal/config"
	"stressjournal/internal/view"
)

type stubAnalyzer struct {
	analyzeErr error
	copingErr  error
}

func (s *stubAnalyzer) AnalyzeJournalEntry(ctx context.Context, text string) (*backend.AnalyzeResponse, error) {
	if s.analyzeErr != nil {
		return nil, s.analyzeErr
	}
	return &backend.AnalyzeResponse{
		PrimaryEmotion: "anxiety",
		StressLevel:    backend.StressHigh,
		StressScore:    0.82,
		Scores:         map[string]float64{"fear": 0.6},
	}, nil
}

func (s *stubAnalyzer) GetCopingSuggestion(ctx context.Context, req backend.CopingRequest) (*backend.CopingResponse, error) {
	if s.copingErr != nil {
		return nil, s.copingErr
	}
	return &backend.CopingResponse{CopingText: "Try a short breathing exercise."}, nil
}

type stubChecker struct {
	err error
}

func (s *stubChecker) Health(ctx context.Context) error { return s.err }

func newTestServer(t *testing.T, analyzer view.Analyzer, checker HealthChecker) *Server {
	t.Helper()
	cfg := config.Config{
		Server: config.ServerConfig{
			Host:           "127.0.0.1",
			Port:           "0",
			WebDir:         "../../web",
			AllowedOrigins: []string{"*"},
		},
	}
	srv, err := New(cfg, view.New(analyzer), checker)
	require.NoError(t, err)
	return srv
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHomePage(t *testing.T) {
	srv := newTestServer(t, &stubAnalyzer{}, &stubChecker{})

	rec := get(t, srv.Handler(), "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<form")
	assert.Contains(t, rec.Body.String(), "Analyze")
}

func TestAboutPage(t *testing.T) {
	srv := newTestServer(t, &stubAnalyzer{}, &stubChecker{})

	rec := get(t, srv.Handler(), "/about")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "About")
	assert.NotContains(t, rec.Body.String(), "<form")
}

func TestSubmitRendersResultAndCoping(t *testing.T) {
	srv := newTestServer(t, &stubAnalyzer{}, &stubChecker{})

	rec := postForm(t, srv.Handler(), "/analyze", url.Values{"text": {"I feel overwhelmed today"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	body := get(t, srv.Handler(), "/").Body.String()
	assert.Contains(t, body, "anxiety")
	assert.Contains(t, body, "high")
	assert.Contains(t, body, "Try a short breathing exercise.")
}

func TestSubmitEmptyTextShowsValidationError(t *testing.T) {
	srv := newTestServer(t, &stubAnalyzer{}, &stubChecker{})

	rec := postForm(t, srv.Handler(), "/analyze", url.Values{"text": {"   "}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	body := get(t, srv.Handler(), "/").Body.String()
	assert.Contains(t, body, view.MsgEmptyInput)
}

func TestSubmitBackendFailureShowsError(t *testing.T) {
	analyzer := &stubAnalyzer{
		analyzeErr: &backend.APIError{Endpoint: "/predict", StatusCode: 500, Body: "model not loaded"},
	}
	srv := newTestServer(t, analyzer, &stubChecker{})

	postForm(t, srv.Handler(), "/analyze", url.Values{"text": {"hello"}})

	body := get(t, srv.Handler(), "/").Body.String()
	assert.Contains(t, body, "500 model not loaded")
	assert.NotContains(t, body, "Coping suggestion")
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubAnalyzer{}, &stubChecker{})

	rec := get(t, srv.Handler(), "/api/v1/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var status map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, "ok", status["backend"])
}

func TestHealthEndpointBackendDown(t *testing.T) {
	srv := newTestServer(t, &stubAnalyzer{}, &stubChecker{err: errors.New("connection refused")})

	rec := get(t, srv.Handler(), "/api/v1/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var status map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "unreachable", status["backend"])
}

func TestStaticFiles(t *testing.T) {
	srv := newTestServer(t, &stubAnalyzer{}, &stubChecker{})

	rec := get(t, srv.Handler(), "/static/style.css")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubAnalyzer{}, &stubChecker{})

	rec := get(t, srv.Handler(), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}
