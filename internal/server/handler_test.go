package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vukan322/ghrecap/internal/core"
	"github.com/vukan322/ghrecap/internal/providers/github"
	"github.com/vukan322/ghrecap/internal/recap"
)

type stubService struct {
	lastReq recap.Request
	resp    *recap.Response
	err     error
}

func (s *stubService) GetRecap(ctx context.Context, req recap.Request) (*recap.Response, error) {
	s.lastReq = req
	return s.resp, s.err
}

func postRecap(t *testing.T, svc Recapper, body string) *httptest.ResponseRecorder {
	t.Helper()

	srv := New(":0", svc)
	req := httptest.NewRequest(http.MethodPost, "/api/recap", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func okResponse() *recap.Response {
	return &recap.Response{
		Stats: core.YearStats{Year: 2024, Handle: "octo"},
		Meta:  recap.Meta{Source: "graphql", Warnings: []string{}},
	}
}

func TestValidateYear(t *testing.T) {
	valid := []int{0, 2008, 2100, 2024}
	for _, y := range valid {
		assert.True(t, ValidateYear(y), "year %d should be valid", y)
	}

	invalid := []int{2007, 2101, -1, 1999}
	for _, y := range invalid {
		assert.False(t, ValidateYear(y), "year %d should be invalid", y)
	}
}

func TestHandleRecapSuccess(t *testing.T) {
	svc := &stubService{resp: okResponse()}

	rec := postRecap(t, svc, `{"username": " octo ", "year": 2024, "token": " tok "}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp recap.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "octo", resp.Stats.Handle)
	assert.Equal(t, "graphql", resp.Meta.Source)

	// Inputs are trimmed and comparison defaults to on.
	assert.Equal(t, "octo", svc.lastReq.Username)
	assert.Equal(t, "tok", svc.lastReq.Token)
	assert.True(t, svc.lastReq.IncludeComparison)
}

func TestHandleRecapDefaultsYear(t *testing.T) {
	svc := &stubService{resp: okResponse()}

	rec := postRecap(t, svc, `{"username": "octo"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Now().Year(), svc.lastReq.Year)
}

func TestHandleRecapValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty username", `{"username": "   ", "year": 2024}`},
		{"year too early", `{"username": "octo", "year": 2007}`},
		{"year too late", `{"username": "octo", "year": 2101}`},
		{"year not a number", `{"username": "octo", "year": "NaN"}`},
		{"malformed body", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{resp: okResponse()}
			rec := postRecap(t, svc, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHandleRecapAllTimeYearIsValid(t *testing.T) {
	svc := &stubService{resp: okResponse()}

	rec := postRecap(t, svc, `{"username": "octo", "year": 0}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, svc.lastReq.Year)
}

func TestHandleRecapRateLimit(t *testing.T) {
	svc := &stubService{err: &github.RateLimitError{
		Message:    "rate limited",
		RetryAfter: 30 * time.Second,
	}}

	rec := postRecap(t, svc, `{"username": "octo", "year": 2024}`)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "30", rec.Header().Get("Retry-After"))
}

func TestHandleRecapRateLimitWithoutRetryAfter(t *testing.T) {
	svc := &stubService{err: &github.RateLimitError{Message: "rate limited"}}

	rec := postRecap(t, svc, `{"username": "octo", "year": 2024}`)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Empty(t, rec.Header().Get("Retry-After"))
}

func TestHandleRecapUpstreamError(t *testing.T) {
	svc := &stubService{err: &github.UpstreamError{Status: 502, Message: "upstream exploded"}}

	rec := postRecap(t, svc, `{"username": "octo", "year": 2024}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "upstream exploded", body["error"])
}

func TestHandleRecapUserNotFound(t *testing.T) {
	svc := &stubService{err: github.ErrUserNotFound}

	rec := postRecap(t, svc, `{"username": "ghost", "year": 2024}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleRecapMethodNotAllowed(t *testing.T) {
	srv := New(":0", &stubService{})
	req := httptest.NewRequest(http.MethodGet, "/api/recap", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	srv := New(":0", &stubService{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestHandleRecapDisableComparison(t *testing.T) {
	svc := &stubService{resp: okResponse()}

	rec := postRecap(t, svc, `{"username": "octo", "year": 2024, "includeComparison": false}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, svc.lastReq.IncludeComparison)
}
