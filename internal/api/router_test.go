// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/flickpicks/internal/recommend"
)

type mockStatus struct {
	status recommend.Status
}

func (m *mockStatus) Status() recommend.Status { return m.status }

func serve(t *testing.T, engine StatusProvider, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	router := NewRouter(NewHandler(engine, "test"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, http.NoBody))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return resp
}

func TestHealthz(t *testing.T) {
	rec := serve(t, &mockStatus{}, http.MethodGet, "/healthz")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	resp := decode(t, rec)
	if !resp.Success {
		t.Error("expected success")
	}
	if resp.Meta.RequestID == "" {
		t.Error("expected request id in meta")
	}
	if resp.Meta.RequestID != rec.Header().Get("X-Request-ID") {
		t.Errorf("meta request id %q differs from header %q", resp.Meta.RequestID, rec.Header().Get("X-Request-ID"))
	}
}

func TestReadyz(t *testing.T) {
	tests := []struct {
		name       string
		status     recommend.Status
		wantCode   int
		wantDetail string
	}{
		{
			name:       "not ready",
			status:     recommend.Status{},
			wantCode:   http.StatusServiceUnavailable,
			wantDetail: "SERVICE_UNAVAILABLE",
		},
		{
			name:       "ready",
			status:     recommend.Status{Ready: true, CorpusVersion: "abc123", CorpusSize: 5},
			wantCode:   http.StatusOK,
			wantDetail: `"corpus_version":"abc123"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &mockStatus{status: tt.status}, http.MethodGet, "/readyz")

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if !strings.Contains(rec.Body.String(), tt.wantDetail) {
				t.Errorf("body %s does not contain %s", rec.Body.String(), tt.wantDetail)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	builtAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	engine := &mockStatus{status: recommend.Status{
		Ready:         true,
		CorpusVersion: "v1",
		CorpusSize:    42,
		BuiltAt:       builtAt,
		RequestCount:  7,
		CacheHits:     3,
	}}

	rec := serve(t, engine, http.MethodGet, "/api/v1/status")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Data recommend.Status `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.CorpusSize != 42 || body.Data.RequestCount != 7 || body.Data.CacheHits != 3 {
		t.Errorf("unexpected status payload: %+v", body.Data)
	}
	if !body.Data.BuiltAt.Equal(builtAt) {
		t.Errorf("BuiltAt = %v, want %v", body.Data.BuiltAt, builtAt)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	// Touch a route first so the HTTP series exist.
	serve(t, &mockStatus{}, http.MethodGet, "/healthz")

	rec := serve(t, &mockStatus{}, http.MethodGet, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "flickpicks_http_requests_total") {
		t.Error("metrics output is missing flickpicks_http_requests_total")
	}
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	rec := serve(t, &mockStatus{}, http.MethodGet, "/nope")
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /nope status = %d, want 404", rec.Code)
	}
	if resp := decode(t, rec); resp.Error == nil || resp.Error.Code != ErrCodeNotFound {
		t.Errorf("unexpected error body: %s", rec.Body.String())
	}

	rec = serve(t, &mockStatus{}, http.MethodPost, "/healthz")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /healthz status = %d, want 405", rec.Code)
	}
}
