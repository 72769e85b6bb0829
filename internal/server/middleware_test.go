package server

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// TestAPIKeyAuth_MissingKey verifies requests without a key are rejected
// with 401.
func TestAPIKeyAuth_MissingKey(t *testing.T) {
	h := APIKeyAuth("secret")(okHandler())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ingest/workout", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

// TestAPIKeyAuth_WrongKey verifies a mismatched key yields 403.
func TestAPIKeyAuth_WrongKey(t *testing.T) {
	h := APIKeyAuth("secret")(okHandler())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ingest/workout", nil)
	req.Header.Set("X-API-Key", "not-the-secret")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

// TestAPIKeyAuth_ValidKey verifies the request passes through.
func TestAPIKeyAuth_ValidKey(t *testing.T) {
	h := APIKeyAuth("secret")(okHandler())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ingest/workout", nil)
	req.Header.Set("X-API-Key", "secret")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

// TestCORS_Preflight verifies OPTIONS requests short-circuit with 204 and
// the allow headers set.
func TestCORS_Preflight(t *testing.T) {
	h := CORS(okHandler())
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/readiness", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS origin header")
	}
}

// TestRequestLogging_CapturesStatus verifies the status writer records the
// handler's response code (observable via the wrapped recorder).
func TestRequestLogging_CapturesStatus(t *testing.T) {
	log := slog.New(slog.DiscardHandler)
	h := RequestLogging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/readiness", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want 418", rec.Code)
	}
}

// TestAsOf verifies date parsing falls back to now on absent or malformed
// input.
func TestAsOf(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/readiness?date=2026-03-10", nil)
	got := asOf(req)
	if got.Format("2006-01-02") != "2026-03-10" {
		t.Errorf("asOf = %s, want 2026-03-10", got.Format("2006-01-02"))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/readiness?date=not-a-date", nil)
	if asOf(req).IsZero() {
		t.Error("malformed date should fall back to now, not zero time")
	}
}

// TestQueryInt verifies defaulting and rejection of non-positive values.
func TestQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/fitness?days=90", nil)
	if got := queryInt(req, "days", 42); got != 90 {
		t.Errorf("queryInt = %d, want 90", got)
	}
	req = httptest.NewRequest(http.MethodGet, "/api/v1/fitness?days=-5", nil)
	if got := queryInt(req, "days", 42); got != 42 {
		t.Errorf("queryInt negative = %d, want default 42", got)
	}
	req = httptest.NewRequest(http.MethodGet, "/api/v1/fitness", nil)
	if got := queryInt(req, "days", 42); got != 42 {
		t.Errorf("queryInt absent = %d, want default 42", got)
	}
}
