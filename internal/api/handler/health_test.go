package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Name() string                   { return "memory" }
func (p stubPinger) Ping(ctx context.Context) error { return p.err }

func TestHealthHandler_Liveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler(stubPinger{}, zerolog.Nop()).Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	cases := []struct {
		name       string
		pingErr    error
		wantCode   int
		wantStatus string
	}{
		{"healthy", nil, http.StatusOK, "ok"},
		{"store down", errors.New("dial tcp: refused"), http.StatusServiceUnavailable, "degraded"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

			if err := NewHealthHandler(stubPinger{err: tc.pingErr}, zerolog.Nop()).Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}

			var resp readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Status != tc.wantStatus {
				t.Fatalf("expected status %q, got %q", tc.wantStatus, resp.Status)
			}
			if _, ok := resp.Dependencies["memory"]; !ok {
				t.Fatalf("expected memory dependency, got %+v", resp.Dependencies)
			}
			if tc.pingErr != nil && strings.Contains(rec.Body.String(), tc.pingErr.Error()) {
				t.Fatalf("store error leaked to the client: %s", rec.Body.String())
			}
		})
	}
}
