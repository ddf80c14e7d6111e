package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func serveReadiness(t *testing.T, h *ReadinessHandler) (*httptest.ResponseRecorder, readinessResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	if err := h.Readiness(e.NewContext(req, rec)); err != nil {
		t.Fatalf("readiness: %v", err)
	}
	var body readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return rec, body
}

func TestReadiness_AllHealthy(t *testing.T) {
	ok := func(context.Context) error { return nil }
	rec, body := serveReadiness(t, NewReadinessHandler(Check{Name: "mongodb", Ping: ok}, Check{Name: "redis", Ping: ok}))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body.Status != "ok" || len(body.Dependencies) != 2 {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestReadiness_Degraded(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }
	rec, body := serveReadiness(t, NewReadinessHandler(Check{Name: "mongodb", Ping: ok}, Check{Name: "redis", Ping: down}))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if body.Status != "degraded" {
		t.Errorf("expected degraded, got %s", body.Status)
	}
	if dep := body.Dependencies["redis"]; dep.Status != "unhealthy" || dep.Error != "connection refused" {
		t.Errorf("unexpected redis status: %+v", dep)
	}
}

func TestReadiness_NoDependencies(t *testing.T) {
	rec, body := serveReadiness(t, NewReadinessHandler())
	if rec.Code != http.StatusOK || body.Status != "ok" {
		t.Errorf("in-memory deployment must be ready: %d %+v", rec.Code, body)
	}
}

func TestLiveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	if err := NewHealthHandler().Liveness(e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)); err != nil {
		t.Fatalf("liveness: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
