package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"salespulse/internal/services"
)

type stubRefresher struct {
	called int
}

func (s *stubRefresher) Refresh(ctx context.Context) { s.called++ }

func TestDatasetRefreshEndpoint(t *testing.T) {
	stub := &stubRefresher{}
	handler := NewDatasetHandler(stub, testLogger(), testErrorHandler())

	req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, stub.called)
	assert.Contains(t, rec.Body.String(), "success")
}

func TestDatasetRefreshEndpointRejectsGet(t *testing.T) {
	handler := NewDatasetHandler(&stubRefresher{}, testLogger(), testErrorHandler())

	req := httptest.NewRequest(http.MethodGet, "/refresh", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

type stubHealth struct {
	status *services.HealthStatus
}

func (s *stubHealth) Check(ctx context.Context) *services.HealthStatus { return s.status }

func TestHealthEndpoint(t *testing.T) {
	stub := &stubHealth{status: &services.HealthStatus{Status: "healthy", Version: "dev"}}
	handler := NewHealthHandler(stub, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}
