package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/internal/services"
)

type stubCustomerService struct {
	summary     *services.CustomerSummary
	segments    []string
	err         error
	lastSegment string
}

func (s *stubCustomerService) Summary(ctx context.Context, segment string) (*services.CustomerSummary, error) {
	s.lastSegment = segment
	return s.summary, s.err
}

func (s *stubCustomerService) Segments(ctx context.Context) ([]string, error) {
	return s.segments, s.err
}

func TestCustomerSummaryEndpoint(t *testing.T) {
	avg := 35.0
	stub := &stubCustomerService{summary: &services.CustomerSummary{
		TotalCustomers: 3,
		AvgRecency:     &avg,
	}}
	handler := NewCustomerHandler(stub, testLogger(), testErrorHandler())

	req := httptest.NewRequest(http.MethodGet, "/summary?segment=Champions", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Champions", stub.lastSegment)

	var body struct {
		Status string                   `json:"status"`
		Data   services.CustomerSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Data.TotalCustomers)
	require.NotNil(t, body.Data.AvgRecency)
	assert.Equal(t, 35.0, *body.Data.AvgRecency)
}

func TestCustomerSummaryEndpointEmptySelection(t *testing.T) {
	stub := &stubCustomerService{summary: &services.CustomerSummary{}}
	handler := NewCustomerHandler(stub, testLogger(), testErrorHandler())

	req := httptest.NewRequest(http.MethodGet, "/summary?segment=Ghost", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	// Empty selections are data states, not errors
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data services.CustomerSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Zero(t, body.Data.TotalCustomers)
	assert.Nil(t, body.Data.AvgRecency)
}

func TestCustomerSegmentsEndpoint(t *testing.T) {
	stub := &stubCustomerService{segments: []string{"At Risk", "Champions"}}
	handler := NewCustomerHandler(stub, testLogger(), testErrorHandler())

	req := httptest.NewRequest(http.MethodGet, "/segments", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data  []string `json:"data"`
		Count int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"At Risk", "Champions"}, body.Data)
	assert.Equal(t, 2, body.Count)
}

func TestCustomerSummaryEndpointServiceError(t *testing.T) {
	stub := &stubCustomerService{err: services.ErrDatasetUnavailable}
	handler := NewCustomerHandler(stub, testLogger(), testErrorHandler())

	req := httptest.NewRequest(http.MethodGet, "/summary", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
