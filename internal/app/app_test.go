package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestApplication assembles an application around a temp data dir
// without going through config.Load or the OTel bootstrap.
func newTestApplication(t *testing.T) *Application {
	t.Helper()
	dir := t.TempDir()

	cfg := &config.Config{}
	cfg.Server.Port = 0
	cfg.Server.ReadTimeout = 15 * time.Second
	cfg.Paths.ExecutableDir = dir
	cfg.Paths.DataDir = "data"
	cfg.Paths.WebDir = "web"
	cfg.Paths.LogsDir = "logs"
	cfg.Paths.SalesFile = "cleaned_sales_data.csv"
	cfg.Paths.CustomerFile = "customer_rfm_data.csv"
	cfg.Dashboard.TopProducts = 10
	require.NoError(t, os.MkdirAll(cfg.GetDataDir(), 0755))

	a := &Application{
		Config: cfg,
		Logger: testLogger(),
	}
	a.initializeServices()
	a.setupRouter()
	return a
}

func TestRouterHealthEndpoint(t *testing.T) {
	a := newTestApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "degraded")
}

func TestRouterSalesSummaryWithData(t *testing.T) {
	a := newTestApplication(t)
	require.NoError(t, os.WriteFile(a.Config.GetSalesFile(),
		[]byte("Product Name,Quantity,Date,Price\nLaptop,2,2023-01-01,100\n"), 0644))

	req := httptest.NewRequest(http.MethodGet, "/api/sales/summary", nil)
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_revenue":200`)
}

func TestRouterRefreshThenSummary(t *testing.T) {
	a := newTestApplication(t)
	path := a.Config.GetSalesFile()
	require.NoError(t, os.WriteFile(path,
		[]byte("Product Name,Quantity,Date,Price\nLaptop,2,2023-01-01,100\n"), 0644))

	req := httptest.NewRequest(http.MethodGet, "/api/sales/summary", nil)
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, os.WriteFile(path,
		[]byte("Product Name,Quantity,Date,Price\nLaptop,2,2023-01-01,100\nMouse,1,2023-01-02,10\n"), 0644))

	req = httptest.NewRequest(http.MethodPost, "/api/datasets/refresh", nil)
	rec = httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/sales/summary", nil)
	rec = httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_revenue":210`)
}

func TestRouterUnknownAPIRoute(t *testing.T) {
	a := newTestApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
}

func TestStaticServingDisabledWithoutWebDir(t *testing.T) {
	a := newTestApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStaticServingIndex(t *testing.T) {
	dir := t.TempDir()

	cfg := &config.Config{}
	cfg.Server.ReadTimeout = 15 * time.Second
	cfg.Paths.ExecutableDir = dir
	cfg.Paths.DataDir = "data"
	cfg.Paths.WebDir = "web"
	cfg.Paths.SalesFile = "cleaned_sales_data.csv"
	cfg.Paths.CustomerFile = "customer_rfm_data.csv"
	cfg.Dashboard.TopProducts = 10
	require.NoError(t, os.MkdirAll(cfg.GetWebDir(), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.GetWebDir(), "index.html"),
		[]byte("<html><body>Sales Performance Dashboard</body></html>"), 0644))

	a := &Application{Config: cfg, Logger: testLogger()}
	a.initializeServices()
	a.setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sales Performance Dashboard")
}
