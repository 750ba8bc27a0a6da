package services

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/internal/config"
	"salespulse/internal/tableio"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestDatasetService wires a dataset service against a temp data
// dir and returns the service plus the dir for writing fixtures into.
func newTestDatasetService(t *testing.T) (*DatasetService, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Paths.ExecutableDir = dir
	cfg.Paths.DataDir = "data"
	cfg.Paths.SalesFile = "cleaned_sales_data.csv"
	cfg.Paths.CustomerFile = "customer_rfm_data.csv"
	require.NoError(t, os.MkdirAll(cfg.GetDataDir(), 0755))

	cache := tableio.NewCache(tableio.NewLoader(testLogger()), testLogger())
	return NewDatasetService(cfg, cache, testLogger()), cfg.GetDataDir()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDatasetServiceSales(t *testing.T) {
	svc, dataDir := newTestDatasetService(t)
	writeFile(t, dataDir, "cleaned_sales_data.csv",
		"Product Name,Quantity,Date,Price\n"+
			"Laptop,2,2023-01-01,100\n"+
			"Mouse,3,2023-01-02,10\n")

	records, err := svc.Sales(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Laptop", records[0].ProductName)
	assert.Equal(t, float64(2), records[0].Quantity)
	assert.Equal(t, float64(100), records[0].Price)
	assert.Equal(t, float64(200), records[0].Revenue)
	assert.Equal(t, "2023-01-01", records[0].Date.Format("2006-01-02"))
}

func TestDatasetServiceSalesMissingFile(t *testing.T) {
	svc, _ := newTestDatasetService(t)

	records, err := svc.Sales(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDatasetServiceSalesDropsBadRows(t *testing.T) {
	svc, dataDir := newTestDatasetService(t)
	writeFile(t, dataDir, "cleaned_sales_data.csv",
		"Product Name,Quantity,Date,Price\n"+
			"Laptop,2,2023-01-01,100\n"+
			"Mouse,oops,2023-01-02,10\n"+
			"Keyboard,4,not-a-date,20\n")

	records, err := svc.Sales(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Laptop", records[0].ProductName)
}

func TestDatasetServiceSalesPriceMedianFill(t *testing.T) {
	svc, dataDir := newTestDatasetService(t)
	writeFile(t, dataDir, "cleaned_sales_data.csv",
		"Product Name,Quantity,Date,Price\n"+
			"A,1,2023-01-01,10\n"+
			"B,1,2023-01-02,\n"+
			"C,1,2023-01-03,30\n")

	records, err := svc.Sales(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)
	// Median of 10 and 30
	assert.Equal(t, float64(20), records[1].Price)
	assert.Equal(t, float64(20), records[1].Revenue)
}

func TestDatasetServiceSalesWithoutPriceColumn(t *testing.T) {
	svc, dataDir := newTestDatasetService(t)
	writeFile(t, dataDir, "cleaned_sales_data.csv",
		"Product Name,Quantity,Date\n"+
			"Laptop,5,2023-01-01\n")

	records, err := svc.Sales(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, float64(1), records[0].Price)
	assert.Equal(t, float64(5), records[0].Revenue)
}

func TestDatasetServiceCustomers(t *testing.T) {
	svc, dataDir := newTestDatasetService(t)
	writeFile(t, dataDir, "customer_rfm_data.csv",
		"Customer ID,Segment,Recency,Frequency,Monetary,R_Score,F_Score,M_Score\n"+
			"C1,Champions,5,12,900.50,5,5,5\n"+
			"C2,At Risk,90,2,50,1,2,1\n"+
			"C3,Broken,x,2,50,1,2,1\n")

	records, err := svc.Customers(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "C1", records[0].CustomerID)
	assert.Equal(t, "Champions", records[0].Segment)
	assert.Equal(t, float64(900.50), records[0].Monetary)
	assert.Equal(t, 5, records[0].RScore)
}

func TestDatasetServiceRefresh(t *testing.T) {
	svc, dataDir := newTestDatasetService(t)
	path := writeFile(t, dataDir, "cleaned_sales_data.csv",
		"Product Name,Quantity,Date,Price\nLaptop,2,2023-01-01,100\n")

	records, err := svc.Sales(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	// Same size and mtime could serve the cached copy; an explicit
	// refresh must force the reload regardless.
	require.NoError(t, os.WriteFile(path,
		[]byte("Product Name,Quantity,Date,Price\nLaptop,2,2023-01-01,100\nMouse,3,2023-01-02,10\n"), 0644))
	svc.Refresh(context.Background())

	records, err = svc.Sales(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
