package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/pkg/contracts/domain"
)

type stubSalesData struct {
	records []domain.SalesRecord
	err     error
}

func (s *stubSalesData) Sales(ctx context.Context) ([]domain.SalesRecord, error) {
	return s.records, s.err
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func sale(product string, qty float64, date string, price float64) domain.SalesRecord {
	return domain.SalesRecord{
		ProductName: product,
		Quantity:    qty,
		Date:        day(date),
		Price:       price,
		Revenue:     qty * price,
	}
}

func TestSalesSummary(t *testing.T) {
	data := &stubSalesData{records: []domain.SalesRecord{
		sale("Laptop", 2, "2023-01-01", 100),
		sale("Mouse", 3, "2023-01-01", 10),
		sale("Laptop", 1, "2023-01-02", 100),
	}}
	svc := NewSalesService(data, testLogger(), 10)

	sum, err := svc.Summary(context.Background(), SalesFilter{})
	require.NoError(t, err)

	assert.Equal(t, float64(6), sum.TotalQuantity)
	assert.Equal(t, float64(330), sum.TotalRevenue)
	assert.Equal(t, 2, sum.UniqueProducts)
	assert.Equal(t, 3, sum.Rows)

	require.Len(t, sum.TopProducts, 2)
	assert.Equal(t, ProductQuantity{Product: "Laptop", Quantity: 3}, sum.TopProducts[0])
	assert.Equal(t, ProductQuantity{Product: "Mouse", Quantity: 3}, sum.TopProducts[1])

	require.Len(t, sum.RevenueTrend, 2)
	assert.Equal(t, DailyRevenue{Date: "2023-01-01", Revenue: 230}, sum.RevenueTrend[0])
	assert.Equal(t, DailyRevenue{Date: "2023-01-02", Revenue: 100}, sum.RevenueTrend[1])
}

func TestSalesSummaryDateFilter(t *testing.T) {
	data := &stubSalesData{records: []domain.SalesRecord{
		sale("Laptop", 2, "2023-01-01", 100),
		sale("Mouse", 3, "2023-02-01", 10),
		sale("Keyboard", 1, "2023-03-01", 20),
	}}
	svc := NewSalesService(data, testLogger(), 10)

	sum, err := svc.Summary(context.Background(), SalesFilter{
		From: day("2023-01-15"),
		To:   day("2023-02-15"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Rows)
	assert.Equal(t, float64(3), sum.TotalQuantity)
	assert.Equal(t, float64(30), sum.TotalRevenue)
}

func TestSalesSummaryProductFilter(t *testing.T) {
	data := &stubSalesData{records: []domain.SalesRecord{
		sale("Laptop", 2, "2023-01-01", 100),
		sale("Mouse", 3, "2023-01-01", 10),
	}}
	svc := NewSalesService(data, testLogger(), 10)

	sum, err := svc.Summary(context.Background(), SalesFilter{Products: []string{"Mouse"}})
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Rows)
	assert.Equal(t, 1, sum.UniqueProducts)
	require.Len(t, sum.TopProducts, 1)
	assert.Equal(t, "Mouse", sum.TopProducts[0].Product)
}

func TestSalesSummaryEmptySelection(t *testing.T) {
	data := &stubSalesData{records: []domain.SalesRecord{
		sale("Laptop", 2, "2023-01-01", 100),
	}}
	svc := NewSalesService(data, testLogger(), 10)

	sum, err := svc.Summary(context.Background(), SalesFilter{Products: []string{"Nope"}})
	require.NoError(t, err)

	assert.Equal(t, 0, sum.Rows)
	assert.Zero(t, sum.TotalQuantity)
	assert.Zero(t, sum.TotalRevenue)
	assert.Zero(t, sum.UniqueProducts)
	assert.Empty(t, sum.TopProducts)
	assert.Empty(t, sum.RevenueTrend)
}

func TestSalesSummaryTopProductsTruncated(t *testing.T) {
	records := []domain.SalesRecord{}
	for i := 0; i < 12; i++ {
		records = append(records, sale(string(rune('A'+i)), float64(i+1), "2023-01-01", 1))
	}
	svc := NewSalesService(&stubSalesData{records: records}, testLogger(), 10)

	sum, err := svc.Summary(context.Background(), SalesFilter{})
	require.NoError(t, err)

	require.Len(t, sum.TopProducts, 10)
	assert.Equal(t, "L", sum.TopProducts[0].Product)
	assert.Equal(t, float64(12), sum.TopProducts[0].Quantity)
}

func TestSalesSummaryDataError(t *testing.T) {
	svc := NewSalesService(&stubSalesData{err: errors.New("boom")}, testLogger(), 10)

	_, err := svc.Summary(context.Background(), SalesFilter{})
	assert.Error(t, err)
}

func TestSalesProducts(t *testing.T) {
	data := &stubSalesData{records: []domain.SalesRecord{
		sale("Mouse", 1, "2023-01-01", 1),
		sale("Laptop", 1, "2023-01-01", 1),
		sale("Mouse", 2, "2023-01-02", 1),
	}}
	svc := NewSalesService(data, testLogger(), 10)

	options, err := svc.Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Laptop", "Mouse"}, options.Products)
	assert.Equal(t, "2023-01-01", options.MinDate)
	assert.Equal(t, "2023-01-02", options.MaxDate)
}
