package services

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"salespulse/internal/cleaning"
	"salespulse/internal/config"
	"salespulse/internal/infrastructure"
	"salespulse/internal/tableio"
	"salespulse/pkg/contracts/domain"
)

// DatasetService loads the cleaned CSV datasets and exposes them as
// typed records for the dashboard services. Missing files are reported
// as empty datasets, not errors, so dashboards render placeholders.
type DatasetService struct {
	config  *config.Config
	cache   *tableio.Cache
	logger  *slog.Logger
	metrics *infrastructure.PipelineMetrics
}

// NewDatasetService creates a new dataset service
func NewDatasetService(cfg *config.Config, cache *tableio.Cache, logger *slog.Logger) *DatasetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetService{
		config: cfg,
		cache:  cache,
		logger: infrastructure.WithComponent(logger, "dataset_service"),
	}
}

// SetMetrics attaches pipeline metrics. Optional; nil metrics disable recording.
func (s *DatasetService) SetMetrics(m *infrastructure.PipelineMetrics) {
	s.metrics = m
}

// Sales returns the typed sales dataset. Rows whose Date or Quantity
// cannot be coerced are dropped. A missing Price column defaults every
// price to 1; missing price cells are filled with the column median.
func (s *DatasetService) Sales(ctx context.Context) ([]domain.SalesRecord, error) {
	table, fresh, err := s.loadTable(ctx, s.config.GetSalesFile())
	if err != nil || table.IsEmpty() {
		return []domain.SalesRecord{}, err
	}

	hasPrice := table.HasColumn(domain.ColPrice)
	if !hasPrice {
		s.logger.WarnContext(ctx, "price column not found, revenue will be based on quantity only",
			slog.String("path", s.config.GetSalesFile()))
	}

	type pending struct {
		record   domain.SalesRecord
		priceSet bool
	}

	rows := make([]pending, 0, table.Len())
	prices := make([]float64, 0, table.Len())

	for _, row := range table.Rows {
		date, ok := cleaning.ParseDate(row[domain.ColDate])
		if !ok {
			continue
		}
		qty, err := strconv.ParseFloat(strings.TrimSpace(row[domain.ColQuantity]), 64)
		if err != nil {
			continue
		}

		p := pending{record: domain.SalesRecord{
			ProductName: row[domain.ColProductName],
			Quantity:    qty,
			Date:        date,
		}}

		if hasPrice {
			if price, err := strconv.ParseFloat(strings.TrimSpace(row[domain.ColPrice]), 64); err == nil {
				p.record.Price = price
				p.priceSet = true
				prices = append(prices, price)
			}
		} else {
			p.record.Price = 1
			p.priceSet = true
		}
		rows = append(rows, p)
	}

	// Missing prices take the median of the prices that parsed
	priceMedian, medianOK := median(prices)

	records := make([]domain.SalesRecord, 0, len(rows))
	for _, p := range rows {
		if !p.priceSet {
			if !medianOK {
				continue
			}
			p.record.Price = priceMedian
		}
		p.record.Revenue = p.record.Quantity * p.record.Price
		records = append(records, p.record)
	}

	if fresh {
		s.metrics.RecordCleaning(ctx, "sales", int64(len(records)), int64(table.Len()-len(records)))
	}
	s.logger.DebugContext(ctx, "sales dataset loaded",
		slog.Int("rows", len(records)),
		slog.Bool("has_price", hasPrice))
	return records, nil
}

// Customers returns the typed customer RFM dataset. Rows with any
// non-numeric RFM value or score are dropped.
func (s *DatasetService) Customers(ctx context.Context) ([]domain.CustomerRecord, error) {
	table, fresh, err := s.loadTable(ctx, s.config.GetCustomerFile())
	if err != nil || table.IsEmpty() {
		return []domain.CustomerRecord{}, err
	}

	records := make([]domain.CustomerRecord, 0, table.Len())
	for _, row := range table.Rows {
		recency, err1 := strconv.ParseFloat(strings.TrimSpace(row[domain.ColRecency]), 64)
		frequency, err2 := strconv.ParseFloat(strings.TrimSpace(row[domain.ColFrequency]), 64)
		monetary, err3 := strconv.ParseFloat(strings.TrimSpace(row[domain.ColMonetary]), 64)
		rScore, err4 := strconv.Atoi(strings.TrimSpace(row[domain.ColRScore]))
		fScore, err5 := strconv.Atoi(strings.TrimSpace(row[domain.ColFScore]))
		mScore, err6 := strconv.Atoi(strings.TrimSpace(row[domain.ColMScore]))
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil || err6 != nil {
			continue
		}

		records = append(records, domain.CustomerRecord{
			CustomerID: row[domain.ColCustomerID],
			Segment:    row[domain.ColSegment],
			Recency:    recency,
			Frequency:  frequency,
			Monetary:   monetary,
			RScore:     rScore,
			FScore:     fScore,
			MScore:     mScore,
		})
	}

	if fresh {
		s.metrics.RecordCleaning(ctx, "customers", int64(len(records)), int64(table.Len()-len(records)))
	}
	s.logger.DebugContext(ctx, "customer dataset loaded", slog.Int("rows", len(records)))
	return records, nil
}

// Refresh drops every cached dataset so the next read reloads from disk
func (s *DatasetService) Refresh(ctx context.Context) {
	s.cache.InvalidateAll()
	s.metrics.RecordDatasetReload(ctx, "manual")
	s.logger.InfoContext(ctx, "dataset cache invalidated")
}

func (s *DatasetService) loadTable(ctx context.Context, path string) (domain.Table, bool, error) {
	table, fresh, err := s.cache.GetFresh(path)
	switch {
	case err == nil:
		return table, fresh, nil
	case errors.Is(err, tableio.ErrFileNotFound), errors.Is(err, tableio.ErrEmptyFile):
		s.logger.WarnContext(ctx, "dataset missing or empty, serving empty table",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return domain.Table{}, false, nil
	default:
		infrastructure.WithError(s.logger, err).ErrorContext(ctx, "dataset load failed",
			slog.String("path", path))
		return domain.Table{}, false, ErrDatasetUnavailable
	}
}

// median returns the median of values and whether it is defined
func median(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2, true
	}
	return sorted[mid], true
}
