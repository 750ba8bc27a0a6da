package services

import (
	"context"
	"log/slog"
	"sort"

	"salespulse/internal/infrastructure"
	"salespulse/pkg/contracts/domain"
)

// CustomerDataProvider supplies the typed customer RFM dataset
type CustomerDataProvider interface {
	Customers(ctx context.Context) ([]domain.CustomerRecord, error)
}

// CustomerService computes the customer segmentation dashboard aggregates
type CustomerService struct {
	data   CustomerDataProvider
	logger *slog.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(data CustomerDataProvider, logger *slog.Logger) *CustomerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CustomerService{
		data:   data,
		logger: infrastructure.WithComponent(logger, "customer_service"),
	}
}

// SegmentCount is one bar of the segment breakdown chart
type SegmentCount struct {
	Segment   string `json:"segment"`
	Customers int    `json:"customers"`
}

// ScoreHistogram counts customers per RFM score bin. Bins covers the
// score domain 1 through 5 in order.
type ScoreHistogram struct {
	Score string `json:"score"`
	Bins  [5]int `json:"bins"`
}

// CustomerSummary is the full customer dashboard payload. The averages
// are nil when the selection is empty so clients can render "N/A".
type CustomerSummary struct {
	TotalCustomers  int            `json:"total_customers"`
	AvgRecency      *float64       `json:"avg_recency"`
	AvgFrequency    *float64       `json:"avg_frequency"`
	AvgMonetary     *float64       `json:"avg_monetary"`
	Segments        []SegmentCount `json:"segments"`
	RecencyScores   ScoreHistogram `json:"recency_scores"`
	FrequencyScores ScoreHistogram `json:"frequency_scores"`
	MonetaryScores  ScoreHistogram `json:"monetary_scores"`
	Rows            int            `json:"rows"`
}

// Summary aggregates the dataset, optionally restricted to one
// segment. An empty segment selects all customers.
func (s *CustomerService) Summary(ctx context.Context, segment string) (*CustomerSummary, error) {
	records, err := s.data.Customers(ctx)
	if err != nil {
		return nil, err
	}

	if segment != "" {
		filtered := make([]domain.CustomerRecord, 0, len(records))
		for _, r := range records {
			if r.Segment == segment {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}

	summary := &CustomerSummary{
		Segments:        []SegmentCount{},
		RecencyScores:   ScoreHistogram{Score: "R_Score"},
		FrequencyScores: ScoreHistogram{Score: "F_Score"},
		MonetaryScores:  ScoreHistogram{Score: "M_Score"},
		Rows:            len(records),
	}
	if len(records) == 0 {
		s.logger.DebugContext(ctx, "no customers after filter", slog.String("segment", segment))
		return summary, nil
	}

	customers := make(map[string]struct{})
	segmentTotals := make(map[string]int)
	segmentOrder := make([]string, 0)
	var sumRecency, sumFrequency, sumMonetary float64

	for _, r := range records {
		customers[r.CustomerID] = struct{}{}
		sumRecency += r.Recency
		sumFrequency += r.Frequency
		sumMonetary += r.Monetary

		if _, seen := segmentTotals[r.Segment]; !seen {
			segmentOrder = append(segmentOrder, r.Segment)
		}
		segmentTotals[r.Segment]++

		binScore(&summary.RecencyScores, r.RScore)
		binScore(&summary.FrequencyScores, r.FScore)
		binScore(&summary.MonetaryScores, r.MScore)
	}

	summary.TotalCustomers = len(customers)
	n := float64(len(records))
	summary.AvgRecency = ptr(sumRecency / n)
	summary.AvgFrequency = ptr(sumFrequency / n)
	summary.AvgMonetary = ptr(sumMonetary / n)

	sort.Strings(segmentOrder)
	for _, seg := range segmentOrder {
		summary.Segments = append(summary.Segments, SegmentCount{Segment: seg, Customers: segmentTotals[seg]})
	}

	return summary, nil
}

// Segments returns the distinct segment names of the dataset, sorted,
// for populating the dashboard filter controls.
func (s *CustomerService) Segments(ctx context.Context) ([]string, error) {
	records, err := s.data.Customers(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	segments := make([]string, 0)
	for _, r := range records {
		if _, ok := seen[r.Segment]; ok {
			continue
		}
		seen[r.Segment] = struct{}{}
		segments = append(segments, r.Segment)
	}
	sort.Strings(segments)
	return segments, nil
}

// binScore increments the histogram bin for score; out-of-domain
// scores are ignored.
func binScore(h *ScoreHistogram, score int) {
	if score < 1 || score > 5 {
		return
	}
	h.Bins[score-1]++
}

func ptr(v float64) *float64 { return &v }
