package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"salespulse/internal/infrastructure"
	"salespulse/pkg/contracts/domain"
)

// SalesDataProvider supplies the typed sales dataset
type SalesDataProvider interface {
	Sales(ctx context.Context) ([]domain.SalesRecord, error)
}

// SalesService computes the sales dashboard aggregates
type SalesService struct {
	data        SalesDataProvider
	logger      *slog.Logger
	topProducts int
}

// NewSalesService creates a new sales service
func NewSalesService(data SalesDataProvider, logger *slog.Logger, topProducts int) *SalesService {
	if logger == nil {
		logger = slog.Default()
	}
	if topProducts <= 0 {
		topProducts = 10
	}
	return &SalesService{
		data:        data,
		logger:      infrastructure.WithComponent(logger, "sales_service"),
		topProducts: topProducts,
	}
}

// SalesFilter narrows the dataset before aggregation. Zero From/To
// leave that bound open; nil Products selects every product.
type SalesFilter struct {
	From     time.Time
	To       time.Time
	Products []string
}

// ProductQuantity is one bar of the top products chart
type ProductQuantity struct {
	Product  string  `json:"product"`
	Quantity float64 `json:"quantity"`
}

// DailyRevenue is one point of the revenue trend chart
type DailyRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

// SalesSummary is the full sales dashboard payload
type SalesSummary struct {
	TotalQuantity  float64           `json:"total_quantity"`
	TotalRevenue   float64           `json:"total_revenue"`
	UniqueProducts int               `json:"unique_products"`
	TopProducts    []ProductQuantity `json:"top_products"`
	RevenueTrend   []DailyRevenue    `json:"revenue_trend"`
	Rows           int               `json:"rows"`
}

// Summary aggregates the filtered dataset. An empty selection yields
// zero metrics and empty chart series rather than an error.
func (s *SalesService) Summary(ctx context.Context, filter SalesFilter) (*SalesSummary, error) {
	records, err := s.data.Sales(ctx)
	if err != nil {
		return nil, err
	}

	filtered := applySalesFilter(records, filter)

	summary := &SalesSummary{
		TopProducts:  []ProductQuantity{},
		RevenueTrend: []DailyRevenue{},
		Rows:         len(filtered),
	}
	if len(filtered) == 0 {
		s.logger.DebugContext(ctx, "no sales rows after filter")
		return summary, nil
	}

	productTotals := make(map[string]float64)
	productOrder := make([]string, 0)
	dailyTotals := make(map[string]float64)

	for _, r := range filtered {
		summary.TotalQuantity += r.Quantity
		summary.TotalRevenue += r.Revenue

		if _, seen := productTotals[r.ProductName]; !seen {
			productOrder = append(productOrder, r.ProductName)
		}
		productTotals[r.ProductName] += r.Quantity
		dailyTotals[r.Date.Format(domain.DateFormat)] += r.Revenue
	}
	summary.UniqueProducts = len(productTotals)

	top := make([]ProductQuantity, 0, len(productOrder))
	for _, p := range productOrder {
		top = append(top, ProductQuantity{Product: p, Quantity: productTotals[p]})
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].Quantity > top[j].Quantity })
	if len(top) > s.topProducts {
		top = top[:s.topProducts]
	}
	summary.TopProducts = top

	days := make([]string, 0, len(dailyTotals))
	for day := range dailyTotals {
		days = append(days, day)
	}
	sort.Strings(days)
	for _, day := range days {
		summary.RevenueTrend = append(summary.RevenueTrend, DailyRevenue{Date: day, Revenue: dailyTotals[day]})
	}

	return summary, nil
}

// FilterOptions holds the values the dashboard filter controls are
// built from. MinDate and MaxDate are empty when the dataset is.
type FilterOptions struct {
	Products []string `json:"products"`
	MinDate  string   `json:"min_date,omitempty"`
	MaxDate  string   `json:"max_date,omitempty"`
}

// Products returns the distinct product names of the dataset, sorted,
// together with the dataset's date bounds.
func (s *SalesService) Products(ctx context.Context) (*FilterOptions, error) {
	records, err := s.data.Sales(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	options := &FilterOptions{Products: make([]string, 0)}
	var minDate, maxDate time.Time
	for _, r := range records {
		if minDate.IsZero() || r.Date.Before(minDate) {
			minDate = r.Date
		}
		if maxDate.IsZero() || r.Date.After(maxDate) {
			maxDate = r.Date
		}
		if _, ok := seen[r.ProductName]; ok {
			continue
		}
		seen[r.ProductName] = struct{}{}
		options.Products = append(options.Products, r.ProductName)
	}
	sort.Strings(options.Products)
	if !minDate.IsZero() {
		options.MinDate = minDate.Format(domain.DateFormat)
		options.MaxDate = maxDate.Format(domain.DateFormat)
	}
	return options, nil
}

func applySalesFilter(records []domain.SalesRecord, filter SalesFilter) []domain.SalesRecord {
	var selected map[string]struct{}
	if len(filter.Products) > 0 {
		selected = make(map[string]struct{}, len(filter.Products))
		for _, p := range filter.Products {
			selected[p] = struct{}{}
		}
	}

	filtered := make([]domain.SalesRecord, 0, len(records))
	for _, r := range records {
		if !filter.From.IsZero() && r.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && r.Date.After(filter.To) {
			continue
		}
		if selected != nil {
			if _, ok := selected[r.ProductName]; !ok {
				continue
			}
		}
		filtered = append(filtered, r)
	}
	return filtered
}
