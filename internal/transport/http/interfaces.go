package http

import (
	"context"

	"salespulse/internal/services"
)

// SalesReader is the sales dashboard surface consumed by handlers
type SalesReader interface {
	Summary(ctx context.Context, filter services.SalesFilter) (*services.SalesSummary, error)
	Products(ctx context.Context) (*services.FilterOptions, error)
}

// CustomerReader is the customer dashboard surface consumed by handlers
type CustomerReader interface {
	Summary(ctx context.Context, segment string) (*services.CustomerSummary, error)
	Segments(ctx context.Context) ([]string, error)
}

// DatasetRefresher invalidates cached datasets
type DatasetRefresher interface {
	Refresh(ctx context.Context)
}

// HealthChecker reports service health
type HealthChecker interface {
	Check(ctx context.Context) *services.HealthStatus
}
