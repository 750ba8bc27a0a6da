package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"salespulse/internal/config"
	"salespulse/internal/infrastructure"
	"salespulse/pkg/contracts"
)

// HealthService reports service liveness and dataset availability
type HealthService struct {
	version   string
	config    *config.Config
	startTime time.Time
	logger    *slog.Logger
}

// NewHealthService creates a new health service
func NewHealthService(version string, cfg *config.Config, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		config:    cfg,
		startTime: time.Now(),
		logger:    infrastructure.WithComponent(logger, "health_service"),
	}
}

// DatasetStatus reports whether one dataset file is present on disk
type DatasetStatus struct {
	Path      string `json:"path"`
	Available bool   `json:"available"`
}

// HealthStatus is the health check response
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Build     contracts.VersionInfo    `json:"build"`
	Uptime    string                   `json:"uptime"`
	Runtime   map[string]any           `json:"runtime,omitempty"`
	Datasets  map[string]DatasetStatus `json:"datasets"`
}

// Check reports the current health. The service is "healthy" when both
// dataset files exist and "degraded" when either is missing; a missing
// dataset never takes the service down.
func (s *HealthService) Check(ctx context.Context) *HealthStatus {
	datasets := map[string]DatasetStatus{
		"sales": {
			Path:      s.config.GetSalesFile(),
			Available: config.FileExists(s.config.GetSalesFile()),
		},
		"customers": {
			Path:      s.config.GetCustomerFile(),
			Available: config.FileExists(s.config.GetCustomerFile()),
		},
	}

	status := "healthy"
	for name, d := range datasets {
		if !d.Available {
			status = "degraded"
			s.logger.WarnContext(ctx, "dataset file missing",
				slog.String("dataset", name),
				slog.String("path", d.Path))
		}
	}

	return &HealthStatus{
		Status:    status,
		Timestamp: time.Now(),
		Version:   s.version,
		Build:     contracts.GetVersionInfo(),
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Runtime: map[string]any{
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
		Datasets: datasets,
	}
}
