package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "salespulse/internal/errors"
	"salespulse/internal/infrastructure"
	"salespulse/internal/middleware"
)

// DatasetHandler exposes cache management for the datasets
type DatasetHandler struct {
	service      DatasetRefresher
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(service DatasetRefresher, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DatasetHandler {
	return &DatasetHandler{
		service:      service,
		logger:       infrastructure.WithComponent(logger, "dataset_handler"),
		errorHandler: errorHandler,
	}
}

// Routes returns the dataset routes
func (h *DatasetHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/refresh", h.Refresh)

	return r
}

// Refresh handles POST /api/datasets/refresh. The next dashboard read
// reloads the CSV files from disk.
func (h *DatasetHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	h.logger.InfoContext(r.Context(), "dataset refresh requested",
		slog.String("request_id", reqID),
	)

	h.service.Refresh(r.Context())

	render.JSON(w, r, map[string]interface{}{
		"status":  "success",
		"message": "dataset cache invalidated",
	})
}
