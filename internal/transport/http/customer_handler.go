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

// CustomerHandler serves the customer segmentation API
type CustomerHandler struct {
	service      CustomerReader
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(service CustomerReader, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *CustomerHandler {
	return &CustomerHandler{
		service:      service,
		logger:       infrastructure.WithComponent(logger, "customer_handler"),
		errorHandler: errorHandler,
	}
}

// Routes returns the customer routes
func (h *CustomerHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/summary", h.GetSummary)
	r.Get("/segments", h.GetSegments)

	return r
}

// GetSummary handles GET /api/customers/summary
func (h *CustomerHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())
	segment := r.URL.Query().Get("segment")

	h.logger.InfoContext(r.Context(), "computing customer summary",
		slog.String("request_id", reqID),
		slog.String("segment", segment),
	)

	summary, err := h.service.Summary(r.Context(), segment)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to compute customer summary",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}

// GetSegments handles GET /api/customers/segments
func (h *CustomerHandler) GetSegments(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	segments, err := h.service.Segments(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list segments",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   segments,
		"count":  len(segments),
	})
}
