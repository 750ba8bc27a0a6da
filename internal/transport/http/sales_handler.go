package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "salespulse/internal/errors"
	"salespulse/internal/infrastructure"
	"salespulse/internal/middleware"
	"salespulse/internal/services"
	"salespulse/pkg/contracts/domain"
)

// SalesHandler serves the sales dashboard API with RFC 7807 errors
type SalesHandler struct {
	service      SalesReader
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewSalesHandler creates a new sales handler
func NewSalesHandler(service SalesReader, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *SalesHandler {
	return &SalesHandler{
		service:      service,
		logger:       infrastructure.WithComponent(logger, "sales_handler"),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the sales routes
func (h *SalesHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/summary", h.GetSummary)
	r.Get("/products", h.GetProducts)

	return r
}

// salesQuery carries the validated filter query parameters
type salesQuery struct {
	From     string `validate:"omitempty,datetime=2006-01-02"`
	To       string `validate:"omitempty,datetime=2006-01-02"`
	Products string
}

// GetSummary handles GET /api/sales/summary
func (h *SalesHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	query := salesQuery{
		From:     r.URL.Query().Get("from"),
		To:       r.URL.Query().Get("to"),
		Products: r.URL.Query().Get("products"),
	}
	if err := h.validate.Struct(query); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("from/to",
			"Dates must use the YYYY-MM-DD format"))
		return
	}

	filter, err := buildSalesFilter(query)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "computing sales summary",
		slog.String("request_id", reqID),
		slog.String("from", query.From),
		slog.String("to", query.To),
	)

	summary, err := h.service.Summary(r.Context(), filter)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to compute sales summary",
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

// GetProducts handles GET /api/sales/products
func (h *SalesHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	options, err := h.service.Products(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list products",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   options,
		"count":  len(options.Products),
	})
}

func buildSalesFilter(query salesQuery) (services.SalesFilter, error) {
	var filter services.SalesFilter

	if query.From != "" {
		from, err := time.Parse(domain.DateFormat, query.From)
		if err != nil {
			return filter, apierrors.ErrValidation("from", "Invalid date")
		}
		filter.From = from
	}
	if query.To != "" {
		to, err := time.Parse(domain.DateFormat, query.To)
		if err != nil {
			return filter, apierrors.ErrValidation("to", "Invalid date")
		}
		filter.To = to
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return filter, apierrors.ErrValidation("to", "End date must not precede start date")
	}

	if query.Products != "" {
		for _, p := range strings.Split(query.Products, ",") {
			if p = strings.TrimSpace(p); p != "" {
				filter.Products = append(filter.Products, p)
			}
		}
	}

	return filter, nil
}
