package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"sales-dashboard/internal/aggregate"
	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/services"
	"sales-dashboard/internal/table"
)

var cacheHeaders = map[string]string{
	"Cache-Control": "public, max-age=300",
}

type APIHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewAPIHandlers(analytics *services.Analytics, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

// summary parses the filter parameters and returns the matching dashboard
// summary. It writes the error response itself and reports false on failure.
func (h *APIHandlers) summary(w http.ResponseWriter, r *http.Request) (services.DashboardSummary, bool) {
	state, err := parseFilterQuery(r.URL.Query())
	if err != nil {
		errors.WriteError(w, r, h.logger, err, observability.GetRequestID(r.Context()))
		return services.DashboardSummary{}, false
	}
	return h.analytics.Dashboard(r.Context(), state), true
}

func (h *APIHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if summary, ok := h.summary(w, r); ok {
		errors.WriteSuccessWithHeaders(w, summary, cacheHeaders)
	}
}

func (h *APIHandlers) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	if summary, ok := h.summary(w, r); ok {
		errors.WriteSuccessWithHeaders(w, summary.Metrics, cacheHeaders)
	}
}

func (h *APIHandlers) HandleMonthlySales(w http.ResponseWriter, r *http.Request) {
	if summary, ok := h.summary(w, r); ok {
		errors.WriteSuccessWithHeaders(w, summary.Monthly, cacheHeaders)
	}
}

// HandleCategories returns categories in enumeration order, or by revenue
// with ?order=revenue.
func (h *APIHandlers) HandleCategories(w http.ResponseWriter, r *http.Request) {
	summary, ok := h.summary(w, r)
	if !ok {
		return
	}

	data := summary.Categories
	switch order := r.URL.Query().Get("order"); order {
	case "", "category":
	case "revenue":
		data = aggregate.SortByRevenue(data)
	default:
		errors.WriteError(w, r, h.logger, errors.InvalidParam("order", fmt.Errorf("must be category or revenue, got %q", order)), observability.GetRequestID(r.Context()))
		return
	}
	errors.WriteSuccessWithHeaders(w, data, cacheHeaders)
}

func (h *APIHandlers) HandleRegions(w http.ResponseWriter, r *http.Request) {
	if summary, ok := h.summary(w, r); ok {
		errors.WriteSuccessWithHeaders(w, summary.Regions, cacheHeaders)
	}
}

// RecordsResponse is one page of the records table.
type RecordsResponse struct {
	table.Page[models.SaleRecord]
	From  int         `json:"from"`
	To    int         `json:"to"`
	State table.State `json:"state"`
}

func (h *APIHandlers) HandleRecords(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())
	q := r.URL.Query()

	fs, err := parseFilterQuery(q)
	if err != nil {
		errors.WriteError(w, r, h.logger, err, requestID)
		return
	}
	ts, err := parseTableQuery(q, h.analytics.PageSize())
	if err != nil {
		errors.WriteError(w, r, h.logger, err, requestID)
		return
	}

	page, err := h.analytics.Table(r.Context(), fs, ts)
	if err != nil {
		errors.WriteError(w, r, h.logger, tableError(err), requestID)
		return
	}

	resp := RecordsResponse{Page: page, State: ts}
	resp.From, resp.To = page.Range()
	errors.WriteSuccessWithHeaders(w, resp, cacheHeaders)
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	stats := h.analytics.Stats()
	if count, _ := stats["record_count"].(int); count == 0 {
		errors.WriteError(w, r, h.logger, errors.ServiceUnavailable("no sale records loaded"), observability.GetRequestID(r.Context()))
		return
	}

	errors.WriteSuccess(w, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
		"records":   stats["record_count"],
	})
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.analytics.Stats())
}
