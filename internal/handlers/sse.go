package handlers

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/starfederation/datastar-go/datastar"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/filters"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/services"
	"sales-dashboard/internal/table"
)

// SSEHandlers drive the dashboard page over Datastar. Each handler reads the
// page's signals, applies one transition and patches back the new signals and
// the affected fragments.
type SSEHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewSSEHandlers(analytics *services.Analytics, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

// HandleDashboard re-renders the dashboard for the current filter and table signals.
func (h *SSEHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, func(s dashboardSignals) (dashboardSignals, error) {
		return s, nil
	})
}

// HandleTableSearch applies the table search term and returns to the first page.
func (h *SSEHandlers) HandleTableSearch(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, func(s dashboardSignals) (dashboardSignals, error) {
		s.Table = s.Table.WithSearch(s.Table.Search)
		return s, nil
	})
}

// HandleTableSort advances the sort cycle of the column named by ?field=.
func (h *SSEHandlers) HandleTableSort(w http.ResponseWriter, r *http.Request) {
	field := r.URL.Query().Get("field")
	h.update(w, r, func(s dashboardSignals) (dashboardSignals, error) {
		next, err := h.analytics.TableEngine().ToggleSort(s.Table, field)
		if err != nil {
			return s, errors.InvalidParam("field", err)
		}
		s.Table = next
		return s, nil
	})
}

// HandleTablePage moves to ?page=, which is a page number or one of
// first, prev, next and last.
func (h *SSEHandlers) HandleTablePage(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("page")
	h.update(w, r, func(s dashboardSignals) (dashboardSignals, error) {
		fs, err := s.Filters.state()
		if err != nil {
			return s, err
		}
		current, err := h.analytics.Table(r.Context(), fs, s.Table)
		if err != nil {
			return s, tableError(err)
		}

		switch target {
		case "first":
			s.Table = s.Table.First()
		case "prev":
			s.Table = s.Table.Prev()
		case "next":
			s.Table = s.Table.Next(current.TotalPages)
		case "last":
			s.Table = s.Table.Last(current.TotalPages)
		default:
			page, err := strconv.Atoi(target)
			if err != nil {
				return s, errors.InvalidParam("page", stderrors.New("must be a number or first, prev, next, last"))
			}
			s.Table = s.Table.WithPage(page).Clamp(current.TotalPages)
		}
		return s, nil
	})
}

// HandleClearFilters resets every filter and returns the table to its first page.
func (h *SSEHandlers) HandleClearFilters(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, func(s dashboardSignals) (dashboardSignals, error) {
		fs, err := s.Filters.state()
		if err != nil {
			fs = models.FilterState{}
		}
		s.Filters = signalsFromState(filters.Reduce(fs, filters.Clear()))
		s.Table = s.Table.First()
		return s, nil
	})
}

func (h *SSEHandlers) update(w http.ResponseWriter, r *http.Request, transition func(dashboardSignals) (dashboardSignals, error)) {
	requestID := observability.GetRequestID(r.Context())

	var signals dashboardSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		errors.WriteError(w, r, h.logger, errors.InvalidParam("signals", err), requestID)
		return
	}
	signals.Table = normalizeTable(signals.Table, h.analytics.PageSize())

	signals, err := transition(signals)
	if err != nil {
		errors.WriteError(w, r, h.logger, err, requestID)
		return
	}

	fs, err := signals.Filters.state()
	if err != nil {
		errors.WriteError(w, r, h.logger, err, requestID)
		return
	}

	page, err := h.analytics.Table(r.Context(), fs, signals.Table)
	if err != nil {
		errors.WriteError(w, r, h.logger, tableError(err), requestID)
		return
	}
	if page.Total > 0 && page.Page > page.TotalPages {
		signals.Table = signals.Table.Clamp(page.TotalPages)
		if page, err = h.analytics.Table(r.Context(), fs, signals.Table); err != nil {
			errors.WriteError(w, r, h.logger, tableError(err), requestID)
			return
		}
	}

	summary := h.analytics.Dashboard(r.Context(), fs)
	if err := h.patch(w, r, signals, summary, page); err != nil {
		h.logger.Error("patch dashboard", "error", err, "request_id", requestID)
	}
}

func (h *SSEHandlers) patch(w http.ResponseWriter, r *http.Request, signals dashboardSignals, summary services.DashboardSummary, page table.Page[models.SaleRecord]) error {
	recordsHTML, err := renderRecords(h.analytics.TableEngine(), page, signals.Table)
	if err != nil {
		return err
	}
	filtersHTML, err := renderFilters(summary)
	if err != nil {
		return err
	}
	signalJSON, err := json.Marshal(map[string]any{
		"filters":    signals.Filters,
		"table":      signals.Table,
		"metrics":    summary.Metrics,
		"monthly":    summary.Monthly,
		"categories": summary.Categories,
		"regions":    summary.Regions,
	})
	if err != nil {
		return err
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchSignals(signalJSON); err != nil {
		return err
	}
	if err := sse.PatchElements(filtersHTML); err != nil {
		return err
	}
	if err := sse.PatchElements(recordsHTML); err != nil {
		return err
	}

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
	return nil
}

// tableError turns a table engine failure into a client error when the
// request referred to an unknown field.
func tableError(err error) error {
	if stderrors.Is(err, table.ErrUnknownField) {
		return errors.InvalidParam("sort", err)
	}
	return err
}
