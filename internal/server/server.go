package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"sales-dashboard/internal/handlers"
	"sales-dashboard/internal/services"
	"sales-dashboard/internal/ui/templates"
)

const renderTimeout = 10 * time.Second

// Server routes the dashboard page, the JSON API and the Datastar endpoints.
type Server struct {
	analytics   *services.Analytics
	mux         *http.ServeMux
	logger      *slog.Logger
	page        templates.DashboardView
	apiHandlers *handlers.APIHandlers
	sseHandlers *handlers.SSEHandlers
}

func NewServer(analytics *services.Analytics, logger *slog.Logger, page templates.DashboardView) *Server {
	s := &Server{
		analytics:   analytics,
		mux:         http.NewServeMux(),
		logger:      logger,
		page:        page,
		apiHandlers: handlers.NewAPIHandlers(analytics, logger),
		sseHandlers: handlers.NewSSEHandlers(analytics, logger),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handleDashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)

	// REST API endpoints
	s.mux.HandleFunc("GET /api/dashboard", s.apiHandlers.HandleDashboard)
	s.mux.HandleFunc("GET /api/metrics", s.apiHandlers.HandleMetrics)
	s.mux.HandleFunc("GET /api/monthly-sales", s.apiHandlers.HandleMonthlySales)
	s.mux.HandleFunc("GET /api/categories", s.apiHandlers.HandleCategories)
	s.mux.HandleFunc("GET /api/regions", s.apiHandlers.HandleRegions)
	s.mux.HandleFunc("GET /api/records", s.apiHandlers.HandleRecords)

	// Datastar SSE endpoints
	s.mux.HandleFunc("GET /sse/dashboard", s.sseHandlers.HandleDashboard)
	s.mux.HandleFunc("GET /sse/table/search", s.sseHandlers.HandleTableSearch)
	s.mux.HandleFunc("GET /sse/table/sort", s.sseHandlers.HandleTableSort)
	s.mux.HandleFunc("GET /sse/table/page", s.sseHandlers.HandleTablePage)
	s.mux.HandleFunc("GET /sse/filters/clear", s.sseHandlers.HandleClearFilters)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	if err := templates.Dashboard(s.page).Render(ctx, w); err != nil {
		s.logger.Error("render dashboard", "error", err)
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
