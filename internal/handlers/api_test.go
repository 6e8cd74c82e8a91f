package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sales-dashboard/internal/models"
	"sales-dashboard/internal/sampledata"
	"sales-dashboard/internal/services"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestAnalytics loads 50 generated records: 10 per category, and
// 13/13/12/12 across North, South, East and West.
func createTestAnalytics() *services.Analytics {
	a := services.NewAnalytics(services.WithLogger(testLogger()))
	a.SetData(sampledata.Generate(50, 42, 2024))
	return a
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code  string `json:"code"`
		Field string `json:"field"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(w.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return env
}

func TestNewAPIHandlers(t *testing.T) {
	analytics := createTestAnalytics()
	logger := testLogger()
	handlers := NewAPIHandlers(analytics, logger)

	if handlers == nil {
		t.Fatal("NewAPIHandlers() returned nil")
	}
	if handlers.analytics != analytics {
		t.Error("NewAPIHandlers() should set analytics field")
	}
	if handlers.logger != logger {
		t.Error("NewAPIHandlers() should set logger field")
	}
}

func TestAPIHandlers_HandleDashboard(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?category=Books&search=", nil)
	w := httptest.NewRecorder()
	handlers.HandleDashboard(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected content-type 'application/json', got %q", ct)
	}
	if cc := w.Header().Get("Cache-Control"); cc != "public, max-age=300" {
		t.Errorf("expected cache-control 'public, max-age=300', got %q", cc)
	}

	env := decode(t, w)
	if !env.Success {
		t.Fatal("expected success response")
	}
	var summary services.DashboardSummary
	if err := json.Unmarshal(env.Data, &summary); err != nil {
		t.Fatal(err)
	}
	if summary.FilteredCount != 10 || summary.TotalCount != 50 {
		t.Errorf("counts = %d of %d, want 10 of 50", summary.FilteredCount, summary.TotalCount)
	}
	if summary.Metrics.TotalOrders != 10 {
		t.Errorf("TotalOrders = %d, want 10", summary.Metrics.TotalOrders)
	}
	if len(summary.Categories) != 1 || summary.Categories[0].Category != models.CategoryBooks {
		t.Errorf("Categories = %+v, want only Books", summary.Categories)
	}
	if len(summary.ActiveFilters) != 1 || summary.ActiveFilters[0].Label != "Books" {
		t.Errorf("ActiveFilters = %+v", summary.ActiveFilters)
	}
}

func TestAPIHandlers_FilterParams(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger())

	tests := []struct {
		name   string
		query  string
		orders int
	}{
		{"no filters", "", 50},
		{"repeated categories", "category=Books&category=Home", 20},
		{"comma separated categories", "category=Books,Home", 20},
		{"region", "region=East", 12},
		{"category and region", "category=Electronics&region=North", 3},
		{"date range", "start=2024-01-01&end=2024-01-31", 5},
		{"malformed date fails open", "start=not-a-date", 50},
		{"search without match", "search=zzzz-no-match", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/metrics?"+tt.query, nil)
			w := httptest.NewRecorder()
			handlers.HandleMetrics(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			var metrics models.Metrics
			if err := json.Unmarshal(decode(t, w).Data, &metrics); err != nil {
				t.Fatal(err)
			}
			if metrics.TotalOrders != tt.orders {
				t.Errorf("TotalOrders = %d, want %d", metrics.TotalOrders, tt.orders)
			}
		})
	}
}

func TestAPIHandlers_InvalidParams(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger())

	tests := []struct {
		name    string
		path    string
		handler http.HandlerFunc
		field   string
	}{
		{"unknown category", "/api/dashboard?category=Toys", handlers.HandleDashboard, "category"},
		{"unknown region", "/api/regions?region=Mars", handlers.HandleRegions, "region"},
		{"unknown category order", "/api/categories?order=name", handlers.HandleCategories, "order"},
		{"non-numeric page", "/api/records?page=two", handlers.HandleRecords, "page"},
		{"zero page", "/api/records?page=0", handlers.HandleRecords, "page"},
		{"page size too large", "/api/records?pageSize=1000", handlers.HandleRecords, "pageSize"},
		{"bad direction", "/api/records?sort=date&dir=up", handlers.HandleRecords, "dir"},
		{"unknown sort field", "/api/records?sort=nope", handlers.HandleRecords, "sort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.handler(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			env := decode(t, w)
			if env.Success || env.Error == nil {
				t.Fatal("expected error response")
			}
			if env.Error.Code != "VALIDATION_ERROR" || env.Error.Field != tt.field {
				t.Errorf("error = %+v, want VALIDATION_ERROR on %s", env.Error, tt.field)
			}
		})
	}
}

func TestAPIHandlers_HandleMonthlySales(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleMonthlySales(w, httptest.NewRequest(http.MethodGet, "/api/monthly-sales", nil))

	var monthly []models.MonthlyDatum
	if err := json.Unmarshal(decode(t, w).Data, &monthly); err != nil {
		t.Fatal(err)
	}
	if len(monthly) != 12 {
		t.Fatalf("months = %d, want 12", len(monthly))
	}
	if monthly[0].Month != "Jan" || monthly[11].Month != "Dec" {
		t.Errorf("months should run Jan..Dec, got %s..%s", monthly[0].Month, monthly[11].Month)
	}
}

func TestAPIHandlers_HandleCategories(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleCategories(w, httptest.NewRequest(http.MethodGet, "/api/categories", nil))
	var byEnum []models.CategoryDatum
	if err := json.Unmarshal(decode(t, w).Data, &byEnum); err != nil {
		t.Fatal(err)
	}
	for i, c := range byEnum {
		if c.Category != models.Categories[i] {
			t.Errorf("row %d = %s, want %s", i, c.Category, models.Categories[i])
		}
	}

	w = httptest.NewRecorder()
	handlers.HandleCategories(w, httptest.NewRequest(http.MethodGet, "/api/categories?order=revenue", nil))
	var byRevenue []models.CategoryDatum
	if err := json.Unmarshal(decode(t, w).Data, &byRevenue); err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(byRevenue); i++ {
		if byRevenue[i].Revenue > byRevenue[i-1].Revenue {
			t.Errorf("categories not sorted by revenue: %+v", byRevenue)
		}
	}
}

func TestAPIHandlers_HandleRegions(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleRegions(w, httptest.NewRequest(http.MethodGet, "/api/regions", nil))

	var regions []models.RegionDatum
	if err := json.Unmarshal(decode(t, w).Data, &regions); err != nil {
		t.Fatal(err)
	}
	var pct float64
	for _, r := range regions {
		pct += r.Percentage
	}
	if len(regions) != 4 || pct < 99.99 || pct > 100.01 {
		t.Errorf("regions = %d, percentages sum to %.4f", len(regions), pct)
	}
}

func TestAPIHandlers_HandleRecords(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/records?category=Books&sort=total_amount&dir=desc&page=2&pageSize=4", nil)
	w := httptest.NewRecorder()
	handlers.HandleRecords(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Rows       []models.SaleRecord `json:"rows"`
		Total      int                 `json:"total"`
		TotalPages int                 `json:"totalPages"`
		Page       int                 `json:"page"`
		Window     []int               `json:"window"`
		From       int                 `json:"from"`
		To         int                 `json:"to"`
	}
	if err := json.Unmarshal(decode(t, w).Data, &resp); err != nil {
		t.Fatal(err)
	}

	if resp.Total != 10 || resp.TotalPages != 3 || resp.Page != 2 {
		t.Errorf("meta = total %d, pages %d, page %d", resp.Total, resp.TotalPages, resp.Page)
	}
	if len(resp.Rows) != 4 || resp.From != 5 || resp.To != 8 {
		t.Errorf("rows = %d, range %d-%d", len(resp.Rows), resp.From, resp.To)
	}
	if len(resp.Window) != 3 {
		t.Errorf("window = %v, want [1 2 3]", resp.Window)
	}
	for i := 1; i < len(resp.Rows); i++ {
		if resp.Rows[i].TotalAmount.GreaterThan(resp.Rows[i-1].TotalAmount) {
			t.Error("rows should be sorted by amount descending")
		}
		if resp.Rows[i].Category != models.CategoryBooks {
			t.Errorf("row category = %s, want Books", resp.Rows[i].Category)
		}
	}
}

func TestAPIHandlers_HandleRecords_OutOfRange(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleRecords(w, httptest.NewRequest(http.MethodGet, "/api/records?page=99", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := w.Body.String(); !strings.Contains(body, `"rows":[]`) {
		t.Errorf("out of range page should return no rows: %s", body)
	}

	w = httptest.NewRecorder()
	handlers.HandleRecords(w, httptest.NewRequest(http.MethodGet, "/api/records?page=9223372036854775807&pageSize=100", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("max int page: status = %d, want 200", w.Code)
	}
	if body := w.Body.String(); !strings.Contains(body, `"rows":[]`) {
		t.Errorf("max int page should return no rows: %s", body)
	}
}

func TestAPIHandlers_HandleHealth(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"healthy"`) {
		t.Errorf("unexpected body %s", w.Body.String())
	}

	empty := NewAPIHandlers(services.NewAnalytics(services.WithLogger(testLogger())), testLogger())
	w = httptest.NewRecorder()
	empty.HandleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("empty dataset status = %d, want 503", w.Code)
	}
}

func TestAPIHandlers_HandleStats(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleStats(w, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))

	var stats map[string]any
	if err := json.Unmarshal(decode(t, w).Data, &stats); err != nil {
		t.Fatal(err)
	}
	if stats["record_count"] != float64(50) {
		t.Errorf("record_count = %v, want 50", stats["record_count"])
	}
}
