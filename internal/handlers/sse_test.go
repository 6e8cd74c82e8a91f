package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"sales-dashboard/internal/filters"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/services"
	"sales-dashboard/internal/table"
)

func signalsRequest(t *testing.T, path string, signals dashboardSignals) *http.Request {
	t.Helper()
	raw, err := json.Marshal(signals)
	if err != nil {
		t.Fatal(err)
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return httptest.NewRequest(http.MethodGet, path+sep+"datastar="+url.QueryEscape(string(raw)), nil)
}

func defaultSignals() dashboardSignals {
	return dashboardSignals{Table: table.NewState()}
}

// patchedSignals returns the JSON of the first signals patch in an SSE body.
func patchedSignals(t *testing.T, body string) dashboardSignals {
	t.Helper()
	for _, line := range strings.Split(body, "\n") {
		if raw, ok := strings.CutPrefix(line, "data: signals "); ok {
			var s dashboardSignals
			if err := json.Unmarshal([]byte(raw), &s); err != nil {
				t.Fatalf("decode signals %q: %v", raw, err)
			}
			return s
		}
	}
	t.Fatalf("no signals patch in body:\n%s", body)
	return dashboardSignals{}
}

func assertSSE(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		t.Errorf("expected content-type to contain 'text/event-stream', got %q", ct)
	}
	if cc := w.Header().Get("Cache-Control"); cc != "no-cache" {
		t.Errorf("expected cache-control 'no-cache', got %q", cc)
	}
	body := w.Body.String()
	if !strings.Contains(body, "event:") || !strings.Contains(body, "data:") {
		t.Error("response should contain SSE event format")
	}
	return body
}

func TestNewSSEHandlers(t *testing.T) {
	analytics := createTestAnalytics()
	logger := testLogger()

	handlers := NewSSEHandlers(analytics, logger)

	if handlers == nil {
		t.Fatal("NewSSEHandlers() returned nil")
	}
	if handlers.analytics != analytics {
		t.Error("NewSSEHandlers() should set analytics field")
	}
	if handlers.logger != logger {
		t.Error("NewSSEHandlers() should set logger field")
	}
}

func TestSSEHandlers_HandleDashboard(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(), testLogger())

	signals := defaultSignals()
	signals.Filters.Categories = []string{"Books"}

	w := httptest.NewRecorder()
	handlers.HandleDashboard(w, signalsRequest(t, "/sse/dashboard", signals))
	body := assertSSE(t, w)

	for _, want := range []string{
		`id="records-table"`,
		`id="active-filters"`,
		"Showing 10 of 50 records",
		"Showing 1 to 10 of 10 records",
		`filter-chip-category`,
		`"total_orders":10`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected body to contain %q", want)
		}
	}

	patched := patchedSignals(t, body)
	if patched.Table.Page != 1 || patched.Table.PageSize != 10 {
		t.Errorf("table signals = %+v", patched.Table)
	}
}

func TestSSEHandlers_HandleDashboard_ClampsPage(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(), testLogger())

	signals := defaultSignals()
	signals.Table.Page = 5
	signals.Filters.Regions = []string{"East"}

	w := httptest.NewRecorder()
	handlers.HandleDashboard(w, signalsRequest(t, "/sse/dashboard", signals))

	if got := patchedSignals(t, assertSSE(t, w)).Table.Page; got != 2 {
		t.Errorf("page = %d, want 2 (12 East records over pages of 10)", got)
	}
}

func TestSSEHandlers_HandleTableSort(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(), testLogger())

	want := []table.SortDirection{table.SortAsc, table.SortDesc, table.SortNone}
	signals := defaultSignals()
	for i, dir := range want {
		w := httptest.NewRecorder()
		handlers.HandleTableSort(w, signalsRequest(t, "/sse/table/sort?field=customer_name", signals))
		signals = patchedSignals(t, assertSSE(t, w))

		if signals.Table.SortDirection != dir {
			t.Errorf("toggle %d: direction = %q, want %q", i+1, signals.Table.SortDirection, dir)
		}
	}

	w := httptest.NewRecorder()
	handlers.HandleTableSort(w, signalsRequest(t, "/sse/table/sort?field=sales_rep", signals))
	if got := patchedSignals(t, assertSSE(t, w)).Table.SortKey; got != "" {
		t.Errorf("non-sortable column changed sort key to %q", got)
	}

	w = httptest.NewRecorder()
	handlers.HandleTableSort(w, signalsRequest(t, "/sse/table/sort?field=nope", signals))
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown field status = %d, want 400", w.Code)
	}
}

func TestSSEHandlers_HandleTablePage(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(), testLogger())

	tests := []struct {
		target string
		from   int
		want   int
	}{
		{"next", 1, 2},
		{"next", 5, 5},
		{"prev", 3, 2},
		{"prev", 1, 1},
		{"first", 4, 1},
		{"last", 1, 5},
		{"3", 1, 3},
		{"42", 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			signals := defaultSignals()
			signals.Table.Page = tt.from

			w := httptest.NewRecorder()
			handlers.HandleTablePage(w, signalsRequest(t, "/sse/table/page?page="+tt.target, signals))

			if got := patchedSignals(t, assertSSE(t, w)).Table.Page; got != tt.want {
				t.Errorf("page from %d via %s = %d, want %d", tt.from, tt.target, got, tt.want)
			}
		})
	}

	w := httptest.NewRecorder()
	handlers.HandleTablePage(w, signalsRequest(t, "/sse/table/page?page=later", defaultSignals()))
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid page status = %d, want 400", w.Code)
	}
}

func TestSSEHandlers_HandleTableSearch(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(), testLogger())

	signals := defaultSignals()
	signals.Table.Page = 4
	signals.Table.Search = "jane smith"

	w := httptest.NewRecorder()
	handlers.HandleTableSearch(w, signalsRequest(t, "/sse/table/search", signals))

	patched := patchedSignals(t, assertSSE(t, w))
	if patched.Table.Page != 1 || patched.Table.Search != "jane smith" {
		t.Errorf("table signals = %+v, want search kept and page 1", patched.Table)
	}
}

func TestSSEHandlers_HandleClearFilters(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(), testLogger())

	signals := defaultSignals()
	signals.Filters = filterSignals{Search: "a", Start: "2024-01-01", Categories: []string{"Books"}, Regions: []string{"North"}}
	signals.Table.Page = 2

	w := httptest.NewRecorder()
	handlers.HandleClearFilters(w, signalsRequest(t, "/sse/filters/clear", signals))
	body := assertSSE(t, w)

	patched := patchedSignals(t, body)
	if patched.Filters.Search != "" || patched.Filters.Start != "" || len(patched.Filters.Categories) != 0 || len(patched.Filters.Regions) != 0 {
		t.Errorf("filters not cleared: %+v", patched.Filters)
	}
	if patched.Table.Page != 1 {
		t.Errorf("page = %d, want 1", patched.Table.Page)
	}
	if !strings.Contains(body, "Showing 50 of 50 records") {
		t.Error("expected unfiltered record count")
	}
}

func TestSSEHandlers_InvalidSignals(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleDashboard(w, httptest.NewRequest(http.MethodGet, "/sse/dashboard?datastar=%7Bnot-json", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed signals status = %d, want 400", w.Code)
	}

	signals := defaultSignals()
	signals.Filters.Categories = []string{"Toys"}
	w = httptest.NewRecorder()
	handlers.HandleDashboard(w, signalsRequest(t, "/sse/dashboard", signals))
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown category status = %d, want 400", w.Code)
	}
}

func TestRenderRecords(t *testing.T) {
	analytics := services.NewAnalytics(services.WithLogger(testLogger()))
	analytics.SetData([]models.SaleRecord{})
	engine := analytics.TableEngine()

	state := table.NewState().ToggleSort(services.FieldDate)
	page, err := analytics.Table(t.Context(), models.FilterState{}, state)
	if err != nil {
		t.Fatal(err)
	}

	html, err := renderRecords(engine, page, state)
	if err != nil {
		t.Fatalf("renderRecords() failed: %v", err)
	}

	for _, want := range []string{
		`<table class="modern-table">`,
		"Date ▲",
		"Sales Rep",
		"No records match the current filters",
		"No records",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected HTML to contain %q", want)
		}
	}
	if strings.Contains(html, "Showing") {
		t.Error("empty table should not show a range")
	}
}

func TestRenderFilters(t *testing.T) {
	summary := services.DashboardSummary{
		FilteredCount: 1234,
		TotalCount:    5000,
		ActiveFilters: filters.Chips(models.FilterState{SearchTerm: "<b>"}),
	}

	html, err := renderFilters(summary)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "Showing 1,234 of 5,000 records") {
		t.Errorf("unexpected counts in %s", html)
	}
	if strings.Contains(html, "<b>") || !strings.Contains(html, "Search: &lt;b&gt;") {
		t.Errorf("chip label should be escaped: %s", html)
	}
	if !strings.Contains(html, "Clear all") {
		t.Error("expected clear button when filters are active")
	}
}
