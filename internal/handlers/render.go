package handlers

import (
	"html/template"
	"strings"

	"sales-dashboard/internal/filters"
	"sales-dashboard/internal/format"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/services"
	"sales-dashboard/internal/table"
)

var recordsTemplate = template.Must(template.New("records").Parse(`
<div id="records-table">
<table class="modern-table">
<thead><tr>{{range .Headers}}{{if .Sortable}}<th class="sortable" data-on-click="@get('/sse/table/sort?field={{.Field}}')"{{if .Width}} style="width: {{.Width}}"{{end}}>{{.Label}}{{.Indicator}}</th>{{else}}<th{{if .Width}} style="width: {{.Width}}"{{end}}>{{.Label}}</th>{{end}}{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{else}}<tr><td colspan="{{len .Headers}}" class="empty">No records match the current filters</td></tr>
{{end}}</tbody>
</table>
<div class="pagination">
<span class="range">{{if .Total}}Showing {{.From}} to {{.To}} of {{.Total}} records{{else}}No records{{end}}</span>
{{if gt .TotalPages 1}}<button data-on-click="@get('/sse/table/page?page=first')"{{if le .Page 1}} disabled{{end}}>&laquo;</button>
<button data-on-click="@get('/sse/table/page?page=prev')"{{if le .Page 1}} disabled{{end}}>&lsaquo;</button>
{{range .Window}}<button{{if eq . $.Page}} class="active"{{end}} data-on-click="@get('/sse/table/page?page={{.}}')">{{.}}</button>
{{end}}<button data-on-click="@get('/sse/table/page?page=next')"{{if ge .Page .TotalPages}} disabled{{end}}>&rsaquo;</button>
<button data-on-click="@get('/sse/table/page?page=last')"{{if ge .Page .TotalPages}} disabled{{end}}>&raquo;</button>{{end}}
</div>
</div>`))

var filtersTemplate = template.Must(template.New("filters").Parse(`
<div id="active-filters">
<span class="filter-count">Showing {{.Filtered}} of {{.Total}} records</span>
{{range .Chips}}<span class="filter-chip filter-chip-{{.Kind}}">{{.Label}}</span>
{{end}}{{if .Chips}}<button class="clear-filters" data-on-click="@get('/sse/filters/clear')">Clear all</button>{{end}}
</div>`))

type headerView struct {
	Field     string
	Label     string
	Width     string
	Sortable  bool
	Indicator string
}

type recordsView struct {
	Headers    []headerView
	Rows       [][]string
	Total      string
	From, To   int
	Page       int
	TotalPages int
	Window     []int
}

type filtersView struct {
	Filtered string
	Total    string
	Chips    []filters.Chip
}

func renderRecords(engine *table.Engine[models.SaleRecord], page table.Page[models.SaleRecord], state table.State) (string, error) {
	view := recordsView{
		Total:      format.USD().Count(page.Total),
		Page:       page.Page,
		TotalPages: page.TotalPages,
		Window:     page.Window,
	}
	if page.Total == 0 {
		view.Total = ""
	}
	view.From, view.To = page.Range()

	for _, c := range engine.Columns() {
		h := headerView{Field: c.Field, Label: c.Label, Width: c.Width, Sortable: c.Sortable}
		if c.Field == state.SortKey {
			h.Indicator = sortIndicator(state.SortDirection)
		}
		view.Headers = append(view.Headers, h)
	}
	for _, row := range page.Rows {
		view.Rows = append(view.Rows, engine.Cells(row))
	}

	var buf strings.Builder
	err := recordsTemplate.Execute(&buf, view)
	return buf.String(), err
}

func renderFilters(summary services.DashboardSummary) (string, error) {
	f := format.USD()
	view := filtersView{
		Filtered: f.Count(summary.FilteredCount),
		Total:    f.Count(summary.TotalCount),
		Chips:    summary.ActiveFilters,
	}

	var buf strings.Builder
	err := filtersTemplate.Execute(&buf, view)
	return buf.String(), err
}

func sortIndicator(dir table.SortDirection) string {
	switch dir {
	case table.SortAsc:
		return " ▲"
	case table.SortDesc:
		return " ▼"
	default:
		return ""
	}
}
