package handlers

import (
	stderrors "errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/filters"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/table"
)

const maxPageSize = 100

// filterSignals is the client-side shape of the dashboard filters, shared by
// query parameters and Datastar signals.
type filterSignals struct {
	Search     string   `json:"search"`
	Start      string   `json:"start"`
	End        string   `json:"end"`
	Categories []string `json:"categories"`
	Regions    []string `json:"regions"`
}

// dashboardSignals is the Datastar signal store of the dashboard page.
type dashboardSignals struct {
	Filters filterSignals `json:"filters"`
	Table   table.State   `json:"table"`
}

func (f filterSignals) state() (models.FilterState, error) {
	state, err := filters.FromStrings(f.Search, f.Start, f.End, f.Categories, f.Regions)
	var invalid *filters.InvalidValueError
	if stderrors.As(err, &invalid) {
		return models.FilterState{}, errors.InvalidParam(invalid.Field, invalid.Err)
	}
	return state, err
}

func signalsFromState(state models.FilterState) filterSignals {
	f := filterSignals{
		Search:     state.SearchTerm,
		Start:      state.DateRange.Start,
		End:        state.DateRange.End,
		Categories: make([]string, 0, len(state.Categories)),
		Regions:    make([]string, 0, len(state.Regions)),
	}
	for _, c := range state.Categories {
		f.Categories = append(f.Categories, string(c))
	}
	for _, r := range state.Regions {
		f.Regions = append(f.Regions, string(r))
	}
	return f
}

// parseFilterQuery reads start, end, search and the repeatable or
// comma-separated category and region parameters.
func parseFilterQuery(q url.Values) (models.FilterState, error) {
	return filterSignals{
		Search:     q.Get("search"),
		Start:      q.Get("start"),
		End:        q.Get("end"),
		Categories: listParam(q, "category"),
		Regions:    listParam(q, "region"),
	}.state()
}

// parseTableQuery reads q, sort, dir, page and pageSize. Missing values fall
// back to the first page of defaultPageSize rows, unsorted.
func parseTableQuery(q url.Values, defaultPageSize int) (table.State, error) {
	state := table.State{
		Search:   strings.TrimSpace(q.Get("q")),
		SortKey:  q.Get("sort"),
		Page:     1,
		PageSize: defaultPageSize,
	}

	switch dir := table.SortDirection(strings.ToLower(q.Get("dir"))); dir {
	case table.SortNone:
		if state.SortKey != "" {
			state.SortDirection = table.SortAsc
		}
	case table.SortAsc, table.SortDesc:
		state.SortDirection = dir
	default:
		return table.State{}, errors.InvalidParam("dir", fmt.Errorf("must be asc or desc, got %q", dir))
	}

	if raw := q.Get("page"); raw != "" {
		page, err := positiveInt(raw, 0)
		if err != nil {
			return table.State{}, errors.InvalidParam("page", err)
		}
		state.Page = page
	}

	if raw := q.Get("pageSize"); raw != "" {
		size, err := positiveInt(raw, maxPageSize)
		if err != nil {
			return table.State{}, errors.InvalidParam("pageSize", err)
		}
		state.PageSize = size
	}

	return state, nil
}

// positiveInt parses raw as an integer >= 1, and <= limit when limit > 0.
func positiveInt(raw string, limit int) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	if n < 1 {
		return 0, fmt.Errorf("must be at least 1, got %d", n)
	}
	if limit > 0 && n > limit {
		return 0, fmt.Errorf("must be at most %d, got %d", limit, n)
	}
	return n, nil
}

func listParam(q url.Values, key string) []string {
	var out []string
	for _, value := range q[key] {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// normalizeTable fills in defaults for a table state received from the client.
func normalizeTable(state table.State, defaultPageSize int) table.State {
	if state.PageSize <= 0 || state.PageSize > maxPageSize {
		state.PageSize = defaultPageSize
	}
	if state.Page <= 0 {
		state.Page = 1
	}
	switch state.SortDirection {
	case table.SortAsc, table.SortDesc:
	default:
		state.SortKey, state.SortDirection = "", table.SortNone
	}
	return state
}
