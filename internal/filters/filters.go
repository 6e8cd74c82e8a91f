// Package filters narrows a sale record collection by date range, category,
// region and free-text search.
//
// Dimensions are AND-combined; values within a dimension are OR-combined.
// An empty dimension places no restriction.
package filters

import (
	"slices"
	"strings"
	"time"

	"sales-dashboard/internal/models"
)

// Apply returns the records that pass every dimension of state, in input order.
// The input slice is never modified; the result is always a fresh slice.
func Apply(records []models.SaleRecord, state models.FilterState) []models.SaleRecord {
	m := newMatcher(state)

	result := make([]models.SaleRecord, 0, len(records))
	for _, r := range records {
		if m.match(r) {
			result = append(result, r)
		}
	}
	return result
}

// matcher pre-parses the filter state once so the per-record loop stays cheap.
type matcher struct {
	start, end  time.Time
	hasStart    bool
	hasEnd      bool
	categories  []models.Category
	regions     []models.Region
	lowerSearch string
}

func newMatcher(state models.FilterState) matcher {
	m := matcher{
		categories:  state.Categories,
		regions:     state.Regions,
		lowerSearch: strings.ToLower(state.SearchTerm),
	}
	m.start, m.hasStart = parseBoundary(state.DateRange.Start)
	m.end, m.hasEnd = parseBoundary(state.DateRange.End)
	return m
}

func (m matcher) match(r models.SaleRecord) bool {
	return m.matchDate(r.Date) &&
		MatchCategory(r, m.categories) &&
		MatchRegion(r, m.regions) &&
		matchLowerSearch(r, m.lowerSearch)
}

func (m matcher) matchDate(date time.Time) bool {
	day := civilDate(date)
	if m.hasStart && day.Before(m.start) {
		return false
	}
	if m.hasEnd && day.After(m.end) {
		return false
	}
	return true
}

// MatchDate reports whether the record date lies within the range, both ends inclusive.
// A boundary that is empty or cannot be parsed as an ISO date does not restrict.
func MatchDate(r models.SaleRecord, dr models.DateRange) bool {
	return newMatcher(models.FilterState{DateRange: dr}).matchDate(r.Date)
}

// MatchCategory passes when no category is selected or the record's category is selected.
func MatchCategory(r models.SaleRecord, selected []models.Category) bool {
	return len(selected) == 0 || slices.Contains(selected, r.Category)
}

// MatchRegion passes when no region is selected or the record's region is selected.
func MatchRegion(r models.SaleRecord, selected []models.Region) bool {
	return len(selected) == 0 || slices.Contains(selected, r.Region)
}

// MatchSearch does a case-insensitive substring match of term against the
// customer name, product name, category and region. An empty term matches.
func MatchSearch(r models.SaleRecord, term string) bool {
	return matchLowerSearch(r, strings.ToLower(term))
}

func matchLowerSearch(r models.SaleRecord, lowerTerm string) bool {
	if lowerTerm == "" {
		return true
	}
	for _, field := range [...]string{r.CustomerName, r.ProductName, string(r.Category), string(r.Region)} {
		if strings.Contains(strings.ToLower(field), lowerTerm) {
			return true
		}
	}
	return false
}

func parseBoundary(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// civilDate drops the clock so comparisons happen on calendar days in UTC.
func civilDate(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}
