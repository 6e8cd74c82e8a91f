package filters

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"sales-dashboard/internal/models"
)

// Active reports whether any dimension of state restricts records.
func Active(state models.FilterState) bool {
	return state.SearchTerm != "" ||
		state.DateRange.Start != "" ||
		state.DateRange.End != "" ||
		len(state.Categories) > 0 ||
		len(state.Regions) > 0
}

// Chip is one label in the active-filters summary.
type Chip struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
}

// Chips lists the active filters in display order: search, date range, categories, regions.
func Chips(state models.FilterState) []Chip {
	var chips []Chip
	if state.SearchTerm != "" {
		chips = append(chips, Chip{Kind: "search", Label: "Search: " + state.SearchTerm})
	}
	if dr := state.DateRange; dr.Start != "" || dr.End != "" {
		chips = append(chips, Chip{Kind: "date", Label: dateLabel(dr)})
	}
	for _, c := range state.Categories {
		chips = append(chips, Chip{Kind: "category", Label: string(c)})
	}
	for _, r := range state.Regions {
		chips = append(chips, Chip{Kind: "region", Label: string(r)})
	}
	return chips
}

func dateLabel(dr models.DateRange) string {
	switch {
	case dr.Start != "" && dr.End != "":
		return fmt.Sprintf("%s to %s", dr.Start, dr.End)
	case dr.Start != "":
		return "From " + dr.Start
	default:
		return "Until " + dr.End
	}
}

// Key returns a canonical string for state. States that differ only in
// selection order or search-term case select the same records and share a key.
// Each field is JSON-encoded, so separators inside values cannot collide.
func Key(state models.FilterState) string {
	cats := make([]string, 0, len(state.Categories))
	for _, c := range state.Categories {
		cats = append(cats, string(c))
	}
	regions := make([]string, 0, len(state.Regions))
	for _, r := range state.Regions {
		regions = append(regions, string(r))
	}
	slices.Sort(cats)
	slices.Sort(regions)

	// Strings and string slices always marshal.
	key, _ := json.Marshal(stateKey{
		Start:      state.DateRange.Start,
		End:        state.DateRange.End,
		Categories: slices.Compact(cats),
		Regions:    slices.Compact(regions),
		Search:     strings.ToLower(state.SearchTerm),
	})
	return string(key)
}

type stateKey struct {
	Start      string   `json:"s"`
	End        string   `json:"e"`
	Categories []string `json:"c"`
	Regions    []string `json:"r"`
	Search     string   `json:"q"`
}
