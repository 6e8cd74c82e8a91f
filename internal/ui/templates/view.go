// Package templates renders the dashboard page shell. Everything inside it is
// filled in over SSE once the page loads.
package templates

import (
	"encoding/json"
	"fmt"
)

const defaultTitle = "Sales Dashboard"

// DashboardView configures the initial page state.
type DashboardView struct {
	Title    string
	PageSize int
}

type initialSignals struct {
	Filters map[string]any `json:"filters"`
	Table   map[string]any `json:"table"`
}

func (v DashboardView) title() string {
	if v.Title == "" {
		return defaultTitle
	}
	return v.Title
}

// signals is the initial Datastar signal store, matching what the SSE
// handlers read back.
func (v DashboardView) signals() (string, error) {
	b, err := json.Marshal(initialSignals{
		Filters: map[string]any{
			"search":     "",
			"start":      "",
			"end":        "",
			"categories": []string{},
			"regions":    []string{},
		},
		Table: map[string]any{
			"search":        "",
			"sortKey":       "",
			"sortDirection": "",
			"page":          1,
			"pageSize":      v.PageSize,
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode signals: %w", err)
	}
	return string(b), nil
}
