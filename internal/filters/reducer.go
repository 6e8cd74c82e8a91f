package filters

import (
	"slices"

	"sales-dashboard/internal/models"
)

type ActionType string

const (
	ActionSetSearch      ActionType = "set_search"
	ActionSetStartDate   ActionType = "set_start_date"
	ActionSetEndDate     ActionType = "set_end_date"
	ActionToggleCategory ActionType = "toggle_category"
	ActionSetCategories  ActionType = "set_categories"
	ActionToggleRegion   ActionType = "toggle_region"
	ActionSetRegions     ActionType = "set_regions"
	ActionClear          ActionType = "clear"
)

// Action is a single user change to the filter state. Only the fields relevant
// to Type are read.
type Action struct {
	Type       ActionType
	Value      string
	Categories []models.Category
	Regions    []models.Region
}

func SetSearch(term string) Action {
	return Action{Type: ActionSetSearch, Value: term}
}

func SetStartDate(date string) Action {
	return Action{Type: ActionSetStartDate, Value: date}
}

func SetEndDate(date string) Action {
	return Action{Type: ActionSetEndDate, Value: date}
}

func ToggleCategory(c models.Category) Action {
	return Action{Type: ActionToggleCategory, Value: string(c)}
}

func SetCategories(cs ...models.Category) Action {
	return Action{Type: ActionSetCategories, Categories: cs}
}

func ToggleRegion(r models.Region) Action {
	return Action{Type: ActionToggleRegion, Value: string(r)}
}

func SetRegions(rs ...models.Region) Action {
	return Action{Type: ActionSetRegions, Regions: rs}
}

func Clear() Action {
	return Action{Type: ActionClear}
}

// Reduce returns the state that results from applying action to state.
// state is left untouched; slices in the result never alias those of state.
func Reduce(state models.FilterState, action Action) models.FilterState {
	next := clone(state)

	switch action.Type {
	case ActionSetSearch:
		next.SearchTerm = action.Value
	case ActionSetStartDate:
		next.DateRange.Start = action.Value
	case ActionSetEndDate:
		next.DateRange.End = action.Value
	case ActionToggleCategory:
		next.Categories = toggle(next.Categories, models.Category(action.Value))
	case ActionSetCategories:
		next.Categories = dedupe(action.Categories)
	case ActionToggleRegion:
		next.Regions = toggle(next.Regions, models.Region(action.Value))
	case ActionSetRegions:
		next.Regions = dedupe(action.Regions)
	case ActionClear:
		return models.FilterState{}
	}

	return next
}

func clone(state models.FilterState) models.FilterState {
	state.Categories = slices.Clone(state.Categories)
	state.Regions = slices.Clone(state.Regions)
	return state
}

func toggle[T comparable](selected []T, v T) []T {
	if i := slices.Index(selected, v); i >= 0 {
		return slices.Delete(selected, i, i+1)
	}
	return append(selected, v)
}

func dedupe[T comparable](values []T) []T {
	out := make([]T, 0, len(values))
	for _, v := range values {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
