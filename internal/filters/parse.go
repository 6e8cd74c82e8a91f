package filters

import (
	"fmt"
	"strings"

	"sales-dashboard/internal/models"
)

// InvalidValueError reports a category or region name that is not one of the
// known values. Field is "category" or "region".
type InvalidValueError struct {
	Field string
	Err   error
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *InvalidValueError) Unwrap() error {
	return e.Err
}

// FromStrings builds a filter state from raw user input through the reducer.
// Search and date values are trimmed; category and region names must parse
// or an *InvalidValueError is returned.
func FromStrings(search, start, end string, categories, regions []string) (models.FilterState, error) {
	cats := make([]models.Category, 0, len(categories))
	for _, raw := range categories {
		c, err := models.ParseCategory(raw)
		if err != nil {
			return models.FilterState{}, &InvalidValueError{Field: "category", Err: err}
		}
		cats = append(cats, c)
	}

	regs := make([]models.Region, 0, len(regions))
	for _, raw := range regions {
		r, err := models.ParseRegion(raw)
		if err != nil {
			return models.FilterState{}, &InvalidValueError{Field: "region", Err: err}
		}
		regs = append(regs, r)
	}

	var state models.FilterState
	for _, action := range []Action{
		SetSearch(strings.TrimSpace(search)),
		SetStartDate(strings.TrimSpace(start)),
		SetEndDate(strings.TrimSpace(end)),
		SetCategories(cats...),
		SetRegions(regs...),
	} {
		state = Reduce(state, action)
	}
	return state, nil
}
