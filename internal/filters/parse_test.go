package filters

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-dashboard/internal/models"
)

func TestFromStrings(t *testing.T) {
	state, err := FromStrings("  jane ", " 2024-01-01", "2024-03-31 ",
		[]string{"Home", "Books", "Home"}, []string{"West"})
	require.NoError(t, err)

	assert.Equal(t, models.FilterState{
		SearchTerm: "jane",
		DateRange:  models.DateRange{Start: "2024-01-01", End: "2024-03-31"},
		Categories: []models.Category{models.CategoryHome, models.CategoryBooks},
		Regions:    []models.Region{models.RegionWest},
	}, state)
}

func TestFromStrings_Empty(t *testing.T) {
	state, err := FromStrings("", "", "", nil, nil)
	require.NoError(t, err)
	assert.False(t, Active(state))
}

func TestFromStrings_InvalidValues(t *testing.T) {
	tests := []struct {
		name       string
		categories []string
		regions    []string
		field      string
	}{
		{"unknown category", []string{"Books", "Toys"}, nil, "category"},
		{"unknown region", nil, []string{"Atlantis"}, "region"},
		{"category checked first", []string{"Toys"}, []string{"Atlantis"}, "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromStrings("", "", "", tt.categories, tt.regions)
			require.Error(t, err)

			var invalid *InvalidValueError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.field, invalid.Field)
			assert.Contains(t, err.Error(), tt.field+": ")
			assert.Equal(t, invalid.Err, errors.Unwrap(err))
		})
	}
}
