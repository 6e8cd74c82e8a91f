package sampledata

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-dashboard/internal/models"
)

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(25, 7, 2024)
	b := Generate(25, 7, 2024)
	assert.Equal(t, a, b)

	c := Generate(25, 8, 2024)
	assert.NotEqual(t, a[0].ID, c[0].ID)
}

func TestGenerate_Coverage(t *testing.T) {
	records := Generate(60, 1, 2023)
	require.Len(t, records, 60)

	categories := map[models.Category]int{}
	regions := map[models.Region]int{}
	months := map[int]bool{}
	ids := map[string]bool{}
	for _, r := range records {
		require.NoError(t, r.Validate())
		assert.Equal(t, 2023, r.Date.Year())
		assert.True(t, r.TotalAmount.Equal(r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity)))))

		categories[r.Category]++
		regions[r.Region]++
		months[int(r.Date.Month())] = true
		ids[r.ID] = true
	}

	for _, c := range models.Categories {
		assert.Equal(t, 12, categories[c], c)
	}
	for _, r := range models.Regions {
		assert.Equal(t, 15, regions[r], r)
	}
	assert.Len(t, months, 12)
	assert.Len(t, ids, 60)
}

func TestGenerate_Empty(t *testing.T) {
	assert.Empty(t, Generate(0, 1, 2024))
}
