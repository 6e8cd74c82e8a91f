// Package aggregate reduces sale records to summary metrics and grouped views.
//
// Sums are accumulated in decimal and converted to float64 only when a row is
// emitted, so the order of records never changes a total.
package aggregate

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"sales-dashboard/internal/models"
)

// NoMonth is reported as the top performing month when there are no records.
const NoMonth = "N/A"

// Summarize computes total sales, order count, average order value and the
// month with the highest sales. Months are grouped by name across years; ties
// go to the month earliest in the calendar.
func Summarize(records []models.SaleRecord) models.Metrics {
	total := sumAmounts(records)
	metrics := models.Metrics{
		TotalSales:         total.InexactFloat64(),
		TotalOrders:        len(records),
		TopPerformingMonth: NoMonth,
	}
	if len(records) == 0 {
		return metrics
	}

	metrics.AverageOrderValue = total.Div(decimal.NewFromInt(int64(len(records)))).InexactFloat64()

	months := monthTotals(records)
	best := -1
	for m := range months {
		if !months[m].seen {
			continue
		}
		if best < 0 || months[m].sum.GreaterThan(months[best].sum) {
			best = m
		}
	}
	metrics.TopPerformingMonth = MonthLabel(time.Month(best + 1))
	return metrics
}

// Monthly returns one row per calendar month present in records, January first.
func Monthly(records []models.SaleRecord) []models.MonthlyDatum {
	months := monthTotals(records)

	rows := make([]models.MonthlyDatum, 0, len(months))
	for m, t := range months {
		if !t.seen {
			continue
		}
		rows = append(rows, models.MonthlyDatum{
			Month: MonthLabel(time.Month(m + 1)),
			Sales: t.sum.InexactFloat64(),
		})
	}
	return rows
}

// ByCategory returns revenue and order count per category present in records,
// in category enumeration order.
func ByCategory(records []models.SaleRecord) []models.CategoryDatum {
	groups := groupBy(records, func(r models.SaleRecord) models.Category { return r.Category }, models.Categories)

	rows := make([]models.CategoryDatum, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, models.CategoryDatum{
			Category: g.key,
			Revenue:  g.sum.InexactFloat64(),
			Orders:   g.count,
		})
	}
	return rows
}

// ByRegion returns revenue and share of total revenue per region present in
// records, in region enumeration order. Shares are 0 when total revenue is 0.
func ByRegion(records []models.SaleRecord) []models.RegionDatum {
	groups := groupBy(records, func(r models.SaleRecord) models.Region { return r.Region }, models.Regions)
	total := sumAmounts(records)

	rows := make([]models.RegionDatum, 0, len(groups))
	for _, g := range groups {
		var pct float64
		if !total.IsZero() {
			pct = g.sum.Mul(decimal.NewFromInt(100)).Div(total).InexactFloat64()
		}
		rows = append(rows, models.RegionDatum{
			Region:     g.key,
			Revenue:    g.sum.InexactFloat64(),
			Percentage: pct,
		})
	}
	return rows
}

// SortByRevenue returns a copy of rows ordered by revenue, highest first.
// Equal revenues keep their relative order.
func SortByRevenue(rows []models.CategoryDatum) []models.CategoryDatum {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b models.CategoryDatum) int {
		switch {
		case a.Revenue > b.Revenue:
			return -1
		case a.Revenue < b.Revenue:
			return 1
		default:
			return 0
		}
	})
	return sorted
}

// MonthLabel is the three-letter month name used as the monthly grouping key.
func MonthLabel(m time.Month) string {
	return m.String()[:3]
}

type monthTotal struct {
	sum  decimal.Decimal
	seen bool
}

func monthTotals(records []models.SaleRecord) [12]monthTotal {
	var months [12]monthTotal
	for _, r := range records {
		m := &months[r.Date.Month()-1]
		m.sum = m.sum.Add(r.TotalAmount)
		m.seen = true
	}
	return months
}

type group[K comparable] struct {
	key   K
	sum   decimal.Decimal
	count int
}

// groupBy sums amounts per key. Keys listed in order come first in that order;
// any other key follows in first-seen order.
func groupBy[K comparable](records []models.SaleRecord, key func(models.SaleRecord) K, order []K) []group[K] {
	index := make(map[K]int)
	var groups []group[K]
	for _, r := range records {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group[K]{key: k})
		}
		groups[i].sum = groups[i].sum.Add(r.TotalAmount)
		groups[i].count++
	}

	rank := func(k K) int {
		if i := slices.Index(order, k); i >= 0 {
			return i
		}
		return len(order) + index[k]
	}
	slices.SortFunc(groups, func(a, b group[K]) int { return rank(a.key) - rank(b.key) })
	return groups
}

func sumAmounts(records []models.SaleRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.TotalAmount)
	}
	return total
}
