package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/language"

	"sales-dashboard/internal/aggregate"
	"sales-dashboard/internal/filters"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/sampledata"
	"sales-dashboard/internal/table"
)

const defaultCacheSize = 128

// ErrNoRecords is returned when a data source yields no valid sale records.
var ErrNoRecords = errors.New("no valid records found")

// DashboardSummary is everything the dashboard shows for one filter state.
type DashboardSummary struct {
	Metrics       models.Metrics         `json:"metrics"`
	Monthly       []models.MonthlyDatum  `json:"monthly_sales"`
	Categories    []models.CategoryDatum `json:"categories"`
	Regions       []models.RegionDatum   `json:"regions"`
	FilteredCount int                    `json:"filtered_count"`
	TotalCount    int                    `json:"total_count"`
	ActiveFilters []filters.Chip         `json:"active_filters"`
}

// Analytics holds the loaded sale records and answers dashboard and table
// queries over them. Summaries are memoized per filter state until the data
// changes.
type Analytics struct {
	mu         sync.RWMutex
	records    []models.SaleRecord
	source     string
	loadedAt   time.Time
	generation uint64

	summaries *lru.Cache[string, DashboardSummary]
	hits      atomic.Int64
	misses    atomic.Int64

	table    *table.Engine[models.SaleRecord]
	pageSize int
	logger   *slog.Logger
}

type Option func(*analyticsOptions)

type analyticsOptions struct {
	logger    *slog.Logger
	cacheSize int
	locale    language.Tag
	pageSize  int
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *analyticsOptions) { o.logger = logger }
}

// WithCacheSize bounds the number of memoized dashboard summaries.
func WithCacheSize(n int) Option {
	return func(o *analyticsOptions) { o.cacheSize = n }
}

// WithLocale sets the collation locale of the records table.
func WithLocale(tag language.Tag) Option {
	return func(o *analyticsOptions) { o.locale = tag }
}

// WithPageSize sets the page size used when a table query does not name one.
func WithPageSize(n int) Option {
	return func(o *analyticsOptions) { o.pageSize = n }
}

func NewAnalytics(opts ...Option) *Analytics {
	o := analyticsOptions{
		logger:    slog.Default(),
		cacheSize: defaultCacheSize,
		locale:    language.AmericanEnglish,
		pageSize:  table.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cacheSize <= 0 {
		o.cacheSize = defaultCacheSize
	}
	if o.pageSize <= 0 {
		o.pageSize = table.DefaultPageSize
	}

	// lru.New only fails for a non-positive size.
	summaries, _ := lru.New[string, DashboardSummary](o.cacheSize)

	return &Analytics{
		summaries: summaries,
		table:     NewSaleTable(o.locale),
		pageSize:  o.pageSize,
		logger:    observability.Component(o.logger, "analytics"),
	}
}

// SetData replaces the record set and drops every memoized summary.
func (a *Analytics) SetData(records []models.SaleRecord) {
	a.replace(slices.Clone(records), "memory")
}

// LoadSample replaces the record set with n generated records.
func (a *Analytics) LoadSample(n int, seed uint64, year int) error {
	if n <= 0 {
		return fmt.Errorf("sample size must be positive, got %d", n)
	}
	a.replace(sampledata.Generate(n, seed, year), fmt.Sprintf("sample(n=%d,seed=%d)", n, seed))
	return nil
}

func (a *Analytics) replace(records []models.SaleRecord, source string) {
	a.mu.Lock()
	a.records = records
	a.source = source
	a.loadedAt = time.Now()
	a.generation++
	a.mu.Unlock()

	a.summaries.Purge()
	a.logger.Info("records loaded", "source", source, "records", len(records))
}

// snapshot returns the current records and their generation. Callers must
// not modify the returned slice.
func (a *Analytics) snapshot() ([]models.SaleRecord, uint64) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.records, a.generation
}

// Records returns a copy of every loaded record.
func (a *Analytics) Records() []models.SaleRecord {
	records, _ := a.snapshot()
	return slices.Clone(records)
}

// Dashboard filters the records by state and summarizes the result.
func (a *Analytics) Dashboard(ctx context.Context, state models.FilterState) DashboardSummary {
	records, gen := a.snapshot()
	key := strconv.FormatUint(gen, 10) + "#" + filters.Key(state)

	summary, ok := a.summaries.Get(key)
	if ok {
		a.hits.Add(1)
	} else {
		a.misses.Add(1)
		summary = a.summarize(ctx, records, state)
		a.summaries.Add(key, summary)
	}

	summary.ActiveFilters = filters.Chips(state)
	return summary
}

func (a *Analytics) summarize(ctx context.Context, records []models.SaleRecord, state models.FilterState) DashboardSummary {
	_, span := observability.StartSpan(ctx, "analytics.dashboard")
	defer span.End(a.logger)

	filtered := filters.Apply(records, state)
	span.SetTag("filtered", strconv.Itoa(len(filtered)))

	return DashboardSummary{
		Metrics:       aggregate.Summarize(filtered),
		Monthly:       aggregate.Monthly(filtered),
		Categories:    aggregate.ByCategory(filtered),
		Regions:       aggregate.ByRegion(filtered),
		FilteredCount: len(filtered),
		TotalCount:    len(records),
	}
}

// Table filters the records by fs and runs the records table over them.
// A table state without a page size uses the configured one.
func (a *Analytics) Table(ctx context.Context, fs models.FilterState, ts table.State) (table.Page[models.SaleRecord], error) {
	_, span := observability.StartSpan(ctx, "analytics.table")
	defer span.End(a.logger)

	if ts.PageSize <= 0 {
		ts.PageSize = a.pageSize
	}
	if ts.Page <= 0 {
		ts.Page = 1
	}

	records, _ := a.snapshot()
	page, err := a.table.Run(filters.Apply(records, fs), ts)
	if err != nil {
		span.SetError(err)
		return table.Page[models.SaleRecord]{}, err
	}
	span.SetTag("total", strconv.Itoa(page.Total))
	return page, nil
}

// TableEngine exposes the records table schema for rendering.
func (a *Analytics) TableEngine() *table.Engine[models.SaleRecord] {
	return a.table
}

func (a *Analytics) PageSize() int {
	return a.pageSize
}

// Stats reports load and cache counters for monitoring.
func (a *Analytics) Stats() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return map[string]any{
		"record_count":  len(a.records),
		"source":        a.source,
		"last_loaded":   a.loadedAt,
		"generation":    a.generation,
		"cache_entries": a.summaries.Len(),
		"cache_hits":    a.hits.Load(),
		"cache_misses":  a.misses.Load(),
		"page_size":     a.pageSize,
	}
}
