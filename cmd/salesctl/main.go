package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sales-dashboard/internal/config"
	"sales-dashboard/internal/filters"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/services"
	"sales-dashboard/internal/table"
)

var version = "dev"

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	csvFile    string
	sampleSize int
	seed       uint64
	year       int
	logLevel   string
	pageSize   int
}

// filterOptions holds the dashboard filter flags.
type filterOptions struct {
	search     string
	start      string
	end        string
	categories []string
	regions    []string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "salesctl",
		Short: "Inspect sales records from the terminal",
		Long: `salesctl loads sales records from a CSV file or the sample generator and
prints the same summaries, tables and page windows as the web dashboard.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.csvFile, "csv", "", "CSV file to load (default: generate sample records)")
	flags.IntVar(&opts.sampleSize, "sample", 50, "number of sample records to generate")
	flags.Uint64Var(&opts.seed, "seed", 2024, "sample generator seed")
	flags.IntVar(&opts.year, "year", 2024, "year of the sample records")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.IntVar(&opts.pageSize, "page-size", 10, "rows per table page")

	cmd.AddCommand(summaryCmd(opts))
	cmd.AddCommand(recordsCmd(opts))
	cmd.AddCommand(windowCmd())

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// load builds the analytics service and fills it from the configured source.
func (o *rootOptions) load(cmd *cobra.Command) (*services.Analytics, error) {
	logger := observability.NewLoggerTo(cmd.ErrOrStderr(), config.LoggerConfig{
		Level:  o.logLevel,
		Format: "text",
	})

	analytics := services.NewAnalytics(
		services.WithLogger(logger),
		services.WithPageSize(o.pageSize),
	)

	if o.csvFile != "" {
		if err := analytics.LoadFromCSV(cmd.Context(), o.csvFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", o.csvFile, err)
		}
		return analytics, nil
	}

	if err := analytics.LoadSample(o.sampleSize, o.seed, o.year); err != nil {
		return nil, fmt.Errorf("failed to generate sample records: %w", err)
	}
	return analytics, nil
}

func (f *filterOptions) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.search, "search", "", "keep records whose customer, product, category or region contains this text")
	flags.StringVar(&f.start, "start", "", "first date to include (YYYY-MM-DD)")
	flags.StringVar(&f.end, "end", "", "last date to include (YYYY-MM-DD)")
	flags.StringSliceVar(&f.categories, "category", nil, "categories to include (repeatable or comma separated)")
	flags.StringSliceVar(&f.regions, "region", nil, "regions to include (repeatable or comma separated)")
}

// state converts the flags into a filter state through the reducer.
func (f *filterOptions) state() (models.FilterState, error) {
	state, err := filters.FromStrings(f.search, f.start, f.end, f.categories, f.regions)
	var invalid *filters.InvalidValueError
	if errors.As(err, &invalid) {
		return models.FilterState{}, fmt.Errorf("--%s: %w", invalid.Field, invalid.Err)
	}
	return state, err
}

func parseDirection(raw string) (table.SortDirection, error) {
	switch dir := table.SortDirection(raw); dir {
	case table.SortNone, table.SortAsc, table.SortDesc:
		return dir, nil
	default:
		return table.SortNone, fmt.Errorf("--dir must be asc or desc, got %q", raw)
	}
}
