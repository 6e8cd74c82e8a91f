package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"sales-dashboard/internal/format"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/table"
)

func recordsCmd(root *rootOptions) *cobra.Command {
	var (
		filter filterOptions
		query  string
		sortBy string
		dir    string
		page   int
	)

	cmd := &cobra.Command{
		Use:   "records",
		Short: "Print one page of the records table",
		Long: `Run the records table over the filtered records: search with --q, then
sort by --sort/--dir, then print page --page.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs, err := filter.state()
			if err != nil {
				return err
			}

			direction, err := parseDirection(dir)
			if err != nil {
				return err
			}
			if sortBy != "" && direction == table.SortNone {
				direction = table.SortAsc
			}

			analytics, err := root.load(cmd)
			if err != nil {
				return err
			}

			ts := table.State{
				Search:        query,
				SortKey:       sortBy,
				SortDirection: direction,
				Page:          page,
				PageSize:      analytics.PageSize(),
			}
			result, err := analytics.Table(cmd.Context(), fs, ts)
			if err != nil {
				return fmt.Errorf("failed to build table: %w", err)
			}

			return printRecords(cmd.OutOrStdout(), analytics.TableEngine(), result)
		},
	}

	filter.register(cmd)
	cmd.Flags().StringVar(&query, "q", "", "table search applied after the filters")
	cmd.Flags().StringVar(&sortBy, "sort", "", "field to sort by (e.g. date, total_amount, customer_name)")
	cmd.Flags().StringVar(&dir, "dir", "", "sort direction: asc or desc (default asc when --sort is set)")
	cmd.Flags().IntVar(&page, "page", 1, "page to print")

	return cmd
}

func printRecords(out io.Writer, engine *table.Engine[models.SaleRecord], result table.Page[models.SaleRecord]) error {
	switch {
	case result.Total == 0:
		_, err := fmt.Fprintln(out, mutedStyle.Render("No records match the current filters"))
		return err
	case len(result.Rows) == 0:
		_, err := fmt.Fprintf(out, "%s\n", mutedStyle.Render(
			fmt.Sprintf("Page %d is past the last page (%d)", result.Page, result.TotalPages)))
		return err
	}

	rows := make([][]string, len(result.Rows))
	for i, r := range result.Rows {
		rows[i] = engine.Cells(r)
	}
	if err := writeTable(out, engine.Headers(), rows); err != nil {
		return err
	}

	f := format.USD()
	from, to := result.Range()
	_, err := fmt.Fprintf(out, "\nShowing %s to %s of %s records\nPages: %s\n",
		f.Count(from), f.Count(to), f.Count(result.Total),
		formatWindow(result.Window, result.Page))
	return err
}
