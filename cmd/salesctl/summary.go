package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"sales-dashboard/internal/aggregate"
	"sales-dashboard/internal/format"
	"sales-dashboard/internal/services"
)

func summaryCmd(root *rootOptions) *cobra.Command {
	var (
		filter     filterOptions
		byRevenue  bool
		showMonths bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print metrics and the monthly, category and region breakdowns",
		Long: `Print the dashboard summary for the records matching the filter flags:
total sales, order count, average order value, top month, and the monthly,
category and region breakdowns.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := filter.state()
			if err != nil {
				return err
			}

			analytics, err := root.load(cmd)
			if err != nil {
				return err
			}

			summary := analytics.Dashboard(cmd.Context(), state)
			if byRevenue {
				summary.Categories = aggregate.SortByRevenue(summary.Categories)
			}
			return printSummary(cmd.OutOrStdout(), summary, showMonths)
		},
	}

	filter.register(cmd)
	cmd.Flags().BoolVar(&byRevenue, "by-revenue", false, "order categories by revenue, highest first")
	cmd.Flags().BoolVar(&showMonths, "monthly", true, "include the monthly breakdown")

	return cmd
}

func printSummary(out io.Writer, s services.DashboardSummary, showMonths bool) error {
	f := format.USD()

	if err := writeTitle(out, "Sales Summary"); err != nil {
		return err
	}

	if err := writeTable(out, []string{"Metric", "Value"}, [][]string{
		{"Records", fmt.Sprintf("%s of %s", f.Count(s.FilteredCount), f.Count(s.TotalCount))},
		{"Total Sales", f.Currency(s.Metrics.TotalSales)},
		{"Total Orders", f.Count(s.Metrics.TotalOrders)},
		{"Average Order Value", f.Currency(s.Metrics.AverageOrderValue)},
		{"Top Month", s.Metrics.TopPerformingMonth},
	}); err != nil {
		return err
	}

	if len(s.ActiveFilters) > 0 {
		labels := make([]string, len(s.ActiveFilters))
		for i, chip := range s.ActiveFilters {
			labels[i] = chip.Label
		}
		if _, err := fmt.Fprintf(out, "\n%s %v\n", mutedStyle.Render("Filters:"), labels); err != nil {
			return err
		}
	}

	if showMonths {
		rows := make([][]string, len(s.Monthly))
		for i, m := range s.Monthly {
			rows[i] = []string{m.Month, f.Currency(m.Sales)}
		}
		if err := section(out, "Monthly Sales", []string{"Month", "Sales"}, rows); err != nil {
			return err
		}
	}

	categoryRows := make([][]string, len(s.Categories))
	for i, c := range s.Categories {
		categoryRows[i] = []string{string(c.Category), f.Currency(c.Revenue), strconv.Itoa(c.Orders)}
	}
	if err := section(out, "Categories", []string{"Category", "Revenue", "Orders"}, categoryRows); err != nil {
		return err
	}

	regionRows := make([][]string, len(s.Regions))
	for i, r := range s.Regions {
		regionRows[i] = []string{string(r.Region), f.Currency(r.Revenue), f.Percent(r.Percentage)}
	}
	return section(out, "Regions", []string{"Region", "Revenue", "Share"}, regionRows)
}

func section(out io.Writer, title string, headers []string, rows [][]string) error {
	if _, err := fmt.Fprintln(out); err != nil {
		return err
	}
	if err := writeTitle(out, title); err != nil {
		return err
	}
	return writeTable(out, headers, rows)
}
