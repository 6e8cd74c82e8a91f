package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sales-dashboard/internal/table"
)

func windowCmd() *cobra.Command {
	var total, current int

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Print the page numbers shown around the current page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if total < 0 {
				return fmt.Errorf("--total must not be negative, got %d", total)
			}
			window := table.PageWindow(total, current)
			if len(window) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("No pages"))
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), formatWindow(window, current))
			return err
		},
	}

	cmd.Flags().IntVar(&total, "total", 0, "total number of pages")
	cmd.Flags().IntVar(&current, "current", 1, "current page")
	_ = cmd.MarkFlagRequired("total")

	return cmd
}
