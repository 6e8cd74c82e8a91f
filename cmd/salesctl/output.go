package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// writeTable prints headers and rows as tab-aligned columns with a rule under
// the header.
func writeTable(out io.Writer, headers []string, rows [][]string) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	styled := make([]string, len(headers))
	rules := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = headerStyle.Render(h)
		rules[i] = strings.Repeat("─", max(len(h), 3))
	}
	if _, err := fmt.Fprintln(w, strings.Join(styled, "\t")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := fmt.Fprintln(w, strings.Join(rules, "\t")); err != nil {
		return fmt.Errorf("failed to write separator: %w", err)
	}

	for _, row := range rows {
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	return w.Flush()
}

func writeTitle(out io.Writer, title string) error {
	_, err := fmt.Fprintf(out, "%s\n\n", titleStyle.Render(title))
	return err
}

// formatWindow renders page numbers with the current page in brackets.
func formatWindow(window []int, current int) string {
	parts := make([]string, len(window))
	for i, p := range window {
		if p == current {
			parts[i] = fmt.Sprintf("[%d]", p)
			continue
		}
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, " ")
}
