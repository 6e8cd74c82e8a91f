// Package format renders dashboard numbers for display.
package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders amounts and counts with the digit grouping of one locale.
// A Formatter is not safe for concurrent use; create one per goroutine.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// New returns a Formatter for locale using symbol as the currency prefix.
// An unparseable locale falls back to American English.
func New(locale, symbol string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	return &Formatter{printer: message.NewPrinter(tag), symbol: symbol}
}

// USD is the formatter the dashboard uses by default.
func USD() *Formatter {
	return New("en-US", "$")
}

// Currency formats v with two decimals, e.g. "$1,234.50".
func (f *Formatter) Currency(v float64) string {
	if v < 0 {
		return "-" + f.symbol + f.printer.Sprintf("%.2f", -v)
	}
	return f.symbol + f.printer.Sprintf("%.2f", v)
}

// Count formats n with digit grouping, e.g. "1,234".
func (f *Formatter) Count(n int) string {
	return f.printer.Sprintf("%d", n)
}

// Percent formats v with one decimal, e.g. "25.0%".
func (f *Formatter) Percent(v float64) string {
	return f.printer.Sprintf("%.1f", v) + "%"
}
