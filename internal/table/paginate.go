package table

import "slices"

// windowSize is the number of page links shown in pagination controls.
const windowSize = 5

// TotalPages is ceil(n / size).
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	pages := n / size
	if n%size != 0 {
		pages++
	}
	return pages
}

// offset returns the index of the first row of the 1-based page, and false
// when the page holds no rows.
func offset(n, page, size int) (int, bool) {
	if page < 1 || size <= 0 || page-1 >= TotalPages(n, size) {
		return 0, false
	}
	return (page - 1) * size, true
}

// Paginate returns a copy of the rows on the 1-based page. A page outside the
// available range yields an empty slice.
func Paginate[T any](rows []T, page, size int) []T {
	start, ok := offset(len(rows), page, size)
	if !ok {
		return []T{}
	}
	end := start + min(size, len(rows)-start)
	return slices.Clone(rows[start:end])
}

// PageWindow picks up to five page numbers to show around current:
// all pages when there are five or fewer, otherwise the first five near the
// start, the last five near the end, and current centred in between.
func PageWindow(totalPages, current int) []int {
	n := min(windowSize, totalPages)
	if n <= 0 {
		return []int{}
	}

	var first int
	switch {
	case totalPages <= windowSize:
		first = 1
	case current <= 3:
		first = 1
	case current >= totalPages-2:
		first = totalPages - 4
	default:
		first = current - 2
	}

	window := make([]int, n)
	for i := range window {
		window[i] = first + i
	}
	return window
}
