package table

// DefaultPageSize is used when a state carries no positive page size.
const DefaultPageSize = 10

type SortDirection string

const (
	SortNone SortDirection = ""
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// State is the table view configuration. Transitions return a new State and
// leave the receiver untouched.
type State struct {
	Search        string        `json:"search"`
	SortKey       string        `json:"sortKey"`
	SortDirection SortDirection `json:"sortDirection"`
	Page          int           `json:"page"`
	PageSize      int           `json:"pageSize"`
}

func NewState() State {
	return State{Page: 1, PageSize: DefaultPageSize}
}

// WithSearch sets the search term and returns to the first page.
func (s State) WithSearch(term string) State {
	s.Search = term
	s.Page = 1
	return s
}

// ToggleSort advances the sort cycle for field: ascending, then descending,
// then unsorted. Selecting a different field starts again at ascending.
func (s State) ToggleSort(field string) State {
	if s.SortKey != field || s.SortDirection == SortNone {
		s.SortKey = field
		s.SortDirection = SortAsc
		return s
	}

	switch s.SortDirection {
	case SortAsc:
		s.SortDirection = SortDesc
	default:
		s.SortKey = ""
		s.SortDirection = SortNone
	}
	return s
}

// WithPage moves to page without clamping; an out-of-range page yields an empty result.
func (s State) WithPage(page int) State {
	s.Page = page
	return s
}

// WithPageSize changes the page size and keeps the current page. Callers that
// shrink the page count should follow up with Clamp.
func (s State) WithPageSize(size int) State {
	if size <= 0 {
		size = DefaultPageSize
	}
	s.PageSize = size
	return s
}

// Clamp pulls the page into [1, max(1, totalPages)].
func (s State) Clamp(totalPages int) State {
	s.Page = min(max(s.Page, 1), max(totalPages, 1))
	return s
}

func (s State) First() State {
	s.Page = 1
	return s
}

func (s State) Prev() State {
	s.Page = max(s.Page-1, 1)
	return s
}

func (s State) Next(totalPages int) State {
	s.Page = min(s.Page+1, max(totalPages, 1))
	return s
}

func (s State) Last(totalPages int) State {
	s.Page = max(totalPages, 1)
	return s
}

func (s State) pageSize() int {
	if s.PageSize <= 0 {
		return DefaultPageSize
	}
	return s.PageSize
}
