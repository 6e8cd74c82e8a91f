// Package table searches, sorts and paginates any homogeneous record slice
// for tabular display.
//
// Each record type gets a schema: an explicit list of typed fields. Columns
// refer to those fields by id, and free-text search covers every text field
// of the schema.
package table

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	ErrUnknownField   = errors.New("unknown field")
	ErrDuplicateField = errors.New("duplicate field")
)

// Page is the visible slice of a table run plus pagination metadata.
type Page[T any] struct {
	Rows       []T   `json:"rows"`
	Total      int   `json:"total"`
	TotalPages int   `json:"totalPages"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Window     []int `json:"window"`
}

// Range returns the 1-based positions of the first and last visible rows,
// or 0, 0 for an empty page.
func (p Page[T]) Range() (from, to int) {
	start, ok := offset(p.Total, p.Page, p.PageSize)
	if !ok || len(p.Rows) == 0 {
		return 0, 0
	}
	return start + 1, start + len(p.Rows)
}

type Option func(*options)

type options struct {
	locale language.Tag
}

// WithLocale sets the collation locale for text sorting. The default is English.
func WithLocale(tag language.Tag) Option {
	return func(o *options) { o.locale = tag }
}

// Engine runs the search, sort and paginate pipeline for records of type T.
// An Engine is immutable after New and safe for concurrent use.
type Engine[T any] struct {
	fields  map[string]Field[T]
	text    []Field[T]
	columns []Column[T]
	locale  language.Tag
}

// New builds an engine from a schema and its columns. It fails when two
// fields share an id or a column refers to a field missing from the schema.
func New[T any](fields []Field[T], columns []Column[T], opts ...Option) (*Engine[T], error) {
	o := options{locale: language.English}
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine[T]{
		fields:  make(map[string]Field[T], len(fields)),
		columns: slices.Clone(columns),
		locale:  o.locale,
	}
	for _, f := range fields {
		if _, dup := e.fields[f.id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, f.id)
		}
		e.fields[f.id] = f
		if f.kind == KindText {
			e.text = append(e.text, f)
		}
	}
	for _, c := range columns {
		if _, ok := e.fields[c.Field]; !ok {
			return nil, fmt.Errorf("column %q: %w: %q", c.Label, ErrUnknownField, c.Field)
		}
	}
	return e, nil
}

// MustNew is like New but panics on an invalid schema.
func MustNew[T any](fields []Field[T], columns []Column[T], opts ...Option) *Engine[T] {
	e, err := New(fields, columns, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Engine[T]) Columns() []Column[T] {
	return slices.Clone(e.columns)
}

// Field looks up a schema field by id.
func (e *Engine[T]) Field(id string) (Field[T], bool) {
	f, ok := e.fields[id]
	return f, ok
}

// ToggleSort advances the sort cycle of state for the column showing field.
// Activating a column that is not sortable leaves state unchanged.
func (e *Engine[T]) ToggleSort(state State, field string) (State, error) {
	for _, c := range e.columns {
		if c.Field != field {
			continue
		}
		if !c.Sortable {
			return state, nil
		}
		return state.ToggleSort(field), nil
	}
	return state, fmt.Errorf("%w: %q", ErrUnknownField, field)
}

// Validate checks that state only refers to known fields and directions.
func (e *Engine[T]) Validate(state State) error {
	switch state.SortDirection {
	case SortNone, SortAsc, SortDesc:
	default:
		return fmt.Errorf("invalid sort direction %q", state.SortDirection)
	}
	if state.SortKey == "" || state.SortDirection == SortNone {
		return nil
	}
	if _, ok := e.fields[state.SortKey]; !ok {
		return fmt.Errorf("sort key: %w: %q", ErrUnknownField, state.SortKey)
	}
	return nil
}

// Run applies search, then sort, then pagination to records.
func (e *Engine[T]) Run(records []T, state State) (Page[T], error) {
	if err := e.Validate(state); err != nil {
		return Page[T]{}, err
	}

	searched := e.Search(records, state.Search)
	sorted := e.sort(searched, state.SortKey, state.SortDirection)

	size := state.pageSize()
	totalPages := TotalPages(len(sorted), size)
	return Page[T]{
		Rows:       Paginate(sorted, state.Page, size),
		Total:      len(sorted),
		TotalPages: totalPages,
		Page:       state.Page,
		PageSize:   size,
		Window:     PageWindow(totalPages, state.Page),
	}, nil
}

// Search keeps the records where any text field contains term, ignoring case.
// An empty term keeps every record. The result is always a new slice.
func (e *Engine[T]) Search(records []T, term string) []T {
	if term == "" {
		return slices.Clone(records)
	}
	needle := strings.ToLower(term)

	result := make([]T, 0, len(records))
	for _, r := range records {
		for _, f := range e.text {
			if v, ok := f.text(r); ok && strings.Contains(strings.ToLower(v), needle) {
				result = append(result, r)
				break
			}
		}
	}
	return result
}

// Sort returns a copy of records ordered by field. Absent values are greater
// than any present value, so they come last ascending and first descending.
// Equal values keep their input order.
func (e *Engine[T]) Sort(records []T, field string, dir SortDirection) ([]T, error) {
	if err := e.Validate(State{SortKey: field, SortDirection: dir}); err != nil {
		return nil, err
	}
	return e.sort(slices.Clone(records), field, dir), nil
}

// sort orders records in place.
func (e *Engine[T]) sort(records []T, field string, dir SortDirection) []T {
	if field == "" || dir == SortNone {
		return records
	}
	f := e.fields[field]
	compare := e.comparator(f)
	if dir == SortDesc {
		asc := compare
		compare = func(a, b T) int { return -asc(a, b) }
	}
	slices.SortStableFunc(records, compare)
	return records
}

func (e *Engine[T]) comparator(f Field[T]) func(a, b T) int {
	switch f.kind {
	case KindText:
		col := collate.New(e.locale)
		return func(a, b T) int {
			av, aok := f.text(a)
			bv, bok := f.text(b)
			if c, done := compareAbsent(aok, bok); done {
				return c
			}
			return col.CompareString(av, bv)
		}
	case KindNumber:
		return func(a, b T) int {
			av, aok := f.num(a)
			bv, bok := f.num(b)
			if c, done := compareAbsent(aok, bok); done {
				return c
			}
			return cmp.Compare(av, bv)
		}
	default:
		return func(a, b T) int {
			av, aok := f.date(a)
			bv, bok := f.date(b)
			if c, done := compareAbsent(aok, bok); done {
				return c
			}
			return av.Compare(bv)
		}
	}
}

// compareAbsent orders absent values after present ones.
func compareAbsent(aok, bok bool) (int, bool) {
	switch {
	case aok && bok:
		return 0, false
	case !aok && !bok:
		return 0, true
	case !aok:
		return 1, true
	default:
		return -1, true
	}
}

// Cells renders row through the column formatters. Columns without a
// formatter show the raw value; absent values render as an empty string.
func (e *Engine[T]) Cells(row T) []string {
	cells := make([]string, 0, len(e.columns))
	for _, c := range e.columns {
		raw := e.fields[c.Field].Value(row)
		if c.Format != nil {
			cells = append(cells, c.Format(raw, row))
			continue
		}
		cells = append(cells, defaultCell(raw))
	}
	return cells
}

// Headers returns the column labels in display order.
func (e *Engine[T]) Headers() []string {
	headers := make([]string, 0, len(e.columns))
	for _, c := range e.columns {
		headers = append(headers, c.Label)
	}
	return headers
}

func defaultCell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format(time.DateOnly)
	default:
		return fmt.Sprint(v)
	}
}
