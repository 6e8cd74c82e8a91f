package table

import "time"

// Kind selects how a field is searched and compared.
type Kind int

const (
	// KindText fields take part in free-text search and sort with the locale collator.
	KindText Kind = iota
	// KindNumber fields sort numerically and are not searched.
	KindNumber
	// KindDate fields sort chronologically and are not searched.
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	default:
		return "unknown"
	}
}

// Field is one statically typed attribute of the record type T. Build fields
// with the TextField, NumberField and DateField constructors (or their
// Optional variants for attributes that can be absent).
type Field[T any] struct {
	id   string
	kind Kind
	text func(T) (string, bool)
	num  func(T) (float64, bool)
	date func(T) (time.Time, bool)
}

func (f Field[T]) ID() string { return f.id }

func (f Field[T]) Kind() Kind { return f.kind }

// Value returns the raw attribute of row, or nil when it is absent.
func (f Field[T]) Value(row T) any {
	switch f.kind {
	case KindText:
		if v, ok := f.text(row); ok {
			return v
		}
	case KindNumber:
		if v, ok := f.num(row); ok {
			return v
		}
	case KindDate:
		if v, ok := f.date(row); ok {
			return v
		}
	}
	return nil
}

func TextField[T any](id string, get func(T) string) Field[T] {
	return OptionalTextField(id, func(row T) (string, bool) { return get(row), true })
}

func OptionalTextField[T any](id string, get func(T) (string, bool)) Field[T] {
	return Field[T]{id: id, kind: KindText, text: get}
}

func NumberField[T any](id string, get func(T) float64) Field[T] {
	return OptionalNumberField(id, func(row T) (float64, bool) { return get(row), true })
}

func OptionalNumberField[T any](id string, get func(T) (float64, bool)) Field[T] {
	return Field[T]{id: id, kind: KindNumber, num: get}
}

func DateField[T any](id string, get func(T) time.Time) Field[T] {
	return OptionalDateField(id, func(row T) (time.Time, bool) { return get(row), true })
}

func OptionalDateField[T any](id string, get func(T) (time.Time, bool)) Field[T] {
	return Field[T]{id: id, kind: KindDate, date: get}
}

// Column describes how one field is shown. Field must name a field of the
// engine's schema. Width is a display hint only.
type Column[T any] struct {
	Field    string
	Label    string
	Sortable bool
	Format   func(value any, row T) string
	Width    string
}
