package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// List is a converted LIST value. Elements of a resolved column all share one
// logical type; nil elements are nulls.
type List[T any] struct {
	values []T
}

// ListAny is the list produced by the value converter
type ListAny = List[interface{}]

// NewList creates a List from a slice, copying it
func NewList[T any](values []T) *List[T] {
	listValues := make([]T, len(values))
	copy(listValues, values)
	return &List[T]{
		values: listValues,
	}
}

// NewListAny creates an untyped List with room for n elements
func NewListAny(n int) *ListAny {
	return &ListAny{values: make([]interface{}, 0, n)}
}

// Values returns the underlying slice
func (l *List[T]) Values() []T {
	if l == nil {
		return nil
	}
	return l.values
}

// Len returns the number of elements
func (l *List[T]) Len() int {
	if l == nil {
		return 0
	}
	return len(l.values)
}

// Get returns the element at the given index
func (l *List[T]) Get(i int) (T, error) {
	var zero T
	if l == nil || i < 0 || i >= len(l.values) {
		return zero, fmt.Errorf("index out of bounds: %d", i)
	}
	return l.values[i], nil
}

// Append adds elements to the end of the list
func (l *List[T]) Append(values ...T) {
	if l == nil {
		return
	}
	l.values = append(l.values, values...)
}

// String renders the list the way DuckDB prints LIST values
func (l *List[T]) String() string {
	if l == nil {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range l.values {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(formatElement(v))
	}
	sb.WriteByte(']')
	return sb.String()
}

// Value implements driver.Valuer
func (l List[T]) Value() (driver.Value, error) {
	if l.values == nil {
		return nil, nil
	}
	return json.Marshal(l.values)
}

// MarshalJSON implements json.Marshaler
func (l *List[T]) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("null"), nil
	}
	return json.Marshal(l.values)
}

func formatElement(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + val + "'"
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
