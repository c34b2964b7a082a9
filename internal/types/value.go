package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the tag of a dynamically-typed cell value
type Kind int

const (
	KindNull Kind = iota
	KindInteger
	KindFloat
	KindBoolean
	KindText
	KindRecord
	KindList
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "NULL"
	case KindInteger:
		return "INTEGER"
	case KindFloat:
		return "FLOAT"
	case KindBoolean:
		return "BOOLEAN"
	case KindText:
		return "TEXT"
	case KindRecord:
		return "RECORD"
	case KindList:
		return "LIST"
	case KindOther:
		return "OTHER"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Field is one named entry of a record, in encounter order
type Field struct {
	Name  string
	Value Value
}

// Value is one cell of an untyped column. Only the payload matching Kind is set.
type Value struct {
	kind   Kind
	i      int64
	f      float64
	b      bool
	s      string
	fields []Field
	items  []Value
}

// Column is the ordered sequence of cells of one untyped column
type Column []Value

// Null returns the null cell
func Null() Value { return Value{kind: KindNull} }

// Integer returns an integer cell
func Integer(v int64) Value { return Value{kind: KindInteger, i: v} }

// Float returns a floating point cell
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// Boolean returns a boolean cell
func Boolean(v bool) Value { return Value{kind: KindBoolean, b: v} }

// Text returns a string cell
func Text(v string) Value { return Value{kind: KindText, s: v} }

// Record returns a record cell. The field order is kept as given.
func Record(fields ...Field) Value {
	return Value{kind: KindRecord, fields: fields}
}

// ListValue returns a list cell
func ListValue(items ...Value) Value {
	return Value{kind: KindList, items: items}
}

// Other returns a cell holding a value outside the supported tag set.
// repr is only used for diagnostics.
func Other(repr string) Value { return Value{kind: KindOther, s: repr} }

// F is shorthand for building a record field
func F(name string, v Value) Field { return Field{Name: name, Value: v} }

// Kind returns the tag of the value
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is the null cell
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int returns the integer payload
func (v Value) Int() int64 { return v.i }

// Float returns the floating point payload
func (v Value) Float() float64 { return v.f }

// Bool returns the boolean payload
func (v Value) Bool() bool { return v.b }

// Str returns the text payload, or the diagnostic representation of an Other value
func (v Value) Str() string { return v.s }

// Fields returns the fields of a record in order
func (v Value) Fields() []Field { return v.fields }

// FieldNames returns the field names of a record in order
func (v Value) FieldNames() []string {
	names := make([]string, len(v.fields))
	for i, f := range v.fields {
		names[i] = f.Name
	}
	return names
}

// Items returns the elements of a list
func (v Value) Items() []Value { return v.items }

// String returns a debug representation of the value
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBoolean:
		return strconv.FormatBool(v.b)
	case KindText:
		return strconv.Quote(v.s)
	case KindRecord:
		var sb strings.Builder
		sb.WriteString("{")
		for i, f := range v.fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(f.Name)
			sb.WriteString(": ")
			sb.WriteString(f.Value.String())
		}
		sb.WriteString("}")
		return sb.String()
	case KindList:
		var sb strings.Builder
		sb.WriteString("[")
		for i, item := range v.items {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(item.String())
		}
		sb.WriteString("]")
		return sb.String()
	default:
		return "<" + v.s + ">"
	}
}
