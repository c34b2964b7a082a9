package types

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Struct is a converted STRUCT value. Field order follows the column's field
// schema and is preserved through String and JSON encoding.
type Struct struct {
	fields map[string]interface{}
	order  []string
}

// NewStruct creates an empty Struct
func NewStruct() *Struct {
	return &Struct{
		fields: make(map[string]interface{}),
		order:  make([]string, 0),
	}
}

// NewStructWithCapacity creates an empty Struct sized for n fields
func NewStructWithCapacity(n int) *Struct {
	return &Struct{
		fields: make(map[string]interface{}, n),
		order:  make([]string, 0, n),
	}
}

// Set sets a field value, appending the name to the field order on first use
func (s *Struct) Set(name string, value interface{}) {
	if s.fields == nil {
		s.fields = make(map[string]interface{})
	}
	if _, exists := s.fields[name]; !exists {
		s.order = append(s.order, name)
	}
	s.fields[name] = value
}

// Get returns a field value
func (s *Struct) Get(name string) (interface{}, bool) {
	if s == nil || s.fields == nil {
		return nil, false
	}
	val, ok := s.fields[name]
	return val, ok
}

// FieldNames returns field names in order
func (s *Struct) FieldNames() []string {
	if s == nil {
		return nil
	}
	return s.order
}

// Len returns the number of fields
func (s *Struct) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// String renders the struct the way DuckDB prints STRUCT values
func (s *Struct) String() string {
	if s == nil || s.fields == nil {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, name := range s.order {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "'%s': %s", name, formatElement(s.fields[name]))
	}
	sb.WriteByte('}')
	return sb.String()
}

// Value implements driver.Valuer
func (s Struct) Value() (driver.Value, error) {
	if s.fields == nil {
		return nil, nil
	}
	return s.MarshalJSON()
}

// MarshalJSON implements json.Marshaler, emitting fields in order
func (s *Struct) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(s.fields[name])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal field %s: %w", name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
