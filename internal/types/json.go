package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ParseJSON decodes a single JSON document into a cell. Object key order is
// preserved. Numbers without a fraction or exponent become Integer when they
// fit in int64, all other numbers become Float.
func ParseJSON(data []byte) (Value, error) {
	dec := newDecoder(data)
	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("unexpected data after JSON value")
	}
	return v, nil
}

// ParseJSONColumn decodes a JSON array into a column, one cell per element
func ParseJSONColumn(data []byte) (Column, error) {
	v, err := ParseJSON(data)
	if err != nil {
		return nil, err
	}
	if v.Kind() != KindList {
		return nil, fmt.Errorf("expected JSON array for column, got %s", v.Kind())
	}
	return Column(v.Items()), nil
}

// NamedColumn is a column together with its name
type NamedColumn struct {
	Name   string
	Values Column
}

// ParseJSONTable decodes a JSON object mapping column names to arrays of cells.
// Columns are returned in document order.
func ParseJSONTable(data []byte) ([]NamedColumn, error) {
	v, err := ParseJSON(data)
	if err != nil {
		return nil, err
	}
	if v.Kind() != KindRecord {
		return nil, fmt.Errorf("expected JSON object of columns, got %s", v.Kind())
	}
	columns := make([]NamedColumn, 0, len(v.Fields()))
	for _, f := range v.Fields() {
		if f.Value.Kind() != KindList {
			return nil, fmt.Errorf("column %q: expected JSON array, got %s", f.Name, f.Value.Kind())
		}
		columns = append(columns, NamedColumn{Name: f.Name, Values: Column(f.Value.Items())})
	}
	return columns, nil
}

func newDecoder(data []byte) *json.Decoder {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return Value{}, fmt.Errorf("unexpected end of JSON input")
		}
		return Value{}, err
	}
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Boolean(t), nil
	case string:
		return Text(t), nil
	case json.Number:
		return numberValue(t)
	case json.Delim:
		switch t {
		case '{':
			var fields []Field
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("expected object key, got %v", keyTok)
				}
				fv, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				fields = append(fields, F(key, fv))
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Record(fields...), nil
		case '[':
			items := []Value{}
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return ListValue(items...), nil
		}
	}
	return Value{}, fmt.Errorf("unexpected JSON token %v", tok)
}

func numberValue(n json.Number) (Value, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := n.Int64(); err == nil {
			return Integer(i), nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return Value{}, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return Float(f), nil
}
