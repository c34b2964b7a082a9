package types

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// FromGo normalizes a native Go value into a cell. Maps become records with
// their keys sorted, since Go maps carry no order; use *Struct or []Field when
// the field order matters. Unrecognized types become Other.
func FromGo(v interface{}) Value {
	switch val := v.(type) {
	case nil:
		return Null()
	case Value:
		return val
	case int:
		return Integer(int64(val))
	case int8:
		return Integer(int64(val))
	case int16:
		return Integer(int64(val))
	case int32:
		return Integer(int64(val))
	case int64:
		return Integer(val)
	case uint8:
		return Integer(int64(val))
	case uint16:
		return Integer(int64(val))
	case uint32:
		return Integer(int64(val))
	case float32:
		return Float(float64(val))
	case float64:
		return Float(val)
	case bool:
		return Boolean(val)
	case string:
		return Text(val)
	case uuid.UUID:
		return Text(val.String())
	case []Field:
		return Record(val...)
	case *Struct:
		if val == nil {
			return Null()
		}
		fields := make([]Field, 0, val.Len())
		for _, name := range val.FieldNames() {
			fv, _ := val.Get(name)
			fields = append(fields, F(name, FromGo(fv)))
		}
		return Record(fields...)
	case map[string]interface{}:
		if val == nil {
			return Null()
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]Field, len(keys))
		for i, k := range keys {
			fields[i] = F(k, FromGo(val[k]))
		}
		return Record(fields...)
	case []interface{}:
		if val == nil {
			return Null()
		}
		items := make([]Value, len(val))
		for i, item := range val {
			items[i] = FromGo(item)
		}
		return ListValue(items...)
	case *ListAny:
		if val == nil {
			return Null()
		}
		values := val.Values()
		items := make([]Value, len(values))
		for i, item := range values {
			items[i] = FromGo(item)
		}
		return ListValue(items...)
	default:
		return Other(fmt.Sprintf("%T", v))
	}
}

// ColumnFromGo normalizes a slice of native Go values into a column
func ColumnFromGo(values []interface{}) Column {
	col := make(Column, len(values))
	for i, v := range values {
		col[i] = FromGo(v)
	}
	return col
}
