package storage

import (
	"fmt"

	"github.com/connerohnesorge/dukdb-resolve/internal/types"
)

// ValidityMask tracks null values in a vector
type ValidityMask struct {
	bits []uint64
}

// NewValidityMask creates a new validity mask for the given size
func NewValidityMask(size int) *ValidityMask {
	// 64 bits per uint64
	numBits := (size + 63) / 64
	return &ValidityMask{
		bits: make([]uint64, numBits),
	}
}

// SetValid marks a position as valid (not null)
func (v *ValidityMask) SetValid(pos int) {
	v.ensure(pos)
	v.bits[pos/64] |= 1 << (pos % 64)
}

// SetInvalid marks a position as invalid (null)
func (v *ValidityMask) SetInvalid(pos int) {
	v.ensure(pos)
	v.bits[pos/64] &= ^(1 << (pos % 64))
}

// IsValid checks if a position is valid (not null)
func (v *ValidityMask) IsValid(pos int) bool {
	idx := pos / 64
	if idx >= len(v.bits) {
		return false
	}
	return (v.bits[idx] & (1 << (pos % 64))) != 0
}

func (v *ValidityMask) ensure(pos int) {
	for pos/64 >= len(v.bits) {
		v.bits = append(v.bits, 0)
	}
}

// ListEntry locates the elements of one LIST row inside the child vector
type ListEntry struct {
	Offset int
	Length int
}

// Vector is a columnar storage unit. Primitive types keep their values in a
// flat slice; STRUCT vectors keep one child vector per field; LIST vectors keep
// one entry per row plus a single child vector holding all elements.
type Vector struct {
	logicalType LogicalType
	size        int
	validity    *ValidityMask

	data     interface{}
	children []*Vector
	entries  []ListEntry
	child    *Vector
}

// NewVector creates an empty vector of the given type with room for capacity rows
func NewVector(logicalType LogicalType, capacity int) *Vector {
	if capacity < 0 {
		capacity = 0
	}
	v := &Vector{
		logicalType: logicalType,
		validity:    NewValidityMask(capacity),
	}
	switch logicalType.ID {
	case TypeBoolean:
		v.data = make([]bool, 0, capacity)
	case TypeBigInt:
		v.data = make([]int64, 0, capacity)
	case TypeDouble:
		v.data = make([]float64, 0, capacity)
	case TypeVarchar:
		v.data = make([]string, 0, capacity)
	case TypeStruct:
		v.children = make([]*Vector, len(logicalType.Children))
		for i, f := range logicalType.Children {
			v.children[i] = NewVector(f.Type, capacity)
		}
	case TypeList:
		v.entries = make([]ListEntry, 0, capacity)
		child := Unsupported
		if logicalType.Child != nil {
			child = *logicalType.Child
		}
		v.child = NewVector(child, capacity)
	}
	return v
}

// GetLogicalType returns the logical type of the vector
func (v *Vector) GetLogicalType() LogicalType {
	return v.logicalType
}

// Size returns the number of rows in the vector
func (v *Vector) Size() int {
	return v.size
}

// IsNull reports whether the row at pos is null
func (v *Vector) IsNull(pos int) bool {
	return !v.validity.IsValid(pos)
}

// NullCount returns the number of null rows
func (v *Vector) NullCount() int {
	n := 0
	for i := 0; i < v.size; i++ {
		if !v.validity.IsValid(i) {
			n++
		}
	}
	return n
}

// StructChild returns the child vector of the i-th struct field
func (v *Vector) StructChild(i int) (*Vector, error) {
	if v.logicalType.ID != TypeStruct {
		return nil, fmt.Errorf("vector of type %s has no struct children", v.logicalType)
	}
	if i < 0 || i >= len(v.children) {
		return nil, fmt.Errorf("struct child %d out of bounds [0, %d)", i, len(v.children))
	}
	return v.children[i], nil
}

// ListChild returns the element vector of a LIST vector
func (v *Vector) ListChild() (*Vector, error) {
	if v.logicalType.ID != TypeList {
		return nil, fmt.Errorf("vector of type %s has no list child", v.logicalType)
	}
	return v.child, nil
}

// ListEntryAt returns the offset and length of the LIST row at pos
func (v *Vector) ListEntryAt(pos int) (ListEntry, error) {
	if v.logicalType.ID != TypeList {
		return ListEntry{}, fmt.Errorf("vector of type %s has no list entries", v.logicalType)
	}
	if pos < 0 || pos >= v.size {
		return ListEntry{}, fmt.Errorf("position %d out of bounds [0, %d)", pos, v.size)
	}
	return v.entries[pos], nil
}

// GetValue retrieves the value at the specified position. Nested rows are
// reassembled into *types.Struct and *types.ListAny; nulls come back as nil.
func (v *Vector) GetValue(pos int) (interface{}, error) {
	if pos < 0 || pos >= v.size {
		return nil, fmt.Errorf("position %d out of bounds [0, %d)", pos, v.size)
	}
	if !v.validity.IsValid(pos) {
		return nil, nil
	}

	switch v.logicalType.ID {
	case TypeBoolean:
		return v.data.([]bool)[pos], nil
	case TypeBigInt:
		return v.data.([]int64)[pos], nil
	case TypeDouble:
		return v.data.([]float64)[pos], nil
	case TypeVarchar:
		return v.data.([]string)[pos], nil
	case TypeStruct:
		s := types.NewStructWithCapacity(len(v.children))
		for i, f := range v.logicalType.Children {
			val, err := v.children[i].GetValue(pos)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Name, err)
			}
			s.Set(f.Name, val)
		}
		return s, nil
	case TypeList:
		entry := v.entries[pos]
		list := types.NewListAny(entry.Length)
		for i := entry.Offset; i < entry.Offset+entry.Length; i++ {
			val, err := v.child.GetValue(i)
			if err != nil {
				return nil, err
			}
			list.Append(val)
		}
		return list, nil
	default:
		return nil, fmt.Errorf("unsupported type for GetValue: %s", v.logicalType)
	}
}

// appendNull adds a null row. Struct children receive a null as well so that
// every child stays aligned with its parent.
func (v *Vector) appendNull() {
	pos := v.size
	v.validity.SetInvalid(pos)
	switch v.logicalType.ID {
	case TypeBoolean:
		v.data = append(v.data.([]bool), false)
	case TypeBigInt:
		v.data = append(v.data.([]int64), 0)
	case TypeDouble:
		v.data = append(v.data.([]float64), 0)
	case TypeVarchar:
		v.data = append(v.data.([]string), "")
	case TypeStruct:
		for _, c := range v.children {
			c.appendNull()
		}
	case TypeList:
		v.entries = append(v.entries, ListEntry{Offset: v.child.size})
	}
	v.size++
}

// appendValue adds a converted, non-nil value
func (v *Vector) appendValue(value interface{}) error {
	switch v.logicalType.ID {
	case TypeBoolean:
		val, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		v.data = append(v.data.([]bool), val)
	case TypeBigInt:
		val, ok := value.(int64)
		if !ok {
			return fmt.Errorf("expected int64, got %T", value)
		}
		v.data = append(v.data.([]int64), val)
	case TypeDouble:
		val, ok := value.(float64)
		if !ok {
			return fmt.Errorf("expected float64, got %T", value)
		}
		v.data = append(v.data.([]float64), val)
	case TypeVarchar:
		val, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		v.data = append(v.data.([]string), val)
	case TypeStruct:
		val, ok := value.(*types.Struct)
		if !ok {
			return fmt.Errorf("expected *types.Struct, got %T", value)
		}
		if val.Len() != len(v.children) {
			return fmt.Errorf("struct has %d fields, vector expects %d", val.Len(), len(v.children))
		}
		for i, f := range v.logicalType.Children {
			fv, ok := val.Get(f.Name)
			if !ok {
				return fmt.Errorf("struct is missing field %s", f.Name)
			}
			if err := v.children[i].Append(fv); err != nil {
				return fmt.Errorf("field %s: %w", f.Name, err)
			}
		}
	case TypeList:
		val, ok := value.(*types.ListAny)
		if !ok {
			return fmt.Errorf("expected *types.ListAny, got %T", value)
		}
		entry := ListEntry{Offset: v.child.size, Length: val.Len()}
		for _, item := range val.Values() {
			if err := v.child.Append(item); err != nil {
				return err
			}
		}
		v.entries = append(v.entries, entry)
	default:
		return fmt.Errorf("unsupported type for append: %s", v.logicalType)
	}
	v.validity.SetValid(v.size)
	v.size++
	return nil
}

// Append adds one row holding value, or a null row when value is nil
func (v *Vector) Append(value interface{}) error {
	if value == nil {
		v.appendNull()
		return nil
	}
	return v.appendValue(value)
}
