package storage

import (
	"fmt"
	"strings"
)

// TypeID represents the fundamental data type of a resolved column
type TypeID int

const (
	// TypeUnsupported marks a column whose type could not be inferred
	// (no rows, only nulls, or only values outside the supported tag set)
	TypeUnsupported TypeID = iota
	TypeBoolean
	TypeBigInt
	TypeDouble
	TypeVarchar
	TypeList
	TypeStruct
)

func (id TypeID) String() string {
	switch id {
	case TypeUnsupported:
		return "UNSUPPORTED"
	case TypeBoolean:
		return "BOOLEAN"
	case TypeBigInt:
		return "BIGINT"
	case TypeDouble:
		return "DOUBLE"
	case TypeVarchar:
		return "VARCHAR"
	case TypeList:
		return "LIST"
	case TypeStruct:
		return "STRUCT"
	default:
		return fmt.Sprintf("TypeID(%d)", int(id))
	}
}

// StructField is one named child of a STRUCT type
type StructField struct {
	Name string
	Type LogicalType
}

// LogicalType represents the logical data type of a vector. Children is set
// for STRUCT, Child for LIST.
type LogicalType struct {
	ID       TypeID
	Children []StructField
	Child    *LogicalType
}

// Primitive logical types
var (
	Unsupported = LogicalType{ID: TypeUnsupported}
	Boolean     = LogicalType{ID: TypeBoolean}
	BigInt      = LogicalType{ID: TypeBigInt}
	Double      = LogicalType{ID: TypeDouble}
	Varchar     = LogicalType{ID: TypeVarchar}
)

// ListOf returns the LIST type with the given element type
func ListOf(child LogicalType) LogicalType {
	return LogicalType{ID: TypeList, Child: &child}
}

// StructOf returns the STRUCT type with the given ordered fields
func StructOf(fields ...StructField) LogicalType {
	return LogicalType{ID: TypeStruct, Children: fields}
}

// FieldNames returns the ordered field names of a STRUCT type
func (t LogicalType) FieldNames() []string {
	names := make([]string, len(t.Children))
	for i, f := range t.Children {
		names[i] = f.Name
	}
	return names
}

// Equal reports whether two logical types are structurally identical
func (t LogicalType) Equal(other LogicalType) bool {
	if t.ID != other.ID {
		return false
	}
	switch t.ID {
	case TypeList:
		if t.Child == nil || other.Child == nil {
			return t.Child == other.Child
		}
		return t.Child.Equal(*other.Child)
	case TypeStruct:
		if len(t.Children) != len(other.Children) {
			return false
		}
		for i := range t.Children {
			if t.Children[i].Name != other.Children[i].Name {
				return false
			}
			if !t.Children[i].Type.Equal(other.Children[i].Type) {
				return false
			}
		}
	}
	return true
}

// String renders the type in DuckDB notation, e.g. STRUCT(a BIGINT, b VARCHAR[])
func (t LogicalType) String() string {
	switch t.ID {
	case TypeList:
		if t.Child == nil {
			return "UNSUPPORTED[]"
		}
		return t.Child.String() + "[]"
	case TypeStruct:
		var sb strings.Builder
		sb.WriteString("STRUCT(")
		for i, f := range t.Children {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(f.Name)
			sb.WriteByte(' ')
			sb.WriteString(f.Type.String())
		}
		sb.WriteByte(')')
		return sb.String()
	default:
		return t.ID.String()
	}
}
