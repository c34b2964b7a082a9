package resolve

import (
	"github.com/connerohnesorge/dukdb-resolve/internal/storage"
	"github.com/connerohnesorge/dukdb-resolve/internal/types"
)

// cell is a value together with the top-level row it came from. Nested field
// and element columns keep the row of their parent so errors point at the
// row the caller knows about.
type cell struct {
	row   int
	value types.Value
}

// numericRank places the numeric tags on the promotion lattice
// {INTEGER < FLOAT}; 0 means not numeric.
func numericRank(k types.Kind) int {
	switch k {
	case types.KindInteger:
		return 1
	case types.KindFloat:
		return 2
	default:
		return 0
	}
}

// join returns the least tag both a and b convert to. Promotion only ever
// moves up the lattice.
func join(a, b types.Kind) (types.Kind, bool) {
	if a == b {
		return a, true
	}
	ra, rb := numericRank(a), numericRank(b)
	if ra == 0 || rb == 0 {
		return types.KindNull, false
	}
	if ra > rb {
		return a, true
	}
	return b, true
}

// Unify determines the single logical type all values of the column conform
// to. Nulls are skipped. The first row, scanning left to right, at which a
// value cannot join the running candidate is reported. A column without
// non-null values resolves to UNSUPPORTED.
func Unify(column types.Column) (storage.LogicalType, error) {
	cells := make([]cell, len(column))
	for i, v := range column {
		cells[i] = cell{row: i, value: v}
	}
	return unify(cells)
}

func unify(cells []cell) (storage.LogicalType, error) {
	candidate := types.KindNull
	var records structValidator

	for _, c := range cells {
		k := c.value.Kind()
		if k == types.KindNull {
			continue
		}
		if candidate == types.KindNull {
			candidate = k
		} else {
			joined, ok := join(candidate, k)
			if !ok {
				return storage.Unsupported, &ResolutionError{
					Kind:        IncompatibleTypes,
					Row:         c.row,
					Expected:    candidate.String(),
					Encountered: k.String(),
				}
			}
			candidate = joined
		}
		if k == types.KindRecord {
			if err := records.observe(c.row, c.value); err != nil {
				return storage.Unsupported, err
			}
		}
	}

	switch candidate {
	case types.KindInteger:
		return storage.BigInt, nil
	case types.KindFloat:
		return storage.Double, nil
	case types.KindBoolean:
		return storage.Boolean, nil
	case types.KindText:
		return storage.Varchar, nil
	case types.KindRecord:
		return unifyStruct(cells, records.schema)
	case types.KindList:
		return unifyList(cells)
	default:
		// KindNull (no values) and KindOther
		return storage.Unsupported, nil
	}
}

// unifyStruct resolves every field position as its own column
func unifyStruct(cells []cell, schema FieldSchema) (storage.LogicalType, error) {
	fields := make([]storage.StructField, len(schema))
	fieldCells := make([]cell, 0, len(cells))
	for i, name := range schema {
		fieldCells = fieldCells[:0]
		for _, c := range cells {
			if c.value.Kind() != types.KindRecord {
				continue
			}
			fieldCells = append(fieldCells, cell{row: c.row, value: c.value.Fields()[i].Value})
		}
		t, err := unify(fieldCells)
		if err != nil {
			return storage.Unsupported, err
		}
		fields[i] = storage.StructField{Name: name, Type: t}
	}
	return storage.StructOf(fields...), nil
}

// unifyList resolves the elements of all lists of the column as one column
func unifyList(cells []cell) (storage.LogicalType, error) {
	var elements []cell
	for _, c := range cells {
		if c.value.Kind() != types.KindList {
			continue
		}
		for _, item := range c.value.Items() {
			elements = append(elements, cell{row: c.row, value: item})
		}
	}
	child, err := unify(elements)
	if err != nil {
		return storage.Unsupported, err
	}
	return storage.ListOf(child), nil
}
