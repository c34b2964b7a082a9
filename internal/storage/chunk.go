package storage

import (
	"fmt"
)

// DataChunk represents a collection of equally sized vectors forming a batch of rows
type DataChunk struct {
	names   []string
	vectors []*Vector
	size    int
}

// NewDataChunk creates a data chunk from named vectors. All vectors must have
// the same number of rows.
func NewDataChunk(names []string, vectors []*Vector) (*DataChunk, error) {
	if len(names) != len(vectors) {
		return nil, fmt.Errorf("got %d column names for %d vectors", len(names), len(vectors))
	}
	size := 0
	for i, v := range vectors {
		if v == nil {
			return nil, fmt.Errorf("column %d has no vector", i)
		}
		if i == 0 {
			size = v.Size()
			continue
		}
		if v.Size() != size {
			return nil, fmt.Errorf("column %s has %d rows, expected %d", names[i], v.Size(), size)
		}
	}
	return &DataChunk{
		names:   names,
		vectors: vectors,
		size:    size,
	}, nil
}

// ColumnCount returns the number of columns
func (d *DataChunk) ColumnCount() int {
	return len(d.vectors)
}

// ColumnName returns the name of the column at the given index
func (d *DataChunk) ColumnName(col int) string {
	if col < 0 || col >= len(d.names) {
		return ""
	}
	return d.names[col]
}

// Types returns the logical type of every column in order
func (d *DataChunk) Types() []LogicalType {
	result := make([]LogicalType, len(d.vectors))
	for i, v := range d.vectors {
		result[i] = v.GetLogicalType()
	}
	return result
}

// GetVector returns the vector at the specified column index
func (d *DataChunk) GetVector(col int) (*Vector, error) {
	if col < 0 || col >= len(d.vectors) {
		return nil, fmt.Errorf("column %d out of bounds [0, %d)", col, len(d.vectors))
	}
	return d.vectors[col], nil
}

// GetValue retrieves a value from the chunk
func (d *DataChunk) GetValue(col, row int) (interface{}, error) {
	vector, err := d.GetVector(col)
	if err != nil {
		return nil, err
	}
	return vector.GetValue(row)
}

// Size returns the number of rows in the chunk
func (d *DataChunk) Size() int {
	return d.size
}
