package storage

import (
	"fmt"
)

// VectorBuilder helps construct vectors one row at a time
type VectorBuilder struct {
	logicalType LogicalType
	vector      *Vector
	position    int
}

// NewVectorBuilder creates a new vector builder
func NewVectorBuilder(logicalType LogicalType, capacity int) *VectorBuilder {
	return &VectorBuilder{
		logicalType: logicalType,
		vector:      NewVector(logicalType, capacity),
		position:    0,
	}
}

// AppendValue adds a value to the vector. nil appends a null row.
func (vb *VectorBuilder) AppendValue(value interface{}) error {
	if err := vb.vector.Append(value); err != nil {
		return fmt.Errorf("row %d of %s: %w", vb.position, vb.logicalType, err)
	}
	vb.position++
	return nil
}

// AppendNull adds a null row
func (vb *VectorBuilder) AppendNull() {
	vb.vector.appendNull()
	vb.position++
}

// Len returns the number of rows appended so far
func (vb *VectorBuilder) Len() int {
	return vb.position
}

// Build returns the constructed vector
func (vb *VectorBuilder) Build() *Vector {
	return vb.vector
}
