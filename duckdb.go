// Package duckdb resolves untyped, heterogeneous columns into typed columnar
// vectors.
//
// Usage:
//
//	col := duckdb.ColumnFromGo([]interface{}{5, nil, 3.5})
//	vec, err := duckdb.ResolveColumn(col)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(vec.GetLogicalType()) // DOUBLE
package duckdb

import (
	"github.com/connerohnesorge/dukdb-resolve/internal/resolve"
	"github.com/connerohnesorge/dukdb-resolve/internal/storage"
	"github.com/connerohnesorge/dukdb-resolve/internal/types"
)

// Version returns the version of the resolver
const Version = "0.1.0"

type (
	Value           = types.Value
	Column          = types.Column
	NamedColumn     = types.NamedColumn
	Vector          = storage.Vector
	DataChunk       = storage.DataChunk
	LogicalType     = storage.LogicalType
	Options         = resolve.Options
	Resolver        = resolve.Resolver
	ResolutionError = resolve.ResolutionError
	InternalError   = resolve.InternalError
	ColumnError     = resolve.ColumnError
)

// ColumnFromGo normalizes native Go values into a column
func ColumnFromGo(values []interface{}) Column {
	return types.ColumnFromGo(values)
}

// ResolveColumn resolves a column with default options
func ResolveColumn(column Column) (*Vector, error) {
	return resolve.ResolveColumn(column)
}

// NewResolver creates a resolver with the given options
func NewResolver(opts Options) *Resolver {
	return resolve.NewResolver(opts)
}
