// Package resolve turns untyped columns of dynamically-typed cells into typed
// vectors. A column is resolved in three steps: the unifier picks the single
// logical type of the column (validating struct schemas as it scans), the
// converter maps every cell to that type, and a vector builder stores the
// result in columnar form. Any failure aborts the whole column.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/connerohnesorge/dukdb-resolve/internal/storage"
	"github.com/connerohnesorge/dukdb-resolve/internal/types"
)

// Options configures a Resolver
type Options struct {
	// RequireRows turns an empty column into an EmptyColumn error instead of
	// an UNSUPPORTED vector
	RequireRows bool

	// Workers bounds the number of columns resolved at once by ResolveChunk.
	// <= 0 uses runtime.NumCPU().
	Workers int

	// Logger receives column-level messages. nil disables logging.
	Logger *log.Logger
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	return o
}

// Resolver resolves columns. It holds no per-column state and is safe for
// concurrent use.
type Resolver struct {
	opts Options
}

// NewResolver creates a resolver
func NewResolver(opts Options) *Resolver {
	return &Resolver{opts: opts.withDefaults()}
}

// ResolveColumn resolves a column with default options
func ResolveColumn(column types.Column) (*storage.Vector, error) {
	return NewResolver(Options{}).ResolveColumn(column)
}

func (r *Resolver) logf(format string, args ...interface{}) {
	if r.opts.Logger != nil {
		r.opts.Logger.Printf("resolve: "+format, args...)
	}
}

// ResolveType returns the logical type of the column
func (r *Resolver) ResolveType(column types.Column) (storage.LogicalType, error) {
	if len(column) == 0 {
		if r.opts.RequireRows {
			return storage.Unsupported, &ResolutionError{Kind: EmptyColumn}
		}
		return storage.Unsupported, nil
	}
	return Unify(column)
}

// ResolveColumn resolves the column's type and converts every row into a
// vector of that type. The vector always has one row per input cell.
func (r *Resolver) ResolveColumn(column types.Column) (*storage.Vector, error) {
	t, err := r.ResolveType(column)
	if err != nil {
		r.logf("column of %d rows failed: %v", len(column), err)
		return nil, err
	}

	builder := storage.NewVectorBuilder(t, len(column))
	for row, v := range column {
		converted, err := Convert(v, t)
		if err != nil {
			var ie *InternalError
			if errors.As(err, &ie) {
				ie.Row = row
			}
			r.logf("converting row %d to %s failed: %v", row, t, err)
			return nil, err
		}
		if converted == nil {
			builder.AppendNull()
			continue
		}
		if err := builder.AppendValue(converted); err != nil {
			return nil, &InternalError{Row: row, Message: err.Error()}
		}
	}
	if builder.Len() != len(column) {
		return nil, &InternalError{Row: -1, Message: fmt.Sprintf("built %d rows from %d cells", builder.Len(), len(column))}
	}

	vec := builder.Build()
	r.logf("resolved %d rows as %s (%d null)", vec.Size(), t, vec.NullCount())
	return vec, nil
}

// ResolveChunk resolves several columns of the same row set in parallel and
// returns them as one chunk. The context only stops new columns from being
// scheduled; a column that has started always runs to completion. When
// several columns fail, the error of the leftmost one is returned as a
// *ColumnError.
func (r *Resolver) ResolveChunk(ctx context.Context, columns []types.NamedColumn) (*storage.DataChunk, error) {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
		if len(c.Values) != len(columns[0].Values) {
			return nil, fmt.Errorf("column %s has %d rows, expected %d", c.Name, len(c.Values), len(columns[0].Values))
		}
	}

	vectors := make([]*storage.Vector, len(columns))
	errs := make([]error, len(columns))

	sem := semaphore.NewWeighted(int64(r.opts.Workers))
	var wg sync.WaitGroup
	var scheduleErr error

	for i := range columns {
		if err := ctx.Err(); err != nil {
			scheduleErr = err
			break
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			scheduleErr = err
			break
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.Release(1)
			vectors[i], errs[i] = r.ResolveColumn(columns[i].Values)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			r.logf("column %s failed: %v", names[i], err)
			return nil, &ColumnError{Column: i, Name: names[i], Err: err}
		}
	}
	if scheduleErr != nil {
		return nil, fmt.Errorf("resolving %d columns: %w", len(columns), scheduleErr)
	}
	return storage.NewDataChunk(names, vectors)
}
