package resolve

import (
	"errors"
	"fmt"
)

// ErrorKind classifies user-facing resolution failures
type ErrorKind int

const (
	// IncompatibleTypes: two non-null values have mutually unconvertible tags
	IncompatibleTypes ErrorKind = iota + 1
	// FieldCountMismatch: struct rows with differing field counts
	FieldCountMismatch
	// FieldNameMismatch: a struct row's field name disagrees with the captured schema
	FieldNameMismatch
	// EmptyColumn: a column without rows when at least one row is required
	EmptyColumn
	// DuplicateFieldName: a struct row names the same field twice
	DuplicateFieldName
)

func (k ErrorKind) String() string {
	switch k {
	case IncompatibleTypes:
		return "IncompatibleTypes"
	case FieldCountMismatch:
		return "FieldCountMismatch"
	case FieldNameMismatch:
		return "FieldNameMismatch"
	case EmptyColumn:
		return "EmptyColumn"
	case DuplicateFieldName:
		return "DuplicateFieldName"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ResolutionError reports bad input. Error() returns the exact message that
// callers surface to their users.
type ResolutionError struct {
	Kind        ErrorKind
	Row         int
	Expected    string
	Encountered string
}

// Sentinels for errors.Is; they match any ResolutionError of the same kind.
var (
	ErrIncompatibleTypes  = &ResolutionError{Kind: IncompatibleTypes}
	ErrFieldCountMismatch = &ResolutionError{Kind: FieldCountMismatch}
	ErrFieldNameMismatch  = &ResolutionError{Kind: FieldNameMismatch}
	ErrEmptyColumn        = &ResolutionError{Kind: EmptyColumn}
	ErrDuplicateFieldName = &ResolutionError{Kind: DuplicateFieldName}
)

func (e *ResolutionError) Error() string {
	switch e.Kind {
	case IncompatibleTypes:
		return fmt.Sprintf("Incompatible types on row %d: expected %s but encountered %s", e.Row, e.Expected, e.Encountered)
	case FieldCountMismatch:
		return "Struct entries have differing amounts of fields"
	case FieldNameMismatch:
		return fmt.Sprintf("Struct key on row %d is incorrect, expected '%s' but encountered '%s'", e.Row, e.Expected, e.Encountered)
	case EmptyColumn:
		return "Cannot resolve the type of an empty column"
	case DuplicateFieldName:
		return fmt.Sprintf("Duplicate struct entry name '%s' on row %d", e.Encountered, e.Row)
	default:
		return fmt.Sprintf("resolution failed on row %d", e.Row)
	}
}

// Is reports whether target is a ResolutionError of the same kind
func (e *ResolutionError) Is(target error) bool {
	var t *ResolutionError
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// InternalError signals a broken contract between the unifier and the
// converter. It never describes bad input. Row is -1 when unknown.
type InternalError struct {
	Row     int
	Message string
}

func (e *InternalError) Error() string {
	if e.Row < 0 {
		return "internal error: " + e.Message
	}
	return fmt.Sprintf("internal error on row %d: %s", e.Row, e.Message)
}

// IsInternal reports whether err (or its chain) is an InternalError
func IsInternal(err error) bool {
	var ie *InternalError
	return errors.As(err, &ie)
}

// ColumnError attaches the failing column to a resolution error from a
// multi-column resolution. The message is the underlying message verbatim.
type ColumnError struct {
	Column int
	Name   string
	Err    error
}

func (e *ColumnError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *ColumnError) Unwrap() error {
	return e.Err
}
