package resolve

import (
	"github.com/connerohnesorge/dukdb-resolve/internal/types"
)

// FieldSchema is the ordered list of field names every record of a struct
// column must carry
type FieldSchema []string

// schemaState is the state of a structValidator
type schemaState int

const (
	awaitingFirstRecord schemaState = iota
	validating
)

// structValidator captures the field schema from the first record it sees
// and checks every later record against it. The schema never changes once
// captured.
type structValidator struct {
	state  schemaState
	schema FieldSchema
}

// observe feeds the record found at row into the validator
func (sv *structValidator) observe(row int, record types.Value) error {
	switch sv.state {
	case awaitingFirstRecord:
		schema := FieldSchema(record.FieldNames())
		if err := checkDistinct(row, schema); err != nil {
			return err
		}
		sv.schema = schema
		sv.state = validating
		return nil
	default:
		return checkRecord(row, sv.schema, record)
	}
}

// checkDistinct rejects a field list that names a field twice
func checkDistinct(row int, names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			return &ResolutionError{Kind: DuplicateFieldName, Row: row, Encountered: name}
		}
		seen[name] = struct{}{}
	}
	return nil
}

// checkRecord compares a record's field names against schema. A differing
// field count is reported before any name comparison.
func checkRecord(row int, schema FieldSchema, record types.Value) error {
	fields := record.Fields()
	if len(fields) != len(schema) {
		return &ResolutionError{Kind: FieldCountMismatch, Row: row}
	}
	if err := checkDistinct(row, record.FieldNames()); err != nil {
		return err
	}
	for i, f := range fields {
		if f.Name != schema[i] {
			return &ResolutionError{
				Kind:        FieldNameMismatch,
				Row:         row,
				Expected:    schema[i],
				Encountered: f.Name,
			}
		}
	}
	return nil
}

// CaptureSchema returns the field names of the first non-null record in the
// column. ok is false when the column holds no record.
func CaptureSchema(column types.Column) (schema FieldSchema, ok bool) {
	for _, v := range column {
		if v.Kind() == types.KindRecord {
			return FieldSchema(v.FieldNames()), true
		}
	}
	return nil, false
}

// ValidateStruct checks that every record in the column matches schema,
// reporting the first offending row. Values that are not records are left to
// the type unifier.
func ValidateStruct(column types.Column, schema FieldSchema) error {
	for row, v := range column {
		if v.Kind() != types.KindRecord {
			continue
		}
		if err := checkRecord(row, schema, v); err != nil {
			return err
		}
	}
	return nil
}
