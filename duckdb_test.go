package duckdb

import (
	"errors"
	"testing"
)

func TestResolveColumnFromGo(t *testing.T) {
	vec, err := ResolveColumn(ColumnFromGo([]interface{}{5, nil, 3.5}))
	if err != nil {
		t.Fatalf("ResolveColumn failed: %v", err)
	}
	if got := vec.GetLogicalType().String(); got != "DOUBLE" {
		t.Errorf("Expected DOUBLE, got %s", got)
	}
	if v, _ := vec.GetValue(0); v != 5.0 {
		t.Errorf("Expected 5.0, got %v", v)
	}
}

func TestResolveColumnFromGoConflict(t *testing.T) {
	_, err := ResolveColumn(ColumnFromGo([]interface{}{1, "x"}))
	var re *ResolutionError
	if !errors.As(err, &re) {
		t.Fatalf("Expected *ResolutionError, got %v", err)
	}
	if re.Row != 1 {
		t.Errorf("Expected row 1, got %d", re.Row)
	}
}
