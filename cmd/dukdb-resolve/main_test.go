package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/connerohnesorge/dukdb-resolve/internal/storage"
)

func runCLI(t *testing.T, input string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(input), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunResolvesColumns(t *testing.T) {
	input := `{"id": [5, 0, 3], "mixed": [1, 2.5, null], "s": [{"a": 1, "b": 3, "c": 3, "d": 7}, null, {"a": 2, "b": 3, "c": 3, "d": 7}]}`

	code, stdout, stderr := runCLI(t, input)
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d (stderr: %s)", code, stderr)
	}
	for _, want := range []string{
		"id\tBIGINT\trows=3 nulls=0",
		"mixed\tDOUBLE\trows=3 nulls=1",
		"s\tSTRUCT(a BIGINT, b BIGINT, c BIGINT, d BIGINT)\trows=3 nulls=1",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Expected %q in output:\n%s", want, stdout)
		}
	}
}

func TestRunReportsStructKeyError(t *testing.T) {
	input := `{"0": [
		{"a": 1, "b": 3, "c": 3, "d": 7},
		{"a": 1, "b": 3, "c": 3, "d": 7},
		{"a": 1, "b": 3, "c": 3, "e": 7},
		{"a": 1, "b": 3, "c": 3, "d": 7}
	]}`

	code, _, stderr := runCLI(t, input)
	if code != 1 {
		t.Fatalf("Expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr, "Struct key on row 2 is incorrect, expected 'd' but encountered 'e'") {
		t.Errorf("Unexpected stderr: %s", stderr)
	}
}

func TestRunRequireRows(t *testing.T) {
	code, _, stderr := runCLI(t, `{"a": []}`, "-require-rows")
	if code != 1 {
		t.Fatalf("Expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr, "Cannot resolve the type of an empty column") {
		t.Errorf("Unexpected stderr: %s", stderr)
	}

	code, stdout, _ := runCLI(t, `{"a": []}`)
	if code != 0 || !strings.Contains(stdout, "a\tUNSUPPORTED\trows=0") {
		t.Errorf("Expected benign empty column, got %d: %s", code, stdout)
	}
}

func TestRunWritesParquet(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "in.json")
	outputPath := filepath.Join(dir, "out.parquet")
	configPath := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(inputPath, []byte(`{"n": [1, null, 3], "l": [[1], [], null]}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(configPath, []byte("output:\n  compression: none\n"), 0644); err != nil {
		t.Fatal(err)
	}

	code, _, stderr := runCLI(t, "", "-input", inputPath, "-output", outputPath, "-config", configPath, "-verbose")
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d (stderr: %s)", code, stderr)
	}
	if !strings.Contains(stderr, "resolve: resolved 3 rows") {
		t.Errorf("Expected verbose log output, got: %s", stderr)
	}

	rows, _, err := storage.ReadParquetRowCount(outputPath)
	if err != nil {
		t.Fatalf("ReadParquetRowCount failed: %v", err)
	}
	if rows != 3 {
		t.Errorf("Expected 3 rows, got %d", rows)
	}
}

func TestRunBadInput(t *testing.T) {
	code, _, stderr := runCLI(t, `[1, 2]`)
	if code != 1 || !strings.Contains(stderr, "failed to parse input") {
		t.Errorf("Expected parse failure, got %d: %s", code, stderr)
	}

	code, _, _ = runCLI(t, `{}`, "-no-such-flag")
	if code != 2 {
		t.Errorf("Expected exit code 2 for bad flags, got %d", code)
	}
}
