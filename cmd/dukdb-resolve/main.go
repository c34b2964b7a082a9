// Package main implements dukdb-resolve, which resolves the columns of a JSON
// table of untyped cells into typed columns and optionally writes them to a
// Parquet file.
//
// Input is a JSON object mapping column names to arrays of cells:
//
//	{"id": [1, 2, null], "tags": [{"a": 1}, {"a": 2}, null]}
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/connerohnesorge/dukdb-resolve/internal/config"
	"github.com/connerohnesorge/dukdb-resolve/internal/resolve"
	"github.com/connerohnesorge/dukdb-resolve/internal/storage"
	"github.com/connerohnesorge/dukdb-resolve/internal/types"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("dukdb-resolve", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configFile  string
		input       string
		output      string
		requireRows bool
		workers     int
		verbose     bool
	)
	fs.StringVar(&configFile, "config", "", "Path to configuration file (YAML or JSON)")
	fs.StringVar(&input, "input", "-", "JSON table to resolve (- for stdin)")
	fs.StringVar(&output, "output", "", "Write the resolved columns to this Parquet file")
	fs.BoolVar(&requireRows, "require-rows", false, "Fail on columns without rows")
	fs.IntVar(&workers, "workers", 0, "Columns resolved in parallel (0 = one per CPU)")
	fs.BoolVar(&verbose, "verbose", false, "Log column-level progress")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: dukdb-resolve [options]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(stderr, "  DUKDB_RESOLVE_REQUIRE_ROWS, DUKDB_RESOLVE_WORKERS, DUKDB_RESOLVE_VERBOSE,\n")
		fmt.Fprintf(stderr, "  DUKDB_RESOLVE_OUTPUT_COMPRESSION, DUKDB_RESOLVE_OUTPUT_ROW_GROUP_SIZE\n")
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.LoadFromFile(configFile)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		cfg = loaded
	}
	config.LoadFromEnv(cfg)

	// Command line flags override file and environment
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "require-rows":
			cfg.RequireRows = requireRows
		case "workers":
			cfg.Workers = workers
		case "verbose":
			cfg.Verbose = verbose
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: invalid configuration: %v\n", err)
		return 1
	}

	runID := uuid.New()
	logger := log.New(stderr, fmt.Sprintf("[%s] ", runID), log.LstdFlags)

	data, err := readInput(input, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	columns, err := types.ParseJSONTable(data)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to parse input: %v\n", err)
		return 1
	}

	resolver := resolve.NewResolver(cfg.ResolveOptions(logger))
	chunk, err := resolver.ResolveChunk(ctx, columns)
	if err != nil {
		var colErr *resolve.ColumnError
		if errors.As(err, &colErr) {
			fmt.Fprintf(stderr, "Error: column %s: %v\n", colErr.Name, colErr.Err)
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		if resolve.IsInternal(err) {
			return 3
		}
		return 1
	}

	for i := 0; i < chunk.ColumnCount(); i++ {
		vec, _ := chunk.GetVector(i)
		fmt.Fprintf(stdout, "%s\t%s\trows=%d nulls=%d\n", chunk.ColumnName(i), vec.GetLogicalType(), vec.Size(), vec.NullCount())
	}

	if output != "" {
		if err := storage.WriteParquetFile(output, chunk, cfg.ParquetOptions()); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		if cfg.Verbose {
			logger.Printf("main: wrote %d rows to %s", chunk.Size(), output)
		}
	}
	return 0
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}
