// Package config provides configuration for the column resolver and its CLI.
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/connerohnesorge/dukdb-resolve/internal/resolve"
	"github.com/connerohnesorge/dukdb-resolve/internal/storage"
)

// Config holds the resolver configuration
type Config struct {
	// RequireRows rejects empty columns instead of resolving them as UNSUPPORTED
	RequireRows bool `json:"require_rows" yaml:"require_rows"`

	// Workers is the number of columns resolved in parallel (0 = one per CPU)
	Workers int `json:"workers" yaml:"workers"`

	// Verbose enables column-level logging
	Verbose bool `json:"verbose" yaml:"verbose"`

	// Output configuration
	Output OutputConfig `json:"output" yaml:"output"`
}

// OutputConfig holds Parquet output configuration
type OutputConfig struct {
	// Compression is none or snappy
	Compression string `json:"compression" yaml:"compression"`

	// RowGroupSize is the maximum number of rows per row group (0 = writer default)
	RowGroupSize int64 `json:"row_group_size" yaml:"row_group_size"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		RequireRows: false,
		Workers:     0,
		Output: OutputConfig{
			Compression:  "snappy",
			RowGroupSize: 0,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	switch strings.ToLower(c.Output.Compression) {
	case "", "none", "snappy":
	default:
		return fmt.Errorf("invalid output.compression: %s (must be none or snappy)", c.Output.Compression)
	}
	if c.Output.RowGroupSize < 0 {
		return fmt.Errorf("output.row_group_size must not be negative, got %d", c.Output.RowGroupSize)
	}
	return nil
}

// ResolveOptions converts the configuration into resolver options. logger is
// only attached when Verbose is set.
func (c *Config) ResolveOptions(logger *log.Logger) resolve.Options {
	opts := resolve.Options{
		RequireRows: c.RequireRows,
		Workers:     c.Workers,
	}
	if c.Verbose {
		opts.Logger = logger
	}
	return opts
}

// ParquetOptions converts the output configuration into writer options
func (c *Config) ParquetOptions() storage.ParquetOptions {
	return storage.ParquetOptions{
		Compression:  c.Output.Compression,
		RowGroupSize: c.Output.RowGroupSize,
	}
}

// LoadFromFile loads configuration from a YAML or JSON file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the DUKDB_RESOLVE_ prefix.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("DUKDB_RESOLVE_REQUIRE_ROWS"); v != "" {
		cfg.RequireRows = v == "true" || v == "1"
	}
	if v := os.Getenv("DUKDB_RESOLVE_WORKERS"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.Workers)
	}
	if v := os.Getenv("DUKDB_RESOLVE_VERBOSE"); v != "" {
		cfg.Verbose = v == "true" || v == "1"
	}
	if v := os.Getenv("DUKDB_RESOLVE_OUTPUT_COMPRESSION"); v != "" {
		cfg.Output.Compression = v
	}
	if v := os.Getenv("DUKDB_RESOLVE_OUTPUT_ROW_GROUP_SIZE"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.Output.RowGroupSize)
	}
}
