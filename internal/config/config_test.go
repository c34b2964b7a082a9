package config

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.False(t, cfg.RequireRows)
	assert.Equal(t, "snappy", cfg.Output.Compression)
}

func TestLoadFromFileYAML(t *testing.T) {
	path := writeFile(t, "resolve.yaml", `
require_rows: true
workers: 4
output:
  compression: none
  row_group_size: 1000
`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.True(t, cfg.RequireRows)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "none", cfg.Output.Compression)
	assert.Equal(t, int64(1000), cfg.Output.RowGroupSize)
}

func TestLoadFromFileJSON(t *testing.T) {
	path := writeFile(t, "resolve.json", `{"workers": 2, "verbose": true}`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)
	assert.True(t, cfg.Verbose)
	// unset keys keep their defaults
	assert.Equal(t, "snappy", cfg.Output.Compression)
}

func TestLoadFromFileErrors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadFromFile(writeFile(t, "resolve.toml", "workers = 1"))
	assert.Error(t, err)

	_, err = LoadFromFile(writeFile(t, "bad.yaml", "workers: [1"))
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DUKDB_RESOLVE_REQUIRE_ROWS", "1")
	t.Setenv("DUKDB_RESOLVE_WORKERS", "8")
	t.Setenv("DUKDB_RESOLVE_OUTPUT_COMPRESSION", "none")

	cfg := DefaultConfig()
	LoadFromEnv(cfg)
	assert.True(t, cfg.RequireRows)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "none", cfg.Output.Compression)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = -1
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Output.Compression = "gzip"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Output.RowGroupSize = -5
	assert.Error(t, cfg.Validate())
}

func TestResolveOptions(t *testing.T) {
	logger := log.New(&bytes.Buffer{}, "", 0)

	cfg := DefaultConfig()
	cfg.RequireRows = true
	cfg.Workers = 3
	opts := cfg.ResolveOptions(logger)
	assert.True(t, opts.RequireRows)
	assert.Equal(t, 3, opts.Workers)
	assert.Nil(t, opts.Logger)

	cfg.Verbose = true
	assert.Same(t, logger, cfg.ResolveOptions(logger).Logger)

	popts := cfg.ParquetOptions()
	assert.Equal(t, "snappy", popts.Compression)
}
