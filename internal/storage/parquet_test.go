package storage

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"

	"github.com/connerohnesorge/dukdb-resolve/internal/types"
)

func sampleChunk(t *testing.T) *DataChunk {
	t.Helper()

	ids := NewVector(BigInt, 3)
	scores := NewVector(ListOf(Double), 3)
	meta := NewVector(StructOf(
		StructField{Name: "name", Type: Varchar},
		StructField{Name: "ok", Type: Boolean},
	), 3)
	empty := NewVector(Unsupported, 3)

	rows := []struct {
		id     interface{}
		scores interface{}
		name   interface{}
		ok     interface{}
	}{
		{int64(1), types.NewList([]interface{}{1.5, nil}), "a", true},
		{nil, nil, nil, nil},
		{int64(3), types.NewList([]interface{}{}), "c", false},
	}
	for i, r := range rows {
		var m interface{}
		if r.name != nil {
			s := types.NewStruct()
			s.Set("name", r.name)
			s.Set("ok", r.ok)
			m = s
		}
		for _, step := range []struct {
			v   *Vector
			val interface{}
		}{{ids, r.id}, {scores, r.scores}, {meta, m}, {empty, nil}} {
			if err := step.v.Append(step.val); err != nil {
				t.Fatalf("row %d: append failed: %v", i, err)
			}
		}
	}

	chunk, err := NewDataChunk([]string{"id", "scores", "meta", "empty"}, []*Vector{ids, scores, meta, empty})
	if err != nil {
		t.Fatalf("NewDataChunk failed: %v", err)
	}
	return chunk
}

func TestParquetSchema(t *testing.T) {
	schema := ParquetSchema("test", sampleChunk(t))

	var paths []string
	for _, col := range schema.Columns() {
		paths = append(paths, strings.Join(col, "."))
	}
	joined := strings.Join(paths, ",")
	for _, want := range []string{"id", "scores.list.element", "meta.name", "meta.ok", "empty"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Expected column %s in %s", want, joined)
		}
	}
}

func TestWriteParquetFile(t *testing.T) {
	for _, compression := range []string{"none", "snappy"} {
		t.Run(compression, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.parquet")
			err := WriteParquetFile(path, sampleChunk(t), ParquetOptions{Compression: compression, RowGroupSize: 2})
			if err != nil {
				t.Fatalf("WriteParquetFile failed: %v", err)
			}

			rows, columns, err := ReadParquetRowCount(path)
			if err != nil {
				t.Fatalf("ReadParquetRowCount failed: %v", err)
			}
			if rows != 3 {
				t.Errorf("Expected 3 rows, got %d", rows)
			}
			if len(columns) != 5 {
				t.Errorf("Expected 5 leaf columns, got %d", len(columns))
			}
		})
	}
}

func TestWriteParquetRoundTripPrimitive(t *testing.T) {
	ids := NewVector(BigInt, 3)
	for _, v := range []interface{}{int64(10), nil, int64(30)} {
		ids.Append(v)
	}
	chunk, err := NewDataChunk([]string{"id"}, []*Vector{ids})
	if err != nil {
		t.Fatalf("NewDataChunk failed: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteParquet(&buf, "test", chunk, ParquetOptions{}); err != nil {
		t.Fatalf("WriteParquet failed: %v", err)
	}

	reader := parquet.NewReader(bytes.NewReader(buf.Bytes()))
	defer reader.Close()

	rows := make([]parquet.Row, 3)
	n, _ := reader.ReadRows(rows)
	if n != 3 {
		t.Fatalf("Expected 3 rows, got %d", n)
	}
	if got := rows[0][0].Int64(); got != 10 {
		t.Errorf("Row 0: expected 10, got %d", got)
	}
	if !rows[1][0].IsNull() {
		t.Errorf("Row 1: expected null, got %v", rows[1][0])
	}
	if got := rows[2][0].Int64(); got != 30 {
		t.Errorf("Row 2: expected 30, got %d", got)
	}
}

func TestWriteParquetUnknownCompression(t *testing.T) {
	var buf bytes.Buffer
	err := WriteParquet(&buf, "test", sampleChunk(t), ParquetOptions{Compression: "lzma"})
	if err == nil {
		t.Error("Expected error for unsupported compression")
	}
}

// readRows reads every row of an in-memory Parquet file
func readRows(t *testing.T, data []byte) []parquet.Row {
	t.Helper()
	reader := parquet.NewReader(bytes.NewReader(data))
	defer reader.Close()

	var all []parquet.Row
	buf := make([]parquet.Row, 8)
	for {
		n, err := reader.ReadRows(buf)
		for _, row := range buf[:n] {
			all = append(all, row.Clone())
		}
		if err == io.EOF {
			return all
		}
		if err != nil {
			t.Fatalf("ReadRows failed: %v", err)
		}
	}
}

// levels renders the values of one leaf column as rep/def pairs
func levels(row parquet.Row, column int) []string {
	var out []string
	for _, v := range row {
		if v.Column() != column {
			continue
		}
		cell := "NULL"
		if !v.IsNull() {
			cell = v.String()
		}
		out = append(out, fmt.Sprintf("r%dd%d:%s", v.RepetitionLevel(), v.DefinitionLevel(), cell))
	}
	return out
}

func TestWriteParquetNestedLevels(t *testing.T) {
	// l LIST(BIGINT); s STRUCT(tags VARCHAR[])
	l := NewVector(ListOf(BigInt), 4)
	s := NewVector(StructOf(StructField{Name: "tags", Type: ListOf(Varchar)}), 4)

	withTags := func(tags interface{}) *types.Struct {
		st := types.NewStruct()
		st.Set("tags", tags)
		return st
	}
	lRows := []interface{}{
		types.NewList([]interface{}{int64(1), nil}),
		nil,
		types.NewList([]interface{}{}),
		types.NewList([]interface{}{int64(2)}),
	}
	sRows := []interface{}{
		withTags(types.NewList([]interface{}{"a", nil})),
		nil,
		withTags(nil),
		withTags(types.NewList([]interface{}{})),
	}
	for i := range lRows {
		if err := l.Append(lRows[i]); err != nil {
			t.Fatalf("row %d: append l failed: %v", i, err)
		}
		if err := s.Append(sRows[i]); err != nil {
			t.Fatalf("row %d: append s failed: %v", i, err)
		}
	}
	chunk, err := NewDataChunk([]string{"l", "s"}, []*Vector{l, s})
	if err != nil {
		t.Fatalf("NewDataChunk failed: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteParquet(&buf, "test", chunk, ParquetOptions{Compression: "snappy"}); err != nil {
		t.Fatalf("WriteParquet failed: %v", err)
	}

	columns := ParquetSchema("test", chunk).Columns()
	index := make(map[string]int)
	for i, path := range columns {
		index[strings.Join(path, ".")] = i
	}
	lCol, ok := index["l.list.element"]
	if !ok {
		t.Fatalf("Missing l.list.element in %v", columns)
	}
	sCol, ok := index["s.tags.list.element"]
	if !ok {
		t.Fatalf("Missing s.tags.list.element in %v", columns)
	}

	rows := readRows(t, buf.Bytes())
	if len(rows) != 4 {
		t.Fatalf("Expected 4 rows, got %d", len(rows))
	}

	tests := []struct {
		row int
		l   string
		s   string
	}{
		{0, "r0d3:1 r1d2:NULL", "r0d4:a r1d3:NULL"},
		{1, "r0d0:NULL", "r0d0:NULL"},
		{2, "r0d1:NULL", "r0d1:NULL"},
		{3, "r0d3:2", "r0d2:NULL"},
	}
	for _, tt := range tests {
		if got := strings.Join(levels(rows[tt.row], lCol), " "); got != tt.l {
			t.Errorf("Row %d l: expected %s, got %s", tt.row, tt.l, got)
		}
		if got := strings.Join(levels(rows[tt.row], sCol), " "); got != tt.s {
			t.Errorf("Row %d s: expected %s, got %s", tt.row, tt.s, got)
		}
	}
}
