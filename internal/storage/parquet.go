package storage

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/snappy"
)

// ParquetOptions controls how a chunk is written to Parquet
type ParquetOptions struct {
	// Compression is "none" or "snappy"
	Compression string
	// RowGroupSize caps the number of rows per row group. 0 keeps the writer default.
	RowGroupSize int64
}

// ParquetSchema derives the Parquet schema of a chunk. Every column, struct
// field and list element is optional. Unsupported columns are written as
// optional strings that only ever hold nulls.
func ParquetSchema(name string, chunk *DataChunk) *parquet.Schema {
	group := parquet.Group{}
	for i := 0; i < chunk.ColumnCount(); i++ {
		group[chunk.ColumnName(i)] = parquetNode(chunk.vectors[i].GetLogicalType())
	}
	return parquet.NewSchema(name, group)
}

func parquetNode(t LogicalType) parquet.Node {
	var node parquet.Node
	switch t.ID {
	case TypeBoolean:
		node = parquet.Leaf(parquet.BooleanType)
	case TypeBigInt:
		node = parquet.Int(64)
	case TypeDouble:
		node = parquet.Leaf(parquet.DoubleType)
	case TypeStruct:
		group := parquet.Group{}
		for _, f := range t.Children {
			group[f.Name] = parquetNode(f.Type)
		}
		node = group
	case TypeList:
		child := Unsupported
		if t.Child != nil {
			child = *t.Child
		}
		node = parquet.List(parquetNode(child))
	default:
		node = parquet.String()
	}
	return parquet.Optional(node)
}

// WriteParquet writes every row of the chunk to w
func WriteParquet(w io.Writer, name string, chunk *DataChunk, opts ParquetOptions) error {
	schema := ParquetSchema(name, chunk)

	writerOpts := []parquet.WriterOption{schema}
	switch strings.ToLower(opts.Compression) {
	case "", "none":
	case "snappy":
		writerOpts = append(writerOpts, parquet.Compression(&snappy.Codec{}))
	default:
		return fmt.Errorf("unsupported parquet compression: %s", opts.Compression)
	}
	if opts.RowGroupSize > 0 {
		writerOpts = append(writerOpts, parquet.MaxRowsPerRowGroup(opts.RowGroupSize))
	}

	shredders, err := newShredders(schema, chunk)
	if err != nil {
		return err
	}
	leafCount := len(schema.Columns())

	writer := parquet.NewWriter(w, writerOpts...)
	rows := make([]parquet.Row, 0, chunk.Size())
	for r := 0; r < chunk.Size(); r++ {
		leaves := make([][]parquet.Value, leafCount)
		for i, s := range shredders {
			if err := s.node.shred(s.vector, r, 0, 0, leaves); err != nil {
				return fmt.Errorf("failed to shred row %d of column %s: %w", r, chunk.ColumnName(i), err)
			}
		}
		row := make(parquet.Row, 0, leafCount)
		for _, values := range leaves {
			row = append(row, values...)
		}
		rows = append(rows, row)
	}
	if _, err := writer.WriteRows(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// WriteParquetFile writes the chunk to a new file at path
func WriteParquetFile(path string, chunk *DataChunk, opts ParquetOptions) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteParquet(file, "schema", chunk, opts); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// ReadParquetRowCount opens a Parquet file and returns its row count and leaf column paths
func ReadParquetRowCount(path string) (int64, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return 0, nil, err
	}
	pf, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		return 0, nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	return pf.NumRows(), pf.Schema().Columns(), nil
}

// shredNode mirrors one optional node of the Parquet schema and knows the
// leaf column indexes below it. repLevel is the repetition depth of list
// elements below a LIST node.
type shredNode struct {
	typ      LogicalType
	leaf     int
	children []*shredNode
	repLevel int
}

type shredder struct {
	node   *shredNode
	vector *Vector
}

func newShredders(schema *parquet.Schema, chunk *DataChunk) ([]shredder, error) {
	index := make(map[string]int)
	for i, path := range schema.Columns() {
		index[strings.Join(path, "\x00")] = i
	}
	result := make([]shredder, chunk.ColumnCount())
	for i := 0; i < chunk.ColumnCount(); i++ {
		v := chunk.vectors[i]
		node, err := buildShredNode(v.GetLogicalType(), []string{chunk.ColumnName(i)}, 0, index)
		if err != nil {
			return nil, err
		}
		result[i] = shredder{node: node, vector: v}
	}
	return result, nil
}

func buildShredNode(t LogicalType, path []string, repLevel int, index map[string]int) (*shredNode, error) {
	node := &shredNode{typ: t, leaf: -1}
	switch t.ID {
	case TypeStruct:
		for _, f := range t.Children {
			child, err := buildShredNode(f.Type, appendPath(path, f.Name), repLevel, index)
			if err != nil {
				return nil, err
			}
			node.children = append(node.children, child)
		}
	case TypeList:
		child := Unsupported
		if t.Child != nil {
			child = *t.Child
		}
		node.repLevel = repLevel + 1
		c, err := buildShredNode(child, appendPath(path, "list", "element"), repLevel+1, index)
		if err != nil {
			return nil, err
		}
		node.children = []*shredNode{c}
	default:
		idx, ok := index[strings.Join(path, "\x00")]
		if !ok {
			return nil, fmt.Errorf("parquet schema has no column %s", strings.Join(path, "."))
		}
		node.leaf = idx
	}
	return node, nil
}

func appendPath(path []string, elems ...string) []string {
	out := make([]string, 0, len(path)+len(elems))
	out = append(out, path...)
	return append(out, elems...)
}

// shred appends the Dremel-encoded values of row pos of v to the leaf buffers
func (n *shredNode) shred(v *Vector, pos, rep, def int, leaves [][]parquet.Value) error {
	if v.IsNull(pos) {
		n.null(rep, def, leaves)
		return nil
	}
	def++

	switch n.typ.ID {
	case TypeStruct:
		for i, child := range n.children {
			if err := child.shred(v.children[i], pos, rep, def, leaves); err != nil {
				return err
			}
		}
	case TypeList:
		entry := v.entries[pos]
		if entry.Length == 0 {
			n.children[0].null(rep, def, leaves)
			return nil
		}
		for k := 0; k < entry.Length; k++ {
			r := rep
			if k > 0 {
				r = n.repLevel
			}
			// +1 for the repeated group level
			if err := n.children[0].shred(v.child, entry.Offset+k, r, def+1, leaves); err != nil {
				return err
			}
		}
	default:
		val, err := v.GetValue(pos)
		if err != nil {
			return err
		}
		leaves[n.leaf] = append(leaves[n.leaf], parquet.ValueOf(val).Level(rep, def, n.leaf))
	}
	return nil
}

// null records a missing value at the given levels for every leaf below n
func (n *shredNode) null(rep, def int, leaves [][]parquet.Value) {
	if n.leaf >= 0 {
		leaves[n.leaf] = append(leaves[n.leaf], parquet.ValueOf(nil).Level(rep, def, n.leaf))
		return
	}
	for _, child := range n.children {
		child.null(rep, def, leaves)
	}
}
