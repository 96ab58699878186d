// Package file writes Gold entity tables as a partitioned columnar Parquet
// file set, one directory per entity kind, via Apache Arrow's pqarrow
// writer (spec.md §4.5).
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/realestate-pipeline/pipeline/internal/writer"
	"github.com/realestate-pipeline/pipeline/pkg/model"
)

// Writer implements writer.Destination over a directory tree of partitioned
// Parquet files: output_dir/<entity_or_edge_kind>/part-00000.parquet.
type Writer struct {
	outputDir string
	allocator memory.Allocator
}

// New creates a file destination rooted at outputDir.
func New(outputDir string) *Writer {
	return &Writer{outputDir: outputDir, allocator: memory.NewGoAllocator()}
}

func (w *Writer) Name() string { return "file" }

// Clear removes the output directory tree so each run starts from a clean
// partition set — the file destination never accumulates historical
// partitions across runs (spec.md §4.5, idempotent clear-before-write).
func (w *Writer) Clear(ctx context.Context) error {
	if err := os.RemoveAll(w.outputDir); err != nil {
		return fmt.Errorf("file: clear output dir: %w", err)
	}
	return os.MkdirAll(w.outputDir, 0o755)
}

func (w *Writer) WriteNodes(ctx context.Context, kind model.EntityKind, records []writer.NodeRecord) error {
	schema, builderFn := schemaForKind(kind, records)
	return w.writeRecords(kind.String(), schema, builderFn(schema, records))
}

func (w *Writer) WriteEdges(ctx context.Context, kind model.EdgeKind, edges []model.Relationship) error {
	schema := edgeSchema()
	return w.writeRecords(string(kind), schema, edgeRecord(w.allocator, schema, edges))
}

func (w *Writer) writeRecords(partition string, schema *arrow.Schema, rec arrow.Record) error {
	defer rec.Release()

	dir := filepath.Join(w.outputDir, partition)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("file: create partition dir %s: %w", partition, err)
	}

	path := filepath.Join(dir, "part-00000.parquet")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("file: create %s: %w", path, err)
	}
	defer f.Close()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	pw, err := pqarrow.NewFileWriter(schema, f, props, pqarrow.DefaultWriterProps())
	if err != nil {
		return fmt.Errorf("file: new parquet writer for %s: %w", partition, err)
	}
	defer pw.Close()

	if err := pw.Write(rec); err != nil {
		return fmt.Errorf("file: write batch for %s: %w", partition, err)
	}
	return nil
}

func (w *Writer) Close() error { return nil }

func edgeSchema() *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: "from_id", Type: arrow.BinaryTypes.String},
		{Name: "to_id", Type: arrow.BinaryTypes.String},
		{Name: "type", Type: arrow.BinaryTypes.String},
		{Name: "weight", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
		{Name: "undirected", Type: arrow.FixedWidthTypes.Boolean},
	}, nil)
}

func edgeRecord(mem memory.Allocator, schema *arrow.Schema, edges []model.Relationship) arrow.Record {
	rb := array.NewRecordBuilder(mem, schema)
	defer rb.Release()

	fromB := rb.Field(0).(*array.StringBuilder)
	toB := rb.Field(1).(*array.StringBuilder)
	typeB := rb.Field(2).(*array.StringBuilder)
	weightB := rb.Field(3).(*array.Float64Builder)
	undirB := rb.Field(4).(*array.BooleanBuilder)

	for _, e := range edges {
		fromB.Append(e.FromID)
		toB.Append(e.ToID)
		typeB.Append(string(e.Type))
		if e.Weight != nil {
			weightB.Append(*e.Weight)
		} else {
			weightB.AppendNull()
		}
		undirB.Append(e.Undirected)
	}

	return rb.NewRecord()
}
