package file

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/realestate-pipeline/pipeline/internal/writer"
	"github.com/realestate-pipeline/pipeline/pkg/model"
)

// schemaForKind builds a column schema from the union of field names across
// all records, typing each column from the first non-nil value found for it.
// Every field in the records' field maps becomes one Parquet column; a value
// with no matching column type (a nested map, for example) is written to a
// string column as its fmt.Sprint text.
func schemaForKind(kind model.EntityKind, records []writer.NodeRecord) (*arrow.Schema, func(*arrow.Schema, []writer.NodeRecord) arrow.Record) {
	fieldNames := orderedFieldNames(records)

	fields := make([]arrow.Field, 0, len(fieldNames)+2)
	fields = append(fields, arrow.Field{Name: "primary_id", Type: arrow.BinaryTypes.String})
	for _, name := range fieldNames {
		fields = append(fields, arrow.Field{Name: name, Type: arrowTypeOf(firstNonNil(records, name)), Nullable: true})
	}
	hasEmbedding := false
	for _, r := range records {
		if len(r.Embedding) > 0 {
			hasEmbedding = true
			break
		}
	}
	if hasEmbedding {
		fields = append(fields, arrow.Field{Name: "embedding", Type: arrow.ListOf(arrow.PrimitiveTypes.Float32)})
	}

	schema := arrow.NewSchema(fields, nil)
	return schema, func(s *arrow.Schema, recs []writer.NodeRecord) arrow.Record {
		return buildRecord(memory.NewGoAllocator(), s, fieldNames, hasEmbedding, recs)
	}
}

// orderedFieldNames collects every field key across all records in a stable
// order (first-seen), so column order does not depend on Go map iteration.
func orderedFieldNames(records []writer.NodeRecord) []string {
	seen := map[string]bool{}
	var names []string
	for _, r := range records {
		for k := range r.Fields {
			if !seen[k] {
				seen[k] = true
				names = append(names, k)
			}
		}
	}
	return names
}

func firstNonNil(records []writer.NodeRecord, name string) interface{} {
	for _, r := range records {
		if v, ok := r.Fields[name]; ok && v != nil {
			return v
		}
	}
	return nil
}

func arrowTypeOf(v interface{}) arrow.DataType {
	switch v.(type) {
	case int, int64, int32:
		return arrow.PrimitiveTypes.Int64
	case float32, float64:
		return arrow.PrimitiveTypes.Float64
	case bool:
		return arrow.FixedWidthTypes.Boolean
	case []string:
		return arrow.ListOf(arrow.BinaryTypes.String)
	default:
		return arrow.BinaryTypes.String
	}
}

func buildRecord(mem memory.Allocator, schema *arrow.Schema, fieldNames []string, hasEmbedding bool, records []writer.NodeRecord) arrow.Record {
	rb := array.NewRecordBuilder(mem, schema)
	defer rb.Release()

	idB := rb.Field(0).(*array.StringBuilder)
	for i, r := range records {
		idB.Append(r.PrimaryID)
		for j, name := range fieldNames {
			appendValue(rb.Field(j+1), r.Fields[name])
		}
		if hasEmbedding {
			lb := rb.Field(len(fieldNames) + 1).(*array.ListBuilder)
			if len(r.Embedding) == 0 {
				lb.AppendNull()
			} else {
				lb.Append(true)
				lb.ValueBuilder().(*array.Float32Builder).AppendValues(r.Embedding, nil)
			}
		}
		_ = i
	}
	return rb.NewRecord()
}

func appendValue(b array.Builder, v interface{}) {
	if v == nil {
		b.AppendNull()
		return
	}
	switch fb := b.(type) {
	case *array.StringBuilder:
		if s, ok := v.(string); ok {
			fb.Append(s)
		} else {
			fb.Append(fmt.Sprint(v))
		}
	case *array.Int64Builder:
		switch n := v.(type) {
		case int:
			fb.Append(int64(n))
		case int64:
			fb.Append(n)
		case int32:
			fb.Append(int64(n))
		default:
			fb.AppendNull()
		}
	case *array.Float64Builder:
		switch n := v.(type) {
		case float64:
			fb.Append(n)
		case float32:
			fb.Append(float64(n))
		default:
			fb.AppendNull()
		}
	case *array.BooleanBuilder:
		if bv, ok := v.(bool); ok {
			fb.Append(bv)
		} else {
			fb.AppendNull()
		}
	case *array.ListBuilder:
		if ss, ok := v.([]string); ok {
			fb.Append(true)
			vb := fb.ValueBuilder().(*array.StringBuilder)
			for _, s := range ss {
				vb.Append(s)
			}
		} else {
			fb.AppendNull()
		}
	default:
		b.AppendNull()
	}
}
