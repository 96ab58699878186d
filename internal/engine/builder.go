package engine

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// Builder wraps an Arrow RecordBuilder with column-name-addressed append
// methods, since every tier builds rows field-by-field from Go structs
// rather than column-by-column.
type Builder struct {
	schema *arrow.Schema
	rb     *array.RecordBuilder
	index  map[string]int
}

// NewBuilder creates a row builder for the given schema using the session's
// allocator.
func NewBuilder(sess *Session, schema *arrow.Schema) *Builder {
	rb := array.NewRecordBuilder(sess.Allocator, schema)
	idx := make(map[string]int, len(schema.Fields()))
	for i, f := range schema.Fields() {
		idx[f.Name] = i
	}
	return &Builder{schema: schema, rb: rb, index: idx}
}

func (b *Builder) col(name string) int {
	i, ok := b.index[name]
	if !ok {
		panic("engine: unknown column " + name)
	}
	return i
}

// AppendString appends a non-null string value to the named column.
func (b *Builder) AppendString(name, value string) {
	b.rb.Field(b.col(name)).(*array.StringBuilder).Append(value)
}

// AppendStringNull appends a null to the named string column.
func (b *Builder) AppendStringNull(name string) {
	b.rb.Field(b.col(name)).(*array.StringBuilder).AppendNull()
}

// AppendInt64 appends a non-null int64 value to the named column.
func (b *Builder) AppendInt64(name string, value int64) {
	b.rb.Field(b.col(name)).(*array.Int64Builder).Append(value)
}

// AppendInt64Null appends a null to the named int64 column.
func (b *Builder) AppendInt64Null(name string) {
	b.rb.Field(b.col(name)).(*array.Int64Builder).AppendNull()
}

// AppendFloat64 appends a non-null float64 value to the named column.
func (b *Builder) AppendFloat64(name string, value float64) {
	b.rb.Field(b.col(name)).(*array.Float64Builder).Append(value)
}

// AppendFloat64Null appends a null to the named float64 column.
func (b *Builder) AppendFloat64Null(name string) {
	b.rb.Field(b.col(name)).(*array.Float64Builder).AppendNull()
}

// AppendBool appends a non-null bool value to the named column.
func (b *Builder) AppendBool(name string, value bool) {
	b.rb.Field(b.col(name)).(*array.BooleanBuilder).Append(value)
}

// AppendStringList appends a list of strings to the named list<string> column.
func (b *Builder) AppendStringList(name string, values []string) {
	lb := b.rb.Field(b.col(name)).(*array.ListBuilder)
	lb.Append(true)
	vb := lb.ValueBuilder().(*array.StringBuilder)
	for _, v := range values {
		vb.Append(v)
	}
}

// AppendFloat32List appends a list of float32s to the named list<float32>
// column (used for embedding vectors).
func (b *Builder) AppendFloat32List(name string, values []float32) {
	lb := b.rb.Field(b.col(name)).(*array.ListBuilder)
	lb.Append(true)
	vb := lb.ValueBuilder().(*array.Float32Builder)
	vb.AppendValues(values, nil)
}

// NewRecord finalizes the current set of appended rows into an Arrow record
// batch, resetting the builder for the next batch.
func (b *Builder) NewRecord() arrow.Record {
	return b.rb.NewRecord()
}

// Release releases the underlying column builders.
func (b *Builder) Release() {
	b.rb.Release()
}
