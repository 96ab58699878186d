// Package engine is the analytical execution layer the Bronze, Silver, and
// Gold tiers operate on. Tables are backed by Apache Arrow columnar arrays
// (github.com/apache/arrow-go/v18), which gives every tier a typed, batched
// representation. The file destination does not read these tables; it
// builds its own Arrow records from the writer's NodeRecord field maps.
package engine

import (
	"fmt"
	"sync"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Table is a named, schema-bound collection of Arrow record batches. A
// tier's output table accumulates one batch per processed input chunk;
// Batches returns them in append order, and no single contiguous view is
// offered.
type Table struct {
	Name    string
	Schema  *arrow.Schema
	mu      sync.Mutex
	batches []arrow.Record
}

// NewTable creates an empty table bound to the given schema.
func NewTable(name string, schema *arrow.Schema) *Table {
	return &Table{Name: name, Schema: schema}
}

// Append adds a record batch produced by a Builder. The batch's schema must
// match the table's schema exactly.
func (t *Table) Append(rec arrow.Record) error {
	if !rec.Schema().Equal(t.Schema) {
		return fmt.Errorf("engine: table %q schema mismatch: batch has %v, table has %v", t.Name, rec.Schema(), t.Schema)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	rec.Retain()
	t.batches = append(t.batches, rec)
	return nil
}

// NumRows returns the total row count across all batches.
func (t *Table) NumRows() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	var n int64
	for _, b := range t.batches {
		n += b.NumRows()
	}
	return n
}

// Batches returns the table's record batches in append order. The returned
// slice shares ownership with the table; callers must not release the
// records themselves.
func (t *Table) Batches() []arrow.Record {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]arrow.Record, len(t.batches))
	copy(out, t.batches)
	return out
}

// Release drops the table's reference to every batch it holds.
func (t *Table) Release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, b := range t.batches {
		b.Release()
	}
	t.batches = nil
}

// Session owns the memory allocator shared by every table built during one
// pipeline run and tracks the tables produced by each tier so later tiers
// and writers can look them up by name.
type Session struct {
	Allocator memory.Allocator

	mu     sync.Mutex
	tables map[string]*Table
}

// NewSession creates a session backed by Arrow's Go allocator.
func NewSession() *Session {
	return &Session{
		Allocator: memory.NewGoAllocator(),
		tables:    make(map[string]*Table),
	}
}

// Register stores a table under its name, overwriting any prior table with
// the same name (used when a tier re-runs within the same session, e.g.
// tests).
func (s *Session) Register(t *Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[t.Name] = t
}

// Table looks up a previously registered table by name.
func (s *Session) Table(name string) (*Table, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[name]
	return t, ok
}

// Release releases every table registered in the session.
func (s *Session) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tables {
		t.Release()
	}
	s.tables = make(map[string]*Table)
}
