// Package stats accumulates a run's summary report: per-tier row counts,
// embedding batch counts, per-destination record counts, quarantine counts,
// wall time, and the first fatal error, for display at the end of a run.
package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/realestate-pipeline/pipeline/pkg/pipelineerr"
)

// Report is the mutable accumulator a run threads through every stage.
type Report struct {
	start time.Time

	BronzeRows      map[string]int
	QuarantinedRows map[string]int
	SilverRows      map[string]int
	EntityCounts    map[string]int
	EdgeCounts      map[string]int

	EmbeddingBatches  int
	EmbeddingsEmitted int
	EmbeddingsCached  int

	DestinationNodeCounts map[string]int
	DestinationEdgeCounts map[string]int

	DenormalizedDocs int

	FirstFatalError error

	elapsed time.Duration
}

// New starts a report with the clock running.
func New() *Report {
	return &Report{
		start:                 time.Now(),
		BronzeRows:            make(map[string]int),
		QuarantinedRows:       make(map[string]int),
		SilverRows:            make(map[string]int),
		EntityCounts:          make(map[string]int),
		EdgeCounts:            make(map[string]int),
		DestinationNodeCounts: make(map[string]int),
		DestinationEdgeCounts: make(map[string]int),
	}
}

// RecordFatal stores the first fatal error a run encounters; subsequent
// calls are no-ops so the report always reflects the earliest failure.
func (r *Report) RecordFatal(err error) {
	if r.FirstFatalError == nil {
		r.FirstFatalError = err
	}
}

// Stop freezes the elapsed wall time. Call once, at the end of a run.
func (r *Report) Stop() {
	r.elapsed = time.Since(r.start)
}

// Elapsed returns the wall time recorded by Stop, or the time elapsed so
// far if Stop has not been called yet.
func (r *Report) Elapsed() time.Duration {
	if r.elapsed > 0 {
		return r.elapsed
	}
	return time.Since(r.start)
}

// String renders the summary report in a fixed, deterministic field order.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "run summary (%s)\n", r.Elapsed().Round(time.Millisecond))

	writeCounts(&b, "bronze", r.BronzeRows)
	writeCounts(&b, "quarantined", r.QuarantinedRows)
	writeCounts(&b, "silver", r.SilverRows)
	writeCounts(&b, "entities", r.EntityCounts)
	writeCounts(&b, "edges", r.EdgeCounts)

	fmt.Fprintf(&b, "  embedding: %d batches, %d emitted, %d cached\n",
		r.EmbeddingBatches, r.EmbeddingsEmitted, r.EmbeddingsCached)

	writeCounts(&b, "destination nodes", r.DestinationNodeCounts)
	writeCounts(&b, "destination edges", r.DestinationEdgeCounts)

	if r.DenormalizedDocs > 0 {
		fmt.Fprintf(&b, "  denormalized: %d documents\n", r.DenormalizedDocs)
	}

	if r.FirstFatalError != nil {
		category := "unknown"
		if cat, ok := pipelineerr.CategoryOf(r.FirstFatalError); ok {
			category = string(cat)
		}
		fmt.Fprintf(&b, "  first fatal error [%s]: %v\n", category, r.FirstFatalError)
	}

	return b.String()
}

func writeCounts(b *strings.Builder, label string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(b, "  %s:", label)
	for _, k := range keys {
		fmt.Fprintf(b, " %s=%d", k, counts[k])
	}
	b.WriteByte('\n')
}
