// Package writer orchestrates fan-out of the Gold dataset to the enabled
// write destinations in a fixed, sequential, fail-fast order (spec.md §4.4).
package writer

import (
	"context"
	"fmt"

	"github.com/realestate-pipeline/pipeline/pkg/model"
	"github.com/realestate-pipeline/pipeline/pkg/pipelineerr"
)

// NodeRecord is one entity row, destination-agnostic: a primary id for
// merge-on-key writes, a flat field map, and an optional embedding vector.
// Destinations project this shape to their own wire format.
type NodeRecord struct {
	PrimaryID string
	Fields    map[string]interface{}
	Embedding []float32
}

// NodeTable pairs an entity kind with its records, in the per-destination
// ordering the orchestrator dispatches in.
type NodeTable struct {
	Kind    model.EntityKind
	Records []NodeRecord
}

// EdgeTable pairs an edge kind with its relationships.
type EdgeTable struct {
	Kind  model.EdgeKind
	Edges []model.Relationship
}

// Destination is the contract every write destination implements. The
// orchestrator dispatches on explicit entity/edge kind tags known at
// configuration time; it never inspects row types dynamically (spec.md
// §4.4).
type Destination interface {
	Name() string
	// Clear resets the destination's state before a fresh write (spec.md §3
	// lifecycle: clear-before-write, no accumulation across runs).
	Clear(ctx context.Context) error
	WriteNodes(ctx context.Context, kind model.EntityKind, records []NodeRecord) error
	WriteEdges(ctx context.Context, kind model.EdgeKind, edges []model.Relationship) error
	Close() error
}

// Dataset is the full Gold output the orchestrator fans out: node tables in
// write order, then edge tables in write order.
type Dataset struct {
	Nodes []NodeTable
	Edges []EdgeTable
}

// Orchestrator writes a Dataset to every destination in dests, in the order
// given, aborting on the first error (fail-fast, no partial-success
// reporting).
type Orchestrator struct {
	destinations []Destination
}

// NewOrchestrator creates an orchestrator over the given destinations, which
// must already be in the fixed order file -> search -> graph.
func NewOrchestrator(destinations ...Destination) *Orchestrator {
	return &Orchestrator{destinations: destinations}
}

// Run clears and writes the dataset to every destination in order.
func (o *Orchestrator) Run(ctx context.Context, ds Dataset) error {
	for _, dest := range o.destinations {
		if err := o.writeOne(ctx, dest, ds); err != nil {
			return pipelineerr.Destination(dest.Name(), err)
		}
	}
	return nil
}

func (o *Orchestrator) writeOne(ctx context.Context, dest Destination, ds Dataset) error {
	if err := dest.Clear(ctx); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	for _, table := range ds.Nodes {
		if len(table.Records) == 0 {
			continue
		}
		if err := dest.WriteNodes(ctx, table.Kind, table.Records); err != nil {
			return fmt.Errorf("write nodes %s: %w", table.Kind, err)
		}
	}
	for _, table := range ds.Edges {
		if len(table.Edges) == 0 {
			continue
		}
		if err := dest.WriteEdges(ctx, table.Kind, table.Edges); err != nil {
			return fmt.Errorf("write edges %s: %w", table.Kind, err)
		}
	}
	return nil
}
