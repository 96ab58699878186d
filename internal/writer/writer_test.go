package writer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realestate-pipeline/pipeline/pkg/model"
	"github.com/realestate-pipeline/pipeline/pkg/pipelineerr"
)

type fakeDestination struct {
	name       string
	failClear  bool
	failNodes  model.EntityKind
	calls      []string
}

func (f *fakeDestination) Name() string { return f.name }

func (f *fakeDestination) Clear(ctx context.Context) error {
	f.calls = append(f.calls, "clear")
	if f.failClear {
		return errors.New("clear failed")
	}
	return nil
}

func (f *fakeDestination) WriteNodes(ctx context.Context, kind model.EntityKind, records []NodeRecord) error {
	f.calls = append(f.calls, "nodes:"+string(kind))
	if kind == f.failNodes {
		return errors.New("write failed")
	}
	return nil
}

func (f *fakeDestination) WriteEdges(ctx context.Context, kind model.EdgeKind, edges []model.Relationship) error {
	f.calls = append(f.calls, "edges:"+string(kind))
	return nil
}

func (f *fakeDestination) Close() error { return nil }

func TestOrchestratorSkipsEmptyTables(t *testing.T) {
	dest := &fakeDestination{name: "d1"}
	o := NewOrchestrator(dest)
	ds := Dataset{
		Nodes: []NodeTable{{Kind: model.EntityProperty, Records: nil}},
		Edges: []EdgeTable{{Kind: model.EdgeNear, Edges: nil}},
	}

	require.NoError(t, o.Run(context.Background(), ds))
	assert.Equal(t, []string{"clear"}, dest.calls)
}

func TestOrchestratorWritesNodesThenEdgesInOrder(t *testing.T) {
	dest := &fakeDestination{name: "d1"}
	o := NewOrchestrator(dest)
	ds := Dataset{
		Nodes: []NodeTable{{Kind: model.EntityProperty, Records: []NodeRecord{{PrimaryID: "1"}}}},
		Edges: []EdgeTable{{Kind: model.EdgeNear, Edges: []model.Relationship{{FromID: "a", ToID: "b"}}}},
	}

	require.NoError(t, o.Run(context.Background(), ds))
	assert.Equal(t, []string{"clear", "nodes:Property", "edges:NEAR"}, dest.calls)
}

func TestOrchestratorAbortsOnFirstDestinationFailure(t *testing.T) {
	failing := &fakeDestination{name: "d1", failNodes: model.EntityProperty}
	second := &fakeDestination{name: "d2"}
	o := NewOrchestrator(failing, second)
	ds := Dataset{
		Nodes: []NodeTable{{Kind: model.EntityProperty, Records: []NodeRecord{{PrimaryID: "1"}}}},
	}

	err := o.Run(context.Background(), ds)
	require.Error(t, err)
	category, ok := pipelineerr.CategoryOf(err)
	require.True(t, ok)
	assert.Equal(t, pipelineerr.CategoryDestination, category)
	assert.Empty(t, second.calls)
}
