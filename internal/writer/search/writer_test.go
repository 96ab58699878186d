package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realestate-pipeline/pipeline/internal/writer"
	"github.com/realestate-pipeline/pipeline/pkg/model"
)

type fakeClient struct {
	deleted []string
	ensured map[string]Mapping
	bulked  map[string][]Document
}

func newFakeClient() *fakeClient {
	return &fakeClient{ensured: map[string]Mapping{}, bulked: map[string][]Document{}}
}

func (f *fakeClient) EnsureIndex(ctx context.Context, index string, mapping Mapping) error {
	f.ensured[index] = mapping
	return nil
}

func (f *fakeClient) DeleteIndex(ctx context.Context, index string) error {
	f.deleted = append(f.deleted, index)
	return nil
}

func (f *fakeClient) Bulk(ctx context.Context, index string, docs []Document) error {
	f.bulked[index] = append(f.bulked[index], docs...)
	return nil
}

func (f *fakeClient) Get(ctx context.Context, index, id string) (map[string]interface{}, bool, error) {
	for _, d := range f.bulked[index] {
		if d.ID == id {
			return d.Source, true, nil
		}
	}
	return nil, false, nil
}

func (f *fakeClient) Scroll(ctx context.Context, index string, batchSize int, fn func([]map[string]interface{}) error) error {
	var batch []map[string]interface{}
	for _, d := range f.bulked[index] {
		batch = append(batch, d.Source)
	}
	if len(batch) == 0 {
		return nil
	}
	return fn(batch)
}

func TestSearchWriterClearDeletesAllKnownIndices(t *testing.T) {
	client := newFakeClient()
	w := New(client, 500)
	require.NoError(t, w.Clear(context.Background()))
	assert.ElementsMatch(t, []string{"properties", "neighborhoods", "wikipedia"}, client.deleted)
}

func TestSearchWriterSkipsUnmappedEntityKinds(t *testing.T) {
	client := newFakeClient()
	w := New(client, 500)
	err := w.WriteNodes(context.Background(), model.EntityFeature, []writer.NodeRecord{{PrimaryID: "pool"}})
	require.NoError(t, err)
	assert.Empty(t, client.bulked)
}

func TestSearchWriterIndexesPropertyWithSearchText(t *testing.T) {
	client := newFakeClient()
	w := New(client, 500)

	records := []writer.NodeRecord{
		{PrimaryID: "L1", Fields: map[string]interface{}{"description": "lovely home", "property_type": "condo"}},
	}
	require.NoError(t, w.WriteNodes(context.Background(), model.EntityProperty, records))

	docs := client.bulked["properties"]
	require.Len(t, docs, 1)
	assert.Equal(t, "L1", docs[0].ID)
	assert.Equal(t, "lovely home condo", docs[0].Source["search_text"])
}

func TestSearchWriterBatchesBulkWrites(t *testing.T) {
	client := newFakeClient()
	w := New(client, 1)

	records := []writer.NodeRecord{
		{PrimaryID: "L1", Fields: map[string]interface{}{"description": "a"}},
		{PrimaryID: "L2", Fields: map[string]interface{}{"description": "b"}},
	}
	require.NoError(t, w.WriteNodes(context.Background(), model.EntityProperty, records))
	assert.Len(t, client.bulked["properties"], 2)
}
