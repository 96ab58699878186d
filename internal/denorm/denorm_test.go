package denorm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realestate-pipeline/pipeline/internal/writer/search"
)

type fakeClient struct {
	docs map[string]map[string]map[string]interface{}
	bulk map[string][]search.Document
}

func newFakeClient() *fakeClient {
	return &fakeClient{docs: map[string]map[string]map[string]interface{}{}, bulk: map[string][]search.Document{}}
}

func (f *fakeClient) put(index, id string, doc map[string]interface{}) {
	if f.docs[index] == nil {
		f.docs[index] = map[string]map[string]interface{}{}
	}
	f.docs[index][id] = doc
}

func (f *fakeClient) EnsureIndex(ctx context.Context, index string, mapping search.Mapping) error {
	return nil
}

func (f *fakeClient) DeleteIndex(ctx context.Context, index string) error { return nil }

func (f *fakeClient) Bulk(ctx context.Context, index string, docs []search.Document) error {
	f.bulk[index] = append(f.bulk[index], docs...)
	return nil
}

func (f *fakeClient) Get(ctx context.Context, index, id string) (map[string]interface{}, bool, error) {
	doc, ok := f.docs[index][id]
	return doc, ok, nil
}

func (f *fakeClient) Scroll(ctx context.Context, index string, batchSize int, fn func([]map[string]interface{}) error) error {
	var batch []map[string]interface{}
	for _, d := range f.docs[index] {
		batch = append(batch, d)
	}
	if len(batch) == 0 {
		return nil
	}
	return fn(batch)
}

func TestOrderedPageIDsPrimaryFirstThenRelatedCapped(t *testing.T) {
	correlations := []interface{}{
		map[string]interface{}{"page_id": float64(2), "type": "related"},
		map[string]interface{}{"page_id": float64(1), "type": "primary"},
		map[string]interface{}{"page_id": float64(3), "type": "related"},
		map[string]interface{}{"page_id": float64(4), "type": "related"},
	}

	got := orderedPageIDs(correlations, 2)
	assert.Equal(t, []string{"1", "2", "3"}, got)
}

func TestCombinedTextJoinsPropertyNeighborhoodAndArticles(t *testing.T) {
	property := map[string]interface{}{"description": "cozy home"}
	neighborhood := map[string]interface{}{"description": "walkable area"}
	articles := []map[string]interface{}{{"short_summary": "historic district"}}

	text := combinedText(property, neighborhood, articles)
	assert.Equal(t, "cozy home walkable area historic district", text)
}

func TestBuilderRunAssemblesDocumentWithNeighborhoodAndArticles(t *testing.T) {
	client := newFakeClient()
	client.put("properties", "L1", map[string]interface{}{
		"listing_id":      "L1",
		"neighborhood_id": "N1",
		"description":     "cozy home",
	})
	client.put("neighborhoods", "N1", map[string]interface{}{
		"description": "walkable area",
		"wikipedia_correlations": []interface{}{
			map[string]interface{}{"page_id": float64(1), "type": "primary"},
		},
	})
	client.put("wikipedia", "1", map[string]interface{}{"short_summary": "historic district"})

	b := New(client, Config{})
	require.NoError(t, b.Run(context.Background()))

	require.Equal(t, 1, b.DocumentsWritten)
	docs := client.bulk["property_relationships"]
	require.Len(t, docs, 1)
	assert.Equal(t, "L1", docs[0].ID)
	assert.Equal(t, "cozy home walkable area historic district", docs[0].Source["combined_text"])
}

func TestBuilderRunWithoutNeighborhoodLeavesArticlesEmpty(t *testing.T) {
	client := newFakeClient()
	client.put("properties", "L1", map[string]interface{}{"listing_id": "L1", "description": "cozy home"})

	b := New(client, Config{})
	require.NoError(t, b.Run(context.Background()))

	docs := client.bulk["property_relationships"]
	require.Len(t, docs, 1)
	assert.Nil(t, docs[0].Source["neighborhood"])
	assert.Empty(t, docs[0].Source["wikipedia_articles"])
}
