package search

import (
	"context"
	"fmt"

	"github.com/realestate-pipeline/pipeline/internal/writer"
	"github.com/realestate-pipeline/pipeline/pkg/model"
)

// indexNames maps the three primary entity kinds to their search index,
// verbatim with no prefix (spec.md §4.6). Classification and geographic
// entity kinds, and every edge kind, have no search-store representation:
// the search store serves per-property/neighborhood/article document
// search, not graph navigation.
var indexNames = map[model.EntityKind]string{
	model.EntityProperty:     "properties",
	model.EntityNeighborhood: "neighborhoods",
	model.EntityWikipedia:    "wikipedia",
}

// Writer implements writer.Destination over a search Client.
type Writer struct {
	client    Client
	batchSize int
}

// New creates a search destination with the given batch size (spec.md
// §4.6 default 500).
func New(client Client, batchSize int) *Writer {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &Writer{client: client, batchSize: batchSize}
}

func (w *Writer) Name() string { return "search" }

func (w *Writer) Clear(ctx context.Context) error {
	for _, index := range indexNames {
		if err := w.client.DeleteIndex(ctx, index); err != nil {
			return fmt.Errorf("search: clear index %s: %w", index, err)
		}
	}
	return nil
}

func (w *Writer) WriteNodes(ctx context.Context, kind model.EntityKind, records []writer.NodeRecord) error {
	index, ok := indexNames[kind]
	if !ok {
		return nil
	}

	if err := w.client.EnsureIndex(ctx, index, mappingFor(kind, records)); err != nil {
		return fmt.Errorf("search: ensure index %s: %w", index, err)
	}

	for start := 0; start < len(records); start += w.batchSize {
		end := start + w.batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := make([]Document, end-start)
		for i, r := range records[start:end] {
			batch[i] = Document{ID: r.PrimaryID, Source: withSearchText(kind, r)}
		}
		if err := w.client.Bulk(ctx, index, batch); err != nil {
			return fmt.Errorf("search: bulk write to %s: %w", index, err)
		}
	}
	return nil
}

// WriteEdges is a no-op: the search store holds denormalized documents, not
// the graph's typed edges.
func (w *Writer) WriteEdges(ctx context.Context, kind model.EdgeKind, edges []model.Relationship) error {
	return nil
}

func (w *Writer) Close() error { return nil }

func mappingFor(kind model.EntityKind, records []writer.NodeRecord) Mapping {
	dims := 0
	for _, r := range records {
		if len(r.Embedding) > 0 {
			dims = len(r.Embedding)
			break
		}
	}

	switch kind {
	case model.EntityProperty:
		return Mapping{
			TextFields:    []string{"description", "search_text"},
			KeywordFields: []string{"property_type", "price_range"},
			GeoPointField: "location",
			VectorField:   "embedding",
			VectorDims:    dims,
		}
	case model.EntityNeighborhood:
		return Mapping{
			TextFields:    []string{"description", "search_text"},
			KeywordFields: []string{"city", "state"},
			VectorField:   "embedding",
			VectorDims:    dims,
		}
	case model.EntityWikipedia:
		return Mapping{
			TextFields:  []string{"long_summary", "short_summary", "search_text"},
			VectorField: "embedding",
			VectorDims:  dims,
		}
	default:
		return Mapping{}
	}
}

// withSearchText builds the search_text field by concatenating the
// entity-specific set of text columns (spec.md §4.6), on top of the
// record's own field map.
func withSearchText(kind model.EntityKind, r writer.NodeRecord) map[string]interface{} {
	out := make(map[string]interface{}, len(r.Fields)+2)
	for k, v := range r.Fields {
		out[k] = v
	}
	if len(r.Embedding) > 0 {
		out["embedding"] = r.Embedding
	}
	out["search_text"] = searchTextFor(kind, out)
	return out
}

func searchTextFor(kind model.EntityKind, fields map[string]interface{}) string {
	switch kind {
	case model.EntityProperty:
		return joinFields(fields, "description", "property_type")
	case model.EntityNeighborhood:
		return joinFields(fields, "name", "description")
	case model.EntityWikipedia:
		return joinFields(fields, "title", "short_summary")
	default:
		return ""
	}
}

func joinFields(fields map[string]interface{}, keys ...string) string {
	out := ""
	for i, k := range keys {
		if v, ok := fields[k].(string); ok {
			if i > 0 {
				out += " "
			}
			out += v
		}
	}
	return out
}
