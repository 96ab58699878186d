// Package denorm reconstructs cross-entity documents by reading back from
// the search store after the per-entity writes have completed (spec.md
// §4.8), rather than from Gold tables, so it operates on exactly what was
// indexed.
package denorm

import (
	"context"
	"fmt"

	"github.com/realestate-pipeline/pipeline/internal/writer/search"
)

const (
	propertiesIndex           = "properties"
	neighborhoodsIndex        = "neighborhoods"
	wikipediaIndex            = "wikipedia"
	propertyRelationshipsIndex = "property_relationships"
)

// Config controls the builder's fan-out limits.
type Config struct {
	MaxRelatedWikipedia int
	ScrollBatchSize     int
}

// Builder assembles and writes the property_relationships index.
type Builder struct {
	client search.Client
	cfg    Config

	DocumentsWritten int
}

// New creates a denormalization builder over a search Client.
func New(client search.Client, cfg Config) *Builder {
	if cfg.ScrollBatchSize <= 0 {
		cfg.ScrollBatchSize = 200
	}
	if cfg.MaxRelatedWikipedia <= 0 {
		cfg.MaxRelatedWikipedia = 3
	}
	return &Builder{client: client, cfg: cfg}
}

// Run scrolls the properties index, joins each property against its
// neighborhood and Wikipedia articles, and bulk-writes the assembled
// documents into property_relationships.
func (b *Builder) Run(ctx context.Context) error {
	if err := b.client.EnsureIndex(ctx, propertyRelationshipsIndex, search.Mapping{
		TextFields: []string{"combined_text"},
	}); err != nil {
		return fmt.Errorf("denorm: ensure index: %w", err)
	}

	return b.client.Scroll(ctx, propertiesIndex, b.cfg.ScrollBatchSize, func(batch []map[string]interface{}) error {
		docs := make([]search.Document, 0, len(batch))
		for _, property := range batch {
			id, _ := property["listing_id"].(string)
			doc, err := b.assemble(ctx, property)
			if err != nil {
				return fmt.Errorf("denorm: assemble %s: %w", id, err)
			}
			docs = append(docs, search.Document{ID: id, Source: doc})
		}
		if err := b.client.Bulk(ctx, propertyRelationshipsIndex, docs); err != nil {
			return fmt.Errorf("denorm: bulk write: %w", err)
		}
		b.DocumentsWritten += len(docs)
		return nil
	})
}

// assemble builds one property_relationships document: property fields
// verbatim, an embedded neighborhood object (or null), a wikipedia_articles
// array, and a combined_text field.
func (b *Builder) assemble(ctx context.Context, property map[string]interface{}) (map[string]interface{}, error) {
	doc := make(map[string]interface{}, len(property)+3)
	for k, v := range property {
		doc[k] = v
	}

	var neighborhood map[string]interface{}
	if neighborhoodID, ok := property["neighborhood_id"].(string); ok && neighborhoodID != "" {
		n, found, err := b.client.Get(ctx, neighborhoodsIndex, neighborhoodID)
		if err != nil {
			return nil, fmt.Errorf("get neighborhood %s: %w", neighborhoodID, err)
		}
		if found {
			neighborhood = n
		}
	}
	doc["neighborhood"] = neighborhood

	articles, err := b.relatedArticles(ctx, neighborhood)
	if err != nil {
		return nil, err
	}
	doc["wikipedia_articles"] = articles

	doc["combined_text"] = combinedText(property, neighborhood, articles)
	return doc, nil
}

// relatedArticles extracts the primary article id plus the top-N related
// ids from the neighborhood's wikipedia_correlations, preserving
// correlation order, and fetches each from the wikipedia index.
func (b *Builder) relatedArticles(ctx context.Context, neighborhood map[string]interface{}) ([]map[string]interface{}, error) {
	if neighborhood == nil {
		return []map[string]interface{}{}, nil
	}
	correlations, _ := neighborhood["wikipedia_correlations"].([]interface{})
	pageIDs := orderedPageIDs(correlations, b.cfg.MaxRelatedWikipedia)

	articles := make([]map[string]interface{}, 0, len(pageIDs))
	for _, pageID := range pageIDs {
		a, found, err := b.client.Get(ctx, wikipediaIndex, pageID)
		if err != nil {
			return nil, fmt.Errorf("get article %s: %w", pageID, err)
		}
		if found {
			articles = append(articles, a)
		}
	}
	return articles, nil
}

// orderedPageIDs returns the primary article id first, followed by up to
// maxRelated related ids, in the order they appear in the correlation
// array.
func orderedPageIDs(correlations []interface{}, maxRelated int) []string {
	type entry struct {
		pageID string
		typ    string
	}
	var primary []entry
	var related []entry
	for _, raw := range correlations {
		c, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		pageID := fmt.Sprint(c["page_id"])
		typ, _ := c["type"].(string)
		if typ == "primary" {
			primary = append(primary, entry{pageID, typ})
		} else {
			related = append(related, entry{pageID, typ})
		}
	}
	var out []string
	for _, e := range primary {
		out = append(out, e.pageID)
	}
	for i, e := range related {
		if i >= maxRelated {
			break
		}
		out = append(out, e.pageID)
	}
	return out
}

func combinedText(property, neighborhood map[string]interface{}, articles []map[string]interface{}) string {
	text := ""
	if d, ok := property["description"].(string); ok {
		text += d
	}
	if neighborhood != nil {
		if d, ok := neighborhood["description"].(string); ok {
			text += " " + d
		}
	}
	for _, a := range articles {
		if s, ok := a["short_summary"].(string); ok {
			text += " " + s
		}
	}
	return text
}
