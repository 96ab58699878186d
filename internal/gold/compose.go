package gold

import (
	"context"

	"github.com/realestate-pipeline/pipeline/internal/embedding"
	"github.com/realestate-pipeline/pipeline/internal/silver"
)

// Dataset is the complete set of Gold-tier tables produced by one pipeline
// run.
type Dataset struct {
	Properties    []Property
	Neighborhoods []Neighborhood
	Articles      []WikipediaArticle
}

// Compose runs the fixed text-selection rules (spec.md §4.3) over each
// Silver table, embeds the selected text through batcher, and assembles the
// Gold dataset. Embeddings for each entity type are requested as one batch
// call per type so the batcher's fingerprint cache can dedupe across types
// too (e.g. two properties sharing a boilerplate description).
func Compose(ctx context.Context, batcher *embedding.Batcher, properties []silver.Property, neighborhoods []silver.Neighborhood, articles []silver.WikipediaArticle) (Dataset, error) {
	propTexts := make([]string, len(properties))
	for i, p := range properties {
		propTexts[i] = embedding.PropertyText(p)
	}
	propVecs, err := batcher.EmbedAll(ctx, "gold_property", propTexts)
	if err != nil {
		return Dataset{}, err
	}

	neighTexts := make([]string, len(neighborhoods))
	for i, n := range neighborhoods {
		neighTexts[i] = embedding.NeighborhoodText(n)
	}
	neighVecs, err := batcher.EmbedAll(ctx, "gold_neighborhood", neighTexts)
	if err != nil {
		return Dataset{}, err
	}

	articleTexts := make([]string, len(articles))
	for i, a := range articles {
		articleTexts[i] = embedding.WikipediaText(a)
	}
	articleVecs, err := batcher.EmbedAll(ctx, "gold_wikipedia", articleTexts)
	if err != nil {
		return Dataset{}, err
	}

	ds := Dataset{
		Properties:    make([]Property, len(properties)),
		Neighborhoods: make([]Neighborhood, len(neighborhoods)),
		Articles:      make([]WikipediaArticle, len(articles)),
	}
	for i, p := range properties {
		ds.Properties[i] = Property{Property: p, Embedding: propVecs[i]}
	}
	for i, n := range neighborhoods {
		ds.Neighborhoods[i] = Neighborhood{Neighborhood: n, Embedding: neighVecs[i]}
	}
	for i, a := range articles {
		ds.Articles[i] = WikipediaArticle{WikipediaArticle: a, Embedding: articleVecs[i]}
	}
	return ds, nil
}
