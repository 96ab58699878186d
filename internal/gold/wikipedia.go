package gold

import "github.com/realestate-pipeline/pipeline/internal/silver"

// WikipediaArticle is the Gold-tier shape of a Wikipedia article: the
// silver row plus its generated embedding.
type WikipediaArticle struct {
	silver.WikipediaArticle
	Embedding []float32
}

// GraphProjection returns the article's graph-node field map.
func (a WikipediaArticle) GraphProjection() map[string]interface{} {
	return map[string]interface{}{
		"page_id":       a.Source.PageID,
		"title":         a.Source.Title,
		"long_summary":  a.Source.LongSummary,
		"short_summary": a.Source.ShortSummary,
	}
}

// SearchDocument returns the full denormalized search-store fields for an
// article.
func (a WikipediaArticle) SearchDocument() map[string]interface{} {
	return map[string]interface{}{
		"page_id":       a.Source.PageID,
		"graph_node_id": a.GraphNodeID,
		"title":         a.Source.Title,
		"long_summary":  a.Source.LongSummary,
		"short_summary": a.Source.ShortSummary,
		"embedding":     a.Embedding,
	}
}
