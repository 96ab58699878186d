package gold

import (
	"github.com/realestate-pipeline/pipeline/internal/silver"
	"github.com/realestate-pipeline/pipeline/pkg/model"
)

// Neighborhood is the Gold-tier shape of a neighborhood: the silver row
// plus its generated embedding.
type Neighborhood struct {
	silver.Neighborhood
	Embedding []float32
}

// GraphProjection returns the neighborhood's graph-node field map. No
// fields are excluded for Neighborhood beyond what city/state already
// represent via IN_CITY (invariant 4 names Property and Neighborhood;
// Neighborhood carries no redundant zip/type fields to begin with).
func (n Neighborhood) GraphProjection() map[string]interface{} {
	return map[string]interface{}{
		"neighborhood_id":   n.Source.NeighborhoodID,
		"name":              n.Source.Name,
		"population":        n.Source.Population,
		"walkability_score": n.Source.WalkabilityScore,
		"school_score":      n.Source.SchoolScore,
		"crime_score":       n.Source.CrimeScore,
		"description":       n.Source.Description,
	}
}

// SearchDocument returns the full denormalized search-store fields for a
// neighborhood.
func (n Neighborhood) SearchDocument() map[string]interface{} {
	return map[string]interface{}{
		"neighborhood_id":   n.Source.NeighborhoodID,
		"graph_node_id":     n.GraphNodeID,
		"name":              n.Source.Name,
		"city":              n.CityNormalized,
		"state":             n.StateNormalized,
		"population":        n.Source.Population,
		"walkability_score": n.Source.WalkabilityScore,
		"school_score":      n.Source.SchoolScore,
		"crime_score":       n.Source.CrimeScore,
		"description":       n.Source.Description,
		"lifestyle_tags":         n.Source.LifestyleTags,
		"embedding":              n.Embedding,
		"wikipedia_correlations": correlationMaps(n.Source.WikipediaCorrelations),
	}
}

func correlationMaps(corrs []model.WikipediaCorrelation) []map[string]interface{} {
	out := make([]map[string]interface{}, len(corrs))
	for i, c := range corrs {
		out[i] = map[string]interface{}{
			"page_id":    c.PageID,
			"type":       c.Type,
			"confidence": c.Confidence,
		}
	}
	return out
}
