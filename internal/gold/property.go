// Package gold composes enriched, export-ready documents from Silver
// tables: per-entity embeddings and the Property/Neighborhood/
// WikipediaArticle denormalized document shape consumed by the file and
// search writers. The graph writer projects its own node shape from these
// documents, flattening nested fields and applying the excluded-fields rule
// (invariant 4) itself.
package gold

import (
	"github.com/realestate-pipeline/pipeline/internal/silver"
	"github.com/realestate-pipeline/pipeline/pkg/model"
)

// Property is the Gold-tier shape of a property: the full silver row plus
// its generated embedding. The file and search writers consume this shape
// directly; the graph writer flattens the nested address/location maps and
// applies the excluded-fields rule before writing (invariant 4).
type Property struct {
	silver.Property
	Embedding []float32
}

// SearchDocument returns the full denormalized search-store fields for a
// property, including the fields the graph projection excludes.
func (p Property) SearchDocument() map[string]interface{} {
	return map[string]interface{}{
		"listing_id":     p.Source.ListingID,
		"graph_node_id":  p.GraphNodeID,
		"neighborhood_id": p.Source.NeighborhoodID,
		"address": map[string]interface{}{
			"street": p.Source.Address.Street,
			"city":   p.Source.Address.City,
			"state":  p.Source.Address.State,
			"zip":    p.Source.Address.Zip,
		},
		"location":      geoPoint(p.Source.Address),
		"price":         p.Source.Price,
		"price_range":   string(p.PriceBucket),
		"bedrooms":      p.Source.Bedrooms,
		"bathrooms":     p.Source.Bathrooms,
		"square_feet":   p.Source.SquareFeet,
		"year_built":    p.Source.YearBuilt,
		"property_type": p.Source.PropertyType,
		"features":      p.FeaturesLower,
		"description":   p.Source.Description,
		"embedding":     p.Embedding,
	}
}

func geoPoint(addr model.Address) interface{} {
	if addr.Coordinates == nil {
		return nil
	}
	return map[string]float64{
		"lat": addr.Coordinates.Latitude,
		"lon": addr.Coordinates.Longitude,
	}
}
