// Package relationships derives the fixed set of typed edges from Silver
// and Gold tables: geographic hierarchy, classification membership,
// proximity, similarity, and description edges. Every emitter follows the
// table in spec.md §4.2; edges are deduplicated by (from_id, to_id, type)
// set semantics so re-ingesting the same source twice is idempotent.
package relationships

import (
	"sort"

	"github.com/realestate-pipeline/pipeline/internal/silver"
	"github.com/realestate-pipeline/pipeline/internal/source"
	"github.com/realestate-pipeline/pipeline/pkg/model"
)

// Set accumulates relationships with set semantics keyed by EdgeKey,
// silently dropping duplicates rather than re-adding them.
type Set struct {
	seen  map[model.EdgeKey]bool
	edges []model.Relationship
}

// NewSet creates an empty relationship set.
func NewSet() *Set {
	return &Set{seen: make(map[model.EdgeKey]bool)}
}

// Add inserts a relationship if its key has not already been seen.
func (s *Set) Add(r model.Relationship) {
	k := r.Key()
	if s.seen[k] {
		return
	}
	s.seen[k] = true
	s.edges = append(s.edges, r)
}

// ByType groups the set's edges by EdgeKind, keeping insertion order within
// each group. The returned map carries no order across kinds; callers that
// need the fixed write order iterate model.EdgeWriteOrder.
func (s *Set) ByType() map[model.EdgeKind][]model.Relationship {
	out := make(map[model.EdgeKind][]model.Relationship)
	for _, e := range s.edges {
		out[e.Type] = append(out[e.Type], e)
	}
	return out
}

// All returns every edge in the set in insertion order.
func (s *Set) All() []model.Relationship {
	return s.edges
}

// BuildGeographic derives LOCATED_IN, IN_ZIP_CODE, IN_CITY, IN_COUNTY, and
// IN_STATE edges for the property and neighborhood Silver tables.
func BuildGeographic(properties []silver.Property, neighborhoods []silver.Neighborhood, locations map[string]source.LocationEntry) *Set {
	s := NewSet()

	neighborhoodByID := make(map[string]silver.Neighborhood, len(neighborhoods))
	for _, n := range neighborhoods {
		neighborhoodByID[n.Source.NeighborhoodID] = n
	}

	for _, p := range properties {
		propertyNode := p.GraphNodeID

		if n, ok := neighborhoodByID[p.Source.NeighborhoodID]; ok && p.Source.NeighborhoodID != "" {
			s.Add(model.Relationship{FromID: propertyNode, ToID: n.GraphNodeID, Type: model.EdgeLocatedIn})
		}

		zipTarget := ""
		if p.ZipNormalized != "" {
			zipTarget = model.GraphNodeID(model.EntityZipCode, p.ZipNormalized)
			s.Add(model.Relationship{FromID: propertyNode, ToID: zipTarget, Type: model.EdgeInZipCode})
		}

		cityTarget := model.GraphNodeID(model.EntityCity, model.CityID(p.CityNormalized, p.StateNormalized))
		if zipTarget != "" {
			s.Add(model.Relationship{FromID: zipTarget, ToID: cityTarget, Type: model.EdgeInCity})
		} else {
			s.Add(model.Relationship{FromID: propertyNode, ToID: cityTarget, Type: model.EdgeInCity})
		}

		if locations != nil {
			if entry, ok := locations[p.ZipNormalized]; ok && entry.County != "" {
				countyTarget := model.GraphNodeID(model.EntityCounty, model.CountyID(entry.County, p.StateNormalized))
				s.Add(model.Relationship{FromID: cityTarget, ToID: countyTarget, Type: model.EdgeInCounty})
				stateTarget := model.GraphNodeID(model.EntityState, p.StateNormalized)
				s.Add(model.Relationship{FromID: countyTarget, ToID: stateTarget, Type: model.EdgeInState})
				continue
			}
		}

		stateTarget := model.GraphNodeID(model.EntityState, p.StateNormalized)
		s.Add(model.Relationship{FromID: cityTarget, ToID: stateTarget, Type: model.EdgeInState})
	}

	for _, n := range neighborhoods {
		cityTarget := model.GraphNodeID(model.EntityCity, model.CityID(n.CityNormalized, n.StateNormalized))
		s.Add(model.Relationship{FromID: n.GraphNodeID, ToID: cityTarget, Type: model.EdgeInCity})
	}

	return s
}

// BuildClassification derives HAS_FEATURE, OF_TYPE, and IN_PRICE_RANGE
// edges for the property Silver table.
func BuildClassification(properties []silver.Property) *Set {
	s := NewSet()
	for _, p := range properties {
		propertyNode := p.GraphNodeID
		for _, f := range p.FeaturesLower {
			s.Add(model.Relationship{FromID: propertyNode, ToID: model.GraphNodeID(model.EntityFeature, f), Type: model.EdgeHasFeature})
		}
		s.Add(model.Relationship{FromID: propertyNode, ToID: model.GraphNodeID(model.EntityPropertyType, p.TypeNormalized), Type: model.EdgeOfType})
		s.Add(model.Relationship{FromID: propertyNode, ToID: model.GraphNodeID(model.EntityPriceRange, string(p.PriceBucket)), Type: model.EdgeInPriceRange})
	}
	return s
}

// BuildDescribes derives DESCRIBES edges from WikipediaArticle ->
// Neighborhood for each correlation in wikipedia_correlations whose
// confidence exceeds 0.3.
func BuildDescribes(neighborhoods []silver.Neighborhood, articles []silver.WikipediaArticle) *Set {
	s := NewSet()
	articleNodeByPageID := make(map[int64]string, len(articles))
	for _, a := range articles {
		articleNodeByPageID[a.Source.PageID] = a.GraphNodeID
	}
	for _, n := range neighborhoods {
		for _, corr := range n.Source.WikipediaCorrelations {
			if corr.Confidence <= 0.3 {
				continue
			}
			articleNode, ok := articleNodeByPageID[corr.PageID]
			if !ok {
				continue
			}
			weight := corr.Confidence
			s.Add(model.Relationship{FromID: articleNode, ToID: n.GraphNodeID, Type: model.EdgeDescribes, Weight: &weight})
		}
	}
	return s
}

// NearScope groups neighborhoods by city, the locality used to bound NEAR
// candidate pairs.
func NearScope(neighborhoods []silver.Neighborhood) map[string][]silver.Neighborhood {
	byScope := make(map[string][]silver.Neighborhood)
	for _, n := range neighborhoods {
		scope := model.CityID(n.CityNormalized, n.StateNormalized)
		byScope[scope] = append(byScope[scope], n)
	}
	return byScope
}

// BuildNear derives NEAR edges between neighborhoods sharing the same city.
// The relation is emitted in one canonical direction with undirected:true
// metadata (spec.md §9 open question #2: conflicting source policies
// default to canonical-direction-plus-undirected-flag).
func BuildNear(neighborhoods []silver.Neighborhood) *Set {
	s := NewSet()
	for _, group := range NearScope(neighborhoods) {
		ids := make([]string, len(group))
		for i, n := range group {
			ids[i] = n.GraphNodeID
		}
		sort.Strings(ids)
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				s.Add(model.Relationship{FromID: ids[i], ToID: ids[j], Type: model.EdgeNear, Undirected: true})
			}
		}
	}
	return s
}
