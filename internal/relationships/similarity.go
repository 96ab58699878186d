package relationships

import (
	"math"
	"sort"

	"github.com/realestate-pipeline/pipeline/internal/silver"
	"github.com/realestate-pipeline/pipeline/pkg/model"
	"github.com/realestate-pipeline/pipeline/pkg/pipelineconfig"
)

// EmbeddedProperty pairs a Silver property with its Gold-tier embedding
// vector, the minimal shape the similarity builder needs.
type EmbeddedProperty struct {
	Property  silver.Property
	Embedding []float32
}

// BuildSimilarTo derives SIMILAR_TO edges by cosine similarity within the
// configured scope (same_neighborhood or same_city), keeping up to top_k
// neighbors per property above threshold. Ties are broken by lexicographic
// order of to_id; the edge is emitted in exactly one canonical direction
// (from_id < to_id), per spec.md §4.2.
func BuildSimilarTo(properties []EmbeddedProperty, cfg pipelineconfig.SimilarityConfig) *Set {
	s := NewSet()
	topK := cfg.TopK
	if topK <= 0 {
		topK = 10
	}

	for _, group := range scopeGroups(properties, cfg.Scope) {
		for i := range group {
			type candidate struct {
				id    string
				score float64
			}
			var candidates []candidate
			for j := range group {
				if i == j {
					continue
				}
				score := cosineSimilarity(group[i].Embedding, group[j].Embedding)
				if score < cfg.Threshold {
					continue
				}
				candidates = append(candidates, candidate{id: group[j].Property.GraphNodeID, score: score})
			}
			sort.Slice(candidates, func(a, b int) bool {
				if candidates[a].score != candidates[b].score {
					return candidates[a].score > candidates[b].score
				}
				return candidates[a].id < candidates[b].id
			})
			if len(candidates) > topK {
				candidates = candidates[:topK]
			}

			fromID := group[i].Property.GraphNodeID
			for _, c := range candidates {
				a, b := fromID, c.id
				if a > b {
					a, b = b, a
				}
				score := c.score
				s.Add(model.Relationship{FromID: a, ToID: b, Type: model.EdgeSimilarTo, Weight: &score})
			}
		}
	}
	return s
}

func scopeGroups(properties []EmbeddedProperty, scope string) map[string][]EmbeddedProperty {
	groups := make(map[string][]EmbeddedProperty)
	for _, p := range properties {
		var key string
		switch scope {
		case "same_city":
			key = "city:" + model.CityID(p.Property.CityNormalized, p.Property.StateNormalized)
		default: // same_neighborhood
			key = p.Property.Source.NeighborhoodID
			if key == "" {
				key = "city:" + model.CityID(p.Property.CityNormalized, p.Property.StateNormalized)
			}
		}
		groups[key] = append(groups[key], p)
	}
	return groups
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
