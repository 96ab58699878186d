package search

// buildMappingBody translates a Mapping into an index-creation request
// body: text analyzers with keyword sub-fields, a geo_point field, and a
// dense_vector field (spec.md §4.6). Elasticsearch takes it as is;
// OpenSearchClient replaces the dense_vector field with a knn_vector one.
func buildMappingBody(m Mapping) map[string]interface{} {
	properties := map[string]interface{}{}

	for _, f := range m.TextFields {
		properties[f] = map[string]interface{}{
			"type": "text",
			"fields": map[string]interface{}{
				"keyword": map[string]interface{}{"type": "keyword", "ignore_above": 256},
			},
		}
	}
	for _, f := range m.KeywordFields {
		properties[f] = map[string]interface{}{"type": "keyword"}
	}
	if m.GeoPointField != "" {
		properties[m.GeoPointField] = map[string]interface{}{"type": "geo_point"}
	}
	if m.VectorField != "" {
		properties[m.VectorField] = map[string]interface{}{
			"type":       "dense_vector",
			"dims":       m.VectorDims,
			"index":      true,
			"similarity": "cosine",
		}
	}

	return map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": properties,
		},
	}
}
