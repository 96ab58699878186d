// Package search writes and reads denormalized documents against a
// search/vector-index store. Two interchangeable backends — Elasticsearch
// and OpenSearch — implement the same Client interface so the writer and
// denormalization builder never know which engine is behind it (spec.md
// §4.6).
package search

import "context"

// Client is the minimal surface both backends expose: mapping setup, bulk
// indexing, scrolling, and single-document fetch.
type Client interface {
	// EnsureIndex creates the index with the given mapping if absent;
	// mapping creation is idempotent.
	EnsureIndex(ctx context.Context, index string, mapping Mapping) error
	// DeleteIndex removes an index if it exists, used for clear-before-write.
	DeleteIndex(ctx context.Context, index string) error
	// Bulk submits a batch of index actions in one round-trip. A non-2xx
	// response, or any item-level failure, aborts the run.
	Bulk(ctx context.Context, index string, docs []Document) error
	// Get fetches a single document by id.
	Get(ctx context.Context, index, id string) (map[string]interface{}, bool, error)
	// Scroll iterates every document in an index in batches of the given
	// size, calling fn per batch until exhausted or fn returns an error.
	Scroll(ctx context.Context, index string, batchSize int, fn func(batch []map[string]interface{}) error) error
}

// Document is one bulk-indexable document: a primary id and its field map.
type Document struct {
	ID     string
	Source map[string]interface{}
}

// Mapping describes the field typing the writer wants an index to have:
// text analyzers, keyword sub-fields, a geo_point field, and a dense_vector
// field, matching spec.md §4.6's mapping requirements.
type Mapping struct {
	TextFields     []string
	KeywordFields  []string
	GeoPointField  string
	VectorField    string
	VectorDims     int
}
