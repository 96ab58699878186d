// Package dbcapabilities is a registry describing the storage technologies
// this pipeline actually speaks to: the three write destinations (columnar
// file, search index, graph database) and the two source formats (JSON,
// SQLite). Trimmed from the teacher's 30-technology registry, which
// described every database anchor could adapt to; this pipeline's
// destination set is closed by spec.md §4.4 to {file, search, graph}.
package dbcapabilities

import "strings"

// DestinationID is the canonical identifier for a write destination technology.
type DestinationID string

const (
	ColumnarFile  DestinationID = "file"
	Elasticsearch DestinationID = "elasticsearch"
	OpenSearch    DestinationID = "opensearch"
	Neo4j         DestinationID = "neo4j"
)

// SourceID is the canonical identifier for a source format.
type SourceID string

const (
	JSONSource   SourceID = "json"
	SQLiteSource SourceID = "sqlite"
)

// DataParadigm enumerates the storage paradigm a destination implements.
type DataParadigm string

const (
	ParadigmColumnar    DataParadigm = "columnar"
	ParadigmSearchIndex DataParadigm = "searchindex"
	ParadigmVector      DataParadigm = "vector"
	ParadigmGraph       DataParadigm = "graph"
)

// Capability describes what a destination technology supports, in the same
// shape the teacher pack uses across its own 30-technology registry, so the
// orchestrator can reason about destinations uniformly.
type Capability struct {
	Name        string         `json:"name"`
	ID          DestinationID  `json:"id"`
	Paradigms   []DataParadigm `json:"paradigms"`
	Aliases     []string       `json:"aliases,omitempty"`
	SupportsANN bool           `json:"supportsAnn"` // approximate nearest-neighbor / dense_vector search
}

// All is the registry of destination capabilities keyed by canonical ID.
var All = map[DestinationID]Capability{
	ColumnarFile: {
		Name:      "Partitioned columnar file set",
		ID:        ColumnarFile,
		Paradigms: []DataParadigm{ParadigmColumnar},
		Aliases:   []string{"parquet", "columnar"},
	},
	Elasticsearch: {
		Name:        "Elasticsearch",
		ID:          Elasticsearch,
		Paradigms:   []DataParadigm{ParadigmSearchIndex, ParadigmVector},
		Aliases:     []string{"es"},
		SupportsANN: true,
	},
	OpenSearch: {
		Name:        "OpenSearch",
		ID:          OpenSearch,
		Paradigms:   []DataParadigm{ParadigmSearchIndex, ParadigmVector},
		Aliases:     []string{"os"},
		SupportsANN: true,
	},
	Neo4j: {
		Name:        "Neo4j",
		ID:          Neo4j,
		Paradigms:   []DataParadigm{ParadigmGraph, ParadigmVector},
		SupportsANN: true,
	},
}

// Get looks up a destination's capability by canonical ID or alias.
func Get(id DestinationID) (Capability, bool) {
	if c, ok := All[id]; ok {
		return c, true
	}
	normalized := DestinationID(strings.ToLower(string(id)))
	for _, c := range All {
		for _, alias := range c.Aliases {
			if DestinationID(alias) == normalized {
				return c, true
			}
		}
	}
	return Capability{}, false
}

// SupportsParadigm reports whether a Capability implements the given paradigm.
func (c Capability) SupportsParadigm(p DataParadigm) bool {
	for _, dp := range c.Paradigms {
		if dp == p {
			return true
		}
	}
	return false
}
