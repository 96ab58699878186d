package model

// EntityKind is the closed enumeration of node kinds the pipeline knows
// about. The orchestrator and every writer switch on this enum exhaustively
// instead of doing runtime type inspection (spec.md §9 Design Notes).
type EntityKind string

const (
	EntityState        EntityKind = "State"
	EntityCounty       EntityKind = "County"
	EntityCity         EntityKind = "City"
	EntityZipCode      EntityKind = "ZipCode"
	EntityPropertyType EntityKind = "PropertyType"
	EntityFeature      EntityKind = "Feature"
	EntityPriceRange   EntityKind = "PriceRange"
	EntityNeighborhood EntityKind = "Neighborhood"
	EntityProperty     EntityKind = "Property"
	EntityWikipedia    EntityKind = "WikipediaArticle"
	EntityTopicCluster EntityKind = "TopicCluster"
)

// String returns the entity kind's label, used as a partition/index name
// across destinations.
func (k EntityKind) String() string { return string(k) }

// NodeWriteOrder is the fixed per-destination ordering from spec.md §4.4:
// geographic hierarchy, then classification, then primary entities, then
// derived.
var NodeWriteOrder = []EntityKind{
	EntityState,
	EntityCounty,
	EntityCity,
	EntityZipCode,
	EntityPropertyType,
	EntityFeature,
	EntityPriceRange,
	EntityNeighborhood,
	EntityProperty,
	EntityWikipedia,
	EntityTopicCluster,
}

// EdgeKind is the closed enumeration of edge types from spec.md §4.2.
type EdgeKind string

const (
	EdgeLocatedIn    EdgeKind = "LOCATED_IN"
	EdgeInZipCode    EdgeKind = "IN_ZIP_CODE"
	EdgeInCity       EdgeKind = "IN_CITY"
	EdgeInCounty     EdgeKind = "IN_COUNTY"
	EdgeInState      EdgeKind = "IN_STATE"
	EdgeNear         EdgeKind = "NEAR"
	EdgeHasFeature   EdgeKind = "HAS_FEATURE"
	EdgeOfType       EdgeKind = "OF_TYPE"
	EdgeInPriceRange EdgeKind = "IN_PRICE_RANGE"
	EdgeSimilarTo    EdgeKind = "SIMILAR_TO"
	EdgeDescribes    EdgeKind = "DESCRIBES"
)

// EdgeWriteOrder is the fixed emission order from spec.md §4.2's table.
var EdgeWriteOrder = []EdgeKind{
	EdgeLocatedIn,
	EdgeInZipCode,
	EdgeInCity,
	EdgeInCounty,
	EdgeInState,
	EdgeNear,
	EdgeHasFeature,
	EdgeOfType,
	EdgeInPriceRange,
	EdgeSimilarTo,
	EdgeDescribes,
}

// Relationship is a single typed edge: {from_id, to_id, type, weight?}.
type Relationship struct {
	FromID     string     `json:"from_id" db:"from_id"`
	ToID       string     `json:"to_id" db:"to_id"`
	Type       EdgeKind   `json:"type" db:"type"`
	Weight     *float64   `json:"weight,omitempty" db:"weight"`
	Undirected bool       `json:"undirected,omitempty" db:"-"`
}

// EdgeKey uniquely identifies an edge for set-semantics deduplication
// (invariant 6 / spec.md §4.2 "Idempotency").
type EdgeKey struct {
	FromID string
	ToID   string
	Type   EdgeKind
}

// Key returns the deduplication key for this relationship.
func (r Relationship) Key() EdgeKey {
	return EdgeKey{FromID: r.FromID, ToID: r.ToID, Type: r.Type}
}

// GraphNodeID computes the derived key from spec.md §4.1:
// "{entity_label}:{primary_id}".
func GraphNodeID(kind EntityKind, primaryID string) string {
	return string(kind) + ":" + primaryID
}
