package engine

import "github.com/apache/arrow-go/v18/arrow"

func nullable(name string, t arrow.DataType) arrow.Field {
	return arrow.Field{Name: name, Type: t, Nullable: true}
}

func required(name string, t arrow.DataType) arrow.Field {
	return arrow.Field{Name: name, Type: t, Nullable: false}
}

func listOf(t arrow.DataType) arrow.DataType {
	return arrow.ListOf(t)
}

// PropertySchema is the Gold-tier schema for the Property entity in its
// full, search/file-bound shape: it keeps the address city/state/zip and
// property_type columns that the graph-bound projection drops under the
// Property node's excluded-fields rule.
var PropertySchema = arrow.NewSchema([]arrow.Field{
	required("bronze_id", arrow.BinaryTypes.String),
	required("listing_id", arrow.BinaryTypes.String),
	required("graph_node_id", arrow.BinaryTypes.String),
	nullable("neighborhood_id", arrow.BinaryTypes.String),
	required("address_street", arrow.BinaryTypes.String),
	required("address_city", arrow.BinaryTypes.String),
	required("address_state", arrow.BinaryTypes.String),
	required("address_zip", arrow.BinaryTypes.String),
	nullable("latitude", arrow.PrimitiveTypes.Float64),
	nullable("longitude", arrow.PrimitiveTypes.Float64),
	required("city_normalized", arrow.BinaryTypes.String),
	required("state_normalized", arrow.BinaryTypes.String),
	required("price", arrow.PrimitiveTypes.Float64),
	required("price_range_bucket", arrow.BinaryTypes.String),
	required("bedrooms", arrow.PrimitiveTypes.Int64),
	required("bathrooms", arrow.PrimitiveTypes.Float64),
	required("square_feet", arrow.PrimitiveTypes.Int64),
	nullable("year_built", arrow.PrimitiveTypes.Int64),
	required("property_type", arrow.BinaryTypes.String),
	required("property_type_normalized", arrow.BinaryTypes.String),
	required("features", listOf(arrow.BinaryTypes.String)),
	required("description", arrow.BinaryTypes.String),
	required("embedding", listOf(arrow.PrimitiveTypes.Float32)),
	required("source_file", arrow.BinaryTypes.String),
}, nil)

// NeighborhoodSchema is the Gold-tier schema for the Neighborhood entity.
var NeighborhoodSchema = arrow.NewSchema([]arrow.Field{
	required("bronze_id", arrow.BinaryTypes.String),
	required("neighborhood_id", arrow.BinaryTypes.String),
	required("graph_node_id", arrow.BinaryTypes.String),
	required("name", arrow.BinaryTypes.String),
	required("city_normalized", arrow.BinaryTypes.String),
	required("state_normalized", arrow.BinaryTypes.String),
	nullable("population", arrow.PrimitiveTypes.Int64),
	nullable("walkability_score", arrow.PrimitiveTypes.Float64),
	nullable("school_score", arrow.PrimitiveTypes.Float64),
	nullable("crime_score", arrow.PrimitiveTypes.Float64),
	required("description", arrow.BinaryTypes.String),
	required("lifestyle_tags", listOf(arrow.BinaryTypes.String)),
	required("embedding", listOf(arrow.PrimitiveTypes.Float32)),
	required("source_file", arrow.BinaryTypes.String),
}, nil)

// WikipediaArticleSchema is the Gold-tier schema for the WikipediaArticle entity.
var WikipediaArticleSchema = arrow.NewSchema([]arrow.Field{
	required("bronze_id", arrow.BinaryTypes.String),
	required("page_id", arrow.PrimitiveTypes.Int64),
	required("graph_node_id", arrow.BinaryTypes.String),
	required("title", arrow.BinaryTypes.String),
	required("long_summary", arrow.BinaryTypes.String),
	required("short_summary", arrow.BinaryTypes.String),
	required("embedding", listOf(arrow.PrimitiveTypes.Float32)),
	required("source_file", arrow.BinaryTypes.String),
}, nil)

// QuarantineSchema holds rows that failed Bronze-tier shape validation,
// preserved verbatim for the quarantine inspection report.
var QuarantineSchema = arrow.NewSchema([]arrow.Field{
	required("source_file", arrow.BinaryTypes.String),
	required("row_index", arrow.PrimitiveTypes.Int64),
	required("raw_json", arrow.BinaryTypes.String),
	required("reason", arrow.BinaryTypes.String),
}, nil)
