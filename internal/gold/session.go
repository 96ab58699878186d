package gold

import (
	"github.com/realestate-pipeline/pipeline/internal/engine"
)

// Materialize builds one Arrow record batch per Gold entity table and
// registers it in sess under the table names "gold.property",
// "gold.neighborhood", and "gold.wikipedia_article", giving the run an
// in-process analytical snapshot that downstream tooling (the run summary,
// ad hoc inspection) can query via engine.Session.Table without re-reading
// the source files.
func (d Dataset) Materialize(sess *engine.Session) {
	sess.Register(propertyTable(sess, d.Properties))
	sess.Register(neighborhoodTable(sess, d.Neighborhoods))
	sess.Register(wikipediaTable(sess, d.Articles))
}

func propertyTable(sess *engine.Session, properties []Property) *engine.Table {
	t := engine.NewTable("gold.property", engine.PropertySchema)
	if len(properties) == 0 {
		return t
	}
	b := engine.NewBuilder(sess, engine.PropertySchema)
	defer b.Release()

	for _, p := range properties {
		src := p.Source
		b.AppendString("bronze_id", p.BronzeID)
		b.AppendString("listing_id", src.ListingID)
		b.AppendString("graph_node_id", p.GraphNodeID)
		if src.NeighborhoodID == "" {
			b.AppendStringNull("neighborhood_id")
		} else {
			b.AppendString("neighborhood_id", src.NeighborhoodID)
		}
		b.AppendString("address_street", src.Address.Street)
		b.AppendString("address_city", src.Address.City)
		b.AppendString("address_state", src.Address.State)
		b.AppendString("address_zip", src.Address.Zip)
		if src.Address.Coordinates != nil {
			b.AppendFloat64("latitude", src.Address.Coordinates.Latitude)
			b.AppendFloat64("longitude", src.Address.Coordinates.Longitude)
		} else {
			b.AppendFloat64Null("latitude")
			b.AppendFloat64Null("longitude")
		}
		b.AppendString("city_normalized", p.CityNormalized)
		b.AppendString("state_normalized", p.StateNormalized)
		b.AppendFloat64("price", src.Price)
		b.AppendString("price_range_bucket", string(p.PriceBucket))
		b.AppendInt64("bedrooms", int64(src.Bedrooms))
		b.AppendFloat64("bathrooms", src.Bathrooms)
		b.AppendInt64("square_feet", int64(src.SquareFeet))
		if src.YearBuilt == 0 {
			b.AppendInt64Null("year_built")
		} else {
			b.AppendInt64("year_built", int64(src.YearBuilt))
		}
		b.AppendString("property_type", src.PropertyType)
		b.AppendString("property_type_normalized", p.TypeNormalized)
		b.AppendStringList("features", src.Features)
		b.AppendString("description", src.Description)
		b.AppendFloat32List("embedding", p.Embedding)
		b.AppendString("source_file", p.SourceFile)
	}

	rec := b.NewRecord()
	defer rec.Release()
	t.Append(rec)
	return t
}

func neighborhoodTable(sess *engine.Session, neighborhoods []Neighborhood) *engine.Table {
	t := engine.NewTable("gold.neighborhood", engine.NeighborhoodSchema)
	if len(neighborhoods) == 0 {
		return t
	}
	b := engine.NewBuilder(sess, engine.NeighborhoodSchema)
	defer b.Release()

	for _, n := range neighborhoods {
		src := n.Source
		b.AppendString("bronze_id", n.BronzeID)
		b.AppendString("neighborhood_id", src.NeighborhoodID)
		b.AppendString("graph_node_id", n.GraphNodeID)
		b.AppendString("name", src.Name)
		b.AppendString("city_normalized", n.CityNormalized)
		b.AppendString("state_normalized", n.StateNormalized)
		if src.Population == 0 {
			b.AppendInt64Null("population")
		} else {
			b.AppendInt64("population", int64(src.Population))
		}
		appendOptionalScore(b, "walkability_score", src.WalkabilityScore)
		appendOptionalScore(b, "school_score", src.SchoolScore)
		appendOptionalScore(b, "crime_score", src.CrimeScore)
		b.AppendString("description", src.Description)
		b.AppendStringList("lifestyle_tags", src.LifestyleTags)
		b.AppendFloat32List("embedding", n.Embedding)
		b.AppendString("source_file", n.SourceFile)
	}

	rec := b.NewRecord()
	defer rec.Release()
	t.Append(rec)
	return t
}

func appendOptionalScore(b *engine.Builder, name string, v float64) {
	if v == 0 {
		b.AppendFloat64Null(name)
		return
	}
	b.AppendFloat64(name, v)
}

func wikipediaTable(sess *engine.Session, articles []WikipediaArticle) *engine.Table {
	t := engine.NewTable("gold.wikipedia_article", engine.WikipediaArticleSchema)
	if len(articles) == 0 {
		return t
	}
	b := engine.NewBuilder(sess, engine.WikipediaArticleSchema)
	defer b.Release()

	for _, a := range articles {
		src := a.Source
		b.AppendString("bronze_id", a.BronzeID)
		b.AppendInt64("page_id", src.PageID)
		b.AppendString("graph_node_id", a.GraphNodeID)
		b.AppendString("title", src.Title)
		b.AppendString("long_summary", src.LongSummary)
		b.AppendString("short_summary", src.ShortSummary)
		b.AppendFloat32List("embedding", a.Embedding)
		b.AppendString("source_file", a.SourceFile)
	}

	rec := b.NewRecord()
	defer rec.Release()
	t.Append(rec)
	return t
}
