package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/realestate-pipeline/pipeline/internal/bronze"
	"github.com/realestate-pipeline/pipeline/internal/denorm"
	"github.com/realestate-pipeline/pipeline/internal/embedding"
	"github.com/realestate-pipeline/pipeline/internal/engine"
	"github.com/realestate-pipeline/pipeline/internal/entities"
	"github.com/realestate-pipeline/pipeline/internal/gold"
	"github.com/realestate-pipeline/pipeline/internal/relationships"
	"github.com/realestate-pipeline/pipeline/internal/silver"
	"github.com/realestate-pipeline/pipeline/internal/source"
	"github.com/realestate-pipeline/pipeline/internal/stats"
	"github.com/realestate-pipeline/pipeline/internal/writer"
	filewriter "github.com/realestate-pipeline/pipeline/internal/writer/file"
	neowriter "github.com/realestate-pipeline/pipeline/internal/writer/graph"
	"github.com/realestate-pipeline/pipeline/internal/writer/search"
	"github.com/realestate-pipeline/pipeline/pkg/logger"
	"github.com/realestate-pipeline/pipeline/pkg/model"
	"github.com/realestate-pipeline/pipeline/pkg/pipelineconfig"
	"github.com/realestate-pipeline/pipeline/pkg/pipelineerr"
)

func newRunCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one full pipeline pass: ingest, transform, enrich, write, denormalize",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := pipelineconfig.Load(configPath)
			if err != nil {
				return err
			}
			return runPipeline(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "pipeline.yaml", "path to the pipeline YAML configuration")
	return cmd
}

func runPipeline(ctx context.Context, cfg *pipelineconfig.Config) error {
	log := logger.New("pipeline", version)
	report := stats.New()
	defer func() {
		report.Stop()
		log.Info(report.String())
	}()

	sess := engine.NewSession()
	defer sess.Release()

	properties, neighborhoods, articles, locations, quarantine, err := ingest(cfg, report)
	if err != nil {
		report.RecordFatal(err)
		return err
	}
	quarantine.Materialize(sess)

	silverProperties, silverNeighborhoods, silverArticles := transform(properties, neighborhoods, articles, report, log)

	extracted := entities.Extract(silverProperties, locations)
	topicClusters := entities.ExtractTopicClusters(silverArticles, cfg.TopicClustering)
	report.EntityCounts["feature"] = len(extracted.Features)
	report.EntityCounts["property_type"] = len(extracted.PropertyTypes)
	report.EntityCounts["price_range"] = len(extracted.PriceRanges)
	report.EntityCounts["city"] = len(extracted.Cities)
	report.EntityCounts["county"] = len(extracted.Counties)
	report.EntityCounts["state"] = len(extracted.States)
	report.EntityCounts["zip_code"] = len(extracted.ZipCodes)
	report.EntityCounts["topic_cluster"] = len(topicClusters)

	provider, err := embedding.NewProvider(cfg.Embedding)
	if err != nil {
		fatal := pipelineerr.Configuration("embedding_provider", err)
		report.RecordFatal(fatal)
		return fatal
	}
	batcher := embedding.NewBatcher(provider, cfg.Embedding)

	ds, err := gold.Compose(ctx, batcher, silverProperties, silverNeighborhoods, silverArticles)
	if err != nil {
		report.RecordFatal(err)
		return err
	}
	report.EmbeddingBatches = batcher.BatchesRun
	report.EmbeddingsEmitted = batcher.Emitted
	report.EmbeddingsCached = batcher.Cached
	ds.Materialize(sess)

	edges := buildRelationships(silverProperties, silverNeighborhoods, silverArticles, ds, locations, cfg.Similarity)
	for kind, group := range edges.ByType() {
		report.EdgeCounts[string(kind)] = len(group)
	}

	dataset := assembleWriterDataset(extracted, topicClusters, ds, edges)
	for _, t := range dataset.Nodes {
		report.DestinationNodeCounts[string(t.Kind)] = len(t.Records)
	}
	for _, t := range dataset.Edges {
		report.DestinationEdgeCounts[string(t.Kind)] = len(t.Edges)
	}

	destinations, searchClient, err := buildDestinations(cfg)
	if err != nil {
		report.RecordFatal(err)
		return err
	}
	defer func() {
		for _, d := range destinations {
			_ = d.Close()
		}
	}()

	orchestrator := writer.NewOrchestrator(destinations...)
	if err := orchestrator.Run(ctx, dataset); err != nil {
		report.RecordFatal(err)
		return err
	}

	if searchClient != nil {
		builder := denorm.New(searchClient, denorm.Config{
			MaxRelatedWikipedia: cfg.Denormalization.MaxRelatedWikipedia,
			ScrollBatchSize:     cfg.Denormalization.ScrollBatchSize,
		})
		if err := builder.Run(ctx); err != nil {
			fatal := pipelineerr.Destination("denormalize", err)
			report.RecordFatal(fatal)
			return fatal
		}
		report.DenormalizedDocs = builder.DocumentsWritten
	}

	return nil
}

// ingest runs the Bronze tier over all four source inputs.
func ingest(cfg *pipelineconfig.Config, report *stats.Report) ([]bronze.Row, []bronze.Row, []bronze.WikipediaRow, map[string]source.LocationEntry, *bronze.Quarantine, error) {
	q := &bronze.Quarantine{}

	properties, err := bronze.LoadJSONRows(cfg.Sources.PropertiesPath, []string{"listing_id", "address", "price"}, q)
	if err != nil {
		return nil, nil, nil, nil, nil, pipelineerr.Source("ingest_properties", err)
	}
	report.BronzeRows["property"] = len(properties)

	neighborhoods, err := bronze.LoadJSONRows(cfg.Sources.NeighborhoodsPath, []string{"neighborhood_id", "name"}, q)
	if err != nil {
		return nil, nil, nil, nil, nil, pipelineerr.Source("ingest_neighborhoods", err)
	}
	report.BronzeRows["neighborhood"] = len(neighborhoods)

	articles, err := bronze.LoadWikipediaRows(cfg.Sources.WikipediaDBPath)
	if err != nil {
		return nil, nil, nil, nil, nil, pipelineerr.Source("ingest_wikipedia", err)
	}
	report.BronzeRows["wikipedia_article"] = len(articles)

	locations, err := source.ReadLocations(cfg.Sources.LocationsPath)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}

	report.QuarantinedRows["total"] = len(q.Rows)
	return properties, neighborhoods, articles, locations, q, nil
}

// transform runs the Silver tier. A row that fails to decode against its
// entity's typed shape is dropped with a warning rather than aborting the
// run; Bronze already guaranteed the required keys are present, so this can
// only happen on a type mismatch within an otherwise well-formed value.
func transform(properties, neighborhoods []bronze.Row, articles []bronze.WikipediaRow, report *stats.Report, log *logger.Logger) ([]silver.Property, []silver.Neighborhood, []silver.WikipediaArticle) {
	silverProperties := make([]silver.Property, 0, len(properties))
	for _, row := range properties {
		p, err := silver.TransformProperty(row)
		if err != nil {
			log.Warn("dropping malformed property row %s: %v", row.BronzeID, err)
			continue
		}
		silverProperties = append(silverProperties, p)
	}
	report.SilverRows["property"] = len(silverProperties)

	silverNeighborhoods := make([]silver.Neighborhood, 0, len(neighborhoods))
	for _, row := range neighborhoods {
		n, err := silver.TransformNeighborhood(row)
		if err != nil {
			log.Warn("dropping malformed neighborhood row %s: %v", row.BronzeID, err)
			continue
		}
		silverNeighborhoods = append(silverNeighborhoods, n)
	}
	report.SilverRows["neighborhood"] = len(silverNeighborhoods)

	silverArticles := make([]silver.WikipediaArticle, len(articles))
	for i, row := range articles {
		silverArticles[i] = silver.TransformWikipedia(row)
	}
	report.SilverRows["wikipedia_article"] = len(silverArticles)

	return silverProperties, silverNeighborhoods, silverArticles
}

// buildRelationships derives every typed edge from the Silver and Gold
// tables, merged into one set so write-order grouping happens in one place.
func buildRelationships(properties []silver.Property, neighborhoods []silver.Neighborhood, articles []silver.WikipediaArticle, ds gold.Dataset, locations map[string]source.LocationEntry, simCfg pipelineconfig.SimilarityConfig) *relationships.Set {
	merged := relationships.NewSet()

	for _, e := range relationships.BuildGeographic(properties, neighborhoods, locations).All() {
		merged.Add(e)
	}
	for _, e := range relationships.BuildClassification(properties).All() {
		merged.Add(e)
	}
	for _, e := range relationships.BuildDescribes(neighborhoods, articles).All() {
		merged.Add(e)
	}
	for _, e := range relationships.BuildNear(neighborhoods).All() {
		merged.Add(e)
	}

	embedded := make([]relationships.EmbeddedProperty, len(ds.Properties))
	for i, p := range ds.Properties {
		embedded[i] = relationships.EmbeddedProperty{Property: p.Property, Embedding: p.Embedding}
	}
	for _, e := range relationships.BuildSimilarTo(embedded, simCfg).All() {
		merged.Add(e)
	}

	return merged
}

// assembleWriterDataset projects entity/Gold/edge tables into the
// destination-agnostic writer.Dataset shape, in the fixed write order.
func assembleWriterDataset(extracted entities.Extracted, topicClusters []model.TopicCluster, ds gold.Dataset, edges *relationships.Set) writer.Dataset {
	byType := edges.ByType()

	nodes := []writer.NodeTable{
		{Kind: model.EntityState, Records: stateRecords(extracted.States)},
		{Kind: model.EntityCounty, Records: countyRecords(extracted.Counties)},
		{Kind: model.EntityCity, Records: cityRecords(extracted.Cities)},
		{Kind: model.EntityZipCode, Records: zipRecords(extracted.ZipCodes)},
		{Kind: model.EntityPropertyType, Records: propertyTypeRecords(extracted.PropertyTypes)},
		{Kind: model.EntityFeature, Records: featureRecords(extracted.Features)},
		{Kind: model.EntityPriceRange, Records: priceRangeRecords(extracted.PriceRanges)},
		{Kind: model.EntityNeighborhood, Records: neighborhoodRecords(ds.Neighborhoods)},
		{Kind: model.EntityProperty, Records: propertyRecords(ds.Properties)},
		{Kind: model.EntityWikipedia, Records: wikipediaRecords(ds.Articles)},
		{Kind: model.EntityTopicCluster, Records: topicClusterRecords(topicClusters)},
	}

	edgeTables := make([]writer.EdgeTable, 0, len(model.EdgeWriteOrder))
	for _, kind := range model.EdgeWriteOrder {
		edgeTables = append(edgeTables, writer.EdgeTable{Kind: kind, Edges: byType[kind]})
	}

	return writer.Dataset{Nodes: nodes, Edges: edgeTables}
}

func stateRecords(states []model.State) []writer.NodeRecord {
	out := make([]writer.NodeRecord, len(states))
	for i, s := range states {
		out[i] = writer.NodeRecord{PrimaryID: s.Abbreviation, Fields: map[string]interface{}{"abbreviation": s.Abbreviation}}
	}
	return out
}

func countyRecords(counties []model.County) []writer.NodeRecord {
	out := make([]writer.NodeRecord, len(counties))
	for i, c := range counties {
		out[i] = writer.NodeRecord{
			PrimaryID: model.CountyID(c.Name, c.State),
			Fields:    map[string]interface{}{"name": c.Name, "state": c.State},
		}
	}
	return out
}

func cityRecords(cities []model.City) []writer.NodeRecord {
	out := make([]writer.NodeRecord, len(cities))
	for i, c := range cities {
		out[i] = writer.NodeRecord{
			PrimaryID: model.CityID(c.Name, c.State),
			Fields:    map[string]interface{}{"name": c.Name, "state": c.State},
		}
	}
	return out
}

func zipRecords(zips []model.ZipCode) []writer.NodeRecord {
	out := make([]writer.NodeRecord, len(zips))
	for i, z := range zips {
		out[i] = writer.NodeRecord{PrimaryID: z.Zip, Fields: map[string]interface{}{"zip": z.Zip}}
	}
	return out
}

func propertyTypeRecords(types []model.PropertyType) []writer.NodeRecord {
	out := make([]writer.NodeRecord, len(types))
	for i, t := range types {
		out[i] = writer.NodeRecord{
			PrimaryID: t.Type,
			Fields:    map[string]interface{}{"type": t.Type, "count": t.Count},
		}
	}
	return out
}

func featureRecords(features []model.Feature) []writer.NodeRecord {
	out := make([]writer.NodeRecord, len(features))
	for i, f := range features {
		out[i] = writer.NodeRecord{
			PrimaryID: f.Name,
			Fields:    map[string]interface{}{"name": f.Name, "count": f.Count},
		}
	}
	return out
}

func priceRangeRecords(ranges []model.PriceRange) []writer.NodeRecord {
	out := make([]writer.NodeRecord, len(ranges))
	for i, r := range ranges {
		out[i] = writer.NodeRecord{
			PrimaryID: string(r.Bucket),
			Fields: map[string]interface{}{
				"bucket": string(r.Bucket),
				"min":    r.Min,
				"max":    r.Max,
				"count":  r.Count,
			},
		}
	}
	return out
}

func topicClusterRecords(clusters []model.TopicCluster) []writer.NodeRecord {
	out := make([]writer.NodeRecord, len(clusters))
	for i, c := range clusters {
		out[i] = writer.NodeRecord{
			PrimaryID: c.Label,
			Fields:    map[string]interface{}{"label": c.Label, "pages": c.Pages},
		}
	}
	return out
}

func neighborhoodRecords(neighborhoods []gold.Neighborhood) []writer.NodeRecord {
	out := make([]writer.NodeRecord, len(neighborhoods))
	for i, n := range neighborhoods {
		out[i] = nodeRecordFromSearchDocument(n.Source.NeighborhoodID, n.SearchDocument())
	}
	return out
}

func propertyRecords(properties []gold.Property) []writer.NodeRecord {
	out := make([]writer.NodeRecord, len(properties))
	for i, p := range properties {
		out[i] = nodeRecordFromSearchDocument(p.Source.ListingID, p.SearchDocument())
	}
	return out
}

func wikipediaRecords(articles []gold.WikipediaArticle) []writer.NodeRecord {
	out := make([]writer.NodeRecord, len(articles))
	for i, a := range articles {
		out[i] = nodeRecordFromSearchDocument(strconv.FormatInt(a.Source.PageID, 10), a.SearchDocument())
	}
	return out
}

// nodeRecordFromSearchDocument splits a SearchDocument map into its field
// bag and embedding vector: embedding already has a dedicated slot on
// NodeRecord, so it is not duplicated in Fields.
func nodeRecordFromSearchDocument(primaryID string, doc map[string]interface{}) writer.NodeRecord {
	embedding, _ := doc["embedding"].([]float32)
	delete(doc, "embedding")
	return writer.NodeRecord{PrimaryID: primaryID, Fields: doc, Embedding: embedding}
}

// buildDestinations constructs the enabled write destinations in the fixed
// file -> search -> graph order (spec.md §4.4), along with the raw search
// client the denormalization builder reads back from afterward.
func buildDestinations(cfg *pipelineconfig.Config) ([]writer.Destination, search.Client, error) {
	var destinations []writer.Destination
	var searchClient search.Client

	if cfg.DestinationEnabled("file") {
		destinations = append(destinations, filewriter.New(cfg.Destinations.File.OutputDir))
	}

	if cfg.DestinationEnabled("search") {
		client, err := newSearchClient(cfg.Destinations.Search)
		if err != nil {
			return nil, nil, pipelineerr.Configuration("search_client", err)
		}
		searchClient = client
		destinations = append(destinations, search.New(client, cfg.Destinations.Search.BatchSize))
	}

	if cfg.DestinationEnabled("graph") {
		w, err := neowriter.New(cfg.Destinations.Graph.URI, cfg.Destinations.Graph.User, cfg.Destinations.Graph.Password, cfg.Destinations.Graph.Database)
		if err != nil {
			return nil, nil, pipelineerr.Configuration("graph_client", err)
		}
		destinations = append(destinations, w)
	}

	return destinations, searchClient, nil
}

func newSearchClient(cfg pipelineconfig.SearchConfig) (search.Client, error) {
	addr := fmt.Sprintf("http://%s:%d", cfg.Host, cfg.Port)
	switch cfg.Engine {
	case "opensearch":
		return search.NewOpenSearchClient([]string{addr}, cfg.Username, cfg.Password)
	default:
		return search.NewElasticsearchClient([]string{addr}, cfg.Username, cfg.Password)
	}
}
