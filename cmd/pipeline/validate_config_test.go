package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/realestate-pipeline/pipeline/pkg/pipelineconfig"
)

func validConfig() *pipelineconfig.Config {
	cfg := &pipelineconfig.Config{}
	cfg.Sources.PropertiesPath = "properties.jsonl"
	cfg.Sources.NeighborhoodsPath = "neighborhoods.jsonl"
	cfg.Sources.WikipediaDBPath = "wikipedia.db"
	cfg.Embedding.Provider = "mock"
	cfg.Destinations.Enabled = []string{"file"}
	cfg.Destinations.File.OutputDir = "./output"
	cfg.Similarity.Scope = "same_neighborhood"
	return cfg
}

func TestValidateConfigAcceptsMinimalValidConfig(t *testing.T) {
	assert.NoError(t, validateConfig(validConfig()))
}

func TestValidateConfigRequiresSourcePaths(t *testing.T) {
	cfg := validConfig()
	cfg.Sources.PropertiesPath = ""
	assert.Error(t, validateConfig(cfg))
}

func TestValidateConfigRequiresAPIKeyForVoyage(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.Provider = "voyage"
	assert.Error(t, validateConfig(cfg))

	cfg.Embedding.APIKey = "secret"
	assert.NoError(t, validateConfig(cfg))
}

func TestValidateConfigRequiresSearchHostAndEngine(t *testing.T) {
	cfg := validConfig()
	cfg.Destinations.Enabled = []string{"search"}
	assert.Error(t, validateConfig(cfg))

	cfg.Destinations.Search.Host = "localhost"
	cfg.Destinations.Search.Engine = "mongodb"
	assert.Error(t, validateConfig(cfg))

	cfg.Destinations.Search.Engine = "opensearch"
	assert.NoError(t, validateConfig(cfg))
}

func TestValidateConfigRequiresGraphURI(t *testing.T) {
	cfg := validConfig()
	cfg.Destinations.Enabled = []string{"graph"}
	assert.Error(t, validateConfig(cfg))

	cfg.Destinations.Graph.URI = "neo4j://localhost"
	assert.NoError(t, validateConfig(cfg))
}

func TestValidateConfigRejectsInvalidSimilarityScope(t *testing.T) {
	cfg := validConfig()
	cfg.Similarity.Scope = "same_planet"
	assert.Error(t, validateConfig(cfg))
}
