// Package pipelineconfig loads and validates the pipeline's YAML configuration surface.
package pipelineconfig

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for one pipeline run.
type Config struct {
	Sources         SourcesConfig       `yaml:"sources"`
	SampleSize      int                 `yaml:"sample_size"`
	Embedding       EmbeddingConfig     `yaml:"embedding"`
	Destinations    DestinationsConfig  `yaml:"destinations"`
	Similarity      SimilarityConfig    `yaml:"similarity"`
	Denormalization DenormalizeConfig   `yaml:"denormalization"`
	TopicClustering TopicClusterConfig  `yaml:"topic_clustering"`
	Logging         LoggingConfig       `yaml:"logging"`
}

// SourcesConfig locates the four source inputs.
type SourcesConfig struct {
	PropertiesPath    string `yaml:"properties_path"`
	NeighborhoodsPath string `yaml:"neighborhoods_path"`
	WikipediaDBPath   string `yaml:"wikipedia_db_path"`
	LocationsPath     string `yaml:"locations_path"`
}

// EmbeddingConfig configures the embedding subsystem.
type EmbeddingConfig struct {
	Provider     string        `yaml:"provider"` // voyage, openai, local, mock
	Dimension    int           `yaml:"dimension"`
	BatchSize    int           `yaml:"batch_size"`
	MaxRetries   int           `yaml:"max_retries"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	APIKey       string        `yaml:"api_key"`
	Model        string        `yaml:"model"`
}

// DestinationsConfig selects and configures the enabled write destinations.
type DestinationsConfig struct {
	Enabled []string       `yaml:"enabled"` // subset of {file, search, graph}
	Search  SearchConfig   `yaml:"search"`
	Graph   GraphConfig    `yaml:"graph"`
	File    FileConfig     `yaml:"file"`
}

// SearchConfig configures the search-store destination.
type SearchConfig struct {
	Engine    string        `yaml:"engine"` // elasticsearch, opensearch
	Host      string        `yaml:"host"`
	Port      int           `yaml:"port"`
	Username  string        `yaml:"username"`
	Password  string        `yaml:"password"`
	BatchSize int           `yaml:"batch_size"`
	Timeout   time.Duration `yaml:"timeout"`
}

// GraphConfig configures the graph-store destination.
type GraphConfig struct {
	URI      string        `yaml:"uri"`
	User     string        `yaml:"user"`
	Password string        `yaml:"password"`
	Database string        `yaml:"database"`
	Timeout  time.Duration `yaml:"timeout"`
}

// FileConfig configures the columnar file destination.
type FileConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// SimilarityConfig configures the SIMILAR_TO edge emitter.
type SimilarityConfig struct {
	TopK      int     `yaml:"top_k"`
	Threshold float64 `yaml:"threshold"`
	Scope     string  `yaml:"scope"` // same_neighborhood, same_city
}

// DenormalizeConfig configures the denormalization builder.
type DenormalizeConfig struct {
	MaxRelatedWikipedia int `yaml:"max_related_wikipedia"`
	ScrollBatchSize     int `yaml:"scroll_batch_size"`
}

// TopicClusterConfig configures the optional TopicCluster extractor.
// Left zero-valued, the extractor emits an empty topic-node table (open
// question #3 in spec.md §9).
type TopicClusterConfig struct {
	Enabled bool              `yaml:"enabled"`
	Tags    map[string]string `yaml:"tags"` // coarse topic tag -> cluster label
}

// LoggingConfig configures the console logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads and parses a YAML configuration file, applying defaults for
// anything left unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = "mock"
	}
	if cfg.Embedding.Dimension == 0 {
		cfg.Embedding.Dimension = 256
	}
	if cfg.Embedding.BatchSize == 0 {
		cfg.Embedding.BatchSize = 32
	}
	if cfg.Embedding.MaxRetries == 0 {
		cfg.Embedding.MaxRetries = 3
	}
	if cfg.Embedding.RequestTimeout == 0 {
		cfg.Embedding.RequestTimeout = 30 * time.Second
	}

	if len(cfg.Destinations.Enabled) == 0 {
		cfg.Destinations.Enabled = []string{"file", "search", "graph"}
	}
	if cfg.Destinations.Search.Engine == "" {
		cfg.Destinations.Search.Engine = "elasticsearch"
	}
	if cfg.Destinations.Search.BatchSize == 0 {
		cfg.Destinations.Search.BatchSize = 500
	}
	if cfg.Destinations.Search.Timeout == 0 {
		cfg.Destinations.Search.Timeout = 30 * time.Second
	}
	if cfg.Destinations.Graph.Database == "" {
		cfg.Destinations.Graph.Database = "neo4j"
	}
	if cfg.Destinations.Graph.Timeout == 0 {
		cfg.Destinations.Graph.Timeout = 30 * time.Second
	}
	if cfg.Destinations.File.OutputDir == "" {
		cfg.Destinations.File.OutputDir = "./output"
	}

	if cfg.Similarity.TopK == 0 {
		cfg.Similarity.TopK = 10
	}
	if cfg.Similarity.Threshold == 0 {
		cfg.Similarity.Threshold = 0.85
	}
	if cfg.Similarity.Scope == "" {
		cfg.Similarity.Scope = "same_neighborhood"
	}

	if cfg.Denormalization.MaxRelatedWikipedia == 0 {
		cfg.Denormalization.MaxRelatedWikipedia = 3
	}
	if cfg.Denormalization.ScrollBatchSize == 0 {
		cfg.Denormalization.ScrollBatchSize = 200
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
}

// DestinationEnabled reports whether the named destination ("file", "search",
// "graph") is enabled for this run.
func (c *Config) DestinationEnabled(name string) bool {
	for _, d := range c.Destinations.Enabled {
		if d == name {
			return true
		}
	}
	return false
}
