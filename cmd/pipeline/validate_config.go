package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/realestate-pipeline/pipeline/pkg/dbcapabilities"
	"github.com/realestate-pipeline/pipeline/pkg/pipelineconfig"
)

func newValidateConfigCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate-config",
		Short: "Load a pipeline configuration file and report defaulting/validation errors without running",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := pipelineconfig.Load(configPath)
			if err != nil {
				return err
			}
			return validateConfig(cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "pipeline.yaml", "path to the pipeline YAML configuration")
	return cmd
}

// validateConfig checks the fields Load's defaulting pass cannot fill in on
// its own: paths that must exist for the run to produce anything, and
// destination-specific settings required once a destination is enabled.
func validateConfig(cfg *pipelineconfig.Config) error {
	if cfg.Sources.PropertiesPath == "" {
		return fmt.Errorf("validate-config: sources.properties_path is required")
	}
	if cfg.Sources.NeighborhoodsPath == "" {
		return fmt.Errorf("validate-config: sources.neighborhoods_path is required")
	}
	if cfg.Sources.WikipediaDBPath == "" {
		return fmt.Errorf("validate-config: sources.wikipedia_db_path is required")
	}

	switch cfg.Embedding.Provider {
	case "mock", "local", "": // no credentials required
	case "voyage", "openai":
		if cfg.Embedding.APIKey == "" {
			return fmt.Errorf("validate-config: embedding.api_key is required for provider %q", cfg.Embedding.Provider)
		}
	default:
		return fmt.Errorf("validate-config: unknown embedding provider %q", cfg.Embedding.Provider)
	}

	for _, name := range cfg.Destinations.Enabled {
		switch name {
		case "file":
			if cfg.Destinations.File.OutputDir == "" {
				return fmt.Errorf("validate-config: destinations.file.output_dir is required")
			}
		case "search":
			if cfg.Destinations.Search.Host == "" {
				return fmt.Errorf("validate-config: destinations.search.host is required")
			}
			cap, ok := dbcapabilities.Get(dbcapabilities.DestinationID(cfg.Destinations.Search.Engine))
			if !ok || !cap.SupportsParadigm(dbcapabilities.ParadigmSearchIndex) {
				return fmt.Errorf("validate-config: destinations.search.engine must be elasticsearch or opensearch, got %q", cfg.Destinations.Search.Engine)
			}
		case "graph":
			if cfg.Destinations.Graph.URI == "" {
				return fmt.Errorf("validate-config: destinations.graph.uri is required")
			}
		default:
			return fmt.Errorf("validate-config: unknown destination %q", name)
		}
	}

	if cfg.Similarity.Scope != "same_neighborhood" && cfg.Similarity.Scope != "same_city" {
		return fmt.Errorf("validate-config: similarity.scope must be same_neighborhood or same_city, got %q", cfg.Similarity.Scope)
	}

	fmt.Println("configuration is valid")
	return nil
}
