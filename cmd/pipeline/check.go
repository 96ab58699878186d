package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/realestate-pipeline/pipeline/pkg/health"
	"github.com/realestate-pipeline/pipeline/pkg/pipelineconfig"
)

func newCheckCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run pre-flight health checks against a configuration's sources and destinations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := pipelineconfig.Load(configPath)
			if err != nil {
				return err
			}
			return runHealthChecks(cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "pipeline.yaml", "path to the pipeline YAML configuration")
	return cmd
}

// runHealthChecks probes every input the run depends on without running it:
// source files must be readable, and the file destination's output directory
// must be creatable. Search/graph reachability is left to the run itself
// (spec.md §4.4 fail-fast on the first destination write).
func runHealthChecks(cfg *pipelineconfig.Config) error {
	checker := health.NewChecker()

	checker.RunCheck("sources.properties_path", checkReadable(cfg.Sources.PropertiesPath))
	checker.RunCheck("sources.neighborhoods_path", checkReadable(cfg.Sources.NeighborhoodsPath))
	checker.RunCheck("sources.wikipedia_db_path", checkReadable(cfg.Sources.WikipediaDBPath))
	if cfg.Sources.LocationsPath != "" {
		checker.RunCheck("sources.locations_path", checkReadable(cfg.Sources.LocationsPath))
	}
	if cfg.DestinationEnabled("file") {
		checker.RunCheck("destinations.file.output_dir", checkWritableDir(cfg.Destinations.File.OutputDir))
	}

	for _, c := range checker.GetAllChecks() {
		fmt.Printf("[%s] %s: %s\n", c.Status, c.Name, c.Message)
	}

	if checker.GetOverallStatus() == health.StatusUnhealthy {
		return fmt.Errorf("check: one or more pre-flight checks failed")
	}
	return nil
}

func checkReadable(path string) health.CheckFunc {
	return func() error {
		if path == "" {
			return fmt.Errorf("path not configured")
		}
		_, err := os.Stat(path)
		return err
	}
}

func checkWritableDir(dir string) health.CheckFunc {
	return func() error {
		if dir == "" {
			return fmt.Errorf("output_dir not configured")
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
		return nil
	}
}
