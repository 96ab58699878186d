// Command pipeline runs the real estate medallion pipeline: Bronze ingest,
// Silver normalization, entity extraction, Gold enrichment, relationship
// building, multi-destination writes, and search-store denormalization.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "pipeline",
		Short:   "Run the real estate medallion data pipeline",
		Version: version,
	}

	root.AddCommand(newRunCommand())
	root.AddCommand(newValidateConfigCommand())
	root.AddCommand(newCheckCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
