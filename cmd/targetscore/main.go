// Command targetscore analyzes photographed shooting targets: it detects
// bullet holes, scores and classifies them, computes group statistics,
// and tracks performance across sessions.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"target-scorer/internal/version"
)

var (
	configPath string
	jsonOut    bool
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	root := &cobra.Command{
		Use:          "targetscore",
		Short:        "Target photo scoring and shot pattern analysis",
		Version:      version.String(),
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: user config dir)")
	root.PersistentFlags().BoolVar(&jsonOut, "json", false, "emit JSON instead of tables")

	root.AddCommand(
		newDetectCmd(),
		newAnalyzeCmd(),
		newHistoryCmd(),
		newPresetsCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
