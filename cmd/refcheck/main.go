// Package main provides the refcheck CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "refcheck",
	Short: "Validate author attributions in reference lists",
	Long: `refcheck validates the author lists of citations against the DBLP
bibliography, classifying every discrepancy.

Core features:
  - Parse GROBID TEI reference lists or structured JSON
  - Match citations to canonical DBLP records by title similarity
  - Classify author discrepancies (wrong names, dropped accents,
    reordered lists, extraction artifacts)
  - Summarize recurring citation mistakes across a paper

All commands output JSON by default for agent integration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
