package main

import (
	"github.com/matsen/refcheck/internal/pdf"
	"github.com/spf13/cobra"
)

var doiCmd = &cobra.Command{
	Use:   "doi <paper.pdf>",
	Short: "Extract the DOI from a PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runDOI,
}

func init() {
	rootCmd.AddCommand(doiCmd)
}

// DOIResult is the response for the doi command.
type DOIResult struct {
	Path string `json:"path"`
	DOI  string `json:"doi,omitempty"`
}

func runDOI(cmd *cobra.Command, args []string) error {
	doi, err := pdf.ExtractDOI(args[0])
	if err != nil {
		exitWithError(ExitDataError, "reading %s: %v", args[0], err)
	}
	if doi == "" {
		exitWithError(ExitDataError, "no DOI found in %s", args[0])
	}

	if humanOutput {
		outputHuman("%s\n", doi)
		return nil
	}
	return outputJSON(DOIResult{Path: args[0], DOI: doi})
}
