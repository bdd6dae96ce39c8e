package main

import (
	"os"

	"github.com/matsen/refcheck/internal/tei"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract <refs.tei.xml>",
	Short: "Extract structured references from a GROBID TEI file",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

// ExtractResult is the response for the extract command.
type ExtractResult struct {
	Count   int         `json:"count"`
	Entries []tei.Entry `json:"entries"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	entries, err := parseTEIFile(args[0])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	if humanOutput {
		outputHuman("%d references\n", len(entries))
		for _, e := range entries {
			outputHuman("%s: %s\n", e.ID, truncateString(e.Title, listTitleMaxLen))
			for _, a := range e.Authors {
				outputHuman("  %s\n", a.FullName())
			}
		}
		return nil
	}
	return outputJSON(ExtractResult{Count: len(entries), Entries: entries})
}

func parseTEIFile(path string) ([]tei.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tei.ParseReferences(f)
}
