package main

import (
	"fmt"

	"github.com/matsen/refcheck/internal/export"
	"github.com/spf13/cobra"
)

var bibtexCmd = &cobra.Command{
	Use:   "bibtex <refs.tei.xml>",
	Short: "Render a GROBID TEI reference list as BibTeX",
	Args:  cobra.ExactArgs(1),
	RunE:  runBibtex,
}

func init() {
	rootCmd.AddCommand(bibtexCmd)
}

func runBibtex(cmd *cobra.Command, args []string) error {
	entries, err := parseTEIFile(args[0])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	// BibTeX is the output format; --human changes nothing here.
	fmt.Print(export.ToBibTeXList(entries))
	return nil
}
