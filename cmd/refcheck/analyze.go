package main

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/matsen/refcheck/internal/reference"
	"github.com/matsen/refcheck/internal/report"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <report.json>",
	Short: "Recompute the analysis summary from a saved report",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		exitWithError(ExitDataError, "reading report: %v", err)
	}

	var rep report.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		exitWithError(ExitDataError, "parsing %s: %v", args[0], err)
	}

	results := append([]reference.ValidationResult{}, rep.Matches...)
	results = append(results, rep.Mismatches...)
	analysis := report.Analyze(results)

	if humanOutput {
		printAnalysisHuman(analysis)
		return nil
	}
	return outputJSON(analysis)
}

func printAnalysisHuman(a report.Analysis) {
	outputHuman("References: %d (%d matched, %d mismatched)\n",
		a.TotalReferences, a.MatchCount, a.MismatchCount)
	outputHuman("No DBLP match: %d, lookup failures: %d\n",
		a.NoMatchCount, a.LookupFailureCount)

	kinds := make([]reference.Kind, 0, len(a.Counts))
	for k := range a.Counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, k := range kinds {
		outputHuman("  %s: %d\n", k, a.Counts[k])
	}

	if s := a.TitleSimilarity; s != nil {
		outputHuman("Title similarity: min %.3f, median %.3f, max %.3f (n=%d)\n",
			s.Min, s.Median, s.Max, s.Count)
	}
	if l := a.AuthorListLengths; l != nil {
		outputHuman("Author list length (canonical - cited): mean %+.2f, %d longer, %d shorter, %d equal\n",
			l.MeanDiff, l.Longer, l.Shorter, l.Equal)
	}
	for _, b := range a.CommonMistakes {
		outputHuman("%s (%d): %s\n", b.Type, b.Count, b.Description)
		for _, ex := range b.Examples {
			outputHuman("  - %s\n", ex)
		}
	}
}
