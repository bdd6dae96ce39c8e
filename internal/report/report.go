// Package report assembles validation results into the output document:
// a match/mismatch partition with per-kind counts and an analysis
// summary of similarity scores, author-list lengths, and common
// mistake patterns.
package report

import (
	"sort"

	"github.com/matsen/refcheck/internal/reference"
)

// Report is the structured output for one batch run.
type Report struct {
	// Source identifies the citing document (DOI or input path).
	Source string `json:"source,omitempty"`

	// Mismatches are ordered by input position, except that
	// ParsingError entries sort last: they signal extraction quality,
	// not citation errors, and must not crowd out actionable
	// mismatches at the top.
	Mismatches []reference.ValidationResult `json:"mismatches"`
	Matches    []reference.ValidationResult `json:"matches"`

	Analysis Analysis `json:"analysis"`
}

// Build partitions results (given in input order) into the report.
func Build(source string, results []reference.ValidationResult) Report {
	r := Report{
		Source:     source,
		Matches:    []reference.ValidationResult{},
		Mismatches: []reference.ValidationResult{},
		Analysis:   Analyze(results),
	}

	for _, res := range results {
		if res.Kind == reference.KindMatch {
			r.Matches = append(r.Matches, res)
		} else {
			r.Mismatches = append(r.Mismatches, res)
		}
	}

	sort.SliceStable(r.Mismatches, func(i, j int) bool {
		return parsingErrorRank(r.Mismatches[i]) < parsingErrorRank(r.Mismatches[j])
	})

	return r
}

func parsingErrorRank(res reference.ValidationResult) int {
	if res.Kind == reference.KindParsingError {
		return 1
	}
	return 0
}
