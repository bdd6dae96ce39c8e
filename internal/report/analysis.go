package report

import (
	"sort"

	"github.com/matsen/refcheck/internal/reference"
)

// maxExamples caps how many illustrative entries a mistake bucket keeps.
const maxExamples = 5

// Analysis summarizes a batch run for operator diagnosis.
type Analysis struct {
	TotalReferences int `json:"total_references"`
	MatchCount      int `json:"match_count"`
	MismatchCount   int `json:"mismatch_count"`

	// NoMatchCount counts references whose lookup succeeded but
	// produced no acceptable candidate; LookupFailureCount counts
	// references whose lookup never succeeded (retries exhausted).
	NoMatchCount       int `json:"no_match_count"`
	LookupFailureCount int `json:"lookup_failure_count"`

	// Counts breaks references down by overall kind; AuthorKindCounts
	// breaks individual author judgements down by kind (an accent-only
	// judgement shows up here even when its reference matches overall).
	Counts           map[reference.Kind]int `json:"counts"`
	AuthorKindCounts map[reference.Kind]int `json:"author_kind_counts"`

	TitleSimilarity   *SimilarityStats `json:"title_similarity,omitempty"`
	AuthorListLengths *LengthStats     `json:"author_list_lengths,omitempty"`
	CommonMistakes    []MistakeBucket  `json:"common_mistakes,omitempty"`
}

// SimilarityStats describes the distribution of accepted title
// similarities.
type SimilarityStats struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P25    float64 `json:"p25"`
	P75    float64 `json:"p75"`
}

// LengthStats describes how canonical author-list lengths differ from
// cited ones (canonical minus cited).
type LengthStats struct {
	Count    int     `json:"count"`
	MeanDiff float64 `json:"mean_diff"`
	MinDiff  int     `json:"min_diff"`
	MaxDiff  int     `json:"max_diff"`
	Longer   int     `json:"canonical_longer_count"`
	Shorter  int     `json:"canonical_shorter_count"`
	Equal    int     `json:"equal_length_count"`
}

// MistakeBucket groups recurring mismatch patterns with a few examples.
type MistakeBucket struct {
	Type        string   `json:"type"`
	Count       int      `json:"count"`
	Description string   `json:"description"`
	Examples    []string `json:"examples,omitempty"`
}

// Analyze computes the run summary from validation results.
func Analyze(results []reference.ValidationResult) Analysis {
	a := Analysis{
		TotalReferences:  len(results),
		Counts:           make(map[reference.Kind]int),
		AuthorKindCounts: make(map[reference.Kind]int),
	}

	for _, res := range results {
		a.Counts[res.Kind]++
		if res.Kind == reference.KindMatch {
			a.MatchCount++
		} else {
			a.MismatchCount++
		}
		if res.Kind == reference.KindNoCanonicalMatch {
			if res.FailureNote != "" {
				a.LookupFailureCount++
			} else {
				a.NoMatchCount++
			}
		}
		for _, j := range res.PerAuthor {
			a.AuthorKindCounts[j.Kind]++
		}
	}

	a.TitleSimilarity = similarityStats(results)
	a.AuthorListLengths = lengthStats(results)
	a.CommonMistakes = mistakeBuckets(results)
	return a
}

func similarityStats(results []reference.ValidationResult) *SimilarityStats {
	var sims []float64
	for _, res := range results {
		if res.Canonical != nil {
			sims = append(sims, res.TitleSimilarity)
		}
	}
	if len(sims) == 0 {
		return nil
	}

	sort.Float64s(sims)
	n := len(sims)
	sum := 0.0
	for _, s := range sims {
		sum += s
	}

	return &SimilarityStats{
		Count:  n,
		Min:    sims[0],
		Max:    sims[n-1],
		Mean:   sum / float64(n),
		Median: sims[n/2],
		P25:    sims[n/4],
		P75:    sims[3*n/4],
	}
}

func lengthStats(results []reference.ValidationResult) *LengthStats {
	var diffs []int
	for _, res := range results {
		if res.Canonical == nil || len(res.Reference.Authors) == 0 || len(res.Canonical.Authors) == 0 {
			continue
		}
		diffs = append(diffs, len(res.Canonical.Authors)-len(res.Reference.Authors))
	}
	if len(diffs) == 0 {
		return nil
	}

	stats := &LengthStats{
		Count:   len(diffs),
		MinDiff: diffs[0],
		MaxDiff: diffs[0],
	}
	sum := 0
	for _, d := range diffs {
		sum += d
		if d < stats.MinDiff {
			stats.MinDiff = d
		}
		if d > stats.MaxDiff {
			stats.MaxDiff = d
		}
		switch {
		case d > 0:
			stats.Longer++
		case d < 0:
			stats.Shorter++
		default:
			stats.Equal++
		}
	}
	stats.MeanDiff = float64(sum) / float64(len(diffs))
	return stats
}

func mistakeBuckets(results []reference.ValidationResult) []MistakeBucket {
	var buckets []MistakeBucket

	orderIssues := collect(results, func(res reference.ValidationResult) bool {
		return res.Kind == reference.KindAuthorOrderWrong
	})
	if orderIssues.Count > 0 {
		orderIssues.Type = "author_order"
		orderIssues.Description = "Authors match the canonical record but appear in a different order"
		buckets = append(buckets, orderIssues)
	}

	accentIssues := collect(results, func(res reference.ValidationResult) bool {
		for _, j := range res.PerAuthor {
			if j.Kind == reference.KindAccentsMissing {
				return true
			}
		}
		return false
	})
	if accentIssues.Count > 0 {
		accentIssues.Type = "accents"
		accentIssues.Description = "Names differ only by accents or diacritics"
		buckets = append(buckets, accentIssues)
	}

	nameIssues := collect(results, func(res reference.ValidationResult) bool {
		return res.Kind == reference.KindFirstNameMismatch || res.Kind == reference.KindLastNameMismatch
	})
	if nameIssues.Count > 0 {
		nameIssues.Type = "name_mismatch"
		nameIssues.Description = "Names differ in their first or last name components"
		buckets = append(buckets, nameIssues)
	}

	parsingIssues := collect(results, func(res reference.ValidationResult) bool {
		return res.Kind == reference.KindParsingError
	})
	if parsingIssues.Count > 0 {
		parsingIssues.Type = "parsing_error"
		parsingIssues.Description = "Name tokens were attached to the wrong author during extraction"
		buckets = append(buckets, parsingIssues)
	}

	return buckets
}

func collect(results []reference.ValidationResult, pred func(reference.ValidationResult) bool) MistakeBucket {
	var b MistakeBucket
	for _, res := range results {
		if !pred(res) {
			continue
		}
		b.Count++
		if len(b.Examples) < maxExamples {
			b.Examples = append(b.Examples, truncate(res.Reference.Title, 100))
		}
	}
	return b
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
