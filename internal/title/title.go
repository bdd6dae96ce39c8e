// Package title decides whether a candidate bibliographic record's title
// is close enough to a cited title to justify author comparison.
package title

import (
	"strings"

	"github.com/matsen/refcheck/internal/name"
)

// DefaultThreshold is the minimum similarity for accepting a candidate.
const DefaultThreshold = 0.90

// Similarity returns a score in [0,1] for two titles: the normalized
// Levenshtein ratio over case-folded, whitespace-collapsed,
// accent-folded strings. It is symmetric and returns 1.0 for strings
// that are identical after normalization.
func Similarity(a, b string) float64 {
	na := normalize(a)
	nb := normalize(b)

	if na == nb {
		return 1.0
	}
	if na == "" || nb == "" {
		return 0.0
	}

	ra := []rune(na)
	rb := []rune(nb)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}

	dist := levenshtein(ra, rb)
	return 1.0 - float64(dist)/float64(longest)
}

// Accept reports whether the candidate title passes the gate.
func Accept(referenceTitle, candidateTitle string, threshold float64) bool {
	return Similarity(referenceTitle, candidateTitle) >= threshold
}

// normalize lowercases, folds diacritics, strips trailing punctuation,
// and collapses runs of whitespace to single spaces.
func normalize(s string) string {
	s = strings.ToLower(name.Fold(s))
	s = strings.TrimRight(s, ".,;: ")
	return strings.Join(strings.Fields(s), " ")
}

// levenshtein computes edit distance with a two-row matrix.
func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
