// Package classify holds the decision logic for comparing cited author
// names against canonical records. It is a set of pure functions over
// value structs: an ordered decision list for single-author pairs, an
// adjacency heuristic for upstream parsing failures, and a positional
// comparator that aggregates per-author judgements for a reference.
package classify

import (
	"strings"
	"unicode"

	"github.com/matsen/refcheck/internal/name"
	"github.com/matsen/refcheck/internal/reference"
)

// Pair compares one cited author against one canonical author.
//
// Rules, first match wins:
//  1. Either name empty → AuthorNotFound.
//  2. Family names unequal (fold-insensitive) → LastNameMismatch.
//  3. Initial vs full name: the initial must equal the leading letter
//     of the other side's given name, else FirstNameMismatch.
//  4. Given names fold-equal: Match when every compared component is
//     identical up to letter case, AccentsMissing when they agree only
//     after diacritic folding.
//  5. Otherwise FirstNameMismatch.
//
// Last-name divergence dominates regardless of given-name agreement,
// and diacritic-only differences are never reported as a mismatch.
func Pair(ref, canon name.Normalized) reference.Kind {
	if ref.Empty() || canon.Empty() {
		return reference.KindAuthorNotFound
	}

	if !name.FoldEqual(ref.Last, canon.Last) {
		return reference.KindLastNameMismatch
	}
	exact := strings.EqualFold(ref.Last, canon.Last)

	switch {
	case ref.InitialFirst && canon.InitialFirst:
		if !runeFoldEqual(ref.InitialLetter(), canon.InitialLetter()) {
			return reference.KindFirstNameMismatch
		}
		exact = exact && runeFoldEqual(leadingRune(ref), leadingRune(canon))

	case ref.InitialFirst != canon.InitialFirst:
		// One side is an initial. Compare it against the leading
		// letter of the other side's first given-name token.
		initial, full := ref, canon
		if canon.InitialFirst {
			initial, full = canon, ref
		}
		if !runeFoldEqual(initial.InitialLetter(), full.InitialLetter()) {
			return reference.KindFirstNameMismatch
		}
		exact = exact && runeFoldEqual(leadingRune(initial), leadingRune(full))

	default:
		if len(ref.FoldedFirst) != len(canon.FoldedFirst) {
			return reference.KindFirstNameMismatch
		}
		for i := range ref.FoldedFirst {
			if !strings.EqualFold(ref.FoldedFirst[i], canon.FoldedFirst[i]) {
				return reference.KindFirstNameMismatch
			}
			if !strings.EqualFold(ref.First[i], canon.First[i]) {
				exact = false
			}
		}
	}

	if exact {
		return reference.KindMatch
	}
	return reference.KindAccentsMissing
}

// runeFoldEqual compares two runes case-insensitively. A zero rune
// (no given name on that side) never matches.
func runeFoldEqual(a, b rune) bool {
	if a == 0 || b == 0 {
		return false
	}
	return unicode.ToLower(a) == unicode.ToLower(b)
}

// leadingRune returns the raw (unfolded) leading rune of the given-name
// component, for the accent-fidelity check.
func leadingRune(n name.Normalized) rune {
	if len(n.First) == 0 {
		return 0
	}
	for _, r := range n.First[0] {
		return r
	}
	return 0
}
