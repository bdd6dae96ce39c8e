package classify

import (
	"strings"

	"github.com/matsen/refcheck/internal/name"
	"github.com/matsen/refcheck/internal/reference"
)

// Lists aligns two author lists position by position and aggregates
// per-author judgements into an overall kind for the reference.
//
// The parsing-shift detector runs first and short-circuits: a flagged
// reference gets a single synthetic judgement and no per-position
// classification. Otherwise only the first min(len(refs), len(canon))
// positions are compared; citations routinely truncate trailing
// co-authors, and judging past the shorter list would manufacture
// spurious AuthorNotFound noise.
func Lists(refAuthors, canonicalAuthors []string) (reference.Kind, []reference.AuthorJudgement) {
	refs := normalizeAll(refAuthors)
	canon := normalizeAll(canonicalAuthors)

	if DetectShift(refs, canon) {
		return reference.KindParsingError, []reference.AuthorJudgement{{
			Position:      0,
			RefName:       strings.Join(refAuthors, "; "),
			CanonicalName: strings.Join(canonicalAuthors, "; "),
			Kind:          reference.KindParsingError,
		}}
	}

	n := len(refs)
	if len(canon) < n {
		n = len(canon)
	}

	judgements := make([]reference.AuthorJudgement, 0, n)
	overall := reference.KindMatch

	for i := 0; i < n; i++ {
		kind := Pair(refs[i], canon[i])
		if !kind.IsMatch() && matchesElsewhere(refs[i], canon, i) {
			kind = reference.KindAuthorOrderWrong
		}

		judgements = append(judgements, reference.AuthorJudgement{
			Position:      i,
			RefName:       refs[i].Raw,
			CanonicalName: canon[i].Raw,
			Kind:          kind,
		})

		// Overall kind is the first non-matching judgement in
		// position order.
		if overall == reference.KindMatch && !kind.IsMatch() {
			overall = kind
		}
	}

	return overall, judgements
}

// matchesElsewhere reports whether the cited author matches (Match or
// AccentsMissing grade) a canonical author at some other position.
func matchesElsewhere(ref name.Normalized, canon []name.Normalized, own int) bool {
	for j := range canon {
		if j == own {
			continue
		}
		if Pair(ref, canon[j]).IsMatch() {
			return true
		}
	}
	return false
}

func normalizeAll(raw []string) []name.Normalized {
	out := make([]name.Normalized, len(raw))
	for i, s := range raw {
		out[i] = name.Normalize(s)
	}
	return out
}
