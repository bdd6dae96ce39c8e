package classify

import (
	"strings"

	"github.com/matsen/refcheck/internal/name"
)

// DetectShift reports whether the two author lists show the signature
// of a token shift from upstream extraction: a family name that appears
// attached to the neighboring author on the other side, as in
// ["Kenton", "Lee Kristina", "Toutanova"] against
// ["Kenton Lee", "Kristina Toutanova"].
//
// It checks each adjacent pair of positions within the overlap of both
// lists, in both directions. This is a deliberately loose heuristic:
// a single adjacency hit flags the whole reference, and false positives
// are acceptable because the flag redirects attention to extraction
// quality rather than asserting a citation error.
func DetectShift(refs, canon []name.Normalized) bool {
	n := len(refs)
	if len(canon) < n {
		n = len(canon)
	}

	for i := 0; i+1 < n; i++ {
		if strings.EqualFold(refs[i].FoldedLast, leadToken(canon[i+1])) {
			return true
		}
		if strings.EqualFold(canon[i].FoldedLast, leadToken(refs[i+1])) {
			return true
		}
	}
	return false
}

// leadToken is the folded leading token of a name: the first given-name
// token when present, else the family name (single-token names).
func leadToken(n name.Normalized) string {
	if len(n.FoldedFirst) > 0 {
		return n.FoldedFirst[0]
	}
	return n.FoldedLast
}
