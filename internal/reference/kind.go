package reference

// Kind classifies the outcome of comparing a cited author (or a whole
// reference) against the canonical record.
type Kind string

// Classification kinds.
const (
	KindMatch             Kind = "match"
	KindFirstNameMismatch Kind = "first_name_mismatch"
	KindLastNameMismatch  Kind = "last_name_mismatch"
	KindAccentsMissing    Kind = "accents_missing"
	KindAuthorOrderWrong  Kind = "author_order_wrong"
	KindAuthorNotFound    Kind = "author_not_found"
	KindParsingError      Kind = "parsing_error"
	KindNoCanonicalMatch  Kind = "no_canonical_match"
)

// IsMatch reports whether the kind counts as agreement. Accent-only
// differences are agreement for match/mismatch partitioning: they are
// reported per author but never fail a reference.
func (k Kind) IsMatch() bool {
	return k == KindMatch || k == KindAccentsMissing
}

// AuthorJudgement is the classification of a single author position.
type AuthorJudgement struct {
	Position      int    `json:"position"`
	RefName       string `json:"ref_name"`
	CanonicalName string `json:"canonical_name,omitempty"`
	Kind          Kind   `json:"kind"`
}

// ValidationResult is the outcome of validating one reference. It is
// produced once by the validator and immutable thereafter.
//
// Invariants:
//   - Kind == KindParsingError: PerAuthor holds a single synthetic
//     judgement covering the whole reference.
//   - Kind == KindNoCanonicalMatch: Canonical is nil and PerAuthor is
//     empty.
type ValidationResult struct {
	Reference       Reference         `json:"reference"`
	Canonical       *CanonicalEntry   `json:"canonical_entry,omitempty"`
	TitleSimilarity float64           `json:"title_similarity"`
	Kind            Kind              `json:"overall_kind"`
	PerAuthor       []AuthorJudgement `json:"per_author,omitempty"`

	// FailureNote records why the lookup never succeeded (retry budget
	// exhausted). Empty when the lookup worked but returned no
	// acceptable candidate.
	FailureNote string `json:"failure_note,omitempty"`
}
