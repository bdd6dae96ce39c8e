// Package validate orchestrates citation validation: candidate lookup,
// title gating, author-list comparison, and batch execution with
// retry and bounded parallelism.
package validate

import (
	"context"
	"strings"

	"github.com/matsen/refcheck/internal/classify"
	"github.com/matsen/refcheck/internal/reference"
	"github.com/matsen/refcheck/internal/title"
)

// TitleLookup is the capability consumed from the bibliographic lookup
// collaborator. Search returns candidate records in service order; an
// empty result is not an error. Errors satisfying dblp.IsTransient are
// retried by the batch runner.
type TitleLookup interface {
	Search(ctx context.Context, title string) ([]reference.CanonicalEntry, error)
}

// Validator validates a single reference against the lookup service.
type Validator struct {
	lookup    TitleLookup
	threshold float64
}

// NewValidator creates a validator with the given title-similarity
// threshold. A non-positive threshold selects the default.
func NewValidator(lookup TitleLookup, threshold float64) *Validator {
	if threshold <= 0 {
		threshold = title.DefaultThreshold
	}
	return &Validator{lookup: lookup, threshold: threshold}
}

// Validate looks up candidates for the reference title, gates them on
// title similarity, and compares author lists against the best
// accepted candidate.
//
// Data problems never produce an error: a missing title short-circuits
// to NoCanonicalMatch without a lookup. Lookup errors are returned so
// the caller can retry.
func (v *Validator) Validate(ctx context.Context, ref reference.Reference) (reference.ValidationResult, error) {
	res := reference.ValidationResult{
		Reference: ref,
		Kind:      reference.KindNoCanonicalMatch,
	}

	if strings.TrimSpace(ref.Title) == "" {
		return res, nil
	}

	candidates, err := v.lookup.Search(ctx, ref.Title)
	if err != nil {
		return reference.ValidationResult{}, err
	}

	// Select the accepted candidate with the highest similarity.
	// Ties break to the earliest candidate in service order.
	best := -1
	bestSim := 0.0
	for i, cand := range candidates {
		sim := title.Similarity(ref.Title, cand.Title)
		if sim >= v.threshold && sim > bestSim {
			best = i
			bestSim = sim
		}
	}

	if best < 0 {
		return res, nil
	}

	selected := candidates[best]
	res.Canonical = &selected
	res.TitleSimilarity = bestSim
	res.Kind, res.PerAuthor = classify.Lists(ref.Authors, selected.Authors)
	return res, nil
}
