package validate

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/matsen/refcheck/internal/reference"
)

// fakeLookup is a scripted TitleLookup for tests.
type fakeLookup struct {
	mu      sync.Mutex
	calls   int
	entries map[string][]reference.CanonicalEntry
	errs    map[string][]error // consumed per call, then success
}

func (f *fakeLookup) Search(ctx context.Context, title string) ([]reference.CanonicalEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	if errs := f.errs[title]; len(errs) > 0 {
		err := errs[0]
		f.errs[title] = errs[1:]
		return nil, err
	}
	return f.entries[title], nil
}

func (f *fakeLookup) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func entry(title string, authors ...string) reference.CanonicalEntry {
	return reference.CanonicalEntry{
		Key:     "key/" + title,
		Title:   title,
		Authors: authors,
	}
}

func TestValidateEmptyTitle(t *testing.T) {
	lookup := &fakeLookup{}
	v := NewValidator(lookup, 0.90)

	res, err := v.Validate(context.Background(), reference.Reference{
		Title:   "   ",
		Authors: []string{"Alice Smith"},
	})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if res.Kind != reference.KindNoCanonicalMatch {
		t.Errorf("kind = %v, want %v", res.Kind, reference.KindNoCanonicalMatch)
	}
	if lookup.callCount() != 0 {
		t.Error("Validate performed a lookup for an empty title")
	}
	if res.Canonical != nil || len(res.PerAuthor) != 0 {
		t.Errorf("NoCanonicalMatch result must carry no canonical entry or judgements: %+v", res)
	}
}

func TestValidateNoCandidates(t *testing.T) {
	lookup := &fakeLookup{}
	v := NewValidator(lookup, 0.90)

	res, err := v.Validate(context.Background(), reference.Reference{
		Title:   "A Paper Nobody Indexed",
		Authors: []string{"Alice Smith"},
	})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if res.Kind != reference.KindNoCanonicalMatch {
		t.Errorf("kind = %v, want %v", res.Kind, reference.KindNoCanonicalMatch)
	}
}

func TestValidateBelowThreshold(t *testing.T) {
	refTitle := "Deep Residual Learning for Image Recognition"
	lookup := &fakeLookup{entries: map[string][]reference.CanonicalEntry{
		refTitle: {entry("Completely Unrelated Paper About Fish", "Alice Smith")},
	}}
	v := NewValidator(lookup, 0.90)

	res, err := v.Validate(context.Background(), reference.Reference{
		Title:   refTitle,
		Authors: []string{"Alice Smith"},
	})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if res.Kind != reference.KindNoCanonicalMatch {
		t.Errorf("kind = %v, want %v", res.Kind, reference.KindNoCanonicalMatch)
	}
	if res.Canonical != nil {
		t.Error("rejected candidate must not be attached to the result")
	}
	if len(res.PerAuthor) != 0 {
		t.Error("no author comparison may run when the title gate rejects")
	}
}

func TestValidateSelectsBestCandidate(t *testing.T) {
	refTitle := "Attention Is All You Need"
	lookup := &fakeLookup{entries: map[string][]reference.CanonicalEntry{
		refTitle: {
			entry("Attention Is All You Need, Right?", "Bob Jones"),
			entry("Attention Is All You Need", "Ashish Vaswani"),
		},
	}}
	v := NewValidator(lookup, 0.80)

	res, err := v.Validate(context.Background(), reference.Reference{
		Title:   refTitle,
		Authors: []string{"Ashish Vaswani"},
	})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if res.Canonical == nil || res.Canonical.Title != "Attention Is All You Need" {
		t.Fatalf("selected candidate = %+v, want exact-title entry", res.Canonical)
	}
	if res.TitleSimilarity != 1.0 {
		t.Errorf("similarity = %v, want 1.0", res.TitleSimilarity)
	}
	if res.Kind != reference.KindMatch {
		t.Errorf("kind = %v, want %v", res.Kind, reference.KindMatch)
	}
}

func TestValidateTieBreaksToFirstCandidate(t *testing.T) {
	refTitle := "Attention Is All You Need"
	lookup := &fakeLookup{entries: map[string][]reference.CanonicalEntry{
		refTitle: {
			entry("Attention Is All You Need", "First Candidate"),
			entry("Attention Is All You Need", "Second Candidate"),
		},
	}}
	v := NewValidator(lookup, 0.90)

	res, err := v.Validate(context.Background(), reference.Reference{
		Title:   refTitle,
		Authors: []string{"First Candidate"},
	})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if res.Canonical == nil || res.Canonical.Authors[0] != "First Candidate" {
		t.Errorf("tie must break to the first-seen candidate, got %+v", res.Canonical)
	}
}

func TestValidateDelegatesToComparator(t *testing.T) {
	refTitle := "Attention Is All You Need"
	lookup := &fakeLookup{entries: map[string][]reference.CanonicalEntry{
		refTitle: {entry(refTitle, "Lukasz Kaiser")},
	}}
	v := NewValidator(lookup, 0.90)

	res, err := v.Validate(context.Background(), reference.Reference{
		Title:   refTitle,
		Authors: []string{"Ł Kaiser"},
	})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if res.Kind != reference.KindMatch {
		t.Errorf("kind = %v, want %v (accented initial vs full name)", res.Kind, reference.KindMatch)
	}
}

func TestValidateParsingErrorInvariant(t *testing.T) {
	refTitle := "BERT: Pre-training of Deep Bidirectional Transformers for Language Understanding"
	lookup := &fakeLookup{entries: map[string][]reference.CanonicalEntry{
		refTitle: {entry(refTitle, "Jacob Devlin", "Ming-Wei Chang", "Kenton Lee", "Kristina Toutanova")},
	}}
	v := NewValidator(lookup, 0.90)

	res, err := v.Validate(context.Background(), reference.Reference{
		Title:   refTitle,
		Authors: []string{"Jacob Devlin", "Ming-Wei Chang", "Kenton", "Lee Kristina", "Toutanova"},
	})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if res.Kind != reference.KindParsingError {
		t.Fatalf("kind = %v, want %v", res.Kind, reference.KindParsingError)
	}
	if len(res.PerAuthor) != 1 {
		t.Errorf("parsing error must carry a single synthetic judgement, got %d", len(res.PerAuthor))
	}
}

func TestValidatePropagatesLookupError(t *testing.T) {
	lookup := &fakeLookup{errs: map[string][]error{
		"Some Title": {fmt.Errorf("boom")},
	}}
	v := NewValidator(lookup, 0.90)

	_, err := v.Validate(context.Background(), reference.Reference{Title: "Some Title"})
	if err == nil {
		t.Error("Validate must surface lookup errors to the caller")
	}
}
