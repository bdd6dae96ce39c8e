package classify

import (
	"testing"

	"github.com/matsen/refcheck/internal/reference"
)

func TestListsAllMatch(t *testing.T) {
	kind, judgements := Lists(
		[]string{"Ashish Vaswani", "Noam Shazeer", "Niki Parmar"},
		[]string{"Ashish Vaswani", "Noam Shazeer", "Niki Parmar"},
	)

	if kind != reference.KindMatch {
		t.Errorf("overall kind = %v, want %v", kind, reference.KindMatch)
	}
	if len(judgements) != 3 {
		t.Fatalf("got %d judgements, want 3", len(judgements))
	}
	for i, j := range judgements {
		if j.Kind != reference.KindMatch {
			t.Errorf("judgement %d kind = %v, want %v", i, j.Kind, reference.KindMatch)
		}
		if j.Position != i {
			t.Errorf("judgement %d position = %d", i, j.Position)
		}
	}
}

func TestListsAccentsStillMatchOverall(t *testing.T) {
	kind, judgements := Lists(
		[]string{"Lukasz Kaiser"},
		[]string{"Łukasz Kaiser"},
	)

	if kind != reference.KindMatch {
		t.Errorf("overall kind = %v, want %v", kind, reference.KindMatch)
	}
	if len(judgements) != 1 || judgements[0].Kind != reference.KindAccentsMissing {
		t.Errorf("judgements = %+v, want single AccentsMissing", judgements)
	}
}

func TestListsAccentedInitial(t *testing.T) {
	// From the Attention Is All You Need author list.
	kind, _ := Lists([]string{"Ł Kaiser"}, []string{"Lukasz Kaiser"})
	if kind != reference.KindMatch {
		t.Errorf("overall kind = %v, want %v", kind, reference.KindMatch)
	}
}

func TestListsParsingErrorShortCircuits(t *testing.T) {
	kind, judgements := Lists(
		[]string{"Kenton", "Lee Kristina", "Toutanova"},
		[]string{"Kenton Lee", "Kristina Toutanova"},
	)

	if kind != reference.KindParsingError {
		t.Fatalf("overall kind = %v, want %v", kind, reference.KindParsingError)
	}
	if len(judgements) != 1 {
		t.Fatalf("got %d judgements, want a single synthetic one", len(judgements))
	}
	if judgements[0].Kind != reference.KindParsingError {
		t.Errorf("synthetic judgement kind = %v", judgements[0].Kind)
	}

	// The short-circuit must suppress per-position noise.
	for _, j := range judgements {
		switch j.Kind {
		case reference.KindFirstNameMismatch, reference.KindLastNameMismatch, reference.KindAuthorNotFound:
			t.Errorf("per-position judgement %v leaked past the parsing-error short-circuit", j.Kind)
		}
	}
}

func TestListsTruncatedCitation(t *testing.T) {
	// Trailing canonical co-authors never produce judgements.
	kind, judgements := Lists(
		[]string{"Ashish Vaswani", "Noam Shazeer"},
		[]string{"Ashish Vaswani", "Noam Shazeer", "Niki Parmar", "Jakob Uszkoreit"},
	)

	if kind != reference.KindMatch {
		t.Errorf("overall kind = %v, want %v", kind, reference.KindMatch)
	}
	if len(judgements) != 2 {
		t.Errorf("got %d judgements, want 2 (min of list lengths)", len(judgements))
	}
}

func TestListsExtraReferenceAuthors(t *testing.T) {
	kind, judgements := Lists(
		[]string{"Ashish Vaswani", "Noam Shazeer", "Niki Parmar"},
		[]string{"Ashish Vaswani"},
	)

	if kind != reference.KindMatch {
		t.Errorf("overall kind = %v, want %v", kind, reference.KindMatch)
	}
	if len(judgements) != 1 {
		t.Errorf("got %d judgements, want 1", len(judgements))
	}
}

func TestListsAuthorOrderWrong(t *testing.T) {
	kind, judgements := Lists(
		[]string{"Alice Smith", "Bob Jones"},
		[]string{"Bob Jones", "Alice Smith"},
	)

	if kind != reference.KindAuthorOrderWrong {
		t.Errorf("overall kind = %v, want %v", kind, reference.KindAuthorOrderWrong)
	}
	for i, j := range judgements {
		if j.Kind != reference.KindAuthorOrderWrong {
			t.Errorf("judgement %d kind = %v, want %v", i, j.Kind, reference.KindAuthorOrderWrong)
		}
	}
}

func TestListsOrderWrongWithAccents(t *testing.T) {
	// An accent-grade match at another position still counts as present.
	kind, _ := Lists(
		[]string{"Rene Vidal", "Alice Smith"},
		[]string{"Alice Smith", "René Vidal"},
	)
	if kind != reference.KindAuthorOrderWrong {
		t.Errorf("overall kind = %v, want %v", kind, reference.KindAuthorOrderWrong)
	}
}

func TestListsFirstNonMatchWins(t *testing.T) {
	// Position 1 has a first-name mismatch, position 2 a last-name
	// mismatch: the overall kind is the earliest one.
	kind, _ := Lists(
		[]string{"Alice Smith", "Karl Jones", "Carol White"},
		[]string{"Alice Smith", "Bob Jones", "Carol Green"},
	)
	if kind != reference.KindFirstNameMismatch {
		t.Errorf("overall kind = %v, want %v", kind, reference.KindFirstNameMismatch)
	}
}

func TestListsEmptyAuthorName(t *testing.T) {
	kind, judgements := Lists(
		[]string{""},
		[]string{"Alice Smith"},
	)
	if kind != reference.KindAuthorNotFound {
		t.Errorf("overall kind = %v, want %v", kind, reference.KindAuthorNotFound)
	}
	if len(judgements) != 1 || judgements[0].Kind != reference.KindAuthorNotFound {
		t.Errorf("judgements = %+v", judgements)
	}
}

func TestListsDeterministic(t *testing.T) {
	refs := []string{"Alice Smith", "Bob Jones", "Carol White"}
	canon := []string{"Bob Jones", "Alice Smith", "Carol White"}

	k1, j1 := Lists(refs, canon)
	for i := 0; i < 10; i++ {
		k2, j2 := Lists(refs, canon)
		if k1 != k2 || len(j1) != len(j2) {
			t.Fatalf("Lists is not deterministic: %v vs %v", k1, k2)
		}
		for p := range j1 {
			if j1[p] != j2[p] {
				t.Fatalf("judgement %d differs between runs: %+v vs %+v", p, j1[p], j2[p])
			}
		}
	}
}
