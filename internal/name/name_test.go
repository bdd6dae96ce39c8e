package name

import (
	"reflect"
	"testing"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain ascii", "Kaiser", "Kaiser"},
		{"combining acute", "Hyvärinen", "Hyvarinen"},
		{"polish l", "Łukasz", "Lukasz"},
		{"lowercase polish l", "łukasz", "lukasz"},
		{"scandinavian o", "Jørgensen", "Jorgensen"},
		{"eszett", "Groß", "Gross"},
		{"cedilla", "François", "Francois"},
		{"multiple accents", "Çağlar Gülçehre", "Caglar Gulcehre"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fold(tt.input); got != tt.want {
				t.Errorf("Fold(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFoldEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"identical", "Kaiser", "Kaiser", true},
		{"case only", "kaiser", "Kaiser", true},
		{"accents only", "Hyvärinen", "Hyvarinen", true},
		{"polish l vs plain", "Łukasz", "Lukasz", true},
		{"different names", "Kaiser", "Kristina", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FoldEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("FoldEqual(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Normalized
	}{
		{
			name:  "first and last",
			input: "Lukasz Kaiser",
			want: Normalized{
				Raw:         "Lukasz Kaiser",
				First:       []string{"Lukasz"},
				Last:        "Kaiser",
				FoldedFirst: []string{"Lukasz"},
				FoldedLast:  "Kaiser",
			},
		},
		{
			name:  "initial with accent",
			input: "Ł Kaiser",
			want: Normalized{
				Raw:          "Ł Kaiser",
				First:        []string{"Ł"},
				Last:         "Kaiser",
				FoldedFirst:  []string{"L"},
				FoldedLast:   "Kaiser",
				InitialFirst: true,
			},
		},
		{
			name:  "dotted initial",
			input: "A. Hyvärinen",
			want: Normalized{
				Raw:          "A. Hyvärinen",
				First:        []string{"A."},
				Last:         "Hyvärinen",
				FoldedFirst:  []string{"A."},
				FoldedLast:   "Hyvarinen",
				InitialFirst: true,
			},
		},
		{
			name:  "multi-token given name",
			input: "Sylvain Le Corff",
			want: Normalized{
				Raw:         "Sylvain Le Corff",
				First:       []string{"Sylvain", "Le"},
				Last:        "Corff",
				FoldedFirst: []string{"Sylvain", "Le"},
				FoldedLast:  "Corff",
			},
		},
		{
			name:  "last name only",
			input: "Toutanova",
			want: Normalized{
				Raw:         "Toutanova",
				First:       []string{},
				Last:        "Toutanova",
				FoldedFirst: []string{},
				FoldedLast:  "Toutanova",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmpty(t *testing.T) {
	for _, input := range []string{"", "   "} {
		got := Normalize(input)
		if !got.Empty() {
			t.Errorf("Normalize(%q).Empty() = false, want true", input)
		}
	}
	if Normalize("Kaiser").Empty() {
		t.Error("Normalize(\"Kaiser\").Empty() = true, want false")
	}
}

func TestNormalizeIsPure(t *testing.T) {
	a := Normalize("Ł Kaiser")
	b := Normalize("Ł Kaiser")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Normalize is not deterministic: %+v vs %+v", a, b)
	}
}

func TestInitialLetter(t *testing.T) {
	tests := []struct {
		input string
		want  rune
	}{
		{"Ł Kaiser", 'L'},
		{"Aapo Hyvärinen", 'A'},
		{"Toutanova", 0},
	}

	for _, tt := range tests {
		if got := Normalize(tt.input).InitialLetter(); got != tt.want {
			t.Errorf("Normalize(%q).InitialLetter() = %q, want %q", tt.input, got, tt.want)
		}
	}
}
