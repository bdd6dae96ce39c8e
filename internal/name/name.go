// Package name normalizes raw author-name strings for comparison.
//
// Extracted citations carry names in no guaranteed shape ("Ł Kaiser",
// "Kenton Lee", "A. Hyvarinen"). Normalization splits a raw name into
// given-name tokens and a family-name token, folds diacritics to base
// Latin letters for comparison, and detects initial-only given names.
// The original string is always retained for display.
package name

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalized is an immutable comparison view of a raw author name.
// Derivation is pure: the same raw string always yields the same value.
type Normalized struct {
	Raw string // Original string, for display

	First []string // Given-name tokens, original form
	Last  string   // Family-name token, original form

	FoldedFirst []string // Given-name tokens, diacritics folded
	FoldedLast  string   // Family-name token, diacritics folded

	// InitialFirst is true when the given-name component reduces,
	// after stripping trailing punctuation, to a single letter.
	InitialFirst bool
}

// Empty reports whether the name carries no usable tokens. Callers must
// treat empty names as unclassifiable.
func (n Normalized) Empty() bool {
	return n.Last == ""
}

// stripMarks removes combining marks after NFD decomposition, turning
// ä into a, é into e, and so on.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// baseLetters maps Latin letters that do not decompose into a base
// letter plus combining mark (NFD leaves them untouched).
var baseLetters = strings.NewReplacer(
	"Ł", "L", "ł", "l",
	"Ø", "O", "ø", "o",
	"Đ", "D", "đ", "d",
	"Ð", "D", "ð", "d",
	"Þ", "Th", "þ", "th",
	"ß", "ss",
	"Æ", "AE", "æ", "ae",
	"Œ", "OE", "œ", "oe",
	"Ħ", "H", "ħ", "h",
	"İ", "I", "ı", "i",
)

// Fold maps a string to its closest base-Latin equivalent for
// comparison purposes. Case is preserved.
func Fold(s string) string {
	s = baseLetters.Replace(s)
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return folded
}

// FoldEqual compares two strings case- and diacritic-insensitively.
func FoldEqual(a, b string) bool {
	return strings.EqualFold(Fold(a), Fold(b))
}

// Normalize derives the comparison view of a raw author name. The final
// whitespace-delimited token is the family name; all preceding tokens
// are given names. Empty input yields an empty Normalized.
func Normalize(raw string) Normalized {
	n := Normalized{Raw: raw}

	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return n
	}

	n.Last = fields[len(fields)-1]
	n.First = fields[:len(fields)-1]
	n.FoldedLast = Fold(n.Last)
	n.FoldedFirst = make([]string, len(n.First))
	for i, tok := range n.First {
		n.FoldedFirst[i] = Fold(tok)
	}

	n.InitialFirst = isInitial(n.First)
	return n
}

// isInitial reports whether the given-name tokens reduce to a single
// letter once trailing punctuation is stripped ("A", "A.", "Ł.").
func isInitial(first []string) bool {
	if len(first) != 1 {
		return false
	}
	tok := strings.TrimRightFunc(first[0], unicode.IsPunct)
	folded := []rune(Fold(tok))
	return len(folded) == 1 && unicode.IsLetter(folded[0])
}

// InitialLetter returns the folded leading letter of the given-name
// component, or 0 if there is none.
func (n Normalized) InitialLetter() rune {
	if len(n.FoldedFirst) == 0 {
		return 0
	}
	for _, r := range n.FoldedFirst[0] {
		return r
	}
	return 0
}
