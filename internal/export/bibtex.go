// Package export renders extracted references as BibTeX.
package export

import (
	"fmt"
	"strings"

	"github.com/matsen/refcheck/internal/tei"
)

// ToBibTeX converts one extracted entry to a BibTeX record.
func ToBibTeX(e tei.Entry) string {
	entryType := determineEntryType(e)
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType, citeKey(e)))
	b.WriteString(fmt.Sprintf("  title = {%s},\n", escapeLatex(e.Title)))

	if len(e.Authors) > 0 {
		b.WriteString(fmt.Sprintf("  author = {%s},\n", formatAuthors(e.Authors)))
	}

	if e.BookTitle != "" {
		fieldName := "journal"
		if entryType == "inproceedings" {
			fieldName = "booktitle"
		}
		b.WriteString(fmt.Sprintf("  %s = {%s},\n", fieldName, escapeLatex(e.BookTitle)))
	}

	if year, month := splitDate(e.Date); year != "" {
		if month != "" {
			b.WriteString(fmt.Sprintf("  month = {%s},\n", month))
		}
		b.WriteString(fmt.Sprintf("  year = {%s},\n", year))
	}

	if e.Address != "" {
		b.WriteString(fmt.Sprintf("  address = {%s},\n", escapeLatex(e.Address)))
	}
	if e.Publisher != "" {
		b.WriteString(fmt.Sprintf("  publisher = {%s},\n", escapeLatex(e.Publisher)))
	}
	if e.DOI != "" {
		b.WriteString(fmt.Sprintf("  doi = {%s},\n", e.DOI))
	}
	if e.Pages != "" {
		b.WriteString(fmt.Sprintf("  pages = {%s},\n", e.Pages))
	}

	b.WriteString("}\n")
	return b.String()
}

// ToBibTeXList converts multiple entries to BibTeX records.
func ToBibTeXList(entries []tei.Entry) string {
	var records []string
	for _, e := range entries {
		records = append(records, ToBibTeX(e))
	}
	return strings.Join(records, "\n")
}

// citeKey prefers the TEI xml:id; entries without one get a key derived
// from the first author and year.
func citeKey(e tei.Entry) string {
	if e.ID != "" {
		return e.ID
	}
	year, _ := splitDate(e.Date)
	if len(e.Authors) > 0 {
		return strings.ToLower(strings.ReplaceAll(e.Authors[0].Last, " ", "")) + year
	}
	return "ref" + year
}

// determineEntryType returns the BibTeX entry type for an entry.
func determineEntryType(e tei.Entry) string {
	venue := strings.ToLower(e.BookTitle)

	// Preprints
	if strings.Contains(venue, "arxiv") ||
		strings.Contains(venue, "biorxiv") ||
		strings.Contains(venue, "medrxiv") {
		return "article"
	}

	// Conference proceedings
	if strings.Contains(venue, "proceedings") ||
		strings.Contains(venue, "conference") ||
		strings.Contains(venue, "workshop") ||
		strings.Contains(venue, "symposium") ||
		strings.Contains(venue, "advances in") {
		return "inproceedings"
	}

	if venue == "" && e.Publisher != "" {
		return "book"
	}

	return "article"
}

// formatAuthors formats authors in BibTeX style: "Last, First and Last, First"
func formatAuthors(authors []tei.Author) string {
	var formatted []string
	for _, a := range authors {
		if a.First != "" {
			formatted = append(formatted, fmt.Sprintf("%s, %s", escapeLatex(a.Last), escapeLatex(a.First)))
		} else {
			formatted = append(formatted, escapeLatex(a.Last))
		}
	}
	return strings.Join(formatted, " and ")
}

// splitDate breaks an ISO date ("2017-12-04" or "2017") into year and
// numeric month.
func splitDate(date string) (year, month string) {
	if date == "" {
		return "", ""
	}
	parts := strings.SplitN(date, "-", 3)
	year = parts[0]
	if len(parts) > 1 {
		month = parts[1]
	}
	return year, month
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	// Order matters: & must be first (before other escapes that might produce &)
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
