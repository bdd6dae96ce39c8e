// Package tei parses GROBID TEI XML bibliographies into structured
// reference entries.
package tei

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/matsen/refcheck/internal/reference"
)

// Author is one name from a persName element.
type Author struct {
	First string `json:"first,omitempty"` // Forenames joined with spaces
	Last  string `json:"last"`
}

// Entry is one biblStruct from a TEI reference list, with the fields
// needed for both validation and BibTeX export.
type Entry struct {
	ID        string   `json:"id"` // xml:id of the biblStruct
	Title     string   `json:"title"`
	Authors   []Author `json:"authors"`
	BookTitle string   `json:"booktitle,omitempty"` // Monograph title (proceedings, journal)
	Publisher string   `json:"publisher,omitempty"`
	Address   string   `json:"address,omitempty"`
	Date      string   `json:"date,omitempty"` // ISO date from imprint/date@when
	Pages     string   `json:"pages,omitempty"`
	DOI       string   `json:"doi,omitempty"`
}

// FullName renders the author as "First Last", the shape name
// normalization expects.
func (a Author) FullName() string {
	if a.First == "" {
		return a.Last
	}
	return a.First + " " + a.Last
}

// Reference converts the entry to the validation input shape.
func (e Entry) Reference() reference.Reference {
	authors := make([]string, 0, len(e.Authors))
	for _, a := range e.Authors {
		if name := strings.TrimSpace(a.FullName()); name != "" {
			authors = append(authors, name)
		}
	}
	return reference.Reference{
		SourceID: e.ID,
		Title:    e.Title,
		Authors:  authors,
	}
}

// XML shapes for the subset of TEI that GROBID emits for references.
// biblStruct elements are decoded individually so the surrounding
// document structure (text/back/div/listBibl) does not matter.

type biblStruct struct {
	ID       string   `xml:"id,attr"`
	Analytic analytic `xml:"analytic"`
	Monogr   monogr   `xml:"monogr"`
}

type analytic struct {
	Titles  []title    `xml:"title"`
	Authors []persName `xml:"author>persName"`
	Idnos   []idno     `xml:"idno"`
}

type monogr struct {
	Titles  []title    `xml:"title"`
	Authors []persName `xml:"author>persName"`
	Meeting meeting    `xml:"meeting"`
	Imprint imprint    `xml:"imprint"`
	Idnos   []idno     `xml:"idno"`
}

type title struct {
	Level string `xml:"level,attr"`
	Text  string `xml:",chardata"`
}

type persName struct {
	Forenames []forename `xml:"forename"`
	Surname   string     `xml:"surname"`
}

type forename struct {
	Type string `xml:"type,attr"`
	Text string `xml:",chardata"`
}

type meeting struct {
	AddrLine string `xml:"address>addrLine"`
}

type imprint struct {
	Publisher string      `xml:"publisher"`
	Date      imprintDate `xml:"date"`
	Scopes    []biblScope `xml:"biblScope"`
}

type imprintDate struct {
	When string `xml:"when,attr"`
	Text string `xml:",chardata"`
}

type biblScope struct {
	Unit string `xml:"unit,attr"`
	From string `xml:"from,attr"`
	To   string `xml:"to,attr"`
	Text string `xml:",chardata"`
}

type idno struct {
	Type string `xml:"type,attr"`
	Text string `xml:",chardata"`
}

// ParseReferences reads a TEI document and returns one Entry per
// biblStruct, in document order.
func ParseReferences(r io.Reader) ([]Entry, error) {
	dec := xml.NewDecoder(r)
	var entries []Entry

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing TEI: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "biblStruct" {
			continue
		}

		var bs biblStruct
		if err := dec.DecodeElement(&bs, &start); err != nil {
			return nil, fmt.Errorf("parsing biblStruct: %w", err)
		}
		entries = append(entries, toEntry(bs))
	}

	return entries, nil
}

func toEntry(bs biblStruct) Entry {
	e := Entry{
		ID:        bs.ID,
		Title:     pickTitle(bs.Analytic.Titles, ""),
		Authors:   toAuthors(bs.Analytic.Authors),
		BookTitle: pickTitle(bs.Monogr.Titles, "m"),
		Publisher: strings.TrimSpace(bs.Monogr.Imprint.Publisher),
		Address:   strings.TrimSpace(bs.Monogr.Meeting.AddrLine),
		Date:      bs.Monogr.Imprint.Date.When,
		Pages:     pageRange(bs.Monogr.Imprint.Scopes),
		DOI:       pickDOI(bs.Analytic.Idnos, bs.Monogr.Idnos),
	}

	// Books and theses carry title and authors on monogr only.
	if e.Title == "" {
		e.Title = pickTitle(bs.Monogr.Titles, "")
		e.BookTitle = ""
	}
	if len(e.Authors) == 0 {
		e.Authors = toAuthors(bs.Monogr.Authors)
	}
	return e
}

// pickTitle returns the first title with the given level, or the first
// non-empty title when level is "".
func pickTitle(titles []title, level string) string {
	for _, t := range titles {
		text := strings.TrimSpace(t.Text)
		if text == "" {
			continue
		}
		if level == "" || t.Level == level {
			return text
		}
	}
	return ""
}

func toAuthors(names []persName) []Author {
	var authors []Author
	for _, pn := range names {
		last := strings.TrimSpace(pn.Surname)
		if last == "" {
			continue
		}
		var first []string
		for _, fn := range pn.Forenames {
			if text := strings.TrimSpace(fn.Text); text != "" {
				first = append(first, text)
			}
		}
		authors = append(authors, Author{First: strings.Join(first, " "), Last: last})
	}
	return authors
}

func pageRange(scopes []biblScope) string {
	for _, s := range scopes {
		if s.Unit != "page" {
			continue
		}
		if s.From != "" && s.To != "" {
			return s.From + "--" + s.To
		}
		if s.From != "" {
			return s.From
		}
		return strings.TrimSpace(s.Text)
	}
	return ""
}

func pickDOI(groups ...[]idno) string {
	for _, group := range groups {
		for _, id := range group {
			if strings.EqualFold(id.Type, "DOI") {
				return strings.TrimSpace(id.Text)
			}
		}
	}
	return ""
}
