// Package reference defines the core domain types for citation validation.
package reference

// Reference represents one citation entry extracted from a paper's
// reference section. Author order is citation order and is meaningful:
// it is what order-mismatch detection compares against.
type Reference struct {
	// SourceID is an opaque identifier from the extraction step
	// (e.g., the TEI xml:id of the biblStruct).
	SourceID string `json:"source_id,omitempty"`

	Title   string   `json:"title"`
	Authors []string `json:"authors"` // Raw name strings, citation order
}

// CanonicalEntry is the authoritative bibliographic record for a paper,
// as returned by the lookup service. Author ordering semantics match
// Reference.
type CanonicalEntry struct {
	Key     string   `json:"key"` // Record key from the lookup service
	Title   string   `json:"title"`
	Authors []string `json:"authors"`
	Venue   string   `json:"venue,omitempty"`
	Year    string   `json:"year,omitempty"`
	DOI     string   `json:"doi,omitempty"`
	URL     string   `json:"url,omitempty"`
}
