package document

// PageLabel pairs a zero-based page index with the label string the document
// assigns to that page (for drawing sets, typically the sheet title).
type PageLabel struct {
	PageIndex int    `json:"page_index"`
	Label     string `json:"label"`
}

// Document is a read-only view of a multi-page drawing set.
//
// PageText may be expensive (PDF content-stream decoding), so callers should
// only touch the pages they need. PageLabels returns nil when the document
// has no labeling table; that is a normal condition, not an error.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// PageText returns the raw extracted text of the page at the given
	// zero-based index.
	PageText(index int) (string, error)

	// PageLabels returns the document's page-labeling table in page order,
	// or nil if the document does not expose one.
	PageLabels() []PageLabel
}

// Static is an in-memory Document backed by slices. It is used by tests and
// by front ends that have already extracted page text elsewhere.
type Static struct {
	Pages  []string
	Labels []PageLabel
}

// PageCount returns the number of pages.
func (s *Static) PageCount() int {
	return len(s.Pages)
}

// PageText returns the stored text for the page, or empty for out-of-range
// indices. Missing pages are an input-absence condition and never error.
func (s *Static) PageText(index int) (string, error) {
	if index < 0 || index >= len(s.Pages) {
		return "", nil
	}
	return s.Pages[index], nil
}

// PageLabels returns the stored labeling table.
func (s *Static) PageLabels() []PageLabel {
	return s.Labels
}
