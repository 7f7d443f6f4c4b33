package document

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// PDF is a Document backed by a PDF file on disk.
//
// Page text is decoded lazily and memoized per page, so a locator run that
// stops at the metadata or TOC tier never pays for a full-document decode.
type PDF struct {
	file   *os.File
	reader *pdf.Reader
	texts  map[int]string
}

// OpenPDF opens a PDF drawing set. The caller owns the returned document and
// must Close it.
func OpenPDF(path string) (*PDF, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return &PDF{
		file:   f,
		reader: r,
		texts:  make(map[int]string),
	}, nil
}

// Close releases the underlying file handle.
func (d *PDF) Close() error {
	return d.file.Close()
}

// PageCount returns the number of pages in the PDF.
func (d *PDF) PageCount() int {
	return d.reader.NumPage()
}

// PageText extracts the plain text of the page at the given zero-based index.
// Out-of-range indices yield empty text. Decode failures on a single page are
// reported so the locator can log and move on.
func (d *PDF) PageText(index int) (string, error) {
	if index < 0 || index >= d.reader.NumPage() {
		return "", nil
	}
	if text, ok := d.texts[index]; ok {
		return text, nil
	}

	page := d.reader.Page(index + 1) // reader pages are 1-based
	if page.V.IsNull() {
		return "", nil
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from page %d: %w", index, err)
	}

	d.texts[index] = text
	return text, nil
}

// PageLabels returns nil: the underlying reader does not expose the PDF
// page-label table. Front ends that have a sheet index sidecar can wrap the
// document and supply labels themselves.
func (d *PDF) PageLabels() []PageLabel {
	return nil
}
