// Package locator finds the erosion-and-sediment-control plan sheet inside a
// multi-page drawing set without OCR-ing the whole document.
//
// Three strategies are tried in increasing cost order: the document's
// page-labeling table, a table-of-contents scan over the first few pages, and
// finally a weighted keyword scan of every page's text. Each strategy is a
// pure function returning an optional result, so each is testable in
// isolation and the chain is just an ordered slice.
package locator
