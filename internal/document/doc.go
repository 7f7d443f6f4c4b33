// Package document abstracts multi-page drawing sets for the sheet locator.
//
// The locator only needs three things from a document: how many pages it has,
// the raw text of a page, and (when available) a page-labeling table. The PDF
// adapter in this package supplies all three for real drawing sets; tests and
// other front ends can use Static.
package document
