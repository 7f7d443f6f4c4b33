// Package checklist verifies that the recognized sheet text mentions every
// required plan element: legend, scale, feature callouts, contour and lot
// labels. Matching is fuzzy because OCR routinely mangles a character or two
// in stenciled plan text.
package checklist
