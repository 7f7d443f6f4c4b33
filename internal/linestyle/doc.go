// Package linestyle classifies detected line segments as solid or dashed by
// sampling pixel intensity, narrows the candidate set to lines plausibly
// associated with contour labels, and checks that the sheet honors the
// existing/proposed drafting convention.
package linestyle
