// Package validate orchestrates a full sheet check: locate the target sheet,
// rasterize and preprocess it, recognize its text, then run the overlap,
// proximity, line-style, and checklist validators and aggregate their
// findings into one report.
package validate
