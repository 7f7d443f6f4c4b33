// Package quality implements the spatial quality checks on a located plan
// sheet: detection of colliding text labels and validation that classified
// labels sit close to the features they describe.
//
// Both checks are pure functions over OCR labels and feature coordinates.
// "Nothing found" is a normal, expected result and is never an error.
package quality
