// Package render draws validation findings back onto the sheet raster so a
// reviewer can see what the checks flagged without cross-referencing
// coordinates by hand.
package render
