// Package detect finds candidate line segments in an edge-detected raster.
//
// The Hough-transform detector deliberately over-produces: on a plan sheet it
// reports streets, lot lines, and border ruling alongside contour lines. The
// linestyle package is responsible for narrowing that set down to the lines
// that matter.
package detect
