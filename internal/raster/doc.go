// Package raster loads and prepares rendered sheet images. It caches decoded
// rasters, produces the binarized and smoothed variants the OCR and line
// detection stages want, and runs Canny edge detection to feed the Hough
// transform.
package raster
