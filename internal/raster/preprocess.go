package raster

import (
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
	xdraw "golang.org/x/image/draw"
)

// Preprocessing parameters tuned for 300 DPI plan sheets. Scanned sets carry
// speckle noise that the blur removes before gradient work; the OCR threshold
// sits high because plan linework is near-black on near-white.
const (
	blurRadius   = 1.4
	ocrThreshold = 180
)

// PrepareForOCR binarizes the raster: grayscale then a fixed threshold.
// Tesseract performs markedly better on clean black-on-white input than on
// raw scans.
func PrepareForOCR(img image.Image) *image.Gray {
	return segment.Threshold(effect.Grayscale(img), ocrThreshold)
}

// PrepareForLines produces the smoothed grayscale raster that intensity
// sampling and edge detection read.
func PrepareForLines(img image.Image) *image.Gray {
	smoothed := effect.Grayscale(blur.Gaussian(img, blurRadius))
	gray := image.NewGray(smoothed.Bounds())
	draw.Draw(gray, gray.Bounds(), smoothed, smoothed.Bounds().Min, draw.Src)
	return gray
}

// Downscale resizes the raster so its longest side is at most maxSide,
// preserving aspect ratio. Rasters already within bounds are returned
// unchanged. Line detection does not need full 300 DPI resolution and the
// Hough accumulator grows quadratically with image size.
func Downscale(img image.Image, maxSide int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return img
	}

	scale := float64(maxSide) / float64(max(w, h))
	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}
