package raster

import (
	"image"
	"math"
)

// Default Canny thresholds for plan linework. Sheets are high-contrast line
// drawings, so the standard clean-diagram values hold up well.
const (
	DefaultEdgeLow  = 50
	DefaultEdgeHigh = 150
)

// EdgeMap is a binary edge bitmap indexed [y][x]. True marks an edge pixel.
type EdgeMap [][]bool

// Edges runs Canny edge detection over the raster and returns the binary
// edge map the Hough transform consumes.
//
// Stages: smoothed grayscale, Sobel gradients, non-maximum suppression to
// thin edges to single-pixel width, then hysteresis thresholding. Pixels
// above thresholdHigh are strong edges; pixels between the thresholds
// survive only when adjacent to a strong edge.
func Edges(img image.Image, thresholdLow, thresholdHigh int) EdgeMap {
	return EdgesFromGray(PrepareForLines(img), thresholdLow, thresholdHigh)
}

// EdgesFromGray is Edges for a raster already smoothed by PrepareForLines.
// Callers that also sample the gray raster use this to pay for the blur
// once.
func EdgesFromGray(gray *image.Gray, thresholdLow, thresholdHigh int) EdgeMap {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	magnitude, direction := sobel(gray)
	suppressed := suppressNonMaxima(magnitude, direction, width, height)

	low := float64(thresholdLow) / 255.0
	high := float64(thresholdHigh) / 255.0

	edges := make(EdgeMap, height)
	for y := range edges {
		edges[y] = make([]bool, width)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			val := suppressed[y][x]
			switch {
			case val >= high:
				edges[y][x] = true
			case val >= low && hasStrongNeighbor(suppressed, x, y, width, height, high):
				edges[y][x] = true
			}
		}
	}
	return edges
}

var (
	sobelX = [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY = [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

// sobel computes gradient magnitude and direction per pixel, with intensity
// normalized to [0,1]. Border pixels use replicated edge values.
func sobel(gray *image.Gray) (magnitude, direction [][]float64) {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	magnitude = make([][]float64, height)
	direction = make([][]float64, height)
	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					px := clamp(x+kx, 0, width-1)
					py := clamp(y+ky, 0, height-1)
					v := float64(gray.GrayAt(bounds.Min.X+px, bounds.Min.Y+py).Y) / 255.0
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y][x] = math.Sqrt(gx*gx + gy*gy)
			direction[y][x] = math.Atan2(gy, gx)
		}
	}
	return magnitude, direction
}

// suppressNonMaxima keeps a pixel only when its gradient magnitude is a
// local maximum along the gradient direction.
func suppressNonMaxima(magnitude, direction [][]float64, width, height int) [][]float64 {
	suppressed := make([][]float64, height)
	for y := range suppressed {
		suppressed[y] = make([]float64, width)
	}
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			angle := direction[y][x]
			mag := magnitude[y][x]

			var n1, n2 float64
			switch {
			case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
				n1, n2 = magnitude[y][x-1], magnitude[y][x+1]
			case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
				n1, n2 = magnitude[y-1][x+1], magnitude[y+1][x-1]
			case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
				n1, n2 = magnitude[y-1][x], magnitude[y+1][x]
			default:
				n1, n2 = magnitude[y-1][x-1], magnitude[y+1][x+1]
			}

			if mag >= n1 && mag >= n2 {
				suppressed[y][x] = mag
			}
		}
	}
	return suppressed
}

func hasStrongNeighbor(suppressed [][]float64, x, y, width, height int, high float64) bool {
	for ky := -1; ky <= 1; ky++ {
		for kx := -1; kx <= 1; kx++ {
			px := clamp(x+kx, 0, width-1)
			py := clamp(y+ky, 0, height-1)
			if suppressed[py][px] >= high {
				return true
			}
		}
	}
	return false
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
