package linestyle

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/civiltrace/plancheck/internal/detect"
	"github.com/civiltrace/plancheck/internal/geometry"
)

// whiteCanvas builds a blank gray image.
func whiteCanvas(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	return img
}

func drawInk(img *image.Gray, y, x1, x2 int) {
	for x := x1; x <= x2; x++ {
		img.SetGray(x, y, color.Gray{Y: 0})
	}
}

func horizontalSegment(y, x1, x2 int) detect.Segment {
	return detect.Segment{
		P1: geometry.Point{X: float64(x1), Y: float64(y)},
		P2: geometry.Point{X: float64(x2), Y: float64(y)},
	}
}

func TestClassifySolidLine(t *testing.T) {
	img := whiteCanvas(300, 100)
	drawInk(img, 50, 10, 290)

	c := Classify(img, horizontalSegment(50, 10, 290), ClassifierConfig{})
	if c.Style != StyleSolid {
		t.Fatalf("continuous line should be solid, got %s (coverage %.2f, transitions %d)",
			c.Style, c.Coverage, c.Transitions)
	}
	if c.Confidence <= 0.8 {
		t.Errorf("solid confidence tracks coverage, got %.2f", c.Confidence)
	}
}

func TestClassifyDashedLine(t *testing.T) {
	img := whiteCanvas(300, 100)
	// Eight dashes of 18px with 18px gaps: ~50% coverage, many transitions.
	for start := 10; start < 290; start += 36 {
		end := start + 17
		if end > 289 {
			end = 289
		}
		drawInk(img, 50, start, end)
	}

	c := Classify(img, horizontalSegment(50, 10, 289), ClassifierConfig{})
	if c.Style != StyleDashed {
		t.Fatalf("alternating dashes should classify dashed, got %s (coverage %.2f, transitions %d)",
			c.Style, c.Coverage, c.Transitions)
	}
	if c.Transitions < 4 {
		t.Errorf("expected at least 4 transitions, got %d", c.Transitions)
	}
	if c.Confidence <= 0 || c.Confidence > 1 {
		t.Errorf("dashed confidence must sit in (0,1], got %.2f", c.Confidence)
	}
}

func TestClassifyBlankRegionIsUnknown(t *testing.T) {
	img := whiteCanvas(300, 100)

	c := Classify(img, horizontalSegment(50, 10, 290), ClassifierConfig{})
	if c.Style != StyleUnknown {
		t.Errorf("no ink at all should be unknown, got %s", c.Style)
	}
}

func TestClassifyOutOfBoundsSamplesReadAsGaps(t *testing.T) {
	img := whiteCanvas(100, 100)
	drawInk(img, 50, 0, 99)

	// Segment extends well past the image; out-of-bounds halves coverage.
	c := Classify(img, horizontalSegment(50, 0, 199), ClassifierConfig{})
	if c.Coverage > 0.6 {
		t.Errorf("out-of-bounds samples must not count as ink, coverage %.2f", c.Coverage)
	}
}

func TestClassifySingleSampleFallsBackToDefault(t *testing.T) {
	img := whiteCanvas(300, 100)
	drawInk(img, 50, 10, 290)

	c := Classify(img, horizontalSegment(50, 10, 290), ClassifierConfig{SampleCount: 1})
	if c.Style != StyleSolid {
		t.Errorf("one-sample config must fall back to the default count, got %s (coverage %.2f)",
			c.Style, c.Coverage)
	}
	if math.IsNaN(c.Coverage) || c.Coverage <= 0.8 {
		t.Errorf("coverage must be well defined, got %v", c.Coverage)
	}
}

func TestClassifyAllDropsUnknown(t *testing.T) {
	img := whiteCanvas(300, 100)
	drawInk(img, 20, 10, 290)

	segments := []detect.Segment{
		horizontalSegment(20, 10, 290), // solid
		horizontalSegment(80, 10, 290), // blank, unknown
	}
	classified := ClassifyAll(img, segments, ClassifierConfig{})
	if len(classified) != 1 {
		t.Fatalf("unknowns are excluded from the result, got %d entries", len(classified))
	}
	if classified[0].Style != StyleSolid {
		t.Errorf("surviving entry should be the solid line, got %s", classified[0].Style)
	}
}
