package render

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/civiltrace/plancheck/internal/detect"
	"github.com/civiltrace/plancheck/internal/geometry"
	"github.com/civiltrace/plancheck/internal/linestyle"
	"github.com/civiltrace/plancheck/internal/model"
	"github.com/civiltrace/plancheck/internal/quality"
)

func blankSheet(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

func TestSeverityColorsDistinct(t *testing.T) {
	seen := map[color.RGBA]quality.Severity{}
	for _, s := range []quality.Severity{
		quality.SeverityMinor, quality.SeverityWarning,
		quality.SeverityError, quality.SeverityCritical,
	} {
		c := SeverityColor(s)
		if prev, dup := seen[c]; dup {
			t.Errorf("%s and %s share color %v", prev, s, c)
		}
		seen[c] = s
	}
}

func TestOverlayDoesNotModifySource(t *testing.T) {
	src := blankSheet(100, 100)
	labels := []model.Label{{Text: "SCE", Box: geometry.Rect{X: 10, Y: 10, W: 30, H: 15}, Confidence: 90}}

	out := Overlay(src, labels, nil, nil)
	if out == nil {
		t.Fatal("expected an overlay image")
	}
	if got := src.RGBAAt(10, 10); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("source mutated at label corner: %v", got)
	}
	if got := out.RGBAAt(10, 10); got == (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Error("overlay should draw the label box corner")
	}
}

func TestOverlayDrawsFindings(t *testing.T) {
	src := blankSheet(200, 200)
	overlaps := []quality.Overlap{{
		TextA: "EX. 635.0", TextB: "PROP. 636.0",
		Severity: quality.SeverityCritical,
		Centroid: geometry.Point{X: 100, Y: 100},
	}}
	lines := []linestyle.Classified{{
		Segment: detect.Segment{P1: geometry.Point{X: 20, Y: 150}, P2: geometry.Point{X: 180, Y: 150}},
		Style:   linestyle.StyleSolid,
	}}

	out := Overlay(src, nil, overlaps, lines)

	if got := out.RGBAAt(100, 100); got == (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Error("overlap centroid should be marked")
	}
	if got := out.RGBAAt(100, 150); got == (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Error("classified segment should be drawn")
	}
}

func TestOverlayClipsOutOfBounds(t *testing.T) {
	src := blankSheet(50, 50)
	labels := []model.Label{{Text: "EDGE", Box: geometry.Rect{X: 40, Y: 40, W: 30, H: 30}, Confidence: 90}}

	// Must not panic drawing past the raster edge.
	Overlay(src, labels, nil, nil)
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, blankSheet(10, 10)); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected PNG bytes")
	}
}
