package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/civiltrace/plancheck/internal/geometry"
	"github.com/civiltrace/plancheck/internal/linestyle"
	"github.com/civiltrace/plancheck/internal/model"
	"github.com/civiltrace/plancheck/internal/quality"
)

// severityHues maps each severity to an HSV hue in degrees: green through
// red as findings get worse.
var severityHues = map[quality.Severity]float64{
	quality.SeverityMinor:    120,
	quality.SeverityWarning:  45,
	quality.SeverityError:    20,
	quality.SeverityCritical: 0,
}

// SeverityColor returns the overlay color for a severity tier.
func SeverityColor(s quality.Severity) color.RGBA {
	hue, ok := severityHues[s]
	if !ok {
		hue = 120
	}
	r, g, b := colorful.Hsv(hue, 0.95, 0.95).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// styleColors for classified lines: solid lines in blue, dashed in purple,
// both well clear of the severity palette.
func styleColor(s linestyle.Style) color.RGBA {
	hue := 210.0
	if s == linestyle.StyleDashed {
		hue = 280
	}
	r, g, b := colorful.Hsv(hue, 0.9, 0.9).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Overlay copies the raster and draws label boxes, overlap markers, and
// classified line segments onto the copy. The source image is not modified.
func Overlay(src image.Image, labels []model.Label, overlaps []quality.Overlap, lines []linestyle.Classified) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)

	labelColor := color.RGBA{R: 110, G: 110, B: 110, A: 255}
	for _, l := range labels {
		drawRect(dst, l.Box, labelColor)
	}

	for _, c := range lines {
		drawSegment(dst, c.Segment.P1, c.Segment.P2, styleColor(c.Style))
	}

	for _, o := range overlaps {
		drawCross(dst, o.Centroid, 12, SeverityColor(o.Severity))
	}

	return dst
}

// WritePNG encodes the overlay to w.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// drawRect outlines a box, clipped to the image bounds.
func drawRect(img *image.RGBA, box geometry.Rect, c color.RGBA) {
	for x := box.X; x <= box.X+box.W; x++ {
		setClipped(img, x, box.Y, c)
		setClipped(img, x, box.Y+box.H, c)
	}
	for y := box.Y; y <= box.Y+box.H; y++ {
		setClipped(img, box.X, y, c)
		setClipped(img, box.X+box.W, y, c)
	}
}

// drawSegment rasterizes a line by stepping one pixel at a time along the
// longer axis.
func drawSegment(img *image.RGBA, p1, p2 geometry.Point, c color.RGBA) {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps == 0 {
		setClipped(img, int(p1.X), int(p1.Y), c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		setClipped(img, int(p1.X+t*dx), int(p1.Y+t*dy), c)
	}
}

// drawCross marks a point with an X of the given arm length.
func drawCross(img *image.RGBA, center geometry.Point, arm int, c color.RGBA) {
	cx, cy := int(center.X), int(center.Y)
	for d := -arm; d <= arm; d++ {
		setClipped(img, cx+d, cy+d, c)
		setClipped(img, cx+d, cy-d, c)
	}
}

func setClipped(img *image.RGBA, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetRGBA(x, y, c)
	}
}
