package geometry

import (
	"fmt"
	"math"
)

// Point represents a 2D location in image-pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle in image-pixel space.
//
// X and Y are the top-left corner; W and H are always non-negative.
// Construct rectangles with NewRect so the invariant is checked once at the
// boundary instead of in every consumer.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"width"`
	H int `json:"height"`
}

// NewRect creates a rectangle and validates its dimensions.
//
// A negative width or height indicates a bug in an upstream producer (OCR
// bounding boxes and line detections are never negative-sized), so this fails
// fast with an error rather than silently normalizing.
func NewRect(x, y, w, h int) (Rect, error) {
	if w < 0 || h < 0 {
		return Rect{}, fmt.Errorf("invalid rectangle dimensions %dx%d at (%d,%d)", w, h, x, y)
	}
	return Rect{X: x, Y: y, W: w, H: h}, nil
}

// Area returns the rectangle area in square pixels.
func (r Rect) Area() int {
	return r.W * r.H
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{
		X: float64(r.X) + float64(r.W)/2,
		Y: float64(r.Y) + float64(r.H)/2,
	}
}

// Empty reports whether the rectangle has zero area.
func (r Rect) Empty() bool {
	return r.W == 0 || r.H == 0
}

// Intersect returns the intersection of two rectangles.
//
// The second return value is false when the rectangles are disjoint or only
// share an edge or corner; a zero-area touch is not an intersection.
func (r Rect) Intersect(o Rect) (Rect, bool) {
	left := max(r.X, o.X)
	top := max(r.Y, o.Y)
	right := min(r.X+r.W, o.X+o.W)
	bottom := min(r.Y+r.H, o.Y+o.H)

	if right <= left || bottom <= top {
		return Rect{}, false
	}
	return Rect{X: left, Y: top, W: right - left, H: bottom - top}, true
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// PointToLineDistance returns the perpendicular distance from p to the
// infinite line through p1 and p2. A degenerate line (p1 == p2) falls back to
// point-to-point distance.
func PointToLineDistance(p, p1, p2 Point) float64 {
	a := p2.Y - p1.Y
	b := -(p2.X - p1.X)
	c := p2.X*p1.Y - p2.Y*p1.X

	denom := math.Sqrt(a*a + b*b)
	if denom == 0 {
		return Distance(p, p1)
	}
	return math.Abs(a*p.X+b*p.Y+c) / denom
}
