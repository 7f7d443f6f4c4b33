package detect

import (
	"math"
	"sort"

	"github.com/civiltrace/plancheck/internal/geometry"
)

// Segment is a detected line segment between two endpoints.
type Segment struct {
	P1 geometry.Point `json:"p1"`
	P2 geometry.Point `json:"p2"`
}

// Length returns the segment length in pixels.
func (s Segment) Length() float64 {
	return geometry.Distance(s.P1, s.P2)
}

// AngleDegrees returns the segment angle (0 = horizontal right, 90 = down).
func (s Segment) AngleDegrees() float64 {
	return math.Atan2(s.P2.Y-s.P1.Y, s.P2.X-s.P1.X) * 180 / math.Pi
}

// Midpoint returns the segment midpoint.
func (s Segment) Midpoint() geometry.Point {
	return geometry.Point{X: (s.P1.X + s.P2.X) / 2, Y: (s.P1.Y + s.P2.Y) / 2}
}

// maxSegments caps the candidate count; Hough peaks beyond this are noise on
// any real sheet.
const maxSegments = 1000

// Lines finds line segments in a binary edge map using a Hough transform.
//
// edges is indexed [y][x]; true marks an edge pixel. Segments shorter than
// minLength are dropped. Rows are assumed rectangular.
func Lines(edges [][]bool, minLength int) []Segment {
	height := len(edges)
	if height == 0 {
		return nil
	}
	width := len(edges[0])
	if width == 0 {
		return nil
	}

	maxDist := int(math.Sqrt(float64(width*width + height*height)))
	numAngles := 180
	accumulator := make([][]int, maxDist*2)
	for i := range accumulator {
		accumulator[i] = make([]int, numAngles)
	}

	// Precompute the angle tables once; the vote loop is the hot path.
	cosTable := make([]float64, numAngles)
	sinTable := make([]float64, numAngles)
	for theta := 0; theta < numAngles; theta++ {
		angle := float64(theta) * math.Pi / 180.0
		cosTable[theta] = math.Cos(angle)
		sinTable[theta] = math.Sin(angle)
	}

	// Vote in Hough space.
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !edges[y][x] {
				continue
			}
			for theta := 0; theta < numAngles; theta++ {
				rho := float64(x)*cosTable[theta] + float64(y)*sinTable[theta]
				rhoIdx := int(rho) + maxDist
				if rhoIdx >= 0 && rhoIdx < maxDist*2 {
					accumulator[rhoIdx][theta]++
				}
			}
		}
	}

	// Find local maxima above the vote threshold.
	type peak struct {
		rho   int
		theta int
		votes int
	}
	threshold := minLength / 2
	if threshold < 1 {
		threshold = 1
	}

	var peaks []peak
	for rhoIdx := 0; rhoIdx < maxDist*2; rhoIdx++ {
		for theta := 0; theta < numAngles; theta++ {
			votes := accumulator[rhoIdx][theta]
			if votes < threshold {
				continue
			}
			isMax := true
			for dr := -2; dr <= 2 && isMax; dr++ {
				for dt := -2; dt <= 2 && isMax; dt++ {
					if dr == 0 && dt == 0 {
						continue
					}
					nr := rhoIdx + dr
					nt := (theta + dt + numAngles) % numAngles
					if nr >= 0 && nr < maxDist*2 && accumulator[nr][nt] > votes {
						isMax = false
					}
				}
			}
			if isMax {
				peaks = append(peaks, peak{rho: rhoIdx - maxDist, theta: theta, votes: votes})
			}
		}
	}

	sort.Slice(peaks, func(i, j int) bool { return peaks[i].votes > peaks[j].votes })

	var segments []Segment
	for _, p := range peaks {
		if len(segments) >= maxSegments {
			break
		}

		cosA := cosTable[p.theta]
		sinA := sinTable[p.theta]
		rho := float64(p.rho)

		// Trace edge pixels near the line and take the extreme points
		// along the line direction as endpoints.
		count := 0
		minProj := math.MaxFloat64
		maxProj := -math.MaxFloat64
		var start, end geometry.Point
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if !edges[y][x] {
					continue
				}
				if math.Abs(float64(x)*cosA+float64(y)*sinA-rho) >= 2.0 {
					continue
				}
				count++
				// Projection onto the line direction (perpendicular to the normal).
				proj := -float64(x)*sinA + float64(y)*cosA
				if proj < minProj {
					minProj = proj
					start = geometry.Point{X: float64(x), Y: float64(y)}
				}
				if proj > maxProj {
					maxProj = proj
					end = geometry.Point{X: float64(x), Y: float64(y)}
				}
			}
		}

		if count < minLength {
			continue
		}

		seg := Segment{P1: start, P2: end}
		if seg.Length() < float64(minLength) {
			continue
		}
		segments = append(segments, seg)
	}

	return segments
}
