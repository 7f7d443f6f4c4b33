package detect

import (
	"math"

	"github.com/civiltrace/plancheck/internal/geometry"
)

// Street grouping parameters. Streets on civil plans appear as bundles of
// parallel lines (centerline, pavement edges, curbs) or as single very long
// lines for major roads.
const (
	parallelAngleThreshold = 15.0  // degrees
	parallelDistThreshold  = 100.0 // pixels between parallel lines
	longRoadLength         = 800.0 // single-line street minimum
)

// GroupParallel clusters segments into street candidates: groups of nearby
// parallel segments, or lone segments long enough to be a major road.
func GroupParallel(segments []Segment) [][]Segment {
	var groups [][]Segment
	used := make([]bool, len(segments))

	for i, s1 := range segments {
		if used[i] {
			continue
		}

		group := []Segment{s1}
		used[i] = true
		angle1 := s1.AngleDegrees()

		for j := i + 1; j < len(segments); j++ {
			if used[j] {
				continue
			}
			s2 := segments[j]

			if !anglesParallel(angle1, s2.AngleDegrees()) {
				continue
			}
			if geometry.PointToLineDistance(s2.Midpoint(), s1.P1, s1.P2) >= parallelDistThreshold {
				continue
			}

			group = append(group, s2)
			used[j] = true
		}

		if len(group) >= 2 || s1.Length() > longRoadLength {
			groups = append(groups, group)
		}
	}
	return groups
}

// CountStreets returns the number of distinct street candidates among the
// detected segments.
func CountStreets(segments []Segment) int {
	return len(GroupParallel(segments))
}

// anglesParallel handles the 180-degree wraparound: a line at 170 degrees is
// parallel to one at -5.
func anglesParallel(a, b float64) bool {
	diff := math.Abs(a - b)
	if diff > 180 {
		diff = 360 - diff
	}
	return diff <= parallelAngleThreshold || diff >= 180-parallelAngleThreshold
}
