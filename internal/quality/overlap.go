package quality

import (
	"github.com/civiltrace/plancheck/internal/geometry"
	"github.com/civiltrace/plancheck/internal/model"
)

// Overlap describes a collision between the bounding boxes of two labels.
type Overlap struct {
	// TextA and TextB are the colliding labels' text.
	TextA string `json:"text_a"`
	TextB string `json:"text_b"`

	// IntersectionArea is the collision area in square pixels.
	IntersectionArea int `json:"intersection_area"`

	// OverlapPercent is how much of the smaller box is covered, 0-100.
	OverlapPercent float64 `json:"overlap_percent"`

	// Severity classifies the collision by OverlapPercent.
	Severity Severity `json:"severity"`

	// Centroid is the center of the intersection region.
	Centroid geometry.Point `json:"centroid"`
}

// OverlapConfig controls overlap detection.
type OverlapConfig struct {
	// ConfidenceFloor drops labels below this OCR confidence (0-100)
	// before any pairing.
	ConfidenceFloor float64

	// MinSeverity is the least severe finding worth reporting.
	MinSeverity Severity
}

// DefaultOverlapConfig returns the production defaults.
func DefaultOverlapConfig() OverlapConfig {
	return OverlapConfig{
		ConfidenceFloor: 40,
		MinSeverity:     SeverityMinor,
	}
}

// DetectOverlaps finds every pair of labels whose bounding boxes collide
// with at least the configured severity.
//
// Pairs with identical text are skipped: the OCR engine regularly emits two
// detections for one physical label, and flagging those would drown real
// findings in noise. Boxes that merely touch along an edge have zero
// intersection area and are not overlaps.
//
// The pair scan is O(n^2); n is tens to low hundreds of labels per sheet, so
// no spatial index is warranted.
func DetectOverlaps(labels []model.Label, cfg OverlapConfig) []Overlap {
	if cfg.MinSeverity == "" {
		cfg.MinSeverity = SeverityMinor
	}
	valid := model.FilterByConfidence(labels, cfg.ConfidenceFloor)

	var findings []Overlap
	for i := 0; i < len(valid); i++ {
		for j := i + 1; j < len(valid); j++ {
			a, b := valid[i], valid[j]
			if a.Text == b.Text {
				continue
			}

			inter, ok := a.Box.Intersect(b.Box)
			if !ok {
				continue
			}

			percent := overlapPercent(a.Box, b.Box, inter)
			severity := ClassifyOverlapSeverity(percent)
			if !severity.AtLeast(cfg.MinSeverity) {
				continue
			}

			findings = append(findings, Overlap{
				TextA:            a.Text,
				TextB:            b.Text,
				IntersectionArea: inter.Area(),
				OverlapPercent:   percent,
				Severity:         severity,
				Centroid:         inter.Center(),
			})
		}
	}
	return findings
}

// overlapPercent returns how much of the smaller box the intersection
// covers, as a percentage. An empty box yields 0 rather than dividing by
// zero.
func overlapPercent(a, b, inter geometry.Rect) float64 {
	smaller := a.Area()
	if b.Area() < smaller {
		smaller = b.Area()
	}
	if smaller == 0 {
		return 0
	}
	return float64(inter.Area()) / float64(smaller) * 100
}
