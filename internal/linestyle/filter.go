package linestyle

import (
	"strconv"
	"strings"

	"github.com/civiltrace/plancheck/internal/geometry"
	"github.com/civiltrace/plancheck/internal/model"
)

// FilterConfig controls the label-driven spatial filter.
type FilterConfig struct {
	// MaxLabelDistance is the furthest a segment may sit from a contour
	// label (perpendicular distance, pixels) and still be kept.
	MaxLabelDistance float64

	// MinElevation and MaxElevation bound the plausible elevation values
	// used to recognize bare-number contour labels.
	MinElevation float64
	MaxElevation float64

	// ConfidenceFloor drops labels below this OCR confidence.
	ConfidenceFloor float64
}

// DefaultFilterConfig returns the production defaults.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MaxLabelDistance: 150,
		MinElevation:     100,
		MaxElevation:     9999,
		ConfidenceFloor:  40,
	}
}

func (c FilterConfig) withDefaults() FilterConfig {
	d := DefaultFilterConfig()
	if c.MaxLabelDistance <= 0 {
		c.MaxLabelDistance = d.MaxLabelDistance
	}
	if c.MinElevation <= 0 {
		c.MinElevation = d.MinElevation
	}
	if c.MaxElevation <= 0 {
		c.MaxElevation = d.MaxElevation
	}
	if c.ConfidenceFloor <= 0 {
		c.ConfidenceFloor = d.ConfidenceFloor
	}
	return c
}

// FilterResult is the outcome of narrowing candidates to contour lines.
type FilterResult struct {
	// Kept are the segments within range of at least one contour label.
	Kept []Classified `json:"kept"`

	// TotalCandidates is the classified-segment count before filtering.
	TotalCandidates int `json:"total_candidates"`

	// FilterEffectiveness is 1 - kept/total: how much irrelevant line
	// work the labels eliminated.
	FilterEffectiveness float64 `json:"filter_effectiveness"`

	// FilterSkipped is true when no contour labels were found, in which
	// case Kept is the full candidate set and the caller should fall back
	// to sheet-wide style checking.
	FilterSkipped bool `json:"filter_skipped"`
}

// IsContourLabel reports whether label text describes an elevation line,
// either by keyword or by being a number in the plausible elevation range.
func IsContourLabel(text string, cfg FilterConfig) bool {
	upper := strings.ToUpper(strings.TrimSpace(text))
	for _, kw := range []string{"EXIST", "PROP", "CONTOUR"} {
		if strings.Contains(upper, kw) {
			return true
		}
	}

	cleaned := strings.TrimSuffix(strings.TrimPrefix(upper, "EX."), "'")
	value, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil {
		return false
	}
	return value >= cfg.MinElevation && value <= cfg.MaxElevation
}

// FilterByContourLabels keeps only the segments within MaxLabelDistance of
// at least one contour label's center.
//
// On a full sheet this is what turns hundreds of detected lines (streets,
// lot lines, border ruling) into the handful that are actually contours.
// With zero contour labels the filter cannot run; everything passes through
// and FilterSkipped tells the caller to treat the result accordingly.
func FilterByContourLabels(classified []Classified, labels []model.Label, cfg FilterConfig) FilterResult {
	cfg = cfg.withDefaults()
	result := FilterResult{TotalCandidates: len(classified)}

	var centers []geometry.Point
	for _, l := range model.FilterByConfidence(labels, cfg.ConfidenceFloor) {
		if IsContourLabel(l.Text, cfg) {
			centers = append(centers, l.Box.Center())
		}
	}

	if len(centers) == 0 {
		result.Kept = classified
		result.FilterSkipped = true
		return result
	}

	for _, c := range classified {
		if nearAnyLabel(c, centers, cfg.MaxLabelDistance) {
			result.Kept = append(result.Kept, c)
		}
	}

	if result.TotalCandidates > 0 {
		result.FilterEffectiveness = 1 - float64(len(result.Kept))/float64(result.TotalCandidates)
	}
	return result
}

func nearAnyLabel(c Classified, centers []geometry.Point, maxDistance float64) bool {
	for _, center := range centers {
		if geometry.PointToLineDistance(center, c.Segment.P1, c.Segment.P2) <= maxDistance {
			return true
		}
	}
	return false
}
