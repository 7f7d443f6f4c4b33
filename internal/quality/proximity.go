package quality

import (
	"strings"

	"github.com/civiltrace/plancheck/internal/geometry"
	"github.com/civiltrace/plancheck/internal/model"
)

// Feature types recognized by the label classifier. Keys of the proximity
// rule table use these names.
const (
	TypeSCE      = "SCE"
	TypeConcWash = "CONC WASH"
	TypeContour  = "contour"
	TypeStreet   = "street"
)

// DefaultProximityRules is the per-type maximum label-to-feature distance in
// pixels at the 300 DPI reference resolution.
func DefaultProximityRules() map[string]float64 {
	return map[string]float64{
		TypeContour:   150,
		TypeSCE:       200,
		TypeConcWash:  250,
		"storm_drain": 200,
		TypeStreet:    300,
	}
}

// Proximity describes a label that is detached from every feature of its
// type, or whose type has no features on the sheet at all.
type Proximity struct {
	// LabelText is the flagged label's text.
	LabelText string `json:"label_text"`

	// LabelType is the classified feature type.
	LabelType string `json:"label_type"`

	// NearestDistance is the distance in pixels to the closest feature of
	// the matching type. Nil means no such feature exists on the sheet,
	// which is a distinct failure mode from "too far".
	NearestDistance *float64 `json:"nearest_distance"`

	// ExpectedMax is the rule-table threshold for the type.
	ExpectedMax float64 `json:"expected_max"`

	// Severity is warning, or error when the distance exceeds 1.5x the
	// threshold.
	Severity Severity `json:"severity"`
}

// ProximityConfig controls proximity validation.
type ProximityConfig struct {
	// ConfidenceFloor drops labels below this OCR confidence (0-100).
	ConfidenceFloor float64

	// Rules maps feature type to maximum distance in pixels. Types absent
	// from the table are not validated.
	Rules map[string]float64
}

// DefaultProximityConfig returns the production defaults.
func DefaultProximityConfig() ProximityConfig {
	return ProximityConfig{
		ConfidenceFloor: 40,
		Rules:           DefaultProximityRules(),
	}
}

var streetSuffixes = []string{
	"ST", "STREET", "RD", "ROAD", "DR", "DRIVE", "WAY", "LN", "LANE", "AVE", "AVENUE",
}

// ClassifyLabelType maps label text to a feature type, or "" when the label
// is none of the types validated spatially. First matching rule wins.
func ClassifyLabelType(text string) string {
	upper := strings.ToUpper(text)

	if strings.Contains(upper, "SCE") || strings.Contains(upper, "CONSTRUCTION ENTRANCE") {
		return TypeSCE
	}

	if strings.Contains(upper, "CONC") && strings.Contains(upper, "WASH") {
		return TypeConcWash
	}
	if strings.Contains(upper, "WASHOUT") || strings.Contains(upper, "WASH OUT") {
		return TypeConcWash
	}

	for _, kw := range []string{"EXIST", "PROP", "CONTOUR"} {
		if strings.Contains(upper, kw) {
			return TypeContour
		}
	}
	if isElevationNumber(upper) {
		return TypeContour
	}

	for _, suffix := range streetSuffixes {
		if strings.Contains(upper, suffix) {
			return TypeStreet
		}
	}

	return ""
}

// isElevationNumber reports whether the text looks like a bare elevation
// value: at least three characters of digits with optional "." and "-".
func isElevationNumber(upper string) bool {
	stripped := strings.NewReplacer(".", "", "-", "").Replace(upper)
	if len(upper) < 3 || stripped == "" {
		return false
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidateProximity checks every classified label against the features of
// its type.
//
// Unclassifiable labels are skipped, not flagged: OCR noise produces plenty
// of fragments that describe nothing. A classified label whose type has no
// features anywhere on the sheet yields a warning with a nil distance.
// Otherwise the minimum center-to-feature distance is compared against the
// type's threshold; past 1.5x the threshold the finding escalates to error.
func ValidateProximity(labels []model.Label, features map[string][]geometry.Point, cfg ProximityConfig) []Proximity {
	if cfg.Rules == nil {
		cfg.Rules = DefaultProximityRules()
	}
	valid := model.FilterByConfidence(labels, cfg.ConfidenceFloor)

	var findings []Proximity
	for _, label := range valid {
		labelType := ClassifyLabelType(label.Text)
		if labelType == "" {
			continue
		}

		maxDistance, ruled := cfg.Rules[labelType]
		if !ruled {
			continue
		}

		typed := features[labelType]
		if len(typed) == 0 {
			findings = append(findings, Proximity{
				LabelText:   label.Text,
				LabelType:   labelType,
				ExpectedMax: maxDistance,
				Severity:    SeverityWarning,
			})
			continue
		}

		nearest := nearestFeatureDistance(label.Box, typed)
		if nearest <= maxDistance {
			continue
		}

		severity := SeverityWarning
		if nearest > maxDistance*1.5 {
			severity = SeverityError
		}
		distance := nearest
		findings = append(findings, Proximity{
			LabelText:       label.Text,
			LabelType:       labelType,
			NearestDistance: &distance,
			ExpectedMax:     maxDistance,
			Severity:        severity,
		})
	}
	return findings
}

// nearestFeatureDistance returns the minimum Euclidean distance from the
// label box center to any feature point. Callers guarantee the feature list
// is non-empty.
func nearestFeatureDistance(box geometry.Rect, features []geometry.Point) float64 {
	center := box.Center()
	nearest := geometry.Distance(center, features[0])
	for _, f := range features[1:] {
		if d := geometry.Distance(center, f); d < nearest {
			nearest = d
		}
	}
	return nearest
}
