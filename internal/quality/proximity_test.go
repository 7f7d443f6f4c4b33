package quality

import (
	"testing"

	"github.com/civiltrace/plancheck/internal/geometry"
	"github.com/civiltrace/plancheck/internal/model"
)

func TestClassifyLabelType(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"SCE", TypeSCE},
		{"STABILIZED CONSTRUCTION ENTRANCE", TypeSCE},
		{"CONC WASH", TypeConcWash},
		{"CONCRETE WASHOUT", TypeConcWash},
		{"WASH OUT AREA", TypeConcWash},
		{"EXISTING 635", TypeContour},
		{"PROP. 636.0", TypeContour},
		{"CONTOUR", TypeContour},
		{"635.0", TypeContour},
		{"1250", TypeContour},
		{"MAIN STREET", TypeStreet},
		{"OAK RD", TypeStreet},
		{"ELM DRIVE", TypeStreet},
		{"??", ""},
		{"X1", ""},
	}

	for _, tt := range tests {
		if got := ClassifyLabelType(tt.text); got != tt.want {
			t.Errorf("ClassifyLabelType(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestProximityWithinThreshold(t *testing.T) {
	labels := []model.Label{label("SCE", 100, 100, 40, 20, 90)}
	features := map[string][]geometry.Point{
		TypeSCE: {{X: 150, Y: 150}}, // ~56px from center (120,110)
	}
	got := ValidateProximity(labels, features, DefaultProximityConfig())
	if len(got) != 0 {
		t.Errorf("label within threshold should produce no findings, got %d", len(got))
	}
}

func TestProximityBeyondThresholdWarning(t *testing.T) {
	// Center (120,110); feature 250px right: between 200 and 300 (1.5x).
	labels := []model.Label{label("SCE", 100, 100, 40, 20, 90)}
	features := map[string][]geometry.Point{
		TypeSCE: {{X: 370, Y: 110}},
	}
	got := ValidateProximity(labels, features, DefaultProximityConfig())
	if len(got) != 1 {
		t.Fatalf("expected one finding, got %d", len(got))
	}
	if got[0].Severity != SeverityWarning {
		t.Errorf("expected warning, got %s", got[0].Severity)
	}
	if got[0].NearestDistance == nil || *got[0].NearestDistance != 250 {
		t.Errorf("expected nearest distance 250, got %v", got[0].NearestDistance)
	}
}

func TestProximityBeyondErrorMultiplier(t *testing.T) {
	// 400px > 1.5 * 200.
	labels := []model.Label{label("SCE", 100, 100, 40, 20, 90)}
	features := map[string][]geometry.Point{
		TypeSCE: {{X: 520, Y: 110}},
	}
	got := ValidateProximity(labels, features, DefaultProximityConfig())
	if len(got) != 1 {
		t.Fatalf("expected one finding, got %d", len(got))
	}
	if got[0].Severity != SeverityError {
		t.Errorf("expected error severity, got %s", got[0].Severity)
	}
}

func TestProximityNoMatchingFeatures(t *testing.T) {
	labels := []model.Label{label("CONCRETE WASHOUT", 100, 100, 120, 20, 90)}
	got := ValidateProximity(labels, map[string][]geometry.Point{}, DefaultProximityConfig())
	if len(got) != 1 {
		t.Fatalf("expected one finding, got %d", len(got))
	}
	if got[0].NearestDistance != nil {
		t.Errorf("absent feature type must report nil distance, got %v", *got[0].NearestDistance)
	}
	if got[0].Severity != SeverityWarning {
		t.Errorf("absent feature type is a warning, got %s", got[0].Severity)
	}
}

func TestProximityNearestOfSeveralFeatures(t *testing.T) {
	labels := []model.Label{label("635.0", 0, 0, 40, 20, 90)}
	features := map[string][]geometry.Point{
		TypeContour: {{X: 2000, Y: 2000}, {X: 30, Y: 10}, {X: 900, Y: 0}},
	}
	got := ValidateProximity(labels, features, DefaultProximityConfig())
	if len(got) != 0 {
		t.Errorf("nearest feature is 10px away, expected no findings, got %d", len(got))
	}
}

func TestProximitySkipsUnclassifiableLabels(t *testing.T) {
	labels := []model.Label{label("##@!", 100, 100, 40, 20, 90)}
	got := ValidateProximity(labels, map[string][]geometry.Point{}, DefaultProximityConfig())
	if len(got) != 0 {
		t.Errorf("unclassifiable labels are skipped, not flagged; got %d findings", len(got))
	}
}

func TestProximitySkipsTypesWithoutRules(t *testing.T) {
	labels := []model.Label{label("SCE", 100, 100, 40, 20, 90)}
	cfg := DefaultProximityConfig()
	cfg.Rules = map[string]float64{TypeContour: 150} // no SCE rule
	got := ValidateProximity(labels, map[string][]geometry.Point{}, cfg)
	if len(got) != 0 {
		t.Errorf("types without a distance rule are skipped, got %d findings", len(got))
	}
}

func TestProximitySkipsLowConfidence(t *testing.T) {
	labels := []model.Label{label("SCE", 100, 100, 40, 20, 10)}
	got := ValidateProximity(labels, map[string][]geometry.Point{}, DefaultProximityConfig())
	if len(got) != 0 {
		t.Errorf("low-confidence labels must be filtered, got %d findings", len(got))
	}
}
