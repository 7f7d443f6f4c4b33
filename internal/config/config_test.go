package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/civiltrace/plancheck/internal/quality"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plancheck.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultValues(t *testing.T) {
	cfg := Default()
	if cfg.MinScore != 8 || cfg.TOCDepth != 10 || cfg.DPI != 300 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.ConfidenceFloor != 40 || cfg.MaxLabelDistance != 150 {
		t.Errorf("unexpected thresholds %+v", cfg)
	}
	if cfg.MaxDetectSide != 2000 {
		t.Errorf("line-detection pixel budget defaults to 2000, got %d", cfg.MaxDetectSide)
	}
	if !cfg.ExistingDashed {
		t.Error("existing grade defaults to dashed")
	}
	if cfg.ProximityRules["SCE"] != 200 || cfg.ProximityRules["street"] != 300 {
		t.Errorf("unexpected proximity rules %v", cfg.ProximityRules)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("empty path must not error: %v", err)
	}
	if cfg.MinScore != 8 || cfg.Keyword != Default().Keyword {
		t.Errorf("empty path returns defaults, got %+v", cfg)
	}
}

func TestLoadPartialOverride(t *testing.T) {
	path := writeConfig(t, "min_score: 12\nmin_severity: warning\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MinScore != 12 {
		t.Errorf("min_score override lost, got %d", cfg.MinScore)
	}
	if cfg.MinSeverity != quality.SeverityWarning {
		t.Errorf("min_severity override lost, got %s", cfg.MinSeverity)
	}
	// Untouched keys keep their defaults.
	if cfg.TOCDepth != 10 || !cfg.ExistingDashed {
		t.Errorf("untouched defaults changed: %+v", cfg)
	}
}

func TestLoadExplicitFalseBoolean(t *testing.T) {
	path := writeConfig(t, "existing_dashed: false\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ExistingDashed {
		t.Error("explicit false must override the true default")
	}
}

func TestLoadProximityRules(t *testing.T) {
	path := writeConfig(t, "proximity_rules:\n  SCE: 500\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ProximityRules["SCE"] != 500 {
		t.Errorf("rule override lost: %v", cfg.ProximityRules)
	}
	// The rule table replaces wholesale.
	if _, ok := cfg.ProximityRules["street"]; ok {
		t.Error("override replaces the whole rule table")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing file must error")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "min_score: [not a number\n")
	if _, err := Load(path); err == nil {
		t.Error("malformed YAML must error")
	}
}
