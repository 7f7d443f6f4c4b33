package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/civiltrace/plancheck/internal/quality"
)

// Config is the full set of run-time tunables.
type Config struct {
	// Keyword is the sheet type to locate.
	Keyword string

	// TOCDepth is how many leading pages to scan for a table of contents.
	TOCDepth int

	// MinScore is the weighted-scan acceptance threshold.
	MinScore int

	// DPI is the rasterization resolution. All pixel thresholds assume it.
	DPI int

	// ConfidenceFloor drops OCR labels below this confidence (0-100).
	ConfidenceFloor float64

	// MinSeverity is the least severe overlap worth reporting.
	MinSeverity quality.Severity

	// ProximityRules maps feature type to maximum label distance in pixels.
	ProximityRules map[string]float64

	// MaxLabelDistance bounds the contour-label spatial filter.
	MaxLabelDistance float64

	// MaxDetectSide is the pixel budget for line detection: rasters whose
	// longest side exceeds it are downscaled before edge detection, since
	// the Hough accumulator grows quadratically with raster size. Detected
	// geometry is reported in full-resolution coordinates regardless.
	MaxDetectSide int

	// SampleCount and IntensityThreshold drive line-style sampling.
	SampleCount        int
	IntensityThreshold uint8

	// ExistingDashed selects the drafting convention: existing grade dashed,
	// proposed solid.
	ExistingDashed bool
}

// Default returns the production configuration.
func Default() Config {
	return Config{
		Keyword:            "EROSION AND SEDIMENT CONTROL",
		TOCDepth:           10,
		MinScore:           8,
		DPI:                300,
		ConfidenceFloor:    40,
		MinSeverity:        quality.SeverityMinor,
		ProximityRules:     quality.DefaultProximityRules(),
		MaxLabelDistance:   150,
		MaxDetectSide:      2000,
		SampleCount:        50,
		IntensityThreshold: 128,
		ExistingDashed:     true,
	}
}

// fileConfig is the YAML shape of an override file. Pointers distinguish
// "absent" from a deliberate zero so an override file only needs the keys it
// changes.
type fileConfig struct {
	Keyword            *string            `yaml:"keyword"`
	TOCDepth           *int               `yaml:"toc_depth"`
	MinScore           *int               `yaml:"min_score"`
	DPI                *int               `yaml:"dpi"`
	ConfidenceFloor    *float64           `yaml:"confidence_floor"`
	MinSeverity        *quality.Severity  `yaml:"min_severity"`
	ProximityRules     map[string]float64 `yaml:"proximity_rules"`
	MaxLabelDistance   *float64           `yaml:"max_label_distance"`
	MaxDetectSide      *int               `yaml:"max_detect_side"`
	SampleCount        *int               `yaml:"sample_count"`
	IntensityThreshold *uint8             `yaml:"intensity_threshold"`
	ExistingDashed     *bool              `yaml:"existing_dashed"`
}

// Load reads a YAML override file and merges it over the defaults. An empty
// path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if file.Keyword != nil {
		cfg.Keyword = *file.Keyword
	}
	if file.TOCDepth != nil {
		cfg.TOCDepth = *file.TOCDepth
	}
	if file.MinScore != nil {
		cfg.MinScore = *file.MinScore
	}
	if file.DPI != nil {
		cfg.DPI = *file.DPI
	}
	if file.ConfidenceFloor != nil {
		cfg.ConfidenceFloor = *file.ConfidenceFloor
	}
	if file.MinSeverity != nil {
		cfg.MinSeverity = *file.MinSeverity
	}
	if len(file.ProximityRules) > 0 {
		cfg.ProximityRules = file.ProximityRules
	}
	if file.MaxLabelDistance != nil {
		cfg.MaxLabelDistance = *file.MaxLabelDistance
	}
	if file.MaxDetectSide != nil {
		cfg.MaxDetectSide = *file.MaxDetectSide
	}
	if file.SampleCount != nil {
		cfg.SampleCount = *file.SampleCount
	}
	if file.IntensityThreshold != nil {
		cfg.IntensityThreshold = *file.IntensityThreshold
	}
	if file.ExistingDashed != nil {
		cfg.ExistingDashed = *file.ExistingDashed
	}
	return cfg, nil
}
