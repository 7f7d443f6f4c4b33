package linestyle

import (
	"image"

	"github.com/civiltrace/plancheck/internal/detect"
)

// Style is the drafting style of a line segment.
type Style string

// Line styles. Unknown segments are excluded from all further processing.
const (
	StyleSolid   Style = "solid"
	StyleDashed  Style = "dashed"
	StyleUnknown Style = "unknown"
)

// Classified pairs a segment with its detected style.
type Classified struct {
	Segment detect.Segment `json:"segment"`

	Style Style `json:"style"`

	// Confidence is 0-1: coverage for solid lines, transition density for
	// dashed ones.
	Confidence float64 `json:"confidence"`

	// Coverage is the fraction of sample points that landed on ink.
	Coverage float64 `json:"coverage"`

	// Transitions counts ink/gap alternations along the segment.
	Transitions int `json:"transitions"`
}

// ClassifierConfig controls intensity sampling.
type ClassifierConfig struct {
	// SampleCount is how many equally spaced points to read per segment.
	SampleCount int

	// IntensityThreshold binarizes samples: gray values strictly below it
	// count as ink on a white-background drawing.
	IntensityThreshold uint8
}

// DefaultClassifierConfig returns the production defaults.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		SampleCount:        50,
		IntensityThreshold: 128,
	}
}

func (c ClassifierConfig) withDefaults() ClassifierConfig {
	d := DefaultClassifierConfig()
	// Interpolation needs two endpoints; a single sample cannot describe a
	// line style.
	if c.SampleCount < 2 {
		c.SampleCount = d.SampleCount
	}
	if c.IntensityThreshold == 0 {
		c.IntensityThreshold = d.IntensityThreshold
	}
	return c
}

// Classify samples pixel intensity along the segment and decides its style.
//
// Solid: coverage > 0.8 with fewer than 4 transitions.
// Dashed: coverage >= 0.3 with at least 4 transitions.
// Anything else is unknown.
func Classify(gray *image.Gray, seg detect.Segment, cfg ClassifierConfig) Classified {
	cfg = cfg.withDefaults()

	inked := sampleSegment(gray, seg, cfg)
	coverage, transitions := summarize(inked)

	c := Classified{
		Segment:     seg,
		Coverage:    coverage,
		Transitions: transitions,
	}

	switch {
	case coverage > 0.8 && transitions < 4:
		c.Style = StyleSolid
		c.Confidence = coverage
	case coverage >= 0.3 && transitions >= 4:
		c.Style = StyleDashed
		c.Confidence = float64(transitions) / 8
		if c.Confidence > 1 {
			c.Confidence = 1
		}
	default:
		c.Style = StyleUnknown
	}
	return c
}

// ClassifyAll classifies every candidate and drops the unknowns.
func ClassifyAll(gray *image.Gray, segments []detect.Segment, cfg ClassifierConfig) []Classified {
	classified := make([]Classified, 0, len(segments))
	for _, seg := range segments {
		c := Classify(gray, seg, cfg)
		if c.Style == StyleUnknown {
			continue
		}
		classified = append(classified, c)
	}
	return classified
}

// sampleSegment reads N equally spaced points along the segment and
// binarizes each against the intensity threshold. Out-of-bounds samples read
// as gaps.
func sampleSegment(gray *image.Gray, seg detect.Segment, cfg ClassifierConfig) []bool {
	bounds := gray.Bounds()
	inked := make([]bool, cfg.SampleCount)

	for i := 0; i < cfg.SampleCount; i++ {
		t := float64(i) / float64(cfg.SampleCount-1)
		x := int(seg.P1.X + t*(seg.P2.X-seg.P1.X))
		y := int(seg.P1.Y + t*(seg.P2.Y-seg.P1.Y))

		if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		inked[i] = gray.GrayAt(x, y).Y < cfg.IntensityThreshold
	}
	return inked
}

func summarize(inked []bool) (coverage float64, transitions int) {
	if len(inked) == 0 {
		return 0, 0
	}
	covered := 0
	for i, ink := range inked {
		if ink {
			covered++
		}
		if i > 0 && ink != inked[i-1] {
			transitions++
		}
	}
	return float64(covered) / float64(len(inked)), transitions
}
