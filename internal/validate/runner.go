package validate

import (
	"fmt"
	"image"
	"log"
	"strings"

	"github.com/civiltrace/plancheck/internal/checklist"
	"github.com/civiltrace/plancheck/internal/config"
	"github.com/civiltrace/plancheck/internal/detect"
	"github.com/civiltrace/plancheck/internal/document"
	"github.com/civiltrace/plancheck/internal/geometry"
	"github.com/civiltrace/plancheck/internal/linestyle"
	"github.com/civiltrace/plancheck/internal/locator"
	"github.com/civiltrace/plancheck/internal/model"
	"github.com/civiltrace/plancheck/internal/quality"
	"github.com/civiltrace/plancheck/internal/raster"
)

// Line detection floor. Shorter detections on a 300 DPI sheet are text
// strokes and hatching, not plan linework.
const minLineLength = 100

// Rasterizer renders one document page to an image.
type Rasterizer interface {
	Rasterize(pageIndex int) (image.Image, error)
}

// Recognizer produces word-level labels for a raster. Satisfied by the
// Tesseract engine; tests substitute fakes.
type Recognizer interface {
	Words(img image.Image) ([]model.Label, error)
}

// LabelCache memoizes recognition results across runs. Satisfied by
// ocr.ResultCache.
type LabelCache interface {
	Get(key string) ([]model.Label, bool)
	Set(key string, labels []model.Label)
}

// Report aggregates every finding from one sheet validation.
type Report struct {
	// Location is where the target sheet was found. Nil means the document
	// has no such sheet and no further checks ran.
	Location *locator.Location `json:"location"`

	// LabelCount is the number of recognized words after box filtering.
	LabelCount int `json:"label_count"`

	// Labels are the recognized words themselves, for overlay rendering and
	// debugging.
	Labels []model.Label `json:"labels"`

	// Overlaps are label-collision findings.
	Overlaps []quality.Overlap `json:"overlaps"`

	// Proximity are label-detachment findings.
	Proximity []quality.Proximity `json:"proximity"`

	// Lines is the contour-line filter outcome, including the kept
	// classified segments.
	Lines linestyle.FilterResult `json:"lines"`

	// Conventions are drafting-convention findings.
	Conventions []linestyle.ConventionFinding `json:"conventions"`

	// StreetCount is the number of street candidates detected.
	StreetCount int `json:"street_count"`

	// Checklist holds per-element keyword detection results.
	Checklist map[string]checklist.Result `json:"checklist"`

	// ChecklistSummary is the headline pass/fail rollup.
	ChecklistSummary checklist.Summary `json:"checklist_summary"`
}

// Runner wires the pipeline stages together.
type Runner struct {
	Doc    document.Document
	Raster Rasterizer
	OCR    Recognizer
	Cfg    config.Config

	// Cache, when set, memoizes recognition per page so repeated runs over
	// one sheet skip the OCR pass.
	Cache LabelCache

	// Features are known feature locations by type, from symbol detection
	// or prior annotation. Types with no entry produce nil-distance
	// proximity warnings for their labels.
	Features map[string][]geometry.Point

	// Logger defaults to the process logger.
	Logger *log.Logger
}

// Run executes the full pipeline. A document without the target sheet is not
// an error; the report comes back with a nil Location.
func (r *Runner) Run() (*Report, error) {
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}

	loc := locator.Find(r.Doc, locator.Config{
		Keyword:  r.Cfg.Keyword,
		TOCDepth: r.Cfg.TOCDepth,
		MinScore: r.Cfg.MinScore,
	})
	if loc == nil {
		logger.Printf("validate: no %q sheet in document", r.Cfg.Keyword)
		return &Report{}, nil
	}
	logger.Printf("validate: sheet found at page %d via %s", loc.PageIndex+1, loc.Method)

	img, err := r.Raster.Rasterize(loc.PageIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to rasterize page %d: %w", loc.PageIndex, err)
	}

	labels, err := r.recognize(loc.PageIndex, img)
	if err != nil {
		return nil, fmt.Errorf("text recognition failed: %w", err)
	}
	logger.Printf("validate: %d labels recognized", len(labels))

	report := &Report{Location: loc, LabelCount: len(labels), Labels: labels}

	report.Overlaps = quality.DetectOverlaps(labels, quality.OverlapConfig{
		ConfidenceFloor: r.Cfg.ConfidenceFloor,
		MinSeverity:     r.Cfg.MinSeverity,
	})

	// Line detection runs on a budget-bounded raster; everything reported
	// downstream is rescaled to full-resolution coordinates so it lines up
	// with the OCR label boxes.
	scaled := raster.Downscale(img, r.Cfg.MaxDetectSide)
	scale := float64(img.Bounds().Dx()) / float64(scaled.Bounds().Dx())

	gray := raster.PrepareForLines(scaled)
	edges := raster.EdgesFromGray(gray, raster.DefaultEdgeLow, raster.DefaultEdgeHigh)
	segments := detect.Lines(edges, scaledMinLength(scale))

	classified := linestyle.ClassifyAll(gray, segments, linestyle.ClassifierConfig{
		SampleCount:        r.Cfg.SampleCount,
		IntensityThreshold: r.Cfg.IntensityThreshold,
	})
	classified = rescaleClassified(classified, scale)
	segments = rescaleSegments(segments, scale)
	report.StreetCount = detect.CountStreets(segments)
	report.Lines = linestyle.FilterByContourLabels(classified, labels, linestyle.FilterConfig{
		MaxLabelDistance: r.Cfg.MaxLabelDistance,
		ConfidenceFloor:  r.Cfg.ConfidenceFloor,
	})
	report.Conventions = linestyle.CheckConventions(report.Lines.Kept, labels,
		linestyle.ConventionConfig{ExistingDashed: r.Cfg.ExistingDashed})

	report.Proximity = quality.ValidateProximity(labels, r.features(report.Lines.Kept, segments), quality.ProximityConfig{
		ConfidenceFloor: r.Cfg.ConfidenceFloor,
		Rules:           r.Cfg.ProximityRules,
	})

	report.Checklist = checklist.Detect(joinText(labels), nil)
	report.ChecklistSummary = checklist.Summarize(report.Checklist)

	return report, nil
}

// recognize runs OCR on the preprocessed raster, consulting the label cache
// when one is wired in.
func (r *Runner) recognize(pageIndex int, img image.Image) ([]model.Label, error) {
	key := fmt.Sprintf("page-%d", pageIndex)
	if r.Cache != nil {
		if labels, ok := r.Cache.Get(key); ok {
			return labels, nil
		}
	}

	labels, err := r.OCR.Words(raster.PrepareForOCR(img))
	if err != nil {
		return nil, err
	}
	if r.Cache != nil {
		r.Cache.Set(key, labels)
	}
	return labels, nil
}

// scaledMinLength converts the full-resolution line-length floor to the
// downscaled raster's pixels.
func scaledMinLength(scale float64) int {
	scaled := int(minLineLength / scale)
	if scaled < 1 {
		scaled = 1
	}
	return scaled
}

func rescalePoint(p geometry.Point, scale float64) geometry.Point {
	return geometry.Point{X: p.X * scale, Y: p.Y * scale}
}

func rescaleSegments(segments []detect.Segment, scale float64) []detect.Segment {
	if scale == 1 {
		return segments
	}
	out := make([]detect.Segment, len(segments))
	for i, s := range segments {
		out[i] = detect.Segment{P1: rescalePoint(s.P1, scale), P2: rescalePoint(s.P2, scale)}
	}
	return out
}

func rescaleClassified(classified []linestyle.Classified, scale float64) []linestyle.Classified {
	if scale == 1 {
		return classified
	}
	out := make([]linestyle.Classified, len(classified))
	for i, c := range classified {
		c.Segment = detect.Segment{P1: rescalePoint(c.Segment.P1, scale), P2: rescalePoint(c.Segment.P2, scale)}
		out[i] = c
	}
	return out
}

// features merges externally supplied feature points with the ones the line
// stages derive themselves: contour features from kept contour segments and
// street features from street groups.
func (r *Runner) features(kept []linestyle.Classified, segments []detect.Segment) map[string][]geometry.Point {
	features := make(map[string][]geometry.Point, len(r.Features)+2)
	for typ, points := range r.Features {
		features[typ] = append(features[typ], points...)
	}
	for _, c := range kept {
		features[quality.TypeContour] = append(features[quality.TypeContour], c.Segment.Midpoint())
	}
	for _, group := range detect.GroupParallel(segments) {
		for _, s := range group {
			features[quality.TypeStreet] = append(features[quality.TypeStreet], s.Midpoint())
		}
	}
	return features
}

// joinText flattens the recognized labels into the newline-separated text
// block the checklist matcher expects. Labels on roughly the same text band
// share a line so number-near-keyword detection still works.
func joinText(labels []model.Label) string {
	const bandHeight = 30

	var sb strings.Builder
	lastY := -1 << 30
	for _, l := range labels {
		if sb.Len() > 0 {
			if l.Box.Y-lastY > bandHeight {
				sb.WriteByte('\n')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(l.Text)
		lastY = l.Box.Y
	}
	return sb.String()
}
