package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/civiltrace/plancheck/internal/config"
	"github.com/civiltrace/plancheck/internal/document"
	"github.com/civiltrace/plancheck/internal/geometry"
	"github.com/civiltrace/plancheck/internal/model"
	"github.com/civiltrace/plancheck/internal/ocr"
	"github.com/civiltrace/plancheck/internal/raster"
	"github.com/civiltrace/plancheck/internal/render"
	"github.com/civiltrace/plancheck/internal/validate"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	var (
		pdfPath     = flag.String("pdf", "", "drawing set PDF to search for the target sheet (required)")
		rasterPath  = flag.String("raster", "", "rendered image of the located sheet (required)")
		rasterDir   = flag.String("raster-dir", "", "directory of page rasters named page-<n>.png, used instead of -raster")
		configPath  = flag.String("config", "", "YAML config overriding the default thresholds")
		regionSpec  = flag.String("region", "", "restrict OCR to a sheet region as x,y,w,h (e.g. for the legend panel)")
		overlayPath = flag.String("overlay", "", "write a review overlay PNG to this path")
		showVersion = flag.Bool("version", false, "print version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("plancheck %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if *pdfPath == "" || (*rasterPath == "" && *rasterDir == "") {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	doc, err := document.OpenPDF(*pdfPath)
	if err != nil {
		log.Fatalf("Document error: %v", err)
	}
	defer doc.Close()

	recognizer := &sheetRecognizer{engine: ocr.NewTesseract()}
	if *regionSpec != "" {
		region, err := parseRegion(*regionSpec)
		if err != nil {
			log.Fatalf("Region error: %v", err)
		}
		recognizer.region = &region
	}

	runner := &validate.Runner{
		Doc: doc,
		Raster: &fileRasterizer{
			cache:  raster.NewCache(),
			single: *rasterPath,
			dir:    *rasterDir,
		},
		OCR:   recognizer,
		Cache: ocr.NewResultCache(),
		Cfg:   cfg,
	}

	report, err := runner.Run()
	if err != nil {
		log.Fatalf("Validation error: %v", err)
	}

	if *overlayPath != "" && report.Location != nil {
		if err := writeOverlay(*overlayPath, runner.Raster, report); err != nil {
			log.Fatalf("Overlay error: %v", err)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		log.Fatalf("Output error: %v", err)
	}
}

// sheetRecognizer runs whole-sheet OCR, or region OCR when the operator has
// narrowed the search to part of the sheet.
type sheetRecognizer struct {
	engine *ocr.Tesseract
	region *geometry.Rect
}

func (s *sheetRecognizer) Words(img image.Image) ([]model.Label, error) {
	if s.region != nil {
		return s.engine.WordsInRegion(img, *s.region)
	}
	return s.engine.Words(img)
}

// parseRegion reads an x,y,w,h spec into a rect.
func parseRegion(spec string) (geometry.Rect, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 4 {
		return geometry.Rect{}, fmt.Errorf("region must be x,y,w,h, got %q", spec)
	}
	vals := make([]int, 4)
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return geometry.Rect{}, fmt.Errorf("bad region component %q: %w", part, err)
		}
		vals[i] = v
	}
	return geometry.NewRect(vals[0], vals[1], vals[2], vals[3])
}

// fileRasterizer serves pre-rendered sheet images. A single path serves any
// page; a directory resolves page-<n>.png by 1-based page number.
type fileRasterizer struct {
	cache  *raster.Cache
	single string
	dir    string
}

func (f *fileRasterizer) Rasterize(pageIndex int) (image.Image, error) {
	path := f.single
	if path == "" {
		path = filepath.Join(f.dir, fmt.Sprintf("page-%d.png", pageIndex+1))
	}
	return f.cache.Load(path)
}

func writeOverlay(path string, rasterizer validate.Rasterizer, report *validate.Report) error {
	img, err := rasterizer.Rasterize(report.Location.PageIndex)
	if err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create overlay file: %w", err)
	}
	defer out.Close()

	overlay := render.Overlay(img, report.Labels, report.Overlaps, report.Lines.Kept)
	return render.WritePNG(out, overlay)
}
