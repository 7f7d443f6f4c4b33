package ocr

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"github.com/civiltrace/plancheck/internal/geometry"
	"github.com/civiltrace/plancheck/internal/model"
)

// Minimum bounding-box size for a word to count. Boxes thinner than this are
// recognition artifacts from line work crossing the text band.
const (
	minBoxWidth  = 5
	minBoxHeight = 5
)

// Tesseract runs word recognition through the system tesseract library.
type Tesseract struct {
	// Language is the tesseract language code. Empty means "eng".
	Language string
}

// NewTesseract returns an English-language engine.
func NewTesseract() *Tesseract {
	return &Tesseract{Language: "eng"}
}

// Words recognizes the whole raster at word granularity.
//
// Tesseract wants a file path, so the raster is written to a temporary PNG
// for the duration of the call. Empty words and degenerate boxes are dropped
// before the labels reach spatial validation.
func (t *Tesseract) Words(img image.Image) ([]model.Label, error) {
	tmpPath, err := writeTempPNG(img)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmpPath)

	client := gosseract.NewClient()
	defer client.Close()

	lang := t.Language
	if lang == "" {
		lang = "eng"
	}
	if err := client.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}
	if err := client.SetImage(tmpPath); err != nil {
		return nil, fmt.Errorf("failed to set OCR image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("word recognition failed: %w", err)
	}

	labels := make([]model.Label, 0, len(boxes))
	for _, box := range boxes {
		label, ok := labelFromBox(box.Word, float64(box.Confidence),
			box.Box.Min.X, box.Box.Min.Y, box.Box.Dx(), box.Box.Dy())
		if ok {
			labels = append(labels, label)
		}
	}
	return labels, nil
}

// WordsInRegion crops the raster to the region, recognizes the crop, and
// shifts the resulting boxes back into full-raster coordinates.
func (t *Tesseract) WordsInRegion(img image.Image, region geometry.Rect) ([]model.Label, error) {
	cropped := imaging.Crop(img, image.Rect(region.X, region.Y, region.X+region.W, region.Y+region.H))

	labels, err := t.Words(cropped)
	if err != nil {
		return nil, err
	}
	for i := range labels {
		labels[i].Box.X += region.X
		labels[i].Box.Y += region.Y
	}
	return labels, nil
}

// labelFromBox converts one raw recognition box into a label, rejecting
// empty words and boxes below the minimum size.
func labelFromBox(word string, confidence float64, x, y, w, h int) (model.Label, bool) {
	if word == "" || w < minBoxWidth || h < minBoxHeight {
		return model.Label{}, false
	}
	return model.Label{
		Text:       word,
		Box:        geometry.Rect{X: x, Y: y, W: w, H: h},
		Confidence: confidence,
	}, true
}

func writeTempPNG(img image.Image) (string, error) {
	f, err := os.CreateTemp("", "plancheck-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()

	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to encode temp image: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
