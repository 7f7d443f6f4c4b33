package model

import "github.com/civiltrace/plancheck/internal/geometry"

// Label is one piece of recognized text on a sheet with its bounding box and
// the OCR engine's confidence for the recognition.
type Label struct {
	// Text is the recognized text content.
	Text string `json:"text"`

	// Box is the bounding box around the text in image-pixel space.
	Box geometry.Rect `json:"box"`

	// Confidence is the OCR confidence score from 0 to 100. OCR output is
	// noisy; every consumer filters on this before spatial reasoning.
	Confidence float64 `json:"confidence"`
}

// FilterByConfidence returns the labels at or above the confidence floor.
// The input slice is never mutated.
func FilterByConfidence(labels []Label, floor float64) []Label {
	kept := make([]Label, 0, len(labels))
	for _, l := range labels {
		if l.Confidence >= floor {
			kept = append(kept, l)
		}
	}
	return kept
}
