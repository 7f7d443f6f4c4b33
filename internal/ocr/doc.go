// Package ocr recognizes text on rendered sheet rasters. The Tesseract
// engine produces word-level labels with bounding boxes and confidence
// scores; a result cache keeps repeated passes over the same sheet from
// re-running recognition.
package ocr
