// Package model holds the data types shared between the OCR layer and the
// quality checks, so the pure-algorithm packages do not depend on the
// cgo-backed OCR engine.
package model
