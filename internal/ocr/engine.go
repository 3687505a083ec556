// Package ocr recognizes text on receipt images. It runs a cascade of
// recognition strategies over preprocessed image variants, scores each
// result, and picks the most plausible text for downstream field extraction.
package ocr

import (
	"context"
	"image"

	"github.com/scanstation/receipt-ocr/internal/models"
)

// PageSegMode selects the page layout model the recognizer assumes.
type PageSegMode int

const (
	// PSMSingleColumn assumes a single column of variable-height text,
	// which matches the narrow layout of most printed receipts.
	PSMSingleColumn PageSegMode = 4
	// PSMUniformBlock assumes one uniform block of text.
	PSMUniformBlock PageSegMode = 6
)

// Result holds the recognized text and, when the engine provides them, the
// per-word bounding boxes.
type Result struct {
	Text  string
	Words []models.RecognizedWord
}

// Engine abstracts the character recognizer so the pipeline can run against
// a real Tesseract installation or a test double.
type Engine interface {
	// Available reports whether the recognizer can run at all. Callers
	// must check it before Recognize; an unavailable engine makes the
	// whole pipeline degrade to empty results rather than fail.
	Available() bool
	Recognize(ctx context.Context, img image.Image, mode PageSegMode) (Result, error)
}
