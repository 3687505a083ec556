// Package pipeline ties region detection, the recognition cascade, and field
// extraction into a single receipt-processing entry point.
package pipeline

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/rs/zerolog"

	"github.com/scanstation/receipt-ocr/internal/extract"
	"github.com/scanstation/receipt-ocr/internal/imaging"
	"github.com/scanstation/receipt-ocr/internal/logger"
	"github.com/scanstation/receipt-ocr/internal/models"
	"github.com/scanstation/receipt-ocr/internal/ocr"
	"github.com/scanstation/receipt-ocr/internal/region"
)

const (
	// minDetailWords triggers a preprocessed retry when the word-geometry
	// pass finds fewer boxes than this.
	minDetailWords = 10
	// detailContrastBoost is the contrast applied on that retry.
	detailContrastBoost = 1.3
)

// Processor runs the full receipt pipeline over decoded images.
type Processor struct {
	engine ocr.Engine
	runner *ocr.Runner
	log    zerolog.Logger
}

// NewProcessor wires a processor from a recognizer and a region detector.
func NewProcessor(engine ocr.Engine, detector region.Detector) *Processor {
	return &Processor{
		engine: engine,
		runner: ocr.NewRunner(engine, detector),
		log:    logger.WithComponent("pipeline"),
	}
}

// Process recognizes img and extracts structured fields from the result.
// When the recognizer is unavailable it returns an empty result and no
// error, letting batch callers skip rather than abort.
func (p *Processor) Process(ctx context.Context, img image.Image) (models.ProcessResult, error) {
	if !p.engine.Available() {
		p.log.Warn().Msg("recognizer unavailable, skipping image")
		return models.ProcessResult{}, nil
	}

	candidates, rawTexts := p.runner.Run(ctx, img)
	text := ocr.SelectBest(candidates, rawTexts)
	words := p.recognizeWords(ctx, img, text != "")

	fields := extract.ParseReceipt(text, words)
	result := models.ProcessResult{
		Text:       text,
		Words:      words,
		Fields:     fields,
		Confidence: extract.Score(fields),
	}
	p.log.Info().
		Int("text_length", len(text)).
		Int("words", len(words)).
		Str("vendor", fields.Vendor).
		Float64("confidence", result.Confidence).
		Msg("receipt processed")
	return result, nil
}

// ProcessFile decodes a JPEG or PNG receipt image from disk and processes it.
func (p *Processor) ProcessFile(ctx context.Context, path string) (models.ProcessResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.ProcessResult{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return models.ProcessResult{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	return p.Process(ctx, img)
}

// recognizeWords runs the word-geometry pass over the untouched original.
// Its boxes are only trusted when the accompanying text passes the quality
// gate, unless no text was selected at all. A sparse result gets one retry
// with light preprocessing, appending rather than replacing.
func (p *Processor) recognizeWords(ctx context.Context, original image.Image, haveText bool) []models.RecognizedWord {
	var words []models.RecognizedWord

	res, err := p.engine.Recognize(ctx, original, ocr.PSMUniformBlock)
	if err != nil {
		p.log.Debug().Err(err).Msg("word detail pass failed")
	} else if ocr.IsPlausible(res.Text) || !haveText {
		words = res.Words
	}

	if len(words) < minDetailWords {
		retry := imaging.AdjustContrast(imaging.Grayscale(original), detailContrastBoost)
		res, err = p.engine.Recognize(ctx, retry, ocr.PSMUniformBlock)
		if err != nil {
			p.log.Debug().Err(err).Msg("word detail retry failed")
		} else {
			words = append(words, res.Words...)
		}
	}
	return words
}
