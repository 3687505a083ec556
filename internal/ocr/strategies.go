package ocr

import (
	"context"
	"image"
	"strings"

	"github.com/rs/zerolog"

	"github.com/scanstation/receipt-ocr/internal/logger"
	"github.com/scanstation/receipt-ocr/internal/models"
	"github.com/scanstation/receipt-ocr/internal/region"
)

const (
	// minTextLenPrimary is the acceptance floor for the cropped-image
	// strategies, which should yield substantial text when the crop is
	// right.
	minTextLenPrimary = 20
	// minTextLenFallback is the lower floor used by the later strategies.
	minTextLenFallback = 10
)

// Runner executes the recognition strategy cascade: region-cropped variants
// first, the untouched original next, preprocessed variants last. Every
// attempt's raw text is kept so selection has something to fall back on when
// no attempt passes the quality gate.
type Runner struct {
	engine   Engine
	detector region.Detector
	log      zerolog.Logger
}

// NewRunner wires a runner from a recognizer and a region detector.
func NewRunner(engine Engine, detector region.Detector) *Runner {
	return &Runner{
		engine:   engine,
		detector: detector,
		log:      logger.WithComponent("ocr"),
	}
}

type strategy struct {
	name   string
	mode   PageSegMode
	minLen int
	// rescue admits quality-rejected text when it still carries a receipt
	// keyword or currency amount, marking the candidate as a fallback.
	rescue bool
	image  func() image.Image
}

// Run executes the cascade over the original image and returns the accepted
// candidates plus the raw text of every attempt. The aggressive variant only
// runs when nothing else was accepted.
func (r *Runner) Run(ctx context.Context, original image.Image) ([]models.RecognitionCandidate, []string) {
	cropped := r.detector.DetectAndCrop(original)

	strategies := []strategy{
		{
			name:   "cropped_single_column",
			mode:   PSMSingleColumn,
			minLen: minTextLenPrimary,
			rescue: true,
			image:  func() image.Image { return cropped },
		},
		{
			name:   "cropped_uniform_block",
			mode:   PSMUniformBlock,
			minLen: minTextLenPrimary,
			rescue: true,
			image:  func() image.Image { return cropped },
		},
		{
			name:   "original_uniform_block",
			mode:   PSMUniformBlock,
			minLen: minTextLenFallback,
			image:  func() image.Image { return original },
		},
		{
			name:   "original_single_column",
			mode:   PSMSingleColumn,
			minLen: minTextLenFallback,
			image:  func() image.Image { return original },
		},
		{
			name:   "cropped_light_single_column",
			mode:   PSMSingleColumn,
			minLen: minTextLenFallback,
			image:  func() image.Image { return LightPreprocess(cropped) },
		},
	}

	var accepted []models.RecognitionCandidate
	var rawTexts []string
	for _, s := range strategies {
		cand, raw := r.attempt(ctx, s)
		if raw != "" {
			rawTexts = append(rawTexts, raw)
		}
		if cand != nil {
			accepted = append(accepted, *cand)
		}
	}

	if len(accepted) == 0 {
		cand, raw := r.attempt(ctx, strategy{
			name:   "aggressive_uniform_block",
			mode:   PSMUniformBlock,
			minLen: minTextLenFallback,
			image:  func() image.Image { return AggressivePreprocess(original) },
		})
		if raw != "" {
			rawTexts = append(rawTexts, raw)
		}
		if cand != nil {
			accepted = append(accepted, *cand)
		}
	}

	return accepted, rawTexts
}

// attempt runs one strategy. A recognizer error skips the strategy; it never
// aborts the cascade.
func (r *Runner) attempt(ctx context.Context, s strategy) (*models.RecognitionCandidate, string) {
	res, err := r.engine.Recognize(ctx, s.image(), s.mode)
	if err != nil {
		r.log.Debug().Err(err).Str("strategy", s.name).Msg("recognition attempt failed")
		return nil, ""
	}
	text := strings.TrimSpace(res.Text)
	if text == "" || len(text) <= s.minLen {
		return nil, text
	}

	cand := models.RecognitionCandidate{Strategy: s.name, Text: text, Words: res.Words}
	switch {
	case IsPlausible(text):
		r.log.Debug().Str("strategy", s.name).Int("length", len(text)).Msg("candidate accepted")
		return &cand, text
	case s.rescue && (HasReceiptKeyword(text) || HasCurrencyAmount(text)):
		cand.Fallback = true
		r.log.Debug().Str("strategy", s.name).Int("length", len(text)).Msg("candidate rescued by keyword")
		return &cand, text
	default:
		return nil, text
	}
}
