package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/scanstation/receipt-ocr/internal/models"
)

// TesseractEngine recognizes text through the Tesseract C API. Each
// Recognize call uses a fresh client, so the engine is safe for concurrent
// use by the worker pool.
type TesseractEngine struct {
	language string
}

// NewTesseractEngine returns an engine configured for the given language
// code (e.g. "eng"). An empty language falls back to "eng".
func NewTesseractEngine(language string) *TesseractEngine {
	if language == "" {
		language = "eng"
	}
	return &TesseractEngine{language: language}
}

// Available probes the installed Tesseract data files. It returns false when
// the library cannot enumerate any trained language.
func (e *TesseractEngine) Available() bool {
	langs, err := gosseract.GetAvailableLanguages()
	return err == nil && len(langs) > 0
}

// Recognize runs Tesseract over img with the given page segmentation mode.
// Word boxes are best-effort: a failure to fetch them does not fail the call.
func (e *TesseractEngine) Recognize(ctx context.Context, img image.Image, mode PageSegMode) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Result{}, fmt.Errorf("encoding image for recognition: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.language); err != nil {
		return Result{}, fmt.Errorf("setting language %q: %w", e.language, err)
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(mode)); err != nil {
		return Result{}, fmt.Errorf("setting page segmentation mode %d: %w", mode, err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return Result{}, fmt.Errorf("loading image into recognizer: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return Result{}, fmt.Errorf("recognizing text: %w", err)
	}

	res := Result{Text: strings.TrimSpace(text)}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return res, nil
	}
	for _, b := range boxes {
		word := strings.TrimSpace(b.Word)
		conf := int(b.Confidence)
		if word == "" || conf <= 0 {
			continue
		}
		res.Words = append(res.Words, models.RecognizedWord{
			Text:       word,
			Confidence: conf,
			Left:       b.Box.Min.X,
			Top:        b.Box.Min.Y,
			Width:      b.Box.Dx(),
			Height:     b.Box.Dy(),
		})
	}
	return res, nil
}
