// Package classify assigns expense categories to processed receipts using a
// language-model backend.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/scanstation/receipt-ocr/internal/models"
)

// Prediction is a category assignment with the model's self-reported
// confidence.
type Prediction struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// Classifier categorizes a receipt from its recognized text, optionally
// aided by the PNG-encoded image for vision-capable backends.
type Classifier interface {
	Predict(ctx context.Context, text string, imagePNG []byte) (Prediction, error)
	Close() error
}

// New builds the classifier named by cfg.Classifier.Provider.
func New(cfg *models.Config) (Classifier, error) {
	switch cfg.Classifier.Provider {
	case "openai":
		return NewOpenAI(cfg.Classifier.OpenAI.APIKey, cfg.Classifier.OpenAI.BaseURL,
			cfg.Classifier.OpenAI.Model, cfg.Categories)
	case "gemini":
		return NewGemini(cfg.Classifier.Gemini.APIKey, cfg.Classifier.Gemini.Model, cfg.Categories)
	default:
		return nil, fmt.Errorf("unknown classifier provider: %s", cfg.Classifier.Provider)
	}
}

func buildPrompt(categories []string, text string) string {
	return fmt.Sprintf(`Classify the following receipt into exactly one of these expense categories:
%s

Receipt text:
%s

Respond with ONLY a JSON object, no other text:
{"category": "<one of the categories above>", "confidence": <0.0-1.0>}`,
		strings.Join(categories, ", "), text)
}

// parsePrediction tolerates markdown fences and leading chatter around the
// JSON object models tend to produce.
func parsePrediction(response string) (Prediction, error) {
	text := strings.TrimSpace(response)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return Prediction{}, fmt.Errorf("no JSON object in classifier response")
	}

	var pred Prediction
	if err := json.Unmarshal([]byte(text[start:end+1]), &pred); err != nil {
		return Prediction{}, fmt.Errorf("parsing classifier response: %w", err)
	}
	if pred.Category == "" {
		return Prediction{}, fmt.Errorf("classifier returned empty category")
	}
	if pred.Confidence < 0 {
		pred.Confidence = 0
	}
	if pred.Confidence > 1 {
		pred.Confidence = 1
	}
	return pred, nil
}
