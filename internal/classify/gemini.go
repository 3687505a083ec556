package classify

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"github.com/scanstation/receipt-ocr/internal/logger"
)

const defaultGeminiModel = "gemini-1.5-flash"

// GeminiClassifier categorizes receipts through Google Gemini.
type GeminiClassifier struct {
	client     *genai.Client
	model      *genai.GenerativeModel
	categories []string
	log        zerolog.Logger
}

// NewGemini creates a Gemini-backed classifier. The model name is optional.
func NewGemini(apiKey, modelName string, categories []string) (*GeminiClassifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = defaultGeminiModel
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiClassifier{
		client:     client,
		model:      client.GenerativeModel(modelName),
		categories: categories,
		log:        logger.WithComponent("classify-gemini"),
	}, nil
}

// Predict classifies the receipt text, attaching the image when provided.
func (c *GeminiClassifier) Predict(ctx context.Context, text string, imagePNG []byte) (Prediction, error) {
	parts := []genai.Part{genai.Text(buildPrompt(c.categories, text))}
	if len(imagePNG) > 0 {
		// genai.ImageData expects the bare format suffix, not a MIME type.
		parts = append(parts, genai.ImageData("png", imagePNG))
	}

	resp, err := c.model.GenerateContent(ctx, parts...)
	if err != nil {
		return Prediction{}, fmt.Errorf("gemini classification failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return Prediction{}, fmt.Errorf("no response from gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	pred, err := parsePrediction(sb.String())
	if err != nil {
		return Prediction{}, err
	}
	c.log.Debug().Str("category", pred.Category).Float64("confidence", pred.Confidence).Msg("receipt classified")
	return pred, nil
}

// Close releases the underlying gRPC connection.
func (c *GeminiClassifier) Close() error {
	return c.client.Close()
}
