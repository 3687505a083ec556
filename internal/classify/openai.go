package classify

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/scanstation/receipt-ocr/internal/logger"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIClassifier categorizes receipts through the OpenAI chat API. A
// custom base URL allows pointing it at any compatible endpoint, including
// local Ollama.
type OpenAIClassifier struct {
	client     *openai.Client
	model      string
	categories []string
	log        zerolog.Logger
}

// NewOpenAI creates an OpenAI-backed classifier. baseURL and model are
// optional.
func NewOpenAI(apiKey, baseURL, model string, categories []string) (*OpenAIClassifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if model == "" {
		model = defaultOpenAIModel
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &OpenAIClassifier{
		client:     openai.NewClientWithConfig(config),
		model:      model,
		categories: categories,
		log:        logger.WithComponent("classify-openai"),
	}, nil
}

// Predict classifies the receipt text, attaching the image when provided.
func (c *OpenAIClassifier) Predict(ctx context.Context, text string, imagePNG []byte) (Prediction, error) {
	prompt := buildPrompt(c.categories, text)

	message := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt}
	if len(imagePNG) > 0 {
		message = openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: prompt},
				{
					Type: openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{
						URL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(imagePNG),
					},
				},
			},
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.1,
		Messages:    []openai.ChatCompletionMessage{message},
	})
	if err != nil {
		return Prediction{}, fmt.Errorf("openai classification failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Prediction{}, fmt.Errorf("no response from openai")
	}

	pred, err := parsePrediction(resp.Choices[0].Message.Content)
	if err != nil {
		return Prediction{}, err
	}
	c.log.Debug().Str("category", pred.Category).Float64("confidence", pred.Confidence).Msg("receipt classified")
	return pred, nil
}

// Close is a no-op; the underlying HTTP client needs no teardown.
func (c *OpenAIClassifier) Close() error { return nil }
