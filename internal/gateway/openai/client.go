// Package openai implements gateway.Gateway with the OpenAI chat completions API.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"latinvocab/internal/domain"
	"latinvocab/internal/gateway"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// DefaultModel is used when no model is configured
const DefaultModel = openai.GPT4oMini

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client implements gateway.Gateway
type Client struct {
	chat   chatCompleter
	model  string
	logger *zap.Logger
}

// NewClient creates an OpenAI backed gateway
func NewClient(apiKey, model string, logger *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key cannot be empty")
	}
	return newClient(openai.NewClient(apiKey), model, logger), nil
}

func newClient(chat chatCompleter, model string, logger *zap.Logger) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{chat: chat, model: model, logger: logger}
}

// vocabSchema wraps the pair array in an object because strict mode requires one
var vocabSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"vocabs": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"la": {"type": "string", "description": "Latin word"},
					"de": {"type": "string", "description": "German translation"}
				},
				"required": ["la", "de"],
				"additionalProperties": false
			}
		}
	},
	"required": ["vocabs"],
	"additionalProperties": false
}`)

type vocabEnvelope struct {
	Vocabs []gateway.VocabRecord `json:"vocabs"`
}

// TranslateText translates Latin text using only the given vocabulary
func (c *Client) TranslateText(ctx context.Context, text string, vocabs []domain.Vocab) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", gateway.ErrEmptyText
	}

	out, err := c.complete(ctx, "translate", openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: gateway.TranslatePrompt(text, vocabs)},
		},
	})
	if err != nil {
		return "", err
	}

	if out == "" {
		return gateway.FallbackTranslation, nil
	}
	return out, nil
}

// ExtractVocab reads Latin-German pairs from an image
func (c *Client) ExtractVocab(ctx context.Context, image gateway.Image) ([]domain.Vocab, error) {
	if err := image.Validate(); err != nil {
		return nil, err
	}

	out, err := c.complete(ctx, "extract_vocab", openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: imageMessages(gateway.VocabPrompt, image),
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "vocabs",
				Schema: vocabSchema,
				Strict: true,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	var envelope vocabEnvelope
	if err := json.Unmarshal([]byte(out), &envelope); err != nil {
		c.logger.Warn("OpenAI returned malformed vocabulary", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", gateway.ErrInvalidResponse, err)
	}
	if envelope.Vocabs == nil {
		return nil, fmt.Errorf("%w: missing vocabs array", gateway.ErrInvalidResponse)
	}
	return gateway.ValidateRecords(envelope.Vocabs)
}

// ExtractText transcribes the Latin text of an image
func (c *Client) ExtractText(ctx context.Context, image gateway.Image) (string, error) {
	if err := image.Validate(); err != nil {
		return "", err
	}

	return c.complete(ctx, "extract_text", openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: imageMessages(gateway.TextPrompt, image),
	})
}

func imageMessages(prompt string, image gateway.Image) []openai.ChatCompletionMessage {
	return []openai.ChatCompletionMessage{
		{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: prompt},
				{
					Type:     openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{URL: image.DataURL()},
				},
			},
		},
	}
}

func (c *Client) complete(ctx context.Context, op string, req openai.ChatCompletionRequest) (string, error) {
	c.logger.Debug("Calling OpenAI", zap.String("op", op), zap.String("model", c.model))

	resp, err := c.chat.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logger.Error("OpenAI call failed", zap.String("op", op), zap.Error(err))
		return "", fmt.Errorf("%w: %v", gateway.ErrService, err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
