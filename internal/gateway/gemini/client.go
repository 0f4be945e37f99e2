// Package gemini implements gateway.Gateway with Google's Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"latinvocab/internal/domain"
	"latinvocab/internal/gateway"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-3-flash-preview"

// contentGenerator is the part of genai.Models the client needs
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Client implements gateway.Gateway
type Client struct {
	models contentGenerator
	model  string
	logger *zap.Logger
}

// NewClient creates a Gemini backed gateway
func NewClient(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key cannot be empty")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return newClient(client.Models, model, logger), nil
}

func newClient(models contentGenerator, model string, logger *zap.Logger) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{models: models, model: model, logger: logger}
}

// vocabSchema forces an array of {la, de} objects with both fields present
var vocabSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"la": {Type: genai.TypeString, Description: "Latin word"},
			"de": {Type: genai.TypeString, Description: "German translation"},
		},
		Required: []string{"la", "de"},
	},
}

// TranslateText translates Latin text using only the given vocabulary
func (c *Client) TranslateText(ctx context.Context, text string, vocabs []domain.Vocab) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", gateway.ErrEmptyText
	}

	prompt := gateway.TranslatePrompt(text, vocabs)
	out, err := c.generate(ctx, "translate", genai.Text(prompt), nil)
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

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   vocabSchema,
	}
	out, err := c.generate(ctx, "extract_vocab", imageContents(gateway.VocabPrompt, image), config)
	if err != nil {
		return nil, err
	}

	vocabs, err := gateway.DecodeVocabList(out)
	if err != nil {
		c.logger.Warn("Gemini returned malformed vocabulary", zap.Error(err))
		return nil, err
	}
	return vocabs, nil
}

// ExtractText transcribes the Latin text of an image
func (c *Client) ExtractText(ctx context.Context, image gateway.Image) (string, error) {
	if err := image.Validate(); err != nil {
		return "", err
	}
	return c.generate(ctx, "extract_text", imageContents(gateway.TextPrompt, image), nil)
}

func imageContents(prompt string, image gateway.Image) []*genai.Content {
	return []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(image.Data, image.MIME()),
		}, genai.RoleUser),
	}
}

// generate performs one call and returns the trimmed response text
func (c *Client) generate(
	ctx context.Context,
	op string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (string, error) {
	c.logger.Debug("Calling Gemini", zap.String("op", op), zap.String("model", c.model))

	resp, err := c.models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		c.logger.Error("Gemini call failed", zap.String("op", op), zap.Error(err))
		return "", fmt.Errorf("%w: %v", gateway.ErrService, err)
	}

	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", gateway.ErrService)
	}

	return strings.TrimSpace(responseText(resp)), nil
}

// responseText concatenates the text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}
