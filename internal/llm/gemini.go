package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/capture/internal/common"
	"google.golang.org/genai"
)

type geminiModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// geminiClient implements Completer on the Gemini API.
type geminiClient struct {
	models      geminiModels
	model       string
	temperature float64
	maxTokens   int
}

func newGeminiClient(ctx context.Context, cfg Config) (Completer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required: %w", common.ErrMissingConfig)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxTokens
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiClient{
		models:      client.Models,
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   maxTokens,
	}, nil
}

// Complete asks for a JSON reply and joins the text parts of the first candidate.
func (c *geminiClient) Complete(ctx context.Context, req CompletionRequest) (Completion, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		MaxOutputTokens:   int32(c.maxTokens), // #nosec G115 -- bounded by config
	}
	if c.temperature > 0 {
		t := float32(c.temperature)
		config.Temperature = &t
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(req.User), config)
	if err != nil {
		return Completion{}, fmt.Errorf("%w: gemini: %w", common.ErrCompletionProviderError, err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return Completion{}, nil
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			text.WriteString(part.Text)
		}
	}
	return textCompletion(text.String()), nil
}
