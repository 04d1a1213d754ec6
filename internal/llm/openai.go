package llm

import (
	"context"
	"fmt"

	"github.com/Veraticus/capture/internal/common"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

type openAICompletions interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// openAIClient implements Completer on the Chat Completions API.
type openAIClient struct {
	completions openAICompletions
	model       string
	temperature float64
	maxTokens   int
}

func newOpenAIClient(cfg Config) (Completer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required: %w", common.ErrMissingConfig)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxTokens
	}

	client := openai.NewClient(option.WithAPIKey(cfg.APIKey))

	return &openAIClient{
		completions: &client.Chat.Completions,
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   maxTokens,
	}, nil
}

// Complete sends the exchange and wraps the first choice as a text block.
func (c *openAIClient) Complete(ctx context.Context, req CompletionRequest) (Completion, error) {
	params := openai.ChatCompletionNewParams{
		Model:               shared.ChatModel(c.model),
		MaxCompletionTokens: openai.Int(int64(c.maxTokens)),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
	}
	if c.temperature > 0 {
		params.Temperature = openai.Float(c.temperature)
	}

	resp, err := c.completions.New(ctx, params)
	if err != nil {
		return Completion{}, fmt.Errorf("%w: openai: %w", common.ErrCompletionProviderError, err)
	}

	if len(resp.Choices) == 0 {
		return Completion{}, nil
	}
	return textCompletion(resp.Choices[0].Message.Content), nil
}
