package llm

import (
	"context"
	"fmt"

	"github.com/Veraticus/capture/internal/common"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
)

type anthropicMessages interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// anthropicClient implements Completer on the Messages API.
type anthropicClient struct {
	messages    anthropicMessages
	model       string
	temperature float64
	maxTokens   int
}

func newAnthropicClient(cfg Config) (Completer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic API key is required: %w", common.ErrMissingConfig)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultAnthropicModel
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxTokens
	}

	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))

	return &anthropicClient{
		messages:    &client.Messages,
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   maxTokens,
	}, nil
}

// Complete sends the exchange and maps every returned block.
func (c *anthropicClient) Complete(ctx context.Context, req CompletionRequest) (Completion, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(c.maxTokens),
		System:    []anthropic.TextBlockParam{{Text: req.System}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.User)),
		},
	}
	if c.temperature > 0 {
		params.Temperature = param.NewOpt(c.temperature)
	}

	msg, err := c.messages.New(ctx, params)
	if err != nil {
		return Completion{}, fmt.Errorf("%w: anthropic: %w", common.ErrCompletionProviderError, err)
	}

	out := Completion{Content: make([]ContentBlock, 0, len(msg.Content))}
	for _, block := range msg.Content {
		out.Content = append(out.Content, ContentBlock{Type: block.Type, Text: block.Text})
	}
	return out, nil
}
