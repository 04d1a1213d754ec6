package llm

import (
	"context"
	"time"
)

// Completer sends a single system+user exchange to a language model.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (Completion, error)
}

// CompletionRequest holds the only two inputs a classification call needs.
type CompletionRequest struct {
	System string
	User   string
}

// Completion is the provider-neutral reply.
type Completion struct {
	Content []ContentBlock
}

// ContentBlock is one block of a reply. Only blocks with Type "text" are used.
type ContentBlock struct {
	Type string
	Text string
}

// BlockTypeText marks a textual content block.
const BlockTypeText = "text"

// FirstText returns the text of the first textual block.
func (c Completion) FirstText() (string, bool) {
	for _, block := range c.Content {
		if block.Type == BlockTypeText {
			return block.Text, true
		}
	}
	return "", false
}

// Config holds provider settings.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	Timeout     time.Duration
	RateLimit   int
	Temperature float64
	MaxTokens   int
}

// Supported provider names.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
)

// Defaults applied when Config leaves a field empty.
const (
	DefaultAnthropicModel = "claude-haiku-4-5-20251001"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultGeminiModel    = "gemini-2.0-flash"
	DefaultMaxTokens      = 512
	DefaultTimeout        = 30 * time.Second
)

func textCompletion(text string) Completion {
	if text == "" {
		return Completion{}
	}
	return Completion{Content: []ContentBlock{{Type: BlockTypeText, Text: text}}}
}
