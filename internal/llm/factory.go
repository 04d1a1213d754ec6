package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/capture/internal/common"
)

// NewClient creates a Completer for the configured provider. A positive
// RateLimit wraps it in a client-side token bucket.
func NewClient(ctx context.Context, cfg Config) (Completer, error) {
	var (
		client Completer
		err    error
	)

	switch strings.ToLower(cfg.Provider) {
	case "", ProviderAnthropic:
		client, err = newAnthropicClient(cfg)
	case ProviderOpenAI:
		client, err = newOpenAIClient(cfg)
	case ProviderGemini:
		client, err = newGeminiClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedProvider, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	if cfg.RateLimit > 0 {
		client = NewRateLimited(client, cfg.RateLimit)
	}
	return client, nil
}
