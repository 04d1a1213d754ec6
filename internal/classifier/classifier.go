// Package classifier turns raw capture text into a routing decision. Classify
// never fails: every error resolves to the inbox fallback.
package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/capture/internal/common"
	"github.com/Veraticus/capture/internal/llm"
	"github.com/Veraticus/capture/internal/model"
)

// RegistryLoader provides a fresh registry snapshot.
type RegistryLoader interface {
	Load(ctx context.Context) (model.Registry, error)
}

// Classifier asks a language model where a capture belongs.
type Classifier struct {
	registry  RegistryLoader
	completer llm.Completer
	logger    *slog.Logger
	timeout   time.Duration
}

// New creates a classifier. A zero timeout means llm.DefaultTimeout.
func New(registry RegistryLoader, completer llm.Completer, timeout time.Duration, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = llm.DefaultTimeout
	}
	return &Classifier{
		registry:  registry,
		completer: completer,
		timeout:   timeout,
		logger:    logger,
	}
}

// Classify returns the gated classification for rawText, or the fallback when
// anything goes wrong.
func (c *Classifier) Classify(ctx context.Context, rawText, source string) model.Classification {
	result, err := c.classify(ctx, rawText, source)
	if err != nil {
		c.logger.Warn("Classification failed, routing to inbox",
			"source", source,
			"error", err)
		return model.FallbackClassification(rawText)
	}

	gated := result.Gate()
	if gated.Action != result.Action {
		c.logger.Info("Low confidence, routing to inbox",
			"suggested", result.Action,
			"confidence", result.Confidence)
	}
	return gated
}

func (c *Classifier) classify(ctx context.Context, rawText, source string) (model.Classification, error) {
	reg, err := c.registry.Load(ctx)
	if err != nil {
		return model.Classification{}, fmt.Errorf("failed to load registry: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	completion, err := c.completer.Complete(ctx, llm.CompletionRequest{
		System: BuildSystemPrompt(reg),
		User:   BuildUserMessage(rawText, source),
	})
	if err != nil {
		return model.Classification{}, fmt.Errorf("%w: %w", common.ErrClassificationFailed, err)
	}

	text, ok := completion.FirstText()
	if !ok {
		return model.Classification{}, common.ErrNoTextContent
	}

	return model.ParseClassification([]byte(stripCodeFence(text)))
}

// stripCodeFence removes a surrounding markdown code fence, with or without a
// language tag.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
