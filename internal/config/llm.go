package config

import (
	"fmt"
	"strings"

	"github.com/Veraticus/capture/internal/common"
	"github.com/Veraticus/capture/internal/llm"
	"github.com/spf13/viper"
)

// LoadLLMConfig builds the completion provider configuration. The API key is
// read from llm.<provider>_api_key and then the provider's usual env var.
func LoadLLMConfig() (llm.Config, error) {
	provider := strings.ToLower(viper.GetString("llm.provider"))
	if provider == "" {
		provider = llm.ProviderAnthropic
	}

	cfg := llm.Config{
		Provider:    provider,
		Model:       viper.GetString("llm.model"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
		RateLimit:   viper.GetInt("llm.rate_limit"),
		Timeout:     viper.GetDuration("llm.timeout"),
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = llm.DefaultMaxTokens
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = llm.DefaultTimeout
	}

	var envName string
	switch provider {
	case llm.ProviderAnthropic:
		envName = "ANTHROPIC_API_KEY"
		if cfg.Model == "" {
			cfg.Model = llm.DefaultAnthropicModel
		}
	case llm.ProviderOpenAI:
		envName = "OPENAI_API_KEY"
		if cfg.Model == "" {
			cfg.Model = llm.DefaultOpenAIModel
		}
	case llm.ProviderGemini:
		envName = "GEMINI_API_KEY"
		if cfg.Model == "" {
			cfg.Model = llm.DefaultGeminiModel
		}
	default:
		return llm.Config{}, fmt.Errorf("%w: %s", common.ErrUnsupportedProvider, provider)
	}

	cfg.APIKey = firstNonEmpty(viper.GetString("llm."+provider+"_api_key"), envName)
	if cfg.APIKey == "" {
		return llm.Config{}, common.MissingConfig(envName)
	}

	return cfg, nil
}
