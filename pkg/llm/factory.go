package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/kenalhq/insight-engine/pkg/config"
)

// NewFromConfig creates the single provider client selected by configuration.
// Exactly one provider is used per request; there is no fallback between
// providers here.
func NewFromConfig(cfg *config.AIConfig, logger *zap.Logger) (Client, error) {
	switch cfg.Provider {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("no AI API keys configured: ANTHROPIC_API_KEY is empty")
		}
		return NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.MaxTokens, cfg.Temperature, logger)
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("no AI API keys configured: OPENAI_API_KEY is empty")
		}
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.MaxTokens, cfg.Temperature, logger)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}
