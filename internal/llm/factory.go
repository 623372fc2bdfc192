package llm

import (
	"fmt"

	"github.com/sellerpulse/sellerpulse/internal/config"
	"github.com/sellerpulse/sellerpulse/internal/llm/generate"
	"github.com/sellerpulse/sellerpulse/internal/types"
)

// NewGenerator creates a completion generator based on configuration.
func NewGenerator(cfg *config.ProviderConfig) (types.Generator, error) {
	switch cfg.Provider {
	case "perplexity":
		return generate.NewPerplexityGenerator(cfg.Model, cfg.APIKeyEnv, cfg.APIKey)
	case "openai":
		return generate.NewOpenAIGenerator(cfg.Model, cfg.APIKeyEnv, cfg.APIKey)
	case "anthropic":
		return generate.NewAnthropicGenerator(cfg.Model, cfg.APIKeyEnv, cfg.APIKey)
	case "mock":
		return generate.NewMockGenerator(cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported generator provider: %s", cfg.Provider)
	}
}
