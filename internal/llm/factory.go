package llm

import (
	"context"
	"fmt"

	"github.com/abiraja/parley/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with the
// event-logging middleware when an event repo is supplied.
//
// No retry middleware is applied: a failed completion aborts the turn that
// requested it, and the user simply sends their line again.
func NewProvider(ctx context.Context, cfg Config, events store.LLMEventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if events != nil {
		return WithLogging(base, events), nil
	}
	return base, nil
}

// NewProviderFromEnv builds a provider from PARLEY_* environment variables,
// falling back to probing the standard provider API key variables.
func NewProviderFromEnv(ctx context.Context, events store.LLMEventRepo) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, events)
}
