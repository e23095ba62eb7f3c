package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/lessonlab/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with the
// request-log decorator when a log is supplied. There is no retry
// layer: a request completes or fails once, and "try again" is a user
// action in the UI.
func NewProvider(ctx context.Context, cfg Config, log store.RequestLog) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if log != nil {
		base = WithLogging(base, log)
	}

	return base, nil
}

// NewProviderFromEnv builds a Provider from LESSONLAB_* env config,
// falling back to discovery of standard API key variables.
func NewProviderFromEnv(ctx context.Context, log store.RequestLog) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, log)
}
