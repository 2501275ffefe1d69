package llm

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// NewProvider creates a Provider from configuration, wrapped with request
// logging. Retry is NOT applied here: the grading client runs its own
// retry protocol, and other callers opt in with WithRetry.
func NewProvider(ctx context.Context, cfg Config, repo RequestLog, log zerolog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if repo != nil {
		return WithLogging(base, repo, log), nil
	}
	return base, nil
}

// NewProviderFromEnv builds a Provider from WORDWISE_* variables when the
// provider is configured explicitly, or from discovered standard API key
// variables otherwise.
func NewProviderFromEnv(ctx context.Context, repo RequestLog, log zerolog.Logger) (Provider, error) {
	cfg := ConfigFromEnv()
	if cfg.Validate() != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, fmt.Errorf("no LLM API key configured (set GEMINI_API_KEY, OPENAI_API_KEY, or ANTHROPIC_API_KEY)")
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, repo, log)
}
