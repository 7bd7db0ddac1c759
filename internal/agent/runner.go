package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cragr/snow-incident-agent/internal/config"
	"github.com/cragr/snow-incident-agent/internal/llm"
	"github.com/cragr/snow-incident-agent/internal/metrics"
)

var (
	// ErrNoTools is returned when a runner is given no tools.
	ErrNoTools = errors.New("agent: no tools registered")
	// ErrTooManyTools is returned by Direct when the tool choice is ambiguous.
	ErrTooManyTools = errors.New("agent: direct runner needs exactly one tool")
)

// Runner answers a query using the given tools.
type Runner interface {
	Run(ctx context.Context, input string, tools []Tool) (string, error)
}

// Direct calls the only tool with the input verbatim and returns its output.
type Direct struct{}

// Run implements Runner.
func (Direct) Run(ctx context.Context, input string, tools []Tool) (string, error) {
	switch len(tools) {
	case 0:
		return "", ErrNoTools
	case 1:
		return tools[0].Call(ctx, input)
	default:
		return "", ErrTooManyTools
	}
}

// NewRunner builds the runner selected by cfg.LLMProvider.
func NewRunner(cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) (Runner, error) {
	switch cfg.LLMProvider {
	case config.ProviderNone:
		return Direct{}, nil
	case config.ProviderOpenAI:
		provider := llm.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
		return New(provider, cfg, m, logger), nil
	case config.ProviderAnthropic:
		provider := llm.NewAnthropic(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		return New(provider, cfg, m, logger), nil
	default:
		return nil, fmt.Errorf("unsupported completion provider %q", cfg.LLMProvider)
	}
}
