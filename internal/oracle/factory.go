package oracle

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/mathtutor/internal/llm"
	"github.com/abhisek/mathtutor/internal/store"
)

// Backend names.
const (
	BackendHTTP = "http"
	BackendLLM  = "llm"
	BackendNone = "none"
)

// Config selects and configures the oracle backend.
type Config struct {
	Backend string
	URL     string
	Timeout time.Duration
	LLM     llm.Config
}

// New creates the configured oracle. It returns (nil, nil) for the "none"
// backend; callers treat a nil Oracle as unavailable.
func New(ctx context.Context, cfg Config, events store.EventRepo) (Oracle, error) {
	switch cfg.Backend {
	case BackendNone, "":
		return nil, nil
	case BackendHTTP:
		o, err := NewHTTPOracle(HTTPConfig{URL: cfg.URL, Timeout: cfg.Timeout})
		if err != nil {
			return nil, fmt.Errorf("initializing http oracle: %w", err)
		}
		return WithLogging(o, events), nil
	case BackendLLM:
		// The provider records its own events, including token usage.
		p, err := llm.NewProvider(ctx, cfg.LLM, events)
		if err != nil {
			return nil, fmt.Errorf("initializing llm oracle: %w", err)
		}
		lc := DefaultLLMConfig()
		if cfg.Timeout > 0 {
			lc.Timeout = cfg.Timeout
		}
		return NewLLMOracle(p, lc), nil
	default:
		return nil, fmt.Errorf("unknown oracle backend: %q", cfg.Backend)
	}
}
