package tokenizer

import (
	"context"
	"fmt"

	"github.com/Planeshifter/llm-context-builder/internal/config"
)

// RemoteFactory builds the remote (gemini) counter lazily so that the API
// client is only created when configured.
type RemoteFactory func(ctx context.Context, cfg *config.Config) (Counter, error)

// New builds the Counter selected by cfg.Tokenizer.Backend.
func New(ctx context.Context, cfg *config.Config, remote RemoteFactory) (Counter, error) {
	switch cfg.Tokenizer.Backend {
	case BackendTiktoken, "":
		return NewTiktoken(cfg.Tokenizer.Model)
	case BackendApprox:
		return Approx{}, nil
	case BackendGemini:
		if remote == nil {
			return nil, &BackendError{Backend: BackendGemini, Cause: fmt.Errorf("no remote factory configured")}
		}
		c, err := remote(ctx, cfg)
		if err != nil {
			return nil, &BackendError{Backend: BackendGemini, Cause: err}
		}
		return c, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Tokenizer.Backend)
}
