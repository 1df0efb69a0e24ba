// Package tokenizer provides the token oracles used for budget display.
package tokenizer

import (
	"context"
	"errors"
	"fmt"
)

// Backend names accepted in configuration.
const (
	BackendTiktoken = "tiktoken"
	BackendGemini   = "gemini"
	BackendApprox   = "approx"
)

// ErrUnknownBackend is returned for a backend name outside the set above.
var ErrUnknownBackend = errors.New("unknown tokenizer backend")

// Counter counts tokens in text. Implementations must be deterministic for
// identical input and safe for concurrent use.
type Counter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}

// CounterFunc adapts a plain function to Counter.
type CounterFunc func(ctx context.Context, text string) (int, error)

// CountTokens implements Counter.
func (f CounterFunc) CountTokens(ctx context.Context, text string) (int, error) {
	return f(ctx, text)
}

// BackendError wraps a failure to construct a named backend.
type BackendError struct {
	Backend string
	Cause   error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("tokenizer backend %q: %v", e.Backend, e.Cause)
}
func (e *BackendError) Unwrap() error { return e.Cause }
