package tokenizer

import (
	"context"
	"errors"
	"testing"

	"github.com/Planeshifter/llm-context-builder/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApprox(t *testing.T) {
	ctx := context.Background()
	tests := map[string]int{
		"":      0,
		"a":     1,
		"abcd":  1,
		"abcde": 2,
		"héllo": 2,
	}
	for text, want := range tests {
		got, err := Approx{}.CountTokens(ctx, text)
		require.NoError(t, err)
		assert.Equal(t, want, got, "text %q", text)
	}
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("approx backend", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Tokenizer.Backend = BackendApprox

		c, err := New(ctx, cfg, nil)
		require.NoError(t, err)
		assert.IsType(t, Approx{}, c)
	})

	t.Run("gemini backend uses remote factory", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Tokenizer.Backend = BackendGemini
		stub := CounterFunc(func(context.Context, string) (int, error) { return 7, nil })

		c, err := New(ctx, cfg, func(context.Context, *config.Config) (Counter, error) { return stub, nil })
		require.NoError(t, err)
		n, err := c.CountTokens(ctx, "anything")
		require.NoError(t, err)
		assert.Equal(t, 7, n)
	})

	t.Run("gemini factory failure is wrapped", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Tokenizer.Backend = BackendGemini

		_, err := New(ctx, cfg, func(context.Context, *config.Config) (Counter, error) {
			return nil, errors.New("no key")
		})
		var backendErr *BackendError
		require.True(t, errors.As(err, &backendErr))
		assert.Equal(t, BackendGemini, backendErr.Backend)
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Tokenizer.Backend = "abacus"

		_, err := New(ctx, cfg, nil)
		assert.ErrorIs(t, err, ErrUnknownBackend)
	})
}
