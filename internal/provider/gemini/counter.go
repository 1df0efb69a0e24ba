// Package gemini counts tokens with the Gemini CountTokens endpoint.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Planeshifter/llm-context-builder/internal/config"
	"github.com/Planeshifter/llm-context-builder/internal/tokenizer"
	"google.golang.org/genai"
)

// ErrMissingAPIKey is returned when GEMINI_API_KEY is not set.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY environment variable is required")

// CountError wraps a failed CountTokens call.
type CountError struct {
	Model string
	Cause error
}

func (e *CountError) Error() string {
	return fmt.Sprintf("gemini count tokens (%s): %v", e.Model, e.Cause)
}
func (e *CountError) Unwrap() error { return e.Cause }

// TokenCounter implements tokenizer.Counter against a Gemini model.
type TokenCounter struct {
	client GeminiClient
	model  string
}

// NewTokenCounter creates a TokenCounter for model.
func NewTokenCounter(client GeminiClient, model string) *TokenCounter {
	return &TokenCounter{client: client, model: model}
}

// CountTokens implements tokenizer.Counter. Empty text is zero tokens without
// a round trip.
func (c *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	contents := []*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}

	resp, err := c.client.CountTokens(ctx, c.model, contents)
	if err != nil {
		return 0, &CountError{Model: c.model, Cause: err}
	}
	return int(resp.TotalTokens), nil
}

// NewRemoteFactory returns the tokenizer.RemoteFactory used in production.
func NewRemoteFactory() tokenizer.RemoteFactory {
	return func(ctx context.Context, cfg *config.Config) (tokenizer.Counter, error) {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return nil, ErrMissingAPIKey
		}

		genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return NewTokenCounter(NewRealGeminiClient(genaiClient), cfg.Tokenizer.GeminiModel), nil
	}
}
