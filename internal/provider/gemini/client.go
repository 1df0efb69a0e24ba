package gemini

import (
	"context"

	"google.golang.org/genai"
)

// GeminiClient defines the subset of the Gemini API used for token counting.
// This abstraction allows tests to run without network access.
type GeminiClient interface {
	CountTokens(ctx context.Context, model string, contents []*genai.Content) (*genai.CountTokensResponse, error)
}

// RealGeminiClient wraps the official SDK client to satisfy GeminiClient.
type RealGeminiClient struct {
	client *genai.Client
}

// NewRealGeminiClient creates a new RealGeminiClient from an SDK client.
func NewRealGeminiClient(client *genai.Client) *RealGeminiClient {
	return &RealGeminiClient{client: client}
}

// CountTokens calls the SDK's CountTokens method.
func (c *RealGeminiClient) CountTokens(ctx context.Context, model string, contents []*genai.Content) (*genai.CountTokensResponse, error) {
	return c.client.Models.CountTokens(ctx, model, contents, nil)
}
