package tokenizer

import (
	"context"

	"github.com/pkoukk/tiktoken-go"
)

// Tiktoken counts tokens with an OpenAI BPE encoding.
type Tiktoken struct {
	encoding *tiktoken.Tiktoken
}

// NewTiktoken loads the encoding used by model (for example "gpt-4").
func NewTiktoken(model string) (*Tiktoken, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, &BackendError{Backend: BackendTiktoken, Cause: err}
	}
	return &Tiktoken{encoding: enc}, nil
}

// CountTokens implements Counter.
func (t *Tiktoken) CountTokens(_ context.Context, text string) (int, error) {
	return len(t.encoding.Encode(text, nil, nil)), nil
}
