package mocks

import (
	"context"
	"strings"
	"sync"
)

// WordCounter counts whitespace-separated words. "hello" yields 1.
type WordCounter struct {
	mu    sync.Mutex
	Calls int
	Err   error
}

// CountTokens implements tokenizer.Counter.
func (c *WordCounter) CountTokens(ctx context.Context, text string) (int, error) {
	c.mu.Lock()
	c.Calls++
	c.mu.Unlock()
	if c.Err != nil {
		return 0, c.Err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(strings.Fields(text)), nil
}
