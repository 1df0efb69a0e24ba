package adapter

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Validator is an interface for request types that support validation
type Validator interface {
	Validate() error
}

// Handler runs a command with its typed request.
type Handler[Req any] func(context.Context, Req) (string, error)

// BaseAdapter provides common command functionality using generics:
// argument decoding (mapstructure), validation and error wrapping.
//
// Type Parameters:
//   - Req: The request type (e.g., orchestrator.ToggleRequest)
type BaseAdapter[Req any] struct {
	name    string
	handler Handler[Req]
}

// NewBaseAdapter creates a new base adapter.
//
// Example usage:
//
//	cmd := NewBaseAdapter("toggle", o.toggle)
func NewBaseAdapter[Req any](name string, handler Handler[Req]) *BaseAdapter[Req] {
	return &BaseAdapter[Req]{
		name:    name,
		handler: handler,
	}
}

// Name implements adapter.Command
func (b *BaseAdapter[Req]) Name() string {
	return b.name
}

// Execute implements adapter.Command
//
// This method:
// 1. Decodes the args map into a typed request using mapstructure
// 2. Validates the request if it implements Validator interface
// 3. Calls the handler with the typed request
func (b *BaseAdapter[Req]) Execute(ctx context.Context, args map[string]any) (string, error) {
	var req Req

	// Decode map to typed request using mapstructure
	if err := mapstructure.Decode(args, &req); err != nil {
		return "", fmt.Errorf("%s: invalid arguments: %w", b.name, err)
	}

	// Validate request if it implements Validator interface
	if v, ok := any(req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return "", fmt.Errorf("%s validation failed: %w", b.name, err)
		}
	}

	return b.handler(ctx, req)
}
