package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pathRequest struct {
	Path  string
	IsDir bool `mapstructure:"is_dir"`
}

func (r pathRequest) Validate() error {
	if r.Path == "" {
		return errors.New("path is required")
	}
	return nil
}

type emptyRequest struct{}

func TestBaseAdapter_DecodesArgs(t *testing.T) {
	var got pathRequest
	cmd := NewBaseAdapter("toggle", func(_ context.Context, req pathRequest) (string, error) {
		got = req
		return "ok", nil
	})

	msg, err := cmd.Execute(context.Background(), map[string]any{"path": "/ws/a", "is_dir": true})

	require.NoError(t, err)
	assert.Equal(t, "ok", msg)
	assert.Equal(t, "toggle", cmd.Name())
	assert.Equal(t, pathRequest{Path: "/ws/a", IsDir: true}, got)
}

func TestBaseAdapter_ValidationFails(t *testing.T) {
	called := false
	cmd := NewBaseAdapter("toggle", func(context.Context, pathRequest) (string, error) {
		called = true
		return "", nil
	})

	_, err := cmd.Execute(context.Background(), map[string]any{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "toggle validation failed")
	assert.False(t, called)
}

func TestBaseAdapter_DecodeError(t *testing.T) {
	cmd := NewBaseAdapter("toggle", func(context.Context, pathRequest) (string, error) {
		return "", nil
	})

	_, err := cmd.Execute(context.Background(), map[string]any{"path": []int{1}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid arguments")
}

func TestBaseAdapter_NilArgs(t *testing.T) {
	cmd := NewBaseAdapter("copy", func(context.Context, emptyRequest) (string, error) {
		return "copied", nil
	})

	msg, err := cmd.Execute(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, "copied", msg)
}

func TestBaseAdapter_HandlerErrorPassesThrough(t *testing.T) {
	sentinel := errors.New("boom")
	cmd := NewBaseAdapter("copy", func(context.Context, emptyRequest) (string, error) {
		return "", sentinel
	})

	_, err := cmd.Execute(context.Background(), nil)

	assert.ErrorIs(t, err, sentinel)
}
