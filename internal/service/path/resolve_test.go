package path

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbs(t *testing.T) {
	resolver := NewResolver("/workspace")

	tests := []struct {
		name     string
		input    string
		expected string
		err      error
	}{
		{name: "relative path within workspace", input: "src/main.go", expected: "/workspace/src/main.go"},
		{name: "absolute path within workspace", input: "/workspace/src/main.go", expected: "/workspace/src/main.go"},
		{name: "path with dots within workspace", input: "src/../src/main.go", expected: "/workspace/src/main.go"},
		{name: "workspace root", input: ".", expected: "/workspace"},
		{name: "escape attempt via parent dots", input: "../../../etc/passwd", err: ErrOutsideWorkspace},
		{name: "absolute path outside workspace", input: "/etc/passwd", err: ErrOutsideWorkspace},
		{name: "sibling with shared prefix", input: "/workspace2/file", err: ErrOutsideWorkspace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.Abs(tt.input)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRel(t *testing.T) {
	resolver := NewResolver("/workspace")

	rel, err := resolver.Rel("/workspace/b/c.txt")
	require.NoError(t, err)
	assert.Equal(t, "b/c.txt", rel)

	rel, err = resolver.Rel("/workspace")
	require.NoError(t, err)
	assert.Equal(t, "", rel)

	_, err = NewResolver("").Rel("a")
	assert.ErrorIs(t, err, ErrWorkspaceRootNotSet)
}

func TestWithin(t *testing.T) {
	assert.True(t, Within("/ws", "/ws"))
	assert.True(t, Within("/ws/a/b", "/ws"))
	assert.False(t, Within("/wsx/a", "/ws"))
	assert.True(t, Within("/a", "/"))
}

func TestAncestors(t *testing.T) {
	assert.Equal(t, []string{"/ws/b", "/ws"}, Ancestors("/ws/b/c.txt", "/ws"))
	assert.Equal(t, []string{"/ws"}, Ancestors("/ws/a.txt", "/ws"))
	assert.Nil(t, Ancestors("/ws", "/ws"))
	assert.Nil(t, Ancestors("/other/x", "/ws"))
}

func TestCanonicaliseRoot(t *testing.T) {
	dir := t.TempDir()

	resolved, err := CanonicaliseRoot(dir)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(resolved))

	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = CanonicaliseRoot(file)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotADirectory))

	var rootErr *WorkspaceRootError
	_, err = CanonicaliseRoot(filepath.Join(dir, "missing"))
	assert.True(t, errors.As(err, &rootErr))
}
