package config

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockFileSystem implements FileSystem for testing.
type MockFileSystem struct {
	HomeDir     string
	HomeDirErr  error
	Files       map[string][]byte
	ReadFileErr error
}

func (m *MockFileSystem) UserHomeDir() (string, error) {
	return m.HomeDir, m.HomeDirErr
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	data, ok := m.Files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

const jsonPath = "/home/user/.config/ctxprompt/config.json"

func loaderWith(files map[string]string) *Loader {
	fs := &MockFileSystem{HomeDir: "/home/user", Files: map[string][]byte{}}
	for path, content := range files {
		fs.Files[path] = []byte(content)
	}
	return NewLoaderWithFS(fs)
}

// --- HAPPY PATH TESTS ---

func TestLoad_NoConfigFile_ReturnsDefaults(t *testing.T) {
	cfg, err := loaderWith(nil).Load()

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, []string{".git", "node_modules"}, cfg.Picker.ExcludeDirectories)
	assert.Len(t, cfg.Picker.ExcludeFileTypes, 25)
	assert.Equal(t, 500, cfg.Picker.RefreshDelayMs)
	assert.False(t, cfg.Picker.MinifyCode)
}

func TestLoad_PartialOverride_MergesWithDefaults(t *testing.T) {
	cfg, err := loaderWith(map[string]string{
		jsonPath: `{"picker": {"minify_code": true}}`,
	}).Load()

	require.NoError(t, err)
	assert.True(t, cfg.Picker.MinifyCode)                                            // Overridden
	assert.Equal(t, []string{".git", "node_modules"}, cfg.Picker.ExcludeDirectories) // Default
	assert.Equal(t, "tiktoken", cfg.Tokenizer.Backend)                               // Default
}

func TestLoad_YAMLFile(t *testing.T) {
	cfg, err := loaderWith(map[string]string{
		"/home/user/.config/ctxprompt/config.yaml": "picker:\n  exclude_directories: [vendor]\ntokenizer:\n  backend: approx\n",
	}).Load()

	require.NoError(t, err)
	assert.Equal(t, []string{"vendor"}, cfg.Picker.ExcludeDirectories)
	assert.Equal(t, "approx", cfg.Tokenizer.Backend)
	assert.Equal(t, 8, cfg.Picker.MaxConcurrentReads)
}

func TestLoad_JSONTakesPrecedenceOverYAML(t *testing.T) {
	cfg, err := loaderWith(map[string]string{
		jsonPath: `{"tokenizer": {"backend": "approx"}}`,
		"/home/user/.config/ctxprompt/config.yaml": "tokenizer:\n  backend: gemini\n",
	}).Load()

	require.NoError(t, err)
	assert.Equal(t, "approx", cfg.Tokenizer.Backend)
}

func TestLoad_EmptyArray_ReplacesDefault(t *testing.T) {
	cfg, err := loaderWith(map[string]string{
		jsonPath: `{"picker": {"exclude_file_types": []}}`,
	}).Load()

	require.NoError(t, err)
	assert.Empty(t, cfg.Picker.ExcludeFileTypes)
}

// --- UNHAPPY PATH TESTS ---

func TestLoad_MalformedJSON_ReturnsError(t *testing.T) {
	cfg, err := loaderWith(map[string]string{jsonPath: `{invalid json`}).Load()

	assert.Nil(t, cfg)
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, jsonPath, parseErr.Path)
}

func TestLoad_PermissionDenied_ReturnsError(t *testing.T) {
	loader := NewLoaderWithFS(&MockFileSystem{HomeDir: "/home/user", ReadFileErr: os.ErrPermission})

	cfg, err := loader.Load()

	assert.Nil(t, cfg)
	assert.True(t, errors.Is(err, os.ErrPermission))
}

func TestLoad_HomeDirError_ReturnsDefaults(t *testing.T) {
	loader := NewLoaderWithFS(&MockFileSystem{HomeDirErr: errors.New("homeless")})

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Picker.RefreshDelayMs)
}

func TestLoad_InvalidValue_FailsValidation(t *testing.T) {
	cfg, err := loaderWith(map[string]string{
		jsonPath: `{"picker": {"refresh_delay_ms": 0}}`,
	}).Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refresh_delay_ms")
}

func TestLoadFile_ExplicitPath(t *testing.T) {
	loader := loaderWith(map[string]string{"/tmp/custom.yml": "log:\n  level: debug\n"})

	cfg, err := loader.LoadFile("/tmp/custom.yml")

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)

	_, err = loader.LoadFile("/tmp/missing.json")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
