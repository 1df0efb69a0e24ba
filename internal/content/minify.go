package content

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// MinifyError is the TransformFailure of the taxonomy. Callers recover from it
// by keeping the original text.
type MinifyError struct {
	Path     string
	Messages []string
}

func (e *MinifyError) Error() string {
	return fmt.Sprintf("failed to minify %s: %s", e.Path, strings.Join(e.Messages, "; "))
}

// Minifier shrinks source text. ok is false when the file type is not handled.
type Minifier interface {
	Minify(path, code string) (out string, ok bool, err error)
}

// EsbuildMinifier minifies JavaScript, TypeScript and CSS with esbuild's
// transform API. Whitespace is collapsed and identifiers are kept so the
// output stays readable to a model. No runtime helpers are injected.
type EsbuildMinifier struct{}

var loaderByExtension = map[string]api.Loader{
	".js":  api.LoaderJS,
	".mjs": api.LoaderJS,
	".cjs": api.LoaderJS,
	".jsx": api.LoaderJSX,
	".ts":  api.LoaderTS,
	".tsx": api.LoaderTSX,
	".css": api.LoaderCSS,
}

// Minify implements Minifier.
func (EsbuildMinifier) Minify(path, code string) (string, bool, error) {
	loader, ok := loaderByExtension[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return code, false, nil
	}

	result := api.Transform(code, api.TransformOptions{
		Loader:            loader,
		MinifyWhitespace:  true,
		MinifySyntax:      false,
		MinifyIdentifiers: false,
		Target:            api.ES2015,
	})
	if len(result.Errors) > 0 {
		messages := make([]string, 0, len(result.Errors))
		for _, msg := range result.Errors {
			messages = append(messages, msg.Text)
		}
		return code, true, &MinifyError{Path: path, Messages: messages}
	}
	return strings.TrimSpace(string(result.Code)), true, nil
}
