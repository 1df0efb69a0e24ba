// Package export builds the context prompt document from the selection.
package export

import (
	"errors"

	"github.com/Planeshifter/llm-context-builder/internal/content"
	"github.com/Planeshifter/llm-context-builder/internal/service/fs"
	"go.uber.org/zap"
)

// ErrEmptySelection is returned when no selected file could be exported.
var ErrEmptySelection = errors.New("no files selected")

// Selection is the read side of a picker session.
type Selection interface {
	SelectedFiles() []string
	Rel(path string) (string, error)
	Minify() bool
	TotalTokens() int
}

// FileReader reads file contents.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// Preparer applies license stripping and minification.
type Preparer interface {
	Prepare(path string, raw []byte, minify bool) content.Prepared
}

// Result is a built context prompt.
type Result struct {
	Document string
	Files    int
	Tokens   int
	// Skipped lists selected files that vanished or became unreadable.
	Skipped []string
	// Warnings counts files whose minification fell back to the original.
	Warnings int
}

// Builder renders selections into context prompt documents.
type Builder struct {
	fs       FileReader
	preparer Preparer
	log      *zap.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(fsys FileReader, preparer Preparer, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{fs: fsys, preparer: preparer, log: log}
}

// Build renders every selected file, in path order, as a "File:" header
// followed by a fenced block tagged with its language.
func (b *Builder) Build(sel Selection) (Result, error) {
	files := sel.SelectedFiles()
	if len(files) == 0 {
		return Result{}, ErrEmptySelection
	}

	minify := sel.Minify()
	var res Result
	blocks := make([]content.Block, 0, len(files))
	for _, path := range files {
		raw, err := b.fs.ReadFile(path)
		if err != nil {
			if fs.IsSkippable(err) || errors.Is(err, fs.ErrIsDirectory) {
				b.log.Debug("skipping vanished file", zap.String("path", path), zap.Error(err))
				res.Skipped = append(res.Skipped, path)
				continue
			}
			return Result{}, err
		}

		rel, err := sel.Rel(path)
		if err != nil {
			return Result{}, err
		}
		prepared := b.preparer.Prepare(path, raw, minify)
		if prepared.Warning != nil {
			res.Warnings++
			b.log.Warn("minification failed, exporting original", zap.String("path", rel), zap.Error(prepared.Warning))
		}
		blocks = append(blocks, content.Block{RelativePath: rel, Language: prepared.Language, Text: prepared.Text})
	}

	if len(blocks) == 0 {
		return res, ErrEmptySelection
	}

	res.Document = content.RenderDocument(blocks)
	res.Files = len(blocks)
	res.Tokens = sel.TotalTokens()
	b.log.Info("context prompt built",
		zap.Int("files", res.Files),
		zap.Int("tokens", res.Tokens),
		zap.Int("skipped", len(res.Skipped)),
	)
	return res, nil
}
