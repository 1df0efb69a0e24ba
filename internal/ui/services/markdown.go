package services

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders markdown for the terminal.
type MarkdownRenderer interface {
	Render(content string, width int) (string, error)
}

// GlamourRenderer renders with glamour, caching one renderer per width.
type GlamourRenderer struct {
	style string

	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
}

// NewGlamourRenderer creates a renderer using a glamour standard style
// ("dark", "light", "notty"...).
func NewGlamourRenderer(style string) *GlamourRenderer {
	if style == "" {
		style = "dark"
	}
	return &GlamourRenderer{style: style, renderers: make(map[int]*glamour.TermRenderer)}
}

// Render implements MarkdownRenderer.
func (g *GlamourRenderer) Render(content string, width int) (string, error) {
	g.mu.Lock()
	r, ok := g.renderers[width]
	if !ok {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(g.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			g.mu.Unlock()
			return "", err
		}
		g.renderers[width] = r
	}
	g.mu.Unlock()

	return r.Render(content)
}

// RenderMarkdown renders content, falling back to the raw text when the
// renderer fails.
func RenderMarkdown(content string, width int, renderer MarkdownRenderer) string {
	if renderer == nil {
		return content
	}
	if width < 10 {
		width = 10
	}
	out, err := renderer.Render(content, width)
	if err != nil {
		return content
	}
	return out
}
