package views

import "github.com/Planeshifter/llm-context-builder/internal/ui/models"

// RenderPreview renders the export preview pane.
func RenderPreview(s models.State) string {
	return PreviewStyle.Render(s.Viewport.View())
}

// PreviewHeight is the viewport height that fits inside the bordered pane.
func PreviewHeight(s models.State) int {
	h := BodyHeight(s) - 2
	if h < 1 {
		return 1
	}
	return h
}
