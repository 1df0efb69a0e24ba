package views

import (
	"github.com/Planeshifter/llm-context-builder/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// RenderRoot renders the complete UI layout
func RenderRoot(s models.State) string {
	body := RenderTree(s)
	if s.ShowPreview {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", RenderPreview(s))
	}

	sections := []string{body}
	if input := RenderInput(s); input != "" {
		sections = append(sections, input)
	}
	sections = append(sections, RenderStatus(s), FaintStyle.Render(s.Help))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
