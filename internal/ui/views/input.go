package views

import (
	"github.com/Planeshifter/llm-context-builder/internal/ui/models"
)

// promptLabel names the value being edited.
func promptLabel(mode models.Mode) string {
	switch mode {
	case models.ModeSearch:
		return "Search (comma-separated): "
	case models.ModeExcludeDirs:
		return "Exclude directories: "
	case models.ModeExcludeTypes:
		return "Exclude file types: "
	default:
		return ""
	}
}

// RenderInput renders the active prompt, or nothing in browse mode.
func RenderInput(s models.State) string {
	if s.Mode == models.ModeBrowse {
		return ""
	}
	return InputStyle.Render(PromptStyle.Render(promptLabel(s.Mode)) + s.Input.View())
}
