package views

import (
	"fmt"
	"strings"

	"github.com/Planeshifter/llm-context-builder/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// RenderStatus renders the status bar
func RenderStatus(s models.State) string {
	var icon string
	var style lipgloss.Style

	switch s.StatusPhase {
	case "busy":
		icon = s.Spinner.View()
		style = StatusBusyStyle
	case "done":
		icon = "✔"
		style = StatusDoneStyle
	case "warning":
		icon = "!"
		style = StatusWarningStyle
	case "error":
		icon = "✘"
		style = StatusErrorStyle
	default:
		style = StatusDefaultStyle
	}

	status := "Ready"
	if s.StatusMessage != "" {
		status = strings.TrimSpace(fmt.Sprintf("%s %s", icon, s.StatusMessage))
	} else if icon != "" {
		status = icon
	}
	if s.Busy && s.Progress.Total > 0 {
		status = fmt.Sprintf("%s (%d/%d)", status, s.Progress.Done, s.Progress.Total)
	}

	leftSide := style.Render(status)
	rightSide := StatusInfoStyle.Render(summary(s.Tree))

	gap := s.Width - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if gap < 2 {
		gap = 2
	}
	return leftSide + strings.Repeat(" ", gap) + rightSide
}

// summary describes the selection and active filters.
func summary(t models.Tree) string {
	parts := []string{
		fmt.Sprintf("%d files", t.SelectedFiles),
		fmt.Sprintf("%d tokens", t.TotalTokens),
	}
	if t.Minify {
		parts = append(parts, "minify")
	}
	if t.Search != "" {
		parts = append(parts, fmt.Sprintf("search: %s", t.Search))
	}
	return strings.Join(parts, " · ")
}
