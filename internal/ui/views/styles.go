package views

import (
	"github.com/Planeshifter/llm-context-builder/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

var (
	CursorStyle = lipgloss.NewStyle().Reverse(true)
	DirStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	FileStyle   = lipgloss.NewStyle()
	FaintStyle  = lipgloss.NewStyle().Faint(true)

	InputStyle   = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderTop(true).BorderForeground(lipgloss.Color("62"))
	PromptStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	PreviewStyle = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62"))

	StatusDefaultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	StatusBusyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	StatusDoneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	StatusWarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	StatusErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	StatusInfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// checkStyle colours a checkbox by selection state.
func checkStyle(c models.Check) lipgloss.Style {
	switch c {
	case models.CheckFull:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	case models.CheckPartial:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	}
}
