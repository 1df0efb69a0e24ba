package ui

import "github.com/Planeshifter/llm-context-builder/internal/ui/models"

// Command types sent from the UI to the orchestrator.
const (
	CmdToggle      = "toggle"
	CmdExpand      = "expand"
	CmdSearch      = "search"
	CmdExclusions  = "exclusions"
	CmdMinify      = "minify"
	CmdDeselectAll = "deselect_all"
	CmdCopy        = "copy"
	CmdPreview     = "preview"
	CmdRefresh     = "refresh"
	// CmdCancel aborts the running bulk operation. It is never queued.
	CmdCancel = "cancel"
)

// Status phases shown in the status bar.
const (
	PhaseReady   = "ready"
	PhaseBusy    = "busy"
	PhaseDone    = "done"
	PhaseWarning = "warning"
	PhaseError   = "error"
)

// UICommand is a user action for the orchestrator.
type UICommand struct {
	Type string
	Args map[string]any
}

// UserInterface defines the contract between the orchestrator and the
// terminal UI. Write methods never block.
type UserInterface interface {
	// WriteStatus displays an ephemeral status line.
	WriteStatus(phase string, message string)

	// WriteTree replaces the tree pane.
	WriteTree(tree models.Tree)

	// WriteProgress updates the progress of a bulk operation.
	WriteProgress(done, total int)

	// WritePreview shows the export document in the preview pane.
	WritePreview(document string)

	// Commands delivers user actions.
	Commands() <-chan UICommand

	// Ready is closed once the UI accepts writes.
	Ready() <-chan struct{}

	// Start runs the UI until the user quits.
	Start() error
}
