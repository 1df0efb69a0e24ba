package models

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// Mode selects which prompt, if any, owns the keyboard.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeSearch
	ModeExcludeDirs
	ModeExcludeTypes
)

// State holds everything the views render.
type State struct {
	Width  int
	Height int

	Tree   Tree
	Cursor int
	Offset int

	Mode  Mode
	Input textinput.Model
	// PendingExcludeDirs holds the first answer of the two-step exclusion
	// prompt.
	PendingExcludeDirs string

	ShowPreview bool
	Viewport    viewport.Model

	Spinner       spinner.Model
	Busy          bool
	Progress      Progress
	StatusPhase   string
	StatusMessage string

	// Help is the pre-rendered key hint line.
	Help string
}

// CurrentRow returns the row under the cursor.
func (s State) CurrentRow() (TreeRow, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Tree.Rows) {
		return TreeRow{}, false
	}
	return s.Tree.Rows[s.Cursor], true
}
