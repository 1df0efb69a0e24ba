package ui

import (
	"strings"

	"github.com/Planeshifter/llm-context-builder/internal/ui/models"
	"github.com/Planeshifter/llm-context-builder/internal/ui/services"
	"github.com/Planeshifter/llm-context-builder/internal/ui/views"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// BubbleTeaModel implements tea.Model
type BubbleTeaModel struct {
	state models.State

	// Dependencies
	renderer     services.MarkdownRenderer
	previewWidth int

	// Channels for communication with orchestrator
	statusChan   <-chan statusMsg
	treeChan     <-chan models.Tree
	progressChan <-chan models.Progress
	previewChan  <-chan string

	// UI -> Orchestrator
	commandChan chan<- UICommand

	// Ready signal
	readyChan chan<- struct{}
}

// View renders the UI
func (m BubbleTeaModel) View() string {
	return views.RenderRoot(m.state)
}

// SpinnerFactory creates a new spinner
type SpinnerFactory func() spinner.Model

// newBubbleTeaModel creates a new Bubble Tea model
func newBubbleTeaModel(
	channels *UIChannels,
	renderer services.MarkdownRenderer,
	spinnerFactory SpinnerFactory,
	previewWidth int,
) BubbleTeaModel {
	ti := textinput.New()
	ti.Prompt = ""

	vp := viewport.New(previewWidth, 20)

	return BubbleTeaModel{
		state: models.State{
			Input:       ti,
			Viewport:    vp,
			Spinner:     spinnerFactory(),
			StatusPhase: PhaseReady,
			Help:        help.New().ShortHelpView(keys.helpLine()),
		},
		renderer:     renderer,
		previewWidth: previewWidth,
		statusChan:   channels.StatusChan,
		treeChan:     channels.TreeChan,
		progressChan: channels.ProgressChan,
		previewChan:  channels.PreviewChan,
		commandChan:  channels.CommandChan,
		readyChan:    channels.ReadyChan,
	}
}

// Internal messages
type statusUpdateMsg statusMsg
type treeReceivedMsg models.Tree
type progressReceivedMsg models.Progress
type previewReceivedMsg string

// Init initializes the model
func (m BubbleTeaModel) Init() tea.Cmd {
	// Signal that UI is ready
	if m.readyChan != nil {
		close(m.readyChan)
	}

	return tea.Batch(
		m.state.Spinner.Tick,
		listenForStatus(m.statusChan),
		listenForTree(m.treeChan),
		listenForProgress(m.progressChan),
		listenForPreview(m.previewChan),
	)
}

// Update handles messages
func (m BubbleTeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.state.Viewport.Width = m.previewWidth
		m.state.Viewport.Height = views.PreviewHeight(m.state)
		m.clampCursor()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		return m, cmd

	case statusUpdateMsg:
		m.state.StatusPhase = msg.phase
		m.state.StatusMessage = msg.message
		m.state.Busy = msg.phase == PhaseBusy
		if !m.state.Busy {
			m.state.Progress = models.Progress{}
		}
		return m, listenForStatus(m.statusChan)

	case treeReceivedMsg:
		m.applyTree(models.Tree(msg))
		return m, listenForTree(m.treeChan)

	case progressReceivedMsg:
		m.state.Progress = models.Progress(msg)
		return m, listenForProgress(m.progressChan)

	case previewReceivedMsg:
		m.updatePreview(string(msg))
		m.state.ShowPreview = true
		return m, listenForPreview(m.previewChan)
	}

	return m, nil
}

// applyTree swaps in a new snapshot and keeps the cursor on the same path
// when it is still visible.
func (m *BubbleTeaModel) applyTree(tree models.Tree) {
	current, ok := m.state.CurrentRow()
	m.state.Tree = tree
	if ok {
		for i, row := range tree.Rows {
			if row.Path == current.Path {
				m.state.Cursor = i
				break
			}
		}
	}
	m.clampCursor()
}

// handleKeyPress handles keyboard input
func (m BubbleTeaModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.state.Mode != models.ModeBrowse {
		return m.handlePromptKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Cancel):
		if m.state.Busy {
			m.send(UICommand{Type: CmdCancel})
		} else if m.state.ShowPreview {
			m.state.ShowPreview = false
		}

	case key.Matches(msg, keys.Up):
		m.state.Cursor--
		m.clampCursor()

	case key.Matches(msg, keys.Down):
		m.state.Cursor++
		m.clampCursor()

	case key.Matches(msg, keys.PageUp):
		m.state.Cursor -= views.BodyHeight(m.state)
		m.clampCursor()

	case key.Matches(msg, keys.PageDown):
		m.state.Cursor += views.BodyHeight(m.state)
		m.clampCursor()

	case key.Matches(msg, keys.Open), key.Matches(msg, keys.Expand):
		if row, ok := m.state.CurrentRow(); ok && row.IsDir {
			// enter toggles, right only expands
			expanded := true
			if key.Matches(msg, keys.Open) {
				expanded = !row.Expanded
			}
			m.send(UICommand{
				Type: CmdExpand,
				Args: map[string]any{"path": row.Path, "expanded": expanded},
			})
		}

	case key.Matches(msg, keys.Collapse):
		m.collapseOrParent()

	case key.Matches(msg, keys.Toggle):
		if row, ok := m.state.CurrentRow(); ok {
			m.send(UICommand{
				Type: CmdToggle,
				Args: map[string]any{"path": row.Path, "is_dir": row.IsDir},
			})
		}

	case key.Matches(msg, keys.Search):
		m.openPrompt(models.ModeSearch, m.state.Tree.Search)

	case key.Matches(msg, keys.Exclude):
		m.openPrompt(models.ModeExcludeDirs, m.state.Tree.ExcludeDirectories)

	case key.Matches(msg, keys.Minify):
		m.send(UICommand{Type: CmdMinify, Args: map[string]any{"enabled": !m.state.Tree.Minify}})

	case key.Matches(msg, keys.DeselectAll):
		m.send(UICommand{Type: CmdDeselectAll})

	case key.Matches(msg, keys.Copy):
		m.send(UICommand{Type: CmdCopy})

	case key.Matches(msg, keys.Preview):
		if m.state.ShowPreview {
			m.state.ShowPreview = false
		} else {
			m.send(UICommand{Type: CmdPreview})
		}

	case key.Matches(msg, keys.Refresh):
		m.send(UICommand{Type: CmdRefresh})

	case key.Matches(msg, keys.ScrollUp):
		m.state.Viewport.HalfViewUp()

	case key.Matches(msg, keys.ScrollDown):
		m.state.Viewport.HalfViewDown()
	}

	return m, nil
}

// handlePromptKey routes keys to the active text prompt.
func (m BubbleTeaModel) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePrompt()
		return m, nil

	case tea.KeyEnter:
		value := strings.TrimSpace(m.state.Input.Value())
		switch m.state.Mode {
		case models.ModeSearch:
			m.send(UICommand{Type: CmdSearch, Args: map[string]any{"terms": value}})
			m.closePrompt()
		case models.ModeExcludeDirs:
			m.state.PendingExcludeDirs = value
			m.openPrompt(models.ModeExcludeTypes, m.state.Tree.ExcludeFileTypes)
		case models.ModeExcludeTypes:
			m.send(UICommand{
				Type: CmdExclusions,
				Args: map[string]any{
					"directories": m.state.PendingExcludeDirs,
					"file_types":  value,
				},
			})
			m.closePrompt()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.state.Input, cmd = m.state.Input.Update(msg)
	return m, cmd
}

func (m *BubbleTeaModel) openPrompt(mode models.Mode, value string) {
	m.state.Mode = mode
	m.state.Input.SetValue(value)
	m.state.Input.CursorEnd()
	m.state.Input.Focus()
}

func (m *BubbleTeaModel) closePrompt() {
	m.state.Mode = models.ModeBrowse
	m.state.PendingExcludeDirs = ""
	m.state.Input.SetValue("")
	m.state.Input.Blur()
}

// collapseOrParent collapses an expanded directory, otherwise moves the
// cursor to the row's parent.
func (m *BubbleTeaModel) collapseOrParent() {
	row, ok := m.state.CurrentRow()
	if !ok {
		return
	}
	if row.IsDir && row.Expanded {
		m.send(UICommand{Type: CmdExpand, Args: map[string]any{"path": row.Path, "expanded": false}})
		return
	}
	for i := m.state.Cursor - 1; i >= 0; i-- {
		if m.state.Tree.Rows[i].Depth < row.Depth {
			m.state.Cursor = i
			m.clampCursor()
			return
		}
	}
}

// clampCursor keeps the cursor on a row and inside the scroll window.
func (m *BubbleTeaModel) clampCursor() {
	n := len(m.state.Tree.Rows)
	if m.state.Cursor >= n {
		m.state.Cursor = n - 1
	}
	if m.state.Cursor < 0 {
		m.state.Cursor = 0
	}

	height := views.BodyHeight(m.state)
	if m.state.Cursor < m.state.Offset {
		m.state.Offset = m.state.Cursor
	}
	if m.state.Cursor >= m.state.Offset+height {
		m.state.Offset = m.state.Cursor - height + 1
	}
	if m.state.Offset < 0 {
		m.state.Offset = 0
	}
}

// send forwards a command without blocking the event loop.
func (m *BubbleTeaModel) send(cmd UICommand) {
	select {
	case m.commandChan <- cmd:
	default:
		m.state.StatusPhase = PhaseWarning
		m.state.StatusMessage = "busy, input dropped"
	}
}

// updatePreview renders the export document into the viewport.
func (m *BubbleTeaModel) updatePreview(document string) {
	content := services.RenderMarkdown(document, m.previewWidth-2, m.renderer)
	m.state.Viewport.SetContent(content)
	m.state.Viewport.GotoTop()
}

// Helper commands for listening to channels
func listenForStatus(ch <-chan statusMsg) tea.Cmd {
	return func() tea.Msg {
		return statusUpdateMsg(<-ch)
	}
}

func listenForTree(ch <-chan models.Tree) tea.Cmd {
	return func() tea.Msg {
		return treeReceivedMsg(<-ch)
	}
}

func listenForProgress(ch <-chan models.Progress) tea.Cmd {
	return func() tea.Msg {
		return progressReceivedMsg(<-ch)
	}
}

func listenForPreview(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		return previewReceivedMsg(<-ch)
	}
}
