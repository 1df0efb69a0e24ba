package ui

import (
	"sync"

	"github.com/Planeshifter/llm-context-builder/internal/ui/models"
	"github.com/Planeshifter/llm-context-builder/internal/ui/services"
	tea "github.com/charmbracelet/bubbletea"
)

// UI implements UserInterface using Bubble Tea
type UI struct {
	program *tea.Program

	// Orchestrator -> UI channels
	statusChan   chan statusMsg
	treeChan     chan models.Tree
	progressChan chan models.Progress
	previewChan  chan string

	// UI -> Orchestrator
	commandChan chan UICommand

	// Ready signal
	readyChan chan struct{}

	writeMu sync.Mutex
}

type statusMsg struct {
	phase   string
	message string
}

// UIChannels holds the channels for UI communication
type UIChannels struct {
	StatusChan   chan statusMsg
	TreeChan     chan models.Tree
	ProgressChan chan models.Progress
	PreviewChan  chan string
	CommandChan  chan UICommand
	ReadyChan    chan struct{} // Signals when UI is ready to accept requests
}

// NewUIChannels creates a new UIChannels struct with default buffers
func NewUIChannels() *UIChannels {
	return &UIChannels{
		StatusChan:   make(chan statusMsg, 10),
		TreeChan:     make(chan models.Tree, 1),
		ProgressChan: make(chan models.Progress, 1),
		PreviewChan:  make(chan string, 1),
		CommandChan:  make(chan UICommand, 32),
		ReadyChan:    make(chan struct{}),
	}
}

// NewUI creates a new Bubble Tea UI
func NewUI(
	channels *UIChannels,
	renderer services.MarkdownRenderer,
	spinnerFactory SpinnerFactory,
	previewWidth int,
) *UI {
	ui := &UI{
		statusChan:   channels.StatusChan,
		treeChan:     channels.TreeChan,
		progressChan: channels.ProgressChan,
		previewChan:  channels.PreviewChan,
		commandChan:  channels.CommandChan,
		readyChan:    channels.ReadyChan,
	}

	model := newBubbleTeaModel(channels, renderer, spinnerFactory, previewWidth)
	ui.program = tea.NewProgram(model, tea.WithAltScreen())

	return ui
}

// Start starts the UI program
func (u *UI) Start() error {
	_, err := u.program.Run()
	return err
}

// WriteStatus updates the status bar. When the buffer is full the oldest
// pending status is discarded, so the latest one always arrives.
func (u *UI) WriteStatus(phase string, message string) {
	u.writeMu.Lock()
	defer u.writeMu.Unlock()
	msg := statusMsg{phase: phase, message: message}
	for {
		select {
		case u.statusChan <- msg:
			return
		default:
		}
		select {
		case <-u.statusChan:
		default:
		}
	}
}

// WriteTree replaces any tree the UI has not consumed yet.
func (u *UI) WriteTree(tree models.Tree) {
	u.writeMu.Lock()
	defer u.writeMu.Unlock()
	replaceLatest(u.treeChan, tree)
}

// WriteProgress keeps only the latest progress report.
func (u *UI) WriteProgress(done, total int) {
	u.writeMu.Lock()
	defer u.writeMu.Unlock()
	replaceLatest(u.progressChan, models.Progress{Done: done, Total: total})
}

// WritePreview sends the export document to the preview pane
func (u *UI) WritePreview(document string) {
	u.writeMu.Lock()
	defer u.writeMu.Unlock()
	replaceLatest(u.previewChan, document)
}

// Commands returns the command channel
func (u *UI) Commands() <-chan UICommand {
	return u.commandChan
}

// Ready returns a channel that is closed when the UI is ready to accept requests
func (u *UI) Ready() <-chan struct{} {
	return u.readyChan
}

// replaceLatest sends v on a channel of capacity 1, discarding an unread
// value. Callers serialize sends.
func replaceLatest[T any](ch chan T, v T) {
	select {
	case ch <- v:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	ch <- v
}
