package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Planeshifter/llm-context-builder/internal/debounce"
	"github.com/Planeshifter/llm-context-builder/internal/export"
	"github.com/Planeshifter/llm-context-builder/internal/orchestrator/adapter"
	"github.com/Planeshifter/llm-context-builder/internal/picker"
	"github.com/Planeshifter/llm-context-builder/internal/ui"
	uimodels "github.com/Planeshifter/llm-context-builder/internal/ui/models"
	"go.uber.org/zap"
)

// queueSize bounds user actions waiting behind a running operation.
const queueSize = 64

// Orchestrator connects the UI to the picker session. User commands run one
// at a time on an executor goroutine; cancel requests bypass the queue.
type Orchestrator struct {
	session   *picker.Session
	exporter  *export.Builder
	clipboard export.Clipboard
	ui        ui.UserInterface
	log       *zap.Logger
	commands  map[string]adapter.Command
	refresher *debounce.Debouncer

	cancelMu sync.Mutex
	cancelOp context.CancelFunc
}

// Options configures an Orchestrator.
type Options struct {
	Session   *picker.Session
	Exporter  *export.Builder
	Clipboard export.Clipboard
	UI        ui.UserInterface
	Logger    *zap.Logger
	// RefreshDelay is the debounce window for tree reloads.
	RefreshDelay time.Duration
}

// New creates a new Orchestrator instance
func New(opts Options) *Orchestrator {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	o := &Orchestrator{
		session:   opts.Session,
		exporter:  opts.Exporter,
		clipboard: opts.Clipboard,
		ui:        opts.UI,
		log:       log,
	}
	o.refresher = debounce.New(opts.RefreshDelay, o.pushTree)

	o.commands = make(map[string]adapter.Command)
	for _, c := range o.defaultCommands() {
		o.commands[c.Name()] = c
	}
	return o
}

// Notify schedules a debounced tree reload. It is safe to call from any
// goroutine, e.g. session change hooks and filesystem watchers.
func (o *Orchestrator) Notify() {
	o.refresher.Trigger()
}

// Run dispatches UI commands until ctx is cancelled or the command channel
// closes.
func (o *Orchestrator) Run(ctx context.Context) error {
	queue := make(chan ui.UICommand, queueSize)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for cmd := range queue {
			o.execute(ctx, cmd)
		}
	}()

	defer func() {
		o.cancelRunning()
		close(queue)
		wg.Wait()
		o.refresher.Stop()
	}()

	o.pushTree()

	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd, ok := <-o.ui.Commands():
			if !ok {
				return nil
			}
			if cmd.Type == ui.CmdCancel {
				o.cancelRunning()
				continue
			}
			select {
			case queue <- cmd:
			default:
				o.ui.WriteStatus(ui.PhaseWarning, "Too many pending actions, input dropped")
			}
		}
	}
}

// Execute runs a single command synchronously.
func (o *Orchestrator) Execute(ctx context.Context, cmd ui.UICommand) {
	o.execute(ctx, cmd)
}

func (o *Orchestrator) execute(ctx context.Context, cmd ui.UICommand) {
	if ctx.Err() != nil {
		return
	}

	c, ok := o.commands[cmd.Type]
	if !ok {
		o.log.Warn("unknown command", zap.String("type", cmd.Type))
		o.ui.WriteStatus(ui.PhaseError, fmt.Sprintf("unknown command '%s'", cmd.Type))
		return
	}

	opCtx, cancel := context.WithCancel(ctx)
	o.setCancel(cancel)
	defer func() {
		o.setCancel(nil)
		cancel()
	}()

	msg, err := c.Execute(opCtx, cmd.Args)
	o.report(cmd.Type, msg, err)

	// Reflect the result right away instead of waiting for the window.
	o.refresher.Trigger()
	o.refresher.Flush()
}

// report turns a command outcome into a status line.
func (o *Orchestrator) report(name, msg string, err error) {
	switch {
	case err == nil:
		if msg != "" {
			o.ui.WriteStatus(ui.PhaseDone, msg)
		} else {
			o.ui.WriteStatus(ui.PhaseReady, "")
		}
	case errors.Is(err, picker.ErrCancelled):
		o.ui.WriteStatus(ui.PhaseWarning, "Cancelled, selection restored")
	case errors.Is(err, picker.ErrNoMatches):
		o.ui.WriteStatus(ui.PhaseWarning, "No files match the current search")
	case errors.Is(err, export.ErrEmptySelection):
		o.ui.WriteStatus(ui.PhaseWarning, "No files selected")
	default:
		o.log.Error("command failed", zap.String("command", name), zap.Error(err))
		o.ui.WriteStatus(ui.PhaseError, err.Error())
	}
}

func (o *Orchestrator) setCancel(cancel context.CancelFunc) {
	o.cancelMu.Lock()
	defer o.cancelMu.Unlock()
	o.cancelOp = cancel
}

func (o *Orchestrator) cancelRunning() {
	o.cancelMu.Lock()
	defer o.cancelMu.Unlock()
	if o.cancelOp != nil {
		o.cancelOp()
	}
}

// pushTree projects the session and sends it to the UI.
func (o *Orchestrator) pushTree() {
	o.ui.WriteTree(o.snapshot())
}

func (o *Orchestrator) snapshot() uimodels.Tree {
	rows := o.session.VisibleRows()
	tree := uimodels.Tree{
		Rows:          make([]uimodels.TreeRow, 0, len(rows)),
		TotalTokens:   o.session.TotalTokens(),
		SelectedFiles: len(o.session.SelectedFiles()),
		Search:        strings.Join(o.session.SearchTerms(), ", "),
		Minify:        o.session.Minify(),
	}
	excl := o.session.Exclusions()
	tree.ExcludeDirectories = strings.Join(excl.Directories, ", ")
	tree.ExcludeFileTypes = strings.Join(excl.FileTypes, ", ")

	for _, r := range rows {
		tree.Rows = append(tree.Rows, uimodels.TreeRow{
			Path:     r.Path,
			Label:    r.Label(),
			Depth:    r.Depth,
			IsDir:    r.IsDir,
			Expanded: r.Expanded,
			Check:    checkOf(r.State),
		})
	}
	return tree
}

func checkOf(s picker.State) uimodels.Check {
	switch s {
	case picker.Full:
		return uimodels.CheckFull
	case picker.Partial:
		return uimodels.CheckPartial
	default:
		return uimodels.CheckNone
	}
}
