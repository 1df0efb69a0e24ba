package orchestrator

import (
	"context"
	"fmt"

	"github.com/Planeshifter/llm-context-builder/internal/orchestrator/adapter"
	"github.com/Planeshifter/llm-context-builder/internal/picker"
	"github.com/Planeshifter/llm-context-builder/internal/ui"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"
)

// ToggleRequest flips the selection of a tree node.
type ToggleRequest struct {
	Path  string
	IsDir bool `mapstructure:"is_dir"`
}

func (r ToggleRequest) Validate() error {
	return validation.ValidateStruct(&r, validation.Field(&r.Path, validation.Required))
}

// ExpandRequest expands or collapses a directory.
type ExpandRequest struct {
	Path     string
	Expanded bool
}

func (r ExpandRequest) Validate() error {
	return validation.ValidateStruct(&r, validation.Field(&r.Path, validation.Required))
}

// SearchRequest replaces the search terms. An empty value clears the filter.
type SearchRequest struct {
	Terms string
}

// ExclusionsRequest replaces the comma-separated exclusion lists.
type ExclusionsRequest struct {
	Directories string
	FileTypes   string `mapstructure:"file_types"`
}

// MinifyRequest toggles minification for files selected afterwards.
type MinifyRequest struct {
	Enabled bool
}

type emptyRequest struct{}

func (o *Orchestrator) defaultCommands() []adapter.Command {
	return []adapter.Command{
		adapter.NewBaseAdapter(ui.CmdToggle, o.toggle),
		adapter.NewBaseAdapter(ui.CmdExpand, o.expand),
		adapter.NewBaseAdapter(ui.CmdSearch, o.search),
		adapter.NewBaseAdapter(ui.CmdExclusions, o.exclusions),
		adapter.NewBaseAdapter(ui.CmdMinify, o.minify),
		adapter.NewBaseAdapter(ui.CmdDeselectAll, o.deselectAll),
		adapter.NewBaseAdapter(ui.CmdCopy, o.copy),
		adapter.NewBaseAdapter(ui.CmdPreview, o.preview),
		adapter.NewBaseAdapter(ui.CmdRefresh, o.refresh),
	}
}

func (o *Orchestrator) toggle(ctx context.Context, req ToggleRequest) (string, error) {
	rel, err := o.session.Rel(req.Path)
	if err != nil {
		return "", err
	}
	if rel == "" {
		rel = "workspace"
	}

	var progress picker.Progress
	if req.IsDir {
		o.ui.WriteStatus(ui.PhaseBusy, fmt.Sprintf("Updating %s", rel))
		progress = func(done, total int) {
			o.ui.WriteProgress(done, total)
		}
	}

	res, err := o.session.Toggle(ctx, req.Path, req.IsDir, progress)
	if err != nil {
		return "", err
	}
	if res.Cancelled {
		o.log.Info("toggle cancelled",
			zap.String("path", rel),
			zap.Int("processed", res.Processed),
			zap.Int("total", res.Total))
		return "", picker.ErrCancelled
	}

	if !req.IsDir {
		return "", nil
	}
	verb := "Deselected"
	if res.Selected {
		verb = "Selected"
	}
	return fmt.Sprintf("%s %d files in %s", verb, res.Total, rel), nil
}

func (o *Orchestrator) expand(_ context.Context, req ExpandRequest) (string, error) {
	o.session.SetExpanded(req.Path, req.Expanded)
	return "", nil
}

func (o *Orchestrator) search(_ context.Context, req SearchRequest) (string, error) {
	o.session.SetSearchTerms(req.Terms)
	if len(o.session.SearchTerms()) == 0 {
		return "Search cleared", nil
	}
	return fmt.Sprintf("Searching: %s", req.Terms), nil
}

func (o *Orchestrator) exclusions(_ context.Context, req ExclusionsRequest) (string, error) {
	o.session.SetExclusions(picker.ParseList(req.Directories), picker.ParseList(req.FileTypes))
	return "Exclusions updated", nil
}

func (o *Orchestrator) minify(_ context.Context, req MinifyRequest) (string, error) {
	o.session.SetMinify(req.Enabled)
	if req.Enabled {
		return "Minification enabled for newly selected files", nil
	}
	return "Minification disabled for newly selected files", nil
}

func (o *Orchestrator) deselectAll(_ context.Context, _ emptyRequest) (string, error) {
	n := o.session.DeselectAll()
	return fmt.Sprintf("Cleared %d selections", n), nil
}

func (o *Orchestrator) copy(_ context.Context, _ emptyRequest) (string, error) {
	res, err := o.exporter.Copy(o.session, o.clipboard)
	if err != nil {
		return "", err
	}
	msg := fmt.Sprintf("Copied %d files (%d tokens) to clipboard", res.Files, res.Tokens)
	if len(res.Skipped) > 0 {
		msg += fmt.Sprintf(", %d skipped", len(res.Skipped))
	}
	return msg, nil
}

func (o *Orchestrator) preview(_ context.Context, _ emptyRequest) (string, error) {
	res, err := o.exporter.Build(o.session)
	if err != nil {
		return "", err
	}
	o.ui.WritePreview(res.Document)
	return fmt.Sprintf("Preview: %d files, %d tokens", res.Files, res.Tokens), nil
}

func (o *Orchestrator) refresh(_ context.Context, _ emptyRequest) (string, error) {
	return "", nil
}
