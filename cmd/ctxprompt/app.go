package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Planeshifter/llm-context-builder/internal/config"
	"github.com/Planeshifter/llm-context-builder/internal/content"
	"github.com/Planeshifter/llm-context-builder/internal/export"
	"github.com/Planeshifter/llm-context-builder/internal/logging"
	"github.com/Planeshifter/llm-context-builder/internal/orchestrator"
	"github.com/Planeshifter/llm-context-builder/internal/picker"
	"github.com/Planeshifter/llm-context-builder/internal/provider/gemini"
	"github.com/Planeshifter/llm-context-builder/internal/service/fs"
	"github.com/Planeshifter/llm-context-builder/internal/service/git"
	wspath "github.com/Planeshifter/llm-context-builder/internal/service/path"
	"github.com/Planeshifter/llm-context-builder/internal/tokenizer"
	"github.com/Planeshifter/llm-context-builder/internal/ui"
	uiservices "github.com/Planeshifter/llm-context-builder/internal/ui/services"
	"github.com/Planeshifter/llm-context-builder/internal/watch"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const logFileName = "ctxprompt.log"

// Dependencies holds the components required to run the application.
type Dependencies struct {
	Config   *config.Config
	Root     string
	Log      *zap.Logger
	Session  *picker.Session
	Exporter *export.Builder
	// Warnings are non-fatal setup problems to show the user.
	Warnings []string
}

func (d *Dependencies) close() {
	_ = logging.Sync()
}

// loadConfig reads an explicit config file, or the default location.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.NewLoader().LoadFile(path)
	}
	return config.Load()
}

// logPath returns the configured log file. The TUI owns the terminal, so an
// interactive run logs to ~/.config/ctxprompt/ctxprompt.log by default;
// headless runs only log when a path is configured.
func logPath(cfg *config.Config, interactive bool) string {
	if cfg.Log.Path != "" || !interactive {
		return cfg.Log.Path
	}
	dir := config.NewLoader().Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, logFileName)
}

// loadEnv reads .env from the working directory if present.
func loadEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// setup loads configuration and builds the session and exporter.
func setup(ctx context.Context, flags *globalFlags, interactive bool, onChange func()) (*Dependencies, error) {
	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logging.Init(logging.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		OutputPath: logPath(cfg, interactive),
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	deps := &Dependencies{Config: cfg, Log: logging.L()}
	if err := loadEnv(); err != nil {
		deps.Warnings = append(deps.Warnings, fmt.Sprintf("failed to load .env: %v", err))
	}

	root, err := flags.workspaceRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	if err := buildSession(ctx, deps, root, onChange); err != nil {
		return nil, err
	}
	return deps, nil
}

// buildSession wires the filesystem, token counter and content preparer into
// a picker session.
func buildSession(ctx context.Context, deps *Dependencies, root string, onChange func()) error {
	cfg := deps.Config

	canonicalRoot, err := wspath.CanonicaliseRoot(root)
	if err != nil {
		return fmt.Errorf("failed to canonicalize workspace root: %w", err)
	}
	deps.Root = canonicalRoot

	osFS := fs.NewOSFileSystem()

	var ignore picker.IgnoreMatcher = git.NoOpMatcher{}
	if cfg.Picker.RespectGitignore {
		m, err := git.NewIgnoreMatcher(canonicalRoot, osFS)
		if err != nil {
			deps.Log.Warn("gitignore unavailable", zap.Error(err))
			deps.Warnings = append(deps.Warnings, "gitignore rules unavailable")
		} else {
			ignore = m
		}
	}

	counter, err := tokenizer.New(ctx, cfg, gemini.NewRemoteFactory())
	if err != nil {
		deps.Log.Warn("token counter unavailable, using estimate",
			zap.String("backend", cfg.Tokenizer.Backend),
			zap.Error(err))
		deps.Warnings = append(deps.Warnings, fmt.Sprintf("%s tokenizer unavailable, token counts are estimates", cfg.Tokenizer.Backend))
		counter = tokenizer.Approx{}
	}

	preparer := content.NewPreparer(content.EsbuildMinifier{})
	session, err := picker.NewSession(picker.Options{
		Root:               canonicalRoot,
		FS:                 osFS,
		Counter:            counter,
		Preparer:           preparer,
		Exclusions:         picker.NewExclusions(cfg.Picker.ExcludeDirectories, cfg.Picker.ExcludeFileTypes, ignore),
		Minify:             cfg.Picker.MinifyCode,
		ShowHidden:         cfg.UI.ShowHidden,
		MaxConcurrentReads: cfg.Picker.MaxConcurrentReads,
		Logger:             deps.Log.Named("picker"),
		OnChange:           onChange,
	})
	if err != nil {
		return err
	}

	deps.Session = session
	deps.Exporter = export.NewBuilder(osFS, preparer, deps.Log.Named("export"))
	return nil
}

func createRealUI(cfg *config.Config) ui.UserInterface {
	channels := ui.NewUIChannels()
	renderer := uiservices.NewGlamourRenderer("dark")
	spinnerFactory := func() spinner.Model {
		return spinner.New(spinner.WithSpinner(spinner.Dot))
	}
	return ui.NewUI(channels, renderer, spinnerFactory, cfg.UI.PreviewWidth)
}

func runTUI(ctx context.Context, flags *globalFlags) error {
	// The session exists before the orchestrator it notifies.
	var orchRef atomic.Pointer[orchestrator.Orchestrator]
	notify := func() {
		if o := orchRef.Load(); o != nil {
			o.Notify()
		}
	}

	deps, err := setup(ctx, flags, true, notify)
	if err != nil {
		return err
	}
	defer deps.close()

	userInterface := createRealUI(deps.Config)
	orch := orchestrator.New(orchestrator.Options{
		Session:      deps.Session,
		Exporter:     deps.Exporter,
		Clipboard:    export.SystemClipboard{},
		UI:           userInterface,
		Logger:       deps.Log.Named("orchestrator"),
		RefreshDelay: time.Duration(deps.Config.Picker.RefreshDelayMs) * time.Millisecond,
	})
	orchRef.Store(orch)

	return runInteractive(ctx, deps, userInterface, orch)
}

func runInteractive(ctx context.Context, deps *Dependencies, userInterface ui.UserInterface, orch *orchestrator.Orchestrator) error {
	// Create cancellable context for goroutines
	orchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup

	if deps.Config.Picker.WatchFilesystem {
		exclusions := deps.Session.Exclusions
		w, err := watch.New(deps.Root, func(rel string) bool {
			return exclusions().IsExcluded(rel, true)
		}, func(string) { orch.Notify() }, deps.Log.Named("watch"))
		if err != nil {
			deps.Log.Warn("filesystem watcher unavailable", zap.Error(err))
			deps.Warnings = append(deps.Warnings, "filesystem watching unavailable")
		} else {
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer w.Close()
				if err := w.Run(orchCtx); err != nil && !errors.Is(err, context.Canceled) {
					deps.Log.Warn("filesystem watcher stopped", zap.Error(err))
				}
			}()
		}
	}

	// Orchestrator: waits for the UI, then dispatches commands
	wg.Add(1)
	go func() {
		defer wg.Done()

		select {
		case <-userInterface.Ready():
		case <-orchCtx.Done():
			return
		}

		for _, warning := range deps.Warnings {
			userInterface.WriteStatus(ui.PhaseWarning, warning)
		}
		deps.Log.Info("session started", zap.String("root", deps.Root))

		if err := orch.Run(orchCtx); err != nil {
			deps.Log.Error("orchestrator stopped", zap.Error(err))
		}
	}()

	// Run UI in main thread (blocks until exit)
	err := userInterface.Start()

	// UI exited, trigger shutdown
	cancel()
	wg.Wait()

	if err != nil {
		return fmt.Errorf("error running UI: %w", err)
	}
	return nil
}
