package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/Planeshifter/llm-context-builder/internal/export"
	"github.com/spf13/cobra"
)

type exportFlags struct {
	clipboard bool
	minify    bool
	search    string
}

func newExportCmd(global *globalFlags) *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export [paths...]",
		Short: "Print the context prompt for paths without the TUI",
		Long: `Selects each path (files, or directories recursively with the configured
exclusions applied) and prints the resulting context prompt to stdout.
The token total is written to stderr.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runExport(ctx, cmd, global, flags, args)
		},
	}

	cmd.Flags().BoolVar(&flags.clipboard, "clipboard", false, "copy to the clipboard instead of printing")
	cmd.Flags().BoolVar(&flags.minify, "minify", false, "minify JS/TS/CSS before counting and exporting")
	cmd.Flags().StringVar(&flags.search, "search", "", "comma-separated terms; directories only contribute matching files")
	return cmd
}

func runExport(ctx context.Context, cmd *cobra.Command, global *globalFlags, flags *exportFlags, args []string) error {
	deps, err := setup(ctx, global, false, nil)
	if err != nil {
		return err
	}
	defer deps.close()

	session := deps.Session
	if flags.minify {
		session.SetMinify(true)
	}
	session.SetSearchTerms(flags.search)

	for _, arg := range args {
		abs, err := session.Abs(arg)
		if err != nil {
			return err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("export %s: %w", arg, err)
		}
		rel, err := session.Rel(abs)
		if err != nil {
			return err
		}
		if rel != "" && session.Exclusions().IsExcluded(rel, info.IsDir()) {
			fmt.Fprintf(cmd.ErrOrStderr(), "skipped excluded %s\n", arg)
			continue
		}

		res, err := session.Select(ctx, abs, info.IsDir(), nil)
		if err != nil {
			return fmt.Errorf("select %s: %w", arg, err)
		}
		if res.Cancelled {
			return errors.New("export cancelled")
		}
	}

	var res export.Result
	if flags.clipboard {
		res, err = deps.Exporter.Copy(session, export.SystemClipboard{})
	} else {
		res, err = deps.Exporter.Build(session)
		if err == nil {
			_, err = fmt.Fprint(cmd.OutOrStdout(), res.Document)
		}
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%d files, %d tokens\n", res.Files, res.Tokens)
	for _, path := range res.Skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s\n", path)
	}
	return nil
}
