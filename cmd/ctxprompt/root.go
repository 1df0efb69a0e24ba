package main

import (
	"os"

	"github.com/spf13/cobra"
)

// flags shared by all commands
type globalFlags struct {
	configPath string
	root       string
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "ctxprompt",
		Short: "Build LLM context prompts from workspace files",
		Long: `ctxprompt shows the workspace as a tree. Select files and directories,
watch the token total, then copy the selection as one prompt.

Keys: space select, / search, e exclusions, m minify, c copy, p preview,
x clear, esc cancel a running selection, q quit.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), flags)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is $HOME/.config/ctxprompt/config.json)")
	rootCmd.PersistentFlags().StringVar(&flags.root, "root", "", "workspace root (default is the current directory)")

	rootCmd.AddCommand(newExportCmd(flags))
	return rootCmd
}

// workspaceRoot returns the --root flag or the working directory.
func (f *globalFlags) workspaceRoot() (string, error) {
	if f.root != "" {
		return f.root, nil
	}
	return os.Getwd()
}
