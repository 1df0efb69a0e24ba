package adapter

import "context"

// Command is a user action the orchestrator can run.
// Each command must be safe to call from the executor goroutine only.
type Command interface {
	// Name returns the UI command type this command handles
	Name() string

	// Execute runs the command with the arguments sent by the UI.
	// The returned string is a short status message for the user.
	Execute(ctx context.Context, args map[string]any) (string, error)
}
