// Package main provides the ctxprompt command: a terminal file picker that
// builds token-counted context prompts from a workspace.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
