package views

import (
	"testing"

	"github.com/Planeshifter/llm-context-builder/internal/ui/models"
	"github.com/stretchr/testify/assert"
)

func TestRenderStatus_Busy(t *testing.T) {
	state := models.State{
		StatusPhase:   "busy",
		StatusMessage: "Selecting src",
		Busy:          true,
		Progress:      models.Progress{Done: 4, Total: 10},
		Spinner:       createTestSpinner(),
	}

	result := RenderStatus(state)

	assert.Contains(t, result, "Selecting src")
	assert.Contains(t, result, "(4/10)")
}

func TestRenderStatus_Done(t *testing.T) {
	state := models.State{
		StatusPhase:   "done",
		StatusMessage: "Copied 3 files",
	}

	result := RenderStatus(state)

	assert.Contains(t, result, "✔")
	assert.Contains(t, result, "Copied 3 files")
}

func TestRenderStatus_Ready(t *testing.T) {
	result := RenderStatus(models.State{StatusPhase: "ready"})
	assert.Contains(t, result, "Ready")
}

func TestRenderStatus_Summary(t *testing.T) {
	state := models.State{
		Width: 80,
		Tree: models.Tree{
			TotalTokens:   1234,
			SelectedFiles: 7,
			Minify:        true,
			Search:        "go, md",
		},
	}

	result := RenderStatus(state)

	assert.Contains(t, result, "7 files")
	assert.Contains(t, result, "1234 tokens")
	assert.Contains(t, result, "minify")
	assert.Contains(t, result, "search: go, md")
}
