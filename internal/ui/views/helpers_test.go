package views

import (
	"github.com/Planeshifter/llm-context-builder/internal/ui/models"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

func createTestTextInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.SetValue(value)
	return ti
}

func createTestViewport() viewport.Model {
	return viewport.New(40, 5)
}

func createTestSpinner() spinner.Model {
	return spinner.New()
}

func sampleTree() models.Tree {
	return models.Tree{
		Rows: []models.TreeRow{
			{Path: "/ws/src", Label: "src (12 tokens)", IsDir: true, Expanded: true, Check: models.CheckPartial},
			{Path: "/ws/src/main.go", Label: "main.go (12 tokens)", Depth: 1, Check: models.CheckFull},
			{Path: "/ws/src/util.go", Label: "util.go", Depth: 1},
			{Path: "/ws/docs", Label: "docs", IsDir: true},
		},
		TotalTokens:   12,
		SelectedFiles: 1,
	}
}
