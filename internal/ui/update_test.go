package ui

import (
	"testing"

	"github.com/Planeshifter/llm-context-builder/internal/ui/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestModel() (BubbleTeaModel, chan UICommand) {
	channels := NewUIChannels()
	model := newBubbleTeaModel(channels, &MockMarkdownRenderer{}, mockSpinnerFactory, 60)
	model.state.Width = 100
	model.state.Height = 20
	return model, channels.CommandChan
}

func testTree() models.Tree {
	return models.Tree{
		Rows: []models.TreeRow{
			{Path: "/ws/src", Label: "src", IsDir: true, Expanded: true, Check: models.CheckPartial},
			{Path: "/ws/src/main.go", Label: "main.go (12 tokens)", Depth: 1, Check: models.CheckFull},
			{Path: "/ws/src/util.go", Label: "util.go", Depth: 1},
			{Path: "/ws/README.md", Label: "README.md"},
		},
		TotalTokens:        12,
		SelectedFiles:      1,
		ExcludeDirectories: ".git, node_modules",
		ExcludeFileTypes:   ".png",
	}
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m BubbleTeaModel, msg tea.Msg) BubbleTeaModel {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(BubbleTeaModel)
	require.True(t, ok)
	return out
}

func nextCommand(t *testing.T, ch chan UICommand) UICommand {
	t.Helper()
	select {
	case cmd := <-ch:
		return cmd
	default:
		t.Fatal("expected a command")
		return UICommand{}
	}
}

func TestInit_ReturnsCommands(t *testing.T) {
	model, _ := createTestModel()
	cmd := model.Init()
	assert.NotNil(t, cmd)
}

func TestUpdate_CursorMovement(t *testing.T) {
	model, _ := createTestModel()
	model = update(t, model, treeReceivedMsg(testTree()))

	model = update(t, model, runeKey("j"))
	model = update(t, model, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, model.state.Cursor)

	for i := 0; i < 5; i++ {
		model = update(t, model, runeKey("j"))
	}
	assert.Equal(t, 3, model.state.Cursor)

	model = update(t, model, runeKey("k"))
	assert.Equal(t, 2, model.state.Cursor)
}

func TestUpdate_SpaceSendsToggle(t *testing.T) {
	model, cmds := createTestModel()
	model = update(t, model, treeReceivedMsg(testTree()))

	update(t, model, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	cmd := nextCommand(t, cmds)
	assert.Equal(t, CmdToggle, cmd.Type)
	assert.Equal(t, "/ws/src", cmd.Args["path"])
	assert.Equal(t, true, cmd.Args["is_dir"])
}

func TestUpdate_EnterTogglesExpansion(t *testing.T) {
	model, cmds := createTestModel()
	model = update(t, model, treeReceivedMsg(testTree()))

	update(t, model, tea.KeyMsg{Type: tea.KeyEnter})

	cmd := nextCommand(t, cmds)
	assert.Equal(t, CmdExpand, cmd.Type)
	assert.Equal(t, false, cmd.Args["expanded"])
}

func TestUpdate_EnterOnFileDoesNothing(t *testing.T) {
	model, cmds := createTestModel()
	model = update(t, model, treeReceivedMsg(testTree()))
	model.state.Cursor = 3

	update(t, model, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, cmds)
}

func TestUpdate_LeftJumpsToParent(t *testing.T) {
	model, cmds := createTestModel()
	model = update(t, model, treeReceivedMsg(testTree()))
	model.state.Cursor = 2

	model = update(t, model, runeKey("h"))

	assert.Equal(t, 0, model.state.Cursor)
	assert.Empty(t, cmds)

	update(t, model, runeKey("h"))
	cmd := nextCommand(t, cmds)
	assert.Equal(t, CmdExpand, cmd.Type)
	assert.Equal(t, false, cmd.Args["expanded"])
}

func TestUpdate_SearchPrompt(t *testing.T) {
	t.Run("enter submits terms", func(t *testing.T) {
		model, cmds := createTestModel()
		model = update(t, model, runeKey("/"))
		assert.Equal(t, models.ModeSearch, model.state.Mode)

		model = update(t, model, runeKey("go, md"))
		model = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})

		assert.Equal(t, models.ModeBrowse, model.state.Mode)
		cmd := nextCommand(t, cmds)
		assert.Equal(t, CmdSearch, cmd.Type)
		assert.Equal(t, "go, md", cmd.Args["terms"])
	})

	t.Run("esc reverts", func(t *testing.T) {
		model, cmds := createTestModel()
		tree := testTree()
		tree.Search = "go"
		model = update(t, model, treeReceivedMsg(tree))

		model = update(t, model, runeKey("/"))
		assert.Equal(t, "go", model.state.Input.Value())
		model = update(t, model, runeKey("x"))
		model = update(t, model, tea.KeyMsg{Type: tea.KeyEsc})

		assert.Equal(t, models.ModeBrowse, model.state.Mode)
		assert.Empty(t, cmds)
	})

	t.Run("keys are not shortcuts while typing", func(t *testing.T) {
		model, cmds := createTestModel()
		model = update(t, model, runeKey("/"))
		model = update(t, model, runeKey("q"))

		assert.Equal(t, "q", model.state.Input.Value())
		assert.Empty(t, cmds)
	})
}

func TestUpdate_ExclusionPromptTwoSteps(t *testing.T) {
	model, cmds := createTestModel()
	model = update(t, model, treeReceivedMsg(testTree()))

	model = update(t, model, runeKey("e"))
	assert.Equal(t, models.ModeExcludeDirs, model.state.Mode)
	assert.Equal(t, ".git, node_modules", model.state.Input.Value())

	model = update(t, model, runeKey(", dist"))
	model = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, models.ModeExcludeTypes, model.state.Mode)
	assert.Equal(t, ".png", model.state.Input.Value())
	assert.Empty(t, cmds)

	model = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, models.ModeBrowse, model.state.Mode)

	cmd := nextCommand(t, cmds)
	assert.Equal(t, CmdExclusions, cmd.Type)
	assert.Equal(t, ".git, node_modules, dist", cmd.Args["directories"])
	assert.Equal(t, ".png", cmd.Args["file_types"])
}

func TestUpdate_SimpleCommands(t *testing.T) {
	tests := []struct {
		key      string
		wantType string
	}{
		{"x", CmdDeselectAll},
		{"c", CmdCopy},
		{"p", CmdPreview},
		{"r", CmdRefresh},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			model, cmds := createTestModel()
			update(t, model, runeKey(tt.key))
			assert.Equal(t, tt.wantType, nextCommand(t, cmds).Type)
		})
	}
}

func TestUpdate_MinifyFlipsCurrentValue(t *testing.T) {
	model, cmds := createTestModel()
	tree := testTree()
	tree.Minify = true
	model = update(t, model, treeReceivedMsg(tree))

	update(t, model, runeKey("m"))

	cmd := nextCommand(t, cmds)
	assert.Equal(t, CmdMinify, cmd.Type)
	assert.Equal(t, false, cmd.Args["enabled"])
}

func TestUpdate_EscCancelsOnlyWhileBusy(t *testing.T) {
	model, cmds := createTestModel()

	update(t, model, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, cmds)

	model = update(t, model, statusUpdateMsg{phase: PhaseBusy, message: "Selecting src"})
	assert.True(t, model.state.Busy)

	update(t, model, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, CmdCancel, nextCommand(t, cmds).Type)
}

func TestUpdate_StatusClearsProgress(t *testing.T) {
	model, _ := createTestModel()
	model = update(t, model, statusUpdateMsg{phase: PhaseBusy})
	model = update(t, model, progressReceivedMsg{Done: 3, Total: 9})
	assert.Equal(t, 3, model.state.Progress.Done)

	model = update(t, model, statusUpdateMsg{phase: PhaseDone, message: "Selected 9 files"})

	assert.False(t, model.state.Busy)
	assert.Equal(t, models.Progress{}, model.state.Progress)
	assert.Equal(t, "Selected 9 files", model.state.StatusMessage)
}

func TestUpdate_TreeKeepsCursorOnPath(t *testing.T) {
	model, _ := createTestModel()
	model = update(t, model, treeReceivedMsg(testTree()))
	model.state.Cursor = 3

	collapsed := testTree()
	collapsed.Rows = []models.TreeRow{collapsed.Rows[0], collapsed.Rows[3]}
	model = update(t, model, treeReceivedMsg(collapsed))

	row, ok := model.state.CurrentRow()
	require.True(t, ok)
	assert.Equal(t, "/ws/README.md", row.Path)
}

func TestUpdate_PreviewRendersDocument(t *testing.T) {
	model, _ := createTestModel()
	model.renderer = &MockMarkdownRenderer{RenderFunc: func(s string, _ int) (string, error) {
		return "RENDERED " + s, nil
	}}

	model = update(t, model, previewReceivedMsg("File: a.txt"))

	assert.True(t, model.state.ShowPreview)
	assert.Contains(t, model.state.Viewport.View(), "RENDERED File: a.txt")

	model = update(t, model, runeKey("p"))
	assert.False(t, model.state.ShowPreview)
}

func TestUpdate_ScrollFollowsCursor(t *testing.T) {
	model, _ := createTestModel()
	model.state.Height = 5 // two visible rows
	model = update(t, model, treeReceivedMsg(testTree()))

	model = update(t, model, runeKey("j"))
	model = update(t, model, runeKey("j"))
	model = update(t, model, runeKey("j"))

	assert.Equal(t, 3, model.state.Cursor)
	assert.Equal(t, 2, model.state.Offset)
}

func TestUpdate_CtrlCQuits(t *testing.T) {
	model, _ := createTestModel()
	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
