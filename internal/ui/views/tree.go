package views

import (
	"strings"

	"github.com/Planeshifter/llm-context-builder/internal/ui/models"
)

// Checkbox returns the marker for a selection state.
func Checkbox(c models.Check) string {
	switch c {
	case models.CheckFull:
		return "[x]"
	case models.CheckPartial:
		return "[~]"
	default:
		return "[ ]"
	}
}

// FormatRow renders a single tree row without cursor highlighting.
func FormatRow(row models.TreeRow) string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("  ", row.Depth))
	sb.WriteString(checkStyle(row.Check).Render(Checkbox(row.Check)))
	sb.WriteByte(' ')
	if row.IsDir {
		if row.Expanded {
			sb.WriteString("▾ ")
		} else {
			sb.WriteString("▸ ")
		}
		sb.WriteString(DirStyle.Render(row.Label))
	} else {
		sb.WriteString("  ")
		sb.WriteString(FileStyle.Render(row.Label))
	}
	return sb.String()
}

// RenderTree renders the rows inside the scroll window.
func RenderTree(s models.State) string {
	if len(s.Tree.Rows) == 0 {
		if s.Tree.Search != "" {
			return FaintStyle.Render("No files match the current search.")
		}
		return FaintStyle.Render("Workspace is empty.")
	}

	height := BodyHeight(s)
	end := s.Offset + height
	if end > len(s.Tree.Rows) {
		end = len(s.Tree.Rows)
	}

	lines := make([]string, 0, height)
	for i := s.Offset; i < end; i++ {
		line := FormatRow(s.Tree.Rows[i])
		if i == s.Cursor {
			line = CursorStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// chromeHeight is the number of lines used by everything but the tree.
const chromeHeight = 3

// BodyHeight is how many tree rows fit on screen.
func BodyHeight(s models.State) int {
	h := s.Height - chromeHeight
	if s.Mode != models.ModeBrowse {
		h -= 2
	}
	if h < 1 {
		return 1
	}
	return h
}
