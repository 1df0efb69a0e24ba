package picker

import (
	wspath "github.com/Planeshifter/llm-context-builder/internal/service/path"
)

// Mark is one SelectionMap entry.
type Mark struct {
	// Weight is the token count for a file. For a directory it is 1 when fully
	// selected and 0 when partially selected.
	Weight int
	Dir    bool
}

// SelectionMap maps absolute paths to their selection marks. Absent paths are
// unselected.
type SelectionMap map[string]Mark

// Clone returns an independent copy.
func (m SelectionMap) Clone() SelectionMap {
	out := make(SelectionMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ComputeDirectoryTotals sums file weights into every ancestor directory up to
// and including root. Directory marks never contribute.
func ComputeDirectoryTotals(selection SelectionMap, root string) map[string]int {
	totals := make(map[string]int)
	for path, mark := range selection {
		if mark.Dir {
			continue
		}
		for _, dir := range wspath.Ancestors(path, root) {
			totals[dir] += mark.Weight
		}
	}
	return totals
}
