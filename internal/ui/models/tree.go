package models

// Check is the checkbox state of a row.
type Check int

const (
	CheckNone Check = iota
	CheckPartial
	CheckFull
)

// TreeRow is one visible line of the file tree.
type TreeRow struct {
	Path     string
	Label    string
	Depth    int
	IsDir    bool
	Expanded bool
	Check    Check
}

// Tree is a full snapshot of what the tree pane shows.
type Tree struct {
	Rows          []TreeRow
	TotalTokens   int
	SelectedFiles int
	Search        string
	Minify        bool
	// ExcludeDirectories and ExcludeFileTypes are the comma-joined rules,
	// used to prefill the exclusion prompts.
	ExcludeDirectories string
	ExcludeFileTypes   string
}

// Progress reports a running bulk operation.
type Progress struct {
	Done  int
	Total int
}
