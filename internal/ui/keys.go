package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the browse-mode bindings.
type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Open        key.Binding
	Expand      key.Binding
	Collapse    key.Binding
	Toggle      key.Binding
	Search      key.Binding
	Exclude     key.Binding
	Minify      key.Binding
	DeselectAll key.Binding
	Copy        key.Binding
	Preview     key.Binding
	Refresh     key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	Cancel      key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PageUp:      key.NewBinding(key.WithKeys("pgup")),
	PageDown:    key.NewBinding(key.WithKeys("pgdown")),
	Open:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Expand:      key.NewBinding(key.WithKeys("right", "l")),
	Collapse:    key.NewBinding(key.WithKeys("left", "h")),
	Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
	Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Exclude:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "exclude")),
	Minify:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "minify")),
	DeselectAll: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear")),
	Copy:        key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
	Preview:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
	Refresh:     key.NewBinding(key.WithKeys("r")),
	ScrollUp:    key.NewBinding(key.WithKeys("ctrl+u")),
	ScrollDown:  key.NewBinding(key.WithKeys("ctrl+d")),
	Cancel:      key.NewBinding(key.WithKeys("esc")),
	Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}

// helpLine renders the short help shown under the tree.
func (k keyMap) helpLine() []key.Binding {
	return []key.Binding{k.Toggle, k.Search, k.Exclude, k.Minify, k.DeselectAll, k.Copy, k.Preview, k.Quit}
}
