package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	ToGrid   key.Binding
	ToSearch key.Binding

	// Actions
	Open         key.Binding
	LoadMore     key.Binding
	Filter       key.Binding
	Sort         key.Binding
	DismissError key.Binding
	Clear        key.Binding
	Close        key.Binding
	Submit       key.Binding
	Quit         key.Binding
	ForceQuit    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "right"),
		),
		ToGrid: key.NewBinding(
			key.WithKeys("down", "tab"),
			key.WithHelp("↓/tab", "results"),
		),
		ToSearch: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "i"),
			key.WithHelp("tab/i", "search box"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "load more"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		DismissError: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss error"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc", "ctrl+u"),
			key.WithHelp("esc", "clear"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc/q", "close"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search now"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// GridHelp returns the bindings listed in the footer while browsing results
func (k KeyMap) GridHelp() []key.Binding {
	return []key.Binding{k.Open, k.LoadMore, k.Filter, k.Sort, k.ToSearch, k.Clear, k.Quit}
}

// InputHelp returns the bindings listed in the footer while typing
func (k KeyMap) InputHelp() []key.Binding {
	return []key.Binding{k.Submit, k.ToGrid, k.Clear}
}
