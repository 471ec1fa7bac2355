package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next        key.Binding
	Prev        key.Binding
	Search      key.Binding
	IgnoreCase  key.Binding
	SmartCase   key.Binding
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	Filter      key.Binding
	IncludeMode key.Binding
	ExcludeMode key.Binding
	Quit        key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Next:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Prev:        key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
		Search:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		IgnoreCase:  key.NewBinding(key.WithKeys("alt+i"), key.WithHelp("alt+i", "ignore case")),
		SmartCase:   key.NewBinding(key.WithKeys("alt+s"), key.WithHelp("alt+s", "smart case")),
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Filter:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter tags")),
		IncludeMode: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "include any/all")),
		ExcludeMode: key.NewBinding(key.WithKeys("M"), key.WithHelp("M", "exclude any/all")),
		Quit:        key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

// help returns the bindings relevant to the focused pane.
func (k keyMap) help(f focus) []key.Binding {
	common := []key.Binding{k.Next, k.Search, k.IgnoreCase, k.SmartCase, k.Quit}
	switch f {
	case focusTags:
		return append([]key.Binding{k.Up, k.Down, k.Toggle, k.Filter, k.IncludeMode, k.ExcludeMode}, common...)
	case focusBooks:
		return append([]key.Binding{k.Up, k.Down, k.Toggle}, common...)
	case focusResults:
		return append([]key.Binding{k.Up, k.Down}, common...)
	default:
		return common
	}
}
