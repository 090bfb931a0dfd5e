package browser

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/mattsolo1/grove-core/tui/keymap"
)

// KeyMap defines the keybindings for the sidebar TUI
type KeyMap struct {
	keymap.Base
	Expand        key.Binding
	Collapse      key.Binding
	Refresh       key.Binding
	Open          key.Binding
	JumpTo        key.Binding
	OpenItem      key.Binding
	AddProject    key.Binding
	AddStyleguide key.Binding
	Remove        key.Binding
	GoToTop       key.Binding
	GoToBottom    key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	baseHelp := k.Base.FullHelp()
	return append(baseHelp, []key.Binding{
		k.Expand,
		k.Collapse,
		k.GoToTop,
		k.GoToBottom,
		k.Refresh,
	}, []key.Binding{
		k.Open,
		k.JumpTo,
		k.OpenItem,
	}, []key.Binding{
		k.AddProject,
		k.AddStyleguide,
		k.Remove,
	})
}

var keys = KeyMap{
	Base: keymap.NewBase(),
	Expand: key.NewBinding(
		key.WithKeys("enter", "l", "right", " "),
		key.WithHelp("enter/l", "expand"),
	),
	Collapse: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h", "collapse"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open in Zeplin"),
	),
	JumpTo: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "jump to screen or component"),
	),
	OpenItem: key.NewBinding(
		key.WithKeys("O"),
		key.WithHelp("O", "pick and open in Zeplin"),
	),
	AddProject: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add project"),
	),
	AddStyleguide: key.NewBinding(
		key.WithKeys("A"),
		key.WithHelp("A", "add styleguide"),
	),
	Remove: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "remove from sidebar"),
	),
	GoToTop: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "go to top"),
	),
	GoToBottom: key.NewBinding(
		key.WithKeys("G"),
		key.WithHelp("G", "go to bottom"),
	),
}
