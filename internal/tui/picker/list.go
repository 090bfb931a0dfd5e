package picker

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattsolo1/grove-core/tui/theme"

	"github.com/mattsolo1/grove-zeplin/pkg/flow"
)

// --- Messages ---

// SelectedMsg is sent when the user picks an entry. Index refers to the
// request's entries, regardless of filtering.
type SelectedMsg struct {
	Index int
}

// DismissedMsg is sent when the user closes the picker or dialog without
// choosing.
type DismissedMsg struct{}

// --- Items ---

type entryItem struct {
	index int
	entry flow.Entry
}

func (i entryItem) FilterValue() string { return i.entry.Label }
func (i entryItem) Title() string       { return i.entry.Label }
func (i entryItem) Description() string { return i.entry.Detail }

// entryDelegate renders an entry on one line, with its detail muted.
type entryDelegate struct{}

func (d entryDelegate) Height() int                             { return 1 }
func (d entryDelegate) Spacing() int                            { return 0 }
func (d entryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d entryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(entryItem)
	if !ok {
		return
	}

	str := i.entry.Label
	if i.entry.Detail != "" {
		str += "  " + theme.DefaultTheme.Muted.Render(i.entry.Detail)
	}
	if index == m.Index() {
		str = lipgloss.NewStyle().Foreground(theme.DefaultTheme.Colors.Orange).Render("│ ") + str
	} else {
		str = "  " + str
	}

	fmt.Fprint(w, str)
}

// --- Model ---

// List is a filterable single-selection picker.
type List struct {
	Active bool
	list   list.Model
	keys   listKeyMap
}

// NewList creates an inactive picker.
func NewList() List {
	l := list.New(nil, entryDelegate{}, 60, 14)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle().Bold(true).Foreground(theme.DefaultTheme.Colors.Orange)
	return List{list: l, keys: defaultListKeyMap}
}

// Activate shows the picker for req.
func (m *List) Activate(req flow.SelectRequest) tea.Cmd {
	items := make([]list.Item, len(req.Entries))
	for i, e := range req.Entries {
		items[i] = entryItem{index: i, entry: e}
	}
	m.list.ResetFilter()
	m.list.Title = req.Title
	if req.Title == "" {
		m.list.Title = req.Placeholder
	}
	m.list.FilterInput.Placeholder = req.Placeholder
	m.Active = true
	return m.list.SetItems(items)
}

// SetSize fits the picker into the given area.
func (m *List) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// --- Update ---

func (m List) Update(msg tea.Msg) (List, tea.Cmd) {
	if !m.Active {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
		switch {
		case key.Matches(msg, m.keys.Select):
			if item, ok := m.list.SelectedItem().(entryItem); ok {
				m.Active = false
				index := item.index
				return m, func() tea.Msg { return SelectedMsg{Index: index} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Cancel):
			if m.list.FilterState() == list.FilterApplied {
				m.list.ResetFilter()
				return m, nil
			}
			m.Active = false
			return m, func() tea.Msg { return DismissedMsg{} }
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// --- View ---

func (m List) View() string {
	if !m.Active {
		return ""
	}
	if len(m.list.Items()) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			theme.DefaultTheme.Header.Render(m.list.Title),
			"",
			theme.DefaultTheme.Muted.Render("Nothing to pick from. Press esc to close."),
		)
	}
	return m.list.View()
}

// --- KeyMap ---

type listKeyMap struct {
	Select key.Binding
	Cancel key.Binding
}

var defaultListKeyMap = listKeyMap{
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}
