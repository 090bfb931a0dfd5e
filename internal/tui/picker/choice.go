package picker

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattsolo1/grove-core/tui/theme"

	"github.com/mattsolo1/grove-zeplin/pkg/flow"
)

// --- Messages ---

// ChosenMsg is sent when the user picks one of the options.
type ChosenMsg struct {
	Option string
}

// --- Model ---

// Choice is a message dialog offering a few options.
type Choice struct {
	Active  bool
	Message flow.Message
	cursor  int
	keys    choiceKeyMap
}

// NewChoice creates an inactive dialog.
func NewChoice() Choice {
	return Choice{keys: defaultChoiceKeyMap}
}

// Activate prepares the dialog for display with a given message.
func (m *Choice) Activate(msg flow.Message) {
	m.Message = msg
	m.cursor = 0
	m.Active = true
}

// --- Update ---

func (m Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	if !m.Active {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	options := m.Message.Options
	switch {
	case key.Matches(keyMsg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Right):
		if m.cursor < len(options)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Confirm):
		if len(options) == 0 {
			m.Active = false
			return m, func() tea.Msg { return DismissedMsg{} }
		}
		return m.choose(options[m.cursor])
	case key.Matches(keyMsg, m.keys.Cancel):
		m.Active = false
		return m, func() tea.Msg { return DismissedMsg{} }
	default:
		// Options can be picked by number.
		if n, err := strconv.Atoi(keyMsg.String()); err == nil && n >= 1 && n <= len(options) {
			return m.choose(options[n-1])
		}
	}
	return m, nil
}

func (m Choice) choose(option string) (Choice, tea.Cmd) {
	m.Active = false
	return m, func() tea.Msg { return ChosenMsg{Option: option} }
}

// --- View ---

func (m Choice) View() string {
	if !m.Active {
		return ""
	}

	var opts []string
	for i, o := range m.Message.Options {
		label := fmt.Sprintf("%d %s", i+1, o)
		if i == m.cursor {
			label = theme.DefaultTheme.Highlight.Render("[" + label + "]")
		} else {
			label = " " + label + " "
		}
		opts = append(opts, label)
	}

	border := lipgloss.RoundedBorder()
	if m.Message.Modal {
		border = lipgloss.DoubleBorder()
	}
	dialogBox := lipgloss.NewStyle().
		Border(border).
		BorderForeground(theme.DefaultTheme.Colors.Orange).
		Padding(1, 2).
		Render(m.Message.Text + "\n\n" + strings.Join(opts, "  "))

	helpText := lipgloss.NewStyle().
		Faint(true).
		Width(lipgloss.Width(dialogBox)).
		Align(lipgloss.Center).
		Render("\n(←/→ move, enter choose, esc dismiss)")

	return lipgloss.JoinVertical(lipgloss.Left, dialogBox, helpText)
}

// --- KeyMap ---

type choiceKeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

var defaultChoiceKeyMap = choiceKeyMap{
	Left: key.NewBinding(
		key.WithKeys("left", "h", "shift+tab"),
		key.WithHelp("←", "previous"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l", "tab"),
		key.WithHelp("→", "next"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "choose"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "dismiss"),
	),
}
