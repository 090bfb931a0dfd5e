// Package picker provides the terminal pickers and dialogs used by the
// flows, both as standalone programs and as components for other models.
package picker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattsolo1/grove-core/tui/theme"

	"github.com/mattsolo1/grove-zeplin/pkg/flow"
)

// Selector shows each picker as its own full-screen program.
type Selector struct {
	Output io.Writer
}

// Select implements flow.Selector.
func (s Selector) Select(ctx context.Context, req flow.SelectRequest) (int, error) {
	m := selectModel{list: NewList(), index: -1}
	m.list.Activate(req)

	final, err := run(ctx, m, s.Output)
	if err != nil {
		return -1, err
	}
	return final.(selectModel).index, nil
}

// Messenger shows choices as their own program and prints notifications.
type Messenger struct {
	Output io.Writer
}

// Choose implements flow.Messenger.
func (s Messenger) Choose(ctx context.Context, msg flow.Message) (string, error) {
	m := choiceModel{choice: NewChoice()}
	m.choice.Activate(msg)

	final, err := run(ctx, m, s.Output)
	if err != nil {
		return "", err
	}
	return final.(choiceModel).option, nil
}

// Info implements flow.Messenger.
func (s Messenger) Info(ctx context.Context, text string) {
	fmt.Fprintln(output(s.Output), theme.DefaultTheme.Info.Render(text))
}

// Error implements flow.Messenger.
func (s Messenger) Error(ctx context.Context, text string) {
	style := lipgloss.NewStyle().Bold(true).Foreground(theme.DefaultTheme.Colors.Orange)
	fmt.Fprintln(output(s.Output), style.Render("Error: ")+text)
}

func output(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

func run(ctx context.Context, m tea.Model, w io.Writer) (tea.Model, error) {
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(output(w)), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("error running picker: %w", err)
	}
	return final, nil
}

// selectModel runs a List until the user decides.
type selectModel struct {
	list  List
	index int
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-1)
		return m, nil
	case SelectedMsg:
		m.index = msg.Index
		return m, tea.Quit
	case DismissedMsg:
		m.index = -1
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectModel) View() string {
	return "\n" + m.list.View()
}

// choiceModel runs a Choice until the user decides.
type choiceModel struct {
	choice Choice
	option string
}

func (m choiceModel) Init() tea.Cmd { return nil }

func (m choiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ChosenMsg:
		m.option = msg.Option
		return m, tea.Quit
	case DismissedMsg:
		m.option = ""
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.choice, cmd = m.choice.Update(msg)
	return m, cmd
}

func (m choiceModel) View() string {
	return "\n" + m.choice.View()
}
