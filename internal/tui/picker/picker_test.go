package picker

import (
	"bytes"
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-zeplin/pkg/flow"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func TestListSelectsOriginalIndex(t *testing.T) {
	l := NewList()
	l.Activate(flow.SelectRequest{Title: "Pick", Entries: []flow.Entry{{Label: "Home"}, {Label: "Profile"}}})

	l, _ = l.Update(keyMsg("down"))
	l, cmd := l.Update(keyMsg("enter"))

	assert.False(t, l.Active)
	assert.Equal(t, SelectedMsg{Index: 1}, runCmd(t, cmd))
}

func TestListDismiss(t *testing.T) {
	l := NewList()
	l.Activate(flow.SelectRequest{Entries: []flow.Entry{{Label: "Home"}}})

	l, cmd := l.Update(keyMsg("esc"))
	assert.False(t, l.Active)
	assert.Equal(t, DismissedMsg{}, runCmd(t, cmd))
}

func TestListEmptyView(t *testing.T) {
	l := NewList()
	l.Activate(flow.SelectRequest{Title: "Nothing"})
	assert.Contains(t, l.View(), "Nothing to pick from")

	_, cmd := l.Update(keyMsg("enter"))
	assert.Nil(t, cmd)
}

func TestChoice(t *testing.T) {
	msg := flow.Message{Text: "Where?", Options: []string{"Web", "App"}, Modal: true}

	t.Run("arrow and enter", func(t *testing.T) {
		c := NewChoice()
		c.Activate(msg)
		c, _ = c.Update(keyMsg("right"))
		c, cmd := c.Update(keyMsg("enter"))
		assert.False(t, c.Active)
		assert.Equal(t, ChosenMsg{Option: "App"}, runCmd(t, cmd))
	})

	t.Run("number", func(t *testing.T) {
		c := NewChoice()
		c.Activate(msg)
		_, cmd := c.Update(keyMsg("1"))
		assert.Equal(t, ChosenMsg{Option: "Web"}, runCmd(t, cmd))
	})

	t.Run("out of range number is ignored", func(t *testing.T) {
		c := NewChoice()
		c.Activate(msg)
		c, cmd := c.Update(keyMsg("7"))
		assert.Nil(t, cmd)
		assert.True(t, c.Active)
	})

	t.Run("dismiss", func(t *testing.T) {
		c := NewChoice()
		c.Activate(msg)
		_, cmd := c.Update(keyMsg("esc"))
		assert.Equal(t, DismissedMsg{}, runCmd(t, cmd))
	})

	t.Run("view", func(t *testing.T) {
		c := NewChoice()
		c.Activate(msg)
		view := c.View()
		assert.Contains(t, view, "Where?")
		assert.Contains(t, view, "2 App")
	})
}

func TestMessengerNotifications(t *testing.T) {
	var buf bytes.Buffer
	m := Messenger{Output: &buf}

	m.Info(context.Background(), "Web App added to the sidebar.")
	m.Error(context.Background(), "Please login to Zeplin first.")

	assert.Contains(t, buf.String(), "Web App added to the sidebar.")
	assert.Contains(t, buf.String(), "Please login to Zeplin first.")
}
