package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattsolo1/grove-core/tui/theme"

	"github.com/mattsolo1/grove-zeplin/pkg/tree"
)

var errorStyle = lipgloss.NewStyle().Foreground(theme.DefaultTheme.Colors.Pink)

func (m Model) View() string {
	if !m.rootsLoaded {
		return "Loading..."
	}

	if m.help.ShowAll {
		return m.help.View()
	}

	var viewContent string
	switch {
	case m.choice.Active:
		viewContent = m.choice.View()
	case m.list.Active:
		viewContent = m.list.View()
	case m.rootsErr != nil:
		viewContent = errorStyle.Render(fmt.Sprintf("Error: %v", m.rootsErr))
	case len(m.roots) == 0:
		viewContent = renderWelcome()
	default:
		viewContent = m.renderTreeView()
	}

	header := theme.DefaultTheme.Header.Render("Zeplin")
	if m.flowRunning {
		header += " " + theme.DefaultTheme.Muted.Render("(waiting...)")
	}

	status := ""
	if m.statusMessage != "" {
		status = theme.DefaultTheme.Info.Render(m.statusMessage)
		if m.statusIsError {
			status = errorStyle.Render(m.statusMessage)
		}
	}

	footer := m.help.View()

	fullView := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		viewContent,
		"",
		status,
		footer,
	)

	// Add top margin to prevent border cutoff
	return "\n" + fullView
}

func (m Model) renderTreeView() string {
	var b strings.Builder

	viewportHeight := m.getViewportHeight()
	start := m.scrollOffset
	end := m.scrollOffset + viewportHeight
	if end > len(m.displayNodes) {
		end = len(m.displayNodes)
	}

	for i := start; i < end; i++ {
		d := m.displayNodes[i]
		cursor := "  "
		if i == m.cursor {
			cursor = theme.DefaultTheme.Highlight.Render("▶ ")
		}

		line := fmt.Sprintf("%s%s%s%s", cursor, indent(d.depth), m.foldIndicator(d.node), d.node.Label())
		if i == m.cursor {
			if d.node.Collapsible() == tree.CollapsibleNone {
				line = theme.DefaultTheme.Selected.Render(line)
			} else {
				line = lipgloss.NewStyle().Bold(true).Render(line)
			}
		}
		if desc := m.describe(d.node); desc != "" {
			line += "  " + theme.DefaultTheme.Muted.Render(desc)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	// Scroll indicator
	if len(m.displayNodes) > viewportHeight {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf(" (%d-%d of %d)", start+1, end, len(m.displayNodes))))
	}

	return b.String()
}

func (m Model) foldIndicator(node tree.Node) string {
	switch {
	case node.Kind() == tree.KindJumpTo:
		return "» "
	case node.Collapsible() == tree.CollapsibleNone:
		return "▢ "
	case m.expanded[node.Key()]:
		return "▼ "
	default:
		return "▶ "
	}
}

// describe returns the muted text shown after a node's label.
func (m Model) describe(node tree.Node) string {
	nodeKey := node.Key()
	switch {
	case m.loading[nodeKey]:
		return "loading..."
	case m.loadErrs[nodeKey] != nil:
		return "failed to load"
	case m.expanded[nodeKey] && len(m.children[nodeKey]) == 0 && m.hasChildren(nodeKey):
		return "empty"
	}
	return truncate(node.Description(), 60)
}

func (m Model) hasChildren(nodeKey string) bool {
	_, ok := m.children[nodeKey]
	return ok
}

func renderWelcome() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		theme.DefaultTheme.Muted.Render("No projects or styleguides in the sidebar yet."),
		"",
		"Press "+theme.DefaultTheme.Highlight.Render("a")+" to add a project or "+
			theme.DefaultTheme.Highlight.Render("A")+" to add a styleguide.",
	)
}
