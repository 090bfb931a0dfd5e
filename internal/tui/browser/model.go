package browser

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattsolo1/grove-core/tui/components/help"

	"github.com/mattsolo1/grove-zeplin/internal/tui/picker"
	"github.com/mattsolo1/grove-zeplin/pkg/flow"
	"github.com/mattsolo1/grove-zeplin/pkg/sidebar"
	"github.com/mattsolo1/grove-zeplin/pkg/tree"
)

// displayNode represents a single line in the TUI tree.
type displayNode struct {
	node  tree.Node
	depth int
}

// Model is the main model for the sidebar TUI
type Model struct {
	ctx       context.Context
	provider  *sidebar.Provider
	refresher sidebar.RefreshRequester
	flows     *flow.Service
	keys      KeyMap
	help      help.Model
	width     int
	height    int

	// Bumped on every invalidation; loads started earlier are dropped
	generation   int
	roots        []tree.Node
	rootsLoaded  bool
	rootsErr     error
	children     map[string][]tree.Node // Materialized children by node key
	expanded     map[string]bool
	loading      map[string]bool
	loadErrs     map[string]error
	displayNodes []displayNode
	cursor       int
	scrollOffset int

	// Key of a node to move the cursor to once it is displayed
	pendingReveal string

	statusMessage string
	statusIsError bool
	flowRunning   bool

	// Overlays answering flow requests
	list        picker.List
	listReply   chan<- int
	choice      picker.Choice
	choiceReply chan<- string
}

// New creates a new TUI model. flows may be nil, which disables the
// picker-driven actions.
func New(ctx context.Context, provider *sidebar.Provider, refresher sidebar.RefreshRequester, flows *flow.Service) Model {
	helpModel := help.NewBuilder().
		WithKeys(keys).
		WithTitle("Zeplin Sidebar - Help").
		Build()

	return Model{
		ctx:       ctx,
		provider:  provider,
		refresher: refresher,
		flows:     flows,
		keys:      keys,
		help:      helpModel,
		children:  make(map[string][]tree.Node),
		expanded:  make(map[string]bool),
		loading:   make(map[string]bool),
		loadErrs:  make(map[string]error),
		list:      picker.NewList(),
		choice:    picker.NewChoice(),
	}
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	m.provider.SetVisible(true)
	return fetchRootsCmd(m.ctx, m.provider, m.generation)
}

// selectedNode returns the node under the cursor, if any.
func (m Model) selectedNode() tree.Node {
	if m.cursor < 0 || m.cursor >= len(m.displayNodes) {
		return nil
	}
	return m.displayNodes[m.cursor].node
}

// buildDisplayTree flattens the roots and every expanded, loaded node.
func (m *Model) buildDisplayTree() {
	var selectedKey string
	if n := m.selectedNode(); n != nil {
		selectedKey = n.Key()
	}

	var nodes []displayNode
	var walk func(list []tree.Node, depth int)
	walk = func(list []tree.Node, depth int) {
		for _, n := range list {
			nodes = append(nodes, displayNode{node: n, depth: depth})
			if m.expanded[n.Key()] {
				walk(m.children[n.Key()], depth+1)
			}
		}
	}
	walk(m.roots, 0)
	m.displayNodes = nodes

	// Keep the cursor on the same node across rebuilds
	if selectedKey != "" {
		m.moveCursorTo(selectedKey)
	}
	if m.cursor >= len(m.displayNodes) {
		m.cursor = len(m.displayNodes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.adjustScroll()
}

func (m *Model) moveCursorTo(nodeKey string) bool {
	for i, d := range m.displayNodes {
		if d.node.Key() == nodeKey {
			m.cursor = i
			m.adjustScroll()
			return true
		}
	}
	return false
}

// tryReveal moves the cursor to the pending reveal target once displayed.
func (m *Model) tryReveal() {
	if m.pendingReveal != "" && m.moveCursorTo(m.pendingReveal) {
		m.pendingReveal = ""
	}
}

func (m *Model) getViewportHeight() int {
	// Account for:
	// - Top margin, header and the blank line after it: 3 lines
	// - Blank line before footer, status bar, footer: 3 lines
	// - Scroll indicator (when shown): 2 lines
	const fixedLines = 8
	availableHeight := m.height - fixedLines
	if availableHeight < 1 {
		return 1
	}
	return availableHeight
}

// adjustScroll ensures the cursor is visible in the viewport.
func (m *Model) adjustScroll() {
	viewportHeight := m.getViewportHeight()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+viewportHeight {
		m.scrollOffset = m.cursor - viewportHeight + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

