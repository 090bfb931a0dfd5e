package browser

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/grove-zeplin/internal/tui/picker"
	"github.com/mattsolo1/grove-zeplin/pkg/flow"
	"github.com/mattsolo1/grove-zeplin/pkg/models"
	"github.com/mattsolo1/grove-zeplin/pkg/tree"
)

const refreshingStatus = "Refreshing..."

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.SetSize(msg.Width, msg.Height)
		m.list.SetSize(msg.Width, m.getViewportHeight())
		m.adjustScroll()
		return m, nil

	case rootsLoadedMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		m.rootsLoaded = true
		m.rootsErr = msg.err
		if m.statusMessage == refreshingStatus {
			m.statusMessage = ""
		}
		if msg.err != nil {
			return m, nil
		}
		m.roots = msg.roots
		m.buildDisplayTree()
		m.tryReveal()
		return m, m.loadExpanded()

	case childrenLoadedMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		delete(m.loading, msg.key)
		if msg.err != nil {
			m.loadErrs[msg.key] = msg.err
			m.statusMessage = fmt.Sprintf("Error: %v", msg.err)
			m.statusIsError = true
			return m, nil
		}
		delete(m.loadErrs, msg.key)
		m.children[msg.key] = msg.nodes
		m.buildDisplayTree()
		m.tryReveal()
		return m, m.loadExpanded()

	case changedMsg:
		// Everything loaded so far is stale. Expansion state survives and
		// is replayed as the new nodes arrive.
		m.generation++
		m.children = make(map[string][]tree.Node)
		m.loading = make(map[string]bool)
		m.loadErrs = make(map[string]error)
		return m, fetchRootsCmd(m.ctx, m.provider, m.generation)

	case revealMsg:
		m.applyReveal(msg)
		return m, m.loadExpanded()

	case selectRequestMsg:
		m.listReply = msg.reply
		return m, m.list.Activate(msg.req)

	case chooseRequestMsg:
		m.choiceReply = msg.reply
		m.choice.Activate(msg.msg)
		return m, nil

	case picker.SelectedMsg:
		if m.listReply != nil {
			m.listReply <- msg.Index
			m.listReply = nil
		}
		return m, nil

	case picker.ChosenMsg:
		if m.choiceReply != nil {
			m.choiceReply <- msg.Option
			m.choiceReply = nil
		}
		return m, nil

	case picker.DismissedMsg:
		if m.listReply != nil && !m.list.Active {
			m.listReply <- -1
			m.listReply = nil
		}
		if m.choiceReply != nil && !m.choice.Active {
			m.choiceReply <- ""
			m.choiceReply = nil
		}
		return m, nil

	case notifyMsg:
		m.statusMessage = msg.text
		m.statusIsError = msg.isError
		return m, nil

	case flowDoneMsg:
		m.flowRunning = false
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("%s failed: %v", msg.name, msg.err)
			m.statusIsError = true
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Overlays answering a flow take every key.
	if m.choice.Active {
		var cmd tea.Cmd
		m.choice, cmd = m.choice.Update(msg)
		return m, cmd
	}
	if m.list.Active {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if m.help.ShowAll {
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Back) {
			m.help.Toggle()
		} else if key.Matches(msg, m.keys.Quit) {
			return m.quit()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.adjustScroll()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.displayNodes)-1 {
			m.cursor++
			m.adjustScroll()
		}
		return m, nil

	case key.Matches(msg, m.keys.GoToTop):
		m.cursor = 0
		m.adjustScroll()
		return m, nil

	case key.Matches(msg, m.keys.GoToBottom):
		if len(m.displayNodes) > 0 {
			m.cursor = len(m.displayNodes) - 1
			m.adjustScroll()
		}
		return m, nil

	case key.Matches(msg, m.keys.Expand):
		return m.activate()

	case key.Matches(msg, m.keys.Collapse):
		m.collapse()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.statusMessage = refreshingStatus
		m.statusIsError = false
		if m.refresher != nil {
			m.refresher.RequestRefresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		node := m.selectedNode()
		if node == nil || !node.Context().Contains(tree.ContextZeplinLink) {
			return m, nil
		}
		return m.startFlow("Open", func(ctx context.Context) (flow.Result, error) {
			return m.flows.OpenNode(ctx, node)
		})

	case key.Matches(msg, m.keys.JumpTo):
		return m.startFlow("Jump to", func(ctx context.Context) (flow.Result, error) {
			return m.flows.JumpTo(ctx, flow.ModeReveal)
		})

	case key.Matches(msg, m.keys.OpenItem):
		return m.startFlow("Open", func(ctx context.Context) (flow.Result, error) {
			return m.flows.JumpTo(ctx, flow.ModeOpenExternally)
		})

	case key.Matches(msg, m.keys.AddProject):
		return m.startFlow("Add project", func(ctx context.Context) (flow.Result, error) {
			return m.flows.AddBarrel(ctx, models.BarrelTypeProject)
		})

	case key.Matches(msg, m.keys.AddStyleguide):
		return m.startFlow("Add styleguide", func(ctx context.Context) (flow.Result, error) {
			return m.flows.AddBarrel(ctx, models.BarrelTypeStyleguide)
		})

	case key.Matches(msg, m.keys.Remove):
		node := m.selectedNode()
		if b, ok := node.(*tree.BarrelNode); ok {
			id := b.Barrel.ID
			return m.startFlow("Remove", func(ctx context.Context) (flow.Result, error) {
				return m.flows.RemoveBarrelByID(ctx, id)
			})
		}
		return m.startFlow("Remove", m.flows.RemoveBarrel)
	}

	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.provider.SetVisible(false)
	return m, tea.Quit
}

// startFlow runs fn unless another flow is still waiting on the user.
func (m Model) startFlow(name string, fn func(context.Context) (flow.Result, error)) (tea.Model, tea.Cmd) {
	if m.flows == nil || m.flowRunning {
		return m, nil
	}
	m.flowRunning = true
	m.statusMessage = ""
	m.statusIsError = false
	return m, runFlowCmd(m.ctx, name, fn)
}

// activate toggles the node under the cursor. The jump-to entry starts the
// jump flow instead.
func (m Model) activate() (tea.Model, tea.Cmd) {
	node := m.selectedNode()
	if node == nil {
		return m, nil
	}
	if node.Kind() == tree.KindJumpTo {
		return m.startFlow("Jump to", func(ctx context.Context) (flow.Result, error) {
			return m.flows.JumpTo(ctx, flow.ModeReveal)
		})
	}
	if node.Collapsible() == tree.CollapsibleNone {
		return m, nil
	}

	nodeKey := node.Key()
	if m.expanded[nodeKey] {
		delete(m.expanded, nodeKey)
		m.buildDisplayTree()
		return m, nil
	}
	m.expanded[nodeKey] = true
	delete(m.loadErrs, nodeKey)
	m.buildDisplayTree()
	return m, m.loadExpanded()
}

// collapse folds the node under the cursor, or moves to its parent when it
// is already folded.
func (m *Model) collapse() {
	node := m.selectedNode()
	if node == nil {
		return
	}
	if m.expanded[node.Key()] {
		delete(m.expanded, node.Key())
		m.buildDisplayTree()
		return
	}
	depth := m.displayNodes[m.cursor].depth
	for i := m.cursor - 1; i >= 0; i-- {
		if m.displayNodes[i].depth < depth {
			m.cursor = i
			m.adjustScroll()
			return
		}
	}
}

// loadExpanded starts loading the children of every displayed node that is
// expanded but not loaded yet.
func (m *Model) loadExpanded() tea.Cmd {
	var cmds []tea.Cmd
	for _, d := range m.displayNodes {
		nodeKey := d.node.Key()
		if !m.expanded[nodeKey] || m.loading[nodeKey] || m.loadErrs[nodeKey] != nil {
			continue
		}
		if _, ok := m.children[nodeKey]; ok {
			continue
		}
		m.loading[nodeKey] = true
		cmds = append(cmds, fetchChildrenCmd(m.ctx, m.provider, m.generation, d.node))
	}
	return tea.Batch(cmds...)
}

// applyReveal expands every ancestor in msg.path and selects the target.
func (m *Model) applyReveal(msg revealMsg) {
	if len(msg.path) == 0 {
		return
	}
	if msg.roots != nil {
		m.roots = msg.roots
		m.rootsLoaded = true
		m.rootsErr = nil
	}
	for nodeKey, nodes := range msg.children {
		m.children[nodeKey] = nodes
		delete(m.loading, nodeKey)
		delete(m.loadErrs, nodeKey)
	}
	for _, ancestor := range msg.path[:len(msg.path)-1] {
		m.expanded[ancestor.Key()] = true
	}
	m.pendingReveal = msg.path[len(msg.path)-1].Key()
	m.buildDisplayTree()
	m.tryReveal()
	if m.pendingReveal == "" {
		m.statusMessage = msg.key
		m.statusIsError = false
	}
}
