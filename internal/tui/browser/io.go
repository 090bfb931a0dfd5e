package browser

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/grove-zeplin/pkg/flow"
	"github.com/mattsolo1/grove-zeplin/pkg/sidebar"
	"github.com/mattsolo1/grove-zeplin/pkg/tree"
)

type rootsLoadedMsg struct {
	generation int
	roots      []tree.Node
	err        error
}

type childrenLoadedMsg struct {
	generation int
	key        string
	nodes      []tree.Node
	err        error
}

// changedMsg is sent when the provider invalidates the whole tree.
type changedMsg struct{}

// revealMsg asks the view to expand path and select its last node.
type revealMsg struct {
	roots    []tree.Node
	path     []tree.Node
	children map[string][]tree.Node
	key      string
}

type selectRequestMsg struct {
	req   flow.SelectRequest
	reply chan<- int
}

type chooseRequestMsg struct {
	msg   flow.Message
	reply chan<- string
}

type notifyMsg struct {
	text    string
	isError bool
}

type flowDoneMsg struct {
	name   string
	result flow.Result
	err    error
}

func fetchRootsCmd(ctx context.Context, provider *sidebar.Provider, generation int) tea.Cmd {
	return func() tea.Msg {
		roots, err := provider.Roots(ctx)
		return rootsLoadedMsg{generation: generation, roots: roots, err: err}
	}
}

func fetchChildrenCmd(ctx context.Context, provider *sidebar.Provider, generation int, node tree.Node) tea.Cmd {
	return func() tea.Msg {
		nodes, err := provider.Children(ctx, node)
		return childrenLoadedMsg{generation: generation, key: node.Key(), nodes: nodes, err: err}
	}
}

// runFlowCmd runs a user flow off the update loop. The flow may block on
// pickers, which are answered through the bridge.
func runFlowCmd(ctx context.Context, name string, fn func(context.Context) (flow.Result, error)) tea.Cmd {
	return func() tea.Msg {
		res, err := fn(ctx)
		return flowDoneMsg{name: name, result: res, err: err}
	}
}
