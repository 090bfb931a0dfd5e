package browser

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/grove-zeplin/pkg/flow"
	"github.com/mattsolo1/grove-zeplin/pkg/sidebar"
	"github.com/mattsolo1/grove-zeplin/pkg/tree"
)

// Bridge connects a running program to the provider and the flows. It is the
// sidebar's host and answers pickers and messages inside the TUI.
type Bridge struct {
	provider *sidebar.Provider

	mu          sync.Mutex
	program     *tea.Program
	unsubscribe func()
}

// NewBridge creates a bridge for provider. It does nothing until attached.
func NewBridge(provider *sidebar.Provider) *Bridge {
	return &Bridge{provider: provider}
}

// Attach routes reveal requests and change notifications to p.
func (b *Bridge) Attach(p *tea.Program) {
	b.mu.Lock()
	b.program = p
	b.mu.Unlock()

	b.provider.SetHost(b)
	unsubscribe := b.provider.OnDidChange(func() {
		b.send(changedMsg{})
	})

	b.mu.Lock()
	b.unsubscribe = unsubscribe
	b.mu.Unlock()
}

// Detach stops forwarding to the program.
func (b *Bridge) Detach() {
	b.mu.Lock()
	unsubscribe := b.unsubscribe
	b.unsubscribe = nil
	b.program = nil
	b.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	b.provider.SetHost(nil)
}

func (b *Bridge) send(msg tea.Msg) bool {
	b.mu.Lock()
	p := b.program
	b.mu.Unlock()
	if p == nil {
		return false
	}
	p.Send(msg)
	return true
}

// Reveal loads the ancestors of node and hands them to the view.
func (b *Bridge) Reveal(ctx context.Context, node tree.Node, key string) error {
	msg, err := newRevealMsg(ctx, b.provider, node, key)
	if err != nil {
		return err
	}
	b.send(msg)
	return nil
}

func newRevealMsg(ctx context.Context, provider *sidebar.Provider, node tree.Node, key string) (revealMsg, error) {
	roots, err := provider.Roots(ctx)
	if err != nil {
		return revealMsg{}, err
	}

	path := provider.Path(node)
	children := make(map[string][]tree.Node, len(path))
	for _, ancestor := range path[:len(path)-1] {
		nodes, err := provider.Children(ctx, ancestor)
		if err != nil {
			return revealMsg{}, err
		}
		children[ancestor.Key()] = nodes
	}
	return revealMsg{roots: roots, path: path, children: children, key: key}, nil
}

// Select shows the picker in the view and waits for the answer.
func (b *Bridge) Select(ctx context.Context, req flow.SelectRequest) (int, error) {
	reply := make(chan int, 1)
	if !b.send(selectRequestMsg{req: req, reply: reply}) {
		return -1, nil
	}
	select {
	case index := <-reply:
		return index, nil
	case <-ctx.Done():
		return -1, ctx.Err()
	}
}

// Choose shows msg as a dialog and waits for the answer.
func (b *Bridge) Choose(ctx context.Context, msg flow.Message) (string, error) {
	reply := make(chan string, 1)
	if !b.send(chooseRequestMsg{msg: msg, reply: reply}) {
		return "", nil
	}
	select {
	case option := <-reply:
		return option, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (b *Bridge) Info(ctx context.Context, text string) {
	b.send(notifyMsg{text: text})
}

func (b *Bridge) Error(ctx context.Context, text string) {
	b.send(notifyMsg{text: text, isError: true})
}
