// Package sidebar exposes the lazy tree to a host view and reveals entities
// in it by identity.
package sidebar

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-zeplin/pkg/models"
	"github.com/mattsolo1/grove-zeplin/pkg/tree"
)

// Host is the view that renders the tree.
type Host interface {
	// Reveal expands the path to node, selects and focuses it. key is the
	// node's reveal key, "{Kind}: {name}|{id}".
	Reveal(ctx context.Context, node tree.Node, key string) error
}

// BarrelSource lists the barrels saved to the sidebar, in display order.
type BarrelSource interface {
	SavedBarrels(ctx context.Context) ([]models.Barrel, error)
}

// RefreshRequester schedules a refresh cycle.
type RefreshRequester interface {
	RequestRefresh()
}

type listener struct {
	id int
	fn func()
}

// Provider owns the root roster of the tree and the change notification
// hosts subscribe to.
type Provider struct {
	source    BarrelSource
	loader    *tree.Loader
	refresher RefreshRequester
	logger    logrus.FieldLogger

	mu        sync.Mutex
	host      Host
	roots     []tree.Node
	rosterGen uint64
	parents   map[string]tree.Node
	listeners []listener
	nextID    int
	visible   bool
}

// NewProvider creates a Provider. refresher may be nil, in which case
// becoming visible does nothing.
func NewProvider(source BarrelSource, loader *tree.Loader, refresher RefreshRequester, logger logrus.FieldLogger) *Provider {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Provider{
		source:    source,
		loader:    loader,
		refresher: refresher,
		logger:    logger.WithField("component", "sidebar"),
	}
}

// SetHost attaches the view that reveal requests are sent to.
func (p *Provider) SetHost(host Host) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.host = host
}

// Roots returns the jump-to entry followed by one node per saved barrel, or
// nothing when no barrel is saved. The roster is kept until the next Refresh.
func (p *Provider) Roots(ctx context.Context) ([]tree.Node, error) {
	p.mu.Lock()
	if p.roots != nil {
		roots := append([]tree.Node(nil), p.roots...)
		p.mu.Unlock()
		return roots, nil
	}
	gen := p.rosterGen
	p.mu.Unlock()

	barrels, err := p.source.SavedBarrels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list saved barrels: %w", err)
	}

	roots := []tree.Node{}
	if len(barrels) > 0 {
		roots = append(roots, tree.NewJumpToNode())
		for _, b := range barrels {
			roots = append(roots, tree.NewBarrelNode(p.loader, b))
		}
	}

	// A roster read before an invalidation is returned but not kept.
	p.mu.Lock()
	if gen == p.rosterGen {
		p.roots = roots
	}
	p.mu.Unlock()
	return append([]tree.Node(nil), roots...), nil
}

// Children returns the children of node.
func (p *Provider) Children(ctx context.Context, node tree.Node) ([]tree.Node, error) {
	children, err := node.Children(ctx)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	if p.parents == nil {
		p.parents = make(map[string]tree.Node)
	}
	for _, c := range children {
		p.parents[c.Key()] = node
	}
	p.mu.Unlock()
	return children, nil
}

// Parent returns the parent of a node materialized through this provider,
// or nil for roots and unknown nodes.
func (p *Provider) Parent(node tree.Node) tree.Node {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.parents[node.Key()]
}

// Path returns the ancestors of node from the root down, followed by node.
func (p *Provider) Path(node tree.Node) []tree.Node {
	path := []tree.Node{node}
	for parent := p.Parent(node); parent != nil; parent = p.Parent(parent) {
		path = append([]tree.Node{parent}, path...)
	}
	return path
}

// OnDidChange subscribes fn to whole-tree invalidations. The returned
// function unsubscribes.
func (p *Provider) OnDidChange(fn func()) func() {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++
	p.listeners = append(p.listeners, listener{id: id, fn: fn})

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		for i, l := range p.listeners {
			if l.id == id {
				p.listeners = append(p.listeners[:i:i], p.listeners[i+1:]...)
				return
			}
		}
	}
}

// SetVisible records the host's visibility. Becoming visible requests a
// refresh so the tree catches up with changes made while hidden.
func (p *Provider) SetVisible(visible bool) {
	p.mu.Lock()
	becameVisible := visible && !p.visible
	p.visible = visible
	p.mu.Unlock()

	if becameVisible && p.refresher != nil {
		p.refresher.RequestRefresh()
	}
}

// Refresh drops the roster and every loaded store, then notifies
// subscribers. It is the handler run by the refresh coordinator.
func (p *Provider) Refresh(ctx context.Context) error {
	p.Invalidate()
	p.logger.Debug("Sidebar invalidated")
	p.notify()
	return nil
}

// Invalidate drops the roster and every loaded store without notifying
// subscribers. The next Roots call reads the saved barrels again.
func (p *Provider) Invalidate() {
	p.mu.Lock()
	p.roots = nil
	p.parents = nil
	p.rosterGen++
	p.mu.Unlock()

	if p.loader != nil {
		p.loader.Invalidate()
	}
}

// RequestRefresh schedules a refresh through the coordinator. Without one
// the provider refreshes immediately.
func (p *Provider) RequestRefresh() {
	if p.refresher != nil {
		p.refresher.RequestRefresh()
		return
	}
	if err := p.Refresh(context.Background()); err != nil {
		p.logger.WithError(err).Warn("Failed to refresh sidebar")
	}
}

func (p *Provider) notify() {
	p.mu.Lock()
	listeners := append([]listener(nil), p.listeners...)
	p.mu.Unlock()

	for _, l := range listeners {
		l.fn()
	}
}
