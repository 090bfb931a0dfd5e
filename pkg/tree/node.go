// Package tree holds the lazily materialized node hierarchy shown in the
// sidebar.
package tree

import "context"

// Kind categorizes the different kinds of nodes in the sidebar tree.
type Kind string

const (
	KindJumpTo           Kind = "jumpTo"
	KindBarrel           Kind = "barrel"
	KindScreens          Kind = "screens"
	KindScreenSection    Kind = "screenSection"
	KindScreen           Kind = "screen"
	KindComponents       Kind = "components"
	KindComponentBarrel  Kind = "componentBarrel"
	KindComponentSection Kind = "componentSection"
	KindComponent        Kind = "component"
)

// Collapsible is the initial disclosure state of a node.
type Collapsible int

const (
	CollapsibleNone Collapsible = iota
	CollapsibleCollapsed
	CollapsibleExpanded
)

// Node is a single entry of the sidebar tree.
//
// Children are produced on demand and are never cached by the node itself;
// any caching happens in the stores the node reads from. A node without
// children returns an empty slice.
//
// The set of node kinds is closed: only this package implements Node.
type Node interface {
	Kind() Kind
	// Key identifies the node within the whole tree. It is stable across
	// refreshes as long as the underlying entities keep their ids.
	Key() string
	Label() string
	Description() string
	Collapsible() Collapsible
	Context() ContextSet
	Children(ctx context.Context) ([]Node, error)

	sealed()
}
