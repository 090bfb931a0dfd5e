package tree

import "context"

// JumpToNode is the synthetic "Jump to…" entry pinned above the barrels.
type JumpToNode struct{}

// NewJumpToNode creates the jump-to affordance.
func NewJumpToNode() *JumpToNode {
	return &JumpToNode{}
}

func (n *JumpToNode) Kind() Kind               { return KindJumpTo }
func (n *JumpToNode) Key() string              { return string(KindJumpTo) }
func (n *JumpToNode) Label() string            { return "Jump to…" }
func (n *JumpToNode) Description() string      { return "" }
func (n *JumpToNode) Collapsible() Collapsible { return CollapsibleNone }
func (n *JumpToNode) Context() ContextSet      { return jumpToContext }

func (n *JumpToNode) Children(ctx context.Context) ([]Node, error) {
	return []Node{}, nil
}

func (n *JumpToNode) sealed() {}
