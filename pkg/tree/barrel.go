package tree

import (
	"context"

	"github.com/mattsolo1/grove-zeplin/pkg/models"
)

// BarrelNode is a saved project or styleguide at the root of the tree.
type BarrelNode struct {
	Barrel models.Barrel

	loader *Loader
}

// NewBarrelNode creates a root node for a saved barrel.
func NewBarrelNode(loader *Loader, barrel models.Barrel) *BarrelNode {
	return &BarrelNode{Barrel: barrel, loader: loader}
}

func (n *BarrelNode) Kind() Kind               { return KindBarrel }
func (n *BarrelNode) Key() string              { return barrelKey(n.Barrel.ID) }
func (n *BarrelNode) Label() string            { return n.Barrel.Name }
func (n *BarrelNode) Description() string      { return n.Barrel.Type.Title() }
func (n *BarrelNode) Collapsible() Collapsible { return CollapsibleCollapsed }
func (n *BarrelNode) Context() ContextSet      { return barrelContext }

// Children returns the Screens group (projects only) followed by the
// Components group.
func (n *BarrelNode) Children(ctx context.Context) ([]Node, error) {
	components := &ComponentsNode{Barrel: n.Barrel, loader: n.loader}
	if n.Barrel.IsProject() {
		return []Node{&ScreensNode{Project: n.Barrel, loader: n.loader}, components}, nil
	}
	return []Node{components}, nil
}

func (n *BarrelNode) sealed() {}

func barrelKey(id string) string {
	return "barrel/" + id
}
