package tree

import (
	"context"

	"github.com/mattsolo1/grove-zeplin/pkg/models"
)

// ComponentsNode groups the components available in a barrel, including
// those inherited from linked styleguides.
type ComponentsNode struct {
	Barrel models.Barrel

	loader *Loader
}

func (n *ComponentsNode) Kind() Kind               { return KindComponents }
func (n *ComponentsNode) Key() string              { return barrelKey(n.Barrel.ID) + "/components" }
func (n *ComponentsNode) Label() string            { return "Components" }
func (n *ComponentsNode) Description() string      { return "" }
func (n *ComponentsNode) Collapsible() Collapsible { return CollapsibleCollapsed }
func (n *ComponentsNode) Context() ContextSet      { return componentsContext }

// Children returns one ComponentBarrelNode per source barrel when components
// are aggregated from several barrels, and the plain section/component list
// otherwise.
func (n *ComponentsNode) Children(ctx context.Context) ([]Node, error) {
	details, err := n.loader.Components(n.Barrel).Get(ctx)
	if err != nil {
		return nil, err
	}

	switch len(details) {
	case 0:
		return []Node{}, nil
	case 1:
		return componentList(n.Barrel, details[0].Barrel, details[0].Sections, details[0].Components), nil
	}

	nodes := make([]Node, 0, len(details))
	for _, d := range details {
		nodes = append(nodes, &ComponentBarrelNode{Root: n.Barrel, Details: d})
	}
	return nodes, nil
}

func (n *ComponentsNode) sealed() {}

// ComponentBarrelNode holds the components one source barrel contributes to
// an aggregated component list.
type ComponentBarrelNode struct {
	// Root is the saved barrel the node is shown under.
	Root    models.Barrel
	Details models.BarrelDetails
}

func (n *ComponentBarrelNode) Kind() Kind { return KindComponentBarrel }

func (n *ComponentBarrelNode) Key() string {
	return barrelKey(n.Root.ID) + "/components/barrel/" + n.Details.ID
}

func (n *ComponentBarrelNode) Label() string            { return n.Details.Name }
func (n *ComponentBarrelNode) Description() string      { return n.Details.Type.Title() }
func (n *ComponentBarrelNode) Collapsible() Collapsible { return CollapsibleCollapsed }
func (n *ComponentBarrelNode) Context() ContextSet      { return componentBarrelContext }

func (n *ComponentBarrelNode) Children(ctx context.Context) ([]Node, error) {
	return componentList(n.Root, n.Details.Barrel, n.Details.Sections, n.Details.Components), nil
}

func (n *ComponentBarrelNode) sealed() {}

// ComponentSectionNode is a (possibly nested) component section.
type ComponentSectionNode struct {
	Root models.Barrel
	// Owner is the barrel the section belongs to.
	Owner   models.Barrel
	Section models.ComponentSection
}

func (n *ComponentSectionNode) Kind() Kind { return KindComponentSection }

func (n *ComponentSectionNode) Key() string {
	return ownerKey(n.Root, n.Owner) + "/section/" + n.Section.ID
}

func (n *ComponentSectionNode) Label() string            { return n.Section.Name }
func (n *ComponentSectionNode) Description() string      { return "" }
func (n *ComponentSectionNode) Collapsible() Collapsible { return CollapsibleCollapsed }
func (n *ComponentSectionNode) Context() ContextSet      { return componentSectionContext }

func (n *ComponentSectionNode) Children(ctx context.Context) ([]Node, error) {
	return componentList(n.Root, n.Owner, n.Section.Sections, n.Section.Components), nil
}

func (n *ComponentSectionNode) sealed() {}

// ComponentNode is a single component.
type ComponentNode struct {
	Root      models.Barrel
	Owner     models.Barrel
	Component models.Component
}

func (n *ComponentNode) Kind() Kind { return KindComponent }

func (n *ComponentNode) Key() string {
	return ownerKey(n.Root, n.Owner) + "/component/" + n.Component.ID
}

func (n *ComponentNode) Label() string            { return n.Component.Name }
func (n *ComponentNode) Description() string      { return n.Component.Description }
func (n *ComponentNode) Collapsible() Collapsible { return CollapsibleNone }
func (n *ComponentNode) Context() ContextSet      { return componentContext }

func (n *ComponentNode) Children(ctx context.Context) ([]Node, error) {
	return []Node{}, nil
}

func (n *ComponentNode) sealed() {}

// componentList lays out sections first, then components.
func componentList(root, owner models.Barrel, sections []models.ComponentSection, components []models.Component) []Node {
	nodes := make([]Node, 0, len(sections)+len(components))
	for _, s := range sections {
		nodes = append(nodes, &ComponentSectionNode{Root: root, Owner: owner, Section: s})
	}
	for _, c := range components {
		nodes = append(nodes, &ComponentNode{Root: root, Owner: owner, Component: c})
	}
	return nodes
}

func ownerKey(root, owner models.Barrel) string {
	return barrelKey(root.ID) + "/components/barrel/" + owner.ID
}
