package sidebar

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-zeplin/pkg/models"
	"github.com/mattsolo1/grove-zeplin/pkg/tree"
)

var revealTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "zeplin_sidebar_reveal_total",
	Help: "Reveal requests by target kind and outcome",
}, []string{"target", "result"})

// Target identifies an entity to reveal. Implementations are BarrelTarget,
// ScreenTarget and ComponentTarget.
type Target interface {
	// Kind names the target in reveal keys.
	Kind() string
	steps() []step
}

// BarrelTarget reveals a saved barrel.
type BarrelTarget struct {
	BarrelID string
}

// ScreenTarget reveals a screen of a saved project.
type ScreenTarget struct {
	ProjectID string
	SectionID string
	ScreenID  string
}

// ComponentTarget reveals a component under a saved barrel.
type ComponentTarget struct {
	// BarrelID is the saved barrel the component is shown under.
	BarrelID string
	// OwnerID is the barrel the component belongs to. It picks the
	// aggregation group when the saved barrel shows several.
	OwnerID     string
	SectionIDs  []string
	ComponentID string
}

// step matches one level of the descent. Optional steps are skipped when
// nothing matches, staying on the current level.
type step struct {
	match    func(tree.Node) bool
	optional bool
}

func (t BarrelTarget) Kind() string { return "Barrel" }

func (t BarrelTarget) steps() []step {
	return []step{{match: isBarrel(t.BarrelID)}}
}

func (t ScreenTarget) Kind() string { return "Screen" }

func (t ScreenTarget) steps() []step {
	steps := []step{
		{match: isBarrel(t.ProjectID)},
		{match: hasTag(tree.ContextScreens)},
	}
	if t.SectionID != "" {
		// Screens of a deleted section are listed unsectioned.
		steps = append(steps, step{match: func(n tree.Node) bool {
			s, ok := n.(*tree.ScreenSectionNode)
			return ok && s.Section.ID == t.SectionID
		}, optional: true})
	}
	return append(steps, step{match: func(n tree.Node) bool {
		s, ok := n.(*tree.ScreenNode)
		return ok && s.Screen.ID == t.ScreenID
	}})
}

func (t ComponentTarget) Kind() string { return "Component" }

func (t ComponentTarget) steps() []step {
	owner := t.OwnerID
	if owner == "" {
		owner = t.BarrelID
	}
	steps := []step{
		{match: isBarrel(t.BarrelID)},
		{match: hasTag(tree.ContextComponents)},
		{match: func(n tree.Node) bool {
			g, ok := n.(*tree.ComponentBarrelNode)
			return ok && g.Details.ID == owner
		}, optional: true},
	}
	for _, id := range t.SectionIDs {
		steps = append(steps, step{match: func(n tree.Node) bool {
			s, ok := n.(*tree.ComponentSectionNode)
			return ok && s.Section.ID == id
		}})
	}
	return append(steps, step{match: func(n tree.Node) bool {
		c, ok := n.(*tree.ComponentNode)
		return ok && c.Component.ID == t.ComponentID
	}})
}

func isBarrel(id string) func(tree.Node) bool {
	return func(n tree.Node) bool {
		b, ok := n.(*tree.BarrelNode)
		return ok && b.Barrel.ID == id
	}
}

func hasTag(tag tree.ContextTag) func(tree.Node) bool {
	return func(n tree.Node) bool {
		return n.Context().Contains(tag)
	}
}

// Reveal walks the tree down to target, loading each level as needed, and
// asks the host to focus it. It reports false without error when any level
// does not contain the expected node. Levels are resolved one after the
// other; each fetch completes before the next lookup.
func (p *Provider) Reveal(ctx context.Context, target Target) (bool, error) {
	node, err := p.descend(ctx, target.steps())
	if err != nil {
		revealTotal.WithLabelValues(target.Kind(), "error").Inc()
		return false, err
	}
	if node == nil {
		revealTotal.WithLabelValues(target.Kind(), "miss").Inc()
		p.logger.WithField("target", fmt.Sprintf("%+v", target)).Debug("Reveal target not found")
		return false, nil
	}

	key := RevealKey(target.Kind(), node)
	p.mu.Lock()
	host := p.host
	p.mu.Unlock()
	if host != nil {
		if err := host.Reveal(ctx, node, key); err != nil {
			revealTotal.WithLabelValues(target.Kind(), "error").Inc()
			return false, fmt.Errorf("reveal %s: %w", key, err)
		}
	}

	revealTotal.WithLabelValues(target.Kind(), "revealed").Inc()
	p.logger.WithFields(logrus.Fields{"key": key, "node": node.Key()}).Debug("Revealed node")
	return true, nil
}

func (p *Provider) descend(ctx context.Context, steps []step) (tree.Node, error) {
	nodes, err := p.Roots(ctx)
	if err != nil {
		return nil, err
	}

	var current tree.Node
	for _, st := range steps {
		if nodes == nil {
			if nodes, err = p.Children(ctx, current); err != nil {
				return nil, err
			}
		}

		var found tree.Node
		for _, n := range nodes {
			if st.match(n) {
				found = n
				break
			}
		}
		if found == nil {
			if st.optional {
				continue
			}
			return nil, nil
		}
		current, nodes = found, nil
	}
	return current, nil
}

// RevealKey builds the key hosts use to identify a revealed node.
func RevealKey(kind string, node tree.Node) string {
	return fmt.Sprintf("%s: %s|%s", kind, node.Label(), entityID(node))
}

func entityID(node tree.Node) string {
	switch n := node.(type) {
	case *tree.BarrelNode:
		return n.Barrel.ID
	case *tree.ScreenNode:
		return n.Screen.ID
	case *tree.ComponentNode:
		return n.Component.ID
	case *tree.ScreenSectionNode:
		return n.Section.ID
	case *tree.ComponentSectionNode:
		return n.Section.ID
	case *tree.ComponentBarrelNode:
		return n.Details.ID
	default:
		return n.Key()
	}
}

// RevealBarrel reveals a saved barrel.
func (p *Provider) RevealBarrel(ctx context.Context, barrelID string) (bool, error) {
	return p.Reveal(ctx, BarrelTarget{BarrelID: barrelID})
}

// RevealScreen reveals a screen of a saved project.
func (p *Provider) RevealScreen(ctx context.Context, projectID string, screen models.Screen) (bool, error) {
	return p.Reveal(ctx, ScreenTarget{ProjectID: projectID, SectionID: screen.SectionID, ScreenID: screen.ID})
}

// RevealComponent reveals a component shown under the saved barrel barrelID.
func (p *Provider) RevealComponent(ctx context.Context, barrelID string, component models.Component) (bool, error) {
	return p.Reveal(ctx, ComponentTarget{
		BarrelID:    barrelID,
		OwnerID:     component.BarrelID,
		SectionIDs:  component.SectionIDs,
		ComponentID: component.ID,
	})
}
