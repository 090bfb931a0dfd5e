package tree

import (
	"context"
	"fmt"

	"github.com/mattsolo1/grove-zeplin/pkg/models"
)

// ScreensNode groups the screens of a project.
type ScreensNode struct {
	Project models.Barrel

	loader *Loader
}

func (n *ScreensNode) Kind() Kind               { return KindScreens }
func (n *ScreensNode) Key() string              { return barrelKey(n.Project.ID) + "/screens" }
func (n *ScreensNode) Label() string            { return "Screens" }
func (n *ScreensNode) Description() string      { return "" }
func (n *ScreensNode) Collapsible() Collapsible { return CollapsibleCollapsed }
func (n *ScreensNode) Context() ContextSet      { return screensContext }

// Children lists the non-empty sections in section order, then the screens
// that belong to no known section.
func (n *ScreensNode) Children(ctx context.Context) ([]Node, error) {
	data, err := n.loader.Screens(n.Project).Get(ctx)
	if err != nil {
		return nil, err
	}

	bySection := make(map[string][]models.Screen, len(data.Sections))
	known := make(map[string]bool, len(data.Sections))
	for _, s := range data.Sections {
		known[s.ID] = true
	}
	var unsectioned []models.Screen
	for _, screen := range data.Screens {
		if screen.SectionID != "" && known[screen.SectionID] {
			bySection[screen.SectionID] = append(bySection[screen.SectionID], screen)
			continue
		}
		unsectioned = append(unsectioned, screen)
	}

	nodes := make([]Node, 0, len(data.Sections)+len(unsectioned))
	for _, section := range data.Sections {
		screens := bySection[section.ID]
		if len(screens) == 0 {
			continue
		}
		nodes = append(nodes, &ScreenSectionNode{Project: n.Project, Section: section, Screens: screens})
	}
	for _, screen := range unsectioned {
		nodes = append(nodes, &ScreenNode{Project: n.Project, Screen: screen})
	}
	return nodes, nil
}

func (n *ScreensNode) sealed() {}

// ScreenSectionNode is a section of project screens.
type ScreenSectionNode struct {
	Project models.Barrel
	Section models.ScreenSection
	Screens []models.Screen
}

func (n *ScreenSectionNode) Kind() Kind { return KindScreenSection }

func (n *ScreenSectionNode) Key() string {
	return barrelKey(n.Project.ID) + "/screens/section/" + n.Section.ID
}

func (n *ScreenSectionNode) Label() string { return n.Section.Name }

func (n *ScreenSectionNode) Description() string {
	if len(n.Screens) == 1 {
		return "1 screen"
	}
	return fmt.Sprintf("%d screens", len(n.Screens))
}

func (n *ScreenSectionNode) Collapsible() Collapsible { return CollapsibleCollapsed }
func (n *ScreenSectionNode) Context() ContextSet      { return screenSectionContext }

func (n *ScreenSectionNode) Children(ctx context.Context) ([]Node, error) {
	nodes := make([]Node, 0, len(n.Screens))
	for _, screen := range n.Screens {
		nodes = append(nodes, &ScreenNode{Project: n.Project, Screen: screen})
	}
	return nodes, nil
}

func (n *ScreenSectionNode) sealed() {}

// ScreenNode is a single screen.
type ScreenNode struct {
	Project models.Barrel
	Screen  models.Screen
}

func (n *ScreenNode) Kind() Kind { return KindScreen }

func (n *ScreenNode) Key() string {
	return barrelKey(n.Project.ID) + "/screens/screen/" + n.Screen.ID
}

func (n *ScreenNode) Label() string            { return n.Screen.Name }
func (n *ScreenNode) Description() string      { return "" }
func (n *ScreenNode) Collapsible() Collapsible { return CollapsibleNone }
func (n *ScreenNode) Context() ContextSet      { return screenContext }

func (n *ScreenNode) Children(ctx context.Context) ([]Node, error) {
	return []Node{}, nil
}

func (n *ScreenNode) sealed() {}
