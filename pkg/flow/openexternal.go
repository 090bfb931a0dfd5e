package flow

import (
	"context"
	"fmt"

	"github.com/mattsolo1/grove-zeplin/pkg/models"
	"github.com/mattsolo1/grove-zeplin/pkg/tree"
)

// Open opens the link of provider in the preferred application, asking for
// the preference first if the user has never chosen one.
func (s *Service) Open(ctx context.Context, provider URIProvider) (Result, error) {
	appType, res, err := s.preferredApplicationType(ctx)
	if res != Completed {
		return res, err
	}

	uri := provider.URI(appType)
	s.logger.WithField("uri", uri).Debug("Opening link")
	if err := s.deps.Opener.Open(ctx, uri); err != nil {
		s.deps.Messenger.Error(ctx, fmt.Sprintf("Could not open %s: %v", uri, err))
		return Failed, err
	}
	return Completed, nil
}

// OpenNode opens a sidebar node in Zeplin. Only nodes tagged as Zeplin
// links can be opened; passing any other node panics.
func (s *Service) OpenNode(ctx context.Context, node tree.Node) (Result, error) {
	return s.Open(ctx, s.NodeURI(node))
}

// NodeURI returns the link provider of a node, dispatching on its context
// tags. It panics for nodes that have no link.
func (s *Service) NodeURI(node tree.Node) URIProvider {
	tags := node.Context()
	uris := s.deps.URIs

	switch {
	case tags.Contains(tree.ContextBarrel):
		b := node.(*tree.BarrelNode).Barrel
		return URIFunc(func(appType models.ApplicationType) string {
			return uris.Barrel(b.ID, b.Type, appType)
		})
	case tags.Contains(tree.ContextComponentBarrel):
		b := node.(*tree.ComponentBarrelNode).Details.Barrel
		return URIFunc(func(appType models.ApplicationType) string {
			return uris.Barrel(b.ID, b.Type, appType)
		})
	case tags.Contains(tree.ContextComponent):
		n := node.(*tree.ComponentNode)
		return URIFunc(func(appType models.ApplicationType) string {
			return uris.Component(n.Owner.ID, n.Owner.Type, n.Component.ID, appType)
		})
	case tags.Contains(tree.ContextComponentSection):
		n := node.(*tree.ComponentSectionNode)
		return URIFunc(func(appType models.ApplicationType) string {
			return uris.ComponentSection(n.Owner.ID, n.Owner.Type, n.Section.ID, appType)
		})
	case tags.Contains(tree.ContextScreen):
		n := node.(*tree.ScreenNode)
		return URIFunc(func(appType models.ApplicationType) string {
			return uris.Screen(n.Project.ID, n.Screen.ID, appType)
		})
	default:
		panic(fmt.Sprintf("open in Zeplin: unsupported node %q (%s)", node.Key(), tags))
	}
}

func (s *Service) preferredApplicationType(ctx context.Context) (models.ApplicationType, Result, error) {
	appType, selected, err := s.deps.Preferences.PreferredApplicationType(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to read preferred application type")
	}
	if selected {
		return appType, Completed, nil
	}

	choice, err := s.deps.Messenger.Choose(ctx, Message{
		Text:    MsgSelectPreferred,
		Options: []string{OptionWeb, OptionApp},
		Modal:   true,
	})
	if err != nil {
		return "", Failed, fmt.Errorf("show message: %w", err)
	}

	switch choice {
	case OptionWeb:
		appType = models.ApplicationTypeWeb
	case OptionApp:
		appType = models.ApplicationTypeApp
	default:
		return "", Cancelled, nil
	}

	if err := s.deps.Preferences.SetPreferredApplicationType(ctx, appType); err != nil {
		s.logger.WithError(err).Warn("Failed to save preferred application type")
	}
	return appType, Completed, nil
}
