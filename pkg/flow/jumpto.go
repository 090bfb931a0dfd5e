package flow

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-zeplin/pkg/models"
	"github.com/mattsolo1/grove-zeplin/pkg/store"
)

// Mode selects what Jump-To does with the chosen item.
type Mode int

const (
	// ModeOpenExternally opens the item in Zeplin.
	ModeOpenExternally Mode = iota
	// ModeReveal focuses the item in the sidebar.
	ModeReveal
)

// JumpTo lets the user pick a saved barrel and then a screen or component
// of it, and opens or reveals the choice.
func (s *Service) JumpTo(ctx context.Context, mode Mode) (Result, error) {
	if !s.deps.Session.IsLoggedIn() {
		s.deps.Messenger.Error(ctx, MsgNotLoggedIn)
		return NotAuthenticated, nil
	}

	barrel, res, err := s.selectSavedBarrel(ctx, TitleJumpTo)
	if res != Completed {
		return res, err
	}

	jumpable, res, err := s.selectJumpable(ctx, barrel)
	if res != Completed {
		return res, err
	}

	s.logger.WithFields(logrus.Fields{
		"barrel": barrel.ID,
		"kind":   jumpable.Kind.String(),
		"id":     jumpable.ID(),
	}).Debug("Jumping to item")

	if mode == ModeReveal {
		return s.reveal(ctx, barrel, jumpable)
	}
	return s.Open(ctx, s.jumpableURI(barrel, jumpable))
}

// selectSavedBarrel resolves the barrel a flow works on. With no saved
// barrels it offers to add one instead.
func (s *Service) selectSavedBarrel(ctx context.Context, title string) (models.Barrel, Result, error) {
	barrels, err := s.deps.Barrels.SavedBarrels(ctx)
	if err != nil {
		s.deps.Messenger.Error(ctx, fmt.Sprintf("Could not read saved barrels: %v", err))
		return models.Barrel{}, Failed, err
	}

	switch len(barrels) {
	case 0:
		return models.Barrel{}, NoSavedBarrels, s.offerAddBarrel(ctx)
	case 1:
		return barrels[0], Completed, nil
	}

	picker := &QuickPick[models.Barrel]{
		Store:       store.NewStaticStore(barrels),
		Render:      barrelEntry,
		Title:       title,
		Placeholder: PlaceholderBarrel,
	}
	return picker.Pick(ctx, s.deps.Selector, s.deps.Messenger)
}

func (s *Service) offerAddBarrel(ctx context.Context) error {
	addProject := OptionAdd(models.BarrelTypeProject)
	addStyleguide := OptionAdd(models.BarrelTypeStyleguide)

	choice, err := s.deps.Messenger.Choose(ctx, Message{
		Text:    MsgNoBarrelFound,
		Options: []string{addProject, addStyleguide, OptionCancel},
	})
	if err != nil {
		return fmt.Errorf("show message: %w", err)
	}

	switch choice {
	case addProject:
		_, err = s.AddBarrel(ctx, models.BarrelTypeProject)
	case addStyleguide:
		_, err = s.AddBarrel(ctx, models.BarrelTypeStyleguide)
	}
	return err
}

func (s *Service) selectJumpable(ctx context.Context, barrel models.Barrel) (models.Jumpable, Result, error) {
	picker := &QuickPick[models.Jumpable]{
		Store:        NewJumpablesStore(s.deps.Client, barrel),
		Render:       func(j models.Jumpable) Entry { return jumpableEntry(barrel, j) },
		Title:        TitleJumpTo,
		Placeholder:  PlaceholderJumpable,
		EmptyMessage: MsgNoItemFound,
		RenderError:  barrelError(barrel),
	}
	return picker.Pick(ctx, s.deps.Selector, s.deps.Messenger)
}

func jumpableEntry(barrel models.Barrel, j models.Jumpable) Entry {
	switch j.Kind {
	case models.JumpableComponent:
		detail := "Component"
		if len(j.Component.SectionNames) > 0 {
			detail += " · " + strings.Join(j.Component.SectionNames, " > ")
		}
		return Entry{Label: j.Component.Name, Detail: detail}
	default:
		return Entry{Label: j.Screen.Name, Detail: "Screen in " + barrel.Name}
	}
}

func (s *Service) jumpableURI(barrel models.Barrel, j models.Jumpable) URIProvider {
	return URIFunc(func(appType models.ApplicationType) string {
		switch j.Kind {
		case models.JumpableComponent:
			return s.deps.URIs.Component(barrel.ID, barrel.Type, j.Component.ID, appType)
		default:
			return s.deps.URIs.Screen(barrel.ID, j.Screen.ID, appType)
		}
	})
}

func (s *Service) reveal(ctx context.Context, barrel models.Barrel, j models.Jumpable) (Result, error) {
	if s.deps.Sidebar == nil {
		return Failed, fmt.Errorf("reveal %s: no sidebar attached", j.Name())
	}

	var found bool
	var err error
	switch j.Kind {
	case models.JumpableComponent:
		found, err = s.deps.Sidebar.RevealComponent(ctx, barrel.ID, *j.Component)
	default:
		found, err = s.deps.Sidebar.RevealScreen(ctx, barrel.ID, *j.Screen)
	}
	if err != nil {
		s.deps.Messenger.Error(ctx, barrelError(barrel)(err))
		return Failed, err
	}
	if !found {
		s.logger.WithField("id", j.ID()).Debug("Item not present in sidebar")
	}
	return Completed, nil
}
