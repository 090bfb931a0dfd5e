package flow

import (
	"context"
	"fmt"

	"github.com/mattsolo1/grove-zeplin/pkg/models"
	"github.com/mattsolo1/grove-zeplin/pkg/store"
)

// AddBarrel lets the user pick a project or styleguide that is not in the
// sidebar yet, saves it and reveals it.
func (s *Service) AddBarrel(ctx context.Context, barrelType models.BarrelType) (Result, error) {
	if !s.deps.Session.IsLoggedIn() {
		s.deps.Messenger.Error(ctx, MsgNotLoggedIn)
		return NotAuthenticated, nil
	}

	picker := &QuickPick[models.Barrel]{
		Store:        s.unsavedBarrels(barrelType),
		Render:       barrelEntry,
		Title:        titleAdd(barrelType),
		Placeholder:  PlaceholderBarrel,
		EmptyMessage: msgNoBarrelToAdd(barrelType),
		RenderError:  barrelListError(barrelType),
	}
	barrel, res, err := picker.Pick(ctx, s.deps.Selector, s.deps.Messenger)
	if res != Completed {
		return res, err
	}

	if err := s.deps.Barrels.Add(ctx, barrel); err != nil {
		s.deps.Messenger.Error(ctx, fmt.Sprintf("Could not add %s: %v", barrel.Name, err))
		return Failed, err
	}
	s.logger.WithField("barrel", barrel.ID).Info("Added barrel to sidebar")

	if sidebar := s.deps.Sidebar; sidebar != nil {
		sidebar.Invalidate()
		if _, err := sidebar.RevealBarrel(ctx, barrel.ID); err != nil {
			s.logger.WithError(err).Warn("Failed to reveal added barrel")
		}
		sidebar.RequestRefresh()
	}
	s.deps.Messenger.Info(ctx, msgAdded(barrel))
	return Completed, nil
}

func (s *Service) unsavedBarrels(barrelType models.BarrelType) store.Store[[]models.Barrel] {
	return store.NewFetchStore("barrels", func(ctx context.Context) ([]models.Barrel, error) {
		all, err := s.deps.Client.Barrels(ctx, barrelType)
		if err != nil {
			return nil, fmt.Errorf("fetch %ss: %w", barrelType, err)
		}
		saved, err := s.deps.Barrels.SavedBarrels(ctx)
		if err != nil {
			return nil, fmt.Errorf("read saved barrels: %w", err)
		}

		isSaved := make(map[string]bool, len(saved))
		for _, b := range saved {
			isSaved[b.ID] = true
		}
		var unsaved []models.Barrel
		for _, b := range all {
			if !isSaved[b.ID] {
				unsaved = append(unsaved, b)
			}
		}
		return unsaved, nil
	})
}

// RemoveBarrel lets the user pick a saved barrel and removes it from the
// sidebar.
func (s *Service) RemoveBarrel(ctx context.Context) (Result, error) {
	barrels, err := s.deps.Barrels.SavedBarrels(ctx)
	if err != nil {
		s.deps.Messenger.Error(ctx, fmt.Sprintf("Could not read saved barrels: %v", err))
		return Failed, err
	}
	if len(barrels) == 0 {
		s.deps.Messenger.Info(ctx, MsgNothingToRemove)
		return NoSavedBarrels, nil
	}

	picker := &QuickPick[models.Barrel]{
		Store:       store.NewStaticStore(barrels),
		Render:      barrelEntry,
		Title:       TitleRemoveBarrel,
		Placeholder: PlaceholderBarrel,
	}
	barrel, res, err := picker.Pick(ctx, s.deps.Selector, s.deps.Messenger)
	if res != Completed {
		return res, err
	}
	return s.removeBarrel(ctx, barrel)
}

func (s *Service) removeBarrel(ctx context.Context, barrel models.Barrel) (Result, error) {
	if err := s.deps.Barrels.Remove(ctx, barrel.ID); err != nil {
		s.deps.Messenger.Error(ctx, fmt.Sprintf("Could not remove %s: %v", barrel.Name, err))
		return Failed, err
	}
	s.logger.WithField("barrel", barrel.ID).Info("Removed barrel from sidebar")

	if sidebar := s.deps.Sidebar; sidebar != nil {
		sidebar.Invalidate()
		sidebar.RequestRefresh()
	}
	s.deps.Messenger.Info(ctx, msgRemoved(barrel))
	return Completed, nil
}

// RemoveBarrelByID removes the saved barrel with the given id.
func (s *Service) RemoveBarrelByID(ctx context.Context, id string) (Result, error) {
	barrels, err := s.deps.Barrels.SavedBarrels(ctx)
	if err != nil {
		return Failed, fmt.Errorf("read saved barrels: %w", err)
	}
	for _, b := range barrels {
		if b.ID == id {
			return s.removeBarrel(ctx, b)
		}
	}
	s.deps.Messenger.Error(ctx, fmt.Sprintf("%s is not in the sidebar.", id))
	return NoSavedBarrels, nil
}
