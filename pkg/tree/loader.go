package tree

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mattsolo1/grove-zeplin/pkg/models"
	"github.com/mattsolo1/grove-zeplin/pkg/remote"
	"github.com/mattsolo1/grove-zeplin/pkg/store"
)

// ScreenData is everything needed to lay out the screens of a project.
type ScreenData struct {
	Screens  []models.Screen
	Sections []models.ScreenSection
}

// Loader hands out per-barrel stores over a remote client. Stores live until
// Invalidate is called, so repeated expansions of the same barrel share one
// fetch.
type Loader struct {
	client remote.Client

	mu         sync.Mutex
	screens    map[string]*store.FetchStore[ScreenData]
	components map[string]*store.FetchStore[[]models.BarrelDetails]
}

// NewLoader creates a Loader.
func NewLoader(client remote.Client) *Loader {
	return &Loader{
		client:     client,
		screens:    make(map[string]*store.FetchStore[ScreenData]),
		components: make(map[string]*store.FetchStore[[]models.BarrelDetails]),
	}
}

// Screens returns the screen store of a project.
func (l *Loader) Screens(project models.Barrel) store.Store[ScreenData] {
	l.mu.Lock()
	defer l.mu.Unlock()

	if s, ok := l.screens[project.ID]; ok {
		return s
	}
	s := store.NewFetchStore("screens", func(ctx context.Context) (ScreenData, error) {
		return l.fetchScreens(ctx, project.ID)
	})
	l.screens[project.ID] = s
	return s
}

// Components returns the component store of a barrel.
func (l *Loader) Components(barrel models.Barrel) store.Store[[]models.BarrelDetails] {
	l.mu.Lock()
	defer l.mu.Unlock()

	if s, ok := l.components[barrel.ID]; ok {
		return s
	}
	s := store.NewFetchStore("components", func(ctx context.Context) ([]models.BarrelDetails, error) {
		details, err := l.client.Components(ctx, barrel)
		if err != nil {
			return nil, fmt.Errorf("fetch components of %s: %w", barrel.ID, err)
		}
		return details, nil
	})
	l.components[barrel.ID] = s
	return s
}

// Invalidate drops every store. Fetches in flight complete but their
// results are discarded.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, s := range l.screens {
		s.Invalidate()
	}
	for _, s := range l.components {
		s.Invalidate()
	}
	l.screens = make(map[string]*store.FetchStore[ScreenData])
	l.components = make(map[string]*store.FetchStore[[]models.BarrelDetails])
}

func (l *Loader) fetchScreens(ctx context.Context, projectID string) (ScreenData, error) {
	var data ScreenData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		screens, err := l.client.Screens(gctx, projectID)
		if err != nil {
			return fmt.Errorf("fetch screens of %s: %w", projectID, err)
		}
		data.Screens = screens
		return nil
	})
	g.Go(func() error {
		sections, err := l.client.ScreenSections(gctx, projectID)
		if err != nil {
			return fmt.Errorf("fetch screen sections of %s: %w", projectID, err)
		}
		data.Sections = sections
		return nil
	})
	if err := g.Wait(); err != nil {
		return ScreenData{}, err
	}
	return data, nil
}
