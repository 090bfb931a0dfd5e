package flow

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mattsolo1/grove-zeplin/pkg/models"
	"github.com/mattsolo1/grove-zeplin/pkg/remote"
	"github.com/mattsolo1/grove-zeplin/pkg/store"
)

// NewJumpablesStore creates a store listing everything in barrel that can be
// jumped to: the screens of a project followed by the components of the
// barrel and of every styleguide it inherits from.
func NewJumpablesStore(client remote.Client, barrel models.Barrel) *store.FetchStore[[]models.Jumpable] {
	return store.NewFetchStore("jumpables", func(ctx context.Context) ([]models.Jumpable, error) {
		var screens []models.Screen
		var details []models.BarrelDetails

		g, gctx := errgroup.WithContext(ctx)
		if barrel.IsProject() {
			g.Go(func() error {
				var err error
				if screens, err = client.Screens(gctx, barrel.ID); err != nil {
					return fmt.Errorf("fetch screens of %s: %w", barrel.ID, err)
				}
				return nil
			})
		}
		g.Go(func() error {
			var err error
			if details, err = client.Components(gctx, barrel); err != nil {
				return fmt.Errorf("fetch components of %s: %w", barrel.ID, err)
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		jumpables := make([]models.Jumpable, 0, len(screens))
		for _, s := range screens {
			jumpables = append(jumpables, models.ScreenJumpable(s))
		}
		for _, d := range details {
			for _, c := range d.AllComponents() {
				jumpables = append(jumpables, models.ComponentJumpable(c))
			}
		}
		return jumpables, nil
	})
}
