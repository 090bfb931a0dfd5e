package flow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-zeplin/pkg/models"
	"github.com/mattsolo1/grove-zeplin/pkg/sidebar"
	"github.com/mattsolo1/grove-zeplin/pkg/tree"
)

func TestAddBarrelSkipsSavedOnes(t *testing.T) {
	h := newHarness(webApp)
	h.selector.answers = []int{0}
	ctx := context.Background()

	res, err := h.service.AddBarrel(ctx, models.BarrelTypeProject)
	require.NoError(t, err)
	assert.Equal(t, Completed, res)

	require.Len(t, h.selector.requests, 1)
	assert.Equal(t, []Entry{{Label: "Blank", Detail: "Project"}}, h.selector.requests[0].Entries)

	saved, _ := h.barrels.SavedBarrels(ctx)
	require.Len(t, saved, 2)
	assert.Equal(t, "B4", saved[1].ID)

	assert.Equal(t, 1, h.sidebar.refreshes)
	assert.Equal(t, []string{"invalidate", "reveal", "request"}, h.sidebar.calls)
	assert.Equal(t, []revealed{{barrelID: "B4", id: "B4"}}, h.sidebar.reveals)
	assert.Equal(t, []string{"Blank added to the sidebar."}, h.messenger.infos)
}

type countingRefresher struct {
	requests int
}

func (r *countingRefresher) RequestRefresh() { r.requests++ }

type keyRecorder struct {
	keys []string
}

func (h *keyRecorder) Reveal(ctx context.Context, node tree.Node, key string) error {
	h.keys = append(h.keys, key)
	return nil
}

func TestAddBarrelRefreshesThroughCoordinator(t *testing.T) {
	h := newHarness(webApp)
	refresher := &countingRefresher{}
	provider := sidebar.NewProvider(h.barrels, tree.NewLoader(h.client), refresher, nil)
	host := &keyRecorder{}
	provider.SetHost(host)
	notified := 0
	provider.OnDidChange(func() { notified++ })
	ctx := context.Background()

	roots, err := provider.Roots(ctx)
	require.NoError(t, err)
	require.Len(t, roots, 2)

	h.deps.Sidebar = provider
	h.service = New(h.deps)
	h.selector.answers = []int{0}

	res, err := h.service.AddBarrel(ctx, models.BarrelTypeProject)
	require.NoError(t, err)
	assert.Equal(t, Completed, res)

	assert.Zero(t, notified)
	assert.Equal(t, 1, refresher.requests)
	assert.Equal(t, []string{"Barrel: Blank|B4"}, host.keys)

	roots, err = provider.Roots(ctx)
	require.NoError(t, err)
	assert.Len(t, roots, 3)
}

func TestAddBarrelNothingLeft(t *testing.T) {
	h := newHarness(system, icons)

	res, err := h.service.AddBarrel(context.Background(), models.BarrelTypeStyleguide)
	require.NoError(t, err)
	assert.Equal(t, Empty, res)
	assert.Equal(t, []string{"No styleguide found to add."}, h.messenger.infos)
	assert.Empty(t, h.selector.requests)
}

func TestAddBarrelRequiresLogin(t *testing.T) {
	h := newHarness().loggedOut()

	res, err := h.service.AddBarrel(context.Background(), models.BarrelTypeProject)
	require.NoError(t, err)
	assert.Equal(t, NotAuthenticated, res)
	assert.Zero(t, h.client.Calls("barrels"))
}

func TestRemoveBarrel(t *testing.T) {
	h := newHarness(webApp, icons)
	h.selector.answers = []int{1}
	ctx := context.Background()

	res, err := h.service.RemoveBarrel(ctx)
	require.NoError(t, err)
	assert.Equal(t, Completed, res)

	saved, _ := h.barrels.SavedBarrels(ctx)
	assert.Equal(t, []models.Barrel{webApp}, saved)
	assert.Equal(t, []string{"invalidate", "request"}, h.sidebar.calls)
}

func TestRemoveBarrelWithNothingSaved(t *testing.T) {
	h := newHarness()

	res, err := h.service.RemoveBarrel(context.Background())
	require.NoError(t, err)
	assert.Equal(t, NoSavedBarrels, res)
	assert.Equal(t, []string{MsgNothingToRemove}, h.messenger.infos)
}

func TestRemoveBarrelByID(t *testing.T) {
	h := newHarness(webApp, icons)
	ctx := context.Background()

	res, err := h.service.RemoveBarrelByID(ctx, "B3")
	require.NoError(t, err)
	assert.Equal(t, Completed, res)

	res, err = h.service.RemoveBarrelByID(ctx, "B3")
	require.NoError(t, err)
	assert.Equal(t, NoSavedBarrels, res)
	assert.Len(t, h.messenger.errors, 1)
}
