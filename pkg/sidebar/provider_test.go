package sidebar

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-zeplin/pkg/models"
	"github.com/mattsolo1/grove-zeplin/pkg/remote"
	"github.com/mattsolo1/grove-zeplin/pkg/remote/fixture"
	"github.com/mattsolo1/grove-zeplin/pkg/tree"
)

var (
	webApp = models.Barrel{ID: "B1", Name: "Web App", Type: models.BarrelTypeProject, ParentID: "B2"}
	system = models.Barrel{ID: "B2", Name: "Design System", Type: models.BarrelTypeStyleguide}
	icons  = models.Barrel{ID: "B3", Name: "Icons", Type: models.BarrelTypeStyleguide}
)

func testSnapshot() fixture.Snapshot {
	return fixture.Snapshot{Barrels: []fixture.BarrelData{
		{
			Barrel: webApp,
			Screens: []models.Screen{
				{ID: "s1", Name: "Home"},
				{ID: "s2", Name: "Profile", SectionID: "sec1"},
			},
			ScreenSections: []models.ScreenSection{{ID: "sec1", Name: "Account"}},
			Components:     []models.Component{{ID: "c0", Name: "Divider"}},
		},
		{
			Barrel: system,
			Sections: []models.ComponentSection{{
				ID:   "secA",
				Name: "Forms",
				Sections: []models.ComponentSection{{
					ID:         "secB",
					Name:       "Inputs",
					Components: []models.Component{{ID: "c1", Name: "Text Field"}},
				}},
			}},
		},
		{
			Barrel:     icons,
			Components: []models.Component{{ID: "c3", Name: "Arrow"}},
		},
	}}
}

type staticSource struct {
	mu      sync.Mutex
	barrels []models.Barrel
	err     error
	calls   int
}

func (s *staticSource) SavedBarrels(ctx context.Context) ([]models.Barrel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.barrels, s.err
}

type revealCall struct {
	node tree.Node
	key  string
}

type recordingHost struct {
	calls []revealCall
	err   error
}

func (h *recordingHost) Reveal(ctx context.Context, node tree.Node, key string) error {
	h.calls = append(h.calls, revealCall{node: node, key: key})
	return h.err
}

type countingRefresher struct {
	requests int
}

func (r *countingRefresher) RequestRefresh() {
	r.requests++
}

func newTestProvider(t *testing.T, saved ...models.Barrel) (*Provider, *fixture.Client, *recordingHost) {
	t.Helper()
	client := fixture.New(testSnapshot())
	provider := NewProvider(&staticSource{barrels: saved}, tree.NewLoader(client), nil, nil)
	host := &recordingHost{}
	provider.SetHost(host)
	return provider, client, host
}

func TestRoots(t *testing.T) {
	t.Run("empty when nothing is saved", func(t *testing.T) {
		provider, _, _ := newTestProvider(t)
		roots, err := provider.Roots(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, roots)
		assert.Empty(t, roots)
	})

	t.Run("jump-to followed by saved barrels", func(t *testing.T) {
		provider, _, _ := newTestProvider(t, icons, webApp)
		roots, err := provider.Roots(context.Background())
		require.NoError(t, err)
		require.Len(t, roots, 3)
		assert.Equal(t, tree.KindJumpTo, roots[0].Kind())
		assert.Equal(t, "Icons", roots[1].Label())
		assert.Equal(t, "Web App", roots[2].Label())
	})

	t.Run("source errors propagate", func(t *testing.T) {
		boom := errors.New("database is locked")
		provider := NewProvider(&staticSource{err: boom}, nil, nil, nil)
		_, err := provider.Roots(context.Background())
		assert.ErrorIs(t, err, boom)
	})
}

func TestRosterIsCachedUntilRefresh(t *testing.T) {
	source := &staticSource{barrels: []models.Barrel{webApp}}
	provider := NewProvider(source, tree.NewLoader(fixture.New(testSnapshot())), nil, nil)
	ctx := context.Background()

	_, err := provider.Roots(ctx)
	require.NoError(t, err)
	_, err = provider.Roots(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls)

	require.NoError(t, provider.Refresh(ctx))
	_, err = provider.Roots(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
}

// gatedSource blocks the first SavedBarrels call until release is closed.
type gatedSource struct {
	mu      sync.Mutex
	barrels []models.Barrel
	calls   int
	entered chan struct{}
	release chan struct{}
}

func (s *gatedSource) SavedBarrels(ctx context.Context) ([]models.Barrel, error) {
	s.mu.Lock()
	s.calls++
	first := s.calls == 1
	barrels := append([]models.Barrel(nil), s.barrels...)
	s.mu.Unlock()

	if first {
		close(s.entered)
		<-s.release
	}
	return barrels, nil
}

func (s *gatedSource) set(barrels ...models.Barrel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.barrels = barrels
}

func TestRefreshDuringRootsFetchDropsStaleRoster(t *testing.T) {
	source := &gatedSource{
		barrels: []models.Barrel{webApp},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	provider := NewProvider(source, tree.NewLoader(fixture.New(testSnapshot())), nil, nil)
	ctx := context.Background()

	type result struct {
		roots []tree.Node
		err   error
	}
	done := make(chan result, 1)
	go func() {
		roots, err := provider.Roots(ctx)
		done <- result{roots, err}
	}()

	<-source.entered
	source.set(webApp, icons)
	require.NoError(t, provider.Refresh(ctx))
	close(source.release)

	stale := <-done
	require.NoError(t, stale.err)
	assert.Len(t, stale.roots, 2)

	roots, err := provider.Roots(ctx)
	require.NoError(t, err)
	require.Len(t, roots, 3)
	assert.Equal(t, "Icons", roots[2].Label())
	assert.Equal(t, 2, source.calls)
}

func TestInvalidateDoesNotNotify(t *testing.T) {
	source := &staticSource{barrels: []models.Barrel{webApp}}
	provider := NewProvider(source, tree.NewLoader(fixture.New(testSnapshot())), nil, nil)
	ctx := context.Background()
	notified := 0
	provider.OnDidChange(func() { notified++ })

	_, err := provider.Roots(ctx)
	require.NoError(t, err)
	provider.Invalidate()
	_, err = provider.Roots(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, source.calls)
	assert.Zero(t, notified)
}

func TestRequestRefresh(t *testing.T) {
	t.Run("goes through the coordinator", func(t *testing.T) {
		refresher := &countingRefresher{}
		notified := 0
		provider := NewProvider(&staticSource{}, nil, refresher, nil)
		provider.OnDidChange(func() { notified++ })

		provider.RequestRefresh()
		assert.Equal(t, 1, refresher.requests)
		assert.Zero(t, notified)
	})

	t.Run("refreshes directly without one", func(t *testing.T) {
		notified := 0
		provider := NewProvider(&staticSource{}, nil, nil, nil)
		provider.OnDidChange(func() { notified++ })

		provider.RequestRefresh()
		assert.Equal(t, 1, notified)
	})
}

func TestOnDidChange(t *testing.T) {
	provider, _, _ := newTestProvider(t, webApp)
	ctx := context.Background()

	var order []string
	unsubscribeA := provider.OnDidChange(func() { order = append(order, "a") })
	provider.OnDidChange(func() { order = append(order, "b") })

	require.NoError(t, provider.Refresh(ctx))
	assert.Equal(t, []string{"a", "b"}, order)

	unsubscribeA()
	require.NoError(t, provider.Refresh(ctx))
	assert.Equal(t, []string{"a", "b", "b"}, order)
}

func TestSetVisibleRequestsRefresh(t *testing.T) {
	refresher := &countingRefresher{}
	notified := 0
	provider := NewProvider(&staticSource{}, nil, refresher, nil)
	provider.OnDidChange(func() { notified++ })

	provider.SetVisible(true)
	provider.SetVisible(true)
	provider.SetVisible(false)
	provider.SetVisible(true)

	assert.Equal(t, 2, refresher.requests)
	assert.Equal(t, 0, notified, "visibility never notifies directly")
}

func TestRevealScreen(t *testing.T) {
	provider, _, host := newTestProvider(t, webApp)

	ok, err := provider.RevealScreen(context.Background(), "B1", models.Screen{ID: "s2", Name: "Profile", SectionID: "sec1"})
	require.NoError(t, err)
	assert.True(t, ok)

	require.Len(t, host.calls, 1)
	assert.Equal(t, "Screen: Profile|s2", host.calls[0].key)
	assert.Equal(t, "barrel/B1/screens/screen/s2", host.calls[0].node.Key())
}

func TestRevealUnsectionedScreen(t *testing.T) {
	provider, _, host := newTestProvider(t, webApp)

	ok, err := provider.RevealScreen(context.Background(), "B1", models.Screen{ID: "s1"})
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, host.calls, 1)
	assert.Equal(t, "Screen: Home|s1", host.calls[0].key)
}

func TestRevealAggregatedComponent(t *testing.T) {
	provider, _, host := newTestProvider(t, webApp)
	c1 := models.Component{ID: "c1", Name: "Text Field", BarrelID: "B2", SectionIDs: []string{"secA", "secB"}}

	ok, err := provider.RevealComponent(context.Background(), "B1", c1)
	require.NoError(t, err)
	assert.True(t, ok)

	require.Len(t, host.calls, 1)
	assert.Equal(t, "Component: Text Field|c1", host.calls[0].key)
	node, isComponent := host.calls[0].node.(*tree.ComponentNode)
	require.True(t, isComponent)
	assert.Equal(t, "B2", node.Owner.ID)
	assert.Equal(t, "barrel/B1/components/barrel/B2/component/c1", node.Key())
}

func TestRevealComponentWithoutAggregation(t *testing.T) {
	provider, _, host := newTestProvider(t, icons)

	ok, err := provider.RevealComponent(context.Background(), "B3", models.Component{ID: "c3", BarrelID: "B3"})
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, host.calls, 1)
	assert.Equal(t, "Component: Arrow|c3", host.calls[0].key)
}

func TestRevealIsIdempotent(t *testing.T) {
	provider, client, host := newTestProvider(t, webApp)
	ctx := context.Background()
	c1 := models.Component{ID: "c1", BarrelID: "B2", SectionIDs: []string{"secA", "secB"}}

	for i := 0; i < 2; i++ {
		ok, err := provider.RevealComponent(ctx, "B1", c1)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	require.Len(t, host.calls, 2)
	assert.Equal(t, host.calls[0].key, host.calls[1].key)
	assert.Equal(t, 1, client.Calls("components"), "second reveal must not fetch again")
}

func TestRevealMisses(t *testing.T) {
	tests := []struct {
		name   string
		target Target
	}{
		{"unsaved barrel", BarrelTarget{BarrelID: "B9"}},
		{"unknown screen", ScreenTarget{ProjectID: "B1", SectionID: "sec1", ScreenID: "s9"}},
		{"unknown section", ComponentTarget{BarrelID: "B1", OwnerID: "B2", SectionIDs: []string{"secZ"}, ComponentID: "c1"}},
		{"wrong owner", ComponentTarget{BarrelID: "B1", OwnerID: "B7", SectionIDs: []string{"secA", "secB"}, ComponentID: "c1"}},
		{"screens of a styleguide", ScreenTarget{ProjectID: "B3", ScreenID: "s1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, _, host := newTestProvider(t, webApp, icons)
			ok, err := provider.Reveal(context.Background(), tt.target)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Empty(t, host.calls)
		})
	}
}

func TestRevealMissIsCounted(t *testing.T) {
	provider, _, _ := newTestProvider(t)
	before := testutil.ToFloat64(revealTotal.WithLabelValues("Barrel", "miss"))

	ok, err := provider.RevealBarrel(context.Background(), "B1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, before+1, testutil.ToFloat64(revealTotal.WithLabelValues("Barrel", "miss")))
}

func TestRevealPropagatesFetchErrors(t *testing.T) {
	missing := models.Barrel{ID: "B9", Name: "Deleted", Type: models.BarrelTypeProject}
	provider, _, host := newTestProvider(t, missing)

	ok, err := provider.RevealScreen(context.Background(), "B9", models.Screen{ID: "s1"})
	require.Error(t, err)
	assert.False(t, ok)
	assert.True(t, remote.IsNotFound(err))
	assert.Empty(t, host.calls)
}

func TestRevealBarrelKey(t *testing.T) {
	provider, _, host := newTestProvider(t, webApp)

	ok, err := provider.RevealBarrel(context.Background(), "B1")
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, host.calls, 1)
	assert.Equal(t, "Barrel: Web App|B1", host.calls[0].key)
}

func TestRevealHostError(t *testing.T) {
	provider, _, host := newTestProvider(t, webApp)
	host.err = errors.New("view disposed")

	ok, err := provider.RevealBarrel(context.Background(), "B1")
	assert.False(t, ok)
	assert.ErrorIs(t, err, host.err)
}

func TestPathAfterReveal(t *testing.T) {
	provider, _, host := newTestProvider(t, webApp)
	c1 := models.Component{ID: "c1", BarrelID: "B2", SectionIDs: []string{"secA", "secB"}}

	ok, err := provider.RevealComponent(context.Background(), "B1", c1)
	require.NoError(t, err)
	require.True(t, ok)

	path := provider.Path(host.calls[0].node)
	labels := make([]string, len(path))
	for i, n := range path {
		labels[i] = n.Label()
	}
	assert.Equal(t, []string{"Web App", "Components", "Design System", "Forms", "Inputs", "Text Field"}, labels)
	assert.Nil(t, provider.Parent(path[0]))

	require.NoError(t, provider.Refresh(context.Background()))
	assert.Nil(t, provider.Parent(host.calls[0].node), "refresh forgets materialized parents")
}
