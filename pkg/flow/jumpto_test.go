package flow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-zeplin/pkg/models"
)

func TestJumpToRequiresLogin(t *testing.T) {
	h := newHarness(webApp).loggedOut()

	res, err := h.service.JumpTo(context.Background(), ModeOpenExternally)
	require.NoError(t, err)
	assert.Equal(t, NotAuthenticated, res)
	assert.Equal(t, []string{MsgNotLoggedIn}, h.messenger.errors)
	assert.Empty(t, h.selector.requests)
}

func TestJumpToWithoutSavedBarrels(t *testing.T) {
	h := newHarness()
	h.messenger.answers = []string{OptionCancel}

	res, err := h.service.JumpTo(context.Background(), ModeOpenExternally)
	require.NoError(t, err)
	assert.Equal(t, NoSavedBarrels, res)

	require.Len(t, h.messenger.messages, 1)
	msg := h.messenger.messages[0]
	assert.Equal(t, MsgNoBarrelFound, msg.Text)
	assert.Equal(t, []string{"Add Project", "Add Styleguide", "Cancel"}, msg.Options)

	assert.Empty(t, h.selector.requests)
	assert.Zero(t, h.client.Calls("screens"))
	assert.Zero(t, h.client.Calls("components"))
}

func TestJumpToOffersToAddBarrel(t *testing.T) {
	h := newHarness()
	h.messenger.answers = []string{"Add Project"}
	h.selector.answers = []int{0}

	res, err := h.service.JumpTo(context.Background(), ModeOpenExternally)
	require.NoError(t, err)
	assert.Equal(t, NoSavedBarrels, res)

	saved, _ := h.barrels.SavedBarrels(context.Background())
	require.Len(t, saved, 1)
	assert.Equal(t, "B1", saved[0].ID)
	assert.Equal(t, "Add Project to Sidebar", h.selector.requests[0].Title)
}

func TestJumpToSingleBarrelIsAutoSelected(t *testing.T) {
	h := newHarness(webApp)
	h.selector.answers = []int{1}

	res, err := h.service.JumpTo(context.Background(), ModeOpenExternally)
	require.NoError(t, err)
	assert.Equal(t, Completed, res)

	require.Len(t, h.selector.requests, 1, "only the item picker is shown")
	entries := h.selector.requests[0].Entries
	require.Len(t, entries, 4)
	assert.Equal(t, Entry{Label: "Home", Detail: "Screen in Web App"}, entries[0])
	assert.Equal(t, "Profile", entries[1].Label)
	assert.Equal(t, Entry{Label: "Divider", Detail: "Component"}, entries[2])
	assert.Equal(t, Entry{Label: "Text Field", Detail: "Component · Forms > Inputs"}, entries[3])

	assert.Equal(t, []string{"https://app.zeplin.io/project/B1/screen/s2"}, h.opener.uris)
}

func TestJumpToPicksAmongBarrels(t *testing.T) {
	h := newHarness(webApp, icons)
	h.selector.answers = []int{1, 0}

	res, err := h.service.JumpTo(context.Background(), ModeOpenExternally)
	require.NoError(t, err)
	assert.Equal(t, Completed, res)

	require.Len(t, h.selector.requests, 2)
	assert.Equal(t, PlaceholderBarrel, h.selector.requests[0].Placeholder)
	assert.Equal(t, Entry{Label: "Icons", Detail: "Styleguide"}, h.selector.requests[0].Entries[1])
	assert.Equal(t, []string{"https://app.zeplin.io/styleguide/B3/components?coid=c3"}, h.opener.uris)
}

func TestJumpToDismissal(t *testing.T) {
	t.Run("barrel picker", func(t *testing.T) {
		h := newHarness(webApp, icons)

		res, err := h.service.JumpTo(context.Background(), ModeOpenExternally)
		require.NoError(t, err)
		assert.Equal(t, Cancelled, res)
		assert.Zero(t, h.client.Calls("components"))
		assert.Empty(t, h.opener.uris)
	})

	t.Run("item picker", func(t *testing.T) {
		h := newHarness(webApp)

		res, err := h.service.JumpTo(context.Background(), ModeOpenExternally)
		require.NoError(t, err)
		assert.Equal(t, Cancelled, res)
		assert.Empty(t, h.opener.uris)
		assert.Empty(t, h.messenger.messages)
	})
}

func TestJumpToEmptyBarrel(t *testing.T) {
	h := newHarness(blank)

	res, err := h.service.JumpTo(context.Background(), ModeOpenExternally)
	require.NoError(t, err)
	assert.Equal(t, Empty, res)
	assert.Equal(t, []string{MsgNoItemFound}, h.messenger.infos)
	assert.Empty(t, h.selector.requests)
}

func TestJumpToFetchFailure(t *testing.T) {
	h := newHarness(gone)

	res, err := h.service.JumpTo(context.Background(), ModeOpenExternally)
	require.Error(t, err)
	assert.Equal(t, Failed, res)
	require.Len(t, h.messenger.errors, 1)
	assert.Contains(t, h.messenger.errors[0], "Project Deleted could not be found")
	assert.Empty(t, h.selector.requests)
}

func TestJumpToReveal(t *testing.T) {
	h := newHarness(webApp)
	h.selector.answers = []int{3}

	res, err := h.service.JumpTo(context.Background(), ModeReveal)
	require.NoError(t, err)
	assert.Equal(t, Completed, res)
	assert.Equal(t, []revealed{{barrelID: "B1", id: "c1"}}, h.sidebar.reveals)
	assert.Empty(t, h.opener.uris)
}

func TestJumpToRevealMissIsSilent(t *testing.T) {
	h := newHarness(webApp)
	h.sidebar.found = false
	h.selector.answers = []int{0}

	res, err := h.service.JumpTo(context.Background(), ModeReveal)
	require.NoError(t, err)
	assert.Equal(t, Completed, res)
	assert.Empty(t, h.messenger.errors)
	assert.Empty(t, h.messenger.infos)
}

func TestJumpablesStoreForStyleguide(t *testing.T) {
	h := newHarness()

	jumpables, err := NewJumpablesStore(h.client, system).Get(context.Background())
	require.NoError(t, err)
	require.Len(t, jumpables, 1)
	assert.Equal(t, models.JumpableComponent, jumpables[0].Kind)
	assert.Zero(t, h.client.Calls("screens"), "styleguides have no screens")
}
