package flow

import (
	"context"
	"errors"
	"sync"

	"github.com/mattsolo1/grove-zeplin/pkg/models"
	"github.com/mattsolo1/grove-zeplin/pkg/remote/fixture"
	"github.com/mattsolo1/grove-zeplin/pkg/session"
)

var (
	webApp = models.Barrel{ID: "B1", Name: "Web App", Type: models.BarrelTypeProject, ParentID: "B2"}
	system = models.Barrel{ID: "B2", Name: "Design System", Type: models.BarrelTypeStyleguide}
	icons  = models.Barrel{ID: "B3", Name: "Icons", Type: models.BarrelTypeStyleguide}
	blank  = models.Barrel{ID: "B4", Name: "Blank", Type: models.BarrelTypeProject}
	gone   = models.Barrel{ID: "B9", Name: "Deleted", Type: models.BarrelTypeProject}
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
		{Barrel: blank},
	}}
}

// fakeSelector answers pickers with queued indexes. An exhausted queue
// dismisses.
type fakeSelector struct {
	answers  []int
	requests []SelectRequest
	err      error
}

func (s *fakeSelector) Select(ctx context.Context, req SelectRequest) (int, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return -1, s.err
	}
	if len(s.answers) == 0 {
		return -1, nil
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

type fakeMessenger struct {
	answers  []string
	messages []Message
	infos    []string
	errors   []string
}

func (m *fakeMessenger) Choose(ctx context.Context, msg Message) (string, error) {
	m.messages = append(m.messages, msg)
	if len(m.answers) == 0 {
		return "", nil
	}
	answer := m.answers[0]
	m.answers = m.answers[1:]
	return answer, nil
}

func (m *fakeMessenger) Info(ctx context.Context, text string) {
	m.infos = append(m.infos, text)
}

func (m *fakeMessenger) Error(ctx context.Context, text string) {
	m.errors = append(m.errors, text)
}

type fakeOpener struct {
	uris []string
	err  error
}

func (o *fakeOpener) Open(ctx context.Context, uri string) error {
	o.uris = append(o.uris, uri)
	return o.err
}

type memBarrels struct {
	mu      sync.Mutex
	barrels []models.Barrel
}

func (m *memBarrels) SavedBarrels(ctx context.Context) ([]models.Barrel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Barrel(nil), m.barrels...), nil
}

func (m *memBarrels) Add(ctx context.Context, b models.Barrel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.barrels = append(m.barrels, b)
	return nil
}

func (m *memBarrels) Remove(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, b := range m.barrels {
		if b.ID == id {
			m.barrels = append(m.barrels[:i], m.barrels[i+1:]...)
			return nil
		}
	}
	return errors.New("not saved")
}

type memPreferences struct {
	appType  models.ApplicationType
	selected bool
	writes   int
}

func (p *memPreferences) PreferredApplicationType(ctx context.Context) (models.ApplicationType, bool, error) {
	if !p.selected {
		return models.ApplicationTypeWeb, false, nil
	}
	return p.appType, true, nil
}

func (p *memPreferences) SetPreferredApplicationType(ctx context.Context, appType models.ApplicationType) error {
	p.appType, p.selected = appType, true
	p.writes++
	return nil
}

type revealed struct {
	barrelID string
	id       string
}

type fakeSidebar struct {
	refreshes int
	reveals   []revealed
	found     bool
	// calls records the order of sidebar operations.
	calls []string
}

func (s *fakeSidebar) Invalidate() {
	s.calls = append(s.calls, "invalidate")
}

func (s *fakeSidebar) RequestRefresh() {
	s.refreshes++
	s.calls = append(s.calls, "request")
}

func (s *fakeSidebar) RevealBarrel(ctx context.Context, barrelID string) (bool, error) {
	s.calls = append(s.calls, "reveal")
	s.reveals = append(s.reveals, revealed{barrelID: barrelID, id: barrelID})
	return s.found, nil
}

func (s *fakeSidebar) RevealScreen(ctx context.Context, projectID string, screen models.Screen) (bool, error) {
	s.reveals = append(s.reveals, revealed{barrelID: projectID, id: screen.ID})
	return s.found, nil
}

func (s *fakeSidebar) RevealComponent(ctx context.Context, barrelID string, component models.Component) (bool, error) {
	s.reveals = append(s.reveals, revealed{barrelID: barrelID, id: component.ID})
	return s.found, nil
}

type harness struct {
	deps      Deps
	service   *Service
	client    *fixture.Client
	barrels   *memBarrels
	prefs     *memPreferences
	sidebar   *fakeSidebar
	selector  *fakeSelector
	messenger *fakeMessenger
	opener    *fakeOpener
}

func newHarness(saved ...models.Barrel) *harness {
	h := &harness{
		client:    fixture.New(testSnapshot()),
		barrels:   &memBarrels{barrels: saved},
		prefs:     &memPreferences{appType: models.ApplicationTypeWeb, selected: true},
		sidebar:   &fakeSidebar{found: true},
		selector:  &fakeSelector{},
		messenger: &fakeMessenger{},
		opener:    &fakeOpener{},
	}
	h.deps = Deps{
		Session:     session.Offline{},
		Client:      h.client,
		Barrels:     h.barrels,
		Preferences: h.prefs,
		Sidebar:     h.sidebar,
		Selector:    h.selector,
		Messenger:   h.messenger,
		Opener:      h.opener,
	}
	h.service = New(h.deps)
	return h
}

// loggedOut rebuilds the service with a session that has no token.
func (h *harness) loggedOut() *harness {
	h.deps.Session = session.NewTokenSession("")
	h.service = New(h.deps)
	return h
}
