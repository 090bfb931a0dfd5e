package flow

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-zeplin/pkg/models"
	"github.com/mattsolo1/grove-zeplin/pkg/remote"
	"github.com/mattsolo1/grove-zeplin/pkg/session"
	"github.com/mattsolo1/grove-zeplin/pkg/zeplinuri"
)

// SavedBarrels is the list of barrels shown in the sidebar.
type SavedBarrels interface {
	SavedBarrels(ctx context.Context) ([]models.Barrel, error)
	Add(ctx context.Context, b models.Barrel) error
	Remove(ctx context.Context, id string) error
}

// Preferences stores the application external links open in.
type Preferences interface {
	PreferredApplicationType(ctx context.Context) (models.ApplicationType, bool, error)
	SetPreferredApplicationType(ctx context.Context, appType models.ApplicationType) error
}

// Sidebar is the tree the flows reveal results in. Invalidate drops loaded
// state silently; RequestRefresh schedules the change notification.
type Sidebar interface {
	Invalidate()
	RequestRefresh()
	RevealBarrel(ctx context.Context, barrelID string) (bool, error)
	RevealScreen(ctx context.Context, projectID string, screen models.Screen) (bool, error)
	RevealComponent(ctx context.Context, barrelID string, component models.Component) (bool, error)
}

// Deps are the collaborators of the flows. Sidebar and Logger are optional.
type Deps struct {
	Session     session.Session
	Client      remote.Client
	Barrels     SavedBarrels
	Preferences Preferences
	Sidebar     Sidebar
	URIs        zeplinuri.Builder

	Selector  Selector
	Messenger Messenger
	Opener    Opener

	Logger logrus.FieldLogger
}

// Service runs flows against a fixed set of collaborators.
type Service struct {
	deps   Deps
	logger logrus.FieldLogger
}

// New creates a Service.
func New(deps Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{deps: deps, logger: logger.WithField("component", "flow")}
}
