package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	coreconfig "github.com/mattsolo1/grove-core/config"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-zeplin/internal/tui/picker"
	"github.com/mattsolo1/grove-zeplin/pkg/flow"
	"github.com/mattsolo1/grove-zeplin/pkg/models"
	"github.com/mattsolo1/grove-zeplin/pkg/refresh"
	"github.com/mattsolo1/grove-zeplin/pkg/registry"
	"github.com/mattsolo1/grove-zeplin/pkg/remote"
	"github.com/mattsolo1/grove-zeplin/pkg/remote/fixture"
	"github.com/mattsolo1/grove-zeplin/pkg/remote/zeplin"
	"github.com/mattsolo1/grove-zeplin/pkg/session"
	"github.com/mattsolo1/grove-zeplin/pkg/sidebar"
	"github.com/mattsolo1/grove-zeplin/pkg/tree"
	"github.com/mattsolo1/grove-zeplin/pkg/zeplinuri"
)

var (
	cfgFile string
	verbose bool
)

// Extension is the 'zeplin' section in grove.yml
type Extension struct {
	DataDir     string                   `yaml:"data_dir"`
	FixtureFile string                   `yaml:"fixture_file"`
	WebURL      string                   `yaml:"web_url"`
	Barrels     []map[string]interface{} `yaml:"barrels"`
}

// Settings are the resolved configuration values.
type Settings struct {
	DataDir      string
	APIURL       string
	APIToken     string
	WebURL       string
	FixtureFile  string
	RefreshDelay time.Duration
	Barrels      []models.Barrel
}

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "zeplin")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("ZEPLIN")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("data_dir", filepath.Join(os.Getenv("HOME"), ".local", "share", "zeplin"))
	viper.SetDefault("api_url", zeplin.DefaultBaseURL)
	viper.SetDefault("api_token", "")
	viper.SetDefault("web_url", zeplinuri.DefaultWebURL)
	viper.SetDefault("refresh_delay", refresh.DefaultDelay)
	viper.SetDefault("fixture_file", "")

	// A missing config file is fine; everything has a default.
	_ = viper.ReadInConfig()
}

// LoadSettings resolves settings from viper, letting the grove.yml extension
// override the data directory, fixture file and web URL.
func LoadSettings(logger logrus.FieldLogger) (*Settings, error) {
	s := &Settings{
		DataDir:      viper.GetString("data_dir"),
		APIURL:       viper.GetString("api_url"),
		APIToken:     viper.GetString("api_token"),
		WebURL:       viper.GetString("web_url"),
		FixtureFile:  viper.GetString("fixture_file"),
		RefreshDelay: viper.GetDuration("refresh_delay"),
	}

	barrels, err := DecodeBarrels(viper.Get("barrels"))
	if err != nil {
		return nil, fmt.Errorf("config barrels: %w", err)
	}
	s.Barrels = barrels

	coreCfg, err := coreconfig.LoadDefault()
	if err != nil {
		// Proceed without grove.yml (Local Mode)
		logger.Debugf("could not load grove config: %v", err)
		return s, nil
	}

	var ext Extension
	if err := coreCfg.UnmarshalExtension("zeplin", &ext); err != nil {
		logger.WithError(err).Warn("Ignoring invalid zeplin section in grove config")
		return s, nil
	}
	if ext.DataDir != "" {
		s.DataDir = ext.DataDir
	}
	if ext.FixtureFile != "" {
		s.FixtureFile = ext.FixtureFile
	}
	if ext.WebURL != "" {
		s.WebURL = ext.WebURL
	}
	if len(ext.Barrels) > 0 {
		extBarrels, err := DecodeBarrels(ext.Barrels)
		if err != nil {
			return nil, fmt.Errorf("grove config barrels: %w", err)
		}
		s.Barrels = append(s.Barrels, extBarrels...)
	}

	return s, nil
}

// DecodeBarrels converts a list of barrel maps from config into barrels.
func DecodeBarrels(raw interface{}) ([]models.Barrel, error) {
	if raw == nil {
		return nil, nil
	}

	var barrels []models.Barrel
	if err := mapstructure.Decode(raw, &barrels); err != nil {
		return nil, fmt.Errorf("failed to decode barrels: %w", err)
	}
	for i, b := range barrels {
		if b.ID == "" {
			return nil, fmt.Errorf("barrel entry %d missing 'id' field", i)
		}
		if !b.Type.Valid() {
			return nil, fmt.Errorf("barrel entry %d has invalid type %q", i, b.Type)
		}
	}
	return barrels, nil
}

// NewLogger creates the stderr logger shared by every component.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel) // Keep it quiet unless there are issues.
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// App holds the components wired together at start-up.
type App struct {
	Settings    *Settings
	Logger      *logrus.Logger
	Registry    *registry.Registry
	Client      remote.Client
	Session     session.Session
	Loader      *tree.Loader
	Provider    *sidebar.Provider
	Coordinator *refresh.Coordinator
	URIs        zeplinuri.Builder

	watcher *refresh.FileWatcher
}

// InitApp opens the registry and builds the remote client, the sidebar
// provider and the refresh coordinator.
func InitApp() (*App, error) {
	logger := NewLogger()

	settings, err := LoadSettings(logger)
	if err != nil {
		return nil, err
	}

	reg, err := registry.NewRegistry(settings.DataDir)
	if err != nil {
		return nil, err
	}

	if seeded, err := reg.Seed(context.Background(), settings.Barrels); err != nil {
		reg.Close()
		return nil, fmt.Errorf("seed barrels: %w", err)
	} else if seeded {
		logger.WithField("count", len(settings.Barrels)).Debug("Seeded saved barrels from config")
	}

	var client remote.Client
	var sess session.Session
	if settings.FixtureFile != "" {
		fc, err := fixture.Load(settings.FixtureFile)
		if err != nil {
			reg.Close()
			return nil, err
		}
		client = fc
		sess = session.Offline{}
	} else {
		client = zeplin.New(settings.APIURL, settings.APIToken, zeplin.WithLogger(logger))
		sess = session.NewTokenSession(settings.APIToken)
	}

	coordinator := refresh.NewCoordinator(settings.RefreshDelay, logger)
	loader := tree.NewLoader(client)
	provider := sidebar.NewProvider(reg, loader, coordinator, logger)
	coordinator.Register("sidebar", provider.Refresh)

	return &App{
		Settings:    settings,
		Logger:      logger,
		Registry:    reg,
		Client:      client,
		Session:     sess,
		Loader:      loader,
		Provider:    provider,
		Coordinator: coordinator,
		URIs:        zeplinuri.Builder{WebURL: settings.WebURL},
	}, nil
}

// Deps returns the flow collaborators with terminal pickers and the system
// opener. Callers replace the UI pieces as needed.
func (a *App) Deps() flow.Deps {
	return flow.Deps{
		Session:     a.Session,
		Client:      a.Client,
		Barrels:     a.Registry,
		Preferences: a.Registry,
		Sidebar:     a.Provider,
		URIs:        a.URIs,
		Selector:    picker.Selector{},
		Messenger:   picker.Messenger{},
		Opener:      flow.SystemOpener{},
		Logger:      a.Logger,
	}
}

// Flows creates a flow service from the default collaborators.
func (a *App) Flows() *flow.Service {
	return flow.New(a.Deps())
}

// Watch starts the refresh coordinator and a watcher on the registry files,
// so that changes made by other processes refresh the tree.
func (a *App) Watch(ctx context.Context) error {
	a.Coordinator.Start(ctx)

	w, err := refresh.NewFileWatcher(a.Registry.DataDir(), registry.DatabaseFiles, a.Coordinator, a.Logger)
	if err != nil {
		return err
	}
	a.watcher = w
	go w.Run(ctx)
	return nil
}

// Close stops background work and closes the registry.
func (a *App) Close() error {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.Logger.WithError(err).Warn("Failed to close file watcher")
		}
	}
	if err := a.Coordinator.Close(); err != nil {
		a.Logger.WithError(err).Warn("Failed to stop refresh coordinator")
	}
	return a.Registry.Close()
}

func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/zeplin/config.yaml)")
	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
}
