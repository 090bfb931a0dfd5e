package refresh

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Requester receives refresh requests.
type Requester interface {
	RequestRefresh()
}

// FileWatcher requests a refresh whenever one of a set of files in a
// directory is written, created, removed or renamed. It lets changes made
// by other processes reach the sidebar.
type FileWatcher struct {
	dir       string
	names     map[string]bool
	requester Requester
	logger    logrus.FieldLogger
	watcher   *fsnotify.Watcher
}

// NewFileWatcher watches the files called names inside dir. The directory
// must exist.
func NewFileWatcher(dir string, names []string, requester Requester, logger logrus.FieldLogger) (*FileWatcher, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return &FileWatcher{
		dir:       dir,
		names:     set,
		requester: requester,
		logger:    logger.WithField("component", "watcher"),
		watcher:   watcher,
	}, nil
}

// Run forwards matching events until ctx is done or the watcher is closed.
func (w *FileWatcher) Run(ctx context.Context) {
	w.logger.WithField("dir", w.dir).Debug("Started watching data directory")
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.WithError(err).Warn("Data directory watcher error")

		case <-ctx.Done():
			w.logger.Debug("Data directory watcher stopping")
			return
		}
	}
}

func (w *FileWatcher) handleEvent(event fsnotify.Event) {
	if !w.names[filepath.Base(event.Name)] {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	w.logger.WithField("path", event.Name).Debug("Data file changed, requesting refresh")
	w.requester.RequestRefresh()
}

// Close stops watching.
func (w *FileWatcher) Close() error {
	return w.watcher.Close()
}
