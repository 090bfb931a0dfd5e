package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mattsolo1/grove-core/tui/theme"

	"github.com/mattsolo1/grove-zeplin/cmd/config"
	"github.com/mattsolo1/grove-zeplin/pkg/flow"
	"github.com/mattsolo1/grove-zeplin/pkg/sidebar"
	"github.com/mattsolo1/grove-zeplin/pkg/tree"
)

// initApp loads configuration and wires the application.
func initApp() (*config.App, error) {
	config.InitConfig()
	app, err := config.InitApp()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}
	return app, nil
}

func requireTerminal() error {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return fmt.Errorf("this command requires an interactive terminal")
	}
	return nil
}

// resultError turns the outcome of a flow into the command's error. Results
// other than Failed have already been reported to the user.
func resultError(res flow.Result, err error) error {
	if err != nil {
		return err
	}
	if res == flow.Failed {
		return fmt.Errorf("flow failed")
	}
	return nil
}

// printHost is the sidebar host of non-interactive commands: it prints the
// path to each revealed node.
type printHost struct {
	w        io.Writer
	provider *sidebar.Provider
}

func (h printHost) Reveal(ctx context.Context, node tree.Node, key string) error {
	path := h.provider.Path(node)
	labels := make([]string, len(path))
	for i, n := range path {
		labels[i] = n.Label()
	}
	_, err := fmt.Fprintf(h.w, "%s\n  %s\n", strings.Join(labels, " › "), theme.DefaultTheme.Muted.Render(key))
	return err
}
