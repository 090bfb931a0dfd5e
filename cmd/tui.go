package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-zeplin/cmd/config"
	"github.com/mattsolo1/grove-zeplin/internal/tui/browser"
	"github.com/mattsolo1/grove-zeplin/pkg/flow"
)

// NewTuiCmd creates the `zeplin tui` command.
func NewTuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive sidebar",
		Long: `Launch an interactive Terminal User Interface showing your saved projects and
styleguides with their screens and components. The tree refreshes when the
sidebar is changed from another terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Check for TTY
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("TUI mode requires an interactive terminal")
			}

			app, err := initApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			if err := app.Watch(ctx); err != nil {
				// The tree still works, it just misses outside changes.
				app.Logger.WithError(err).Warn("Could not watch the sidebar database")
				app.Coordinator.Start(ctx)
			}

			// Pickers and messages are answered inside the TUI.
			bridge := browser.NewBridge(app.Provider)
			deps := app.Deps()
			deps.Selector = bridge
			deps.Messenger = bridge

			model := browser.New(ctx, app.Provider, app.Coordinator, flow.New(deps))
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			bridge.Attach(p)
			defer bridge.Detach()

			if _, err := p.Run(); err != nil && ctx.Err() == nil {
				return fmt.Errorf("error running TUI: %w", err)
			}

			return nil
		},
	}
	config.AddGlobalFlags(cmd)
	return cmd
}
