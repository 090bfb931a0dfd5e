package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-zeplin/cmd/config"
	"github.com/mattsolo1/grove-zeplin/pkg/flow"
)

// NewJumpCmd creates the `zeplin jump` command.
func NewJumpCmd() *cobra.Command {
	var (
		reveal    bool
		printOnly bool
	)

	cmd := &cobra.Command{
		Use:   "jump",
		Short: "Pick a screen or component and open it in Zeplin",
		Long: `Pick one of your saved projects or styleguides, then one of its screens or
components, and open it in Zeplin. With --reveal the item is located in the
sidebar tree instead and its path is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireTerminal(); err != nil {
				return err
			}

			app, err := initApp()
			if err != nil {
				return err
			}
			defer app.Close()

			deps := app.Deps()
			if printOnly {
				deps.Opener = flow.PrintOpener{W: cmd.OutOrStdout()}
			}
			app.Provider.SetHost(printHost{w: cmd.OutOrStdout(), provider: app.Provider})

			mode := flow.ModeOpenExternally
			if reveal {
				mode = flow.ModeReveal
			}
			res, err := flow.New(deps).JumpTo(cmd.Context(), mode)
			app.Logger.WithField("result", res.String()).Debug("Jump finished")
			return resultError(res, err)
		},
	}

	cmd.Flags().BoolVar(&reveal, "reveal", false, "Reveal the item in the sidebar tree instead of opening it")
	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the link instead of opening it")
	config.AddGlobalFlags(cmd)

	return cmd
}
