package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-zeplin/cmd/config"
	"github.com/mattsolo1/grove-zeplin/pkg/flow"
	"github.com/mattsolo1/grove-zeplin/pkg/models"
	"github.com/mattsolo1/grove-zeplin/pkg/registry"
	"github.com/mattsolo1/grove-zeplin/pkg/zeplinuri"
)

// NewOpenCmd creates the `zeplin open` command.
func NewOpenCmd() *cobra.Command {
	var (
		screenID    string
		componentID string
		sectionID   string
		printOnly   bool
	)

	cmd := &cobra.Command{
		Use:   "open <barrel-id>",
		Short: "Open a saved project or styleguide in Zeplin",
		Long: `Open a saved project or styleguide in Zeplin, or one of its screens,
components or component sections. Links open in the web app or the desktop
app, whichever you chose the first time.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set := 0
			for _, id := range []string{screenID, componentID, sectionID} {
				if id != "" {
					set++
				}
			}
			if set > 1 {
				return fmt.Errorf("--screen, --component and --section are mutually exclusive")
			}

			app, err := initApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			barrel, err := app.Registry.Get(ctx, args[0])
			if errors.Is(err, registry.ErrNotSaved) {
				return fmt.Errorf("%s is not saved to the sidebar; add it with 'zeplin barrel add'", args[0])
			}
			if err != nil {
				return err
			}
			if screenID != "" && !barrel.IsProject() {
				return fmt.Errorf("%s is a styleguide and has no screens", barrel.Name)
			}

			deps := app.Deps()
			if printOnly {
				deps.Opener = flow.PrintOpener{W: cmd.OutOrStdout()}
			}

			res, err := flow.New(deps).Open(ctx, linkFor(app.URIs, *barrel, screenID, componentID, sectionID))
			return resultError(res, err)
		},
	}

	cmd.Flags().StringVar(&screenID, "screen", "", "Open a screen of the project")
	cmd.Flags().StringVar(&componentID, "component", "", "Open a component")
	cmd.Flags().StringVar(&sectionID, "section", "", "Open a component section")
	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the link instead of opening it")
	config.AddGlobalFlags(cmd)

	return cmd
}

func linkFor(uris zeplinuri.Builder, barrel models.Barrel, screenID, componentID, sectionID string) flow.URIProvider {
	return flow.URIFunc(func(appType models.ApplicationType) string {
		switch {
		case screenID != "":
			return uris.Screen(barrel.ID, screenID, appType)
		case componentID != "":
			return uris.Component(barrel.ID, barrel.Type, componentID, appType)
		case sectionID != "":
			return uris.ComponentSection(barrel.ID, barrel.Type, sectionID, appType)
		default:
			return uris.Barrel(barrel.ID, barrel.Type, appType)
		}
	})
}
