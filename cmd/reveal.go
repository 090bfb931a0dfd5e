package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-zeplin/cmd/config"
	"github.com/mattsolo1/grove-zeplin/pkg/sidebar"
)

// NewRevealCmd creates the `zeplin reveal` command.
func NewRevealCmd() *cobra.Command {
	var (
		screenID    string
		sectionID   string
		componentID string
		ownerID     string
		sections    []string
	)

	cmd := &cobra.Command{
		Use:   "reveal <barrel-id>",
		Short: "Locate a barrel, screen or component in the sidebar tree",
		Long: `Walk the sidebar tree down to a saved barrel, one of its screens or one of
its components and print the path to it. Components of a linked styleguide are
found through --owner; nested component sections are given outermost first.`,
		Example: `  zeplin reveal 5f1a
  zeplin reveal 5f1a --screen 61b2 --section 77c0
  zeplin reveal 5f1a --component 9d3e --owner 4c2f --sections forms,inputs`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if screenID != "" && componentID != "" {
				return fmt.Errorf("--screen and --component are mutually exclusive")
			}

			var target sidebar.Target
			switch {
			case screenID != "":
				target = sidebar.ScreenTarget{ProjectID: args[0], SectionID: sectionID, ScreenID: screenID}
			case componentID != "":
				target = sidebar.ComponentTarget{
					BarrelID:    args[0],
					OwnerID:     ownerID,
					SectionIDs:  sections,
					ComponentID: componentID,
				}
			default:
				target = sidebar.BarrelTarget{BarrelID: args[0]}
			}

			app, err := initApp()
			if err != nil {
				return err
			}
			defer app.Close()

			app.Provider.SetHost(printHost{w: cmd.OutOrStdout(), provider: app.Provider})
			found, err := app.Provider.Reveal(cmd.Context(), target)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("%s not found in the sidebar", strings.ToLower(target.Kind()))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&screenID, "screen", "", "Screen to reveal")
	cmd.Flags().StringVar(&sectionID, "section", "", "Section of the screen")
	cmd.Flags().StringVar(&componentID, "component", "", "Component to reveal")
	cmd.Flags().StringVar(&ownerID, "owner", "", "Barrel the component belongs to (default is the saved barrel)")
	cmd.Flags().StringSliceVar(&sections, "sections", nil, "Component section ids, outermost first")
	config.AddGlobalFlags(cmd)

	return cmd
}
