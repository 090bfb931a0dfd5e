package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-zeplin/cmd/config"
	"github.com/mattsolo1/grove-zeplin/pkg/models"
)

var barrelUlog = grovelogging.NewUnifiedLogger("grove-zeplin.cmd.barrel")

// NewBarrelCmd creates the `zeplin barrel` command and its subcommands.
func NewBarrelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "barrel",
		Aliases: []string{"barrels"},
		Short:   "Manage the projects and styleguides saved to the sidebar",
	}

	cmd.AddCommand(newBarrelAddCmd())
	cmd.AddCommand(newBarrelRemoveCmd())
	cmd.AddCommand(newBarrelListCmd())

	return cmd
}

func newBarrelAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "add <project|styleguide>",
		Short:     "Pick a project or styleguide and save it to the sidebar",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(models.BarrelTypeProject), string(models.BarrelTypeStyleguide)},
		RunE: func(cmd *cobra.Command, args []string) error {
			barrelType := models.BarrelType(args[0])
			if !barrelType.Valid() {
				return fmt.Errorf("unknown barrel type %q, expected project or styleguide", args[0])
			}
			if err := requireTerminal(); err != nil {
				return err
			}

			app, err := initApp()
			if err != nil {
				return err
			}
			defer app.Close()

			return resultError(app.Flows().AddBarrel(cmd.Context(), barrelType))
		},
	}
	config.AddGlobalFlags(cmd)
	return cmd
}

func newBarrelRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove [barrel-id]",
		Short: "Remove a project or styleguide from the sidebar",
		Long: `Remove a project or styleguide from the sidebar. Without an id, pick it
from the saved ones.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if err := requireTerminal(); err != nil {
					return err
				}
			}

			app, err := initApp()
			if err != nil {
				return err
			}
			defer app.Close()

			flows := app.Flows()
			if len(args) == 1 {
				return resultError(flows.RemoveBarrelByID(cmd.Context(), args[0]))
			}
			return resultError(flows.RemoveBarrel(cmd.Context()))
		},
	}
	config.AddGlobalFlags(cmd)
	return cmd
}

func newBarrelListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the saved projects and styleguides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp()
			if err != nil {
				return err
			}
			defer app.Close()

			barrels, err := app.Registry.SavedBarrels(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				if barrels == nil {
					barrels = []models.Barrel{}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(barrels)
			}

			if len(barrels) == 0 {
				barrelUlog.Info("No barrels saved").
					Field("data_dir", app.Registry.DataDir()).
					Pretty("No projects or styleguides saved.").
					PrettyOnly().
					Log(cmd.Context())
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tNAME\tPLATFORM")
			for _, b := range barrels {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", b.ID, b.Type.Title(), b.Name, b.Platform)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	config.AddGlobalFlags(cmd)

	return cmd
}
