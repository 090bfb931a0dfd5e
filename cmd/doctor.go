package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-zeplin/cmd/config"
	"github.com/mattsolo1/grove-zeplin/pkg/models"
	"github.com/mattsolo1/grove-zeplin/pkg/registry"
	"github.com/mattsolo1/grove-zeplin/pkg/remote"
	"github.com/mattsolo1/grove-zeplin/pkg/session"
)

// NewDoctorCmd creates the `zeplin doctor` command.
func NewDoctorCmd() *cobra.Command {
	var doctorFix bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the saved projects and styleguides against Zeplin",
		Long: `The doctor command checks that you are logged in and that every project and
styleguide in the sidebar still exists in Zeplin.

Issues it can detect and fix:
- Barrels that were deleted or that you lost access to
- Barrels renamed since they were saved`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp()
			if err != nil {
				return err
			}
			defer app.Close()

			_, err = runDoctor(cmd.Context(), cmd.OutOrStdout(), app.Session, app.Client, app.Registry, doctorFix)
			return err
		},
	}

	cmd.Flags().BoolVar(&doctorFix, "fix", false, "Automatically fix issues")
	config.AddGlobalFlags(cmd)

	return cmd
}

// runDoctor reports issues with the saved barrels and returns how many it
// found.
func runDoctor(ctx context.Context, out io.Writer, sess session.Session, client remote.Client, reg *registry.Registry, fix bool) (int, error) {
	fmt.Fprintln(out, "🏥 Running zeplin doctor...")
	fmt.Fprintln(out)

	if !sess.IsLoggedIn() {
		fmt.Fprintln(out, "❗ No API token configured")
		fmt.Fprintln(out, "   💡 Set api_token in ~/.config/zeplin/config.yaml or ZEPLIN_API_TOKEN")
		return 1, nil
	}

	saved, err := reg.SavedBarrels(ctx)
	if err != nil {
		return 0, fmt.Errorf("list saved barrels: %w", err)
	}

	remoteBarrels := make(map[string]models.Barrel)
	for _, barrelType := range []models.BarrelType{models.BarrelTypeProject, models.BarrelTypeStyleguide} {
		barrels, err := client.Barrels(ctx, barrelType)
		if remote.IsNotAuthenticated(err) {
			fmt.Fprintln(out, "❗ The API token was rejected by Zeplin")
			return 1, nil
		}
		if err != nil {
			return 0, fmt.Errorf("list %ss: %w", barrelType, err)
		}
		for _, b := range barrels {
			remoteBarrels[b.ID] = b
		}
	}

	issues := 0
	fixed := 0
	for _, b := range saved {
		current, ok := remoteBarrels[b.ID]
		switch {
		case !ok:
			issues++
			fmt.Fprintf(out, "❗ %s %s (%s) no longer exists or is not shared with you\n", b.Type.Title(), b.Name, b.ID)
			if fix {
				if err := reg.Remove(ctx, b.ID); err == nil {
					fmt.Fprintf(out, "   ✅ Removed %s from the sidebar\n", b.Name)
					fixed++
				}
			}
		case current.Name != b.Name || current.ParentID != b.ParentID:
			issues++
			fmt.Fprintf(out, "❗ %s %s was renamed to %s\n", b.Type.Title(), b.Name, current.Name)
			if fix {
				if err := reg.Add(ctx, current); err == nil {
					fmt.Fprintf(out, "   ✅ Updated %s\n", current.Name)
					fixed++
				}
			}
		}
	}

	// Summary
	if issues == 0 {
		fmt.Fprintln(out, "✨ No issues found! Your sidebar is healthy.")
		return 0, nil
	}
	fmt.Fprintf(out, "\n📊 Summary: Found %d issue(s)", issues)
	if fix {
		fmt.Fprintf(out, ", fixed %d", fixed)
	}
	fmt.Fprintln(out)
	if !fix && issues > fixed {
		fmt.Fprintln(out, "\n💡 Run 'zeplin doctor --fix' to automatically fix issues")
	}
	return issues, nil
}
