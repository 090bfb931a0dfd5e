package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattsolo1/grove-core/tui/theme"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-zeplin/cmd/config"
	"github.com/mattsolo1/grove-zeplin/pkg/sidebar"
	"github.com/mattsolo1/grove-zeplin/pkg/tree"
)

type treeEntry struct {
	Kind        string      `json:"kind"`
	Key         string      `json:"key"`
	Label       string      `json:"label"`
	Description string      `json:"description,omitempty"`
	Context     string      `json:"context"`
	Children    []treeEntry `json:"children,omitempty"`
}

// NewTreeCmd creates the `zeplin tree` command.
func NewTreeCmd() *cobra.Command {
	var (
		depth      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the sidebar tree",
		Long: `Print the sidebar tree of saved projects and styleguides, loading every
level from Zeplin down to the given depth.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp()
			if err != nil {
				return err
			}
			defer app.Close()

			entries, err := buildTree(cmd.Context(), app.Provider, depth)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, theme.DefaultTheme.Muted.Render("No projects or styleguides saved. Run 'zeplin barrel add project' to add one."))
				return nil
			}
			printTree(out, entries, 0)
			return nil
		},
	}

	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "Levels to load below the roots (0 loads everything)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	config.AddGlobalFlags(cmd)

	return cmd
}

// buildTree loads the tree through the provider, one level at a time.
func buildTree(ctx context.Context, provider *sidebar.Provider, depth int) ([]treeEntry, error) {
	roots, err := provider.Roots(ctx)
	if err != nil {
		return nil, err
	}
	return buildEntries(ctx, provider, roots, depth, 1)
}

func buildEntries(ctx context.Context, provider *sidebar.Provider, nodes []tree.Node, depth, level int) ([]treeEntry, error) {
	entries := make([]treeEntry, 0, len(nodes))
	for _, n := range nodes {
		entry := treeEntry{
			Kind:        string(n.Kind()),
			Key:         n.Key(),
			Label:       n.Label(),
			Description: n.Description(),
			Context:     n.Context().String(),
		}
		if n.Collapsible() != tree.CollapsibleNone && (depth == 0 || level <= depth) {
			children, err := provider.Children(ctx, n)
			if err != nil {
				return nil, fmt.Errorf("load %s: %w", n.Label(), err)
			}
			entry.Children, err = buildEntries(ctx, provider, children, depth, level+1)
			if err != nil {
				return nil, err
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func printTree(w io.Writer, entries []treeEntry, level int) {
	for _, e := range entries {
		line := strings.Repeat("  ", level) + e.Label
		if e.Description != "" {
			line += "  " + theme.DefaultTheme.Muted.Render(e.Description)
		}
		fmt.Fprintln(w, line)
		printTree(w, e.Children, level+1)
	}
}
