package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattsolo1/grove-core/cli"

	"github.com/mattsolo1/grove-zeplin/cmd"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"zeplin",
		"Browse and open Zeplin projects, styleguides, screens and components",
	)

	// Add subcommands
	rootCmd.AddCommand(cmd.NewTreeCmd())
	rootCmd.AddCommand(cmd.NewJumpCmd())
	rootCmd.AddCommand(cmd.NewOpenCmd())
	rootCmd.AddCommand(cmd.NewRevealCmd())
	rootCmd.AddCommand(cmd.NewBarrelCmd())
	rootCmd.AddCommand(cmd.NewTuiCmd())
	rootCmd.AddCommand(cmd.NewDoctorCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
