// Package main is the entry point for the lostfound CLI. It registers the
// command groups on the root command and executes it.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mmynk/lostfound/cmd/lostfound/internal/commands"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "lostfound",
		Short: "Campus lost-and-found command-line client",
		Long: `lostfound talks to a lost-and-found server.

The session, preferences and recent accounts are kept in a state file
(default: <user config dir>/lostfound/state.json). The server URL is taken
from --server, then the state file, then LOSTFOUND_SERVER.`,
		SilenceUsage: true,
	}
	commands.AddGlobalFlags(rootCmd)

	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	inits := []func(*cobra.Command) error{
		commands.InitAuthCommands,
		commands.InitItemCommands,
		commands.InitClaimCommands,
		commands.InitNotificationCommands,
		commands.InitRewardCommands,
		commands.InitBackupCommands,
		commands.InitPreferenceCommands,
	}
	for _, register := range inits {
		if err := register(rootCmd); err != nil {
			return err
		}
	}
	return nil
}
