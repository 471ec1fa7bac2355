/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Separated from init_extensions.go to isolate cobra setup from extension
// initialisation logic.
//
// Design: PersistentPreRunE handles service initialisation lazily - only
// commands that need the book service trigger extension init. This lets
// bootstrap commands (init, guide, config, version) run before any config
// or history backend exists. The noStoreCommands map controls which
// commands skip initialisation.

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jpl-au/bookrab/internal/config"
	"github.com/jpl-au/bookrab/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "bookrab",
	Short: "Tag-filtered regex search over plain-text books",
	Long: `bookrab stores plain-text books with tags, searches them with regular
expressions and context windows, and records every search in history.

Front-ends: this CLI, a REST API (bookrab serve), an MCP server
(bookrab mcp) and a terminal UI (bookrab tui).`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		// --dir is an alias for BOOKRAB_DIR so every layer that reads the
		// book root sees the same value.
		if dir != "" {
			if err := os.Setenv(config.EnvDir, dir); err != nil {
				return fmt.Errorf("set %s: %w", config.EnvDir, err)
			}
		}

		cmdName := topLevelCmdName(cmd)
		if !noStoreCommands[cmdName] {
			if err := initExtensions(cmd.Context()); err != nil {
				if JSON() {
					_ = PrintJSONError(err)
					cmd.SilenceErrors = true
					cmd.SilenceUsage = true
				}
				return fmt.Errorf("initialise extensions: %w", err)
			}
		}

		return nil
	},
}

// topLevelCmdName returns the name of the top-level command (direct child of root).
// For "bookrab search Tejo", returns "search".
func topLevelCmdName(cmd *cobra.Command) string {
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, registers extensions, executes the command, and ensures
// the book service is closed before exit. Exit code 1 indicates error.
func Execute() {
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registerExtensions()
	err := rootCmd.ExecuteContext(ctx)

	if extService != nil {
		if closeErr := extService.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: closing service: %v\n", closeErr)
		}
	}

	if err != nil {
		stop()
		log.Close()
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing and extension access.
func RootCmd() *cobra.Command {
	return rootCmd
}
