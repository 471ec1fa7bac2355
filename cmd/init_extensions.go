/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Separated from root.go to isolate the initialisation logic that loads
// config, opens the book service and wires up extensions.
//
// Design: Extensions register during init() but aren't initialised until
// first command execution. This two-phase pattern allows extensions to
// declare commands before any config exists. The service is created once
// and shared across all extensions via the Context.

package cmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/jpl-au/bookrab/extension"
	"github.com/jpl-au/bookrab/internal/config"
	"github.com/jpl-au/bookrab/internal/document"
	"github.com/jpl-au/bookrab/internal/log"
)

// noStoreCommands lists commands that bypass automatic service initialisation.
// Built dynamically from bootstrap commands plus extension-declared storeless commands.
var noStoreCommands map[string]bool

// buildNoStoreCommands creates the set of commands that skip service
// initialisation.
//
// Bootstrap commands (init, guide, config, llm) help users set up or learn
// about bookrab, so a broken history backend must not stop them. Extensions
// add to the set through the Storeless interface.
func buildNoStoreCommands() map[string]bool {
	cmds := map[string]bool{
		"init":       true,
		"guide":      true,
		"config":     true,
		"llm":        true,
		"help":       true,
		"completion": true,
	}

	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Storeless); ok {
			for _, name := range s.NoStoreCommands() {
				cmds[name] = true
			}
		}
	}

	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	extService *document.Service
	initOnce   sync.Once
	initErr    error
)

// initExtensions creates the book service and injects it into extensions.
//
// sync.Once guarantees one service per process: it owns the history
// backends (SQLite handles, Postgres pool) and must be closed exactly once
// in Execute.
func initExtensions(ctx context.Context) error {
	initOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}

		svc, err := document.New(ctx, cfg)
		if err != nil {
			initErr = fmt.Errorf("opening book service: %w", err)
			return
		}
		extService = svc

		// Set project identifier for audit logging
		log.SetProject(svc.Root())

		extContext = extension.NewContext(svc, cfg)
		svc.SetExtensionContext(extContext)

		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

// Service returns the shared book service, opening it on first use.
// Storeless commands that later need the service call this.
func Service(ctx context.Context) (*document.Service, error) {
	if err := initExtensions(ctx); err != nil {
		return nil, err
	}
	return extService, nil
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}

		noStoreCommands = buildNoStoreCommands()
	})
}
