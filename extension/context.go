// context.go defines the Context interface for extension access to bookrab
// internals.
//
// Separated from extension.go to isolate dependency injection concerns.
// The Context provides a controlled surface area for extensions: they can
// reach what they need without touching arbitrary internals.
//
// Design: Extensions receive Context during Init(), not at construction, to
// support the two-phase initialisation pattern where extensions register
// before the service is available.

package extension

import (
	"github.com/jpl-au/bookrab/internal/config"
	"github.com/jpl-au/bookrab/internal/service"
)

// Context provides extensions controlled access to bookrab internals.
type Context interface {
	// Service returns the book service.
	Service() service.Service

	// Config returns user configuration for respecting user preferences.
	Config() *config.Config
}

// extContext implements Context.
type extContext struct {
	svc service.Service
	cfg *config.Config
}

// NewContext creates a new extension context.
func NewContext(svc service.Service, cfg *config.Config) Context {
	return &extContext{svc: svc, cfg: cfg}
}

// Service returns the book service.
func (c *extContext) Service() service.Service {
	return c.svc
}

// Config returns the loaded user configuration.
func (c *extContext) Config() *config.Config {
	return c.cfg
}
