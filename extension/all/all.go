// Package all imports all core bookrab extensions.
// Import this package to register all built-in commands.
package all

import (
	// Core extensions - each registers itself via init()
	_ "github.com/jpl-au/bookrab/extension/book"
	_ "github.com/jpl-au/bookrab/extension/core"
	_ "github.com/jpl-au/bookrab/extension/history"
	_ "github.com/jpl-au/bookrab/extension/search"
)
