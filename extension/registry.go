// registry.go implements the extension registration system.
//
// Separated from extension.go to keep the global registry state in one
// place. Extensions self-register during init(), before main() runs, so the
// registry is written once and read for the rest of the process.
//
// Design: Duplicate names panic, the same as database/sql.Register.
// Registration order is kept so commands, MCP tools and event handlers are
// visited in the same order on every run.

package extension

import (
	"fmt"
	"sync"
)

var (
	mu       sync.RWMutex
	registry = make(map[string]Extension)
	order    []string
)

// Register adds an extension to the registry. Called from init() functions.
// Panics if the name is already taken.
func Register(e Extension) {
	mu.Lock()
	defer mu.Unlock()

	name := e.Name()
	if _, exists := registry[name]; exists {
		panic("extension already registered: " + name)
	}

	registry[name] = e
	order = append(order, name)
}

// All returns all registered extensions in registration order.
func All() []Extension {
	mu.RLock()
	defer mu.RUnlock()

	exts := make([]Extension, 0, len(order))
	for _, name := range order {
		exts = append(exts, registry[name])
	}
	return exts
}

// Get returns a specific extension by name, or nil if not found.
func Get(name string) Extension {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}

// Names returns the names of all registered extensions.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	return append([]string(nil), order...)
}

// Handlers returns the extensions that receive upload and search events,
// with their names for error reporting.
func Handlers() []NamedHandler {
	var hs []NamedHandler
	for _, ext := range All() {
		if h, ok := ext.(EventHandler); ok {
			hs = append(hs, NamedHandler{Name: ext.Name(), Handler: h})
		}
	}
	return hs
}

// NamedHandler pairs an EventHandler with its extension name.
type NamedHandler struct {
	Name    string
	Handler EventHandler
}

// Tools collects MCP tools from every extension. A tool name used twice, or
// one listed in reserved (the server's built-in tools), is an error.
func Tools(reserved ...string) ([]MCPTool, error) {
	owner := make(map[string]string, len(reserved))
	for _, r := range reserved {
		owner[r] = "built-in"
	}

	var tools []MCPTool
	for _, ext := range All() {
		for _, t := range ext.MCPTools() {
			if prev, ok := owner[t.Tool.Name]; ok {
				return nil, fmt.Errorf("mcp tool %q from %s already provided by %s", t.Tool.Name, ext.Name(), prev)
			}
			owner[t.Tool.Name] = ext.Name()
			tools = append(tools, t)
		}
	}
	return tools, nil
}
